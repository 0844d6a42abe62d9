package pagination

import (
	"strconv"
	"strings"
)

// Thresholds controls how many page numbers a window keeps around the start
// of the listing, the current page, and the end of the listing.
//
// LeftCurrent pages are shown strictly before the current page and
// RightCurrent-1 pages strictly after it, the current page itself included
// whenever RightCurrent >= 1.
type Thresholds struct {
	LeftEdge     int `yaml:"left_edge" json:"left_edge"`
	LeftCurrent  int `yaml:"left_current" json:"left_current"`
	RightCurrent int `yaml:"right_current" json:"right_current"`
	RightEdge    int `yaml:"right_edge" json:"right_edge"`
}

// DefaultThresholds returns the thresholds used when a template does not
// override them.
func DefaultThresholds() Thresholds {
	return Thresholds{LeftEdge: 2, LeftCurrent: 2, RightCurrent: 5, RightEdge: 2}
}

// WithOverrides returns a copy of t with positional overrides applied in the
// order LeftEdge, LeftCurrent, RightCurrent, RightEdge. Extra values are
// ignored.
func (t Thresholds) WithOverrides(overrides ...int) Thresholds {
	fields := []*int{&t.LeftEdge, &t.LeftCurrent, &t.RightCurrent, &t.RightEdge}
	for i, v := range overrides {
		if i >= len(fields) {
			break
		}
		*fields[i] = v
	}
	return t
}

// Item is one element of a window: either a page number or the gap marker.
type Item struct {
	// Page is the 1-based page number; zero for the gap marker.
	Page int
}

// Gap is the marker standing in for one or more omitted page numbers.
var Gap = Item{}

// IsGap reports whether the item is the gap marker.
func (i Item) IsGap() bool { return i.Page == 0 }

func (i Item) String() string {
	if i.IsGap() {
		return "…"
	}
	return strconv.Itoa(i.Page)
}

// Window returns the pagination window for the current page of a listing
// with total pages.
//
// Page num is included when it lies within LeftEdge of the start, inside the
// open interval (current-LeftCurrent-1, current+RightCurrent), or within
// RightEdge of the end. A gap marker precedes every included page that does
// not directly follow the previously included one. The tracker starts at
// zero, so a window whose first page is not 1 begins with a gap.
func Window(current, total int, th Thresholds) []Item {
	if total <= 0 {
		return []Item{}
	}

	items := make([]Item, 0, min(total, th.span()))
	last := 0
	// num > 0 stops the loop if num wraps past math.MaxInt.
	for num := 1; num > 0 && num <= total; num++ {
		if !th.includes(num, current, total) {
			continue
		}
		if last+1 != num {
			items = append(items, Gap)
		}
		items = append(items, Item{Page: num})
		last = num
	}
	return items
}

// IterPages is the template-facing form of Window: it applies positional
// threshold overrides to DefaultThresholds.
func IterPages(current, total int, overrides ...int) []Item {
	return Window(current, total, DefaultThresholds().WithOverrides(overrides...))
}

// Pages returns the page numbers of a window with gap markers removed.
func Pages(items []Item) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		if !it.IsGap() {
			out = append(out, it.Page)
		}
	}
	return out
}

// Format renders a window as space separated text, highlighting current with
// brackets.
func Format(items []Item, current int) string {
	parts := make([]string, len(items))
	for i, it := range items {
		if !it.IsGap() && it.Page == current {
			parts[i] = "[" + it.String() + "]"
			continue
		}
		parts[i] = it.String()
	}
	return strings.Join(parts, " ")
}

func (t Thresholds) includes(num, current, total int) bool {
	switch {
	case num <= t.LeftEdge:
		return true
	case atLeast(num, current, t.LeftCurrent) && below(num, current, t.RightCurrent):
		return true
	case above(num, total, t.RightEdge):
		return true
	}
	return false
}

// The comparisons below evaluate the window rule on exact integers. A
// difference or sum that leaves the int range is still ordered correctly
// against num.

// atLeast reports num >= a-b, the integer form of a-b-1 < num.
func atLeast(num, a, b int) bool {
	d := a - b
	switch {
	case b > 0 && d > a:
		return true
	case b < 0 && d < a:
		return false
	}
	return num >= d
}

// below reports num < a+b.
func below(num, a, b int) bool {
	s := a + b
	switch {
	case b > 0 && s < a:
		return true
	case b < 0 && s > a:
		return false
	}
	return num < s
}

// above reports num > a-b.
func above(num, a, b int) bool {
	d := a - b
	switch {
	case b > 0 && d > a:
		return true
	case b < 0 && d < a:
		return false
	}
	return num > d
}

// span is a capacity hint: pages kept by each region plus one gap between
// each pair of regions.
func (t Thresholds) span() int {
	n := 2
	for _, v := range []int{t.LeftEdge, t.LeftCurrent + t.RightCurrent, t.RightEdge} {
		if v > 0 && v < 1<<16 {
			n += v + 1
		}
	}
	return n
}
