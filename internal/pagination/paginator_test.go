package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginatorNumPages(t *testing.T) {
	tests := []struct {
		items, perPage, want int
	}{
		{items: 0, perPage: 10, want: 1},
		{items: 1, perPage: 10, want: 1},
		{items: 10, perPage: 10, want: 1},
		{items: 11, perPage: 10, want: 2},
		{items: 420, perPage: 10, want: 42},
		{items: 37, perPage: 0, want: 1},
		{items: 37, perPage: -4, want: 1},
		{items: -5, perPage: 10, want: 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewPaginator(tt.items, tt.perPage).NumPages(), "items=%d per_page=%d", tt.items, tt.perPage)
	}
}

func TestPaginatorPage(t *testing.T) {
	pag := NewPaginator(25, 10)

	first := pag.Page(1)
	assert.Equal(t, Page{Number: 1, NumPages: 3, StartIndex: 1, EndIndex: 10}, first)
	assert.False(t, first.HasPrevious())
	assert.True(t, first.HasNext())
	assert.True(t, first.HasOtherPages())
	assert.Equal(t, 0, first.PreviousNumber())
	assert.Equal(t, 2, first.NextNumber())

	last := pag.Page(3)
	assert.Equal(t, 21, last.StartIndex)
	assert.Equal(t, 25, last.EndIndex)
	assert.True(t, last.HasPrevious())
	assert.False(t, last.HasNext())
	assert.Equal(t, 2, last.PreviousNumber())
	assert.Equal(t, 0, last.NextNumber())
}

func TestPaginatorPageClamps(t *testing.T) {
	pag := NewPaginator(25, 10)
	assert.Equal(t, 1, pag.Page(-7).Number)
	assert.Equal(t, 3, pag.Page(99).Number)
}

func TestPaginatorDisabledAndEmpty(t *testing.T) {
	all := NewPaginator(7, 0).Page(1)
	assert.Equal(t, Page{Number: 1, NumPages: 1, StartIndex: 1, EndIndex: 7}, all)
	assert.False(t, all.HasOtherPages())

	empty := NewPaginator(0, 5).Page(1)
	assert.Equal(t, Page{Number: 1, NumPages: 1}, empty)
}

func TestPaginatorPagesAndWindow(t *testing.T) {
	pages := NewPaginator(420, 10).Pages()
	require.Len(t, pages, 42)
	for i, pg := range pages {
		assert.Equal(t, i+1, pg.Number)
	}
	assert.Equal(t, IterPages(6, 42), pages[5].Window(DefaultThresholds()))
	assert.Equal(t, "1 2 … 4 5 [6] 7 8 9 10 … 41 42", Format(pages[5].Window(DefaultThresholds()), 6))
}

func TestPaginatorHugeListing(t *testing.T) {
	pag := NewPaginator(math.MaxInt, 10)
	require.Equal(t, math.MaxInt/10+1, pag.NumPages())

	last := pag.Page(math.MaxInt)
	assert.Equal(t, math.MaxInt/10+1, last.Number)
	assert.Equal(t, math.MaxInt, last.EndIndex)
	assert.Equal(t, math.MaxInt-math.MaxInt%10+1, last.StartIndex)
	assert.False(t, last.HasNext())

	one := NewPaginator(math.MaxInt, math.MaxInt)
	assert.Equal(t, 1, one.NumPages())
	assert.Equal(t, Page{Number: 1, NumPages: 1, StartIndex: 1, EndIndex: math.MaxInt}, one.Page(1))
}
