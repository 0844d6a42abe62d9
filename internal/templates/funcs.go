package templates

import (
	"text/template"

	"git.home.luguber.info/inful/kbits/internal/pagination"
)

// FuncMap returns the template helpers with th as the default window.
// The map is usable with both text/template and html/template.
func FuncMap(th pagination.Thresholds) template.FuncMap {
	iter := func(current, total int, overrides ...int) []pagination.Item {
		return pagination.Window(current, total, th.WithOverrides(overrides...))
	}
	return template.FuncMap{
		"iter_pages":  iter,
		"iterPages":   iter,
		"isGap":       func(it pagination.Item) bool { return it.IsGap() },
		"formatPages": pagination.Format,
	}
}
