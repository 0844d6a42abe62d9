package templates

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/kbits/internal/pagination"
)

//go:embed assets/pagination.html.tmpl
var paginationTemplate string

// PaginationOptions controls RenderPagination.
type PaginationOptions struct {
	// SiteURL is prefixed to every page URL; empty yields relative URLs.
	SiteURL string
	// Name is the listing's base name; "index" when empty.
	Name string
	// Extension defaults to ".html".
	Extension string
	// Thresholds shapes the window; nil selects the defaults.
	Thresholds *pagination.Thresholds
	// Label is the nav element's accessible name; "Pagination" when empty.
	Label string
}

func (o PaginationOptions) withDefaults() PaginationOptions {
	if o.Name == "" {
		o.Name = "index"
	}
	if o.Extension == "" {
		o.Extension = ".html"
	}
	if o.Thresholds == nil {
		th := pagination.DefaultThresholds()
		o.Thresholds = &th
	}
	if o.Label == "" {
		o.Label = "Pagination"
	}
	return o
}

// PageURL returns the URL of page n of the listing: {name}{ext} for the
// first page and {name}{n}{ext} after it.
func (o PaginationOptions) PageURL(n int) string {
	o = o.withDefaults()
	path := o.Name + o.Extension
	if n > 1 {
		path = o.Name + strconv.Itoa(n) + o.Extension
	}
	if base := strings.TrimSuffix(o.SiteURL, "/"); base != "" {
		return base + "/" + path
	}
	return path
}

type paginationData struct {
	Page  pagination.Page
	Items []pagination.Item
	Label string
}

// RenderPagination renders the pagination control for page as HTML. A
// listing with a single page renders nothing.
func RenderPagination(page pagination.Page, opts PaginationOptions) (template.HTML, error) {
	opts = opts.withDefaults()

	funcs := template.FuncMap(FuncMap(*opts.Thresholds))
	funcs["pageURL"] = opts.PageURL

	tpl, err := template.New("pagination").Funcs(funcs).Parse(paginationTemplate)
	if err != nil {
		return "", fmt.Errorf("parse pagination template: %w", err)
	}

	var buf bytes.Buffer
	data := paginationData{Page: page, Items: page.Window(*opts.Thresholds), Label: opts.Label}
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render pagination: %w", err)
	}
	// #nosec G203 -- produced by html/template
	return template.HTML(buf.String()), nil
}
