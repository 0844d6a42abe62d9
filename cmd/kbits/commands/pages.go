package commands

import (
	"fmt"
	"log/slog"
	"strings"

	ferrors "git.home.luguber.info/inful/kbits/internal/foundation/errors"
	"git.home.luguber.info/inful/kbits/internal/logfields"
	"git.home.luguber.info/inful/kbits/internal/pagination"
	"git.home.luguber.info/inful/kbits/internal/templates"
)

// PagesCmd prints the pagination window for one page of a listing.
type PagesCmd struct {
	Current  int    `required:"" help:"Current page number"`
	Total    int    `required:"" help:"Number of pages in the listing"`
	Window   []int  `sep:"," help:"Threshold overrides: left_edge,left_current,right_current,right_edge"`
	Template string `short:"t" help:"Go template body; .Current, .Total and .Items are available"`
	HTML     bool   `name:"html" help:"Print the rendered pagination control"`
	Name     string `default:"index" help:"Listing base name used for page URLs with --html"`
}

func (p *PagesCmd) Run(g *Global, root *CLI) error {
	if len(p.Window) > 4 {
		return ferrors.ValidationError("at most four window thresholds").
			WithContext("window", p.Window).Build()
	}
	th, siteURL, err := p.thresholds(root)
	if err != nil {
		return err
	}
	th = th.WithOverrides(p.Window...)
	slog.Debug("Computing pagination window", logfields.CurrentPage(p.Current), logfields.TotalPages(p.Total))

	var out string
	switch {
	case p.HTML:
		page := pagination.Page{Number: p.Current, NumPages: p.Total}
		html, err := templates.RenderPagination(page, templates.PaginationOptions{SiteURL: siteURL, Name: p.Name, Thresholds: &th})
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryInternal, "render pagination").Build()
		}
		out = string(html)
	case p.Template != "":
		data := map[string]any{
			"Current": p.Current,
			"Total":   p.Total,
			"Items":   pagination.Window(p.Current, p.Total, th),
		}
		rendered, err := templates.RenderTemplateBody(p.Template, data, th)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid template").Build()
		}
		out = rendered
	default:
		out = pagination.Format(pagination.Window(p.Current, p.Total, th), p.Current)
	}

	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err = fmt.Fprint(g.out(), out)
	return err
}

// thresholds returns the configured window when a settings file is present
// and the defaults otherwise. A settings file that exists but fails to load
// is an error.
func (p *PagesCmd) thresholds(root *CLI) (pagination.Thresholds, string, error) {
	if root.Config == "" || !fileExists(root.Config) {
		slog.Debug("No settings file, using default window", logfields.Path(root.Config))
		return pagination.DefaultThresholds(), "", nil
	}
	cfg, err := root.loadConfig(root.Config)
	if err != nil {
		return pagination.Thresholds{}, "", err
	}
	return cfg.Pagination.Window, cfg.Site.URL, nil
}
