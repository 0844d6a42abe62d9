package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // timezone validation must not depend on the host zoneinfo

	"golang.org/x/text/language"
)

// ValidateConfig checks the complete configuration and reports every problem
// found, joined into one error.
func ValidateConfig(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	v.validateVersion()
	v.validateSite()
	v.validatePaths()
	v.validateURLs()
	v.validateMenu()
	v.validatePagination()
	v.validateServe()
	if cfg.Generator.Command == "" {
		v.fail("generator.command cannot be empty")
	}
	return errors.Join(v.errs...)
}

type configurationValidator struct {
	config *Config
	errs   []error
}

func (v *configurationValidator) fail(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf(format, args...))
}

func (v *configurationValidator) validateVersion() {
	if v.config.Version != CurrentVersion {
		v.fail("unsupported settings version %q (expected %q)", v.config.Version, CurrentVersion)
	}
}

func (v *configurationValidator) validateSite() {
	s := v.config.Site
	if strings.TrimSpace(s.Name) == "" {
		v.fail("site.name cannot be empty")
	}
	if _, err := language.Parse(s.DefaultLang); err != nil {
		v.fail("site.default_lang %q is not a valid language tag: %v", s.DefaultLang, err)
	}
	if s.Locale != "" {
		if _, err := LocaleTag(s.Locale); err != nil {
			v.fail("site.locale %q: %v", s.Locale, err)
		}
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		v.fail("site.timezone %q: %v", s.Timezone, err)
	}
	v.validateHTTPURL("site.url", s.URL)
	v.validateHTTPURL("feeds.domain", v.config.Feeds.Domain)
}

func (v *configurationValidator) validateHTTPURL(field, raw string) {
	if raw == "" {
		return
	}
	u, err := url.Parse(raw)
	if err != nil {
		v.fail("%s: %v", field, err)
		return
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		v.fail("%s %q must be an absolute http(s) URL", field, raw)
	}
}

func (v *configurationValidator) validatePaths() {
	p := v.config.Paths
	if p.Content == "" {
		v.fail("paths.content cannot be empty")
	}
	if p.Output == "" {
		v.fail("paths.output cannot be empty")
	}
	if p.Content != "" && p.Content == p.Output {
		v.fail("paths.output must differ from paths.content (%s)", p.Content)
	}
	for _, pattern := range p.IgnoreFiles {
		if _, err := filepath.Match(pattern, ""); err != nil {
			v.fail("paths.ignore_files pattern %q: %v", pattern, err)
		}
	}
}

func (v *configurationValidator) validateURLs() {
	u := v.config.URLs
	if !strings.Contains(u.PageURL, "{slug}") {
		v.fail("urls.page_url %q must contain {slug}", u.PageURL)
	}
	if u.PageSaveAs != "" && !strings.Contains(u.PageSaveAs, "{slug}") {
		v.fail("urls.page_save_as %q must contain {slug}", u.PageSaveAs)
	}
}

func (v *configurationValidator) validateMenu() {
	check := func(field string, links []Link) {
		for i, l := range links {
			if l.Title == "" || l.URL == "" {
				v.fail("%s[%d] needs both title and url", field, i)
			}
		}
	}
	check("menu.items", v.config.Menu.Items)
	check("menu.links", v.config.Menu.Links)
	check("menu.social", v.config.Menu.Social)
}

func (v *configurationValidator) validatePagination() {
	p := v.config.Pagination
	if p.PerPage < 0 {
		v.fail("pagination.per_page cannot be negative: %d", p.PerPage)
	}
	w := p.Window
	thresholds := []struct {
		name string
		val  int
	}{
		{"left_edge", w.LeftEdge},
		{"left_current", w.LeftCurrent},
		{"right_current", w.RightCurrent},
		{"right_edge", w.RightEdge},
	}
	for _, th := range thresholds {
		if th.val < 0 {
			v.fail("pagination.window.%s cannot be negative: %d", th.name, th.val)
		}
	}
}

func (v *configurationValidator) validateServe() {
	s := v.config.Serve
	if s.Port < 1 || s.Port > 65535 {
		v.fail("serve.port %d out of range 1-65535", s.Port)
	}
	if s.Bind != "localhost" && net.ParseIP(s.Bind) == nil {
		v.fail("serve.bind %q must be an IP address or localhost", s.Bind)
	}
	if s.RebuildInterval < 0 {
		v.fail("serve.rebuild_interval cannot be negative")
	}
}

// LocaleTag converts a POSIX locale such as "en_US.UTF-8" to a language tag.
func LocaleTag(locale string) (language.Tag, error) {
	base, _, _ := strings.Cut(locale, ".")
	base, _, _ = strings.Cut(base, "@")
	if base == "C" || base == "POSIX" {
		return language.Und, nil
	}
	return language.Parse(strings.ReplaceAll(base, "_", "-"))
}
