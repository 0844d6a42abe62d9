package config

import (
	"net/url"
	"strings"

	"git.home.luguber.info/inful/kbits/internal/pagination"
)

// Defaults returns the configuration every settings file is decoded onto.
// Fields a file leaves out keep these values; Version is deliberately left
// empty so that every settings chain has to declare it.
func Defaults() *Config {
	return &Config{
		Site: SiteConfig{
			DefaultLang:       "en",
			Timezone:          "UTC",
			DefaultDateFormat: "%Y-%m-%d",
			DefaultCategory:   "misc",
		},
		Paths: PathsConfig{
			Content:  "content",
			Articles: []string{""},
			Static:   []string{"images"},
			Output:   "output",
		},
		URLs: URLConfig{
			PageURL:       "pages/{slug}.html",
			PageSaveAs:    "pages/{slug}.html",
			AuthorSaveAs:  "author/{slug}.html",
			AuthorsSaveAs: "authors.html",
			RelativeURLs:  false,
		},
		Menu: MenuConfig{
			LinksWidgetName:  "Links",
			SocialWidgetName: "Social",
		},
		Content: ContentConfig{
			Cache:         true,
			SlugifySource: SlugifyTitle,
			PageOrderBy:   PageOrderBasename,
		},
		Pagination: PaginationConfig{
			Window: pagination.DefaultThresholds(),
		},
		Generator: GeneratorConfig{Command: "pelican"},
		Serve: ServeConfig{
			Bind:        "127.0.0.1",
			Port:        8000,
			MetricsPath: "",
			LiveReload:  true,
		},
		Monitoring: MonitoringConfig{
			Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		},
	}
}

// applyDerivedDefaults fills values that depend on other settings. It runs
// after normalization so canonical values drive the result.
func applyDerivedDefaults(cfg *Config) {
	if cfg.Feeds.Domain == "" && cfg.Feeds.Enabled() {
		cfg.Feeds.Domain = cfg.Site.URL
	}
	if cfg.Generator.Command == "" {
		cfg.Generator.Command = "pelican"
	}
	if cfg.Serve.Bind == "" {
		cfg.Serve.Bind = "127.0.0.1"
	}
	if cfg.Serve.Port == 0 {
		cfg.Serve.Port = 8000
	}
	if cfg.Site.URL != "" {
		for i := range cfg.Menu.Items {
			cfg.Menu.Items[i].URL = resolveAgainst(cfg.Site.URL, cfg.Menu.Items[i].URL)
		}
	}
}

// resolveAgainst resolves a site-relative link against the site URL. Absolute
// links and fragments are returned unchanged.
func resolveAgainst(siteURL, link string) string {
	if link == "" || strings.HasPrefix(link, "#") {
		return link
	}
	ref, err := url.Parse(link)
	if err != nil || ref.IsAbs() || strings.HasPrefix(link, "//") {
		return link
	}
	base, err := url.Parse(strings.TrimSuffix(siteURL, "/") + "/")
	if err != nil {
		return link
	}
	return base.ResolveReference(ref).String()
}
