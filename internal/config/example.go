package config

import "git.home.luguber.info/inful/kbits/internal/pagination"

// ExampleConfig returns the development settings written by Init.
func ExampleConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Site: SiteConfig{
			Author:            "Jane Doe",
			Name:              "Knowledge Bits",
			DefaultLang:       "en",
			Timezone:          "America/New_York",
			Locale:            "en_US.UTF-8",
			DefaultDateFormat: "%Y-%m-%d",
			DefaultCategory:   "Miscellanea",
		},
		Paths: PathsConfig{
			Content:     "src",
			Articles:    []string{"posts"},
			Static:      []string{"static"},
			Output:      "docs",
			IgnoreFiles: []string{".*.swp"},
		},
		URLs: URLConfig{
			PageURL:    "{slug}.html",
			PageSaveAs: "{slug}.html",
		},
		Menu: MenuConfig{
			Items: []Link{
				{Title: "Main", URL: "index.html"},
				{Title: "Archives", URL: "archives.html"},
				{Title: "Categories", URL: "categories.html"},
				{Title: "Tags", URL: "tags.html"},
			},
			LinksWidgetName:  "Links",
			Links:            []Link{{Title: "Site Repository", URL: "https://example.com/kbits"}},
			SocialWidgetName: "Social",
		},
		Content: ContentConfig{
			SlugifySource:         SlugifyBasename,
			PageOrderBy:           PageOrderTitle,
			StaticCheckIfModified: true,
			Docutils: DocutilsConfig{
				SmartQuotes:   true,
				StripComments: true,
				MathOutput:    "MathML",
			},
		},
		Pagination: PaginationConfig{Window: pagination.DefaultThresholds()},
		Generator:  GeneratorConfig{Command: "pelican"},
		Serve:      ServeConfig{Bind: "127.0.0.1", Port: 8000, LiveReload: true},
		Monitoring: MonitoringConfig{Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText}},
	}
}

type publishOverlay struct {
	Version string `yaml:"version"`
	Extends string `yaml:"extends"`
	Site    struct {
		URL string `yaml:"url"`
	} `yaml:"site"`
	URLs struct {
		RelativeURLs bool `yaml:"relative_urls"`
	} `yaml:"urls"`
	Feeds struct {
		AllAtom string `yaml:"all_atom"`
		AllRSS  string `yaml:"all_rss"`
	} `yaml:"feeds"`
	Build BuildConfig `yaml:"build"`
}

// ExamplePublishOverlay returns the publish profile written by Init. It
// extends the development settings and only lists what differs.
func ExamplePublishOverlay() any {
	var o publishOverlay
	o.Version = CurrentVersion
	o.Extends = "site.yaml"
	o.Site.URL = "https://example.com/kbits"
	o.Feeds.AllAtom = "feeds/all.atom.xml"
	o.Feeds.AllRSS = "feeds/posts.rss"
	o.Build.DeleteOutputDirectory = true
	return o
}
