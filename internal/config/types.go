package config

import "git.home.luguber.info/inful/kbits/internal/pagination"

// CurrentVersion is the settings file format understood by this build.
const CurrentVersion = "1"

// Config is the typed form of the generator's site settings. A settings file
// may extend another one; see Load.
type Config struct {
	Version    string           `yaml:"version"`
	Extends    string           `yaml:"extends,omitempty"`
	Site       SiteConfig       `yaml:"site"`
	Paths      PathsConfig      `yaml:"paths"`
	URLs       URLConfig        `yaml:"urls"`
	Menu       MenuConfig       `yaml:"menu"`
	Feeds      FeedConfig       `yaml:"feeds"`
	Content    ContentConfig    `yaml:"content"`
	Pagination PaginationConfig `yaml:"pagination"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Serve      ServeConfig      `yaml:"serve"`
	Build      BuildConfig      `yaml:"build"`
	Monitoring MonitoringConfig `yaml:"monitoring"`

	// Source is the file the configuration was loaded from, and Chain lists
	// it together with every file it extends, outermost first.
	Source string   `yaml:"-"`
	Chain  []string `yaml:"-"`
}

// SiteConfig holds site identity and locale settings.
type SiteConfig struct {
	Author            string `yaml:"author"`
	Name              string `yaml:"name"`
	Subtitle          string `yaml:"subtitle,omitempty"`
	URL               string `yaml:"url"` // empty during development
	DefaultLang       string `yaml:"default_lang"`
	Timezone          string `yaml:"timezone"`
	Locale            string `yaml:"locale"`
	DefaultDateFormat string `yaml:"default_date_format"`
	DefaultCategory   string `yaml:"default_category"`
}

// PathsConfig describes where content is read from and where the site is written.
// Content is relative to the settings file; the others are relative to Content,
// except Output which is relative to the settings file.
type PathsConfig struct {
	Content     string   `yaml:"content"`
	Articles    []string `yaml:"articles"`
	Static      []string `yaml:"static"`
	Output      string   `yaml:"output"`
	IgnoreFiles []string `yaml:"ignore_files"`
}

// URLConfig holds URL and save-as patterns. An empty save-as pattern disables
// that page type.
type URLConfig struct {
	PageURL       string `yaml:"page_url"`
	PageSaveAs    string `yaml:"page_save_as"`
	AuthorSaveAs  string `yaml:"author_save_as"`
	AuthorsSaveAs string `yaml:"authors_save_as"`
	RelativeURLs  bool   `yaml:"relative_urls"`
}

// Link is a titled menu, blogroll, or social link.
type Link struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

// MenuConfig holds navigation and sidebar widgets.
type MenuConfig struct {
	Items            []Link `yaml:"items"`
	LinksWidgetName  string `yaml:"links_widget_name"`
	Links            []Link `yaml:"links"`
	SocialWidgetName string `yaml:"social_widget_name"`
	Social           []Link `yaml:"social"`
}

// FeedConfig holds feed output paths. An empty path disables the feed.
type FeedConfig struct {
	Domain          string `yaml:"domain"`
	AllAtom         string `yaml:"all_atom"`
	AllRSS          string `yaml:"all_rss"`
	CategoryAtom    string `yaml:"category_atom"`
	TranslationAtom string `yaml:"translation_atom"`
	AuthorAtom      string `yaml:"author_atom"`
	AuthorRSS       string `yaml:"author_rss"`
}

// Enabled reports whether any feed is generated.
func (f FeedConfig) Enabled() bool {
	return f.AllAtom != "" || f.AllRSS != "" || f.CategoryAtom != "" ||
		f.TranslationAtom != "" || f.AuthorAtom != "" || f.AuthorRSS != ""
}

// ContentConfig controls how the generator reads and orders content.
type ContentConfig struct {
	Cache                 bool           `yaml:"cache"`
	SlugifySource         SlugifySource  `yaml:"slugify_source"`
	PageOrderBy           PageOrder      `yaml:"page_order_by"`
	UseFolderAsCategory   bool           `yaml:"use_folder_as_category"`
	StaticCheckIfModified bool           `yaml:"static_check_if_modified"`
	Docutils              DocutilsConfig `yaml:"docutils"`
}

// DocutilsConfig holds reStructuredText reader settings.
type DocutilsConfig struct {
	SmartQuotes   bool   `yaml:"smart_quotes"`
	StripComments bool   `yaml:"strip_comments"`
	MathOutput    string `yaml:"math_output"`
}

// PaginationConfig controls listing pagination. PerPage of zero disables it.
// Window starts out as pagination.DefaultThresholds, so a settings file only
// needs to name the thresholds it changes.
type PaginationConfig struct {
	PerPage int                   `yaml:"per_page"`
	Window  pagination.Thresholds `yaml:"window"`
}

// GeneratorConfig names the external static-site generator.
type GeneratorConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`
}

// ServeConfig controls the local preview server.
type ServeConfig struct {
	Bind            string   `yaml:"bind"`
	Port            int      `yaml:"port"`
	RebuildInterval Duration `yaml:"rebuild_interval,omitempty"`
	MetricsPath     string   `yaml:"metrics_path,omitempty"`
	LiveReload      bool     `yaml:"livereload"`
}

// BuildConfig controls generator runs.
type BuildConfig struct {
	DeleteOutputDirectory bool `yaml:"delete_output_directory"`
}

// MonitoringConfig holds observability settings.
type MonitoringConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}
