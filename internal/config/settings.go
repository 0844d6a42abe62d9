package config

// GeneratorSettings flattens the configuration into the generator's
// upper-case settings namespace. Disabled feeds and save-as targets map to
// nil or the empty string exactly as the generator expects.
func (c *Config) GeneratorSettings() map[string]any {
	s := map[string]any{
		"AUTHOR":              c.Site.Author,
		"SITENAME":            c.Site.Name,
		"SITEURL":             c.Site.URL,
		"DEFAULT_LANG":        c.Site.DefaultLang,
		"TIMEZONE":            c.Site.Timezone,
		"DEFAULT_DATE_FORMAT": c.Site.DefaultDateFormat,
		"DEFAULT_CATEGORY":    c.Site.DefaultCategory,

		"PATH":          c.ContentDir(),
		"ARTICLE_PATHS": nonNil(c.Paths.Articles),
		"STATIC_PATHS":  nonNil(c.Paths.Static),
		"OUTPUT_PATH":   c.OutputDir(),
		"IGNORE_FILES":  nonNil(c.Paths.IgnoreFiles),

		"PAGE_URL":        c.URLs.PageURL,
		"PAGE_SAVE_AS":    c.URLs.PageSaveAs,
		"AUTHOR_SAVE_AS":  c.URLs.AuthorSaveAs,
		"AUTHORS_SAVE_AS": c.URLs.AuthorsSaveAs,
		"RELATIVE_URLS":   c.URLs.RelativeURLs,

		"MENUITEMS":          pairs(c.Menu.Items),
		"LINKS_WIDGET_NAME":  c.Menu.LinksWidgetName,
		"LINKS":              pairs(c.Menu.Links),
		"SOCIAL_WIDGET_NAME": c.Menu.SocialWidgetName,
		"SOCIAL":             pairs(c.Menu.Social),

		"FEED_DOMAIN":           orNil(c.Feeds.Domain),
		"FEED_ALL_ATOM":         orNil(c.Feeds.AllAtom),
		"FEED_ALL_RSS":          orNil(c.Feeds.AllRSS),
		"CATEGORY_FEED_ATOM":    orNil(c.Feeds.CategoryAtom),
		"TRANSLATION_FEED_ATOM": orNil(c.Feeds.TranslationAtom),
		"AUTHOR_FEED_ATOM":      orNil(c.Feeds.AuthorAtom),
		"AUTHOR_FEED_RSS":       orNil(c.Feeds.AuthorRSS),

		"CACHE_CONTENT":            c.Content.Cache,
		"SLUGIFY_SOURCE":           string(c.Content.SlugifySource),
		"PAGE_ORDER_BY":            string(c.Content.PageOrderBy),
		"USE_FOLDER_AS_CATEGORY":   c.Content.UseFolderAsCategory,
		"STATIC_CHECK_IF_MODIFIED": c.Content.StaticCheckIfModified,
		"DOCUTILS_SETTINGS": map[string]any{
			"smart_quotes":   c.Content.Docutils.SmartQuotes,
			"strip_comments": c.Content.Docutils.StripComments,
			"math_output":    c.Content.Docutils.MathOutput,
		},

		"PAGINATION_WINDOW": map[string]int{
			"left_edge":     c.Pagination.Window.LeftEdge,
			"left_current":  c.Pagination.Window.LeftCurrent,
			"right_current": c.Pagination.Window.RightCurrent,
			"right_edge":    c.Pagination.Window.RightEdge,
		},

		"BIND":                    c.Serve.Bind,
		"PORT":                    c.Serve.Port,
		"DELETE_OUTPUT_DIRECTORY": c.Build.DeleteOutputDirectory,
	}

	// The generator treats false as "pagination off" and a number as the
	// page size.
	if c.Pagination.PerPage > 0 {
		s["DEFAULT_PAGINATION"] = c.Pagination.PerPage
	} else {
		s["DEFAULT_PAGINATION"] = false
	}
	if c.Site.Subtitle != "" {
		s["SITESUBTITLE"] = c.Site.Subtitle
	}
	if c.Site.Locale != "" {
		s["LOCALE"] = c.Site.Locale
	}
	return s
}

func pairs(links []Link) [][2]string {
	out := make([][2]string, 0, len(links))
	for _, l := range links {
		out = append(out, [2]string{l.Title, l.URL})
	}
	return out
}

func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
