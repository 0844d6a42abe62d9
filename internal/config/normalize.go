package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NormalizationResult captures adjustments & warnings from normalization pass.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig canonicalizes enumerations and paths in place.
func NormalizeConfig(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	res := &NormalizationResult{}
	c.Version = strings.TrimSpace(c.Version)

	if raw := string(c.Content.SlugifySource); raw != "" {
		v, err := slugifyNormalizer.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("content.slugify_source: %w", err)
		}
		res.noteChanged("content.slugify_source", raw, string(v))
		c.Content.SlugifySource = v
	}
	if raw := string(c.Content.PageOrderBy); raw != "" {
		v, err := pageOrderNormalizer.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("content.page_order_by: %w", err)
		}
		res.noteChanged("content.page_order_by", raw, string(v))
		c.Content.PageOrderBy = v
	}

	lvl := NormalizeLogLevel(string(c.Monitoring.Logging.Level))
	res.noteUnknown("monitoring.logging.level", string(c.Monitoring.Logging.Level), string(lvl), logLevelNormalizer.ValidKeys())
	c.Monitoring.Logging.Level = lvl
	format := NormalizeLogFormat(string(c.Monitoring.Logging.Format))
	res.noteUnknown("monitoring.logging.format", string(c.Monitoring.Logging.Format), string(format), logFormatNormalizer.ValidKeys())
	c.Monitoring.Logging.Format = format

	c.Paths.Content = cleanPath(c.Paths.Content)
	c.Paths.Output = cleanPath(c.Paths.Output)
	c.Site.URL = strings.TrimSuffix(strings.TrimSpace(c.Site.URL), "/")
	c.Feeds.Domain = strings.TrimSuffix(strings.TrimSpace(c.Feeds.Domain), "/")
	if c.Serve.MetricsPath != "" && !strings.HasPrefix(c.Serve.MetricsPath, "/") {
		c.Serve.MetricsPath = "/" + c.Serve.MetricsPath
	}
	return res, nil
}

func (r *NormalizationResult) noteChanged(field, from, to string) {
	if from != to {
		r.Warnings = append(r.Warnings, fmt.Sprintf("normalized %s from %q to %q", field, from, to))
	}
}

func (r *NormalizationResult) noteUnknown(field, raw, fallback string, valid []string) {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if cleaned == "" {
		return
	}
	for _, v := range valid {
		if v == cleaned {
			r.noteChanged(field, raw, fallback)
			return
		}
	}
	r.Warnings = append(r.Warnings, fmt.Sprintf("unknown %s %q, using %q", field, raw, fallback))
}

func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	return filepath.Clean(p)
}
