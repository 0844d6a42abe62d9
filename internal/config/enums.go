package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/kbits/internal/foundation/normalization"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer("log level", map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer("log format", map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

func NormalizeLogFormat(raw string) LogFormat {
	return logFormatNormalizer.Normalize(raw)
}

// SlugifySource selects which attribute page slugs are derived from.
type SlugifySource string

const (
	SlugifyTitle    SlugifySource = "title"
	SlugifyBasename SlugifySource = "basename"
)

var slugifyNormalizer = normalization.NewNormalizer("slugify source", map[string]SlugifySource{
	"title":    SlugifyTitle,
	"basename": SlugifyBasename,
}, SlugifyTitle)

// PageOrder selects the attribute static pages are ordered by.
type PageOrder string

const (
	PageOrderBasename PageOrder = "basename"
	PageOrderTitle    PageOrder = "title"
	PageOrderDate     PageOrder = "date"
	PageOrderSlug     PageOrder = "slug"
)

var pageOrderNormalizer = normalization.NewNormalizer("page order", map[string]PageOrder{
	"basename": PageOrderBasename,
	"title":    PageOrderTitle,
	"date":     PageOrderDate,
	"slug":     PageOrderSlug,
}, PageOrderBasename)

// Duration is a time.Duration written as a Go duration string ("90s", "1h").
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalYAML() (any, error) {
	if d == 0 {
		return "", nil
	}
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q: %w", node.Line, raw, err)
	}
	*d = Duration(parsed)
	return nil
}
