package commands

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/kbits/internal/config"
	"git.home.luguber.info/inful/kbits/internal/generator"
)

// LogLevelEnv overrides the configured log level unless --verbose is given.
const LogLevelEnv = "KBITS_LOG_LEVEL"

// Global carries dependencies shared by all subcommands. Zero values select
// the real implementations.
type Global struct {
	Out    io.Writer
	Runner generator.Runner
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Global) runner() generator.Runner {
	if g == nil || g.Runner == nil {
		return &generator.BinaryRunner{Stdout: os.Stdout, Stderr: os.Stderr}
	}
	return g.Runner
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Settings file path" default:"site.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Generate the site with the build settings"`
	Rebuild RebuildCmd `cmd:"" help:"Generate the site after deleting the output directory"`
	Serve   ServeCmd   `cmd:"" help:"Build, serve and regenerate the site on change"`
	Publish PublishCmd `cmd:"" help:"Generate the site with the publish settings"`
	Init    InitCmd    `cmd:"" help:"Write example settings files"`
	Pages   PagesCmd   `cmd:"" help:"Print the pagination window for a page"`
}

// AfterApply runs after flag parsing; set up logging once. Commands that
// load settings refine it with the configured level and format.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	configureLogging(config.LoggingConfig{Level: config.LogLevelInfo, Format: config.LogFormatText}, c.Verbose)
	return nil
}

// loadConfig loads the settings file named by path and applies its logging
// section.
func (c *CLI) loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	configureLogging(cfg.Monitoring.Logging, c.Verbose)
	return cfg, nil
}

func configureLogging(lc config.LoggingConfig, verbose bool) {
	level := lc.Level
	if env, ok := os.LookupEnv(LogLevelEnv); ok && strings.TrimSpace(env) != "" {
		level = config.NormalizeLogLevel(env)
	}
	opts := &slog.HandlerOptions{Level: slogLevel(level)}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	var h slog.Handler
	if lc.Format == config.LogFormatJSON {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

func slogLevel(l config.LogLevel) slog.Level {
	switch l {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
