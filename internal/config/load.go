package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/kbits/internal/foundation/errors"
)

// Load reads a settings file, following its extends chain.
//
// The extended file is decoded first and the extending file is decoded on
// top of it, so a publish profile only lists what differs from the build
// profile. Relative extends paths resolve against the extending file's
// directory. Environment variables in either file are expanded, after
// loading a .env file from the settings directory.
func Load(configPath string) (*Config, error) {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategorySettings, "resolve settings path").Build()
	}

	if envPath, err := loadEnvFile(filepath.Dir(abs)); err == nil {
		slog.Debug("Loaded environment variables", "file", envPath)
	} else if !errors.Is(err, errNoEnvFile) {
		slog.Warn("Failed to load .env file", "file", envPath, "error", err)
	}

	cfg := Defaults()
	if err := decodeChain(abs, cfg); err != nil {
		return nil, err
	}
	cfg.Source = abs

	nres, err := NormalizeConfig(cfg)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "normalize settings").
			WithContext("file", abs).Fatal().Build()
	}
	for _, w := range nres.Warnings {
		slog.Warn("Settings normalization", "file", abs, "warning", w)
	}
	applyDerivedDefaults(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "invalid settings").
			WithContext("file", abs).Fatal().Build()
	}
	return cfg, nil
}

// decodeChain decodes path and every file it extends onto cfg, outermost
// ancestor first.
func decodeChain(path string, cfg *Config) error {
	if slices.Contains(cfg.Chain, path) {
		return ferrors.SettingsError("settings extend cycle").WithContext("file", path).Build()
	}

	data, err := readExpanded(path)
	if err != nil {
		return err
	}

	var head struct {
		Extends string `yaml:"extends"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return ferrors.WrapError(err, ferrors.CategorySettings, "parse settings").
			WithContext("file", path).Fatal().Build()
	}
	if head.Extends != "" {
		parent := head.Extends
		if !filepath.IsAbs(parent) {
			parent = filepath.Join(filepath.Dir(path), parent)
		}
		// Mark path as in-progress so a cycle back to it is detected.
		cfg.Chain = append(cfg.Chain, path)
		if err := decodeChain(parent, cfg); err != nil {
			return err
		}
		cfg.Chain = slices.DeleteFunc(cfg.Chain, func(p string) bool { return p == path })
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return ferrors.WrapError(err, ferrors.CategorySettings, "parse settings").
			WithContext("file", path).Fatal().Build()
	}
	cfg.Chain = append(cfg.Chain, path)
	return nil
}

func readExpanded(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ferrors.NotFoundError("settings file not found").WithContext("file", path).Build()
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategorySettings, "read settings").
			WithContext("file", path).Fatal().Build()
	}
	return []byte(os.ExpandEnv(string(data))), nil
}

// BaseDir is the directory relative paths in the settings resolve against.
func (c *Config) BaseDir() string {
	if c.Source == "" {
		return "."
	}
	return filepath.Dir(c.Source)
}

// ContentDir returns the absolute-or-base-relative content directory.
func (c *Config) ContentDir() string { return c.resolve(c.Paths.Content) }

// OutputDir returns the absolute-or-base-relative output directory.
func (c *Config) OutputDir() string { return c.resolve(c.Paths.Output) }

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir(), p)
}

// Init writes example build and publish settings files into dir.
func Init(dir string, force bool) ([]string, error) {
	build := filepath.Join(dir, "site.yaml")
	publish := filepath.Join(dir, "publish.yaml")
	if !force {
		for _, p := range []string{build, publish} {
			if _, err := os.Stat(p); err == nil {
				return nil, ferrors.ValidationError("settings file already exists (use --force to overwrite)").
					WithContext("file", p).Build()
			}
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "create settings directory").Build()
	}

	files := []struct {
		path string
		cfg  any
	}{
		{build, ExampleConfig()},
		{publish, ExamplePublishOverlay()},
	}
	for _, f := range files {
		data, err := yaml.Marshal(f.cfg)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", f.path, err)
		}
		if err := os.WriteFile(f.path, data, 0o644); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "write settings file").
				WithContext("file", f.path).Build()
		}
	}
	return []string{build, publish}, nil
}
