package generator

import (
	"encoding/json"
	"fmt"
	"slices"

	"git.home.luguber.info/inful/kbits/internal/config"
)

// Mode selects which of the site's build commands a run performs.
type Mode string

const (
	ModeBuild   Mode = "build"
	ModeRebuild Mode = "rebuild"
	ModePublish Mode = "publish"
)

// ParseMode converts a command name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeBuild, ModeRebuild, ModePublish:
		return m, nil
	}
	return "", fmt.Errorf("unknown build mode %q", s)
}

// deletesOutput reports whether the generator is asked to wipe the output
// directory before writing.
func (m Mode) deletesOutput(cfg *config.Config) bool {
	return m == ModeRebuild || cfg.Build.DeleteOutputDirectory
}

// Invocation is one execution of the generator command.
type Invocation struct {
	Command string
	Args    []string
	Dir     string
}

func (i Invocation) String() string {
	return fmt.Sprintf("%s %d args in %s", i.Command, len(i.Args), i.Dir)
}

// BuildInvocation assembles the generator command line for mode:
//
//	<content> -o <output> [-d] [generator.args...] -e KEY=<json>...
//
// The -e overrides come last because the generator consumes every
// following argument as an override.
func BuildInvocation(cfg *config.Config, mode Mode) (Invocation, error) {
	args := []string{cfg.ContentDir(), "-o", cfg.OutputDir()}
	if mode.deletesOutput(cfg) {
		args = append(args, "-d")
	}
	args = append(args, cfg.Generator.Args...)

	settings := cfg.GeneratorSettings()
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	args = append(args, "-e")
	for _, k := range keys {
		v, err := json.Marshal(settings[k])
		if err != nil {
			return Invocation{}, fmt.Errorf("encode setting %s: %w", k, err)
		}
		args = append(args, k+"="+string(v))
	}

	return Invocation{
		Command: cfg.Generator.Command,
		Args:    args,
		Dir:     cfg.BaseDir(),
	}, nil
}
