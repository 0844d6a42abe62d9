package commands

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"git.home.luguber.info/inful/kbits/internal/generator"
)

// BuildOptions are shared by every command that runs the generator once.
type BuildOptions struct {
	DryRun    bool   `name:"dry-run" help:"Print the generator invocation without running it"`
	ReportDir string `name:"report-dir" type:"path" help:"Write build-report.json into this directory"`
}

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	BuildOptions
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	return runOnce(g, root, root.Config, generator.ModeBuild, b.BuildOptions)
}

// RebuildCmd implements the 'rebuild' command.
type RebuildCmd struct {
	BuildOptions
}

func (r *RebuildCmd) Run(g *Global, root *CLI) error {
	return runOnce(g, root, root.Config, generator.ModeRebuild, r.BuildOptions)
}

// PublishCmd implements the 'publish' command.
type PublishCmd struct {
	BuildOptions
	Profile string `short:"p" default:"publish.yaml" type:"path" help:"Publish settings file (usually extends the build settings)"`
}

func (p *PublishCmd) Run(g *Global, root *CLI) error {
	return runOnce(g, root, p.Profile, generator.ModePublish, p.BuildOptions)
}

func runOnce(g *Global, root *CLI, settings string, mode generator.Mode, opts BuildOptions) error {
	cfg, err := root.loadConfig(settings)
	if err != nil {
		return err
	}

	if opts.DryRun {
		inv, err := generator.BuildInvocation(cfg, mode)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(g.out(), "%s %s\n", inv.Command, strings.Join(inv.Args, " "))
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	b := generator.NewBuilder(cfg, g.runner()).WithReportDir(opts.ReportDir)
	report, err := b.Run(ctx, mode)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(g.out(), report.Summary())
	return err
}
