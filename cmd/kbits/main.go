package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/kbits/cmd/kbits/commands"
	"git.home.luguber.info/inful/kbits/internal/foundation/errors"
	"git.home.luguber.info/inful/kbits/internal/version"
)

func main() {
	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("kbits"),
		kong.Description("Build, preview and publish the kbits site."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := parser.Run(&commands.Global{}, &cli)
	errors.NewCLIErrorAdapter(cli.Verbose, nil).HandleError(err)
}
