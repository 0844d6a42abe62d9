package commands

import (
	"fmt"

	"git.home.luguber.info/inful/kbits/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Dir   string `arg:"" optional:"" default:"." type:"path" help:"Directory to write site.yaml and publish.yaml into"`
	Force bool   `help:"Overwrite existing settings files"`
}

func (i *InitCmd) Run(g *Global, _ *CLI) error {
	written, err := config.Init(i.Dir, i.Force)
	if err != nil {
		return err
	}
	for _, path := range written {
		if _, err := fmt.Fprintf(g.out(), "Wrote %s\n", path); err != nil {
			return err
		}
	}
	return nil
}
