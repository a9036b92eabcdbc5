package commands

import "fmt"

// HelpCmd implements the 'help' command. It does not need an initialized project.
type HelpCmd struct{}

func (h *HelpCmd) Run(g *Global) error {
	if g != nil && g.Usage != nil {
		return g.Usage()
	}
	_, err := fmt.Fprintln(g.stdout(), "usage: rvgswg <init|gen|clean|run|help> [flags]")
	return err
}
