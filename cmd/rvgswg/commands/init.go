package commands

import (
	"fmt"

	"github.com/rvgswg/rvgswg/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct{}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	out := g.stdout()
	_, _ = fmt.Fprintf(out, "Writing project marker to %s\n", root.Project)
	if err := config.Init(root.Project); err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}
	_, _ = fmt.Fprintln(out, "initialized successfully")
	return nil
}
