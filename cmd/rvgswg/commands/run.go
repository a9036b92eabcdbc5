package commands

import (
	"github.com/rvgswg/rvgswg/internal/server"
)

// RunCmd implements the 'run' command. It serves whatever the serve directory
// holds and does not build first.
type RunCmd struct {
	Addr string `help:"Address to listen on" default:"localhost:8800"`
}

func (r *RunCmd) Run(g *Global, root *CLI) error {
	p, logger, err := loadProject(g, root)
	if err != nil {
		return err
	}
	return server.New(r.Addr, p.ServeDir).WithLogger(logger).ListenAndServe(g.context())
}
