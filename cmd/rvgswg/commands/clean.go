package commands

import (
	"github.com/rvgswg/rvgswg/internal/logfields"
	"github.com/rvgswg/rvgswg/internal/staging"
)

// CleanCmd implements the 'clean' command.
type CleanCmd struct{}

func (c *CleanCmd) Run(g *Global, root *CLI) error {
	p, logger, err := loadProject(g, root)
	if err != nil {
		return err
	}
	if err := staging.NewManager(p.SourceDir, p.OutputDir).WithLogger(logger).Clean(); err != nil {
		return err
	}
	logger.Info("Output directory removed", logfields.Output(p.OutputDir))
	return nil
}
