package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/bookbinder/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Path  string `arg:"" optional:"" help:"Where to write the configuration file." default:"book.toml"`
	Force bool   `help:"Overwrite an existing configuration file."`
}

func (i *InitCmd) Run(_ *Global, _ *CLI) error {
	if err := config.Init(i.Path, i.Force); err != nil {
		return err
	}
	slog.Info("Configuration written", "path", i.Path)
	fmt.Println("Wrote example configuration to", i.Path)
	return nil
}
