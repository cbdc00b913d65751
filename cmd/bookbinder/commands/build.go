package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/bookbinder/internal/config"
	"git.home.luguber.info/inful/bookbinder/internal/history"
	"git.home.luguber.info/inful/bookbinder/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Config  string `arg:"" help:"Path to the book configuration file (book.toml or book.yaml)." type:"existingfile"`
	Output  string `short:"o" help:"Output directory." default:"dist"`
	History string `name:"history" help:"SQLite database to record build runs in (optional)." default:""`
}

func (b *BuildCmd) Run(_ *Global, _ *CLI) error {
	cfg, err := config.Load(b.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	root, err := filepath.Abs(filepath.Dir(b.Config))
	if err != nil {
		return fmt.Errorf("resolve config directory: %w", err)
	}

	builder := site.NewBuilder(cfg, root, b.Output)
	res, err := builder.Build()
	b.record(res, err)
	if err != nil {
		return err
	}

	outAbs, absErr := filepath.Abs(res.OutputDir)
	if absErr != nil {
		outAbs = res.OutputDir
	}
	slog.Info("Build completed",
		"output", outAbs,
		"chapters", res.Chapters,
		"pages", res.Pages,
		"artifacts", res.Artifacts,
		"duration", res.Duration)
	fmt.Println("Built site into:", outAbs)
	fmt.Printf("Preview locally: bookbinder serve %s -o %s\n", b.Config, b.Output)
	return nil
}

// record writes one history row when --history is set. History failures are
// logged, not fatal; the site on disk is already correct.
func (b *BuildCmd) record(res *site.Result, buildErr error) {
	if b.History == "" {
		return
	}
	store, err := history.Open(b.History)
	if err != nil {
		slog.Warn("Could not open build history", "path", b.History, "error", err)
		return
	}
	defer store.Close()

	row := history.Build{ConfigPath: b.Config, OutputDir: b.Output, Status: "success"}
	if buildErr != nil {
		row.Status = "failed"
	}
	if res != nil {
		row.Chapters = res.Chapters
		row.Duration = res.Duration
	}
	if err := store.Record(row); err != nil {
		slog.Warn("Could not record build history", "error", err)
	}
}
