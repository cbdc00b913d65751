package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/bookbinder/cmd/bookbinder/commands"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("bookbinder"),
		kong.Description("Build a static reader website from a book configuration and HTML/Markdown chapters."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	ctx.FatalIfErrorf(ctx.Run(&commands.Global{}))
}
