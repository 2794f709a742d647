package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Sparse  SparseCmd        `cmd:"" help:"Measure sparse insertion uniformity"`
	Shuffle ShuffleCmd       `cmd:"" help:"Measure shuffle mixing quality"`
	Demo    DemoCmd          `cmd:"" help:"Walk a seeded deck through its operations"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("deckhand"),
		kong.Description("Randomness analysis tooling for the deckhand pile container"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
