package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Gen     GenCmd           `cmd:"" help:"Generate pseudorandom values from a seed"`
	Check   CheckCmd         `cmd:"" help:"Run distribution quality checks against the generator"`
	Race    RaceCmd          `cmd:"" help:"Exercise the shared default generator under contention"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("splitmix"),
		kong.Description("Splittable pseudorandom number generator toolkit"),
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
