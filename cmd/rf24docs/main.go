package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/rf24docs/cmd/rf24docs/commands"
	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
	"git.home.luguber.info/inful/rf24docs/internal/version"
)

func main() {
	var cli commands.CLI
	global := &commands.Global{Out: os.Stdout}
	ctx := kong.Parse(&cli,
		kong.Name("rf24docs"),
		kong.Description("Documentation builder for the nRF24L01 library."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	global.Logger = cli.Logger()
	if err := ctx.Run(global, &cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
