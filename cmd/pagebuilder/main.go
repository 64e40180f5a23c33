package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pagebuilder/cmd/pagebuilder/commands"
	berrors "git.home.luguber.info/inful/pagebuilder/internal/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("pagebuilder"),
		kong.Description("Render a directory of Markdown content through composed templates."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	global := &commands.Global{Out: os.Stdout}
	if err := ctx.Run(global, &cli); err != nil {
		adapter := berrors.NewCLIErrorAdapter(cli.Verbose, global.Logger)
		adapter.HandleError(err)
	}
}
