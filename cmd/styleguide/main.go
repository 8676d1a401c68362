package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/styleguide/cmd/styleguide/commands"
	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
	"git.home.luguber.info/inful/styleguide/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("styleguide"),
		kong.Description("Generate a static HTML styleguide from documented stylesheets."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	err := parser.Run(&commands.Global{Logger: slog.Default()}, cli)
	ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
