package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/mdcollect/cmd/mdcollect/commands"
	ferrors "git.home.luguber.info/inful/mdcollect/internal/foundation/errors"
	"git.home.luguber.info/inful/mdcollect/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Must(cli,
		kong.Name("mdcollect"),
		kong.Description("Extract inline marker data from Markdown books into JSON indexes."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	global := &commands.Global{Logger: slog.Default(), RunID: uuid.NewString()}
	if err := ctx.Run(global, cli); err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
