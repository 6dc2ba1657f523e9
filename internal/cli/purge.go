package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type purgeCmd struct {
	app *App
}

func (*purgeCmd) Name() string     { return "purge" }
func (*purgeCmd) Synopsis() string { return "deletes every stored key figure value" }
func (*purgeCmd) Usage() string {
	return `riskreport purge

  Deletes all rows of KeyFigureValue and prints how many were removed.

`
}

func (*purgeCmd) SetFlags(*flag.FlagSet) {}

func (c *purgeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintf(c.app.stderr(), "Error: purge takes no arguments\n")
		return subcommands.ExitUsageError
	}

	n, err := c.app.Catalog.PurgeKeyFigureValues(ctx)
	if err != nil {
		fmt.Fprintf(c.app.stderr(), "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(c.app.stdout(), "Deleted %d key figure values\n", n)
	return subcommands.ExitSuccess
}
