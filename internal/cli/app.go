// Package cli implements the riskreport command line application.
package cli

import (
	"io"
	"os"

	"github.com/google/subcommands"

	"riskreport/internal/date"
	"riskreport/internal/report"
	"riskreport/internal/services"
)

// App carries the dependencies shared by the subcommands.
type App struct {
	Reports report.Servicer
	Catalog services.CatalogServicer
	Out     io.Writer
	Err     io.Writer
	// Today defaults to date.Today.
	Today func() date.Date
}

func (a *App) stdout() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

func (a *App) stderr() io.Writer {
	if a.Err == nil {
		return os.Stderr
	}
	return a.Err
}

func (a *App) today() date.Date {
	if a.Today == nil {
		return date.Today()
	}
	return a.Today()
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander, app *App) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&reportCmd{app: app}, "risk")
	c.Register(&purgeCmd{app: app}, "risk")
}
