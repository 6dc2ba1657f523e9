package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"slices"

	"github.com/google/subcommands"

	"riskreport/internal/config"
	"riskreport/internal/date"
	"riskreport/internal/models"
	"riskreport/internal/report"
)

type reportCmd struct {
	app       *App
	portfolio string
	from      string
	figures   string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "computes a risk report and prints it as JSON" }
func (*reportCmd) Usage() string {
	return `riskreport report [-portfolio <name>] [-from <YYYY-MM-DD>] [-figures <list>] [<YYYY-MM-DD>]

  Computes the requested key figures of a portfolio on the report date and
  its cumulative returns from -from to the report date, stores every
  computed value, and prints the report as JSON.

  The report date defaults to the last business day before today; -from
  defaults to January 1 of the report year.

Usage Examples:
$ riskreport report
$ riskreport report -portfolio EQ_US -figures "Market value, Return (1D)" 2024-05-31

`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "portfolio", "EQ_US", "Portfolio name.")
	f.StringVar(&c.from, "from", "", "First day of the cumulative return series.")
	f.StringVar(&c.figures, "figures", "", "Comma-separated key figures. All supported key figures by default.")
}

func (c *reportCmd) settings(f *flag.FlagSet) (report.Settings, error) {
	s := report.Settings{PortfolioName: c.portfolio}

	switch f.NArg() {
	case 0:
		s.DateTo = date.LastBusinessDay(c.app.today())
	case 1:
		d, err := date.Parse(f.Arg(0))
		if err != nil {
			return s, err
		}
		s.DateTo = d
	default:
		return s, fmt.Errorf("expected at most one report date, got %d arguments", f.NArg())
	}

	s.DateFrom = s.DateTo.StartOfYear()
	if c.from != "" {
		d, err := date.Parse(c.from)
		if err != nil {
			return s, err
		}
		s.DateFrom = d
	}

	s.KeyFigures = slices.Clone(models.SupportedKeyFigures)
	if c.figures != "" {
		s.KeyFigures = config.SplitList(c.figures)
	}
	return s, nil
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	settings, err := c.settings(f)
	if err != nil {
		fmt.Fprintf(c.app.stderr(), "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	rep, err := c.app.Reports.Generate(ctx, settings)
	if err != nil {
		fmt.Fprintf(c.app.stderr(), "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	enc := json.NewEncoder(c.app.stdout())
	enc.SetIndent("", "    ")
	if err := enc.Encode(rep); err != nil {
		fmt.Fprintf(c.app.stderr(), "Error: could not write report: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
