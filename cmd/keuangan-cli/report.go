package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"keuangan/internal/render"
)

type reportCmd struct {
	app *app

	year  int
	plain bool
	style string
	width int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the yearly ledger report" }
func (*reportCmd) Usage() string {
	return `keuangan-cli report [-year <year>] [-plain] [-style <glamour style>] [-width <columns>]

  Displays headline metrics, the monthly summary, expenses by category and
  every transaction of a year. Without -year, or for a year with no
  entries, the most recent year is shown.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "year to report on (defaults to the latest)")
	f.BoolVar(&c.plain, "plain", false, "print raw markdown")
	f.StringVar(&c.style, "style", "", "glamour style (dark, light, notty, ...); detected when empty")
	f.IntVar(&c.width, "width", render.DefaultWidth, "word wrap width")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := c.app.service(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	d, err := svc.Dashboard(ctx, c.year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.year != 0 && !d.Empty() && d.Year != c.year {
		fmt.Fprintf(os.Stderr, "No entries for %d, showing %d\n", c.year, d.Year)
	}

	if err := c.app.printMarkdown(render.DashboardMarkdown(d), c.plain, c.style, c.width); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
