package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type yearsCmd struct {
	app *app
}

func (*yearsCmd) Name() string     { return "years" }
func (*yearsCmd) Synopsis() string { return "list the years with transactions" }
func (*yearsCmd) Usage() string {
	return `keuangan-cli years

  Prints one year per line, most recent first.
`
}

func (*yearsCmd) SetFlags(*flag.FlagSet) {}

func (c *yearsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := c.app.service(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	years, err := svc.Years(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, y := range years {
		fmt.Fprintln(c.app.out, y)
	}
	return subcommands.ExitSuccess
}
