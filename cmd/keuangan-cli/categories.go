package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"keuangan/internal/core"
	"keuangan/internal/render"
)

type categoriesCmd struct {
	app *app

	txType string
	plain  bool
}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "list the categories allowed for each type" }
func (*categoriesCmd) Usage() string {
	return `keuangan-cli categories [-type <Pemasukan|Pengeluaran>] [-plain]
`
}

func (c *categoriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.txType, "type", "", "only list this type")
	f.BoolVar(&c.plain, "plain", false, "print raw markdown")
}

func (c *categoriesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	types := []core.TxType{core.Income, core.Expense}
	if c.txType != "" {
		t, err := core.ParseTxType(c.txType)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		types = []core.TxType{t}
	}

	if err := c.app.printMarkdown(render.CategoriesMarkdown(types...), c.plain, "", 0); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
