package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"

	"keuangan/internal/core"
)

type addCmd struct {
	app *app

	date     string
	txType   string
	category string
	amount   string
	note     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an income or expense" }
func (*addCmd) Usage() string {
	return `keuangan-cli add -type <Pemasukan|Pengeluaran> -category <category> -amount <amount> [-date YYYY-MM-DD] [-note <text>]

  Appends a transaction to the ledger. Amounts are whole Rupiah and may use
  "." or "," as thousand separators, e.g. "Rp 1.500.000".
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", time.Now().Format(core.DateLayout), "transaction date")
	f.StringVar(&c.txType, "type", "", "Pemasukan (income) or Pengeluaran (expense)")
	f.StringVar(&c.category, "category", "", "category allowed for the type, see 'categories'")
	f.StringVar(&c.amount, "amount", "", "amount in Rupiah")
	f.StringVar(&c.note, "note", "", "free text note")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments %v\n", f.Args())
		return subcommands.ExitUsageError
	}

	amount, err := parseAmount(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	svc, err := c.app.service(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	tx, err := svc.Submit(ctx, core.Submission{
		Date:     c.date,
		Type:     c.txType,
		Category: c.category,
		Amount:   amount,
		Note:     c.note,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, core.ErrInvalidTransaction) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}

	fmt.Fprintf(c.app.out, "Recorded %s %s (%s) on %s\n", tx.Type, tx.Amount, tx.Category, tx.Date)
	return subcommands.ExitSuccess
}

func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &core.InvalidTransactionError{Field: "amount", Reason: "is required", Err: core.ErrInvalidAmount}
	}
	if strings.HasPrefix(s, "-") {
		return 0, &core.InvalidTransactionError{Field: "amount", Reason: "must not be negative", Err: core.ErrInvalidAmount}
	}
	m, err := core.ParseMoney(s)
	if err != nil {
		return 0, &core.InvalidTransactionError{Field: "amount", Reason: "must be a whole number of Rupiah", Err: err}
	}
	return m.Rupiah, nil
}
