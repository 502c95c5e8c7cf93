package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	"keuangan/internal/cli"
	klog "keuangan/internal/log"
)

func main() {
	cli.LoadEnvFile()
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	logger := cli.SetupLogger(cfg, os.Stderr, klog.ComponentCLI)

	a := newApp(cfg, logger, os.Stdout)
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	register(commander, a)

	flag.Parse()
	status := commander.Execute(context.Background())
	if err := a.close(); err != nil {
		logger.Error("Failed to close ledger backend", klog.FieldError, err)
	}
	os.Exit(int(status))
}

func register(c *subcommands.Commander, a *app) {
	c.Register(&addCmd{app: a}, "ledger")
	c.Register(&reportCmd{app: a}, "ledger")
	c.Register(&yearsCmd{app: a}, "ledger")
	c.Register(&categoriesCmd{app: a}, "reference")
}
