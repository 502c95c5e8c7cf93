package main

import (
	"context"
	"fmt"
	"io"

	"keuangan/internal/cli"
	"keuangan/internal/config"
	klog "keuangan/internal/log"
	"keuangan/internal/render"
	"keuangan/internal/services"
)

// app opens the ledger service on first use, so commands that never touch
// the ledger never need a working backend.
type app struct {
	cfg    *config.Config
	logger *klog.Logger
	out    io.Writer

	svc     *services.LedgerService
	cleanup func() error
}

func newApp(cfg *config.Config, logger *klog.Logger, out io.Writer) *app {
	return &app{cfg: cfg, logger: logger, out: out}
}

func (a *app) service(ctx context.Context) (*services.LedgerService, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	svc, cleanup, err := cli.NewLedgerService(ctx, a.cfg, a.logger.Logger, nil)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	a.svc, a.cleanup = svc, cleanup
	return svc, nil
}

func (a *app) close() error {
	if a.cleanup == nil {
		return nil
	}
	return a.cleanup()
}

// printMarkdown writes md as is when plain, styled for the terminal
// otherwise.
func (a *app) printMarkdown(md string, plain bool, style string, width int) error {
	if plain {
		_, err := io.WriteString(a.out, md)
		return err
	}
	out, err := render.Terminal(md, style, width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.out, out)
	return err
}
