package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"keuangan/internal/amqp"
	"keuangan/internal/backend"
	"keuangan/internal/cli"
	"keuangan/internal/config"
	klog "keuangan/internal/log"
	"keuangan/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.MustLoadConfig()
	logger := cli.SetupLogger(cfg, os.Stdout, klog.ComponentWorker)

	logger.Info("Starting keuangan-worker", klog.FieldBackend, cfg.DataBackend)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Worker stopped with error", klog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, logger *klog.Logger) error {
	if !cfg.MirrorEnabled() {
		return errors.New("mirroring needs GOOGLE_SPREADSHEET_ID and a DATA_BACKEND other than sheets")
	}
	factory := backend.NewFactory(logger.Logger)

	sourceCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	source, err := factory.CreateBackend(ctx, sourceCfg)
	if err != nil {
		return err
	}
	defer source.Close()

	mirrorCfg, err := backend.MirrorFromAppConfig(cfg)
	if err != nil {
		return err
	}
	target, err := factory.CreateBackend(ctx, mirrorCfg)
	if err != nil {
		return err
	}
	defer target.Close()

	w := worker.NewMirrorWorker(source.Store, target.Store)
	g, gctx := errgroup.WithContext(ctx)

	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return err
		}
		defer client.Close()

		g.Go(func() error {
			err := client.ConsumeLedgerSaved(gctx, w.HandleLedgerSaved)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	} else {
		logger.Info("AMQP_URL not set, mirroring on the interval only", "interval", cfg.MirrorInterval)
	}

	g.Go(func() error {
		return w.Run(gctx, cfg.MirrorInterval)
	})

	err = g.Wait()
	rows, at := w.Status()
	logger.Info("Mirror worker finished", klog.FieldRows, rows, "last_mirror", at)
	return err
}
