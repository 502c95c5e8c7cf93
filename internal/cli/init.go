// Package cli provides the initialization shared by cmd/keuangan,
// cmd/keuangan-cli and cmd/keuangan-worker.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"keuangan/internal/amqp"
	"keuangan/internal/backend"
	"keuangan/internal/cache"
	"keuangan/internal/config"
	klog "keuangan/internal/log"
	"keuangan/internal/report"
	"keuangan/internal/services"
)

// LoadEnvFile loads .env for local development. A missing file is fine.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the logger described by cfg and installs it as the
// slog default.
func SetupLogger(cfg *config.Config, out io.Writer, component string) *klog.Logger {
	level, err := klog.ParseLevel(cfg.LogLevel)
	logger := klog.New(klog.Config{
		Level:     level,
		Component: component,
		Format:    cfg.LogFormat,
		Output:    out,
	})
	klog.SetDefault(logger)
	if err != nil {
		logger.Warn("Unknown log level, using info", klog.FieldError, err)
	}
	return logger
}

// LoadAndValidateConfig loads the configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoadConfig is LoadAndValidateConfig that exits the process on failure.
func MustLoadConfig() *config.Config {
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return cfg
}

// NewLedgerService wires the configured store, the optional AMQP publisher
// and the dashboard cache, registering the cache with caches when it is not
// nil. The returned cleanup closes the store and the publisher.
func NewLedgerService(ctx context.Context, cfg *config.Config, logger *slog.Logger, caches *cache.Manager) (*services.LedgerService, func() error, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, nil, err
	}

	var publisher services.Publisher
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without notifications", "error", err)
		} else {
			publisher = amqpClient
			logger.Info("Initialized AMQP client", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	dashboards := cache.NewLRUCache[report.Dashboard](cfg.CacheSize, cfg.CacheTTL)
	if caches != nil {
		caches.Register(dashboards)
	}
	svc := services.NewLedgerService(res.Store, publisher, dashboards)

	cleanup := func() error {
		var firstErr error
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				firstErr = err
			}
		}
		if err := res.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		return firstErr
	}
	return svc, cleanup, nil
}

// GracefulShutdown returns a context cancelled on SIGINT or SIGTERM, and a
// channel closed once cleanup has run or timeout has passed.
func GracefulShutdown(logger *klog.Logger, timeout time.Duration, cleanup func()) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		cancel()

		finished := make(chan struct{})
		go func() {
			if cleanup != nil {
				cleanup()
			}
			close(finished)
		}()

		select {
		case <-finished:
			logger.Info("Shutdown complete")
		case <-time.After(timeout):
			logger.Warn("Shutdown timeout reached")
		}
		close(done)
	}()

	return ctx, done
}

// WaitForShutdown blocks until the context is cancelled and cleanup is done.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}
