package main

import (
	"context"
	"os"
	"time"

	"keuangan/internal/cache"
	"keuangan/internal/cli"
	apphttp "keuangan/internal/http"
	klog "keuangan/internal/log"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.MustLoadConfig()
	logger := cli.SetupLogger(cfg, os.Stdout, klog.ComponentApp)

	logger.Info("Starting keuangan server", "port", cfg.Port, klog.FieldBackend, cfg.DataBackend)

	caches := cache.NewManager()
	svc, closeService, err := cli.NewLedgerService(context.Background(), cfg, logger.Logger, caches)
	if err != nil {
		logger.Error("Failed to initialize ledger backend", klog.FieldError, err, klog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	caches.StartCleanup(cfg.CacheTTL)

	srv := apphttp.NewServer(":"+cfg.Port, svc, apphttp.Options{Logger: logger})
	srv.MaxHeaderBytes = 1 << 16

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", klog.FieldError, err)
		}
		requests, limits, detections := srv.Metrics()
		logger.Info("HTTP server metrics",
			"requests", requests.TotalRequests,
			"server_errors", requests.ServerErrors,
			"rate_limited", limits.Rejected,
			"suspicious", detections.SuspiciousRequests)
		caches.Stop()
		if err := closeService(); err != nil {
			logger.Error("Failed to close ledger backend", klog.FieldError, err)
		}
	})

	if err := srv.ListenAndServe(); err != nil {
		logger.Error("Server error", klog.FieldError, err, "port", cfg.Port)
		caches.Stop()
		_ = closeService()
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
