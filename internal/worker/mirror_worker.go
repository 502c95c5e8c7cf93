// Package worker copies the primary ledger to a secondary store, driven by
// ledger-saved notifications and a periodic safety tick.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"keuangan/internal/amqp"
	"keuangan/internal/store"
)

// MirrorWorker replaces the target ledger with the source ledger. The
// mirror is a full copy, so replaying or dropping a message is harmless.
type MirrorWorker struct {
	source store.LedgerLoader
	target store.LedgerSaver

	mu       sync.Mutex
	lastRows int
	lastRun  time.Time
}

func NewMirrorWorker(source store.LedgerLoader, target store.LedgerSaver) *MirrorWorker {
	return &MirrorWorker{source: source, target: target, lastRows: -1}
}

// HandleLedgerSaved mirrors in response to a notification. Errors make the
// consumer requeue the message.
func (w *MirrorWorker) HandleLedgerSaved(ctx context.Context, msg *amqp.LedgerSavedMessage) error {
	slog.InfoContext(ctx, "Processing ledger saved message",
		"rows", msg.Rows,
		"year", msg.Year,
		"published_at", msg.Timestamp)

	if err := w.Mirror(ctx); err != nil {
		return fmt.Errorf("mirror after ledger saved: %w", err)
	}
	return nil
}

// Mirror loads the full source ledger and saves it to the target.
func (w *MirrorWorker) Mirror(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	l, err := w.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load source ledger: %w", err)
	}
	if err := w.target.Save(ctx, l); err != nil {
		return fmt.Errorf("save mirror ledger: %w", err)
	}
	w.lastRows = l.Len()
	w.lastRun = time.Now()

	slog.InfoContext(ctx, "Ledger mirrored", "rows", l.Len())
	return nil
}

// Run mirrors once at startup, then every interval until ctx is done.
// Individual failures are logged; the next tick retries.
func (w *MirrorWorker) Run(ctx context.Context, interval time.Duration) error {
	if err := w.Mirror(ctx); err != nil {
		slog.ErrorContext(ctx, "Startup mirror failed", "error", err)
	}
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Mirror ticker stopped", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := w.Mirror(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic mirror failed", "error", err)
			}
		}
	}
}

// Status reports the row count and time of the last successful mirror.
// Rows is -1 before the first success.
func (w *MirrorWorker) Status() (rows int, at time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastRows, w.lastRun
}
