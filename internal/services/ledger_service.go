package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"keuangan/internal/amqp"
	"keuangan/internal/cache"
	"keuangan/internal/core"
	"keuangan/internal/ledger"
	klog "keuangan/internal/log"
	"keuangan/internal/report"
	"keuangan/internal/store"
)

// Publisher announces saved ledgers. *amqp.Client implements it.
type Publisher interface {
	PublishLedgerSaved(ctx context.Context, msg *amqp.LedgerSavedMessage) error
}

// LedgerService runs the load, append, save cycle for submissions and the
// load, aggregate cycle for reads.
type LedgerService struct {
	store     store.Store
	publisher Publisher
	cache     cache.Cache[report.Dashboard]

	// Serialises submits so two requests never interleave load and save.
	submitMu sync.Mutex
	// Bumped on every save; a read started before a save must not fill the
	// cache with what it loaded. cacheMu orders the bump and clear against a
	// reader's compare and set.
	generation atomic.Uint64
	cacheMu    sync.Mutex
}

// NewLedgerService wires a store with an optional publisher and cache.
// Either may be nil.
func NewLedgerService(st store.Store, publisher Publisher, c cache.Cache[report.Dashboard]) *LedgerService {
	return &LedgerService{store: st, publisher: publisher, cache: c}
}

// Submit validates s, appends it to the persisted ledger and saves. An
// invalid submission never touches the store.
func (s *LedgerService) Submit(ctx context.Context, sub core.Submission) (core.Transaction, error) {
	tx, err := core.NewTransaction(sub)
	if err != nil {
		return core.Transaction{}, err
	}

	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	current, err := s.store.Load(ctx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("load ledger: %w", err)
	}
	next := current.Append(tx)
	if err := s.store.Save(ctx, next); err != nil {
		return core.Transaction{}, fmt.Errorf("save ledger: %w", err)
	}
	s.cacheMu.Lock()
	s.generation.Add(1)
	if s.cache != nil {
		s.cache.Clear()
	}
	s.cacheMu.Unlock()

	klog.LogTransactionRecorded(ctx, tx, next.Len())

	if err := s.publish(ctx, amqp.NewLedgerSavedMessage(next.Len(), tx.Year())); err != nil {
		klog.LogError(ctx, "Failed to publish ledger saved message", err, klog.ComponentAMQP, klog.OpSubmit)
	}
	return tx, nil
}

func (s *LedgerService) publish(ctx context.Context, msg *amqp.LedgerSavedMessage) error {
	if s.publisher == nil {
		slog.DebugContext(ctx, "No publisher configured, skipping ledger saved message")
		return nil
	}
	return s.publisher.PublishLedgerSaved(ctx, msg)
}

// Dashboard assembles the views for year. Zero selects the latest year.
func (s *LedgerService) Dashboard(ctx context.Context, year int) (report.Dashboard, error) {
	key := "dashboard:" + strconv.Itoa(year)
	if s.cache != nil {
		if d, ok := s.cache.Get(key); ok {
			return d, nil
		}
	}

	gen := s.generation.Load()
	l, err := s.store.Load(ctx)
	if err != nil {
		return report.Dashboard{}, fmt.Errorf("load ledger: %w", err)
	}
	d := report.Assemble(l, year)
	if s.cache != nil {
		s.cacheMu.Lock()
		if s.generation.Load() == gen {
			s.cache.Set(key, d)
		}
		s.cacheMu.Unlock()
	}
	return d, nil
}

// Years lists the years present in the ledger, most recent first.
func (s *LedgerService) Years(ctx context.Context) ([]int, error) {
	d, err := s.Dashboard(ctx, 0)
	if err != nil {
		return nil, err
	}
	return d.Years, nil
}

// Ledger returns the full persisted ledger.
func (s *LedgerService) Ledger(ctx context.Context) (core.Ledger, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return core.Ledger{}, fmt.Errorf("load ledger: %w", err)
	}
	return l, nil
}

// YearLedger returns the entries of a single year in insertion order.
func (s *LedgerService) YearLedger(ctx context.Context, year int) (core.Ledger, error) {
	l, err := s.Ledger(ctx)
	if err != nil {
		return core.Ledger{}, err
	}
	return ledger.FilterByYear(l, year), nil
}

// Close releases the store and the publisher when they hold resources.
func (s *LedgerService) Close() error {
	var errs []error
	if c, ok := s.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if c, ok := s.publisher.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %w", errors.Join(errs...))
	}
	return nil
}
