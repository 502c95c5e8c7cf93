package memory

import (
	"context"
	"sync"

	"keuangan/internal/core"
	"keuangan/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store keeps the ledger in process memory. Used by tests and demo mode.
type Store struct {
	mu     sync.Mutex
	ledger core.Ledger
	saves  int
}

func New(seed ...core.Transaction) *Store {
	return &Store{ledger: core.NewLedger(seed...)}
}

func (s *Store) Load(_ context.Context) (core.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.NewLedger(s.ledger.Transactions()...), nil
}

func (s *Store) Save(ctx context.Context, l core.Ledger) error {
	if err := ctx.Err(); err != nil {
		return &core.StorageWriteError{Source: "memory", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = core.NewLedger(l.Transactions()...)
	s.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
