package store

import (
	"context"

	"keuangan/internal/core"
)

// Ports for durable ledger storage.
type (
	// LedgerLoader reads the full persisted ledger. Absent data is an empty
	// ledger, not an error. Malformed data fails with *core.StorageReadError.
	LedgerLoader interface {
		Load(ctx context.Context) (core.Ledger, error)
	}

	// LedgerSaver overwrites the persisted ledger with l. Failures are
	// *core.StorageWriteError.
	LedgerSaver interface {
		Save(ctx context.Context, l core.Ledger) error
	}

	Store interface {
		LedgerLoader
		LedgerSaver
	}
)
