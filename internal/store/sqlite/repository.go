// Package sqlite persists the ledger in a SQLite table, one row per
// transaction, ordered by insertion position.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"keuangan/internal/core"
	"keuangan/internal/store"

	_ "modernc.org/sqlite"
)

var _ store.Store = (*Repository)(nil)

const (
	selectAll = `SELECT date, category, type, amount, note, month, year FROM transactions ORDER BY position`
	deleteAll = `DELETE FROM transactions`
	insertRow = `INSERT INTO transactions (position, date, category, type, amount, note, month, year) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
)

type Repository struct {
	db     *sql.DB
	source string
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer at a time; sqlite serialises anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db, source: "sqlite:" + dbPath}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load reads every row in position order and decodes it through the shared
// row schema.
func (r *Repository) Load(ctx context.Context) (core.Ledger, error) {
	rows, err := r.db.QueryContext(ctx, selectAll)
	if err != nil {
		return core.Ledger{}, &core.StorageReadError{Source: r.source, Err: err}
	}
	defer rows.Close()

	var txs []core.Transaction
	for n := 2; rows.Next(); n++ {
		var (
			date, category, typ, note, month string
			amount                           int64
			year                             int
		)
		if err := rows.Scan(&date, &category, &typ, &amount, &note, &month, &year); err != nil {
			return core.Ledger{}, &core.StorageReadError{Source: r.source, Row: n, Err: err}
		}
		tx, err := store.DecodeRow(r.source, n, []string{
			date, category, typ, strconv.FormatInt(amount, 10), note, month, strconv.Itoa(year),
		})
		if err != nil {
			return core.Ledger{}, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return core.Ledger{}, &core.StorageReadError{Source: r.source, Err: err}
	}
	return core.NewLedger(txs...), nil
}

// Save replaces the table contents in a single SQL transaction.
func (r *Repository) Save(ctx context.Context, l core.Ledger) error {
	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &core.StorageWriteError{Source: r.source, Err: fmt.Errorf("begin: %w", err)}
	}
	defer dbtx.Rollback()

	if _, err := dbtx.ExecContext(ctx, deleteAll); err != nil {
		return &core.StorageWriteError{Source: r.source, Err: fmt.Errorf("clear: %w", err)}
	}
	stmt, err := dbtx.PrepareContext(ctx, insertRow)
	if err != nil {
		return &core.StorageWriteError{Source: r.source, Err: fmt.Errorf("prepare insert: %w", err)}
	}
	defer stmt.Close()

	for i, tx := range l.Transactions() {
		_, err := stmt.ExecContext(ctx, i+1, tx.Date.String(), tx.Category, string(tx.Type), tx.Amount.Rupiah, tx.Note, tx.Month(), tx.Year())
		if err != nil {
			return &core.StorageWriteError{Source: r.source, Err: fmt.Errorf("insert row %d: %w", i+1, err)}
		}
	}
	if err := dbtx.Commit(); err != nil {
		return &core.StorageWriteError{Source: r.source, Err: fmt.Errorf("commit: %w", err)}
	}

	slog.InfoContext(ctx, "Ledger saved to SQLite", "rows", l.Len())
	return nil
}
