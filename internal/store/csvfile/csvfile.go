// Package csvfile persists the ledger as a single CSV file with a header row.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"keuangan/internal/core"
	"keuangan/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store reads and rewrites one CSV file. It holds no state between calls.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the whole file. A missing file is an empty ledger.
func (s *Store) Load(ctx context.Context) (core.Ledger, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.DebugContext(ctx, "Ledger file absent, starting empty", "path", s.path)
		return core.Ledger{}, nil
	}
	if err != nil {
		return core.Ledger{}, &core.StorageReadError{Source: s.path, Err: err}
	}
	defer f.Close()

	rows, err := readAll(f)
	if err != nil {
		return core.Ledger{}, &core.StorageReadError{Source: s.path, Err: err}
	}
	l, err := store.DecodeRows(s.path, rows)
	if err != nil {
		return core.Ledger{}, err
	}
	slog.DebugContext(ctx, "Ledger loaded", "path", s.path, "rows", l.Len())
	return l, nil
}

func readAll(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	// Column count is checked per row by the schema so the error names the row.
	cr.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		// Blank trailing lines are skipped by encoding/csv already.
		rows = append(rows, rec)
	}
}

// Save replaces the file with l. It writes a temporary file next to the
// target, syncs it and renames it into place, so a failed save leaves the
// previous file intact.
func (s *Store) Save(ctx context.Context, l core.Ledger) error {
	if err := ctx.Err(); err != nil {
		return &core.StorageWriteError{Source: s.path, Err: err}
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &core.StorageWriteError{Source: s.path, Err: fmt.Errorf("create directory: %w", err)}
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &core.StorageWriteError{Source: s.path, Err: err}
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(store.EncodeRows(l)); err != nil {
		return &core.StorageWriteError{Source: s.path, Err: fmt.Errorf("encode: %w", err)}
	}
	if err := tmp.Sync(); err != nil {
		return &core.StorageWriteError{Source: s.path, Err: fmt.Errorf("sync: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		return &core.StorageWriteError{Source: s.path, Err: fmt.Errorf("close: %w", err)}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return &core.StorageWriteError{Source: s.path, Err: fmt.Errorf("replace: %w", err)}
	}
	committed = true

	slog.InfoContext(ctx, "Ledger saved", "path", s.path, "rows", l.Len())
	return nil
}
