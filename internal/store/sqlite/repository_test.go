package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"keuangan/internal/core"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "db", "keuangan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepositoryEmpty(t *testing.T) {
	l, err := newTestRepo(t).Load(context.Background())
	require.NoError(t, err)
	require.True(t, l.IsEmpty())
}

func TestRepositoryRoundTripKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	want := core.NewLedger(
		core.Transaction{Date: core.NewDate(2024, 3, 10), Type: core.Expense, Category: "Hiburan", Amount: core.Money{Rupiah: 250000}, Note: "bioskop"},
		core.Transaction{Date: core.NewDate(2023, 1, 2), Type: core.Income, Category: "Dividen", Amount: core.Money{Rupiah: 75}},
		core.Transaction{Date: core.NewDate(2024, 3, 5), Type: core.Income, Category: "Gaji", Amount: core.Money{Rupiah: 5000000}},
	)
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want.Transactions(), got.Transactions())

	// A second save replaces rather than appends.
	shorter := core.NewLedger(want.At(2))
	require.NoError(t, repo.Save(ctx, shorter))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, shorter.Transactions(), got.Transactions())
}

func TestRepositoryReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "keuangan.db")

	repo, err := NewRepository(path)
	require.NoError(t, err)
	tx := core.Transaction{Date: core.NewDate(2025, 2, 1), Type: core.Expense, Category: "Investasi", Amount: core.Money{Rupiah: 1}}
	require.NoError(t, repo.Save(ctx, core.NewLedger(tx)))
	require.NoError(t, repo.Close())

	// Migrations are idempotent on an existing database.
	repo, err = NewRepository(path)
	require.NoError(t, err)
	defer repo.Close()
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	require.Equal(t, tx, got.At(0))
}

func TestRepositoryRejectsInconsistentRows(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	_, err := repo.db.ExecContext(ctx, insertRow, 1, "2024-03-05", "Gaji", "Pemasukan", 10, "", "April", 2024)
	require.NoError(t, err)

	_, err = repo.Load(ctx)
	require.ErrorIs(t, err, core.ErrStorageRead)
	var rerr *core.StorageReadError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, 2, rerr.Row)
	require.Equal(t, "Month", rerr.Column)
}

func TestRepositorySaveAfterClose(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Close())
	err := repo.Save(context.Background(), core.Ledger{})
	require.ErrorIs(t, err, core.ErrStorageWrite)
}
