package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"keuangan/internal/config"
	"keuangan/internal/core"
	"keuangan/internal/store/csvfile"
	"keuangan/internal/store/memory"
	"keuangan/internal/store/sqlite"
)

func TestBackendType(t *testing.T) {
	for _, bt := range GetBackendTypes() {
		require.True(t, bt.IsValid(), bt.String())
	}
	require.False(t, BackendType("postgres").IsValid())
}

func TestFromAppConfig(t *testing.T) {
	_, err := FromAppConfig(nil)
	require.Error(t, err)

	_, err = FromAppConfig(&config.Config{DataBackend: "postgres"})
	require.ErrorContains(t, err, "invalid backend type")

	cfg, err := FromAppConfig(&config.Config{DataBackend: "csv", CSVPath: "x.csv", GoogleSpreadsheetID: "id"})
	require.NoError(t, err)
	require.Equal(t, CSVBackend, cfg.Type)
	require.Equal(t, "x.csv", cfg.CSVPath)
	require.Equal(t, "id", cfg.GoogleSpreadsheetID)
}

func TestMirrorFromAppConfig(t *testing.T) {
	_, err := MirrorFromAppConfig(&config.Config{DataBackend: "csv"})
	require.Error(t, err)

	cfg, err := MirrorFromAppConfig(&config.Config{DataBackend: "csv", GoogleSpreadsheetID: "id", GoogleSheetName: "Ledger"})
	require.NoError(t, err)
	require.Equal(t, SheetsBackend, cfg.Type)
	require.Equal(t, "Ledger", cfg.GoogleSheetName)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"csv ok", Config{Type: CSVBackend, CSVPath: "a.csv"}, false},
		{"csv without path", Config{Type: CSVBackend}, true},
		{"sqlite without path", Config{Type: SQLiteBackend}, true},
		{"sheets without id", Config{Type: SheetsBackend}, true},
		{"memory ok", Config{Type: MemoryBackend}, false},
		{"unknown", Config{Type: "x"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Equal(t, tt.wantErr, err != nil, "err = %v", err)
		})
	}
}

func TestCreateBackend(t *testing.T) {
	ctx := context.Background()
	f := NewFactory(nil)
	dir := t.TempDir()

	t.Run("csv", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: CSVBackend, CSVPath: filepath.Join(dir, "k.csv")})
		require.NoError(t, err)
		require.IsType(t, &csvfile.Store{}, res.Store)
		require.NoError(t, res.Close())
	})

	t.Run("sqlite", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "k.db")})
		require.NoError(t, err)
		require.IsType(t, &sqlite.Repository{}, res.Store)

		tx := core.Transaction{Date: core.NewDate(2024, 1, 1), Type: core.Income, Category: "Gaji", Amount: core.Money{Rupiah: 1}}
		require.NoError(t, res.Store.Save(ctx, core.NewLedger(tx)))
		l, err := res.Store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, l.Len())
		require.NoError(t, res.Close())
	})

	t.Run("memory", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: MemoryBackend})
		require.NoError(t, err)
		require.IsType(t, &memory.Store{}, res.Store)
		require.Nil(t, res.Cleanup)
	})

	t.Run("sheets without credentials", func(t *testing.T) {
		t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
		_, err := f.CreateBackend(ctx, Config{Type: SheetsBackend, GoogleSpreadsheetID: "id"})
		require.ErrorContains(t, err, "failed to initialize Google Sheets client")
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := f.CreateBackend(ctx, Config{Type: "nope"})
		require.Error(t, err)
	})
}
