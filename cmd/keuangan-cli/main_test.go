package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"

	"keuangan/internal/config"
	klog "keuangan/internal/log"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{
		DataBackend: "csv",
		CSVPath:     filepath.Join(t.TempDir(), "keuangan.csv"),
		CacheSize:   4,
	}
	var out bytes.Buffer
	a := newApp(cfg, klog.New(klog.Config{Output: io.Discard}), &out)
	t.Cleanup(func() { _ = a.close() })
	return a, &out
}

func execute(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	f.SetOutput(io.Discard)
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd.Execute(context.Background(), f)
}

func TestAddYearsReport(t *testing.T) {
	a, out := newTestApp(t)

	status := execute(t, &addCmd{app: a}, "-date", "2024-03-05", "-type", "expense", "-category", "Hiburan", "-amount", "Rp 150.000", "-note", "bioskop")
	if status != subcommands.ExitSuccess {
		t.Fatalf("add status = %v", status)
	}
	if !strings.Contains(out.String(), "Recorded Pengeluaran Rp 150.000 (Hiburan) on 2024-03-05") {
		t.Errorf("add output = %q", out.String())
	}

	execute(t, &addCmd{app: a}, "-date", "2023-01-01", "-type", "Pemasukan", "-category", "Gaji", "-amount", "1000")

	out.Reset()
	if status := execute(t, &yearsCmd{app: a}); status != subcommands.ExitSuccess {
		t.Fatalf("years status = %v", status)
	}
	if out.String() != "2024\n2023\n" {
		t.Errorf("years output = %q", out.String())
	}

	out.Reset()
	if status := execute(t, &reportCmd{app: a}, "-plain", "-year", "2024"); status != subcommands.ExitSuccess {
		t.Fatalf("report status = %v", status)
	}
	for _, want := range []string{"# Keuangan 2024", "| Hiburan | Rp 150.000 | 100.0% |", "bioskop"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("report missing %q:\n%s", want, out.String())
		}
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	tests := [][]string{
		{"-type", "Pengeluaran", "-category", "Hiburan"},
		{"-type", "Pengeluaran", "-category", "Hiburan", "-amount", "-5"},
		{"-type", "Pengeluaran", "-category", "Gaji", "-amount", "5"},
		{"-type", "Transfer", "-category", "Hiburan", "-amount", "5"},
		{"-type", "Pengeluaran", "-category", "Hiburan", "-amount", "5", "extra"},
	}
	for _, args := range tests {
		a, out := newTestApp(t)
		if status := execute(t, &addCmd{app: a}, args...); status != subcommands.ExitUsageError {
			t.Errorf("add %v status = %v, want usage error", args, status)
		}
		if out.Len() != 0 {
			t.Errorf("add %v wrote %q", args, out.String())
		}
	}
}

func TestReportEmptyLedger(t *testing.T) {
	a, out := newTestApp(t)
	if status := execute(t, &reportCmd{app: a}, "-plain"); status != subcommands.ExitSuccess {
		t.Fatalf("status = %v", status)
	}
	if !strings.Contains(out.String(), "No transactions recorded yet.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestCategories(t *testing.T) {
	a, out := newTestApp(t)
	if status := execute(t, &categoriesCmd{app: a}, "-plain", "-type", "income"); status != subcommands.ExitSuccess {
		t.Fatalf("status = %v", status)
	}
	if !strings.Contains(out.String(), "- Gaji") || strings.Contains(out.String(), "Hiburan") {
		t.Errorf("output = %q", out.String())
	}
	if a.svc != nil {
		t.Error("categories should not open the ledger")
	}

	if status := execute(t, &categoriesCmd{app: a}, "-type", "nope"); status != subcommands.ExitUsageError {
		t.Errorf("status = %v", status)
	}
}
