package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"keuangan/internal/core"
	"keuangan/internal/ledger"
)

func mustTx(t *testing.T, s core.Submission) core.Transaction {
	t.Helper()
	tx, err := core.NewTransaction(s)
	require.NoError(t, err)
	return tx
}

func marchLedger(t *testing.T) core.Ledger {
	var l core.Ledger
	l = l.Append(mustTx(t, core.Submission{Date: "2024-03-05", Type: "Pemasukan", Category: "Gaji", Amount: 5000000}))
	l = l.Append(mustTx(t, core.Submission{Date: "2024-03-10", Type: "Pengeluaran", Category: "Kebutuhan Pokok", Amount: 1200000, Note: "groceries"}))
	return l
}

func TestMarchScenario(t *testing.T) {
	yl := ledger.FilterByYear(marchLedger(t), 2024)

	require.Equal(t, core.HeadlineMetrics{
		TotalIncome:     core.Money{Rupiah: 5000000},
		TotalExpense:    core.Money{Rupiah: 1200000},
		TotalInvestment: core.Money{Rupiah: 0},
		Balance:         core.Money{Rupiah: 3800000},
	}, HeadlineMetrics(yl))

	require.Equal(t, []core.SummaryRow{
		{Month: time.March, Income: core.Money{Rupiah: 5000000}, Expense: core.Money{Rupiah: 1200000}},
	}, AnnualSummaryTable(yl))

	require.Equal(t, []core.MonthTypeAmount{
		{Month: time.March, Type: core.Income, Amount: core.Money{Rupiah: 5000000}},
		{Month: time.March, Type: core.Expense, Amount: core.Money{Rupiah: 1200000}},
	}, MonthlyTrend(yl))
}

func TestCategoryCompositionNoCrossCategoryBleed(t *testing.T) {
	var l core.Ledger
	l = l.Append(mustTx(t, core.Submission{Date: "2024-06-01", Type: "Pengeluaran", Category: "Hiburan", Amount: 300000}))
	l = l.Append(mustTx(t, core.Submission{Date: "2024-06-20", Type: "Pengeluaran", Category: "Operasional Bulanan", Amount: 700000}))

	got := CategoryComposition(ledger.Filter(l, ledger.IsType(core.Expense)))
	require.Equal(t, []core.CategoryAmount{
		{Category: "Hiburan", Amount: core.Money{Rupiah: 300000}},
		{Category: "Operasional Bulanan", Amount: core.Money{Rupiah: 700000}},
	}, got)

	var total int64
	for _, row := range got {
		total += row.Amount.Rupiah
	}
	require.Equal(t, int64(1000000), total)
}

func TestCategoryCompositionDropsZeroCategories(t *testing.T) {
	l := core.NewLedger(
		core.Transaction{Date: core.NewDate(2024, 1, 1), Type: core.Expense, Category: "Hiburan", Amount: core.Money{Rupiah: 0}},
		core.Transaction{Date: core.NewDate(2024, 1, 2), Type: core.Expense, Category: "Investasi", Amount: core.Money{Rupiah: 10}},
	)
	require.Equal(t, []core.CategoryAmount{{Category: "Investasi", Amount: core.Money{Rupiah: 10}}}, ExpenseComposition(l))
}

func TestInvestmentCountsRegardlessOfType(t *testing.T) {
	// An income entry tagged Investasi cannot be built through NewTransaction,
	// but a hand-made one is counted in both income and investment.
	l := core.NewLedger(
		core.Transaction{Date: core.NewDate(2024, 2, 1), Type: core.Income, Category: core.Investment, Amount: core.Money{Rupiah: 400}},
		core.Transaction{Date: core.NewDate(2024, 2, 2), Type: core.Expense, Category: core.Investment, Amount: core.Money{Rupiah: 100}},
	)
	m := HeadlineMetrics(l)
	require.Equal(t, int64(400), m.TotalIncome.Rupiah)
	require.Equal(t, int64(100), m.TotalExpense.Rupiah)
	require.Equal(t, int64(500), m.TotalInvestment.Rupiah)
	require.Equal(t, int64(300), m.Balance.Rupiah)
}

func TestBalanceIdentity(t *testing.T) {
	l := core.NewLedger(
		core.Transaction{Date: core.NewDate(2024, 1, 1), Type: core.Income, Category: "Gaji", Amount: core.Money{Rupiah: 100}},
		core.Transaction{Date: core.NewDate(2024, 1, 5), Type: core.Expense, Category: "Hiburan", Amount: core.Money{Rupiah: 250}},
		core.Transaction{Date: core.NewDate(2024, 7, 5), Type: core.Expense, Category: "Lainnya", Amount: core.Money{Rupiah: 75}},
	)
	for _, in := range []core.Ledger{l, {}, ledger.FilterByYear(l, 2024)} {
		m := HeadlineMetrics(in)
		want := ledger.SumWhere(in, ledger.IsType(core.Income)).Sub(ledger.SumWhere(in, ledger.IsType(core.Expense)))
		require.Equal(t, want, m.Balance)
	}
	require.Equal(t, int64(-225), HeadlineMetrics(l).Balance.Rupiah)
}

func TestAnnualSummaryTable(t *testing.T) {
	l := core.NewLedger(
		core.Transaction{Date: core.NewDate(2024, time.November, 1), Type: core.Expense, Category: "Hiburan", Amount: core.Money{Rupiah: 20}},
		core.Transaction{Date: core.NewDate(2024, time.February, 1), Type: core.Income, Category: "Bonus", Amount: core.Money{Rupiah: 30}},
		core.Transaction{Date: core.NewDate(2024, time.February, 9), Type: core.Income, Category: "Gaji", Amount: core.Money{Rupiah: 70}},
		core.Transaction{Date: core.NewDate(2024, time.August, 3), Type: core.Expense, Category: "Hiburan", Amount: core.Money{Rupiah: 5}},
		core.Transaction{Date: core.NewDate(2024, time.August, 4), Type: core.Income, Category: "Dividen", Amount: core.Money{Rupiah: 8}},
		core.Transaction{Date: core.NewDate(2024, time.May, 4), Type: core.Expense, Category: "Lainnya", Amount: core.Money{}},
	)
	rows := AnnualSummaryTable(l)
	require.Equal(t, []core.SummaryRow{
		{Month: time.February, Income: core.Money{Rupiah: 100}},
		{Month: time.August, Income: core.Money{Rupiah: 8}, Expense: core.Money{Rupiah: 5}},
		{Month: time.November, Expense: core.Money{Rupiah: 20}},
	}, rows)

	for i, row := range rows {
		require.Contains(t, core.Months[:], row.Month)
		require.Positive(t, row.Total().Rupiah)
		if i > 0 {
			require.Greater(t, int(row.Month), int(rows[i-1].Month), "months must follow calendar order")
		}
	}
	require.Empty(t, AnnualSummaryTable(core.Ledger{}))
}

func TestMonthlyTrendOrdersByCalendarNotFirstSeen(t *testing.T) {
	l := core.NewLedger(
		core.Transaction{Date: core.NewDate(2024, time.December, 1), Type: core.Expense, Category: "Hiburan", Amount: core.Money{Rupiah: 1}},
		core.Transaction{Date: core.NewDate(2024, time.April, 1), Type: core.Expense, Category: "Hiburan", Amount: core.Money{Rupiah: 2}},
		core.Transaction{Date: core.NewDate(2024, time.April, 2), Type: core.Income, Category: "Gaji", Amount: core.Money{Rupiah: 3}},
	)
	require.Equal(t, []core.MonthTypeAmount{
		{Month: time.April, Type: core.Income, Amount: core.Money{Rupiah: 3}},
		{Month: time.April, Type: core.Expense, Amount: core.Money{Rupiah: 2}},
		{Month: time.December, Type: core.Expense, Amount: core.Money{Rupiah: 1}},
	}, MonthlyTrend(l))
	require.Empty(t, MonthlyTrend(core.Ledger{}))
}

func TestAssemble(t *testing.T) {
	t.Run("empty ledger is the no data state", func(t *testing.T) {
		d := Assemble(core.Ledger{}, 2024)
		require.True(t, d.Empty())
		require.Nil(t, d.Report)
	})

	l := marchLedger(t).Append(mustTx(t, core.Submission{Date: "2023-12-31", Type: "Pengeluaran", Category: "Hiburan", Amount: 10}))

	t.Run("defaults to latest year", func(t *testing.T) {
		d := Assemble(l, 0)
		require.False(t, d.Empty())
		require.Equal(t, []int{2024, 2023}, d.Years)
		require.Equal(t, 2024, d.Year)
		require.Equal(t, int64(3800000), d.Report.Metrics.Balance.Rupiah)
		require.Len(t, d.Report.Details, 2)
		require.Equal(t, "groceries", d.Report.Details[0].Note)
	})

	t.Run("selected year", func(t *testing.T) {
		d := Assemble(l, 2023)
		require.Equal(t, 2023, d.Year)
		require.Equal(t, 2023, d.Report.Year)
		require.Equal(t, []core.CategoryAmount{{Category: "Hiburan", Amount: core.Money{Rupiah: 10}}}, d.Report.Composition)
		require.Equal(t, []core.SummaryRow{{Month: time.December, Expense: core.Money{Rupiah: 10}}}, d.Report.Summary)
	})

	t.Run("unknown year falls back to latest", func(t *testing.T) {
		require.Equal(t, 2024, Assemble(l, 1990).Year)
	})
}
