package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"keuangan/internal/core"
)

func tx(y int, m time.Month, d int, typ core.TxType, cat string, amount int64) core.Transaction {
	return core.Transaction{
		Date:     core.NewDate(y, m, d),
		Type:     typ,
		Category: cat,
		Amount:   core.Money{Rupiah: amount},
	}
}

func sample() core.Ledger {
	return core.NewLedger(
		tx(2023, time.December, 20, core.Income, "Bonus", 2000000),
		tx(2024, time.March, 5, core.Income, "Gaji", 5000000),
		tx(2024, time.March, 10, core.Expense, "Kebutuhan Pokok", 1200000),
		tx(2024, time.January, 15, core.Expense, "Investasi", 1000000),
		tx(2025, time.February, 1, core.Expense, "Hiburan", 300000),
		tx(2024, time.March, 10, core.Expense, "Hiburan", 250000),
	)
}

func TestDistinctYears(t *testing.T) {
	require.Equal(t, []int{2025, 2024, 2023}, DistinctYears(sample()))
	require.Empty(t, DistinctYears(core.Ledger{}))
}

func TestFilterByYear(t *testing.T) {
	l := sample()
	got := FilterByYear(l, 2024)
	require.Equal(t, 4, got.Len())
	for _, e := range got.Transactions() {
		require.Equal(t, 2024, e.Year())
	}
	// Order preserved.
	require.Equal(t, "Gaji", got.At(0).Category)
	require.Equal(t, "Hiburan", got.At(3).Category)

	require.Equal(t, got, FilterByYear(got, 2024), "filter must be idempotent")
	require.Equal(t, 0, FilterByYear(l, 1999).Len())
	require.Equal(t, 0, FilterByYear(core.Ledger{}, 2024).Len())
	require.Equal(t, 6, l.Len(), "input must not change")
}

func TestSumWhere(t *testing.T) {
	l := FilterByYear(sample(), 2024)
	require.Equal(t, int64(5000000), SumWhere(l, IsType(core.Income)).Rupiah)
	require.Equal(t, int64(2450000), SumWhere(l, IsType(core.Expense)).Rupiah)
	require.Equal(t, int64(1000000), SumWhere(l, InCategory("Investasi")).Rupiah)
	require.Equal(t, int64(250000), SumWhere(l, And(IsType(core.Expense), InCategory("Hiburan"))).Rupiah)
	require.True(t, SumWhere(l, InCategory("Dividen")).IsZero())
	require.True(t, SumWhere(core.Ledger{}, IsType(core.Income)).IsZero())
}

func TestSumWhereIsExactOverManySmallAmounts(t *testing.T) {
	var l core.Ledger
	for i := 0; i < 10000; i++ {
		l = l.Append(tx(2024, time.May, 1, core.Expense, "Hiburan", 333))
	}
	require.Equal(t, int64(3330000), SumWhere(l, IsType(core.Expense)).Rupiah)
}

func TestGroupByMonthAndType(t *testing.T) {
	got := GroupByMonthAndType(FilterByYear(sample(), 2024))
	require.Equal(t, map[MonthType]core.Money{
		{time.March, core.Income}:    {Rupiah: 5000000},
		{time.March, core.Expense}:   {Rupiah: 1450000},
		{time.January, core.Expense}: {Rupiah: 1000000},
	}, got)
	require.Empty(t, GroupByMonthAndType(core.Ledger{}))
}

func TestGroupByCategory(t *testing.T) {
	l := Filter(sample(), IsType(core.Expense))
	require.Equal(t, []core.CategoryAmount{
		{Category: "Kebutuhan Pokok", Amount: core.Money{Rupiah: 1200000}},
		{Category: "Investasi", Amount: core.Money{Rupiah: 1000000}},
		{Category: "Hiburan", Amount: core.Money{Rupiah: 550000}},
	}, GroupByCategory(l))
	require.Empty(t, GroupByCategory(core.Ledger{}))
}

func TestSortByDateDesc(t *testing.T) {
	l := FilterByYear(sample(), 2024)
	got := SortByDateDesc(l)
	require.Equal(t, 4, got.Len())
	require.Equal(t, "Kebutuhan Pokok", got.At(0).Category)
	require.Equal(t, "Hiburan", got.At(1).Category, "same-date entries keep insertion order")
	require.Equal(t, "Gaji", got.At(2).Category)
	require.Equal(t, "Investasi", got.At(3).Category)
	require.Equal(t, "Gaji", l.At(0).Category, "input must not change")
}
