// Package report shapes aggregation results into the views a presentation
// layer renders: headline metrics, monthly trend, category composition,
// detail listing and the annual summary table.
//
// All functions are pure functions of their ledger input. Months are always
// emitted in calendar order, January first.
package report

import (
	"keuangan/internal/core"
	"keuangan/internal/ledger"
)

// YearReport bundles every view of a single year.
type YearReport struct {
	Year        int
	Metrics     core.HeadlineMetrics
	Trend       []core.MonthTypeAmount
	Composition []core.CategoryAmount
	Details     []core.Transaction
	Summary     []core.SummaryRow
}

// Dashboard is what one render of the ledger page needs. A dashboard with no
// years is the "no data yet" state; it carries no report.
type Dashboard struct {
	Years  []int
	Year   int
	Report *YearReport
}

// Empty reports the "no data yet" state.
func (d Dashboard) Empty() bool {
	return len(d.Years) == 0
}

// trendTypes orders the two series of a month, income first.
var trendTypes = [2]core.TxType{core.Income, core.Expense}

// HeadlineMetrics computes the four headline numbers. TotalInvestment counts
// every Investasi entry regardless of its type.
func HeadlineMetrics(yearLedger core.Ledger) core.HeadlineMetrics {
	income := ledger.SumWhere(yearLedger, ledger.IsType(core.Income))
	expense := ledger.SumWhere(yearLedger, ledger.IsType(core.Expense))
	return core.HeadlineMetrics{
		TotalIncome:     income,
		TotalExpense:    expense,
		TotalInvestment: ledger.SumWhere(yearLedger, ledger.InCategory(core.Investment)),
		Balance:         income.Sub(expense),
	}
}

// MonthlyTrend returns one point per (month, type) pair with at least one
// transaction, ordered by month then income before expense.
func MonthlyTrend(yearLedger core.Ledger) []core.MonthTypeAmount {
	groups := ledger.GroupByMonthAndType(yearLedger)
	out := make([]core.MonthTypeAmount, 0, len(groups))
	for _, m := range core.Months {
		for _, t := range trendTypes {
			if amount, ok := groups[ledger.MonthType{Month: m, Type: t}]; ok {
				out = append(out, core.MonthTypeAmount{Month: m, Type: t, Amount: amount})
			}
		}
	}
	return out
}

// CategoryComposition returns the nonzero category totals of a sub-ledger,
// normally the expense entries of a year, in first-seen order.
func CategoryComposition(subLedger core.Ledger) []core.CategoryAmount {
	groups := ledger.GroupByCategory(subLedger)
	out := make([]core.CategoryAmount, 0, len(groups))
	for _, g := range groups {
		if g.Amount.IsZero() {
			continue
		}
		out = append(out, g)
	}
	return out
}

// ExpenseComposition is CategoryComposition over the expense entries.
func ExpenseComposition(yearLedger core.Ledger) []core.CategoryAmount {
	return CategoryComposition(ledger.Filter(yearLedger, ledger.IsType(core.Expense)))
}

// DetailListing returns the entries newest first.
func DetailListing(yearLedger core.Ledger) []core.Transaction {
	return ledger.SortByDateDesc(yearLedger).Transactions()
}

// AnnualSummaryTable returns one row per month with a nonzero total, in
// calendar order. A month whose only entries are zero amounts is dropped
// like a month with no entries. Missing income or expense cells are zero.
func AnnualSummaryTable(yearLedger core.Ledger) []core.SummaryRow {
	groups := ledger.GroupByMonthAndType(yearLedger)
	out := make([]core.SummaryRow, 0, len(core.Months))
	for _, m := range core.Months {
		income, hasIncome := groups[ledger.MonthType{Month: m, Type: core.Income}]
		expense, hasExpense := groups[ledger.MonthType{Month: m, Type: core.Expense}]
		row := core.SummaryRow{Month: m, Income: income, Expense: expense}
		if (!hasIncome && !hasExpense) || row.Total().IsZero() {
			continue
		}
		out = append(out, row)
	}
	return out
}

// Build assembles every view of year y from the full ledger.
func Build(l core.Ledger, y int) YearReport {
	yl := ledger.FilterByYear(l, y)
	return YearReport{
		Year:        y,
		Metrics:     HeadlineMetrics(yl),
		Trend:       MonthlyTrend(yl),
		Composition: ExpenseComposition(yl),
		Details:     DetailListing(yl),
		Summary:     AnnualSummaryTable(yl),
	}
}

// Assemble builds the dashboard for the requested year. A year of zero, or a
// year without entries, selects the most recent year.
func Assemble(l core.Ledger, year int) Dashboard {
	years := ledger.DistinctYears(l)
	if len(years) == 0 {
		return Dashboard{Years: years}
	}
	selected := years[0]
	for _, y := range years {
		if y == year {
			selected = y
			break
		}
	}
	r := Build(l, selected)
	return Dashboard{Years: years, Year: selected, Report: &r}
}
