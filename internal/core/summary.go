package core

import "time"

// HeadlineMetrics are the four summary numbers of a year.
type HeadlineMetrics struct {
	TotalIncome     Money
	TotalExpense    Money
	TotalInvestment Money
	Balance         Money // TotalIncome - TotalExpense, may be negative
}

// MonthTypeAmount is one point of the monthly trend series.
type MonthTypeAmount struct {
	Month  time.Month
	Type   TxType
	Amount Money
}

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Category string
	Amount   Money
}

// SummaryRow is one month of the annual summary table.
type SummaryRow struct {
	Month   time.Month
	Income  Money
	Expense Money
}

// Total returns Income + Expense.
func (r SummaryRow) Total() Money {
	return r.Income.Add(r.Expense)
}
