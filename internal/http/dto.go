package http

import (
	"keuangan/internal/core"
	"keuangan/internal/report"
)

// MoneyDTO carries the exact amount and its display form.
type MoneyDTO struct {
	Rupiah  int64  `json:"rupiah"`
	Display string `json:"display"`
}

type TransactionDTO struct {
	Date     string   `json:"date"`
	Type     string   `json:"type"`
	Category string   `json:"category"`
	Amount   MoneyDTO `json:"amount"`
	Note     string   `json:"note"`
	Month    string   `json:"month"`
	Year     int      `json:"year"`
}

type MetricsDTO struct {
	TotalIncome     MoneyDTO `json:"total_income"`
	TotalExpense    MoneyDTO `json:"total_expense"`
	TotalInvestment MoneyDTO `json:"total_investment"`
	Balance         MoneyDTO `json:"balance"`
}

type TrendPointDTO struct {
	Month  string   `json:"month"`
	Type   string   `json:"type"`
	Amount MoneyDTO `json:"amount"`
}

type CategoryAmountDTO struct {
	Category string   `json:"category"`
	Amount   MoneyDTO `json:"amount"`
}

type SummaryRowDTO struct {
	Month   string   `json:"month"`
	Income  MoneyDTO `json:"income"`
	Expense MoneyDTO `json:"expense"`
	Total   MoneyDTO `json:"total"`
}

// DashboardDTO is the body of GET /api/dashboard. When Empty is true only
// Years is set.
type DashboardDTO struct {
	Empty       bool                `json:"empty"`
	Years       []int               `json:"years"`
	Year        int                 `json:"year,omitempty"`
	Metrics     *MetricsDTO         `json:"metrics,omitempty"`
	Trend       []TrendPointDTO     `json:"trend,omitempty"`
	Composition []CategoryAmountDTO `json:"composition,omitempty"`
	Details     []TransactionDTO    `json:"details,omitempty"`
	Summary     []SummaryRowDTO     `json:"summary,omitempty"`
}

func moneyDTO(m core.Money) MoneyDTO {
	return MoneyDTO{Rupiah: m.Rupiah, Display: m.String()}
}

func transactionDTO(tx core.Transaction) TransactionDTO {
	return TransactionDTO{
		Date:     tx.Date.String(),
		Type:     tx.Type.String(),
		Category: tx.Category,
		Amount:   moneyDTO(tx.Amount),
		Note:     tx.Note,
		Month:    tx.Month(),
		Year:     tx.Year(),
	}
}

func dashboardDTO(d report.Dashboard) DashboardDTO {
	out := DashboardDTO{Empty: d.Empty(), Years: append([]int{}, d.Years...)}
	if d.Empty() || d.Report == nil {
		return out
	}
	r := d.Report
	out.Year = r.Year
	out.Metrics = &MetricsDTO{
		TotalIncome:     moneyDTO(r.Metrics.TotalIncome),
		TotalExpense:    moneyDTO(r.Metrics.TotalExpense),
		TotalInvestment: moneyDTO(r.Metrics.TotalInvestment),
		Balance:         moneyDTO(r.Metrics.Balance),
	}
	for _, p := range r.Trend {
		out.Trend = append(out.Trend, TrendPointDTO{Month: p.Month.String(), Type: p.Type.String(), Amount: moneyDTO(p.Amount)})
	}
	for _, c := range r.Composition {
		out.Composition = append(out.Composition, CategoryAmountDTO{Category: c.Category, Amount: moneyDTO(c.Amount)})
	}
	for _, tx := range r.Details {
		out.Details = append(out.Details, transactionDTO(tx))
	}
	for _, row := range r.Summary {
		out.Summary = append(out.Summary, SummaryRowDTO{
			Month:   row.Month.String(),
			Income:  moneyDTO(row.Income),
			Expense: moneyDTO(row.Expense),
			Total:   moneyDTO(row.Total()),
		})
	}
	return out
}
