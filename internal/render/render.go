// Package render turns dashboards into markdown and, for terminals, into
// styled text through glamour.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"keuangan/internal/core"
	"keuangan/internal/report"
)

// DefaultWidth is the word wrap applied when the caller passes zero.
const DefaultWidth = 100

// DashboardMarkdown renders every view of a dashboard. An empty dashboard
// renders a single "no data" notice.
func DashboardMarkdown(d report.Dashboard) string {
	var b strings.Builder

	if d.Empty() || d.Report == nil {
		fmt.Fprint(&b, "# Keuangan\n\n")
		fmt.Fprint(&b, "No transactions recorded yet.\n")
		return b.String()
	}
	r := d.Report

	fmt.Fprintf(&b, "# Keuangan %d\n\n", r.Year)
	if len(d.Years) > 1 {
		years := make([]string, len(d.Years))
		for i, y := range d.Years {
			years[i] = fmt.Sprint(y)
		}
		fmt.Fprintf(&b, "Years: %s\n\n", strings.Join(years, ", "))
	}

	fmt.Fprint(&b, "## Summary\n\n")
	fmt.Fprintln(&b, "| Metric | Amount |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Total income | %s |\n", r.Metrics.TotalIncome)
	fmt.Fprintf(&b, "| Total expense | %s |\n", r.Metrics.TotalExpense)
	fmt.Fprintf(&b, "| Total investment | %s |\n", r.Metrics.TotalInvestment)
	fmt.Fprintf(&b, "| **Balance** | **%s** |\n\n", r.Metrics.Balance)

	if len(r.Summary) > 0 {
		var income, expense core.Money
		fmt.Fprint(&b, "## Monthly\n\n")
		fmt.Fprintln(&b, "| Month | Income | Expense | Total |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|")
		for _, row := range r.Summary {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", row.Month, row.Income, row.Expense, row.Total())
			income = income.Add(row.Income)
			expense = expense.Add(row.Expense)
		}
		fmt.Fprintf(&b, "| **Total** | **%s** | **%s** | **%s** |\n\n", income, expense, income.Add(expense))
	}

	if len(r.Composition) > 0 {
		fmt.Fprint(&b, "## Expenses by category\n\n")
		fmt.Fprintln(&b, "| Category | Amount | Share |")
		fmt.Fprintln(&b, "|:---|---:|---:|")
		for _, c := range r.Composition {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", escapeCell(c.Category), c.Amount, share(c.Amount, r.Metrics.TotalExpense))
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprint(&b, "## Transactions\n\n")
	fmt.Fprintln(&b, "| Date | Type | Category | Amount | Note |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|:---|")
	for _, tx := range r.Details {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", tx.Date, tx.Type, escapeCell(tx.Category), tx.Amount, escapeCell(tx.Note))
	}

	return b.String()
}

// YearsMarkdown lists the years of the ledger, most recent first.
func YearsMarkdown(years []int) string {
	if len(years) == 0 {
		return "No transactions recorded yet.\n"
	}
	var b strings.Builder
	for _, y := range years {
		fmt.Fprintf(&b, "- %d\n", y)
	}
	return b.String()
}

// CategoriesMarkdown lists the allowed categories of each type.
func CategoriesMarkdown(types ...core.TxType) string {
	var b strings.Builder
	for i, t := range types {
		if i > 0 {
			fmt.Fprintln(&b)
		}
		fmt.Fprintf(&b, "## %s\n\n", t)
		for _, c := range core.Categories(t) {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}
	return b.String()
}

// Terminal styles markdown for a terminal. An empty style picks one from the
// terminal background.
func Terminal(md, style string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create terminal renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// share formats part as a whole percentage of total.
func share(part, total core.Money) string {
	if total.Rupiah <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(part.Rupiah)*100/float64(total.Rupiah))
}

// escapeCell keeps free text from breaking a table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
