// Package ledger holds the pure aggregation functions over a ledger snapshot.
//
// Every function is total: it accepts any core.Ledger, including the empty
// one, never fails and never mutates its input. Sums are exact integer
// additions.
package ledger

import (
	"slices"
	"sort"
	"time"

	"keuangan/internal/core"
)

// Predicate selects transactions.
type Predicate func(core.Transaction) bool

// MonthType keys the month x type grouping.
type MonthType struct {
	Month time.Month
	Type  core.TxType
}

// IsType matches transactions of type t.
func IsType(t core.TxType) Predicate {
	return func(tx core.Transaction) bool { return tx.Type == t }
}

// InCategory matches transactions whose category is c, regardless of type.
func InCategory(c string) Predicate {
	return func(tx core.Transaction) bool { return tx.Category == c }
}

// InYear matches transactions dated in year y.
func InYear(y int) Predicate {
	return func(tx core.Transaction) bool { return tx.Year() == y }
}

// And matches when every predicate matches.
func And(ps ...Predicate) Predicate {
	return func(tx core.Transaction) bool {
		for _, p := range ps {
			if !p(tx) {
				return false
			}
		}
		return true
	}
}

// Filter returns the sub-ledger of matching transactions, order preserved.
func Filter(l core.Ledger, p Predicate) core.Ledger {
	var out []core.Transaction
	for i := 0; i < l.Len(); i++ {
		if tx := l.At(i); p(tx) {
			out = append(out, tx)
		}
	}
	return core.NewLedger(out...)
}

// FilterByYear returns the entries dated in year y. It is idempotent.
func FilterByYear(l core.Ledger, y int) core.Ledger {
	return Filter(l, InYear(y))
}

// DistinctYears returns every year present, newest first. An empty result is
// the "no data yet" state.
func DistinctYears(l core.Ledger) []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for i := 0; i < l.Len(); i++ {
		y := l.At(i).Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// SumWhere sums the amounts of matching transactions. No match sums to zero.
func SumWhere(l core.Ledger, p Predicate) core.Money {
	var total core.Money
	for i := 0; i < l.Len(); i++ {
		if tx := l.At(i); p(tx) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// GroupByMonthAndType sums amounts per (month, type). Only pairs with at least
// one transaction get a key.
func GroupByMonthAndType(l core.Ledger) map[MonthType]core.Money {
	out := make(map[MonthType]core.Money)
	for i := 0; i < l.Len(); i++ {
		tx := l.At(i)
		k := MonthType{Month: tx.Date.Month(), Type: tx.Type}
		out[k] = out[k].Add(tx.Amount)
	}
	return out
}

// GroupByCategory sums amounts per category, in first-seen order.
func GroupByCategory(l core.Ledger) []core.CategoryAmount {
	idx := make(map[string]int)
	var out []core.CategoryAmount
	for i := 0; i < l.Len(); i++ {
		tx := l.At(i)
		j, ok := idx[tx.Category]
		if !ok {
			j = len(out)
			idx[tx.Category] = j
			out = append(out, core.CategoryAmount{Category: tx.Category})
		}
		out[j].Amount = out[j].Amount.Add(tx.Amount)
	}
	return out
}

// SortByDateDesc returns the ledger ordered newest first. Entries sharing a
// date keep their insertion order.
func SortByDateDesc(l core.Ledger) core.Ledger {
	txs := l.Transactions()
	slices.SortStableFunc(txs, func(a, b core.Transaction) int {
		return b.Date.Compare(a.Date.Time)
	})
	return core.NewLedger(txs...)
}
