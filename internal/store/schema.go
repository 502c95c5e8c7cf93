// Package store defines the ledger storage ports and the tabular row schema
// shared by every backend that persists the ledger as rows of text.
package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"keuangan/internal/core"
)

// Column names, in persisted order.
const (
	ColDate     = "Date"
	ColCategory = "Category"
	ColType     = "Type"
	ColAmount   = "Amount"
	ColNote     = "Note"
	ColMonth    = "Month"
	ColYear     = "Year"
)

// Header is the exact header row of a persisted ledger.
var Header = []string{ColDate, ColCategory, ColType, ColAmount, ColNote, ColMonth, ColYear}

var (
	ErrHeaderMismatch = errors.New("unexpected header")
	ErrColumnCount    = errors.New("wrong number of columns")
	ErrDerivedField   = errors.New("derived field does not match date")
)

// CheckHeader verifies a header row. Surrounding whitespace and a UTF-8 byte
// order mark on the first cell are tolerated; names and order are not.
func CheckHeader(source string, row []string) error {
	if len(row) != len(Header) {
		return &core.StorageReadError{Source: source, Row: 1, Err: fmt.Errorf("%w: got %v, want %v", ErrHeaderMismatch, row, Header)}
	}
	for i, name := range Header {
		cell := strings.TrimSpace(row[i])
		if i == 0 {
			cell = strings.TrimPrefix(cell, "\ufeff")
		}
		if cell != name {
			return &core.StorageReadError{Source: source, Row: 1, Column: name, Err: fmt.Errorf("%w: got %v, want %v", ErrHeaderMismatch, row, Header)}
		}
	}
	return nil
}

// EncodeRow renders a transaction as a persisted row.
func EncodeRow(tx core.Transaction) []string {
	return []string{
		tx.Date.String(),
		tx.Category,
		string(tx.Type),
		strconv.FormatInt(tx.Amount.Rupiah, 10),
		tx.Note,
		tx.Month(),
		strconv.Itoa(tx.Year()),
	}
}

// DecodeRow parses a persisted row. row is the 1-based row number including
// the header, used for error reporting. Every failure is a
// *core.StorageReadError; nothing is skipped or defaulted.
func DecodeRow(source string, row int, cells []string) (core.Transaction, error) {
	fail := func(col string, err error) (core.Transaction, error) {
		return core.Transaction{}, &core.StorageReadError{Source: source, Row: row, Column: col, Err: err}
	}
	if len(cells) != len(Header) {
		return fail("", fmt.Errorf("%w: got %d, want %d", ErrColumnCount, len(cells), len(Header)))
	}
	get := func(i int) string { return strings.TrimSpace(cells[i]) }

	date, err := core.ParseDate(get(0))
	if err != nil {
		return fail(ColDate, err)
	}
	typ, err := core.ParseTxType(get(2))
	if err != nil {
		return fail(ColType, err)
	}
	amount, err := strconv.ParseInt(get(3), 10, 64)
	if err != nil || amount < 0 {
		return fail(ColAmount, fmt.Errorf("%w: %q", core.ErrInvalidAmount, get(3)))
	}

	tx := core.Transaction{
		Date:     date,
		Type:     typ,
		Category: get(1),
		Amount:   core.Money{Rupiah: amount},
		// Notes are free text; keep them byte for byte.
		Note: cells[4],
	}
	if !core.CategoryAllowed(tx.Type, tx.Category) {
		return fail(ColCategory, fmt.Errorf("%w: %q for %s", core.ErrInvalidCategory, tx.Category, tx.Type))
	}
	if m := get(5); m != tx.Month() {
		return fail(ColMonth, fmt.Errorf("%w: %q, date %s", ErrDerivedField, m, tx.Date))
	}
	if y := get(6); y != strconv.Itoa(tx.Year()) {
		return fail(ColYear, fmt.Errorf("%w: %q, date %s", ErrDerivedField, y, tx.Date))
	}
	return tx, nil
}

// DecodeRows parses a header followed by data rows. An empty input or a
// header alone is an empty ledger.
func DecodeRows(source string, rows [][]string) (core.Ledger, error) {
	if len(rows) == 0 {
		return core.Ledger{}, nil
	}
	if err := CheckHeader(source, rows[0]); err != nil {
		return core.Ledger{}, err
	}
	txs := make([]core.Transaction, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		tx, err := DecodeRow(source, i+2, cells)
		if err != nil {
			return core.Ledger{}, err
		}
		txs = append(txs, tx)
	}
	return core.NewLedger(txs...), nil
}

// EncodeRows renders the header followed by one row per transaction.
func EncodeRows(l core.Ledger) [][]string {
	rows := make([][]string, 0, l.Len()+1)
	rows = append(rows, append([]string(nil), Header...))
	for _, tx := range l.Transactions() {
		rows = append(rows, EncodeRow(tx))
	}
	return rows
}
