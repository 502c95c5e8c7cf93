package core

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the ISO-8601 calendar date layout used everywhere a date is
// rendered as text.
const DateLayout = "2006-01-02"

const (
	Income  TxType = "Pemasukan"
	Expense TxType = "Pengeluaran"
)

type (
	// TxType classifies a transaction. The values are the literals persisted
	// in the ledger file.
	TxType string

	Date struct {
		time.Time
	}

	// Money is an amount in whole Rupiah. There are no fractional sub-units.
	Money struct {
		Rupiah int64
	}

	// Transaction is one ledger entry. Month and Year are derived from Date and
	// have no storage of their own.
	Transaction struct {
		Date     Date
		Type     TxType
		Category string
		Amount   Money
		Note     string
	}

	// Submission is the raw input of a new transaction as delivered by a form,
	// a JSON body or the command line.
	Submission struct {
		Date     string `json:"date" validate:"required,datetime=2006-01-02"`
		Type     string `json:"type" validate:"required"`
		Category string `json:"category" validate:"required"`
		Amount   int64  `json:"amount" validate:"gte=0"`
		Note     string `json:"note"`
	}
)

var (
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidCategory = errors.New("category not allowed for type")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseTxType accepts the persisted literals and the English aliases
// "income" and "expense", case-insensitively.
func ParseTxType(s string) (TxType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pemasukan", "income":
		return Income, nil
	case "pengeluaran", "expense":
		return Expense, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
}

func (t TxType) String() string {
	return string(t)
}

// IsValid returns true for Income and Expense.
func (t TxType) IsValid() bool {
	return t == Income || t == Expense
}

// NewDate creates a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// DateOf truncates t to its calendar date in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("%w: zero date", ErrInvalidDate)
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	parsed, err := ParseDate(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Month returns the full English month name of the transaction date.
func (t Transaction) Month() string {
	return t.Date.Month().String()
}

// Year returns the four-digit year of the transaction date.
func (t Transaction) Year() int {
	return t.Date.Year()
}

// Validate checks the invariants every stored transaction satisfies.
func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return &InvalidTransactionError{Field: "date", Reason: "is required", Err: err}
	}
	if !t.Type.IsValid() {
		return &InvalidTransactionError{Field: "type", Reason: fmt.Sprintf("must be %s or %s", Income, Expense), Err: ErrInvalidType}
	}
	if err := t.Amount.Validate(); err != nil {
		return &InvalidTransactionError{Field: "amount", Reason: "must not be negative", Err: err}
	}
	if !CategoryAllowed(t.Type, t.Category) {
		return &InvalidTransactionError{
			Field:  "category",
			Reason: fmt.Sprintf("%q is not allowed for %s", t.Category, t.Type),
			Err:    ErrInvalidCategory,
		}
	}
	return nil
}

// newlines folds CR and CRLF line breaks to LF, the only form a CSV reader
// hands back.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NewTransaction validates a submission and builds the transaction from it.
// A rejected submission never produces a partial transaction.
func NewTransaction(s Submission) (Transaction, error) {
	s.Date = strings.TrimSpace(s.Date)
	s.Category = strings.TrimSpace(s.Category)
	s.Note = newlines.Replace(strings.TrimSpace(s.Note))

	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Transaction{}, &InvalidTransactionError{Field: verrs[0].Field(), Reason: describe(verrs[0])}
		}
		return Transaction{}, &InvalidTransactionError{Reason: err.Error(), Err: err}
	}

	typ, err := ParseTxType(s.Type)
	if err != nil {
		return Transaction{}, &InvalidTransactionError{Field: "type", Reason: fmt.Sprintf("must be %s or %s", Income, Expense), Err: err}
	}
	date, err := ParseDate(s.Date)
	if err != nil {
		return Transaction{}, &InvalidTransactionError{Field: "date", Reason: "must be a date in YYYY-MM-DD format", Err: err}
	}

	tx := Transaction{
		Date:     date,
		Type:     typ,
		Category: s.Category,
		Amount:   Money{Rupiah: s.Amount},
		Note:     s.Note,
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "gte":
		return "must not be negative"
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}
