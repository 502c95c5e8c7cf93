// Package core provides money parsing and handling utilities.
//
// This file contains the parsing of user-entered Rupiah amounts and their
// display formatting.
package core

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
)

// Rupiah are displayed without sub-units, "." groups thousands.
var rupiahFormatter = money.NewFormatter(0, ",", ".", "Rp", "$ 1")

// Either plain digits or digits grouped by three with a consistent separator.
var amountPattern = regexp.MustCompile(`^(\d+|\d{1,3}(\.\d{3})+|\d{1,3}(,\d{3})+)$`)

// ParseMoney converts a user-entered amount to Money.
//
// It accepts an optional "Rp" prefix and "." or "," as thousand separators.
// Fractions, signs and anything else are rejected.
//
// Examples:
//
//	ParseMoney("5000000")      -> 5000000, nil
//	ParseMoney("Rp 5.000.000") -> 5000000, nil
//	ParseMoney("1,200,000")    -> 1200000, nil
//	ParseMoney("12,50")        -> error
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.EqualFold(s[:2], "rp") {
		s = strings.TrimSpace(s[2:])
	}
	if !amountPattern.MatchString(s) {
		return Money{}, ErrInvalidAmount
	}
	s = strings.NewReplacer(".", "", ",", "").Replace(s)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return Money{Rupiah: v}, nil
}

func (m Money) Validate() error {
	if m.Rupiah < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns the exact sum of two amounts.
func (m Money) Add(n Money) Money {
	return Money{Rupiah: m.Rupiah + n.Rupiah}
}

// Sub returns m - n, which may be negative.
func (m Money) Sub(n Money) Money {
	return Money{Rupiah: m.Rupiah - n.Rupiah}
}

func (m Money) IsZero() bool {
	return m.Rupiah == 0
}

// String formats the amount for display, e.g. "Rp 5.000.000".
func (m Money) String() string {
	return rupiahFormatter.Format(m.Rupiah)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(m.Rupiah, 10)), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return ErrInvalidAmount
	}
	m.Rupiah = v
	return nil
}
