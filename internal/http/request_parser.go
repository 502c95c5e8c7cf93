// Package http provides HTTP server and handler implementations.
//
// This file implements parsing of request bodies and query parameters into
// domain input.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"keuangan/internal/core"
)

// maxBodyBytes caps a submission body.
const maxBodyBytes = 64 << 10

var errBodyTooLarge = errors.New("request body too large")

// RequestBodyParser handles JSON and form-encoded request bodies.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]any
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser reads the body once and stores it for parsing.
func NewRequestBodyParser(w http.ResponseWriter, r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	p.body, p.err = io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	var maxErr *http.MaxBytesError
	if errors.As(p.err, &maxErr) {
		p.err = errBodyTooLarge
	}
	return p
}

// Parse parses the body as JSON when the content type says so or the body
// starts with '{', as form data otherwise.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	trimmed := strings.TrimSpace(string(p.body))
	if trimmed == "" {
		p.formData = url.Values{}
		return nil
	}

	if strings.HasPrefix(p.contentType, "application/json") || trimmed[0] == '{' {
		p.jsonData = make(map[string]any)
		if err := json.Unmarshal([]byte(trimmed), &p.jsonData); err != nil {
			p.jsonData = nil
			p.err = fmt.Errorf("malformed JSON body: %w", err)
			return p.err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(trimmed)
	return p.err
}

// Get returns a string value from the parsed data (JSON or form).
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// Submission builds the domain input. Amount accepts a JSON integer or a
// display string such as "Rp 5.000.000"; a bad amount is reported as an
// invalid transaction.
func (p *RequestBodyParser) Submission() (core.Submission, error) {
	if err := p.Parse(); err != nil {
		return core.Submission{}, err
	}

	amount, err := p.amount()
	if err != nil {
		return core.Submission{}, err
	}
	return core.Submission{
		Date:     p.Get("date"),
		Type:     p.Get("type"),
		Category: p.Get("category"),
		Amount:   amount,
		Note:     p.Get("note"),
	}, nil
}

func (p *RequestBodyParser) amount() (int64, error) {
	if p.jsonData != nil {
		if f, ok := p.jsonData["amount"].(float64); ok {
			if f < 0 {
				return 0, &core.InvalidTransactionError{Field: "amount", Reason: "must not be negative", Err: core.ErrInvalidAmount}
			}
			if f != math.Trunc(f) || f >= math.MaxInt64 {
				return 0, &core.InvalidTransactionError{Field: "amount", Reason: "must be a whole number of Rupiah", Err: core.ErrInvalidAmount}
			}
			return int64(f), nil
		}
	}

	raw := p.Get("amount")
	if raw == "" {
		return 0, &core.InvalidTransactionError{Field: "amount", Reason: "is required", Err: core.ErrInvalidAmount}
	}
	if strings.HasPrefix(raw, "-") {
		return 0, &core.InvalidTransactionError{Field: "amount", Reason: "must not be negative", Err: core.ErrInvalidAmount}
	}
	m, err := core.ParseMoney(raw)
	if err != nil {
		return 0, &core.InvalidTransactionError{Field: "amount", Reason: "must be a whole number of Rupiah", Err: err}
	}
	return m.Rupiah, nil
}

// parseYear reads the year query parameter. Missing or malformed values
// select the latest year.
func parseYear(query url.Values) int {
	if v := strings.TrimSpace(query.Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil && y > 0 {
			return y
		}
	}
	return 0
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// sanitizeInput drops control characters other than tab and newline and
// trims surrounding whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}
