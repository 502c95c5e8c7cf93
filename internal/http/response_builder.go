// Package http provides HTTP server and handler implementations.
//
// This file implements the Builder Pattern for constructing JSON responses,
// so every handler sets status, headers and body the same way.

package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"keuangan/internal/core"
)

// Error codes carried in the "code" field of error bodies.
const (
	CodeInvalidTransaction = "invalid_transaction"
	CodeInvalidRequest     = "invalid_request"
	CodeStorageRead        = "storage_read"
	CodeStorageWrite       = "storage_write"
	CodeRateLimited        = "rate_limited"
	CodeInternal           = "internal"
)

// JSONResponseBuilder provides a fluent API for building JSON responses.
type JSONResponseBuilder struct {
	statusCode int
	headers    map[string]string
	payload    any
}

// NewJSONResponse creates a new response builder with default 200 status.
func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

func (b *JSONResponseBuilder) Header(name, value string) *JSONResponseBuilder {
	b.headers[name] = value
	return b
}

// Body sets the value encoded as the response body.
func (b *JSONResponseBuilder) Body(v any) *JSONResponseBuilder {
	b.payload = v
	return b
}

// Write sends the built response to the http.ResponseWriter.
func (b *JSONResponseBuilder) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(b.statusCode)
	if b.payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(b.payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// ErrorResponse creates a standard error response.
func ErrorResponse(statusCode int, code, message string) *JSONResponseBuilder {
	return NewJSONResponse().
		Status(statusCode).
		Body(ErrorBody{Error: message, Code: code})
}

func BadRequestError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, CodeInvalidRequest, message)
}

func InternalServerError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, CodeInternal, message)
}

func TooManyRequestsError() *JSONResponseBuilder {
	return ErrorResponse(http.StatusTooManyRequests, CodeRateLimited, "rate limit exceeded, try again later").
		Header("Retry-After", "60")
}

// ErrorFromDomain maps a service error to its response. Invalid submissions
// are 400; storage failures are 500 and never echo the underlying cause.
func ErrorFromDomain(err error) *JSONResponseBuilder {
	var invalid *core.InvalidTransactionError
	switch {
	case errors.As(err, &invalid):
		return NewJSONResponse().
			Status(http.StatusBadRequest).
			Body(ErrorBody{Error: invalid.Error(), Code: CodeInvalidTransaction, Field: invalid.Field})
	case errors.Is(err, core.ErrStorageWrite):
		return ErrorResponse(http.StatusInternalServerError, CodeStorageWrite, "the ledger could not be saved")
	case errors.Is(err, core.ErrStorageRead):
		return ErrorResponse(http.StatusInternalServerError, CodeStorageRead, "the ledger could not be read")
	}
	return InternalServerError("internal error")
}
