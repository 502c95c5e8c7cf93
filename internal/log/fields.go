package log

import "keuangan/internal/core"

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldQuery         = "query"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldDurationHuman = "duration_human"
	FieldUserAgent     = "user_agent"
	FieldSuccess       = "success"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldYear          = "year"
	FieldMonth         = "month"
	FieldDate          = "date"
	FieldType          = "type"
	FieldCategory      = "category"
	FieldAmount        = "amount"
	FieldRows          = "rows"
	FieldBackend       = "backend"
)

const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentCLI     = "cli"
	ComponentBackend = "backend"
)

const (
	OpSubmit    = "submit"
	OpDashboard = "dashboard"
	OpLoad      = "load"
	OpSave      = "save"
	OpMirror    = "mirror"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)

// LogFields builds structured fields in a fixed insertion order.
type LogFields struct {
	keys   []string
	values map[string]any
}

func NewFields() *LogFields {
	return &LogFields{values: make(map[string]any)}
}

func (f *LogFields) set(k string, v any) *LogFields {
	if _, ok := f.values[k]; !ok {
		f.keys = append(f.keys, k)
	}
	f.values[k] = v
	return f
}

func (f *LogFields) WithComponent(component string) *LogFields {
	return f.set(FieldComponent, component)
}

func (f *LogFields) WithRequestID(requestID string) *LogFields {
	return f.set(FieldRequestID, requestID)
}

func (f *LogFields) WithError(err error) *LogFields {
	if err != nil {
		f.set(FieldError, err.Error())
	}
	return f
}

func (f *LogFields) WithOperation(op string) *LogFields {
	return f.set(FieldOperation, op)
}

// WithTransaction adds the fields identifying a ledger entry. The note is
// left out on purpose; it is free text.
func (f *LogFields) WithTransaction(tx core.Transaction) *LogFields {
	return f.set(FieldDate, tx.Date.String()).
		set(FieldType, string(tx.Type)).
		set(FieldCategory, tx.Category).
		set(FieldAmount, tx.Amount.Rupiah)
}

func (f *LogFields) WithHTTPRequest(method, path, query string) *LogFields {
	return f.set(FieldMethod, method).set(FieldPath, path).set(FieldQuery, query)
}

func (f *LogFields) WithHTTPResponse(statusCode int, durationMs int64) *LogFields {
	return f.set(FieldStatusCode, statusCode).
		set(FieldDuration, durationMs).
		set(FieldSuccess, statusCode < 400)
}

// ToSlice flattens the fields into slog key/value arguments.
func (f *LogFields) ToSlice() []any {
	out := make([]any, 0, len(f.keys)*2)
	for _, k := range f.keys {
		out = append(out, k, f.values[k])
	}
	return out
}
