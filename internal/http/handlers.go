package http

import (
	"errors"
	"net/http"
	"strings"

	"keuangan/internal/core"
	klog "keuangan/internal/log"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady answers ok once the ledger can be read.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.ledger.Years(r.Context()); err != nil {
		klog.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed", klog.FieldError, err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}
	handleHealth(w, r)
}

// handleCategories lists the categories of ?type=, or of both types when it
// is omitted.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	types := []core.TxType{core.Income, core.Expense}
	if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
		t, err := core.ParseTxType(raw)
		if err != nil {
			BadRequestError("type must be Pemasukan or Pengeluaran").Write(w)
			return
		}
		types = []core.TxType{t}
	}

	out := make(map[string][]string, len(types))
	for _, t := range types {
		out[t.String()] = core.Categories(t)
	}
	NewJSONResponse().Body(out).Write(w)
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	years, err := s.ledger.Years(r.Context())
	if err != nil {
		klog.LogError(r.Context(), "Failed to list years", err, klog.ComponentHTTP, klog.OpDashboard)
		ErrorFromDomain(err).Write(w)
		return
	}
	NewJSONResponse().Body(map[string][]int{"years": append([]int{}, years...)}).Write(w)
}

// handleDashboard renders every view of ?year=, falling back to the latest
// year when it is missing or has no entries.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.ledger.Dashboard(r.Context(), parseYear(r.URL.Query()))
	if err != nil {
		klog.LogError(r.Context(), "Failed to build dashboard", err, klog.ComponentHTTP, klog.OpDashboard)
		ErrorFromDomain(err).Write(w)
		return
	}
	NewJSONResponse().Body(dashboardDTO(d)).Write(w)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(w, r)
	sub, err := p.Submission()
	if err != nil {
		var invalid *core.InvalidTransactionError
		if errors.As(err, &invalid) {
			ErrorFromDomain(err).Write(w)
			return
		}
		klog.FromContext(r.Context()).WarnContext(r.Context(), "Unreadable submission body", klog.FieldError, err)
		BadRequestError(err.Error()).Write(w)
		return
	}

	tx, err := s.ledger.Submit(r.Context(), sub)
	if err != nil {
		resp := ErrorFromDomain(err)
		if resp.statusCode >= http.StatusInternalServerError {
			klog.LogError(r.Context(), "Failed to record transaction", err, klog.ComponentHTTP, klog.OpSubmit)
		}
		resp.Write(w)
		return
	}

	NewJSONResponse().Status(http.StatusCreated).Body(transactionDTO(tx)).Write(w)
}
