// Package http exposes the ledger as a small JSON API. It is the seam the
// household UI talks to; all domain rules live below the service facade.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"gastos/internal/services"
)

type Server struct {
	svc *services.ExpenseService
}

// NewServer builds the API server with routing, request logging, and
// conservative timeouts.
func NewServer(addr string, svc *services.ExpenseService) *http.Server {
	s := &Server{svc: svc}
	return &http.Server{
		Addr:           addr,
		Handler:        requestLogger(s.Routes()),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
}

// Routes wires the handler methods onto a mux. Exposed separately so tests
// can drive the API without a listener.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /categories", s.handleCategories)
	mux.HandleFunc("POST /expenses", s.handleCreateExpense)
	mux.HandleFunc("POST /expenses/installments", s.handleCreateInstallments)
	mux.HandleFunc("GET /expenses", s.handleListExpenses)
	mux.HandleFunc("DELETE /expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("GET /summary", s.handleSummary)
	mux.HandleFunc("GET /export/csv", s.handleExportCSV)
	mux.HandleFunc("GET /incomes", s.handleGetIncomes)
	mux.HandleFunc("PUT /incomes", s.handleSetIncome)
	return mux
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.InfoContext(r.Context(), "HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
