// Package http exposes the dashboard API: three read endpoints returning the
// aggregate documents and the mutation endpoints behind them.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"finboard/internal/core"
	"finboard/internal/log"
)

// PortfolioService is the holdings read/write surface the server needs.
type PortfolioService interface {
	Summary(ctx context.Context) (core.PortfolioSummary, error)
	AddTrade(ctx context.Context, t core.Trade) error
}

// CashFlowService covers the funding tab.
type CashFlowService interface {
	Summary(ctx context.Context) (core.CashFlowSummary, error)
	AddDeposit(ctx context.Context, d core.Deposit) error
	AddConversion(ctx context.Context, c core.Conversion) error
}

// LedgerService covers the money-manager tabs and their mutations.
type LedgerService interface {
	Data(ctx context.Context) (core.MoneyManagerData, error)
	AddTransaction(ctx context.Context, tx core.MoneyTransaction) (core.MoneyTransaction, error)
	UpdateTransaction(ctx context.Context, id string, tx core.MoneyTransaction) error
	DeleteTransaction(ctx context.Context, id string) error
	AddCategory(ctx context.Context, name string, t core.TransactionType) error
	UpdateCategory(ctx context.Context, oldName, newName string, t core.TransactionType) error
	DeleteCategory(ctx context.Context, name string, t core.TransactionType) error
}

// SetupService manages the spreadsheet schema.
type SetupService interface {
	Initialized(ctx context.Context) (bool, error)
	Bootstrap(ctx context.Context) ([]string, error)
}

type Server struct {
	http.Server

	portfolio PortfolioService
	cashflow  CashFlowService
	ledger    LedgerService
	setup     SetupService

	logger      *log.Logger
	rateLimiter *rateLimiter

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, pf PortfolioService, cf CashFlowService, lg LedgerService, st SetupService, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server:      http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second},
		portfolio:   pf,
		cashflow:    cf,
		ledger:      lg,
		setup:       st,
		logger:      logger,
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/portfolio", s.with(s.handlePortfolio))
	mux.HandleFunc("POST /api/trades", s.with(s.handleAddTrade))

	mux.HandleFunc("GET /api/cashflow", s.with(s.handleCashFlow))
	mux.HandleFunc("POST /api/deposits", s.with(s.handleAddDeposit))
	mux.HandleFunc("POST /api/conversions", s.with(s.handleAddConversion))

	mux.HandleFunc("GET /api/money", s.with(s.handleMoney))
	mux.HandleFunc("POST /api/transactions", s.with(s.handleAddTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.with(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.with(s.handleDeleteTransaction))

	mux.HandleFunc("POST /api/categories", s.with(s.handleAddCategory))
	mux.HandleFunc("PUT /api/categories", s.with(s.handleUpdateCategory))
	mux.HandleFunc("DELETE /api/categories", s.with(s.handleDeleteCategory))

	mux.HandleFunc("GET /api/status", s.with(s.handleStatus))
	mux.HandleFunc("POST /api/init", s.with(s.handleInit))

	return s
}

// with adds request logging, security headers and rate limiting for mutating
// methods.
func (s *Server) with(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := "req_" + uuid.NewString()

		if mutating(r.Method) && !s.rateLimiter.allow(clientIP) {
			s.logger.Warn("rate limit exceeded", "request_id", requestID, "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, mutationResult{Success: false, Error: "rate limit exceeded"})
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.Info("request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// responseWriter captures the status code for the completion log line.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady probes the ledger read path, which exercises the sheet
// transport end to end.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := s.ledger.Data(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Shutdown stops the rate limiter's cleanup goroutine along with the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
