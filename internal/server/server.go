// Package server wires the HTTP surface: routing, request decoding, and
// the mapping from application error kinds to response status codes.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"communitycash/internal/auth"
	"communitycash/internal/config"
	"communitycash/internal/ledger"
	"communitycash/internal/middleware"
	"communitycash/internal/service"
	"communitycash/internal/storage"
)

// Server holds the handlers and the assembled router.
type Server struct {
	router http.Handler
	logger *slog.Logger

	authService    *service.AuthService
	incomeService  *service.IncomeService
	expenseService *service.ExpenseService
	ledgerService  *service.LedgerService
}

// New assembles the full service graph over the given store and returns
// a ready-to-serve Server.
func New(cfg *config.Config, store storage.Store, logger *slog.Logger) *Server {
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	s := &Server{
		logger:         logger,
		authService:    service.NewAuthService(store, tokens, logger),
		incomeService:  service.NewIncomeService(store, logger),
		expenseService: service.NewExpenseService(store, logger),
		ledgerService: service.NewLedgerService(
			store,
			ledger.NewEngine(store),
			ledger.NewAggregator(store),
			logger,
		),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Metrics)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/login", s.handleLogin)
	r.Post("/refresh", s.handleRefresh)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))

		r.Post("/income", s.handleIncomeCreate)
		r.Get("/income/{id}", s.handleIncomeGet)
		r.Put("/income/{id}", s.handleIncomeUpdate)
		r.Delete("/income/{id}", s.handleIncomeDelete)

		r.Post("/expense", s.handleExpenseCreate)
		r.Get("/expense/{id}", s.handleExpenseGet)
		r.Put("/expense/{id}", s.handleExpenseUpdate)
		r.Delete("/expense/{id}", s.handleExpenseDelete)

		r.Get("/balance/{communityID}/{memberID}", s.handleBalance)
		r.Get("/transactions/{communityID}/{memberID}", s.handleTransactions)
	})

	s.router = r
	return s
}

// Router returns the assembled HTTP handler.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
