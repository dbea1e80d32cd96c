package server

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"communitycash/internal/apperr"
	"communitycash/internal/ledger"
	"communitycash/internal/models"
)

type balanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

type transactionsResponse struct {
	Data       []models.Transaction `json:"data"`
	Pagination models.Pagination    `json:"pagination"`
}

// The communityID path segment exists for URL shape compatibility; the
// tenant check always runs against the community in the caller's token.
func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	ident, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}

	memberID, err := pathID(r, "memberID")
	if err != nil {
		writeError(w, err)
		return
	}

	balance, err := s.ledgerService.Balance(r.Context(), ident, memberID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{Balance: balance})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	ident, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}

	memberID, err := pathID(r, "memberID")
	if err != nil {
		writeError(w, err)
		return
	}

	perPage, err := queryInt(r, "per_page", ledger.DefaultPerPage)
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeError(w, err)
		return
	}

	items, pagination, err := s.ledgerService.Transactions(r.Context(), ident, memberID, perPage, page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transactionsResponse{Data: items, Pagination: pagination})
}

// queryInt parses an optional integer query parameter. Range checks are
// the aggregator's job; only non-numeric input fails here.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation(name + " must be an integer")
	}
	return value, nil
}
