package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"communitycash/internal/service"
)

// incomeCreateRequest accepts amounts as JSON strings or numbers;
// decimal.Decimal handles both without a float round-trip.
type incomeCreateRequest struct {
	Date                   string          `json:"date"`
	Reason                 string          `json:"reason"`
	Amount                 decimal.Decimal `json:"amount"`
	ContributionPercentage *int            `json:"contribution_percentage"`
}

type incomeUpdateRequest struct {
	Date                   *string          `json:"date"`
	Reason                 *string          `json:"reason"`
	Amount                 *decimal.Decimal `json:"amount"`
	ContributionPercentage *int             `json:"contribution_percentage"`
}

func (s *Server) handleIncomeCreate(w http.ResponseWriter, r *http.Request) {
	ident, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req incomeCreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	income, err := s.incomeService.Create(r.Context(), ident, service.IncomeInput{
		Date:                   req.Date,
		Reason:                 req.Reason,
		Amount:                 req.Amount,
		ContributionPercentage: req.ContributionPercentage,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, income)
}

func (s *Server) handleIncomeGet(w http.ResponseWriter, r *http.Request) {
	ident, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	income, err := s.incomeService.Get(r.Context(), ident, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, income)
}

func (s *Server) handleIncomeUpdate(w http.ResponseWriter, r *http.Request) {
	ident, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req incomeUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	income, err := s.incomeService.Update(r.Context(), ident, id, service.IncomeUpdateInput{
		Date:                   req.Date,
		Reason:                 req.Reason,
		Amount:                 req.Amount,
		ContributionPercentage: req.ContributionPercentage,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, income)
}

func (s *Server) handleIncomeDelete(w http.ResponseWriter, r *http.Request) {
	ident, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.incomeService.Delete(r.Context(), ident, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
