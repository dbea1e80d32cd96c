package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"communitycash/internal/service"
)

type expenseCreateRequest struct {
	Date   string          `json:"date"`
	Reason string          `json:"reason"`
	Amount decimal.Decimal `json:"amount"`
}

type expenseUpdateRequest struct {
	Date   *string          `json:"date"`
	Reason *string          `json:"reason"`
	Amount *decimal.Decimal `json:"amount"`
}

func (s *Server) handleExpenseCreate(w http.ResponseWriter, r *http.Request) {
	ident, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req expenseCreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	expense, err := s.expenseService.Create(r.Context(), ident, service.ExpenseInput{
		Date:   req.Date,
		Reason: req.Reason,
		Amount: req.Amount,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleExpenseGet(w http.ResponseWriter, r *http.Request) {
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

	expense, err := s.expenseService.Get(r.Context(), ident, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) handleExpenseUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req expenseUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	expense, err := s.expenseService.Update(r.Context(), ident, id, service.ExpenseUpdateInput{
		Date:   req.Date,
		Reason: req.Reason,
		Amount: req.Amount,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) handleExpenseDelete(w http.ResponseWriter, r *http.Request) {
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

	if err := s.expenseService.Delete(r.Context(), ident, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
