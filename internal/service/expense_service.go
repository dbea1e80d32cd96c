package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"communitycash/internal/apperr"
	"communitycash/internal/auth"
	"communitycash/internal/models"
	"communitycash/internal/storage"
)

// ExpenseStore is the expense slice of the store.
type ExpenseStore interface {
	MemberSource
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, id int64) (*models.Expense, error)
	UpdateExpense(ctx context.Context, id int64, upd storage.ExpenseUpdate) error
	DeleteExpense(ctx context.Context, id int64) error
}

// ExpenseInput carries the fields for creating an expense record.
// Expenses are never contribution-weighted.
type ExpenseInput struct {
	Date   string
	Reason string
	Amount decimal.Decimal
}

// ExpenseUpdateInput carries a partial update; nil fields are unchanged.
type ExpenseUpdateInput struct {
	Date   *string
	Reason *string
	Amount *decimal.Decimal
}

// ExpenseService implements expense record operations with the same
// tenancy/ownership policy as IncomeService.
type ExpenseService struct {
	store  ExpenseStore
	logger *slog.Logger
}

// NewExpenseService creates a new expense service.
func NewExpenseService(store ExpenseStore, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{store: store, logger: logger}
}

// Create records a new expense owned by the caller.
func (s *ExpenseService) Create(ctx context.Context, ident auth.Identity, in ExpenseInput) (*models.Expense, error) {
	member, err := s.store.GetMember(ctx, ident.MemberID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if member == nil || member.CommunityID != ident.CommunityID {
		return nil, apperr.Forbidden()
	}

	date, reason, amount, err := validateRecordInput(in.Date, in.Reason, in.Amount)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		OwnerID: ident.MemberID,
		Date:    date,
		Reason:  reason,
		Amount:  amount,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, apperr.Storage(err)
	}

	s.logger.Info("expense created", "expense_id", expense.ID, "member_id", ident.MemberID)
	return expense, nil
}

// Get returns a single expense record, tenant-scoped like income reads.
func (s *ExpenseService) Get(ctx context.Context, ident auth.Identity, id int64) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if expense == nil {
		return nil, apperr.NotFound("expense")
	}

	owner, err := s.store.GetMember(ctx, expense.OwnerID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if owner == nil || owner.CommunityID != ident.CommunityID {
		return nil, apperr.Forbidden()
	}

	return expense, nil
}

// Update applies a partial update to an expense record the caller owns.
func (s *ExpenseService) Update(ctx context.Context, ident auth.Identity, id int64, in ExpenseUpdateInput) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if expense == nil {
		return nil, apperr.NotFound("expense")
	}
	if expense.OwnerID != ident.MemberID {
		return nil, apperr.Forbidden()
	}

	var upd storage.ExpenseUpdate
	if in.Amount != nil {
		if err := validateAmount(*in.Amount); err != nil {
			return nil, err
		}
		upd.Amount = in.Amount
	}
	if in.Reason != nil {
		reason, err := validateReason(*in.Reason)
		if err != nil {
			return nil, err
		}
		upd.Reason = &reason
	}
	if in.Date != nil {
		date, err := validateDate(*in.Date)
		if err != nil {
			return nil, err
		}
		upd.Date = &date
	}

	if err := s.store.UpdateExpense(ctx, id, upd); err != nil {
		return nil, apperr.Storage(err)
	}

	updated, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	s.logger.Info("expense updated", "expense_id", id, "member_id", ident.MemberID)
	return updated, nil
}

// Delete permanently removes an expense record the caller owns.
func (s *ExpenseService) Delete(ctx context.Context, ident auth.Identity, id int64) error {
	expense, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if expense == nil {
		return apperr.NotFound("expense")
	}
	if expense.OwnerID != ident.MemberID {
		return apperr.Forbidden()
	}

	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return apperr.Storage(err)
	}

	s.logger.Info("expense deleted", "expense_id", id, "member_id", ident.MemberID)
	return nil
}
