// Package ledger computes the shared-balance and merged-transaction
// views over a member's income and expense records. Callers are expected
// to have passed authorization already; nothing in this package checks
// tenancy or ownership.
package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"communitycash/internal/apperr"
	"communitycash/internal/models"
)

var oneHundred = decimal.NewFromInt(100)

// RecordSource is the slice of the store the balance engine needs.
type RecordSource interface {
	ListIncomesByOwner(ctx context.Context, ownerID int64) ([]models.Income, error)
	ListExpensesByOwner(ctx context.Context, ownerID int64) ([]models.Expense, error)
}

// Engine computes a member's net balance.
type Engine struct {
	records RecordSource
}

// NewEngine creates a balance engine over the given record source.
func NewEngine(records RecordSource) *Engine {
	return &Engine{records: records}
}

// Calculate returns the member's all-time net balance:
//
//	balance = Σ(income.amount × income.pct / 100) − Σ(expense.amount)
//
// A member with no records on either side has a balance of exactly zero.
func (e *Engine) Calculate(ctx context.Context, memberID int64) (decimal.Decimal, error) {
	incomes, err := e.records.ListIncomesByOwner(ctx, memberID)
	if err != nil {
		return decimal.Zero, apperr.Storage(err)
	}

	expenses, err := e.records.ListExpensesByOwner(ctx, memberID)
	if err != nil {
		return decimal.Zero, apperr.Storage(err)
	}

	balance := decimal.Zero
	for _, income := range incomes {
		pct := decimal.NewFromInt(int64(income.ContributionPercentage))
		contribution := income.Amount.Mul(pct).Div(oneHundred)
		balance = balance.Add(contribution)
	}
	for _, expense := range expenses {
		balance = balance.Sub(expense.Amount)
	}

	return balance, nil
}
