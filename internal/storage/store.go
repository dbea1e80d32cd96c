// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/shopspring/decimal"

	"communitycash/internal/models"
)

// IncomeUpdate carries a partial update for an income record. Nil fields
// are left unchanged.
type IncomeUpdate struct {
	Date                   *string
	Reason                 *string
	Amount                 *decimal.Decimal
	ContributionPercentage *int
}

// ExpenseUpdate carries a partial update for an expense record.
type ExpenseUpdate struct {
	Date   *string
	Reason *string
	Amount *decimal.Decimal
}

// Store defines the full persistence interface. Lookup methods return
// (nil, nil) when the row does not exist; only genuine store failures
// produce an error. This abstraction allows swapping storage backends
// without changing the service layer.
type Store interface {
	// Communities and members are created by the admin CLI, never by
	// the API.
	CreateCommunity(ctx context.Context, community *models.Community) error
	CreateMember(ctx context.Context, member *models.Member) error
	UpdateMember(ctx context.Context, id int64, name, username *string, contributionPercentage *int) error
	DeleteMember(ctx context.Context, id int64) error

	GetMember(ctx context.Context, id int64) (*models.Member, error)
	GetMemberByUsername(ctx context.Context, username string) (*models.Member, error)
	MemberExistsInCommunity(ctx context.Context, memberID, communityID int64) (bool, error)

	CreateIncome(ctx context.Context, income *models.Income) error
	GetIncome(ctx context.Context, id int64) (*models.Income, error)
	UpdateIncome(ctx context.Context, id int64, upd IncomeUpdate) error
	DeleteIncome(ctx context.Context, id int64) error
	ListIncomesByOwner(ctx context.Context, ownerID int64) ([]models.Income, error)

	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, id int64) (*models.Expense, error)
	UpdateExpense(ctx context.Context, id int64, upd ExpenseUpdate) error
	DeleteExpense(ctx context.Context, id int64) error
	ListExpensesByOwner(ctx context.Context, ownerID int64) ([]models.Expense, error)

	// CountTransactions and ListTransactions serve the merged
	// income+expense view. Listing always queries both tables in a
	// single ordered scan; paginating each table independently would
	// misorder interleaved dates across page boundaries.
	CountTransactions(ctx context.Context, memberID int64) (int, error)
	ListTransactions(ctx context.Context, memberID int64, limit, offset int) ([]models.Transaction, error)

	// Close releases any resources held by the store.
	Close() error
}
