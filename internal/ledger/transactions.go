package ledger

import (
	"context"

	"communitycash/internal/apperr"
	"communitycash/internal/models"
)

// Pagination bounds. Requests outside these fail validation before any
// storage query is issued.
const (
	MinPerPage     = 1
	MaxPerPage     = 100
	DefaultPerPage = 25
)

// TransactionSource is the slice of the store the aggregator needs: a
// count and a combined ordered scan over both record tables.
type TransactionSource interface {
	CountTransactions(ctx context.Context, memberID int64) (int, error)
	ListTransactions(ctx context.Context, memberID int64, limit, offset int) ([]models.Transaction, error)
}

// Aggregator produces the single chronological, paginated view spanning
// a member's income and expense records.
type Aggregator struct {
	transactions TransactionSource
}

// NewAggregator creates a transaction aggregator over the given source.
func NewAggregator(transactions TransactionSource) *Aggregator {
	return &Aggregator{transactions: transactions}
}

// CountTotal returns the number of income plus expense records owned by
// the member.
func (a *Aggregator) CountTotal(ctx context.Context, memberID int64) (int, error) {
	count, err := a.transactions.CountTransactions(ctx, memberID)
	if err != nil {
		return 0, apperr.Storage(err)
	}
	return count, nil
}

// ListPage returns one page of the merged transaction view plus its
// pagination metadata.
//
// The metadata always reflects the true totals; CurrentPage echoes the
// requested page verbatim, so a page beyond the end yields empty items
// with honest totals rather than an error.
func (a *Aggregator) ListPage(ctx context.Context, memberID int64, perPage, page int) ([]models.Transaction, models.Pagination, error) {
	if perPage < MinPerPage || perPage > MaxPerPage {
		return nil, models.Pagination{}, apperr.Validation("per_page must be between 1 and 100")
	}
	if page < 1 {
		return nil, models.Pagination{}, apperr.Validation("page must be 1 or greater")
	}

	totalItems, err := a.transactions.CountTransactions(ctx, memberID)
	if err != nil {
		return nil, models.Pagination{}, apperr.Storage(err)
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = (totalItems + perPage - 1) / perPage
	}

	offset := (page - 1) * perPage
	items, err := a.transactions.ListTransactions(ctx, memberID, perPage, offset)
	if err != nil {
		return nil, models.Pagination{}, apperr.Storage(err)
	}

	pagination := models.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		PerPage:     perPage,
	}

	return items, pagination, nil
}
