package models

import "github.com/shopspring/decimal"

// TransactionType tags an entry in the merged transaction view.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is one entry in the merged, date-ordered view spanning a
// member's income and expense records. Income and expense ids live in
// disjoint tables, so (Type, ID) identifies an entry uniquely.
type Transaction struct {
	ID      int64           `json:"id"`
	OwnerID int64           `json:"owner_id"`
	Type    TransactionType `json:"type"`
	Date    string          `json:"date"`
	Reason  string          `json:"reason"`
	Amount  decimal.Decimal `json:"amount"`

	// ContributionPercentage is set for income entries and nil (JSON
	// null) for expense entries.
	ContributionPercentage *int `json:"contribution_percentage"`

	CreatedAt int64 `json:"created_at"`
}

// Pagination describes the position of one page within the full result
// set. CurrentPage always echoes the requested page number, even when it
// lies beyond TotalPages.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalItems  int `json:"total_items"`
	PerPage     int `json:"per_page"`
}
