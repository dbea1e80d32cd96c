package models

import "github.com/shopspring/decimal"

// Income is a single income record owned by a member.
//
// ContributionPercentage is resolved at creation time, either from the
// request or from the owning member's default, and stored per record so
// later changes to the member's default never alter historical records.
type Income struct {
	ID      int64 `json:"id"`
	OwnerID int64 `json:"owner_id"`

	// Date is the transaction date in YYYY-MM-DD format.
	Date string `json:"date"`

	// Reason is a non-empty description of the income.
	Reason string `json:"reason"`

	// Amount is strictly positive.
	Amount decimal.Decimal `json:"amount"`

	// ContributionPercentage (0-100) weights this income toward the
	// shared balance.
	ContributionPercentage int `json:"contribution_percentage"`

	CreatedAt int64 `json:"created_at"`
}

// Expense is a single expense record owned by a member. Expenses carry no
// contribution percentage; they count against the balance at full value.
type Expense struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"owner_id"`
	Date    string `json:"date"`
	Reason  string `json:"reason"`

	// Amount is strictly positive.
	Amount decimal.Decimal `json:"amount"`

	CreatedAt int64 `json:"created_at"`
}
