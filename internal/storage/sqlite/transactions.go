package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"communitycash/internal/models"
)

// CountTransactions returns the number of income plus expense records
// owned by a member. The two tables never share ids, so a plain count
// over the union is exact.
func (s *SQLiteStore) CountTransactions(ctx context.Context, memberID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM (
			SELECT id FROM income WHERE owner_id = ?
			UNION ALL
			SELECT id FROM expense WHERE owner_id = ?
		)`,
		memberID, memberID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return count, nil
}

// ListTransactions returns one page of the merged income+expense view
// for a member, ordered by date descending. Both tables are scanned in a
// single UNION ALL query so that interleaved dates stay globally ordered
// across page boundaries; date ties are broken by creation order, newest
// first.
func (s *SQLiteStore) ListTransactions(ctx context.Context, memberID int64, limit, offset int) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT * FROM (
			SELECT
				id,
				owner_id,
				'income' AS type,
				date,
				reason,
				amount,
				contribution_percentage,
				created_at
			FROM income WHERE owner_id = ?

			UNION ALL

			SELECT
				id,
				owner_id,
				'expense' AS type,
				date,
				reason,
				amount,
				NULL AS contribution_percentage,
				created_at
			FROM expense WHERE owner_id = ?
		)
		ORDER BY date DESC, created_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		memberID, memberID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var txn models.Transaction
		var amount string
		var pct sql.NullInt64
		if err := rows.Scan(
			&txn.ID,
			&txn.OwnerID,
			&txn.Type,
			&txn.Date,
			&txn.Reason,
			&amount,
			&pct,
			&txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transaction amount: %w", err)
		}
		if pct.Valid {
			value := int(pct.Int64)
			txn.ContributionPercentage = &value
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}
