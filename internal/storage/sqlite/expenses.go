package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"communitycash/internal/models"
	"communitycash/internal/storage"
)

// CreateExpense inserts a new expense record and populates its ID.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO expense (owner_id, date, reason, amount, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		expense.OwnerID,
		expense.Date,
		expense.Reason,
		expense.Amount.String(),
		expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get expense id: %w", err)
	}
	expense.ID = id

	return nil
}

// GetExpense retrieves an expense record by ID. Returns (nil, nil) when
// absent.
func (s *SQLiteStore) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	expense := &models.Expense{}
	var amount string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, date, reason, amount, created_at
		FROM expense WHERE id = ?`,
		id,
	).Scan(
		&expense.ID,
		&expense.OwnerID,
		&expense.Date,
		&expense.Reason,
		&amount,
		&expense.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	expense.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expense amount: %w", err)
	}

	return expense, nil
}

// UpdateExpense applies the non-nil fields of upd to an existing record.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, id int64, upd storage.ExpenseUpdate) error {
	var sets []string
	var args []interface{}

	if upd.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, *upd.Date)
	}
	if upd.Reason != nil {
		sets = append(sets, "reason = ?")
		args = append(args, *upd.Reason)
	}
	if upd.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, upd.Amount.String())
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := "UPDATE expense SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return nil
}

// DeleteExpense removes an expense record permanently.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM expense WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

// ListExpensesByOwner returns all expense records owned by a member.
func (s *SQLiteStore) ListExpensesByOwner(ctx context.Context, ownerID int64) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, date, reason, amount, created_at
		FROM expense WHERE owner_id = ?`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var expense models.Expense
		var amount string
		if err := rows.Scan(
			&expense.ID,
			&expense.OwnerID,
			&expense.Date,
			&expense.Reason,
			&amount,
			&expense.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse expense amount: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}
