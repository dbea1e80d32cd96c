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

// CreateIncome inserts a new income record and populates its ID.
func (s *SQLiteStore) CreateIncome(ctx context.Context, income *models.Income) error {
	if income.CreatedAt == 0 {
		income.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO income (owner_id, date, reason, amount, contribution_percentage, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		income.OwnerID,
		income.Date,
		income.Reason,
		income.Amount.String(),
		income.ContributionPercentage,
		income.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get income id: %w", err)
	}
	income.ID = id

	return nil
}

// GetIncome retrieves an income record by ID. Returns (nil, nil) when
// absent.
func (s *SQLiteStore) GetIncome(ctx context.Context, id int64) (*models.Income, error) {
	income := &models.Income{}
	var amount string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, date, reason, amount, contribution_percentage, created_at
		FROM income WHERE id = ?`,
		id,
	).Scan(
		&income.ID,
		&income.OwnerID,
		&income.Date,
		&income.Reason,
		&amount,
		&income.ContributionPercentage,
		&income.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get income: %w", err)
	}

	income.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse income amount: %w", err)
	}

	return income, nil
}

// UpdateIncome applies the non-nil fields of upd to an existing record.
func (s *SQLiteStore) UpdateIncome(ctx context.Context, id int64, upd storage.IncomeUpdate) error {
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
	if upd.ContributionPercentage != nil {
		sets = append(sets, "contribution_percentage = ?")
		args = append(args, *upd.ContributionPercentage)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := "UPDATE income SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update income: %w", err)
	}

	return nil
}

// DeleteIncome removes an income record permanently.
func (s *SQLiteStore) DeleteIncome(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM income WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	return nil
}

// ListIncomesByOwner returns all income records owned by a member.
func (s *SQLiteStore) ListIncomesByOwner(ctx context.Context, ownerID int64) ([]models.Income, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, date, reason, amount, contribution_percentage, created_at
		FROM income WHERE owner_id = ?`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	defer rows.Close()

	var incomes []models.Income
	for rows.Next() {
		var income models.Income
		var amount string
		if err := rows.Scan(
			&income.ID,
			&income.OwnerID,
			&income.Date,
			&income.Reason,
			&amount,
			&income.ContributionPercentage,
			&income.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		income.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse income amount: %w", err)
		}
		incomes = append(incomes, income)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate incomes: %w", err)
	}

	return incomes, nil
}
