package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"communitycash/internal/models"
)

// CreateCommunity inserts a new community and populates its ID.
func (s *SQLiteStore) CreateCommunity(ctx context.Context, community *models.Community) error {
	if community.CreatedAt == 0 {
		community.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO community (name, created_at) VALUES (?, ?)",
		community.Name, community.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create community: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get community id: %w", err)
	}
	community.ID = id

	return nil
}

// CreateMember inserts a new member and populates its ID.
func (s *SQLiteStore) CreateMember(ctx context.Context, member *models.Member) error {
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO member (community_id, name, username, password_hash, contribution_percentage, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		member.CommunityID,
		member.Name,
		member.Username,
		member.PasswordHash,
		member.ContributionPercentage,
		member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get member id: %w", err)
	}
	member.ID = id

	return nil
}

// UpdateMember applies the non-nil fields to an existing member.
func (s *SQLiteStore) UpdateMember(ctx context.Context, id int64, name, username *string, contributionPercentage *int) error {
	var sets []string
	var args []interface{}

	if name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *name)
	}
	if username != nil {
		sets = append(sets, "username = ?")
		args = append(args, *username)
	}
	if contributionPercentage != nil {
		sets = append(sets, "contribution_percentage = ?")
		args = append(args, *contributionPercentage)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := "UPDATE member SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}

	return nil
}

// DeleteMember removes a member row.
func (s *SQLiteStore) DeleteMember(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM member WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}

// GetMember retrieves a member by ID. Returns (nil, nil) when absent.
func (s *SQLiteStore) GetMember(ctx context.Context, id int64) (*models.Member, error) {
	return s.getMember(ctx, "id = ?", id)
}

// GetMemberByUsername retrieves a member by their unique username.
// Returns (nil, nil) when absent.
func (s *SQLiteStore) GetMemberByUsername(ctx context.Context, username string) (*models.Member, error) {
	return s.getMember(ctx, "username = ?", username)
}

func (s *SQLiteStore) getMember(ctx context.Context, where string, arg interface{}) (*models.Member, error) {
	member := &models.Member{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, community_id, name, username, password_hash, contribution_percentage, created_at
		FROM member WHERE `+where,
		arg,
	).Scan(
		&member.ID,
		&member.CommunityID,
		&member.Name,
		&member.Username,
		&member.PasswordHash,
		&member.ContributionPercentage,
		&member.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// MemberExistsInCommunity reports whether the member exists and belongs
// to the given community.
func (s *SQLiteStore) MemberExistsInCommunity(ctx context.Context, memberID, communityID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM member WHERE id = ? AND community_id = ?",
		memberID, communityID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check member community: %w", err)
	}

	return true, nil
}
