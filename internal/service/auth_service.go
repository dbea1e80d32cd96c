// Package service implements the application operations behind the HTTP
// layer: token issuance, record CRUD with tenancy/ownership policy, and
// the balance and transaction views.
package service

import (
	"context"
	"log/slog"

	"communitycash/internal/apperr"
	"communitycash/internal/auth"
	"communitycash/internal/models"
)

// MemberSource is the member-lookup slice of the store used across the
// services in this package.
type MemberSource interface {
	GetMember(ctx context.Context, id int64) (*models.Member, error)
	GetMemberByUsername(ctx context.Context, username string) (*models.Member, error)
}

// TokenPair is the credential pair returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService exchanges member credentials for token pairs.
type AuthService struct {
	members MemberSource
	tokens  *auth.TokenService
	logger  *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(members MemberSource, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		members: members,
		tokens:  tokens,
		logger:  logger,
	}
}

// Login verifies a username/password pair and issues a fresh token pair
// bound to the member and their community.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	if username == "" {
		return nil, apperr.Validation("Username is required")
	}
	if password == "" {
		return nil, apperr.Validation("Password is required")
	}

	member, err := s.members.GetMemberByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if member == nil || !auth.VerifyPassword(password, member.PasswordHash) {
		s.logger.Warn("login failed", "username", username)
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	pair, err := s.issuePair(member.ID, member.CommunityID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("member logged in", "member_id", member.ID, "community_id", member.CommunityID)
	return pair, nil
}

// Refresh exchanges a valid refresh token for a new token pair. Access
// tokens are rejected here, mirroring how refresh tokens are rejected on
// protected routes.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, apperr.Validation("Refresh token is required")
	}

	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != auth.TokenTypeRefresh {
		return nil, apperr.Unauthorized("Invalid token type")
	}

	pair, err := s.issuePair(claims.MemberID, claims.CommunityID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("token pair refreshed", "member_id", claims.MemberID)
	return pair, nil
}

func (s *AuthService) issuePair(memberID, communityID int64) (*TokenPair, error) {
	accessToken, err := s.tokens.IssueAccessToken(memberID, communityID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(memberID, communityID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
