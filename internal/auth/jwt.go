package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"communitycash/internal/apperr"
)

// TokenType distinguishes short-lived access tokens from long-lived
// refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the fixed claim set carried by every token: subject member,
// tenant community, and token type. Using a struct instead of an open
// map means downstream code cannot read an absent field.
type Claims struct {
	MemberID    int64     `json:"sub"`
	CommunityID int64     `json:"cid"`
	TokenType   TokenType `json:"type"`
	jwt.RegisteredClaims
}

// Identity is the caller identity exposed to request handling after a
// token has been verified. It is the sole source of "who is calling".
type Identity struct {
	MemberID    int64
	CommunityID int64
}

// TokenService issues and verifies HS256-signed tokens. Tokens are
// self-contained, so verification reads only the static signing secret
// and is safe under arbitrary concurrency.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService creates a token service with the given shared secret
// and token lifetimes. The secret should be a strong random string.
func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccessToken signs a short-lived access token binding the member
// to their community.
func (s *TokenService) IssueAccessToken(memberID, communityID int64) (string, error) {
	return s.issue(memberID, communityID, TokenTypeAccess, s.accessTTL)
}

// IssueRefreshToken signs a long-lived refresh token with the same claim
// shape as an access token.
func (s *TokenService) IssueRefreshToken(memberID, communityID int64) (string, error) {
	return s.issue(memberID, communityID, TokenTypeRefresh, s.refreshTTL)
}

func (s *TokenService) issue(memberID, communityID int64, typ TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		MemberID:    memberID,
		CommunityID: communityID,
		TokenType:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperr.Storage(err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the claims. It does not
// check the token type; callers decide which types they accept.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	return claims, nil
}
