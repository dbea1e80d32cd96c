package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communitycash/internal/apperr"
	"communitycash/internal/auth"
	"communitycash/internal/models"
)

func newAuthFixture(t *testing.T) (*AuthService, *auth.TokenService, *fakeStore) {
	t.Helper()

	store := newFakeStore()
	hash, err := auth.HashPassword("hunter22")
	require.NoError(t, err)
	store.addMember(models.Member{
		ID:           10,
		CommunityID:  3,
		Username:     "alice",
		PasswordHash: hash,
	})

	tokens := auth.NewTokenService("test-secret", time.Hour, 7*24*time.Hour)
	return NewAuthService(store, tokens, testLogger()), tokens, store
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials yield a token pair bound to the member", func(t *testing.T) {
		svc, tokens, _ := newAuthFixture(t)

		pair, err := svc.Login(ctx, "alice", "hunter22")
		require.NoError(t, err)

		access, err := tokens.Verify(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(10), access.MemberID)
		assert.Equal(t, int64(3), access.CommunityID)
		assert.Equal(t, auth.TokenTypeAccess, access.TokenType)

		refresh, err := tokens.Verify(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, auth.TokenTypeRefresh, refresh.TokenType)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		_, err := svc.Login(ctx, "alice", "nope")
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})

	t.Run("unknown username is unauthorized", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		_, err := svc.Login(ctx, "mallory", "hunter22")
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)

		_, err := svc.Login(ctx, "", "hunter22")
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

		_, err = svc.Login(ctx, "alice", "")
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestAuthServiceRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("refresh token yields a new pair", func(t *testing.T) {
		svc, tokens, _ := newAuthFixture(t)

		refreshToken, err := tokens.IssueRefreshToken(10, 3)
		require.NoError(t, err)

		pair, err := svc.Refresh(ctx, refreshToken)
		require.NoError(t, err)

		access, err := tokens.Verify(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(10), access.MemberID)
		assert.Equal(t, int64(3), access.CommunityID)
	})

	t.Run("access token cannot refresh", func(t *testing.T) {
		svc, tokens, _ := newAuthFixture(t)

		accessToken, err := tokens.IssueAccessToken(10, 3)
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, accessToken)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		_, err := svc.Refresh(ctx, "garbage")
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})

	t.Run("missing token fails validation", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		_, err := svc.Refresh(ctx, "")
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}
