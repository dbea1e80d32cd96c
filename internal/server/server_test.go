package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communitycash/internal/auth"
	"communitycash/internal/config"
	"communitycash/internal/models"
	"communitycash/internal/storage/sqlite"
)

// testEnv is a full server over a throwaway SQLite database, seeded with
// two communities: alice and carol share one, bob lives in the other.
type testEnv struct {
	server *httptest.Server
	store  *sqlite.SQLiteStore

	alice *models.Member
	carol *models.Member
	bob   *models.Member
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(cfg, store, logger)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	env := &testEnv{server: ts, store: store}
	env.alice = env.seedMember(t, "house", "alice", 75)
	env.carol = env.seedMemberIn(t, env.alice.CommunityID, "carol", 50)
	env.bob = env.seedMember(t, "flat", "bob", 80)
	return env
}

func (e *testEnv) seedMember(t *testing.T, communityName, username string, pct int) *models.Member {
	t.Helper()
	community := &models.Community{Name: communityName}
	require.NoError(t, e.store.CreateCommunity(context.Background(), community))
	return e.seedMemberIn(t, community.ID, username, pct)
}

func (e *testEnv) seedMemberIn(t *testing.T, communityID int64, username string, pct int) *models.Member {
	t.Helper()
	hash, err := auth.HashPassword("hunter22")
	require.NoError(t, err)
	member := &models.Member{
		CommunityID:            communityID,
		Name:                   username,
		Username:               username,
		PasswordHash:           hash,
		ContributionPercentage: pct,
	}
	require.NoError(t, e.store.CreateMember(context.Background(), member))
	return member
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *testEnv) login(t *testing.T, username string) (access, refresh string) {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/login", "", map[string]string{
		"username": username,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pair := decode[map[string]string](t, resp)
	require.NotEmpty(t, pair["access_token"])
	require.NotEmpty(t, pair["refresh_token"])
	return pair["access_token"], pair["refresh_token"]
}

func TestLoginAndRefresh(t *testing.T) {
	env := newTestEnv(t)

	t.Run("login then refresh yields usable tokens", func(t *testing.T) {
		_, refresh := env.login(t, "alice")

		resp := env.request(t, http.MethodPost, "/refresh", "", map[string]string{
			"refresh_token": refresh,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		pair := decode[map[string]string](t, resp)

		resp = env.request(t, http.MethodGet,
			fmt.Sprintf("/balance/%d/%d", env.alice.CommunityID, env.alice.ID),
			pair["access_token"], nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/login", "", map[string]string{
			"username": "alice",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing credentials are 400", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/login", "", map[string]string{
			"username": "alice",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("refresh token is rejected on protected routes", func(t *testing.T) {
		_, refresh := env.login(t, "alice")
		resp := env.request(t, http.MethodGet,
			fmt.Sprintf("/balance/%d/%d", env.alice.CommunityID, env.alice.ID),
			refresh, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("no token is 401", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/income/1", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLedgerFlow(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.login(t, "alice")

	post := func(t *testing.T, path string, body any) {
		t.Helper()
		resp := env.request(t, http.MethodPost, path, access, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	post(t, "/income", map[string]any{"date": "2025-02-14", "reason": "Salary", "amount": "1000.00"})
	post(t, "/income", map[string]any{"date": "2025-02-13", "reason": "Bonus", "amount": "500.00"})
	post(t, "/expense", map[string]any{"date": "2025-02-15", "reason": "Groceries", "amount": "300.00"})
	post(t, "/expense", map[string]any{"date": "2025-02-16", "reason": "Utilities", "amount": "200.00"})

	balancePath := fmt.Sprintf("/balance/%d/%d", env.alice.CommunityID, env.alice.ID)
	txnsPath := fmt.Sprintf("/transactions/%d/%d", env.alice.CommunityID, env.alice.ID)

	t.Run("balance is 75% of income minus expenses", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, balancePath, access, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode[struct {
			Balance decimal.Decimal `json:"balance"`
		}](t, resp)
		assert.True(t, body.Balance.Equal(decimal.RequireFromString("625.00")), "got %s", body.Balance)
	})

	t.Run("transactions merge both tables newest first", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, txnsPath, access, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode[struct {
			Data       []models.Transaction `json:"data"`
			Pagination models.Pagination    `json:"pagination"`
		}](t, resp)
		require.Len(t, body.Data, 4)

		var reasons []string
		for _, txn := range body.Data {
			reasons = append(reasons, txn.Reason)
		}
		assert.Equal(t, []string{"Utilities", "Groceries", "Salary", "Bonus"}, reasons)
		assert.Equal(t, models.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 4, PerPage: 25}, body.Pagination)

		assert.Equal(t, models.TransactionExpense, body.Data[0].Type)
		assert.Nil(t, body.Data[0].ContributionPercentage)
		require.NotNil(t, body.Data[2].ContributionPercentage)
		assert.Equal(t, 75, *body.Data[2].ContributionPercentage)
	})

	t.Run("per_page and page shape the page", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, txnsPath+"?per_page=3&page=2", access, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode[struct {
			Data       []models.Transaction `json:"data"`
			Pagination models.Pagination    `json:"pagination"`
		}](t, resp)
		assert.Len(t, body.Data, 1)
		assert.Equal(t, models.Pagination{CurrentPage: 2, TotalPages: 2, TotalItems: 4, PerPage: 3}, body.Pagination)
	})

	t.Run("per_page of zero is 400", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, txnsPath+"?per_page=0", access, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("non-numeric page is 400", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, txnsPath+"?page=abc", access, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("cross-community reads are 403", func(t *testing.T) {
		bobAccess, _ := env.login(t, "bob")

		resp := env.request(t, http.MethodGet, balancePath, bobAccess, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp = env.request(t, http.MethodGet, txnsPath, bobAccess, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown member is 404", func(t *testing.T) {
		resp := env.request(t, http.MethodGet,
			fmt.Sprintf("/balance/%d/%d", env.alice.CommunityID, int64(9999)), access, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRecordEndpoints(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.login(t, "alice")
	carolAccess, _ := env.login(t, "carol")
	bobAccess, _ := env.login(t, "bob")

	createIncome := func(t *testing.T) models.Income {
		t.Helper()
		resp := env.request(t, http.MethodPost, "/income", access, map[string]any{
			"date": "2025-02-14", "reason": "Salary", "amount": "1000.00",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		return decode[models.Income](t, resp)
	}

	t.Run("create fills defaults from the member", func(t *testing.T) {
		income := createIncome(t)
		assert.Equal(t, env.alice.ID, income.OwnerID)
		assert.Equal(t, 75, income.ContributionPercentage)
	})

	t.Run("same-community read is allowed, cross-community is not", func(t *testing.T) {
		income := createIncome(t)
		path := fmt.Sprintf("/income/%d", income.ID)

		resp := env.request(t, http.MethodGet, path, carolAccess, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = env.request(t, http.MethodGet, path, bobAccess, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("only the owner may update", func(t *testing.T) {
		income := createIncome(t)
		path := fmt.Sprintf("/income/%d", income.ID)

		resp := env.request(t, http.MethodPut, path, carolAccess, map[string]any{"reason": "hijack"})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp = env.request(t, http.MethodPut, path, access, map[string]any{"amount": "1200.00"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		updated := decode[models.Income](t, resp)
		assert.True(t, updated.Amount.Equal(decimal.RequireFromString("1200.00")))
		assert.Equal(t, "Salary", updated.Reason)
	})

	t.Run("owner delete returns 204 then 404", func(t *testing.T) {
		income := createIncome(t)
		path := fmt.Sprintf("/income/%d", income.ID)

		resp := env.request(t, http.MethodDelete, path, access, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = env.request(t, http.MethodGet, path, access, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("validation failures are 400", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/expense", access, map[string]any{
			"date": "2025-02-14", "reason": "x", "amount": "-5",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp = env.request(t, http.MethodGet, "/income/0", access, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, env.server.URL+"/income", bytes.NewReader([]byte("{")))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+access)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp := env.request(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
