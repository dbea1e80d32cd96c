package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"communitycash/internal/apperr"
	"communitycash/internal/auth"
	"communitycash/internal/ledger"
	"communitycash/internal/models"
)

// LedgerService serves the balance and merged-transaction views, gating
// both behind the tenant-read check: the target member must exist
// (checked first) and belong to the caller's community.
type LedgerService struct {
	members    MemberSource
	engine     *ledger.Engine
	aggregator *ledger.Aggregator
	logger     *slog.Logger
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(members MemberSource, engine *ledger.Engine, aggregator *ledger.Aggregator, logger *slog.Logger) *LedgerService {
	return &LedgerService{
		members:    members,
		engine:     engine,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Balance returns the target member's all-time net balance.
func (s *LedgerService) Balance(ctx context.Context, ident auth.Identity, memberID int64) (decimal.Decimal, error) {
	if err := s.checkTenantRead(ctx, ident, memberID); err != nil {
		return decimal.Zero, err
	}
	return s.engine.Calculate(ctx, memberID)
}

// Transactions returns one page of the target member's merged
// income+expense view. Pagination input is validated by the aggregator
// before any storage query runs.
func (s *LedgerService) Transactions(ctx context.Context, ident auth.Identity, memberID int64, perPage, page int) ([]models.Transaction, models.Pagination, error) {
	if err := s.checkTenantRead(ctx, ident, memberID); err != nil {
		return nil, models.Pagination{}, err
	}
	return s.aggregator.ListPage(ctx, memberID, perPage, page)
}

// checkTenantRead fails with NotFound when the target member does not
// exist and Forbidden when they belong to another community. Existence
// resolves first, so a same-system caller learns a member exists even
// across tenants, while the denial itself stays uniformly Forbidden.
func (s *LedgerService) checkTenantRead(ctx context.Context, ident auth.Identity, memberID int64) error {
	member, err := s.members.GetMember(ctx, memberID)
	if err != nil {
		return apperr.Storage(err)
	}
	if member == nil {
		return apperr.NotFound("member")
	}
	if member.CommunityID != ident.CommunityID {
		return apperr.Forbidden()
	}
	return nil
}
