package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"communitycash/internal/apperr"
	"communitycash/internal/auth"
	"communitycash/internal/models"
	"communitycash/internal/storage"
)

// IncomeStore is the income slice of the store.
type IncomeStore interface {
	MemberSource
	CreateIncome(ctx context.Context, income *models.Income) error
	GetIncome(ctx context.Context, id int64) (*models.Income, error)
	UpdateIncome(ctx context.Context, id int64, upd storage.IncomeUpdate) error
	DeleteIncome(ctx context.Context, id int64) error
}

// IncomeInput carries the validated-on-entry fields for creating an
// income record. A nil ContributionPercentage resolves to the owning
// member's default at creation time.
type IncomeInput struct {
	Date                   string
	Reason                 string
	Amount                 decimal.Decimal
	ContributionPercentage *int
}

// IncomeUpdateInput carries a partial update; nil fields are unchanged.
type IncomeUpdateInput struct {
	Date                   *string
	Reason                 *string
	Amount                 *decimal.Decimal
	ContributionPercentage *int
}

// IncomeService implements income record operations with ownership
// policy. The caller identity always comes from the verified token, via
// the gate middleware; request bodies claiming other member ids carry no
// authority.
type IncomeService struct {
	store  IncomeStore
	logger *slog.Logger
}

// NewIncomeService creates a new income service.
func NewIncomeService(store IncomeStore, logger *slog.Logger) *IncomeService {
	return &IncomeService{store: store, logger: logger}
}

// Create records a new income owned by the caller. The contribution
// percentage is resolved once, here, and stored on the record so later
// changes to the member's default never rewrite history.
func (s *IncomeService) Create(ctx context.Context, ident auth.Identity, in IncomeInput) (*models.Income, error) {
	member, err := s.store.GetMember(ctx, ident.MemberID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if member == nil || member.CommunityID != ident.CommunityID {
		return nil, apperr.Forbidden()
	}

	date, reason, amount, err := validateRecordInput(in.Date, in.Reason, in.Amount)
	if err != nil {
		return nil, err
	}
	if err := validatePercentage(in.ContributionPercentage); err != nil {
		return nil, err
	}

	pct := member.ContributionPercentage
	if in.ContributionPercentage != nil {
		pct = *in.ContributionPercentage
	}

	income := &models.Income{
		OwnerID:                ident.MemberID,
		Date:                   date,
		Reason:                 reason,
		Amount:                 amount,
		ContributionPercentage: pct,
	}
	if err := s.store.CreateIncome(ctx, income); err != nil {
		return nil, apperr.Storage(err)
	}

	s.logger.Info("income created", "income_id", income.ID, "member_id", ident.MemberID)
	return income, nil
}

// Get returns a single income record. Reads are tenant-scoped: any
// member of the owner's community may read the record. Existence is
// checked before tenancy, so cross-tenant denial is uniformly Forbidden.
func (s *IncomeService) Get(ctx context.Context, ident auth.Identity, id int64) (*models.Income, error) {
	income, err := s.store.GetIncome(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if income == nil {
		return nil, apperr.NotFound("income")
	}

	if err := s.checkOwnerTenancy(ctx, ident, income.OwnerID); err != nil {
		return nil, err
	}

	return income, nil
}

// Update applies a partial update to an income record the caller owns.
func (s *IncomeService) Update(ctx context.Context, ident auth.Identity, id int64, in IncomeUpdateInput) (*models.Income, error) {
	income, err := s.store.GetIncome(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if income == nil {
		return nil, apperr.NotFound("income")
	}
	if income.OwnerID != ident.MemberID {
		return nil, apperr.Forbidden()
	}

	upd, err := validateIncomeUpdate(in)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateIncome(ctx, id, upd); err != nil {
		return nil, apperr.Storage(err)
	}

	updated, err := s.store.GetIncome(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	s.logger.Info("income updated", "income_id", id, "member_id", ident.MemberID)
	return updated, nil
}

// Delete permanently removes an income record the caller owns.
func (s *IncomeService) Delete(ctx context.Context, ident auth.Identity, id int64) error {
	income, err := s.store.GetIncome(ctx, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if income == nil {
		return apperr.NotFound("income")
	}
	if income.OwnerID != ident.MemberID {
		return apperr.Forbidden()
	}

	if err := s.store.DeleteIncome(ctx, id); err != nil {
		return apperr.Storage(err)
	}

	s.logger.Info("income deleted", "income_id", id, "member_id", ident.MemberID)
	return nil
}

// checkOwnerTenancy resolves the record owner's community and compares
// it to the caller's. A vanished owner is treated the same as a foreign
// one; the record's existence has already been established.
func (s *IncomeService) checkOwnerTenancy(ctx context.Context, ident auth.Identity, ownerID int64) error {
	owner, err := s.store.GetMember(ctx, ownerID)
	if err != nil {
		return apperr.Storage(err)
	}
	if owner == nil || owner.CommunityID != ident.CommunityID {
		return apperr.Forbidden()
	}
	return nil
}

func validateRecordInput(date, reason string, amount decimal.Decimal) (string, string, decimal.Decimal, error) {
	if err := validateAmount(amount); err != nil {
		return "", "", decimal.Zero, err
	}
	validReason, err := validateReason(reason)
	if err != nil {
		return "", "", decimal.Zero, err
	}
	validDate, err := validateDate(date)
	if err != nil {
		return "", "", decimal.Zero, err
	}
	return validDate, validReason, amount, nil
}

func validateIncomeUpdate(in IncomeUpdateInput) (storage.IncomeUpdate, error) {
	var upd storage.IncomeUpdate

	if in.Amount != nil {
		if err := validateAmount(*in.Amount); err != nil {
			return storage.IncomeUpdate{}, err
		}
		upd.Amount = in.Amount
	}
	if in.Reason != nil {
		reason, err := validateReason(*in.Reason)
		if err != nil {
			return storage.IncomeUpdate{}, err
		}
		upd.Reason = &reason
	}
	if in.Date != nil {
		date, err := validateDate(*in.Date)
		if err != nil {
			return storage.IncomeUpdate{}, err
		}
		upd.Date = &date
	}
	if in.ContributionPercentage != nil {
		if err := validatePercentage(in.ContributionPercentage); err != nil {
			return storage.IncomeUpdate{}, err
		}
		upd.ContributionPercentage = in.ContributionPercentage
	}

	return upd, nil
}
