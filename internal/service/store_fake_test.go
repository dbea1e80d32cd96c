package service

import (
	"context"
	"io"
	"log/slog"

	"communitycash/internal/models"
	"communitycash/internal/storage"
)

// fakeStore is an in-memory store shared by the service tests.
type fakeStore struct {
	members  map[int64]*models.Member
	incomes  map[int64]*models.Income
	expenses map[int64]*models.Expense
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		members:  make(map[int64]*models.Member),
		incomes:  make(map[int64]*models.Income),
		expenses: make(map[int64]*models.Expense),
		nextID:   1,
	}
}

func (f *fakeStore) addMember(m models.Member) *models.Member {
	if m.ID == 0 {
		m.ID = f.nextID
		f.nextID++
	}
	f.members[m.ID] = &m
	return &m
}

func (f *fakeStore) GetMember(_ context.Context, id int64) (*models.Member, error) {
	member, ok := f.members[id]
	if !ok {
		return nil, nil
	}
	copied := *member
	return &copied, nil
}

func (f *fakeStore) GetMemberByUsername(_ context.Context, username string) (*models.Member, error) {
	for _, member := range f.members {
		if member.Username == username {
			copied := *member
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateIncome(_ context.Context, income *models.Income) error {
	income.ID = f.nextID
	f.nextID++
	copied := *income
	f.incomes[income.ID] = &copied
	return nil
}

func (f *fakeStore) GetIncome(_ context.Context, id int64) (*models.Income, error) {
	income, ok := f.incomes[id]
	if !ok {
		return nil, nil
	}
	copied := *income
	return &copied, nil
}

func (f *fakeStore) UpdateIncome(_ context.Context, id int64, upd storage.IncomeUpdate) error {
	income, ok := f.incomes[id]
	if !ok {
		return nil
	}
	if upd.Date != nil {
		income.Date = *upd.Date
	}
	if upd.Reason != nil {
		income.Reason = *upd.Reason
	}
	if upd.Amount != nil {
		income.Amount = *upd.Amount
	}
	if upd.ContributionPercentage != nil {
		income.ContributionPercentage = *upd.ContributionPercentage
	}
	return nil
}

func (f *fakeStore) DeleteIncome(_ context.Context, id int64) error {
	delete(f.incomes, id)
	return nil
}

func (f *fakeStore) CreateExpense(_ context.Context, expense *models.Expense) error {
	expense.ID = f.nextID
	f.nextID++
	copied := *expense
	f.expenses[expense.ID] = &copied
	return nil
}

func (f *fakeStore) GetExpense(_ context.Context, id int64) (*models.Expense, error) {
	expense, ok := f.expenses[id]
	if !ok {
		return nil, nil
	}
	copied := *expense
	return &copied, nil
}

func (f *fakeStore) UpdateExpense(_ context.Context, id int64, upd storage.ExpenseUpdate) error {
	expense, ok := f.expenses[id]
	if !ok {
		return nil
	}
	if upd.Date != nil {
		expense.Date = *upd.Date
	}
	if upd.Reason != nil {
		expense.Reason = *upd.Reason
	}
	if upd.Amount != nil {
		expense.Amount = *upd.Amount
	}
	return nil
}

func (f *fakeStore) DeleteExpense(_ context.Context, id int64) error {
	delete(f.expenses, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
