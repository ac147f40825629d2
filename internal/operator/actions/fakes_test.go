package actions

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/errs"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// fakeStore is a map-backed stand-in for the three tables. It implements the
// writer interfaces directly, so actions run against it unmodified.
type fakeStore struct {
	mu           sync.Mutex
	accounts     map[uuid.UUID]*account.Account
	categories   map[uuid.UUID]*category.Category
	transactions map[uuid.UUID]*transaction.Transaction
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:     make(map[uuid.UUID]*account.Account),
		categories:   make(map[uuid.UUID]*category.Category),
		transactions: make(map[uuid.UUID]*transaction.Transaction),
	}
}

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(context.Context) error   { t.committed = true; return nil }
func (t *fakeTx) Rollback(context.Context) error { t.rolledBack = true; return nil }

func (s *fakeStore) writer() *storage.Writer {
	w := storage.NewFakeWriter(&fakeTx{},
		&fakeAccounts{s: s},
		&fakeCategories{s: s},
		&fakeTransactions{s: s},
	)
	return &w
}

func (s *fakeStore) addAccount(ownerID, name string, balance decimal.Decimal) uuid.UUID {
	id := uuid.Must(uuid.NewV4())
	s.accounts[id] = &account.Account{
		ID: id, OwnerID: ownerID, Name: name,
		Balance: balance, StartingBalance: balance,
	}
	return id
}

func (s *fakeStore) addCategory(ownerID, name string, kind ledger.Kind) uuid.UUID {
	id := uuid.Must(uuid.NewV4())
	s.categories[id] = &category.Category{ID: id, OwnerID: ownerID, Name: name, Kind: kind}
	return id
}

// -- accounts --

type fakeAccounts struct{ s *fakeStore }

var _ account.IWriter = (*fakeAccounts)(nil)

func (f *fakeAccounts) FindByID(_ context.Context, ownerID string, id uuid.UUID) (*account.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.accounts[id]
	if !ok || a.OwnerID != ownerID {
		return nil, errs.NotFoundf("account %s not found", id)
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAccounts) FindByIDForUpdate(ctx context.Context, ownerID string, id uuid.UUID) (*account.Account, error) {
	return f.FindByID(ctx, ownerID, id)
}

func (f *fakeAccounts) List(_ context.Context, ownerID string, _ *account.AccountFilter) ([]*account.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*account.Account
	for _, a := range f.s.accounts {
		if a.OwnerID == ownerID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeAccounts) Insert(_ context.Context, ownerID string, create *account.AccountCreate) (uuid.UUID, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	id := uuid.Must(uuid.NewV4())
	f.s.accounts[id] = &account.Account{
		ID: id, OwnerID: ownerID, Name: create.Name, Kind: create.Kind,
		Balance: create.Balance, StartingBalance: create.StartingBalance,
		Goal: create.Goal, Description: create.Description,
	}
	return id, nil
}

func (f *fakeAccounts) UpdateBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.accounts[id]
	if !ok {
		return errs.NotFoundf("account %s not found", id)
	}
	a.Balance = balance
	return nil
}

func (f *fakeAccounts) Rebase(_ context.Context, id uuid.UUID, balance, startingBalance decimal.Decimal) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.accounts[id]
	if !ok {
		return errs.NotFoundf("account %s not found", id)
	}
	a.Balance = balance
	a.StartingBalance = startingBalance
	return nil
}

func (f *fakeAccounts) Delete(_ context.Context, ownerID string, id uuid.UUID) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.accounts[id]
	if !ok || a.OwnerID != ownerID {
		return 0, nil
	}
	delete(f.s.accounts, id)
	return 1, nil
}

func (f *fakeAccounts) DeleteAllForOwner(_ context.Context, ownerID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for id, a := range f.s.accounts {
		if a.OwnerID == ownerID {
			delete(f.s.accounts, id)
		}
	}
	return nil
}

// -- categories --

type fakeCategories struct{ s *fakeStore }

var _ category.IWriter = (*fakeCategories)(nil)

func (f *fakeCategories) FindByID(_ context.Context, ownerID string, id uuid.UUID) (*category.Category, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.categories[id]
	if !ok || c.OwnerID != ownerID {
		return nil, errs.NotFoundf("category %s not found", id)
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCategories) List(_ context.Context, ownerID string, _ *category.CategoryFilter) ([]*category.Category, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*category.Category
	for _, c := range f.s.categories {
		if c.OwnerID == ownerID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeCategories) Insert(_ context.Context, ownerID string, create *category.CategoryCreate) (uuid.UUID, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	id := uuid.Must(uuid.NewV4())
	f.s.categories[id] = &category.Category{ID: id, OwnerID: ownerID, Name: create.Name, Kind: create.Kind}
	return id, nil
}

func (f *fakeCategories) Delete(_ context.Context, ownerID string, id uuid.UUID) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.categories[id]
	if !ok || c.OwnerID != ownerID {
		return 0, nil
	}
	delete(f.s.categories, id)
	return 1, nil
}

func (f *fakeCategories) DeleteAllForOwner(_ context.Context, ownerID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for id, c := range f.s.categories {
		if c.OwnerID == ownerID {
			delete(f.s.categories, id)
		}
	}
	return nil
}

// -- transactions --

type fakeTransactions struct{ s *fakeStore }

var _ transaction.IWriter = (*fakeTransactions)(nil)

func (f *fakeTransactions) FindByID(_ context.Context, ownerID string, id uuid.UUID) (*transaction.Transaction, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	tx, ok := f.s.transactions[id]
	if !ok || tx.OwnerID != ownerID {
		return nil, errs.NotFoundf("transaction %s not found", id)
	}
	copied := *tx
	return &copied, nil
}

func (f *fakeTransactions) List(_ context.Context, ownerID string, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*transaction.Transaction
	for _, tx := range f.s.transactions {
		if tx.OwnerID != ownerID {
			continue
		}
		if filter != nil && filter.AccountID != nil && tx.AccountID != *filter.AccountID {
			continue
		}
		if filter != nil && filter.CategoryID != nil && tx.CategoryID != *filter.CategoryID {
			continue
		}
		copied := *tx
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeTransactions) Insert(_ context.Context, ownerID string, create *transaction.TransactionCreate) (uuid.UUID, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	id := uuid.Must(uuid.NewV4())
	now := time.Now()
	f.s.transactions[id] = &transaction.Transaction{
		ID: id, OwnerID: ownerID, Kind: create.Kind, Amount: create.Amount,
		CategoryID: create.CategoryID, AccountID: create.AccountID,
		Description: create.Description, TransactionDate: create.TransactionDate,
		CreatedAt: now, UpdatedAt: now,
	}
	return id, nil
}

func (f *fakeTransactions) Update(_ context.Context, ownerID string, id uuid.UUID, update *transaction.TransactionUpdate) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	tx, ok := f.s.transactions[id]
	if !ok || tx.OwnerID != ownerID {
		return 0, nil
	}
	tx.Kind = update.Kind
	tx.Amount = update.Amount
	tx.CategoryID = update.CategoryID
	tx.AccountID = update.AccountID
	tx.Description = update.Description
	tx.TransactionDate = update.TransactionDate
	tx.UpdatedAt = time.Now()
	return 1, nil
}

func (f *fakeTransactions) Delete(_ context.Context, ownerID string, id uuid.UUID) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	tx, ok := f.s.transactions[id]
	if !ok || tx.OwnerID != ownerID {
		return 0, nil
	}
	delete(f.s.transactions, id)
	return 1, nil
}

func (f *fakeTransactions) DeleteByIDs(_ context.Context, ownerID string, ids []uuid.UUID) ([]*transaction.Deleted, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*transaction.Deleted
	for _, id := range ids {
		tx, ok := f.s.transactions[id]
		if !ok || tx.OwnerID != ownerID {
			continue
		}
		out = append(out, &transaction.Deleted{AccountID: tx.AccountID, Kind: tx.Kind, Amount: tx.Amount})
		delete(f.s.transactions, id)
	}
	return out, nil
}

func (f *fakeTransactions) DeleteByCategory(_ context.Context, ownerID string, categoryID uuid.UUID) ([]*transaction.Deleted, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*transaction.Deleted
	for id, tx := range f.s.transactions {
		if tx.OwnerID != ownerID || tx.CategoryID != categoryID {
			continue
		}
		out = append(out, &transaction.Deleted{AccountID: tx.AccountID, Kind: tx.Kind, Amount: tx.Amount})
		delete(f.s.transactions, id)
	}
	return out, nil
}

func (f *fakeTransactions) DeleteByAccount(_ context.Context, ownerID string, accountID uuid.UUID) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for id, tx := range f.s.transactions {
		if tx.OwnerID != ownerID || tx.AccountID != accountID {
			continue
		}
		delete(f.s.transactions, id)
		n++
	}
	return n, nil
}

func (f *fakeTransactions) DeleteAllForOwner(_ context.Context, ownerID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for id, tx := range f.s.transactions {
		if tx.OwnerID == ownerID {
			delete(f.s.transactions, id)
		}
	}
	return nil
}
