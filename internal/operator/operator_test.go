package operator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/errs"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// lockingStore emulates the database's row locking: FindByIDForUpdate blocks
// until the unit holding the account row commits or rolls back, and balance
// writes only become visible on commit. It is just enough store to exercise
// the operator's serialization guarantee.
type lockingStore struct {
	mu       sync.Mutex
	balances map[uuid.UUID]decimal.Decimal
	locks    map[uuid.UUID]*sync.Mutex

	categoryKind ledger.Kind

	inserted int
}

func newLockingStore() *lockingStore {
	return &lockingStore{
		balances:     make(map[uuid.UUID]decimal.Decimal),
		locks:        make(map[uuid.UUID]*sync.Mutex),
		categoryKind: ledger.KindIncome,
	}
}

func (s *lockingStore) addAccount(balance decimal.Decimal) uuid.UUID {
	id := uuid.Must(uuid.NewV4())
	s.balances[id] = balance
	s.locks[id] = &sync.Mutex{}
	return id
}

func (s *lockingStore) Write(ctx context.Context) (*storage.Writer, error) {
	u := &unit{s: s, staged: make(map[uuid.UUID]decimal.Decimal)}
	w := storage.NewFakeWriter(u, &unitAccounts{u}, &unitCategories{u}, &unitTransactions{u})
	return &w, nil
}

type unit struct {
	s          *lockingStore
	held       []uuid.UUID
	staged     map[uuid.UUID]decimal.Decimal
	stagedRows int
	done       bool
}

func (u *unit) release() {
	for _, id := range u.held {
		u.s.locks[id].Unlock()
	}
	u.held = nil
	u.done = true
}

func (u *unit) Commit(context.Context) error {
	u.s.mu.Lock()
	for id, b := range u.staged {
		u.s.balances[id] = b
	}
	u.s.inserted += u.stagedRows
	u.s.mu.Unlock()
	u.release()
	return nil
}

func (u *unit) Rollback(context.Context) error {
	u.release()
	return nil
}

type unitAccounts struct{ u *unit }

var _ account.IWriter = (*unitAccounts)(nil)

func (f *unitAccounts) FindByIDForUpdate(_ context.Context, _ string, id uuid.UUID) (*account.Account, error) {
	f.u.s.mu.Lock()
	lock, ok := f.u.s.locks[id]
	f.u.s.mu.Unlock()
	if !ok {
		return nil, errs.NotFoundf("account %s not found", id)
	}

	lock.Lock()
	f.u.held = append(f.u.held, id)

	f.u.s.mu.Lock()
	balance := f.u.s.balances[id]
	f.u.s.mu.Unlock()
	return &account.Account{ID: id, Balance: balance}, nil
}

func (f *unitAccounts) FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*account.Account, error) {
	f.u.s.mu.Lock()
	defer f.u.s.mu.Unlock()
	balance, ok := f.u.s.balances[id]
	if !ok {
		return nil, errs.NotFoundf("account %s not found", id)
	}
	return &account.Account{ID: id, Balance: balance}, nil
}

func (f *unitAccounts) List(context.Context, string, *account.AccountFilter) ([]*account.Account, error) {
	return nil, nil
}

func (f *unitAccounts) Insert(context.Context, string, *account.AccountCreate) (uuid.UUID, error) {
	return uuid.Must(uuid.NewV4()), nil
}

func (f *unitAccounts) UpdateBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal) error {
	f.u.staged[id] = balance
	return nil
}

func (f *unitAccounts) Rebase(context.Context, uuid.UUID, decimal.Decimal, decimal.Decimal) error {
	return nil
}

func (f *unitAccounts) Delete(context.Context, string, uuid.UUID) (int64, error) { return 0, nil }

func (f *unitAccounts) DeleteAllForOwner(context.Context, string) error { return nil }

type unitCategories struct{ u *unit }

var _ category.IWriter = (*unitCategories)(nil)

func (f *unitCategories) FindByID(_ context.Context, _ string, id uuid.UUID) (*category.Category, error) {
	return &category.Category{ID: id, Name: "test", Kind: f.u.s.categoryKind}, nil
}

func (f *unitCategories) List(context.Context, string, *category.CategoryFilter) ([]*category.Category, error) {
	return nil, nil
}

func (f *unitCategories) Insert(context.Context, string, *category.CategoryCreate) (uuid.UUID, error) {
	return uuid.Must(uuid.NewV4()), nil
}

func (f *unitCategories) Delete(context.Context, string, uuid.UUID) (int64, error) { return 0, nil }

func (f *unitCategories) DeleteAllForOwner(context.Context, string) error { return nil }

type unitTransactions struct{ u *unit }

var _ transaction.IWriter = (*unitTransactions)(nil)

func (f *unitTransactions) FindByID(_ context.Context, _ string, id uuid.UUID) (*transaction.Transaction, error) {
	return nil, errs.NotFoundf("transaction %s not found", id)
}

func (f *unitTransactions) List(context.Context, string, *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	return nil, nil
}

func (f *unitTransactions) Insert(context.Context, string, *transaction.TransactionCreate) (uuid.UUID, error) {
	f.u.stagedRows++
	return uuid.Must(uuid.NewV4()), nil
}

func (f *unitTransactions) Update(context.Context, string, uuid.UUID, *transaction.TransactionUpdate) (int64, error) {
	return 0, nil
}

func (f *unitTransactions) Delete(context.Context, string, uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *unitTransactions) DeleteByIDs(context.Context, string, []uuid.UUID) ([]*transaction.Deleted, error) {
	return nil, nil
}

func (f *unitTransactions) DeleteByCategory(context.Context, string, uuid.UUID) ([]*transaction.Deleted, error) {
	return nil, nil
}

func (f *unitTransactions) DeleteByAccount(context.Context, string, uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *unitTransactions) DeleteAllForOwner(context.Context, string) error { return nil }

// -- tests --

type stubAction struct {
	err    error
	called bool
}

func (a *stubAction) Perform(context.Context, *storage.Writer) error {
	a.called = true
	return a.err
}

func TestProcess_CommitsOnSuccess(t *testing.T) {
	store := newLockingStore()
	accountID := store.addAccount(decimal.RequireFromString("100"))

	d := NewOperatorDelegator(store, 1)
	d.Start()
	defer d.Stop()

	action := &actions.CreateTransaction{
		OwnerID:         "owner-1",
		Kind:            ledger.KindIncome,
		Amount:          decimal.RequireFromString("25"),
		CategoryID:      uuid.Must(uuid.NewV4()),
		AccountID:       accountID,
		TransactionDate: time.Now(),
	}
	err := d.Process(context.Background(), action)

	require.NoError(t, err)
	assert.True(t, store.balances[accountID].Equal(decimal.RequireFromString("125")))
	assert.Equal(t, 1, store.inserted)
}

func TestProcess_RollsBackOnActionError(t *testing.T) {
	store := newLockingStore()
	accountID := store.addAccount(decimal.RequireFromString("100"))
	store.categoryKind = ledger.KindExpense // mismatch with the income action below

	d := NewOperatorDelegator(store, 1)
	d.Start()
	defer d.Stop()

	action := &actions.CreateTransaction{
		OwnerID:         "owner-1",
		Kind:            ledger.KindIncome,
		Amount:          decimal.RequireFromString("25"),
		CategoryID:      uuid.Must(uuid.NewV4()),
		AccountID:       accountID,
		TransactionDate: time.Now(),
	}
	err := d.Process(context.Background(), action)

	assert.True(t, errs.IsValidation(err))
	assert.True(t, store.balances[accountID].Equal(decimal.RequireFromString("100")), "no partial state")
	assert.Equal(t, 0, store.inserted)
}

func TestProcess_WrapsUnknownErrorsAsStore(t *testing.T) {
	store := newLockingStore()

	d := NewOperatorDelegator(store, 1)
	d.Start()
	defer d.Stop()

	action := &stubAction{err: errors.New("connection reset")}
	err := d.Process(context.Background(), action)

	assert.True(t, errs.IsStore(err))
	assert.True(t, action.called)
}

func TestProcess_PreservesTaxonomyErrors(t *testing.T) {
	store := newLockingStore()

	d := NewOperatorDelegator(store, 1)
	d.Start()
	defer d.Stop()

	err := d.Process(context.Background(), &stubAction{err: errs.NotFoundf("nope")})
	assert.True(t, errs.IsNotFound(err))
}

func TestProcess_ConcurrentCreatesDoNotLoseUpdates(t *testing.T) {
	store := newLockingStore()
	accountID := store.addAccount(decimal.RequireFromString("1000"))

	d := NewOperatorDelegator(store, 4)
	d.Start()
	defer d.Stop()

	amounts := []string{"10", "32", "5.50", "101", "0.25", "7", "88", "13.75"}
	var wg sync.WaitGroup
	for _, amount := range amounts {
		wg.Add(1)
		go func(amount string) {
			defer wg.Done()
			action := &actions.CreateTransaction{
				OwnerID:         "owner-1",
				Kind:            ledger.KindIncome,
				Amount:          decimal.RequireFromString(amount),
				CategoryID:      uuid.Must(uuid.NewV4()),
				AccountID:       accountID,
				TransactionDate: time.Now(),
			}
			assert.NoError(t, d.Process(context.Background(), action))
		}(amount)
	}
	wg.Wait()

	// 1000 + sum of all amounts; any lost update would come up short.
	assert.True(t, store.balances[accountID].Equal(decimal.RequireFromString("1257.50")),
		"got %s", store.balances[accountID])
	assert.Equal(t, len(amounts), store.inserted)
}
