package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/errs"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

type mockAccountReader struct {
	mock.Mock
}

func (m *mockAccountReader) FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *mockAccountReader) List(ctx context.Context, ownerID string, filter *account.AccountFilter) ([]*account.Account, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func newTestAccountService(t *testing.T) (*AccountService, *mockAccountReader, *mockProcessor) {
	t.Helper()
	reader := new(mockAccountReader)
	processor := new(mockProcessor)
	svc := NewAccountService(&storage.Reader{Accounts: reader}, processor)
	return svc, reader, processor
}

func TestAccountCreate_Success(t *testing.T) {
	svc, _, processor := newTestAccountService(t)

	expectedID := uuid.Must(uuid.NewV4())
	processor.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		create, ok := a.(*actions.CreateAccount)
		return ok &&
			create.OwnerID == testOwner &&
			create.Name == "Checking" &&
			create.Kind == account.AccountKindRegular &&
			create.StartingBalance.Equal(decimal.RequireFromString("1000"))
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.CreateAccount).ID = expectedID
	}).Return(nil)

	id, err := svc.Create(context.Background(), testOwner, Account{
		Name:            "Checking",
		Kind:            account.AccountKindRegular,
		StartingBalance: decimal.RequireFromString("1000"),
	})

	assert.NoError(t, err)
	assert.Equal(t, expectedID, id)
}

func TestAccountGet_NotFound(t *testing.T) {
	svc, reader, _ := newTestAccountService(t)

	id := uuid.Must(uuid.NewV4())
	reader.On("FindByID", mock.Anything, testOwner, id).
		Return(nil, errs.NotFoundf("account %s not found", id))

	acc, err := svc.Get(context.Background(), testOwner, id)

	assert.Nil(t, acc)
	assert.True(t, errs.IsNotFound(err))
}

func TestAccountList_Pagination(t *testing.T) {
	svc, reader, _ := newTestAccountService(t)

	rows := make([]*account.Account, defaultAccountLimit+1)
	for i := range rows {
		rows[i] = &account.Account{
			ID:      uuid.Must(uuid.NewV4()),
			OwnerID: testOwner,
			Name:    "Account",
			Kind:    account.AccountKindRegular,
			Balance: decimal.RequireFromString("10"),
		}
	}

	reader.On("List", mock.Anything, testOwner, mock.MatchedBy(func(f *account.AccountFilter) bool {
		return f.Limit == defaultAccountLimit && f.Offset == 0
	})).Return(rows, nil)

	accounts, nextCursor, err := svc.List(context.Background(), testOwner, nil)

	assert.NoError(t, err)
	assert.Len(t, accounts, defaultAccountLimit)
	assert.NotNil(t, nextCursor)
	assert.Equal(t, defaultAccountLimit, nextCursor.Position)
	assert.Equal(t, defaultAccountLimit, nextCursor.Limit)
}

func TestAccountList_Empty(t *testing.T) {
	svc, reader, _ := newTestAccountService(t)

	reader.On("List", mock.Anything, testOwner, mock.Anything).
		Return([]*account.Account{}, nil)

	accounts, nextCursor, err := svc.List(context.Background(), testOwner, nil)

	assert.NoError(t, err)
	assert.Nil(t, accounts)
	assert.Nil(t, nextCursor)
}

func TestAccountSetBalance(t *testing.T) {
	svc, _, processor := newTestAccountService(t)

	id := uuid.Must(uuid.NewV4())
	newBalance := decimal.RequireFromString("512.75")
	processor.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		rebase, ok := a.(*actions.RebaseAccount)
		return ok && rebase.AccountID == id && rebase.Balance.Equal(newBalance)
	})).Return(nil)

	err := svc.SetBalance(context.Background(), testOwner, id, newBalance)

	assert.NoError(t, err)
	processor.AssertExpectations(t)
}

func TestAccountDelete_ReturnsCascadeCount(t *testing.T) {
	svc, _, processor := newTestAccountService(t)

	id := uuid.Must(uuid.NewV4())
	processor.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		del, ok := a.(*actions.DeleteAccount)
		return ok && del.AccountID == id
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.DeleteAccount).DeletedTransactions = 7
	}).Return(nil)

	n, err := svc.Delete(context.Background(), testOwner, id)

	assert.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestAccountDelete_ProcessorError(t *testing.T) {
	svc, _, processor := newTestAccountService(t)

	processor.On("Process", mock.Anything, mock.Anything).
		Return(errors.New("timeout"))

	n, err := svc.Delete(context.Background(), testOwner, uuid.Must(uuid.NewV4()))

	assert.Error(t, err)
	assert.Zero(t, n)
}
