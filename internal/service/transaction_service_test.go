package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

const testOwner = "owner-1"

// mockProcessor records processed actions and can assign generated ids the
// way the real operator's actions do on success.
type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

type mockTransactionReader struct {
	mock.Mock
}

func (m *mockTransactionReader) FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *mockTransactionReader) List(ctx context.Context, ownerID string, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Transaction), args.Error(1)
}

func newTestTransactionService(t *testing.T) (*TransactionService, *mockTransactionReader, *mockProcessor) {
	t.Helper()
	reader := new(mockTransactionReader)
	processor := new(mockProcessor)
	svc := NewTransactionService(&storage.Reader{Transactions: reader}, processor)
	return svc, reader, processor
}

// -- Create tests --

func TestCreate_Success(t *testing.T) {
	svc, _, processor := newTestTransactionService(t)

	accountID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	expectedID := uuid.Must(uuid.NewV4())
	txDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	processor.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		create, ok := a.(*actions.CreateTransaction)
		return ok &&
			create.OwnerID == testOwner &&
			create.Kind == ledger.KindExpense &&
			create.Amount.Equal(decimal.RequireFromString("42.50")) &&
			create.AccountID == accountID &&
			create.CategoryID == categoryID &&
			create.TransactionDate.Equal(txDate)
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.CreateTransaction).ID = expectedID
	}).Return(nil)

	id, err := svc.Create(context.Background(), testOwner, Transaction{
		Kind:            ledger.KindExpense,
		Amount:          decimal.RequireFromString("42.50"),
		CategoryID:      categoryID,
		AccountID:       accountID,
		TransactionDate: txDate,
	})

	assert.NoError(t, err)
	assert.Equal(t, expectedID, id)
	processor.AssertExpectations(t)
}

func TestCreate_ProcessorError(t *testing.T) {
	svc, _, processor := newTestTransactionService(t)

	processor.On("Process", mock.Anything, mock.Anything).
		Return(errors.New("connection refused"))

	id, err := svc.Create(context.Background(), testOwner, Transaction{
		Kind:       ledger.KindIncome,
		Amount:     decimal.RequireFromString("10.00"),
		CategoryID: uuid.Must(uuid.NewV4()),
		AccountID:  uuid.Must(uuid.NewV4()),
	})

	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, id)
}

func TestBulkDelete_ReturnsCount(t *testing.T) {
	svc, _, processor := newTestTransactionService(t)

	ids := []uuid.UUID{uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())}
	processor.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		bulk, ok := a.(*actions.BulkDeleteTransactions)
		return ok && len(bulk.IDs) == 2
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.BulkDeleteTransactions).DeletedCount = 2
	}).Return(nil)

	n, err := svc.BulkDelete(context.Background(), testOwner, ids)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
}

// -- List tests --

func makeStorageRows(n int, createdAt time.Time) []*transaction.Transaction {
	rows := make([]*transaction.Transaction, n)
	for i := range rows {
		rows[i] = &transaction.Transaction{
			ID:              uuid.Must(uuid.NewV4()),
			OwnerID:         testOwner,
			Kind:            ledger.KindExpense,
			Amount:          decimal.RequireFromString("5.00"),
			CategoryID:      uuid.Must(uuid.NewV4()),
			AccountID:       uuid.Must(uuid.NewV4()),
			TransactionDate: createdAt,
			CreatedAt:       createdAt,
			UpdatedAt:       createdAt,
		}
	}
	return rows
}

func TestList_NoResults(t *testing.T) {
	svc, reader, _ := newTestTransactionService(t)

	reader.On("List", mock.Anything, testOwner, mock.Anything).
		Return([]*transaction.Transaction{}, nil)

	txs, nextCursor, err := svc.List(context.Background(), testOwner, nil, nil)

	assert.NoError(t, err)
	assert.Nil(t, txs)
	assert.Nil(t, nextCursor)
}

func TestList_SinglePage(t *testing.T) {
	svc, reader, _ := newTestTransactionService(t)

	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	rows := makeStorageRows(2, now)

	reader.On("List", mock.Anything, testOwner, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.Limit == defaultLimit && f.Offset == 0 && f.MaxCreationTime == nil
	})).Return(rows, nil)

	txs, nextCursor, err := svc.List(context.Background(), testOwner, nil, nil)

	assert.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.Nil(t, nextCursor)

	tx := txs[0]
	assert.Equal(t, rows[0].ID, tx.ID)
	assert.Equal(t, rows[0].AccountID, tx.AccountID)
	assert.Equal(t, rows[0].CategoryID, tx.CategoryID)
	assert.True(t, rows[0].Amount.Equal(tx.Amount))
	assert.Equal(t, rows[0].Kind, tx.Kind)
	assert.Equal(t, rows[0].TransactionDate, tx.TransactionDate)
}

func TestList_HasNextPage(t *testing.T) {
	svc, reader, _ := newTestTransactionService(t)

	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	rows := makeStorageRows(defaultLimit+1, now)

	reader.On("List", mock.Anything, testOwner, mock.Anything).Return(rows, nil)

	txs, nextCursor, err := svc.List(context.Background(), testOwner, nil, nil)

	assert.NoError(t, err)
	assert.Len(t, txs, defaultLimit, "truncated to default limit")

	assert.NotNil(t, nextCursor)
	assert.Equal(t, defaultLimit, nextCursor.Position)
	assert.Equal(t, defaultLimit, nextCursor.Limit)
	assert.Equal(t, now, nextCursor.MaxCreationTime, "derived from first row")
}

func TestList_WithCursorAndFilter(t *testing.T) {
	svc, reader, _ := newTestTransactionService(t)

	accountID := uuid.Must(uuid.NewV4())
	cursorTime := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	rowTime := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	rows := makeStorageRows(3, rowTime) // limit=2, returns 3 → has next page

	reader.On("List", mock.Anything, testOwner, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.Limit == 2 &&
			f.Offset == 20 &&
			f.AccountID != nil && *f.AccountID == accountID &&
			f.MaxCreationTime != nil &&
			f.MaxCreationTime.Equal(cursorTime)
	})).Return(rows, nil)

	txs, nextCursor, err := svc.List(context.Background(), testOwner,
		&TransactionListFilter{AccountID: &accountID},
		&TransactionCursor{Position: 20, Limit: 2, MaxCreationTime: cursorTime})

	assert.NoError(t, err)
	assert.Len(t, txs, 2)

	assert.NotNil(t, nextCursor)
	assert.Equal(t, 22, nextCursor.Position)
	assert.Equal(t, 2, nextCursor.Limit)
	assert.Equal(t, cursorTime, nextCursor.MaxCreationTime, "echoed from cursor, not overridden by row data")
}

func TestList_StorageError(t *testing.T) {
	svc, reader, _ := newTestTransactionService(t)

	reader.On("List", mock.Anything, testOwner, mock.Anything).
		Return(nil, errors.New("database unavailable"))

	txs, nextCursor, err := svc.List(context.Background(), testOwner, nil, nil)

	assert.Error(t, err)
	assert.Nil(t, txs)
	assert.Nil(t, nextCursor)
}
