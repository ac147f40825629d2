package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

const defaultLimit = 20

// TransactionService handles transaction business logic. All writes go
// through the processor so they run as atomic units; reads hit the store
// directly.
type TransactionService struct {
	read      *storage.Reader
	processor Processor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(read *storage.Reader, processor Processor) *TransactionService {
	return &TransactionService{read: read, processor: processor}
}

// Create records a new transaction and applies its effect to the referenced
// account, returning the new id.
func (s *TransactionService) Create(ctx context.Context, ownerID string, tx Transaction) (uuid.UUID, error) {
	action := &actions.CreateTransaction{
		OwnerID:         ownerID,
		Kind:            tx.Kind,
		Amount:          tx.Amount,
		CategoryID:      tx.CategoryID,
		AccountID:       tx.AccountID,
		Description:     tx.Description,
		TransactionDate: tx.TransactionDate,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.ID, nil
}

// Update overwrites an existing transaction and reconciles account balances.
func (s *TransactionService) Update(ctx context.Context, ownerID string, id uuid.UUID, tx Transaction) error {
	return s.processor.Process(ctx, &actions.UpdateTransaction{
		OwnerID:         ownerID,
		ID:              id,
		Kind:            tx.Kind,
		Amount:          tx.Amount,
		CategoryID:      tx.CategoryID,
		AccountID:       tx.AccountID,
		Description:     tx.Description,
		TransactionDate: tx.TransactionDate,
	})
}

// Delete removes a transaction and reverses its effect on the account.
func (s *TransactionService) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteTransaction{OwnerID: ownerID, ID: id})
}

// BulkDelete removes the given transactions and reports how many existed.
func (s *TransactionService) BulkDelete(ctx context.Context, ownerID string, ids []uuid.UUID) (int, error) {
	action := &actions.BulkDeleteTransactions{OwnerID: ownerID, IDs: ids}
	if err := s.processor.Process(ctx, action); err != nil {
		return 0, err
	}
	return action.DeletedCount, nil
}

// Get retrieves one transaction.
func (s *TransactionService) Get(ctx context.Context, ownerID string, id uuid.UUID) (*Transaction, error) {
	row, err := s.read.Transactions.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	converted := transactionFromStorage(row)
	return &converted, nil
}

// List returns a page of transactions using cursor-based pagination.
func (s *TransactionService) List(ctx context.Context, ownerID string, filter *TransactionListFilter, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}

	storageFilter := &transaction.TransactionFilter{
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}
	if filter != nil {
		storageFilter.AccountID = filter.AccountID
		storageFilter.CategoryID = filter.CategoryID
		storageFilter.Kind = filter.Kind
		storageFilter.DateFrom = filter.DateFrom
		storageFilter.DateTo = filter.DateTo
	}

	rows, err := s.read.Transactions.List(ctx, ownerID, storageFilter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = transactionFromStorage(row)
	}

	return converted, nextCursor, nil
}
