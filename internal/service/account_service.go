package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

const defaultAccountLimit = 20

// AccountService handles account business logic.
type AccountService struct {
	read      *storage.Reader
	processor Processor
}

// NewAccountService creates a new AccountService.
func NewAccountService(read *storage.Reader, processor Processor) *AccountService {
	return &AccountService{read: read, processor: processor}
}

// Create creates a new account and returns its ID.
func (s *AccountService) Create(ctx context.Context, ownerID string, acc Account) (uuid.UUID, error) {
	action := &actions.CreateAccount{
		OwnerID:         ownerID,
		Name:            acc.Name,
		Kind:            acc.Kind,
		StartingBalance: acc.StartingBalance,
		Goal:            acc.Goal,
		Description:     acc.Description,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.ID, nil
}

// Get retrieves an account by ID.
func (s *AccountService) Get(ctx context.Context, ownerID string, id uuid.UUID) (*Account, error) {
	row, err := s.read.Accounts.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	converted := accountFromStorage(row)
	return &converted, nil
}

// List returns a page of accounts using cursor pagination.
func (s *AccountService) List(ctx context.Context, ownerID string, cursor *AccountCursor) ([]Account, *AccountCursor, error) {
	limit := defaultAccountLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	filter := &account.AccountFilter{
		Limit:  limit,
		Offset: offset,
	}

	rows, err := s.read.Accounts.List(ctx, ownerID, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *AccountCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &AccountCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	converted := make([]Account, len(rows))
	for i, row := range rows {
		converted[i] = accountFromStorage(row)
	}

	return converted, nextCursor, nil
}

// SetBalance is a direct balance edit. It re-bases the account rather than
// recording a transaction.
func (s *AccountService) SetBalance(ctx context.Context, ownerID string, id uuid.UUID, balance decimal.Decimal) error {
	return s.processor.Process(ctx, &actions.RebaseAccount{
		OwnerID:   ownerID,
		AccountID: id,
		Balance:   balance,
	})
}

// Delete removes the account and every transaction referencing it.
func (s *AccountService) Delete(ctx context.Context, ownerID string, id uuid.UUID) (int, error) {
	action := &actions.DeleteAccount{OwnerID: ownerID, AccountID: id}
	if err := s.processor.Process(ctx, action); err != nil {
		return 0, err
	}
	return action.DeletedTransactions, nil
}
