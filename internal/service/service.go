package service

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// Processor runs one action as an atomic unit. The operator delegator is the
// production implementation.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Account     *AccountService
	Category    *CategoryService
	Dataset     *DatasetService
}

// NewService creates a new Service over the given storage and processor.
func NewService(store *storage.Storage, processor Processor) *Service {
	return &Service{
		Transaction: NewTransactionService(store.Read(), processor),
		Account:     NewAccountService(store.Read(), processor),
		Category:    NewCategoryService(store.Read(), processor),
		Dataset:     NewDatasetService(store.Read(), processor),
	}
}
