package service

import (
	"context"
	"time"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/snapshot"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// DatasetService handles full-ledger export and import.
type DatasetService struct {
	read      *storage.Reader
	processor Processor
	now       func() time.Time
}

// NewDatasetService creates a new DatasetService.
func NewDatasetService(read *storage.Reader, processor Processor) *DatasetService {
	return &DatasetService{read: read, processor: processor, now: time.Now}
}

// Export serializes the owner's whole ledger. It is a plain read: the store
// already guarantees readers never see a half-applied unit, so no atomic
// unit is needed here.
func (s *DatasetService) Export(ctx context.Context, ownerID string) (*snapshot.Snapshot, error) {
	accounts, err := s.read.Accounts.List(ctx, ownerID, nil)
	if err != nil {
		return nil, err
	}
	categories, err := s.read.Categories.List(ctx, ownerID, nil)
	if err != nil {
		return nil, err
	}
	transactions, err := s.read.Transactions.List(ctx, ownerID, nil)
	if err != nil {
		return nil, err
	}

	snap := &snapshot.Snapshot{
		Version:      snapshot.Version,
		ExportedAt:   s.now().UTC(),
		Accounts:     make([]snapshot.AccountRecord, len(accounts)),
		Categories:   make([]snapshot.CategoryRecord, len(categories)),
		Transactions: make([]snapshot.TransactionRecord, len(transactions)),
	}
	for i, a := range accounts {
		snap.Accounts[i] = snapshot.AccountRecord{
			ID:              a.ID,
			Name:            a.Name,
			Kind:            a.Kind.String(),
			Balance:         a.Balance,
			StartingBalance: a.StartingBalance,
			Goal:            a.Goal,
			Description:     a.Description,
		}
	}
	for i, c := range categories {
		snap.Categories[i] = snapshot.CategoryRecord{
			ID:   c.ID,
			Name: c.Name,
			Kind: c.Kind.String(),
		}
	}
	for i, t := range transactions {
		snap.Transactions[i] = snapshot.TransactionRecord{
			ID:              t.ID,
			Kind:            t.Kind.String(),
			Amount:          t.Amount,
			CategoryID:      t.CategoryID,
			AccountID:       t.AccountID,
			Description:     t.Description,
			TransactionDate: t.TransactionDate.Format("2006-01-02"),
		}
	}
	return snap, nil
}

// Import validates the raw snapshot document and, only if it is well formed,
// replaces the owner's ledger with its contents in one atomic unit.
func (s *DatasetService) Import(ctx context.Context, ownerID string, data []byte) error {
	snap, err := snapshot.Parse(data)
	if err != nil {
		return err
	}
	return s.processor.Process(ctx, &actions.ImportSnapshot{
		OwnerID:  ownerID,
		Snapshot: snap,
	})
}
