package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/errs"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/snapshot"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// ImportSnapshot replaces the owner's entire ledger with the snapshot's
// contents. Wipe and re-insert run in the same atomic unit, so a failure at
// any point leaves the prior data fully intact. Row ids are regenerated by
// the store; internal references are remapped from the snapshot's ids.
type ImportSnapshot struct {
	OwnerID  string
	Snapshot *snapshot.Snapshot
}

func (a *ImportSnapshot) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Snapshot == nil {
		return errs.MalformedSnapshotf("no snapshot given")
	}

	// Children first, parents last.
	if err := writer.Transaction.DeleteAllForOwner(ctx, a.OwnerID); err != nil {
		return err
	}
	if err := writer.Category.DeleteAllForOwner(ctx, a.OwnerID); err != nil {
		return err
	}
	if err := writer.Account.DeleteAllForOwner(ctx, a.OwnerID); err != nil {
		return err
	}

	accountIDs := make(map[uuid.UUID]uuid.UUID, len(a.Snapshot.Accounts))
	for _, rec := range a.Snapshot.Accounts {
		kind, ok := account.ParseAccountKind(rec.Kind)
		if !ok {
			return errs.MalformedSnapshotf("invalid account kind %q", rec.Kind)
		}
		id, err := writer.Account.Insert(ctx, a.OwnerID, &account.AccountCreate{
			Name:            rec.Name,
			Kind:            kind,
			Balance:         rec.Balance,
			StartingBalance: rec.StartingBalance,
			Goal:            rec.Goal,
			Description:     rec.Description,
		})
		if err != nil {
			return err
		}
		accountIDs[rec.ID] = id
	}

	categoryIDs := make(map[uuid.UUID]uuid.UUID, len(a.Snapshot.Categories))
	for _, rec := range a.Snapshot.Categories {
		kind, err := ledger.ParseKind(rec.Kind)
		if err != nil {
			return errs.MalformedSnapshotf("invalid category kind %q", rec.Kind)
		}
		id, err := writer.Category.Insert(ctx, a.OwnerID, &category.CategoryCreate{
			Name: rec.Name,
			Kind: kind,
		})
		if err != nil {
			return err
		}
		categoryIDs[rec.ID] = id
	}

	for _, rec := range a.Snapshot.Transactions {
		kind, err := ledger.ParseKind(rec.Kind)
		if err != nil {
			return errs.MalformedSnapshotf("invalid transaction kind %q", rec.Kind)
		}
		accountID, ok := accountIDs[rec.AccountID]
		if !ok {
			return errs.MalformedSnapshotf("transaction references unknown account %s", rec.AccountID)
		}
		categoryID, ok := categoryIDs[rec.CategoryID]
		if !ok {
			return errs.MalformedSnapshotf("transaction references unknown category %s", rec.CategoryID)
		}
		txDate, err := time.Parse("2006-01-02", rec.TransactionDate)
		if err != nil {
			return errs.MalformedSnapshotf("invalid transaction date %q", rec.TransactionDate)
		}
		_, err = writer.Transaction.Insert(ctx, a.OwnerID, &transaction.TransactionCreate{
			Kind:            kind,
			Amount:          rec.Amount,
			CategoryID:      categoryID,
			AccountID:       accountID,
			Description:     rec.Description,
			TransactionDate: txDate,
		})
		if err != nil {
			return err
		}
	}

	return nil
}
