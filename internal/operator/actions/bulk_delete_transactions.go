package actions

import (
	"bytes"
	"context"
	"sort"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/errs"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// BulkDeleteTransactions removes all caller-owned rows matching the ids and
// applies one aggregate inverse effect per affected account. Aggregating from
// the DELETE's returned rows (not per-row reads) is what prevents lost
// updates when many deleted rows share an account.
type BulkDeleteTransactions struct {
	OwnerID string
	IDs     []uuid.UUID

	// DeletedCount is set on success.
	DeletedCount int
}

func (a *BulkDeleteTransactions) Perform(ctx context.Context, writer *storage.Writer) error {
	if len(a.IDs) == 0 {
		return errs.Validationf("no transaction ids given")
	}

	deleted, err := writer.Transaction.DeleteByIDs(ctx, a.OwnerID, a.IDs)
	if err != nil {
		return err
	}
	a.DeletedCount = len(deleted)

	return applyInverseEffects(ctx, writer, a.OwnerID, deleted)
}

// applyInverseEffects subtracts the net effect of the deleted rows from each
// affected account, locking accounts in id order.
func applyInverseEffects(ctx context.Context, writer *storage.Writer, ownerID string, deleted []*transaction.Deleted) error {
	perAccount := make(map[uuid.UUID]decimal.Decimal)
	for _, d := range deleted {
		delta, err := ledger.Effect(d.Kind, d.Amount)
		if err != nil {
			return err
		}
		perAccount[d.AccountID] = perAccount[d.AccountID].Add(delta)
	}

	ids := make([]uuid.UUID, 0, len(perAccount))
	for id := range perAccount {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i].Bytes(), ids[j].Bytes()) < 0
	})

	for _, id := range ids {
		account, err := writer.Account.FindByIDForUpdate(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if err := writer.Account.UpdateBalance(ctx, id, account.Balance.Sub(perAccount[id])); err != nil {
			return err
		}
	}
	return nil
}
