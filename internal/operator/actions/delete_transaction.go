package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/errs"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// DeleteTransaction removes a transaction row and reverses its effect on the
// referenced account. Deleting an id that no longer exists reports NotFound
// rather than succeeding silently: the caller expects a balance change that
// will not happen.
type DeleteTransaction struct {
	OwnerID string
	ID      uuid.UUID
}

func (a *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transaction.FindByID(ctx, a.OwnerID, a.ID)
	if err != nil {
		return err
	}

	account, err := writer.Account.FindByIDForUpdate(ctx, a.OwnerID, existing.AccountID)
	if err != nil {
		return err
	}

	rows, err := writer.Transaction.Delete(ctx, a.OwnerID, a.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.NotFoundf("transaction %s not found", a.ID)
	}

	delta, err := ledger.Effect(existing.Kind, existing.Amount)
	if err != nil {
		return err
	}
	return writer.Account.UpdateBalance(ctx, account.ID, account.Balance.Sub(delta))
}
