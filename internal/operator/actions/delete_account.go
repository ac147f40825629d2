package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/errs"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// DeleteAccount cascades: all transactions referencing the account are
// removed, then the account row itself. The account is going away, so no
// balance adjustment is applied to it; the FOR UPDATE read still serializes
// this unit against concurrent transaction creates on the same account.
type DeleteAccount struct {
	OwnerID   string
	AccountID uuid.UUID

	// DeletedTransactions is set on success.
	DeletedTransactions int
}

func (a *DeleteAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Account.FindByIDForUpdate(ctx, a.OwnerID, a.AccountID); err != nil {
		return err
	}

	deleted, err := writer.Transaction.DeleteByAccount(ctx, a.OwnerID, a.AccountID)
	if err != nil {
		return err
	}
	a.DeletedTransactions = int(deleted)

	rows, err := writer.Account.Delete(ctx, a.OwnerID, a.AccountID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.NotFoundf("account %s not found", a.AccountID)
	}
	return nil
}
