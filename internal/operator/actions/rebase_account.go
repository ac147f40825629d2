package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage"
)

// RebaseAccount handles a direct balance edit. It is not a transaction: the
// starting balance is shifted by the same delta, so the stored history still
// sums to the new balance.
type RebaseAccount struct {
	OwnerID   string
	AccountID uuid.UUID
	Balance   decimal.Decimal
}

func (a *RebaseAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	account, err := writer.Account.FindByIDForUpdate(ctx, a.OwnerID, a.AccountID)
	if err != nil {
		return err
	}

	delta := a.Balance.Sub(account.Balance)
	return writer.Account.Rebase(ctx, account.ID, a.Balance, account.StartingBalance.Add(delta))
}
