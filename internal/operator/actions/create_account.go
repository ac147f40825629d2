package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/errs"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// CreateAccount inserts a new account with balance equal to its starting
// balance.
type CreateAccount struct {
	OwnerID         string
	Name            string
	Kind            account.AccountKind
	StartingBalance decimal.Decimal
	Goal            decimal.NullDecimal
	Description     string

	// ID is set on success.
	ID uuid.UUID
}

func (a *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Name == "" {
		return errs.Validationf("account name is required")
	}

	id, err := writer.Account.Insert(ctx, a.OwnerID, &account.AccountCreate{
		Name:            a.Name,
		Kind:            a.Kind,
		StartingBalance: a.StartingBalance,
		Balance:         a.StartingBalance,
		Goal:            a.Goal,
		Description:     a.Description,
	})
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}
