package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/errs"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// CreateTransaction inserts a transaction row and applies its effect to the
// referenced account's balance, all in one atomic unit. The account row is
// read FOR UPDATE first, so concurrent creates against the same account
// serialize instead of overwriting each other's increment.
type CreateTransaction struct {
	OwnerID         string
	Kind            ledger.Kind
	Amount          decimal.Decimal
	CategoryID      uuid.UUID
	AccountID       uuid.UUID
	Description     string
	TransactionDate time.Time

	// ID is set on success.
	ID uuid.UUID
}

func (a *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := validateTransactionInput(a.Kind, a.Amount, a.CategoryID, a.AccountID); err != nil {
		return err
	}

	category, err := writer.Category.FindByID(ctx, a.OwnerID, a.CategoryID)
	if err != nil {
		return err
	}
	if category.Kind != a.Kind {
		return errs.Validationf("category %q is %s, transaction is %s",
			category.Name, category.Kind, a.Kind)
	}

	account, err := writer.Account.FindByIDForUpdate(ctx, a.OwnerID, a.AccountID)
	if err != nil {
		return err
	}

	id, err := writer.Transaction.Insert(ctx, a.OwnerID, &transaction.TransactionCreate{
		Kind:            a.Kind,
		Amount:          a.Amount,
		CategoryID:      a.CategoryID,
		AccountID:       a.AccountID,
		Description:     a.Description,
		TransactionDate: a.TransactionDate,
	})
	if err != nil {
		return err
	}
	a.ID = id

	delta, err := ledger.Effect(a.Kind, a.Amount)
	if err != nil {
		return err
	}
	return writer.Account.UpdateBalance(ctx, account.ID, account.Balance.Add(delta))
}

func validateTransactionInput(kind ledger.Kind, amount decimal.Decimal, categoryID, accountID uuid.UUID) error {
	if kind != ledger.KindIncome && kind != ledger.KindExpense {
		return errs.Validationf("invalid transaction kind %d", kind)
	}
	if !amount.IsPositive() {
		return errs.Validationf("amount must be positive, got %s", amount)
	}
	if categoryID == uuid.Nil {
		return errs.Validationf("categoryID is required")
	}
	if accountID == uuid.Nil {
		return errs.Validationf("accountID is required")
	}
	return nil
}
