package actions

import (
	"bytes"
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/errs"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// UpdateTransaction overwrites a transaction row and reconciles balances by
// reversing the old effect and applying the new one. When the account
// reference changes, both accounts are adjusted; they are locked in id order
// so two concurrent updates cannot deadlock.
type UpdateTransaction struct {
	OwnerID         string
	ID              uuid.UUID
	Kind            ledger.Kind
	Amount          decimal.Decimal
	CategoryID      uuid.UUID
	AccountID       uuid.UUID
	Description     string
	TransactionDate time.Time
}

func (a *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := validateTransactionInput(a.Kind, a.Amount, a.CategoryID, a.AccountID); err != nil {
		return err
	}
	if a.TransactionDate.IsZero() {
		return errs.Validationf("transaction date is required")
	}

	existing, err := writer.Transaction.FindByID(ctx, a.OwnerID, a.ID)
	if err != nil {
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

	oldDelta, err := ledger.Effect(existing.Kind, existing.Amount)
	if err != nil {
		return err
	}
	newDelta, err := ledger.Effect(a.Kind, a.Amount)
	if err != nil {
		return err
	}

	rows, err := writer.Transaction.Update(ctx, a.OwnerID, a.ID, &transaction.TransactionUpdate{
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
	if rows == 0 {
		return errs.NotFoundf("transaction %s not found", a.ID)
	}

	if existing.AccountID == a.AccountID {
		// Same account: one net adjustment, never a reverse-then-apply pair
		// that could be half-observed.
		account, err := writer.Account.FindByIDForUpdate(ctx, a.OwnerID, a.AccountID)
		if err != nil {
			return err
		}
		return writer.Account.UpdateBalance(ctx, account.ID,
			account.Balance.Sub(oldDelta).Add(newDelta))
	}

	for _, id := range lockOrder(existing.AccountID, a.AccountID) {
		account, err := writer.Account.FindByIDForUpdate(ctx, a.OwnerID, id)
		if err != nil {
			return err
		}
		balance := account.Balance
		if id == existing.AccountID {
			balance = balance.Sub(oldDelta)
		}
		if id == a.AccountID {
			balance = balance.Add(newDelta)
		}
		if err := writer.Account.UpdateBalance(ctx, id, balance); err != nil {
			return err
		}
	}
	return nil
}

func lockOrder(a, b uuid.UUID) []uuid.UUID {
	if bytes.Compare(a.Bytes(), b.Bytes()) <= 0 {
		return []uuid.UUID{a, b}
	}
	return []uuid.UUID{b, a}
}
