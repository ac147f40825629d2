package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/errs"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// DeleteCategory cascades: every transaction referencing the category is
// removed with the same aggregate balance discipline as a bulk delete, then
// the category row itself goes. Destructive and not undoable; confirmation
// is the presentation layer's job.
type DeleteCategory struct {
	OwnerID    string
	CategoryID uuid.UUID

	// DeletedTransactions is set on success.
	DeletedTransactions int
}

func (a *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Category.FindByID(ctx, a.OwnerID, a.CategoryID); err != nil {
		return err
	}

	deleted, err := writer.Transaction.DeleteByCategory(ctx, a.OwnerID, a.CategoryID)
	if err != nil {
		return err
	}
	a.DeletedTransactions = len(deleted)

	if err := applyInverseEffects(ctx, writer, a.OwnerID, deleted); err != nil {
		return err
	}

	rows, err := writer.Category.Delete(ctx, a.OwnerID, a.CategoryID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.NotFoundf("category %s not found", a.CategoryID)
	}
	return nil
}
