package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/errs"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/category"
)

// CreateCategory inserts a new category.
type CreateCategory struct {
	OwnerID string
	Name    string
	Kind    ledger.Kind

	// ID is set on success.
	ID uuid.UUID
}

func (a *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Name == "" {
		return errs.Validationf("category name is required")
	}
	if a.Kind != ledger.KindIncome && a.Kind != ledger.KindExpense {
		return errs.Validationf("invalid category kind %d", a.Kind)
	}

	id, err := writer.Category.Insert(ctx, a.OwnerID, &category.CategoryCreate{
		Name: a.Name,
		Kind: a.Kind,
	})
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}
