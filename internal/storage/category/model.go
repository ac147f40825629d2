package category

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Category represents a category record. Kind is the transaction kind the
// category classifies; a transaction may only reference a category of its
// own kind.
type Category struct {
	ID        uuid.UUID   `db:"id"`
	OwnerID   string      `db:"owner_id"`
	Name      string      `db:"name"`
	Kind      ledger.Kind `db:"kind"`
	CreatedAt time.Time   `db:"created_at"`
}

// CategoryCreate is the input for creating a new category.
type CategoryCreate struct {
	Name string
	Kind ledger.Kind
}

// CategoryFilter specifies filters for listing categories.
type CategoryFilter struct {
	Kind   *ledger.Kind
	Limit  int
	Offset int
}

// IReader defines the read-only category storage operations.
//
//go:generate mockery --name IReader --output mock_IReader.go
type IReader interface {
	FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*Category, error)
	List(ctx context.Context, ownerID string, filter *CategoryFilter) ([]*Category, error)
}

// IWriter defines the category storage operations available inside an atomic unit.
//
//go:generate mockery --name IWriter --output mock_IWriter.go
type IWriter interface {
	IReader
	Insert(ctx context.Context, ownerID string, create *CategoryCreate) (uuid.UUID, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) (int64, error)
	DeleteAllForOwner(ctx context.Context, ownerID string) error
}
