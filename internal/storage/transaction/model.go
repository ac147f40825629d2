package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Transaction represents a transaction record. Amount is stored
// non-negative; the sign of its balance effect comes from Kind.
type Transaction struct {
	ID              uuid.UUID       `db:"id"`
	OwnerID         string          `db:"owner_id"`
	Kind            ledger.Kind     `db:"kind"`
	Amount          decimal.Decimal `db:"amount"`
	CategoryID      uuid.UUID       `db:"category_id"`
	AccountID       uuid.UUID       `db:"account_id"`
	Description     string          `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	Kind            ledger.Kind
	Amount          decimal.Decimal
	CategoryID      uuid.UUID
	AccountID       uuid.UUID
	Description     string
	TransactionDate time.Time // defaults to today if zero
}

// TransactionUpdate overwrites an existing transaction row.
type TransactionUpdate struct {
	Kind            ledger.Kind
	Amount          decimal.Decimal
	CategoryID      uuid.UUID
	AccountID       uuid.UUID
	Description     string
	TransactionDate time.Time
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	AccountID       *uuid.UUID
	CategoryID      *uuid.UUID
	Kind            *ledger.Kind
	DateFrom        *time.Time
	DateTo          *time.Time
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// Deleted is the slice of a removed row the balance adjustment needs.
// Bulk deletes return these so the caller can aggregate the inverse effect
// per affected account instead of re-reading possibly stale rows.
type Deleted struct {
	AccountID uuid.UUID       `db:"account_id"`
	Kind      ledger.Kind     `db:"kind"`
	Amount    decimal.Decimal `db:"amount"`
}

// IReader defines the read-only transaction storage operations.
//
//go:generate mockery --name IReader --output mock_IReader.go
type IReader interface {
	FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, ownerID string, filter *TransactionFilter) ([]*Transaction, error)
}

// IWriter defines the transaction storage operations available inside an
// atomic unit.
//
//go:generate mockery --name IWriter --output mock_IWriter.go
type IWriter interface {
	IReader
	Insert(ctx context.Context, ownerID string, create *TransactionCreate) (uuid.UUID, error)
	Update(ctx context.Context, ownerID string, id uuid.UUID, update *TransactionUpdate) (int64, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) (int64, error)
	DeleteByIDs(ctx context.Context, ownerID string, ids []uuid.UUID) ([]*Deleted, error)
	DeleteByCategory(ctx context.Context, ownerID string, categoryID uuid.UUID) ([]*Deleted, error)
	DeleteByAccount(ctx context.Context, ownerID string, accountID uuid.UUID) (int64, error)
	DeleteAllForOwner(ctx context.Context, ownerID string) error
}
