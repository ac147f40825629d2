package account

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Account represents an account record. Balance always equals
// StartingBalance plus the signed sum of every live transaction referencing
// the account; the operator actions maintain that equality.
type Account struct {
	ID              uuid.UUID           `db:"id"`
	OwnerID         string              `db:"owner_id"`
	Name            string              `db:"name"`
	Kind            AccountKind         `db:"kind"`
	Balance         decimal.Decimal     `db:"balance"`
	StartingBalance decimal.Decimal     `db:"starting_balance"`
	Goal            decimal.NullDecimal `db:"goal"`
	Description     string              `db:"description"`
	CreatedAt       time.Time           `db:"created_at"`
}

type AccountKind int8

const (
	AccountKindRegular AccountKind = iota
	AccountKindDebt
	AccountKindSavings
)

func (k AccountKind) String() string {
	switch k {
	case AccountKindRegular:
		return "regular"
	case AccountKindDebt:
		return "debt"
	case AccountKindSavings:
		return "savings"
	}
	return "unknown"
}

// ParseAccountKind maps the wire representation to an AccountKind.
func ParseAccountKind(s string) (AccountKind, bool) {
	switch s {
	case "regular":
		return AccountKindRegular, true
	case "debt":
		return AccountKindDebt, true
	case "savings":
		return AccountKindSavings, true
	}
	return 0, false
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	Name            string
	Kind            AccountKind
	StartingBalance decimal.Decimal
	Balance         decimal.Decimal // equals StartingBalance for fresh accounts; may differ on import
	Goal            decimal.NullDecimal
	Description     string
}

// AccountFilter specifies filters for listing accounts.
type AccountFilter struct {
	Limit  int
	Offset int
}

// IReader defines the read-only account storage operations.
//
//go:generate mockery --name IReader --output mock_IReader.go
type IReader interface {
	FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*Account, error)
	List(ctx context.Context, ownerID string, filter *AccountFilter) ([]*Account, error)
}

// IWriter defines the account storage operations available inside an atomic
// unit. FindByIDForUpdate takes a row lock so concurrent units touching the
// same account serialize on the balance read-modify-write.
//
//go:generate mockery --name IWriter --output mock_IWriter.go
type IWriter interface {
	IReader
	FindByIDForUpdate(ctx context.Context, ownerID string, id uuid.UUID) (*Account, error)
	Insert(ctx context.Context, ownerID string, create *AccountCreate) (uuid.UUID, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	Rebase(ctx context.Context, id uuid.UUID, balance, startingBalance decimal.Decimal) error
	Delete(ctx context.Context, ownerID string, id uuid.UUID) (int64, error)
	DeleteAllForOwner(ctx context.Context, ownerID string) error
}
