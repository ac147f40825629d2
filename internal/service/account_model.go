package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// Account represents an account in the service layer.
type Account struct {
	ID              uuid.UUID
	Name            string
	Kind            account.AccountKind
	Balance         decimal.Decimal
	StartingBalance decimal.Decimal
	Goal            decimal.NullDecimal
	Description     string
	CreatedAt       time.Time
}

// AccountCursor identifies a position in a paginated result set.
type AccountCursor struct {
	Position int
	Limit    int
}

func accountFromStorage(row *account.Account) Account {
	return Account{
		ID:              row.ID,
		Name:            row.Name,
		Kind:            row.Kind,
		Balance:         row.Balance,
		StartingBalance: row.StartingBalance,
		Goal:            row.Goal,
		Description:     row.Description,
		CreatedAt:       row.CreatedAt,
	}
}
