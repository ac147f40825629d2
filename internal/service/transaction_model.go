package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID              uuid.UUID
	Kind            ledger.Kind
	Amount          decimal.Decimal
	CategoryID      uuid.UUID
	AccountID       uuid.UUID
	Description     string
	TransactionDate time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

// TransactionListFilter narrows a listing by the read-side predicates the
// presentation layer exposes.
type TransactionListFilter struct {
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Kind       *ledger.Kind
	DateFrom   *time.Time
	DateTo     *time.Time
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	return Transaction{
		ID:              row.ID,
		Kind:            row.Kind,
		Amount:          row.Amount,
		CategoryID:      row.CategoryID,
		AccountID:       row.AccountID,
		Description:     row.Description,
		TransactionDate: row.TransactionDate,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
