package transaction

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              string `json:"id" doc:"Transaction UUID"`
	Kind            string `json:"kind" doc:"income or expense"`
	Amount          string `json:"amount" doc:"Decimal amount, always non-negative"`
	AccountID       string `json:"accountID" doc:"Account UUID"`
	CategoryID      string `json:"categoryID" doc:"Category UUID"`
	Description     string `json:"description,omitempty" doc:"Free-form description"`
	TransactionDate string `json:"transactionDate" doc:"Transaction date, YYYY-MM-DD"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(tx service.Transaction) Transaction {
	return Transaction{
		ID:              tx.ID.String(),
		Kind:            tx.Kind.String(),
		Amount:          tx.Amount.String(),
		AccountID:       tx.AccountID.String(),
		CategoryID:      tx.CategoryID.String(),
		Description:     tx.Description,
		TransactionDate: tx.TransactionDate.Format("2006-01-02"),
		CreatedAt:       tx.CreatedAt.Format(time.RFC3339),
	}
}
