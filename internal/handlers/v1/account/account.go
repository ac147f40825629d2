package account

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/service"
)

// Account is the API response model for an account.
type Account struct {
	ID              string `json:"id" doc:"Account UUID"`
	Name            string `json:"name" doc:"Account name"`
	Kind            string `json:"kind" doc:"regular, debt, or savings"`
	Balance         string `json:"balance" doc:"Current decimal balance"`
	StartingBalance string `json:"startingBalance" doc:"Decimal balance the account opened with"`
	Goal            string `json:"goal,omitempty" doc:"Optional decimal savings goal"`
	Description     string `json:"description,omitempty" doc:"Free-form description"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(acc service.Account) Account {
	out := Account{
		ID:              acc.ID.String(),
		Name:            acc.Name,
		Kind:            acc.Kind.String(),
		Balance:         acc.Balance.String(),
		StartingBalance: acc.StartingBalance.String(),
		Description:     acc.Description,
		CreatedAt:       acc.CreatedAt.Format(time.RFC3339),
	}
	if acc.Goal.Valid {
		out.Goal = acc.Goal.Decimal.String()
	}
	return out
}
