package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/logging"
)

// SetBalanceBody is the request body for a direct balance edit.
type SetBalanceBody struct {
	Balance string `json:"balance" required:"true" doc:"New decimal balance"`
}

// SetBalanceInput is the Huma input for a direct balance edit.
type SetBalanceInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner identifier"`
	ID      string `path:"id" doc:"Account UUID"`
	Body    SetBalanceBody
}

// SetBalanceOutput is the Huma output for a direct balance edit.
type SetBalanceOutput struct {
	Status int
}

// balanceSetter is the interface for direct balance edits.
type balanceSetter interface {
	SetBalance(ctx context.Context, ownerID string, id uuid.UUID, balance decimal.Decimal) error
}

// SetBalanceHandler handles PUT /v1/account/{id}/balance.
type SetBalanceHandler struct {
	AccountService balanceSetter
}

// NewSetBalanceHandler creates a new SetBalanceHandler.
func NewSetBalanceHandler(svc balanceSetter) *SetBalanceHandler {
	return &SetBalanceHandler{AccountService: svc}
}

// Register registers the set balance endpoint with the Huma API.
func (h *SetBalanceHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "set-account-balance",
		Method:      http.MethodPut,
		Path:        "/v1/account/{id}/balance",
		Summary:     "Set account balance",
		Description: "Overwrites the current balance without recording a transaction. The starting balance shifts by the same delta so existing transactions still account for the difference.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *SetBalanceHandler) handle(ctx context.Context, input *SetBalanceInput) (*SetBalanceOutput, error) {
	logData := logging.GetLogData(ctx)

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid account id", err)
	}
	balance, err := decimal.NewFromString(input.Body.Balance)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid balance", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("setBalanceMs")
	}
	err = h.AccountService.SetBalance(ctx, input.OwnerID, id, balance)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.From(err, "failed to set account balance")
	}

	return &SetBalanceOutput{Status: http.StatusNoContent}, nil
}
