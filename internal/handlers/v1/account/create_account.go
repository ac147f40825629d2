package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// CreateAccountBody is the request body fields for creating an account.
type CreateAccountBody struct {
	Name            string `json:"name" required:"true" minLength:"1" doc:"Account name, unique per owner"`
	Kind            string `json:"kind" required:"true" enum:"regular,debt,savings" doc:"Account kind"`
	StartingBalance string `json:"startingBalance,omitempty" doc:"Opening decimal balance, defaults to 0"`
	Goal            string `json:"goal,omitempty" doc:"Optional decimal savings goal"`
	Description     string `json:"description,omitempty" doc:"Free-form description"`
}

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner identifier"`
	Body    CreateAccountBody
}

// CreateAccountResponse is the response body for creating an account.
type CreateAccountResponse struct {
	ID string `json:"id" doc:"Created account UUID"`
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   CreateAccountResponse
}

// accountCreator is the interface for creating accounts.
type accountCreator interface {
	Create(ctx context.Context, ownerID string, acc service.Account) (uuid.UUID, error)
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	AccountService accountCreator
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(svc accountCreator) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/v1/account",
		Summary:     "Create an account",
		Description: "Creates a new account. The current balance starts equal to the starting balance.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (service.Account, error) {
	kind, ok := account.ParseAccountKind(input.Body.Kind)
	if !ok {
		return service.Account{}, huma.NewError(http.StatusBadRequest, "invalid kind")
	}

	startingBalanceStr := input.Body.StartingBalance
	if startingBalanceStr == "" {
		startingBalanceStr = "0"
	}
	startingBalance, err := decimal.NewFromString(startingBalanceStr)
	if err != nil {
		return service.Account{}, huma.NewError(http.StatusBadRequest, "invalid startingBalance", err)
	}

	var goal decimal.NullDecimal
	if input.Body.Goal != "" {
		goalValue, err := decimal.NewFromString(input.Body.Goal)
		if err != nil {
			return service.Account{}, huma.NewError(http.StatusBadRequest, "invalid goal", err)
		}
		goal = decimal.NewNullDecimal(goalValue)
	}

	return service.Account{
		Name:            input.Body.Name,
		Kind:            kind,
		StartingBalance: startingBalance,
		Goal:            goal,
		Description:     input.Body.Description,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	acc, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createAccountMs")
	}
	id, err := h.AccountService.Create(ctx, input.OwnerID, acc)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.From(err, "failed to create account")
	}

	if logData != nil {
		logData.AddData("accountID", id.String())
	}

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   CreateAccountResponse{ID: id.String()},
	}, nil
}
