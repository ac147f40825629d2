package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/service"
)

// GetAccountInput is the Huma input for fetching one account.
type GetAccountInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner identifier"`
	ID      string `path:"id" doc:"Account UUID"`
}

// GetAccountOutput is the Huma output for fetching one account.
type GetAccountOutput struct {
	Body Account
}

// accountGetter is the interface for fetching one account.
type accountGetter interface {
	Get(ctx context.Context, ownerID string, id uuid.UUID) (*service.Account, error)
}

// GetAccountHandler handles GET /v1/account/{id}.
type GetAccountHandler struct {
	AccountService accountGetter
}

// NewGetAccountHandler creates a new GetAccountHandler.
func NewGetAccountHandler(svc accountGetter) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

// Register registers the get account endpoint with the Huma API.
func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/account/{id}",
		Summary:     "Get account",
		Description: "Returns one account with its current balance.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *GetAccountInput) (*GetAccountOutput, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid account id", err)
	}

	acc, err := h.AccountService.Get(ctx, input.OwnerID, id)
	if err != nil {
		return nil, httperr.From(err, "failed to get account")
	}

	return &GetAccountOutput{Body: fromService(*acc)}, nil
}
