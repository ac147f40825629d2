package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/logging"
)

// DeleteAccountInput is the Huma input for deleting an account.
type DeleteAccountInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner identifier"`
	ID      string `path:"id" doc:"Account UUID"`
}

// DeleteAccountResponse is the response body for deleting an account.
type DeleteAccountResponse struct {
	DeletedTransactions int `json:"deletedTransactions" doc:"Number of transactions removed with the account"`
}

// DeleteAccountOutput is the Huma output for deleting an account.
type DeleteAccountOutput struct {
	Body DeleteAccountResponse
}

// accountDeleter is the interface for deleting accounts.
type accountDeleter interface {
	Delete(ctx context.Context, ownerID string, id uuid.UUID) (int, error)
}

// DeleteAccountHandler handles DELETE /v1/account/{id}.
type DeleteAccountHandler struct {
	AccountService accountDeleter
}

// NewDeleteAccountHandler creates a new DeleteAccountHandler.
func NewDeleteAccountHandler(svc accountDeleter) *DeleteAccountHandler {
	return &DeleteAccountHandler{AccountService: svc}
}

// Register registers the delete account endpoint with the Huma API.
func (h *DeleteAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-account",
		Method:      http.MethodDelete,
		Path:        "/v1/account/{id}",
		Summary:     "Delete account",
		Description: "Removes an account and every transaction referencing it in one atomic unit. Destructive; clients confirm before calling.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *DeleteAccountHandler) handle(ctx context.Context, input *DeleteAccountInput) (*DeleteAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid account id", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("deleteAccountMs")
	}
	deleted, err := h.AccountService.Delete(ctx, input.OwnerID, id)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.From(err, "failed to delete account")
	}

	if logData != nil {
		logData.AddData("deletedTransactions", deleted)
	}

	return &DeleteAccountOutput{
		Body: DeleteAccountResponse{DeletedTransactions: deleted},
	}, nil
}
