package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/logging"
)

// BulkDeleteTransactionsBody is the request body for a bulk delete.
type BulkDeleteTransactionsBody struct {
	IDs []string `json:"ids" required:"true" minItems:"1" doc:"Transaction UUIDs to delete"`
}

// BulkDeleteTransactionsInput is the Huma input for a bulk delete.
type BulkDeleteTransactionsInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner identifier"`
	Body    BulkDeleteTransactionsBody
}

// BulkDeleteTransactionsResponse is the response body for a bulk delete.
type BulkDeleteTransactionsResponse struct {
	Deleted int `json:"deleted" doc:"Number of transactions that existed and were removed"`
}

// BulkDeleteTransactionsOutput is the Huma output for a bulk delete.
type BulkDeleteTransactionsOutput struct {
	Body BulkDeleteTransactionsResponse
}

// transactionBulkDeleter is the interface for bulk-deleting transactions.
type transactionBulkDeleter interface {
	BulkDelete(ctx context.Context, ownerID string, ids []uuid.UUID) (int, error)
}

// BulkDeleteTransactionsHandler handles POST /v1/transaction/bulk-delete.
type BulkDeleteTransactionsHandler struct {
	TransactionService transactionBulkDeleter
}

// NewBulkDeleteTransactionsHandler creates a new BulkDeleteTransactionsHandler.
func NewBulkDeleteTransactionsHandler(svc transactionBulkDeleter) *BulkDeleteTransactionsHandler {
	return &BulkDeleteTransactionsHandler{TransactionService: svc}
}

// Register registers the bulk delete endpoint with the Huma API.
func (h *BulkDeleteTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "bulk-delete-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/bulk-delete",
		Summary:     "Bulk delete transactions",
		Description: "Removes a set of transactions in one atomic unit, reversing their combined effect per account. Missing ids are skipped.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *BulkDeleteTransactionsHandler) handle(ctx context.Context, input *BulkDeleteTransactionsInput) (*BulkDeleteTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	ids := make([]uuid.UUID, len(input.Body.IDs))
	for i, raw := range input.Body.IDs {
		id, err := uuid.FromString(raw)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid transaction id "+raw, err)
		}
		ids[i] = id
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("bulkDeleteTransactionsMs")
	}
	deleted, err := h.TransactionService.BulkDelete(ctx, input.OwnerID, ids)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.From(err, "failed to bulk delete transactions")
	}

	if logData != nil {
		logData.AddData("deletedCount", deleted)
	}

	return &BulkDeleteTransactionsOutput{
		Body: BulkDeleteTransactionsResponse{Deleted: deleted},
	}, nil
}
