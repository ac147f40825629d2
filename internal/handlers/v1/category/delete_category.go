package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/logging"
)

// DeleteCategoryInput is the Huma input for deleting a category.
type DeleteCategoryInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner identifier"`
	ID      string `path:"id" doc:"Category UUID"`
}

// DeleteCategoryResponse is the response body for deleting a category.
type DeleteCategoryResponse struct {
	DeletedTransactions int `json:"deletedTransactions" doc:"Number of transactions removed with the category"`
}

// DeleteCategoryOutput is the Huma output for deleting a category.
type DeleteCategoryOutput struct {
	Body DeleteCategoryResponse
}

// categoryDeleter is the interface for deleting categories.
type categoryDeleter interface {
	Delete(ctx context.Context, ownerID string, id uuid.UUID) (int, error)
}

// DeleteCategoryHandler handles DELETE /v1/category/{id}.
type DeleteCategoryHandler struct {
	CategoryService categoryDeleter
}

// NewDeleteCategoryHandler creates a new DeleteCategoryHandler.
func NewDeleteCategoryHandler(svc categoryDeleter) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{CategoryService: svc}
}

// Register registers the delete category endpoint with the Huma API.
func (h *DeleteCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-category",
		Method:      http.MethodDelete,
		Path:        "/v1/category/{id}",
		Summary:     "Delete category",
		Description: "Removes a category and every transaction referencing it in one atomic unit, reversing their combined balance effect. Destructive; clients confirm before calling.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *DeleteCategoryHandler) handle(ctx context.Context, input *DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	logData := logging.GetLogData(ctx)

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid category id", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("deleteCategoryMs")
	}
	deleted, err := h.CategoryService.Delete(ctx, input.OwnerID, id)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.From(err, "failed to delete category")
	}

	if logData != nil {
		logData.AddData("deletedTransactions", deleted)
	}

	return &DeleteCategoryOutput{
		Body: DeleteCategoryResponse{DeletedTransactions: deleted},
	}, nil
}
