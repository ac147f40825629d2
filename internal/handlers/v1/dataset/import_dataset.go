package dataset

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/logging"
)

// ImportDatasetInput is the Huma input for importing a dataset. RawBody keeps
// the document untouched so the snapshot package can do its own strict shape
// check.
type ImportDatasetInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner identifier"`
	RawBody []byte
}

// ImportDatasetOutput is the Huma output for importing a dataset.
type ImportDatasetOutput struct {
	Status int
}

// datasetImporter is the interface for importing datasets.
type datasetImporter interface {
	Import(ctx context.Context, ownerID string, data []byte) error
}

// ImportDatasetHandler handles POST /v1/dataset/import.
type ImportDatasetHandler struct {
	DatasetService datasetImporter
}

// NewImportDatasetHandler creates a new ImportDatasetHandler.
func NewImportDatasetHandler(svc datasetImporter) *ImportDatasetHandler {
	return &ImportDatasetHandler{DatasetService: svc}
}

// Register registers the import endpoint with the Huma API.
func (h *ImportDatasetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "import-dataset",
		Method:      http.MethodPost,
		Path:        "/v1/dataset/import",
		Summary:     "Import dataset",
		Description: "Validates a snapshot document and, if it is well formed, replaces the owner's whole ledger with its contents in one atomic unit. A malformed document changes nothing.",
		Tags:        []string{"Dataset"},
	}, h.handle)
}

func (h *ImportDatasetHandler) handle(ctx context.Context, input *ImportDatasetInput) (*ImportDatasetOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("importDatasetMs")
	}
	err := h.DatasetService.Import(ctx, input.OwnerID, input.RawBody)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.From(err, "failed to import dataset")
	}

	return &ImportDatasetOutput{Status: http.StatusNoContent}, nil
}
