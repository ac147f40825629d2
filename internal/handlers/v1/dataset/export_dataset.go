// Package dataset exposes full-ledger export and import. The document format
// is the snapshot JSON produced by export; import accepts exactly that shape
// and replaces the owner's whole ledger with it.
package dataset

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/snapshot"
)

// ExportDatasetInput is the Huma input for exporting a dataset.
type ExportDatasetInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner identifier"`
}

// ExportDatasetOutput is the Huma output for exporting a dataset. The body is
// the raw snapshot document so round-tripping through import is byte-exact.
type ExportDatasetOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// datasetExporter is the interface for exporting datasets.
type datasetExporter interface {
	Export(ctx context.Context, ownerID string) (*snapshot.Snapshot, error)
}

// ExportDatasetHandler handles GET /v1/dataset/export.
type ExportDatasetHandler struct {
	DatasetService datasetExporter
}

// NewExportDatasetHandler creates a new ExportDatasetHandler.
func NewExportDatasetHandler(svc datasetExporter) *ExportDatasetHandler {
	return &ExportDatasetHandler{DatasetService: svc}
}

// Register registers the export endpoint with the Huma API.
func (h *ExportDatasetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "export-dataset",
		Method:      http.MethodGet,
		Path:        "/v1/dataset/export",
		Summary:     "Export dataset",
		Description: "Serializes the owner's whole ledger into a portable snapshot document.",
		Tags:        []string{"Dataset"},
	}, h.handle)
}

func (h *ExportDatasetHandler) handle(ctx context.Context, input *ExportDatasetInput) (*ExportDatasetOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("exportDatasetMs")
	}
	snap, err := h.DatasetService.Export(ctx, input.OwnerID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.From(err, "failed to export dataset")
	}

	encoded, err := snap.Encode()
	if err != nil {
		return nil, httperr.From(err, "failed to encode dataset")
	}

	if logData != nil {
		logData.AddData("accountCount", len(snap.Accounts))
		logData.AddData("transactionCount", len(snap.Transactions))
	}

	return &ExportDatasetOutput{
		ContentType: "application/json",
		Body:        encoded,
	}, nil
}
