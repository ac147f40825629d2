package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Kind            string `json:"kind" required:"true" enum:"income,expense" doc:"Transaction kind"`
	Amount          string `json:"amount" required:"true" doc:"Decimal amount, must be positive"`
	AccountID       string `json:"accountID" required:"true" doc:"Account UUID"`
	CategoryID      string `json:"categoryID" required:"true" doc:"Category UUID"`
	Description     string `json:"description,omitempty" doc:"Free-form description"`
	TransactionDate string `json:"transactionDate,omitempty" doc:"Transaction date YYYY-MM-DD, defaults to today"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner identifier"`
	Body    CreateTransactionBody
}

// CreateTransactionResponse is the response body for creating a transaction.
type CreateTransactionResponse struct {
	ID string `json:"id" doc:"Created transaction UUID"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	Create(ctx context.Context, ownerID string, tx service.Transaction) (uuid.UUID, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Records a new transaction and applies its effect to the account balance.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseTransactionBody is shared by create and update, which accept the same
// body shape.
func parseTransactionBody(body CreateTransactionBody) (service.Transaction, error) {
	kind, err := ledger.ParseKind(body.Kind)
	if err != nil {
		return service.Transaction{}, huma.NewError(http.StatusBadRequest, "invalid kind", err)
	}
	amount, err := decimal.NewFromString(body.Amount)
	if err != nil {
		return service.Transaction{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	accountID, err := uuid.FromString(body.AccountID)
	if err != nil {
		return service.Transaction{}, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}
	categoryID, err := uuid.FromString(body.CategoryID)
	if err != nil {
		return service.Transaction{}, huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
	}

	var transactionDate time.Time
	if body.TransactionDate != "" {
		transactionDate, err = time.Parse("2006-01-02", body.TransactionDate)
		if err != nil {
			return service.Transaction{}, huma.NewError(http.StatusBadRequest, "invalid transactionDate", err)
		}
	}

	return service.Transaction{
		Kind:            kind,
		Amount:          amount,
		AccountID:       accountID,
		CategoryID:      categoryID,
		Description:     body.Description,
		TransactionDate: transactionDate,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	tx, err := parseTransactionBody(input.Body)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	id, err := h.TransactionService.Create(ctx, input.OwnerID, tx)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.From(err, "failed to create transaction")
	}

	if logData != nil {
		logData.AddData("transactionID", id.String())
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   CreateTransactionResponse{ID: id.String()},
	}, nil
}
