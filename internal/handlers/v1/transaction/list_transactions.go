package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// ListTransactionsCursor represents a pagination cursor in request and response bodies.
// It bundles position, limit, and maxCreationTime so subsequent pages use consistent parameters.
type ListTransactionsCursor struct {
	Position        int    `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit           int    `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
	MaxCreationTime string `json:"maxCreationTime" format:"date-time" doc:"Upper bound on created_at locked in from the first page"`
}

// ListTransactionsFilter narrows the listing. All fields are optional and
// combine with AND.
type ListTransactionsFilter struct {
	AccountID  string `json:"accountID,omitempty" doc:"Only transactions on this account"`
	CategoryID string `json:"categoryID,omitempty" doc:"Only transactions in this category"`
	Kind       string `json:"kind,omitempty" enum:"income,expense" doc:"Only transactions of this kind"`
	DateFrom   string `json:"dateFrom,omitempty" doc:"Only transactions on or after this date, YYYY-MM-DD"`
	DateTo     string `json:"dateTo,omitempty" doc:"Only transactions on or before this date, YYYY-MM-DD"`
}

// ListTransactionsBody is the request body for listing transactions.
type ListTransactionsBody struct {
	Filter *ListTransactionsFilter `json:"filter,omitempty" doc:"Optional predicates to narrow the listing"`
	Cursor *ListTransactionsCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner identifier"`
	Body    ListTransactionsBody
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction           `json:"transactions" doc:"Page of transactions"`
	NextCursor   *ListTransactionsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	List(ctx context.Context, ownerID string, filter *service.TransactionListFilter, cursor *service.TransactionCursor) ([]service.Transaction, *service.TransactionCursor, error)
}

// ListTransactionsHandler handles POST /v1/transaction/list.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/list",
		Summary:     "List transactions",
		Description: "Returns a paginated list of transactions using cursor-based pagination.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsCursor parses the optional cursor. When a cursor is
// provided, limit and maxCreationTime come from it. Without a cursor, the
// service uses its default limit.
func parseListTransactionsCursor(cursor *ListTransactionsCursor) (*service.TransactionCursor, error) {
	if cursor == nil {
		return nil, nil
	}

	if cursor.Position < 0 {
		return nil, huma.NewError(http.StatusBadRequest, "cursor position must be non-negative")
	}

	maxCreationTime, err := time.Parse(time.RFC3339, cursor.MaxCreationTime)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid cursor maxCreationTime", err)
	}

	return &service.TransactionCursor{
		Position:        cursor.Position,
		Limit:           cursor.Limit,
		MaxCreationTime: maxCreationTime,
	}, nil
}

func parseListTransactionsFilter(filter *ListTransactionsFilter) (*service.TransactionListFilter, error) {
	if filter == nil {
		return nil, nil
	}

	parsed := &service.TransactionListFilter{}
	if filter.AccountID != "" {
		id, err := uuid.FromString(filter.AccountID)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid filter accountID", err)
		}
		parsed.AccountID = &id
	}
	if filter.CategoryID != "" {
		id, err := uuid.FromString(filter.CategoryID)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid filter categoryID", err)
		}
		parsed.CategoryID = &id
	}
	if filter.Kind != "" {
		kind, err := ledger.ParseKind(filter.Kind)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid filter kind", err)
		}
		parsed.Kind = &kind
	}
	if filter.DateFrom != "" {
		from, err := time.Parse("2006-01-02", filter.DateFrom)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid filter dateFrom", err)
		}
		parsed.DateFrom = &from
	}
	if filter.DateTo != "" {
		to, err := time.Parse("2006-01-02", filter.DateTo)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid filter dateTo", err)
		}
		parsed.DateTo = &to
	}
	return parsed, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	requestCursor, err := parseListTransactionsCursor(input.Body.Cursor)
	if err != nil {
		return nil, err
	}
	requestFilter, err := parseListTransactionsFilter(input.Body.Filter)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	transactions, nextCursor, err := h.TransactionService.List(ctx, input.OwnerID, requestFilter, requestCursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.From(err, "failed to list transactions")
	}

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(transactions)),
	}
	for i, tx := range transactions {
		resp.Transactions[i] = fromService(tx)
	}

	if nextCursor != nil {
		resp.NextCursor = &ListTransactionsCursor{
			Position:        nextCursor.Position,
			Limit:           nextCursor.Limit,
			MaxCreationTime: nextCursor.MaxCreationTime.Format(time.RFC3339),
		}
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
