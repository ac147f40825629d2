package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/storage"
)

// IAction is one unit of ledger work. Perform runs with a Writer bound to a
// single database transaction; the operator commits on nil error and rolls
// back on any error, so an action never manages the transaction itself.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
