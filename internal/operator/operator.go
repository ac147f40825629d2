package operator

import (
	"context"
	"errors"

	"github.com/carson-networks/ledger-server/internal/errs"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// Storage is what an Operator needs from the store: the ability to open an
// atomic unit.
type Storage interface {
	Write(ctx context.Context) (*storage.Writer, error)
}

// Operator is the worker that processes items from the queue. Each item runs
// inside one database transaction: the action either commits as a whole or is
// rolled back as a whole, so no reader ever observes a transaction row
// without its balance update.
type Operator struct {
	storage Storage
	queue   chan ActionItem
}

func NewOperator(s Storage, queue chan ActionItem) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		item.response <- ActionItemResponse{err: errs.Storef(err, "begin atomic unit")}
		return
	}

	err = item.action.Perform(item.ctx, writer)
	if err != nil {
		_ = writer.Rollback(item.ctx)
		item.response <- ActionItemResponse{err: wrapStore(err)}
		return
	}

	if err = writer.Commit(item.ctx); err != nil {
		item.response <- ActionItemResponse{err: errs.Storef(err, "commit atomic unit")}
		return
	}

	item.response <- ActionItemResponse{}
}

// wrapStore keeps core taxonomy errors as-is and folds everything else
// (driver faults, constraint violations) into a Store error.
func wrapStore(err error) error {
	var e *errs.Error
	if errors.As(err, &e) {
		return err
	}
	return errs.Storef(err, "atomic unit failed")
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
