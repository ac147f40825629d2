package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// TxHandle is the commit/rollback surface of a database transaction.
// bob.Tx satisfies it; tests substitute a fake.
type TxHandle interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer bundles the per-entity writers bound to one database transaction.
// Everything performed through it is part of the same atomic unit.
type Writer struct {
	tx          TxHandle
	Account     account.IWriter
	Category    category.IWriter
	Transaction transaction.IWriter
}

func NewWriter(tx bob.Tx) Writer {
	return Writer{
		tx:          tx,
		Account:     account.NewWriter(tx),
		Category:    category.NewWriter(tx),
		Transaction: transaction.NewWriter(tx),
	}
}

// NewFakeWriter assembles a Writer from substitutes. Test helper.
func NewFakeWriter(tx TxHandle, a account.IWriter, c category.IWriter, t transaction.IWriter) Writer {
	return Writer{tx: tx, Account: a, Category: c, Transaction: t}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
