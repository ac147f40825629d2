package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

type Writer struct {
	tx bob.Tx
	Reader
}

var _ IWriter = (*Writer)(nil)

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

func (w *Writer) Insert(ctx context.Context, ownerID string, create *TransactionCreate) (uuid.UUID, error) {
	txDate := create.TransactionDate
	if txDate.IsZero() {
		txDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	q := psql.Insert(
		im.Into("transactions",
			"owner_id", "kind", "amount", "category_id", "account_id",
			"description", "transaction_date",
		),
		im.Values(psql.Arg(
			ownerID, int16(create.Kind), create.Amount, create.CategoryID, create.AccountID,
			create.Description, txDate,
		)),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (w *Writer) Update(ctx context.Context, ownerID string, id uuid.UUID, update *TransactionUpdate) (int64, error) {
	q := psql.Update(
		um.Table("transactions"),
		um.SetCol("kind").ToArg(int16(update.Kind)),
		um.SetCol("amount").ToArg(update.Amount),
		um.SetCol("category_id").ToArg(update.CategoryID),
		um.SetCol("account_id").ToArg(update.AccountID),
		um.SetCol("description").ToArg(update.Description),
		um.SetCol("transaction_date").ToArg(update.TransactionDate),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (w *Writer) Delete(ctx context.Context, ownerID string, id uuid.UUID) (int64, error) {
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteByIDs removes the matching rows and returns the account/kind/amount
// of each, so the caller can apply the aggregate inverse effect per account.
func (w *Writer) DeleteByIDs(ctx context.Context, ownerID string, ids []uuid.UUID) ([]*Deleted, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("id").In(psql.Arg(args...))),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		dm.Returning("account_id", "kind", "amount"),
	)
	return bob.All(ctx, w.tx, q, scan.StructMapper[*Deleted]())
}

func (w *Writer) DeleteByCategory(ctx context.Context, ownerID string, categoryID uuid.UUID) ([]*Deleted, error) {
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("category_id").EQ(psql.Arg(categoryID))),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		dm.Returning("account_id", "kind", "amount"),
	)
	return bob.All(ctx, w.tx, q, scan.StructMapper[*Deleted]())
}

func (w *Writer) DeleteByAccount(ctx context.Context, ownerID string, accountID uuid.UUID) (int64, error) {
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (w *Writer) DeleteAllForOwner(ctx context.Context, ownerID string) error {
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
