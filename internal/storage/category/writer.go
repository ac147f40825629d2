package category

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
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

func (w *Writer) Insert(ctx context.Context, ownerID string, create *CategoryCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("categories", "owner_id", "name", "kind"),
		im.Values(psql.Arg(ownerID, create.Name, int16(create.Kind))),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (w *Writer) Delete(ctx context.Context, ownerID string, id uuid.UUID) (int64, error) {
	q := psql.Delete(
		dm.From("categories"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
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
		dm.From("categories"),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
