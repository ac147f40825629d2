package account

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
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

func (w *Writer) FindByIDForUpdate(ctx context.Context, ownerID string, id uuid.UUID) (*Account, error) {
	return findOne(ctx, w.tx, ownerID, id, true)
}

func (w *Writer) Insert(ctx context.Context, ownerID string, create *AccountCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("accounts",
			"owner_id", "name", "kind",
			"balance", "starting_balance", "goal", "description",
		),
		im.Values(psql.Arg(
			ownerID, create.Name, int16(create.Kind),
			create.Balance, create.StartingBalance, create.Goal, create.Description,
		)),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (w *Writer) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	q := psql.Update(
		um.Table("accounts"),
		um.SetCol("balance").ToArg(balance),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// Rebase overwrites both balance and starting balance in one statement. Used
// for direct balance edits, which are not transactions: shifting the starting
// balance by the same delta keeps the stored history consistent.
func (w *Writer) Rebase(ctx context.Context, id uuid.UUID, balance, startingBalance decimal.Decimal) error {
	q := psql.Update(
		um.Table("accounts"),
		um.SetCol("balance").ToArg(balance),
		um.SetCol("starting_balance").ToArg(startingBalance),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

func (w *Writer) Delete(ctx context.Context, ownerID string, id uuid.UUID) (int64, error) {
	q := psql.Delete(
		dm.From("accounts"),
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
		dm.From("accounts"),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
