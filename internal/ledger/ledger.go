// Package ledger holds the pure balance arithmetic. Nothing here touches
// storage; the operator actions call Effect with the delta they are about to
// persist inside the same database transaction as the row mutation.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/errs"
)

// Kind classifies a transaction as money in or money out.
type Kind int8

const (
	KindIncome Kind = iota
	KindExpense
)

func (k Kind) String() string {
	switch k {
	case KindIncome:
		return "income"
	case KindExpense:
		return "expense"
	}
	return "unknown"
}

// ParseKind maps the wire representation to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "income":
		return KindIncome, nil
	case "expense":
		return KindExpense, nil
	}
	return 0, errs.Validationf("invalid transaction kind %q", s)
}

// Entry is the minimal view of a transaction the accumulator needs.
type Entry struct {
	Kind   Kind
	Amount decimal.Decimal
}

// Effect returns the signed balance delta a transaction contributes to its
// account: +amount for income, -amount for expense. The stored amount is
// always non-negative; the sign is derived from the kind alone.
func Effect(kind Kind, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, errs.Validationf("amount must not be negative, got %s", amount)
	}
	switch kind {
	case KindIncome:
		return amount, nil
	case KindExpense:
		return amount.Neg(), nil
	}
	return decimal.Zero, errs.Validationf("invalid transaction kind %d", kind)
}

// NetEffect sums Effect over a sequence of entries. It exists for full
// recomputation and repair; the write path applies incremental deltas instead
// of re-reading history.
func NetEffect(entries []Entry) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range entries {
		delta, err := Effect(e.Kind, e.Amount)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(delta)
	}
	return total, nil
}
