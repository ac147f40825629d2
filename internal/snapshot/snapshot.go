// Package snapshot defines the portable export document for one owner's full
// ledger and the strict shape check import runs before anything destructive.
package snapshot

import (
	"encoding/json"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/errs"
)

const Version = 1

// Snapshot is one owner's complete ledger state. Kinds are carried as their
// string names so the document stays readable and stable across releases.
type Snapshot struct {
	Version      int                 `json:"version"`
	ExportedAt   time.Time           `json:"exportedAt"`
	Accounts     []AccountRecord     `json:"accounts"`
	Categories   []CategoryRecord    `json:"categories"`
	Transactions []TransactionRecord `json:"transactions"`
}

type AccountRecord struct {
	ID              uuid.UUID           `json:"id"`
	Name            string              `json:"name"`
	Kind            string              `json:"kind"`
	Balance         decimal.Decimal     `json:"balance"`
	StartingBalance decimal.Decimal     `json:"startingBalance"`
	Goal            decimal.NullDecimal `json:"goal"`
	Description     string              `json:"description,omitempty"`
}

type CategoryRecord struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Kind string    `json:"kind"`
}

type TransactionRecord struct {
	ID              uuid.UUID       `json:"id"`
	Kind            string          `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	CategoryID      uuid.UUID       `json:"categoryId"`
	AccountID       uuid.UUID       `json:"accountId"`
	Description     string          `json:"description,omitempty"`
	TransactionDate string          `json:"date"` // YYYY-MM-DD
}

// rawDocument distinguishes "key absent" from "key present but empty", which
// json.Unmarshal into slices cannot.
type rawDocument struct {
	Version      *int             `json:"version"`
	ExportedAt   time.Time        `json:"exportedAt"`
	Accounts     *json.RawMessage `json:"accounts"`
	Categories   *json.RawMessage `json:"categories"`
	Transactions *json.RawMessage `json:"transactions"`
}

// Parse decodes and validates a snapshot document. Any shape problem is a
// MalformedSnapshot error; no partial result is returned.
func Parse(data []byte) (*Snapshot, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errs.MalformedSnapshotf("snapshot is not valid JSON: %v", err)
	}
	if raw.Version == nil {
		return nil, errs.MalformedSnapshotf("snapshot is missing the version key")
	}
	if *raw.Version != Version {
		return nil, errs.MalformedSnapshotf("unsupported snapshot version %d", *raw.Version)
	}
	for key, collection := range map[string]*json.RawMessage{
		"accounts":     raw.Accounts,
		"categories":   raw.Categories,
		"transactions": raw.Transactions,
	} {
		if collection == nil {
			return nil, errs.MalformedSnapshotf("snapshot is missing the %s key", key)
		}
	}

	s := &Snapshot{Version: *raw.Version, ExportedAt: raw.ExportedAt}
	if err := json.Unmarshal(*raw.Accounts, &s.Accounts); err != nil {
		return nil, errs.MalformedSnapshotf("invalid accounts collection: %v", err)
	}
	if err := json.Unmarshal(*raw.Categories, &s.Categories); err != nil {
		return nil, errs.MalformedSnapshotf("invalid categories collection: %v", err)
	}
	if err := json.Unmarshal(*raw.Transactions, &s.Transactions); err != nil {
		return nil, errs.MalformedSnapshotf("invalid transactions collection: %v", err)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// validate checks record-level shape and referential consistency so an import
// can fail before its destructive step rather than halfway through inserts.
func (s *Snapshot) validate() error {
	accounts := make(map[uuid.UUID]bool, len(s.Accounts))
	for i, a := range s.Accounts {
		if a.ID == uuid.Nil {
			return errs.MalformedSnapshotf("accounts[%d] has no id", i)
		}
		if accounts[a.ID] {
			return errs.MalformedSnapshotf("duplicate account id %s", a.ID)
		}
		if a.Name == "" {
			return errs.MalformedSnapshotf("accounts[%d] has no name", i)
		}
		switch a.Kind {
		case "regular", "debt", "savings":
		default:
			return errs.MalformedSnapshotf("accounts[%d] has invalid kind %q", i, a.Kind)
		}
		accounts[a.ID] = true
	}

	categories := make(map[uuid.UUID]string, len(s.Categories))
	for i, c := range s.Categories {
		if c.ID == uuid.Nil {
			return errs.MalformedSnapshotf("categories[%d] has no id", i)
		}
		if _, dup := categories[c.ID]; dup {
			return errs.MalformedSnapshotf("duplicate category id %s", c.ID)
		}
		if c.Name == "" {
			return errs.MalformedSnapshotf("categories[%d] has no name", i)
		}
		switch c.Kind {
		case "income", "expense":
		default:
			return errs.MalformedSnapshotf("categories[%d] has invalid kind %q", i, c.Kind)
		}
		categories[c.ID] = c.Kind
	}

	for i, t := range s.Transactions {
		switch t.Kind {
		case "income", "expense":
		default:
			return errs.MalformedSnapshotf("transactions[%d] has invalid kind %q", i, t.Kind)
		}
		if t.Amount.IsNegative() {
			return errs.MalformedSnapshotf("transactions[%d] has negative amount %s", i, t.Amount)
		}
		if !accounts[t.AccountID] {
			return errs.MalformedSnapshotf("transactions[%d] references unknown account %s", i, t.AccountID)
		}
		kind, ok := categories[t.CategoryID]
		if !ok {
			return errs.MalformedSnapshotf("transactions[%d] references unknown category %s", i, t.CategoryID)
		}
		if kind != t.Kind {
			return errs.MalformedSnapshotf("transactions[%d] kind %s does not match category kind %s", i, t.Kind, kind)
		}
		if _, err := time.Parse("2006-01-02", t.TransactionDate); err != nil {
			return errs.MalformedSnapshotf("transactions[%d] has invalid date %q", i, t.TransactionDate)
		}
	}
	return nil
}

// Encode serializes a snapshot for export.
func (s *Snapshot) Encode() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
