package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/config"
)

// Storage owns the database pool. Reads go through Read(); every write in the
// ledger core goes through Write(), which opens the atomic unit.
type Storage struct {
	db     bob.DB
	reader *Reader
}

func NewStorage(env *config.Config) (*Storage, error) {
	connStr := "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"

	sqlDB, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	db := bob.NewDB(sqlDB)
	return &Storage{
		db:     db,
		reader: NewReader(db),
	}, nil
}

// Read returns the shared owner-scoped readers.
func (s *Storage) Read() *Reader {
	return s.reader
}

// Write begins a database transaction and returns a Writer bound to it.
// The caller must finish with exactly one Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	w := NewWriter(tx)
	return &w, nil
}
