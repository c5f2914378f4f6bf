// exposes the widget data table as a key/value source
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Store interface {
	Lookup(ctx context.Context, key string) (string, bool, error)
	Close() error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	return &pgStore{db: conn}
}

func (s *pgStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `
		SELECT value
		FROM widget_data
		WHERE key = $1
		`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup widget data %q: %w", key, err)
	}
	return value, true, nil
}

func (s *pgStore) Close() error {
	return s.db.Close()
}
