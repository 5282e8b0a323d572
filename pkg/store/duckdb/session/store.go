package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/dmarc-atlas/pkg/store/session"
)

const (
	getQuery    = `SELECT session_value FROM session_state WHERE session_key = ?`
	upsertQuery = `INSERT INTO session_state (session_key, session_value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (session_key) DO UPDATE SET session_value = excluded.session_value, updated_at = excluded.updated_at`
	deleteQuery = `DELETE FROM session_state WHERE session_key = ?`
)

// Store is a session.Backend persisted in the local DuckDB database, so the
// terminal dashboard remembers view state between invocations.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, getQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", session.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session key %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, upsertQuery, key, value)
	if err != nil {
		return fmt.Errorf("failed to write session key %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, deleteQuery, key)
	if err != nil {
		return fmt.Errorf("failed to delete session key %s: %w", key, err)
	}
	return nil
}
