package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Store is the persisted key-value byte store. Each key holds one
// whole JSON-encoded collection; mutations replace the full value in a
// single synchronous statement.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewStore(db *sql.DB, logger zerolog.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Get returns the raw bytes for a key, or nil when the key has never
// been written.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM store WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, nil
}

// Put replaces the full value stored under a key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	s.logger.Debug().Str("key", key).Int("bytes", len(value)).Msg("store key written")
	return nil
}

// GetJSON decodes the value under key into v. It reports whether the
// key was present at all.
func (s *Store) GetJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("failed to decode key %q: %w", key, err)
	}
	return true, nil
}

// PutJSON encodes v and replaces the value under key.
func (s *Store) PutJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode key %q: %w", key, err)
	}
	return s.Put(ctx, key, raw)
}
