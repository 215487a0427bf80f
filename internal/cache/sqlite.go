package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ryanm101/gameroom/internal/db"
)

// SQLiteStore persists entries in the response_cache table so a restart
// does not drop still-fresh upstream responses.
type SQLiteStore struct {
	db  *db.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) the cache database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: database, now: time.Now}, nil
}

// WithClock replaces the store's time source.
func (s *SQLiteStore) WithClock(now func() time.Time) *SQLiteStore {
	s.now = now
	return s
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	var expiresAt int64
	err := s.db.Conn().QueryRowContext(ctx,
		"SELECT value, expires_at FROM response_cache WHERE key = ?", key,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}

	if s.now().UnixMilli() >= expiresAt {
		if _, err := s.db.Conn().ExecContext(ctx,
			"DELETE FROM response_cache WHERE key = ? AND expires_at = ?", key, expiresAt,
		); err != nil {
			return nil, false, fmt.Errorf("drop expired cache entry: %w", err)
		}
		return nil, false, nil
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	expiresAt := s.now().Add(ttl).UnixMilli()
	_, err := s.db.Conn().ExecContext(ctx, `
		INSERT INTO response_cache (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
