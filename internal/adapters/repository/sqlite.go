package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at INTEGER NOT NULL
);
`

const sqliteUpsert = `
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`

// SQLiteKV stores values in a single SQLite table.
type SQLiteKV struct {
	db *sql.DB
}

// NewSQLiteKV opens (or creates) the database at path and its schema.
func NewSQLiteKV(ctx context.Context, path string) (*SQLiteKV, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One writer keeps SQLite from returning SQLITE_BUSY under load.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteKV{db: db}, nil
}

// Get implements KV.
func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite get %s: %w", key, err)
	}
	return v, nil
}

// SetMany implements KV. All values are written in one transaction.
func (s *SQLiteKV) SetMany(ctx context.Context, values map[string][]byte) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, sqliteUpsert)
	if err != nil {
		return fmt.Errorf("sqlite prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for k, v := range values {
		if _, err = stmt.ExecContext(ctx, k, v, now); err != nil {
			return fmt.Errorf("sqlite set %s: %w", k, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlite commit: %w", err)
	}
	return nil
}

// Backend implements KV.
func (s *SQLiteKV) Backend() string { return BackendSQLite }

// Close implements KV.
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
