package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"

	"github.com/okian/podium/pkg/logger"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS podium_kv (
    key TEXT PRIMARY KEY,
    value BYTEA NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)
`

const postgresUpsert = `
INSERT INTO podium_kv (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
`

const postgresPingTimeout = 5 * time.Second

// PostgresKV stores values in one table behind a pgx connection pool.
type PostgresKV struct {
	pool *pgxpool.Pool
}

// NewPostgresKV connects to url, verifies the connection and creates the table.
func NewPostgresKV(ctx context.Context, url string) (*PostgresKV, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres url: %w", err)
	}
	cfg.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   newQueryLogger(logger.Named("postgres")),
		LogLevel: tracelog.LogLevelDebug,
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, postgresPingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &PostgresKV{pool: pool}, nil
}

// Get implements KV.
func (p *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := p.pool.QueryRow(ctx, `SELECT value FROM podium_kv WHERE key = $1`, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres get %s: %w", key, err)
	}
	return v, nil
}

// SetMany implements KV. All values are sent as one batch inside a transaction.
func (p *PostgresKV) SetMany(ctx context.Context, values map[string][]byte) error {
	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for k, v := range values {
			batch.Queue(postgresUpsert, k, v)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("postgres set: %w", err)
	}
	return nil
}

// Backend implements KV.
func (p *PostgresKV) Backend() string { return BackendPostgres }

// Close implements KV.
func (p *PostgresKV) Close() error {
	p.pool.Close()
	return nil
}
