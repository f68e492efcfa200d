// Package repository persists the roster as JSON blobs in a key-value store.
package repository

import "context"

// Backend names, also used as metric labels.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// KV is a minimal key-value store.
type KV interface {
	// Get returns the value for key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// SetMany writes all pairs, atomically where the backend allows it.
	SetMany(ctx context.Context, values map[string][]byte) error
	// Backend names the implementation.
	Backend() string
	Close() error
}
