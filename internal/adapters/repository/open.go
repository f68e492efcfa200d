package repository

import (
	"context"
	"fmt"

	"github.com/okian/podium/internal/config"
)

// Open builds the KV backend selected by cfg.Store. A failed backend is
// returned as a nil interface, never a typed nil.
func Open(ctx context.Context, cfg *config.Config) (KV, error) {
	switch cfg.Store {
	case config.StoreMemory, "":
		return NewMemoryKV(), nil
	case config.StoreSQLite:
		kv, err := NewSQLiteKV(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case config.StoreRedis:
		kv, err := NewRedisKV(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case config.StorePostgres:
		kv, err := NewPostgresKV(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("%w: unknown store %q", config.ErrInvalidConfig, cfg.Store)
	}
}
