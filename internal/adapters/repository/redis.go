package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKV stores values as plain Redis strings.
type RedisKV struct {
	client redis.UniversalClient
}

// NewRedisKV connects to addr and checks the connection.
func NewRedisKV(ctx context.Context, addr, password string, db int) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return &RedisKV{client: client}, nil
}

// NewRedisKVFromClient wraps an existing client.
func NewRedisKVFromClient(client redis.UniversalClient) *RedisKV {
	return &RedisKV{client: client}
}

// Get implements KV.
func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

// SetMany implements KV with a single MSET inside MULTI/EXEC.
func (r *RedisKV) SetMany(ctx context.Context, values map[string][]byte) error {
	if len(values) == 0 {
		return nil
	}
	pairs := make([]any, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, k, v)
	}
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.MSet(ctx, pairs...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis mset: %w", err)
	}
	return nil
}

// Backend implements KV.
func (r *RedisKV) Backend() string { return BackendRedis }

// Close implements KV.
func (r *RedisKV) Close() error {
	return r.client.Close()
}
