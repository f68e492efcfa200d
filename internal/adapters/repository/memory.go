package repository

import (
	"context"
	"sync"
)

// MemoryKV keeps values in process memory.
type MemoryKV struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Get implements KV.
func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// SetMany implements KV.
func (m *MemoryKV) SetMany(ctx context.Context, values map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	for k, v := range values {
		m.data[k] = append([]byte(nil), v...)
	}
	return nil
}

// Backend implements KV.
func (m *MemoryKV) Backend() string { return BackendMemory }

// Close implements KV.
func (m *MemoryKV) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
