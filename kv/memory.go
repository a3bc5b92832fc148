package kv

import (
	"context"
	"sync"
)

// MemoryArea keeps values in process memory
type MemoryArea struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryArea() *MemoryArea {
	return &MemoryArea{values: make(map[string][]byte)}
}

func (m *MemoryArea) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), value...), nil
}

func (m *MemoryArea) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = append([]byte(nil), value...)
	return nil
}
