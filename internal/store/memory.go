package store

import (
	"context"
	"sync"
)

// Memory is a process-local Store. Values are copied in and out.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte

	// FailSave, when set, is returned by every Save.
	FailSave error
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSave != nil {
		return m.FailSave
	}
	m.docs[key] = append([]byte(nil), data...)
	return nil
}

func (m *Memory) Close() error { return nil }
