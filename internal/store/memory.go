package store

import (
	"context"
	"sync"
)

// Memory is an in-process backend used for tests and for running the
// API without any external storage.
type Memory struct {
	mu      sync.Mutex
	payload []byte
	present bool
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{}
}

// Seed installs a payload as if it had been persisted earlier.
func (m *Memory) Seed(payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = append([]byte(nil), payload...)
	m.present = true
}

func (m *Memory) Load(context.Context) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.present {
		return nil, false, nil
	}
	return append([]byte(nil), m.payload...), true, nil
}

func (m *Memory) Save(_ context.Context, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = append([]byte(nil), payload...)
	m.present = true
	return nil
}

func (m *Memory) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = nil
	m.present = false
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

// Present reports whether a payload is stored.
func (m *Memory) Present() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.present
}
