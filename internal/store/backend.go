package store

import (
	"context"
	"sync"
)

// Backend stores opaque blobs under string keys. Read returns an error
// matching ErrNoSnapshot when nothing is stored under key.
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
}

// MemoryBackend keeps blobs in memory. It is used by tests and by callers
// that do not want anything written to disk.
type MemoryBackend struct {
	mu     sync.Mutex
	blobs  map[string][]byte
	writes int

	// FailWrites makes every Write return this error when set.
	FailWrites error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{blobs: make(map[string][]byte)}
}

func (m *MemoryBackend) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blobs[key]
	if !ok {
		return nil, ErrNoSnapshot
	}
	return append([]byte(nil), b...), nil
}

func (m *MemoryBackend) Write(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.blobs[key] = append([]byte(nil), data...)
	m.writes++
	return nil
}

// Writes returns how many successful writes happened
func (m *MemoryBackend) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
