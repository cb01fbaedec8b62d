package progress

import (
	"context"
	"sync"
)

// Backend is durable string storage for whole records. Save replaces the
// value stored under key.
type Backend interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, value string) error
	Close() error
}

// HealthChecker is implemented by backends with a remote connection.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// MemoryBackend is an in-memory Backend. Records do not survive a restart.
type MemoryBackend struct {
	records map[string]string
	mu      sync.RWMutex
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: make(map[string]string)}
}

func (b *MemoryBackend) Load(_ context.Context, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.records[key]
	return v, ok, nil
}

func (b *MemoryBackend) Save(_ context.Context, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.records[key] = value
	return nil
}

func (b *MemoryBackend) Close() error {
	return nil
}
