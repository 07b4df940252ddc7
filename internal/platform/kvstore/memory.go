package kvstore

import (
	"context"
	"sort"
	"sync"
)

// memoryBackend survives only for the process lifetime. It doubles as the
// hot cache for successful primary writes.
type memoryBackend struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{data: make(map[string][]byte)}
}

func (b *memoryBackend) get(_ context.Context, key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.data[key]
	return v, ok, nil
}

func (b *memoryBackend) set(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	b.data[key] = cp
	return nil
}

func (b *memoryBackend) remove(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
	return nil
}

func (b *memoryBackend) clear(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = make(map[string][]byte)
	return nil
}

func (b *memoryBackend) keys(_ context.Context) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := make([]string, 0, len(b.data))
	for k := range b.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
