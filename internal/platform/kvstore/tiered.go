package kvstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

const probeKey = "__tempo_probe__"

// Tiered selects a backend once at construction: SQLite when a probe write
// succeeds, the in-process map otherwise. A primary write failure later in
// the process degrades the store to the memory tier permanently. Successful
// primary writes are mirrored into the memory map as a hot cache.
type Tiered struct {
	mu      sync.Mutex
	primary backend
	memory  *memoryBackend
	tier    Tier
	log     zerolog.Logger
}

func NewTiered(dbPath string, log zerolog.Logger) *Tiered {
	t := &Tiered{
		memory: newMemoryBackend(),
		tier:   TierMemory,
		log:    log,
	}

	primary, err := newSQLiteBackend(dbPath)
	if err != nil {
		log.Warn().Err(err).Str("db", dbPath).Msg("sqlite unavailable, using memory tier")
		return t
	}
	if err := probe(primary); err != nil {
		log.Warn().Err(err).Str("db", dbPath).Msg("sqlite probe failed, using memory tier")
		return t
	}
	t.primary = primary
	t.tier = TierSQLite
	return t
}

func probe(b backend) error {
	ctx := context.Background()
	if err := b.set(ctx, probeKey, []byte("1")); err != nil {
		return err
	}
	return b.remove(ctx, probeKey)
}

func (t *Tiered) Get(ctx context.Context, key string, into any) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	raw, ok := t.read(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, into); err != nil {
		t.log.Warn().Err(err).Str("key", key).Msg("kv decode failed")
		return false
	}
	return true
}

func (t *Tiered) read(ctx context.Context, key string) ([]byte, bool) {
	if t.tier == TierSQLite {
		raw, ok, err := t.primary.get(ctx, key)
		if err == nil {
			return raw, ok
		}
		t.degrade("read", key, err)
	}
	raw, ok, _ := t.memory.get(ctx, key)
	return raw, ok
}

func (t *Tiered) Set(ctx context.Context, key string, v any) bool {
	raw, err := json.Marshal(v)
	if err != nil {
		t.log.Warn().Err(err).Str("key", key).Msg("kv encode failed")
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.tier == TierSQLite {
		if err := t.primary.set(ctx, key, raw); err != nil {
			t.degrade("write", key, err)
		}
	}
	_ = t.memory.set(ctx, key, raw)
	return true
}

func (t *Tiered) Remove(ctx context.Context, key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.tier == TierSQLite {
		if err := t.primary.remove(ctx, key); err != nil {
			t.degrade("remove", key, err)
		}
	}
	_ = t.memory.remove(ctx, key)
	return true
}

func (t *Tiered) Clear(ctx context.Context) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.tier == TierSQLite {
		if err := t.primary.clear(ctx); err != nil {
			t.degrade("clear", "", err)
		}
	}
	_ = t.memory.clear(ctx)
	return true
}

func (t *Tiered) Keys(ctx context.Context) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.tier == TierSQLite {
		keys, err := t.primary.keys(ctx)
		if err == nil {
			return keys
		}
		t.degrade("keys", "", err)
	}
	keys, _ := t.memory.keys(ctx)
	return keys
}

func (t *Tiered) Available() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tier == TierSQLite
}

func (t *Tiered) Tier() Tier {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tier
}

// degrade flips the store to the memory tier after a primary failure.
// Callers hold t.mu.
func (t *Tiered) degrade(op, key string, err error) {
	t.log.Warn().Err(err).Str("op", op).Str("key", key).Msg("sqlite tier degraded to memory")
	t.tier = TierMemory
	t.primary = nil
}

// Noop discards everything, the last resort when no state should be kept.
type Noop struct{}

func (Noop) Get(context.Context, string, any) bool { return false }
func (Noop) Set(context.Context, string, any) bool { return false }
func (Noop) Remove(context.Context, string) bool   { return false }
func (Noop) Clear(context.Context) bool            { return false }
func (Noop) Keys(context.Context) []string         { return nil }
func (Noop) Available() bool                       { return false }
func (Noop) Tier() Tier                            { return TierNone }
