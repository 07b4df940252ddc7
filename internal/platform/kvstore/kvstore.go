package kvstore

import "context"

// Tier identifies which backend a Store is currently writing to.
type Tier string

const (
	TierSQLite Tier = "sqlite"
	TierMemory Tier = "memory"
	TierNone   Tier = "none"
)

// Store is a best-effort JSON key-value store. Persistence is advisory:
// failures are reported through booleans and Tier, never as errors, so
// callers degrade instead of aborting. Values are marshaled to JSON on Set
// and unmarshaled on Get.
type Store interface {
	// Get decodes the value under key into `into` and reports whether a
	// decodable value was found. `into` is left untouched on a miss.
	Get(ctx context.Context, key string, into any) bool
	Set(ctx context.Context, key string, v any) bool
	Remove(ctx context.Context, key string) bool
	Clear(ctx context.Context) bool
	Keys(ctx context.Context) []string
	Available() bool
	Tier() Tier
}

// backend is a raw byte store; Tiered layers JSON codec, probing and
// fallback on top.
type backend interface {
	get(ctx context.Context, key string) ([]byte, bool, error)
	set(ctx context.Context, key string, value []byte) error
	remove(ctx context.Context, key string) error
	clear(ctx context.Context) error
	keys(ctx context.Context) ([]string, error)
}
