package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	out "tempo/internal/modules/outcome/adapter/out"
	"tempo/internal/modules/outcome/domain"
	"tempo/internal/platform/kvstore"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

func TestOutcomeStoreRoundTripAndLastSaved(t *testing.T) {
	t.Parallel()
	kv := kvstore.NewTiered(filepath.Join(t.TempDir(), "tempo.db"), zerolog.Nop())
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	store := out.NewKVOutcomeStore(kv, fixedClock{now: now})
	ctx := context.Background()

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("empty store should load empty list, got %v", loaded)
	}

	outcomes := []domain.Outcome{{ID: "o1", Title: "Outcome", Steps: []domain.Step{{ID: "s1", Title: "Step", EstimatedMin: 30}}}}
	if err := store.Save(ctx, outcomes); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "o1" || len(loaded[0].Steps) != 1 {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}

	var stamp time.Time
	if !kv.Get(ctx, "last_saved", &stamp) {
		t.Fatalf("save should stamp last_saved")
	}
	if !stamp.Equal(now) {
		t.Fatalf("last_saved = %v, want %v", stamp, now)
	}
}

func TestOutcomeStoreNilSavesEmptyList(t *testing.T) {
	t.Parallel()
	kv := kvstore.NewTiered(filepath.Join(t.TempDir(), "tempo.db"), zerolog.Nop())
	store := out.NewKVOutcomeStore(kv, fixedClock{now: time.Now()})
	ctx := context.Background()

	if err := store.Save(ctx, nil); err != nil {
		t.Fatalf("nil save: %v", err)
	}
	var raw []any
	if !kv.Get(ctx, "outcomes", &raw) {
		t.Fatalf("outcomes key should exist after nil save")
	}
	if len(raw) != 0 {
		t.Fatalf("nil save should store an empty array, got %v", raw)
	}
}
