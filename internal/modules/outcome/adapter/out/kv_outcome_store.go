package out

import (
	"context"
	"fmt"

	"tempo/internal/modules/outcome/domain"
	outcomeout "tempo/internal/modules/outcome/port/out"
	"tempo/internal/platform/clock"
	"tempo/internal/platform/kvstore"
)

const (
	outcomesKey  = "outcomes"
	lastSavedKey = "last_saved"
)

// KVOutcomeStore persists the whole outcome list as one JSON document and
// stamps last_saved on every write.
type KVOutcomeStore struct {
	kv  kvstore.Store
	clk clock.Clock
}

func NewKVOutcomeStore(kv kvstore.Store, clk clock.Clock) outcomeout.OutcomeStore {
	return &KVOutcomeStore{kv: kv, clk: clk}
}

func (s *KVOutcomeStore) Load(ctx context.Context) ([]domain.Outcome, error) {
	var outcomes []domain.Outcome
	if !s.kv.Get(ctx, outcomesKey, &outcomes) {
		return []domain.Outcome{}, nil
	}
	return outcomes, nil
}

func (s *KVOutcomeStore) Save(ctx context.Context, outcomes []domain.Outcome) error {
	if outcomes == nil {
		outcomes = []domain.Outcome{}
	}
	if !s.kv.Set(ctx, outcomesKey, outcomes) {
		return fmt.Errorf("save outcomes: store rejected write")
	}
	s.kv.Set(ctx, lastSavedKey, s.clk.Now())
	return nil
}
