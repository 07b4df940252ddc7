package out

import (
	"context"
	"fmt"

	"tempo/internal/modules/timer/domain"
	timerout "tempo/internal/modules/timer/port/out"
	apperrors "tempo/internal/platform/errors"
	"tempo/internal/platform/kvstore"
)

const activeTimerKey = "active_timer"

// persistedTimer is the stored shape: the step pointer and the elapsed
// counter travel together under one key.
type persistedTimer struct {
	ActiveTimer  *timerPointer `json:"activeTimer"`
	TimerSeconds int           `json:"timerSeconds"`
}

type timerPointer struct {
	OutcomeID string `json:"outcomeId"`
	StepID    string `json:"stepId"`
}

type KVTimerStore struct {
	kv kvstore.Store
}

func NewKVTimerStore(kv kvstore.Store) timerout.TimerStore {
	return &KVTimerStore{kv: kv}
}

func (s *KVTimerStore) Save(ctx context.Context, timer domain.ActiveTimer) error {
	record := persistedTimer{
		ActiveTimer:  &timerPointer{OutcomeID: timer.OutcomeID, StepID: timer.StepID},
		TimerSeconds: timer.ElapsedSec,
	}
	if !s.kv.Set(ctx, activeTimerKey, record) {
		return fmt.Errorf("save active timer: store rejected write")
	}
	return nil
}

func (s *KVTimerStore) Load(ctx context.Context) (domain.ActiveTimer, error) {
	var record persistedTimer
	if !s.kv.Get(ctx, activeTimerKey, &record) {
		return domain.ActiveTimer{}, apperrors.ErrNoActiveTimer
	}
	if record.ActiveTimer == nil || record.ActiveTimer.StepID == "" {
		return domain.ActiveTimer{}, apperrors.ErrNoActiveTimer
	}
	return domain.ActiveTimer{
		OutcomeID:  record.ActiveTimer.OutcomeID,
		StepID:     record.ActiveTimer.StepID,
		ElapsedSec: record.TimerSeconds,
	}, nil
}

func (s *KVTimerStore) Clear(ctx context.Context) error {
	s.kv.Remove(ctx, activeTimerKey)
	return nil
}
