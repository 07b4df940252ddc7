package service

import (
	"context"

	"tempo/internal/modules/timer/domain"
	timerout "tempo/internal/modules/timer/port/out"
	apperrors "tempo/internal/platform/errors"
)

// TimerService owns the active-timer pointer and the time bank. Step
// bookkeeping lives in the outcome module; the usecase bridges the two.
type TimerService struct {
	timers         timerout.TimerStore
	bank           timerout.BankStore
	borrowChunkMin int
}

func NewTimerService(timers timerout.TimerStore, bank timerout.BankStore, borrowChunkMin int) *TimerService {
	if borrowChunkMin <= 0 {
		borrowChunkMin = 10
	}
	return &TimerService{timers: timers, bank: bank, borrowChunkMin: borrowChunkMin}
}

func (s *TimerService) Active(ctx context.Context) (domain.ActiveTimer, error) {
	return s.timers.Load(ctx)
}

// SetActive repoints the timer at a step with a fresh elapsed counter.
func (s *TimerService) SetActive(ctx context.Context, outcomeID, stepID string) (domain.ActiveTimer, error) {
	timer := domain.ActiveTimer{OutcomeID: outcomeID, StepID: stepID}
	if err := s.timers.Save(ctx, timer); err != nil {
		return domain.ActiveTimer{}, err
	}
	return timer, nil
}

func (s *TimerService) Clear(ctx context.Context) error {
	return s.timers.Clear(ctx)
}

func (s *TimerService) Tick(ctx context.Context) (domain.ActiveTimer, error) {
	timer, err := s.timers.Load(ctx)
	if err != nil {
		return domain.ActiveTimer{}, err
	}
	timer.ElapsedSec++
	if err := s.timers.Save(ctx, timer); err != nil {
		return domain.ActiveTimer{}, err
	}
	return timer, nil
}

// Borrow spends one bank chunk to extend the running timer. Rejected with
// no mutation unless a timer is active and the bank covers the chunk.
func (s *TimerService) Borrow(ctx context.Context) (domain.ActiveTimer, int, error) {
	timer, err := s.timers.Load(ctx)
	if err != nil {
		return domain.ActiveTimer{}, 0, err
	}
	balance, err := s.bank.Balance(ctx)
	if err != nil {
		return domain.ActiveTimer{}, 0, err
	}
	if balance < s.borrowChunkMin {
		return domain.ActiveTimer{}, 0, apperrors.ErrInsufficientBank
	}

	balance -= s.borrowChunkMin
	timer.ElapsedSec += s.borrowChunkMin * 60
	if err := s.bank.SetBalance(ctx, balance); err != nil {
		return domain.ActiveTimer{}, 0, err
	}
	if err := s.timers.Save(ctx, timer); err != nil {
		return domain.ActiveTimer{}, 0, err
	}
	return timer, balance, nil
}

func (s *TimerService) Bank(ctx context.Context) (int, error) {
	return s.bank.Balance(ctx)
}

func (s *TimerService) SetBank(ctx context.Context, minutes int) error {
	return s.bank.SetBalance(ctx, minutes)
}
