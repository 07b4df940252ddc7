package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	outcomedomain "tempo/internal/modules/outcome/domain"
	outcomedto "tempo/internal/modules/outcome/dto"
	outcomein "tempo/internal/modules/outcome/port/in"
	outcomeservice "tempo/internal/modules/outcome/service"
	outcomeusecase "tempo/internal/modules/outcome/usecase"
	timerdomain "tempo/internal/modules/timer/domain"
	"tempo/internal/modules/timer/dto"
	timerin "tempo/internal/modules/timer/port/in"
	"tempo/internal/modules/timer/service"
	"tempo/internal/modules/timer/usecase"
	apperrors "tempo/internal/platform/errors"
)

type fakeID struct{ n int }

func (f *fakeID) New() string {
	f.n++
	return fmt.Sprintf("id-%d", f.n)
}

type fakeOutcomeStore struct {
	outcomes []outcomedomain.Outcome
}

func (f *fakeOutcomeStore) Load(context.Context) ([]outcomedomain.Outcome, error) {
	return f.outcomes, nil
}

func (f *fakeOutcomeStore) Save(_ context.Context, outcomes []outcomedomain.Outcome) error {
	f.outcomes = outcomes
	return nil
}

type fakeTimerStore struct {
	timer *timerdomain.ActiveTimer
}

func (f *fakeTimerStore) Save(_ context.Context, t timerdomain.ActiveTimer) error {
	f.timer = &t
	return nil
}

func (f *fakeTimerStore) Load(context.Context) (timerdomain.ActiveTimer, error) {
	if f.timer == nil {
		return timerdomain.ActiveTimer{}, apperrors.ErrNoActiveTimer
	}
	return *f.timer, nil
}

func (f *fakeTimerStore) Clear(context.Context) error {
	f.timer = nil
	return nil
}

type fakeBankStore struct {
	minutes int
}

func (f *fakeBankStore) Balance(context.Context) (int, error) {
	return f.minutes, nil
}

func (f *fakeBankStore) SetBalance(_ context.Context, minutes int) error {
	f.minutes = minutes
	return nil
}

type fixture struct {
	uc       timerin.Usecase
	outcomes outcomein.Usecase
	timers   *fakeTimerStore
	bank     *fakeBankStore
}

func newFixture() *fixture {
	outcomes := outcomeusecase.NewInteractor(outcomeservice.NewOutcomeService(&fakeID{}, &fakeOutcomeStore{}))
	timers := &fakeTimerStore{}
	bank := &fakeBankStore{}
	uc := usecase.NewInteractor(service.NewTimerService(timers, bank, 10), outcomes)
	return &fixture{uc: uc, outcomes: outcomes, timers: timers, bank: bank}
}

func (f *fixture) addStep(t *testing.T, est int) (outcomeID, stepID string) {
	t.Helper()
	ctx := context.Background()
	out, err := f.outcomes.Add(ctx, outcomedto.AddOutcomeInput{Title: "Outcome"})
	if err != nil {
		t.Fatalf("add outcome: %v", err)
	}
	step, err := f.outcomes.AddStep(ctx, outcomedto.AddStepInput{OutcomeID: out.ID, Title: "Step", EstimatedMin: est})
	if err != nil {
		t.Fatalf("add step: %v", err)
	}
	return out.ID, step.ID
}

func TestStartAndTick(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	oID, sID := f.addStep(t, 30)

	started, err := f.uc.Start(ctx, dto.StartInput{OutcomeID: oID, StepID: sID})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.StepID != sID || started.ElapsedSec != 0 {
		t.Fatalf("unexpected start output: %+v", started)
	}

	for i := 0; i < 3; i++ {
		if _, err := f.uc.Tick(ctx); err != nil {
			t.Fatalf("tick: %v", err)
		}
	}
	status, err := f.uc.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Active || status.ElapsedSec != 3 {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.StepTitle != "Step" || status.OutcomeTitle != "Outcome" {
		t.Fatalf("status should carry titles: %+v", status)
	}
}

func TestStartSameStepIsNoOp(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	oID, sID := f.addStep(t, 30)

	f.uc.Start(ctx, dto.StartInput{OutcomeID: oID, StepID: sID})
	f.timers.timer.ElapsedSec = 90

	again, err := f.uc.Start(ctx, dto.StartInput{OutcomeID: oID, StepID: sID})
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if again.ElapsedSec != 90 {
		t.Fatalf("restarting the same step should keep the counter, got %d", again.ElapsedSec)
	}
}

func TestStartSwitchAutoPausesPreviousStep(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	oID, firstStep := f.addStep(t, 30)
	second, err := f.outcomes.AddStep(ctx, outcomedto.AddStepInput{OutcomeID: oID, Title: "Second", EstimatedMin: 15})
	if err != nil {
		t.Fatalf("add second step: %v", err)
	}

	f.uc.Start(ctx, dto.StartInput{OutcomeID: oID, StepID: firstStep})
	f.timers.timer.ElapsedSec = 125 // rounds up to 3 minutes

	switched, err := f.uc.Start(ctx, dto.StartInput{OutcomeID: oID, StepID: second.ID})
	if err != nil {
		t.Fatalf("switch: %v", err)
	}
	if switched.StepID != second.ID || switched.ElapsedSec != 0 {
		t.Fatalf("unexpected switch output: %+v", switched)
	}

	prev, err := f.outcomes.GetStep(ctx, oID, firstStep)
	if err != nil {
		t.Fatalf("get step: %v", err)
	}
	if prev.TimeSpentMin != 3 {
		t.Fatalf("previous step time spent = %d, want 3", prev.TimeSpentMin)
	}
}

func TestStartCompletedStepRejected(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	oID, sID := f.addStep(t, 30)
	if _, err := f.uc.Complete(ctx, oID, sID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := f.uc.Start(ctx, dto.StartInput{OutcomeID: oID, StepID: sID}); !errors.Is(err, apperrors.ErrStepCompleted) {
		t.Fatalf("starting a completed step should fail, got %v", err)
	}
}

func TestPauseRoundsUpAndClearsTimer(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	oID, sID := f.addStep(t, 30)

	f.uc.Start(ctx, dto.StartInput{OutcomeID: oID, StepID: sID})
	f.timers.timer.ElapsedSec = 61

	paused, err := f.uc.Pause(ctx)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if paused.MinutesAdded != 2 || paused.TimeSpentMin != 2 {
		t.Fatalf("unexpected pause output: %+v", paused)
	}
	if f.timers.timer != nil {
		t.Fatalf("pause should clear the timer")
	}
	if _, err := f.uc.Pause(ctx); !errors.Is(err, apperrors.ErrNoActiveTimer) {
		t.Fatalf("pausing without a timer should fail, got %v", err)
	}
}

func TestCompleteFoldsRunningTimerIntoActual(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	oID, sID := f.addStep(t, 30)

	// Accumulate 5 paused minutes, then complete with 125s on the clock.
	f.uc.Start(ctx, dto.StartInput{OutcomeID: oID, StepID: sID})
	f.timers.timer.ElapsedSec = 300
	f.uc.Pause(ctx)
	f.uc.Start(ctx, dto.StartInput{OutcomeID: oID, StepID: sID})
	f.timers.timer.ElapsedSec = 125

	done, err := f.uc.Complete(ctx, oID, sID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.ActualMin != 8 {
		t.Fatalf("actual = %d, want 8", done.ActualMin)
	}
	if done.BalanceMin != 22 {
		t.Fatalf("balance = %d, want 22", done.BalanceMin)
	}
	if f.timers.timer != nil {
		t.Fatalf("completing the running step should clear the timer")
	}
	step, _ := f.outcomes.GetStep(ctx, oID, sID)
	if step.TimeSpentMin != 0 {
		t.Fatalf("time spent should reset after completion, got %d", step.TimeSpentMin)
	}
}

func TestCompleteOtherStepLeavesTimerRunning(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	oID, running := f.addStep(t, 30)
	other, err := f.outcomes.AddStep(ctx, outcomedto.AddStepInput{OutcomeID: oID, Title: "Other", EstimatedMin: 20})
	if err != nil {
		t.Fatalf("add step: %v", err)
	}

	f.uc.Start(ctx, dto.StartInput{OutcomeID: oID, StepID: running})
	f.timers.timer.ElapsedSec = 100

	done, err := f.uc.Complete(ctx, oID, other.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.ActualMin != 0 {
		t.Fatalf("idle step actual = %d, want 0", done.ActualMin)
	}
	if f.timers.timer == nil || f.timers.timer.StepID != running {
		t.Fatalf("unrelated completion should leave the timer running")
	}
}

func TestBorrowRequiresActiveTimerAndFunds(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	oID, sID := f.addStep(t, 30)

	f.bank.minutes = 15
	if _, err := f.uc.Borrow(ctx); !errors.Is(err, apperrors.ErrNoActiveTimer) {
		t.Fatalf("borrow without a timer should fail, got %v", err)
	}

	f.uc.Start(ctx, dto.StartInput{OutcomeID: oID, StepID: sID})

	f.bank.minutes = 5
	if _, err := f.uc.Borrow(ctx); !errors.Is(err, apperrors.ErrInsufficientBank) {
		t.Fatalf("underfunded borrow should fail, got %v", err)
	}
	if f.bank.minutes != 5 || f.timers.timer.ElapsedSec != 0 {
		t.Fatalf("rejected borrow must not mutate state: bank=%d elapsed=%d", f.bank.minutes, f.timers.timer.ElapsedSec)
	}

	f.bank.minutes = 15
	out, err := f.uc.Borrow(ctx)
	if err != nil {
		t.Fatalf("borrow: %v", err)
	}
	if out.BankMin != 5 || out.ElapsedSec != 600 {
		t.Fatalf("unexpected borrow output: %+v", out)
	}
}

func TestBalanceCombinesOutcomesAndBank(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	oID, sID := f.addStep(t, 30)
	f.uc.Start(ctx, dto.StartInput{OutcomeID: oID, StepID: sID})
	f.timers.timer.ElapsedSec = 600 // 10 minutes
	f.uc.Complete(ctx, oID, sID)
	f.bank.minutes = 7

	balances, err := f.uc.Balance(ctx)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balances.SumMin != 20 || balances.BankMin != 7 || balances.GlobalMin != 27 {
		t.Fatalf("unexpected balances: %+v", balances)
	}
}

func TestRestoreBankClearsTimer(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	oID, sID := f.addStep(t, 30)
	f.uc.Start(ctx, dto.StartInput{OutcomeID: oID, StepID: sID})

	if err := f.uc.RestoreBank(ctx, 40); err != nil {
		t.Fatalf("restore bank: %v", err)
	}
	if f.bank.minutes != 40 {
		t.Fatalf("bank = %d, want 40", f.bank.minutes)
	}
	if f.timers.timer != nil {
		t.Fatalf("restore should drop the running timer")
	}
}
