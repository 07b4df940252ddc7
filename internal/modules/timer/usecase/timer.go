package usecase

import (
	"context"
	"errors"

	outcomedto "tempo/internal/modules/outcome/dto"
	outcomein "tempo/internal/modules/outcome/port/in"
	"tempo/internal/modules/timer/domain"
	"tempo/internal/modules/timer/dto"
	timerin "tempo/internal/modules/timer/port/in"
	"tempo/internal/modules/timer/service"
	apperrors "tempo/internal/platform/errors"
)

type Interactor struct {
	svc      *service.TimerService
	outcomes outcomein.Usecase
}

func NewInteractor(svc *service.TimerService, outcomes outcomein.Usecase) timerin.Usecase {
	return &Interactor{svc: svc, outcomes: outcomes}
}

// Start points the timer at a step. A previously running step is paused
// first, its elapsed time folded into TimeSpent, so at most one timer ever
// runs.
func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.TimerOutput, error) {
	step, err := i.outcomes.GetStep(ctx, input.OutcomeID, input.StepID)
	if err != nil {
		return dto.TimerOutput{}, err
	}
	if step.Completed {
		return dto.TimerOutput{}, apperrors.ErrStepCompleted
	}

	current, err := i.svc.Active(ctx)
	switch {
	case err == nil:
		if current.OutcomeID == input.OutcomeID && current.StepID == input.StepID {
			return toTimerOutput(current), nil
		}
		if _, err := i.pauseTimer(ctx, current); err != nil {
			return dto.TimerOutput{}, err
		}
	case !errors.Is(err, apperrors.ErrNoActiveTimer):
		return dto.TimerOutput{}, err
	}

	timer, err := i.svc.SetActive(ctx, input.OutcomeID, input.StepID)
	if err != nil {
		return dto.TimerOutput{}, err
	}
	return toTimerOutput(timer), nil
}

func (i *Interactor) Pause(ctx context.Context) (dto.PauseOutput, error) {
	timer, err := i.svc.Active(ctx)
	if err != nil {
		return dto.PauseOutput{}, err
	}
	return i.pauseTimer(ctx, timer)
}

func (i *Interactor) pauseTimer(ctx context.Context, timer domain.ActiveTimer) (dto.PauseOutput, error) {
	minutes := timer.ElapsedMinutes()
	step, err := i.outcomes.RecordPause(ctx, outcomedto.RecordPauseInput{
		OutcomeID: timer.OutcomeID,
		StepID:    timer.StepID,
		Minutes:   minutes,
	})
	if err != nil {
		return dto.PauseOutput{}, err
	}
	if err := i.svc.Clear(ctx); err != nil {
		return dto.PauseOutput{}, err
	}
	return dto.PauseOutput{
		OutcomeID:    timer.OutcomeID,
		StepID:       timer.StepID,
		MinutesAdded: minutes,
		TimeSpentMin: step.TimeSpentMin,
	}, nil
}

// Complete finishes a step. When the step is the active timer target, the
// running interval is folded into the actual total and the timer cleared;
// otherwise only accumulated paused minutes count.
func (i *Interactor) Complete(ctx context.Context, outcomeID, stepID string) (dto.CompleteOutput, error) {
	finalActiveMin := 0
	clearTimer := false

	timer, err := i.svc.Active(ctx)
	switch {
	case err == nil:
		if timer.OutcomeID == outcomeID && timer.StepID == stepID {
			finalActiveMin = timer.ElapsedMinutes()
			clearTimer = true
		}
	case !errors.Is(err, apperrors.ErrNoActiveTimer):
		return dto.CompleteOutput{}, err
	}

	step, err := i.outcomes.CompleteStep(ctx, outcomedto.CompleteStepInput{
		OutcomeID:      outcomeID,
		StepID:         stepID,
		FinalActiveMin: finalActiveMin,
	})
	if err != nil {
		return dto.CompleteOutput{}, err
	}
	if clearTimer {
		if err := i.svc.Clear(ctx); err != nil {
			return dto.CompleteOutput{}, err
		}
	}

	actual := 0
	if step.ActualMin != nil {
		actual = *step.ActualMin
	}
	return dto.CompleteOutput{
		OutcomeID:  outcomeID,
		StepID:     stepID,
		ActualMin:  actual,
		BalanceMin: step.EstimatedMin - actual,
	}, nil
}

func (i *Interactor) Tick(ctx context.Context) (dto.TimerOutput, error) {
	timer, err := i.svc.Tick(ctx)
	if err != nil {
		return dto.TimerOutput{}, err
	}
	return toTimerOutput(timer), nil
}

func (i *Interactor) Borrow(ctx context.Context) (dto.BorrowOutput, error) {
	timer, bank, err := i.svc.Borrow(ctx)
	if err != nil {
		return dto.BorrowOutput{}, err
	}
	return dto.BorrowOutput{BankMin: bank, ElapsedSec: timer.ElapsedSec}, nil
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	bank, err := i.svc.Bank(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	out := dto.StatusOutput{BankMin: bank}

	timer, err := i.svc.Active(ctx)
	if errors.Is(err, apperrors.ErrNoActiveTimer) {
		return out, nil
	}
	if err != nil {
		return dto.StatusOutput{}, err
	}

	out.Active = true
	out.OutcomeID = timer.OutcomeID
	out.StepID = timer.StepID
	out.ElapsedSec = timer.ElapsedSec
	if step, err := i.outcomes.GetStep(ctx, timer.OutcomeID, timer.StepID); err == nil {
		out.StepTitle = step.Title
	}
	if outcome, err := i.outcomes.Get(ctx, timer.OutcomeID); err == nil {
		out.OutcomeTitle = outcome.Title
	}
	return out, nil
}

func (i *Interactor) Balance(ctx context.Context) (outcomedto.BalancesOutput, error) {
	bank, err := i.svc.Bank(ctx)
	if err != nil {
		return outcomedto.BalancesOutput{}, err
	}
	return i.outcomes.Balances(ctx, bank)
}

func (i *Interactor) Bank(ctx context.Context) (int, error) {
	return i.svc.Bank(ctx)
}

// RestoreBank resets the bank and drops any running timer; archive import
// calls this so imported state never inherits a stale pointer.
func (i *Interactor) RestoreBank(ctx context.Context, minutes int) error {
	if err := i.svc.SetBank(ctx, minutes); err != nil {
		return err
	}
	return i.svc.Clear(ctx)
}

func toTimerOutput(t domain.ActiveTimer) dto.TimerOutput {
	return dto.TimerOutput{OutcomeID: t.OutcomeID, StepID: t.StepID, ElapsedSec: t.ElapsedSec}
}
