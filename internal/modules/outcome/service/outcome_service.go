package service

import (
	"context"
	"strings"

	"tempo/internal/modules/outcome/domain"
	outcomeout "tempo/internal/modules/outcome/port/out"
	apperrors "tempo/internal/platform/errors"
	"tempo/internal/platform/id"
)

// OutcomeService owns all mutation of the outcome list. Every mutation is
// load-modify-save over the whole list, matching the single-document
// persistence model.
type OutcomeService struct {
	idGen id.Generator
	store outcomeout.OutcomeStore
}

func NewOutcomeService(idGen id.Generator, store outcomeout.OutcomeStore) *OutcomeService {
	return &OutcomeService{idGen: idGen, store: store}
}

func (s *OutcomeService) List(ctx context.Context) ([]domain.Outcome, error) {
	return s.store.Load(ctx)
}

func (s *OutcomeService) Get(ctx context.Context, outcomeID string) (domain.Outcome, error) {
	outcomes, err := s.store.Load(ctx)
	if err != nil {
		return domain.Outcome{}, err
	}
	for _, o := range outcomes {
		if o.ID == outcomeID {
			return o, nil
		}
	}
	return domain.Outcome{}, apperrors.ErrNotFound
}

func (s *OutcomeService) Add(ctx context.Context, title string) (domain.Outcome, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Outcome{}, apperrors.ErrInvalidInput
	}
	outcomes, err := s.store.Load(ctx)
	if err != nil {
		return domain.Outcome{}, err
	}
	outcome := domain.Outcome{ID: s.idGen.New(), Title: title}
	outcomes = append(outcomes, outcome)
	if err := s.store.Save(ctx, outcomes); err != nil {
		return domain.Outcome{}, err
	}
	return outcome, nil
}

func (s *OutcomeService) Rename(ctx context.Context, outcomeID, title string) (domain.Outcome, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Outcome{}, apperrors.ErrInvalidInput
	}
	return s.mutateOutcome(ctx, outcomeID, func(o *domain.Outcome) error {
		o.Title = title
		return nil
	})
}

func (s *OutcomeService) Delete(ctx context.Context, outcomeID string) error {
	outcomes, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	for i := range outcomes {
		if outcomes[i].ID == outcomeID {
			outcomes = append(outcomes[:i], outcomes[i+1:]...)
			return s.store.Save(ctx, outcomes)
		}
	}
	return apperrors.ErrNotFound
}

func (s *OutcomeService) AddStep(ctx context.Context, outcomeID, title string, estimatedMin int) (domain.Step, error) {
	title = strings.TrimSpace(title)
	if title == "" || estimatedMin <= 0 {
		return domain.Step{}, apperrors.ErrInvalidInput
	}
	step := domain.Step{ID: s.idGen.New(), Title: title, EstimatedMin: estimatedMin}
	_, err := s.mutateOutcome(ctx, outcomeID, func(o *domain.Outcome) error {
		o.Steps = append(o.Steps, step)
		return nil
	})
	if err != nil {
		return domain.Step{}, err
	}
	return step, nil
}

func (s *OutcomeService) EditStep(ctx context.Context, outcomeID, stepID, title string, estimatedMin int) (domain.Step, error) {
	return s.mutateStep(ctx, outcomeID, stepID, func(step *domain.Step) error {
		if step.Completed {
			return apperrors.ErrStepCompleted
		}
		if t := strings.TrimSpace(title); t != "" {
			step.Title = t
		}
		if estimatedMin > 0 {
			step.EstimatedMin = estimatedMin
		}
		return nil
	})
}

func (s *OutcomeService) DeleteStep(ctx context.Context, outcomeID, stepID string) error {
	_, err := s.mutateOutcome(ctx, outcomeID, func(o *domain.Outcome) error {
		if !o.RemoveStep(stepID) {
			return apperrors.ErrNotFound
		}
		return nil
	})
	return err
}

func (s *OutcomeService) GetStep(ctx context.Context, outcomeID, stepID string) (domain.Step, error) {
	outcome, err := s.Get(ctx, outcomeID)
	if err != nil {
		return domain.Step{}, err
	}
	step, ok := outcome.FindStep(stepID)
	if !ok {
		return domain.Step{}, apperrors.ErrNotFound
	}
	return *step, nil
}

// RecordPause folds paused minutes into the step's running total.
func (s *OutcomeService) RecordPause(ctx context.Context, outcomeID, stepID string, minutes int) (domain.Step, error) {
	if minutes < 0 {
		return domain.Step{}, apperrors.ErrInvalidInput
	}
	return s.mutateStep(ctx, outcomeID, stepID, func(step *domain.Step) error {
		if step.Completed {
			return apperrors.ErrStepCompleted
		}
		step.TimeSpentMin += minutes
		return nil
	})
}

func (s *OutcomeService) CompleteStep(ctx context.Context, outcomeID, stepID string, finalActiveMin int) (domain.Step, error) {
	if finalActiveMin < 0 {
		return domain.Step{}, apperrors.ErrInvalidInput
	}
	return s.mutateStep(ctx, outcomeID, stepID, func(step *domain.Step) error {
		if step.Completed {
			return apperrors.ErrStepCompleted
		}
		step.Complete(finalActiveMin)
		return nil
	})
}

// Replace swaps the entire outcome list, used by archive import.
func (s *OutcomeService) Replace(ctx context.Context, outcomes []domain.Outcome) error {
	return s.store.Save(ctx, outcomes)
}

func (s *OutcomeService) mutateOutcome(ctx context.Context, outcomeID string, fn func(*domain.Outcome) error) (domain.Outcome, error) {
	outcomes, err := s.store.Load(ctx)
	if err != nil {
		return domain.Outcome{}, err
	}
	for i := range outcomes {
		if outcomes[i].ID != outcomeID {
			continue
		}
		if err := fn(&outcomes[i]); err != nil {
			return domain.Outcome{}, err
		}
		if err := s.store.Save(ctx, outcomes); err != nil {
			return domain.Outcome{}, err
		}
		return outcomes[i], nil
	}
	return domain.Outcome{}, apperrors.ErrNotFound
}

func (s *OutcomeService) mutateStep(ctx context.Context, outcomeID, stepID string, fn func(*domain.Step) error) (domain.Step, error) {
	var result domain.Step
	_, err := s.mutateOutcome(ctx, outcomeID, func(o *domain.Outcome) error {
		step, ok := o.FindStep(stepID)
		if !ok {
			return apperrors.ErrNotFound
		}
		if err := fn(step); err != nil {
			return err
		}
		result = *step
		return nil
	})
	if err != nil {
		return domain.Step{}, err
	}
	return result, nil
}
