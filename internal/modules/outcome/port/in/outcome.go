package in

import (
	"context"

	"tempo/internal/modules/outcome/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.AddOutcomeInput) (dto.OutcomeOutput, error)
	Rename(ctx context.Context, input dto.RenameOutcomeInput) (dto.OutcomeOutput, error)
	Delete(ctx context.Context, outcomeID string) error
	List(ctx context.Context) ([]dto.OutcomeOutput, error)
	Get(ctx context.Context, outcomeID string) (dto.OutcomeOutput, error)

	AddStep(ctx context.Context, input dto.AddStepInput) (dto.StepOutput, error)
	EditStep(ctx context.Context, input dto.EditStepInput) (dto.StepOutput, error)
	DeleteStep(ctx context.Context, outcomeID, stepID string) error
	GetStep(ctx context.Context, outcomeID, stepID string) (dto.StepOutput, error)

	// RecordPause and CompleteStep are the timer module's write path into
	// step time tracking.
	RecordPause(ctx context.Context, input dto.RecordPauseInput) (dto.StepOutput, error)
	CompleteStep(ctx context.Context, input dto.CompleteStepInput) (dto.StepOutput, error)

	Balances(ctx context.Context, bankMin int) (dto.BalancesOutput, error)

	Snapshot(ctx context.Context) ([]dto.OutcomeRecord, error)
	Restore(ctx context.Context, records []dto.OutcomeRecord) error
}
