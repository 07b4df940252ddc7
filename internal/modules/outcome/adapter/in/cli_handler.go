package in

import (
	"context"

	"tempo/internal/modules/outcome/dto"
	outcomein "tempo/internal/modules/outcome/port/in"
)

type CLIHandler struct {
	usecase outcomein.Usecase
}

func NewCLIHandler(usecase outcomein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, title string) (dto.OutcomeOutput, error) {
	return h.usecase.Add(ctx, dto.AddOutcomeInput{Title: title})
}

func (h CLIHandler) Rename(ctx context.Context, outcomeID, title string) (dto.OutcomeOutput, error) {
	return h.usecase.Rename(ctx, dto.RenameOutcomeInput{OutcomeID: outcomeID, Title: title})
}

func (h CLIHandler) Delete(ctx context.Context, outcomeID string) error {
	return h.usecase.Delete(ctx, outcomeID)
}

func (h CLIHandler) List(ctx context.Context) ([]dto.OutcomeOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, outcomeID string) (dto.OutcomeOutput, error) {
	return h.usecase.Get(ctx, outcomeID)
}

func (h CLIHandler) AddStep(ctx context.Context, outcomeID, title string, estimatedMin int) (dto.StepOutput, error) {
	return h.usecase.AddStep(ctx, dto.AddStepInput{OutcomeID: outcomeID, Title: title, EstimatedMin: estimatedMin})
}

func (h CLIHandler) EditStep(ctx context.Context, outcomeID, stepID, title string, estimatedMin int) (dto.StepOutput, error) {
	return h.usecase.EditStep(ctx, dto.EditStepInput{OutcomeID: outcomeID, StepID: stepID, Title: title, EstimatedMin: estimatedMin})
}

func (h CLIHandler) DeleteStep(ctx context.Context, outcomeID, stepID string) error {
	return h.usecase.DeleteStep(ctx, outcomeID, stepID)
}

func (h CLIHandler) Balances(ctx context.Context, bankMin int) (dto.BalancesOutput, error) {
	return h.usecase.Balances(ctx, bankMin)
}
