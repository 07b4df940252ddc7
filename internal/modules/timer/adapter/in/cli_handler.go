package in

import (
	"context"

	outcomedto "tempo/internal/modules/outcome/dto"
	"tempo/internal/modules/timer/dto"
	timerin "tempo/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, outcomeID, stepID string) (dto.TimerOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{OutcomeID: outcomeID, StepID: stepID})
}

func (h CLIHandler) Pause(ctx context.Context) (dto.PauseOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Complete(ctx context.Context, outcomeID, stepID string) (dto.CompleteOutput, error) {
	return h.usecase.Complete(ctx, outcomeID, stepID)
}

func (h CLIHandler) Tick(ctx context.Context) (dto.TimerOutput, error) {
	return h.usecase.Tick(ctx)
}

func (h CLIHandler) Borrow(ctx context.Context) (dto.BorrowOutput, error) {
	return h.usecase.Borrow(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Balance(ctx context.Context) (outcomedto.BalancesOutput, error) {
	return h.usecase.Balance(ctx)
}
