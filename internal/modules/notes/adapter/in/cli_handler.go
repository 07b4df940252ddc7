package in

import (
	"context"

	"tempo/internal/modules/notes/dto"
	notesin "tempo/internal/modules/notes/port/in"
)

type CLIHandler struct {
	usecase notesin.Usecase
}

func NewCLIHandler(usecase notesin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Put(ctx context.Context, outcomeID, stepID, date, text string) (dto.NoteOutput, error) {
	return h.usecase.Put(ctx, dto.PutInput{OutcomeID: outcomeID, StepID: stepID, Date: date, Text: text})
}

func (h CLIHandler) Get(ctx context.Context, outcomeID, stepID, date string) (dto.NoteOutput, error) {
	return h.usecase.Get(ctx, outcomeID, stepID, date)
}

func (h CLIHandler) ForStep(ctx context.Context, outcomeID, stepID string) ([]dto.NoteOutput, error) {
	return h.usecase.ForStep(ctx, outcomeID, stepID)
}
