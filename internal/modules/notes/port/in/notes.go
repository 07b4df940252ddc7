package in

import (
	"context"

	"tempo/internal/modules/notes/dto"
)

type Usecase interface {
	Put(ctx context.Context, input dto.PutInput) (dto.NoteOutput, error)
	Get(ctx context.Context, outcomeID, stepID, date string) (dto.NoteOutput, error)
	ForStep(ctx context.Context, outcomeID, stepID string) ([]dto.NoteOutput, error)

	All(ctx context.Context) (map[string]string, error)
	Restore(ctx context.Context, notes map[string]string) error
}
