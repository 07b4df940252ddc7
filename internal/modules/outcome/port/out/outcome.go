package out

import (
	"context"

	"tempo/internal/modules/outcome/domain"
)

type OutcomeStore interface {
	Load(ctx context.Context) ([]domain.Outcome, error)
	Save(ctx context.Context, outcomes []domain.Outcome) error
}
