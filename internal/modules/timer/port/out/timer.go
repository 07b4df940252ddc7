package out

import (
	"context"

	"tempo/internal/modules/timer/domain"
)

// TimerStore persists the single active timer. Load returns
// apperrors.ErrNoActiveTimer when nothing is running.
type TimerStore interface {
	Save(ctx context.Context, timer domain.ActiveTimer) error
	Load(ctx context.Context) (domain.ActiveTimer, error)
	Clear(ctx context.Context) error
}

type BankStore interface {
	Balance(ctx context.Context) (int, error)
	SetBalance(ctx context.Context, minutes int) error
}
