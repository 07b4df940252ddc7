package in

import (
	"context"

	outcomedto "tempo/internal/modules/outcome/dto"
	"tempo/internal/modules/timer/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.TimerOutput, error)
	Pause(ctx context.Context) (dto.PauseOutput, error)
	Complete(ctx context.Context, outcomeID, stepID string) (dto.CompleteOutput, error)
	Tick(ctx context.Context) (dto.TimerOutput, error)
	Borrow(ctx context.Context) (dto.BorrowOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Balance(ctx context.Context) (outcomedto.BalancesOutput, error)

	Bank(ctx context.Context) (int, error)
	RestoreBank(ctx context.Context, minutes int) error
}
