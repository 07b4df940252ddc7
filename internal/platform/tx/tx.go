package tx

import "context"

// Manager wraps an all-or-nothing boundary around multi-store operations.
// Archive import runs inside one so a failed restore leaves no partial state.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
