package out

import "context"

// NoteStore persists the full note map, keyed by the composite
// outcomeID/stepID/date string.
type NoteStore interface {
	Load(ctx context.Context) (map[string]string, error)
	Save(ctx context.Context, notes map[string]string) error
}
