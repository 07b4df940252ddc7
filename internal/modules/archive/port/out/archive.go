package out

import (
	"context"

	"tempo/internal/modules/archive/dto"
)

// FileStore reads and writes archive documents on disk.
type FileStore interface {
	Write(ctx context.Context, path string, doc dto.Document) error
	Read(ctx context.Context, path string) ([]byte, error)
}
