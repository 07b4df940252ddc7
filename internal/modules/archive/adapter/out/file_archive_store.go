package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tempo/internal/modules/archive/dto"
	archiveout "tempo/internal/modules/archive/port/out"
)

type FileArchiveStore struct{}

func NewFileArchiveStore() archiveout.FileStore {
	return &FileArchiveStore{}
}

func (s *FileArchiveStore) Write(_ context.Context, path string, doc dto.Document) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal archive: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}

func (s *FileArchiveStore) Read(_ context.Context, path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	return raw, nil
}
