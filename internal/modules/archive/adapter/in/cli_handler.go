package in

import (
	"context"

	"tempo/internal/modules/archive/dto"
	archivein "tempo/internal/modules/archive/port/in"
)

type CLIHandler struct {
	usecase archivein.Usecase
}

func NewCLIHandler(usecase archivein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Export(ctx context.Context, path string) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, path)
}

func (h CLIHandler) Import(ctx context.Context, path string) (dto.ImportOutput, error) {
	return h.usecase.Import(ctx, path)
}
