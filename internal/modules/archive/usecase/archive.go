package usecase

import (
	"context"
	"fmt"

	"tempo/internal/modules/archive/dto"
	archivein "tempo/internal/modules/archive/port/in"
	archiveout "tempo/internal/modules/archive/port/out"
	"tempo/internal/modules/archive/service"
	notesin "tempo/internal/modules/notes/port/in"
	outcomein "tempo/internal/modules/outcome/port/in"
	timerin "tempo/internal/modules/timer/port/in"
	"tempo/internal/platform/tx"
)

type Interactor struct {
	svc      *service.ArchiveService
	files    archiveout.FileStore
	outcomes outcomein.Usecase
	notes    notesin.Usecase
	timer    timerin.Usecase
	txm      tx.Manager
}

func NewInteractor(
	svc *service.ArchiveService,
	files archiveout.FileStore,
	outcomes outcomein.Usecase,
	notes notesin.Usecase,
	timer timerin.Usecase,
	txm tx.Manager,
) archivein.Usecase {
	return &Interactor{svc: svc, files: files, outcomes: outcomes, notes: notes, timer: timer, txm: txm}
}

func (i *Interactor) Export(ctx context.Context, path string) (dto.ExportOutput, error) {
	if path == "" {
		return dto.ExportOutput{}, fmt.Errorf("export path is required")
	}
	outcomes, err := i.outcomes.Snapshot(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	notes, err := i.notes.All(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	bank, err := i.timer.Bank(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}

	doc := i.svc.Build(outcomes, notes, bank)
	if err := i.files.Write(ctx, path, doc); err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Path: path, Document: doc}, nil
}

// Import replaces outcomes, notes and the time bank from an export file.
// Parsing happens before any mutation, so a malformed document leaves the
// existing state untouched. The active timer is dropped on success.
func (i *Interactor) Import(ctx context.Context, path string) (dto.ImportOutput, error) {
	raw, err := i.files.Read(ctx, path)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	doc, err := i.svc.Parse(raw)
	if err != nil {
		return dto.ImportOutput{}, err
	}

	err = i.txm.Within(ctx, func(ctx context.Context) error {
		if err := i.outcomes.Restore(ctx, doc.Outcomes); err != nil {
			return err
		}
		if err := i.notes.Restore(ctx, doc.StepNotes); err != nil {
			return err
		}
		return i.timer.RestoreBank(ctx, doc.TimeBank)
	})
	if err != nil {
		return dto.ImportOutput{}, err
	}

	return dto.ImportOutput{
		Outcomes: len(doc.Outcomes),
		Notes:    len(doc.StepNotes),
		TimeBank: doc.TimeBank,
	}, nil
}
