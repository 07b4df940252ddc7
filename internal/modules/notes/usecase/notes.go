package usecase

import (
	"context"

	"tempo/internal/modules/notes/domain"
	"tempo/internal/modules/notes/dto"
	notesin "tempo/internal/modules/notes/port/in"
	"tempo/internal/modules/notes/service"
	"tempo/internal/platform/clock"
)

type Interactor struct {
	svc *service.NotesService
	clk clock.Clock
}

func NewInteractor(svc *service.NotesService, clk clock.Clock) notesin.Usecase {
	return &Interactor{svc: svc, clk: clk}
}

func (i *Interactor) Put(ctx context.Context, input dto.PutInput) (dto.NoteOutput, error) {
	date := input.Date
	if date == "" {
		date = i.clk.Now().Format(domain.DateLayout)
	}
	note := domain.Note{OutcomeID: input.OutcomeID, StepID: input.StepID, Date: date, Text: input.Text}
	if err := i.svc.Put(ctx, note); err != nil {
		return dto.NoteOutput{}, err
	}
	return toOutput(note), nil
}

func (i *Interactor) Get(ctx context.Context, outcomeID, stepID, date string) (dto.NoteOutput, error) {
	if date == "" {
		date = i.clk.Now().Format(domain.DateLayout)
	}
	note, err := i.svc.Get(ctx, outcomeID, stepID, date)
	if err != nil {
		return dto.NoteOutput{}, err
	}
	return toOutput(note), nil
}

func (i *Interactor) ForStep(ctx context.Context, outcomeID, stepID string) ([]dto.NoteOutput, error) {
	notes, err := i.svc.ForStep(ctx, outcomeID, stepID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NoteOutput, len(notes))
	for idx, n := range notes {
		out[idx] = toOutput(n)
	}
	return out, nil
}

func (i *Interactor) All(ctx context.Context) (map[string]string, error) {
	return i.svc.All(ctx)
}

func (i *Interactor) Restore(ctx context.Context, notes map[string]string) error {
	return i.svc.Replace(ctx, notes)
}

func toOutput(n domain.Note) dto.NoteOutput {
	return dto.NoteOutput{OutcomeID: n.OutcomeID, StepID: n.StepID, Date: n.Date, Text: n.Text}
}
