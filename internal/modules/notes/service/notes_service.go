package service

import (
	"context"
	"sort"
	"strings"

	"tempo/internal/modules/notes/domain"
	notesout "tempo/internal/modules/notes/port/out"
	apperrors "tempo/internal/platform/errors"
)

type NotesService struct {
	store notesout.NoteStore
}

func NewNotesService(store notesout.NoteStore) *NotesService {
	return &NotesService{store: store}
}

func (s *NotesService) Put(ctx context.Context, note domain.Note) error {
	if note.OutcomeID == "" || note.StepID == "" || !domain.ValidDate(note.Date) {
		return apperrors.ErrInvalidInput
	}
	notes, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	key := domain.Key(note.OutcomeID, note.StepID, note.Date)
	if strings.TrimSpace(note.Text) == "" {
		delete(notes, key)
	} else {
		notes[key] = note.Text
	}
	return s.store.Save(ctx, notes)
}

func (s *NotesService) Get(ctx context.Context, outcomeID, stepID, date string) (domain.Note, error) {
	notes, err := s.store.Load(ctx)
	if err != nil {
		return domain.Note{}, err
	}
	text, ok := notes[domain.Key(outcomeID, stepID, date)]
	if !ok {
		return domain.Note{}, apperrors.ErrNotFound
	}
	return domain.Note{OutcomeID: outcomeID, StepID: stepID, Date: date, Text: text}, nil
}

// ForStep returns every dated note for a step, oldest first.
func (s *NotesService) ForStep(ctx context.Context, outcomeID, stepID string) ([]domain.Note, error) {
	notes, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	var result []domain.Note
	for key, text := range notes {
		oID, sID, date, ok := domain.ParseKey(key)
		if !ok || oID != outcomeID || sID != stepID {
			continue
		}
		result = append(result, domain.Note{OutcomeID: oID, StepID: sID, Date: date, Text: text})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

func (s *NotesService) All(ctx context.Context) (map[string]string, error) {
	return s.store.Load(ctx)
}

func (s *NotesService) Replace(ctx context.Context, notes map[string]string) error {
	if notes == nil {
		notes = map[string]string{}
	}
	return s.store.Save(ctx, notes)
}
