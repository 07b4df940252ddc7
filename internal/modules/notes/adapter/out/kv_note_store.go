package out

import (
	"context"
	"fmt"

	notesout "tempo/internal/modules/notes/port/out"
	"tempo/internal/platform/kvstore"
)

const stepNotesKey = "step_notes"

type KVNoteStore struct {
	kv kvstore.Store
}

func NewKVNoteStore(kv kvstore.Store) notesout.NoteStore {
	return &KVNoteStore{kv: kv}
}

func (s *KVNoteStore) Load(ctx context.Context) (map[string]string, error) {
	notes := map[string]string{}
	s.kv.Get(ctx, stepNotesKey, &notes)
	return notes, nil
}

func (s *KVNoteStore) Save(ctx context.Context, notes map[string]string) error {
	if !s.kv.Set(ctx, stepNotesKey, notes) {
		return fmt.Errorf("save step notes: store rejected write")
	}
	return nil
}
