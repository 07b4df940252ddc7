package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"

	notesdto "tempo/internal/modules/notes/dto"
	outcomedto "tempo/internal/modules/outcome/dto"
)

// TestExportGolden pins the on-disk export format. Regenerate with
// `go test ./internal/modules/archive/usecase -update` after deliberate
// format changes.
func TestExportGolden(t *testing.T) {
	t.Parallel()
	f := newFixture(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	out, err := f.outcomes.Add(ctx, outcomedto.AddOutcomeInput{Title: "Write report"})
	if err != nil {
		t.Fatalf("add outcome: %v", err)
	}
	draft, err := f.outcomes.AddStep(ctx, outcomedto.AddStepInput{OutcomeID: out.ID, Title: "Draft", EstimatedMin: 30})
	if err != nil {
		t.Fatalf("add step: %v", err)
	}
	edit, err := f.outcomes.AddStep(ctx, outcomedto.AddStepInput{OutcomeID: out.ID, Title: "Edit", EstimatedMin: 15})
	if err != nil {
		t.Fatalf("add step: %v", err)
	}
	if _, err := f.outcomes.CompleteStep(ctx, outcomedto.CompleteStepInput{OutcomeID: out.ID, StepID: draft.ID, FinalActiveMin: 25}); err != nil {
		t.Fatalf("complete step: %v", err)
	}
	if _, err := f.outcomes.RecordPause(ctx, outcomedto.RecordPauseInput{OutcomeID: out.ID, StepID: edit.ID, Minutes: 5}); err != nil {
		t.Fatalf("record pause: %v", err)
	}
	if _, err := f.notes.Put(ctx, notesdto.PutInput{OutcomeID: out.ID, StepID: draft.ID, Date: "2026-03-01", Text: "first draft done"}); err != nil {
		t.Fatalf("put note: %v", err)
	}
	f.bank.minutes = 12

	path := filepath.Join(t.TempDir(), "export.json")
	if _, err := f.archive.Export(ctx, path); err != nil {
		t.Fatalf("export: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}

	g := goldie.New(t)
	g.Assert(t, "export", raw)
}
