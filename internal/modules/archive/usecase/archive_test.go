package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	archiveout "tempo/internal/modules/archive/adapter/out"
	"tempo/internal/modules/archive/service"
	"tempo/internal/modules/archive/usecase"
	archivein "tempo/internal/modules/archive/port/in"
	notesin "tempo/internal/modules/notes/port/in"
	notesservice "tempo/internal/modules/notes/service"
	notesusecase "tempo/internal/modules/notes/usecase"
	outcomedomain "tempo/internal/modules/outcome/domain"
	outcomedto "tempo/internal/modules/outcome/dto"
	outcomein "tempo/internal/modules/outcome/port/in"
	outcomeservice "tempo/internal/modules/outcome/service"
	outcomeusecase "tempo/internal/modules/outcome/usecase"
	timerdomain "tempo/internal/modules/timer/domain"
	timerin "tempo/internal/modules/timer/port/in"
	timerservice "tempo/internal/modules/timer/service"
	timerusecase "tempo/internal/modules/timer/usecase"
	apperrors "tempo/internal/platform/errors"
	"tempo/internal/platform/tx"
)

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

type fakeID struct{ n int }

func (f *fakeID) New() string {
	f.n++
	return fmt.Sprintf("id-%d", f.n)
}

type fakeOutcomeStore struct {
	outcomes []outcomedomain.Outcome
}

func (f *fakeOutcomeStore) Load(context.Context) ([]outcomedomain.Outcome, error) {
	return f.outcomes, nil
}

func (f *fakeOutcomeStore) Save(_ context.Context, outcomes []outcomedomain.Outcome) error {
	f.outcomes = outcomes
	return nil
}

type fakeNoteStore struct {
	notes map[string]string
}

func (f *fakeNoteStore) Load(context.Context) (map[string]string, error) {
	if f.notes == nil {
		f.notes = map[string]string{}
	}
	return f.notes, nil
}

func (f *fakeNoteStore) Save(_ context.Context, notes map[string]string) error {
	f.notes = notes
	return nil
}

type fakeTimerStore struct {
	timer *timerdomain.ActiveTimer
}

func (f *fakeTimerStore) Save(_ context.Context, t timerdomain.ActiveTimer) error {
	f.timer = &t
	return nil
}

func (f *fakeTimerStore) Load(context.Context) (timerdomain.ActiveTimer, error) {
	if f.timer == nil {
		return timerdomain.ActiveTimer{}, apperrors.ErrNoActiveTimer
	}
	return *f.timer, nil
}

func (f *fakeTimerStore) Clear(context.Context) error {
	f.timer = nil
	return nil
}

type fakeBankStore struct {
	minutes int
}

func (f *fakeBankStore) Balance(context.Context) (int, error) {
	return f.minutes, nil
}

func (f *fakeBankStore) SetBalance(_ context.Context, minutes int) error {
	f.minutes = minutes
	return nil
}

type fixture struct {
	archive  archivein.Usecase
	outcomes outcomein.Usecase
	notes    notesin.Usecase
	timer    timerin.Usecase
	timers   *fakeTimerStore
	bank     *fakeBankStore
}

func newFixture(now time.Time) *fixture {
	clk := fakeClock{now: now}
	outcomes := outcomeusecase.NewInteractor(outcomeservice.NewOutcomeService(&fakeID{}, &fakeOutcomeStore{}))
	notes := notesusecase.NewInteractor(notesservice.NewNotesService(&fakeNoteStore{}), clk)
	timers := &fakeTimerStore{}
	bank := &fakeBankStore{}
	timer := timerusecase.NewInteractor(timerservice.NewTimerService(timers, bank, 10), outcomes)
	archive := usecase.NewInteractor(
		service.NewArchiveService(clk),
		archiveout.NewFileArchiveStore(),
		outcomes, notes, timer, tx.NoopManager{},
	)
	return &fixture{archive: archive, outcomes: outcomes, notes: notes, timer: timer, timers: timers, bank: bank}
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	source := newFixture(now)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "export.json")

	out, _ := source.outcomes.Add(ctx, outcomedto.AddOutcomeInput{Title: "Write report"})
	step, _ := source.outcomes.AddStep(ctx, outcomedto.AddStepInput{OutcomeID: out.ID, Title: "Draft", EstimatedMin: 30})
	source.outcomes.CompleteStep(ctx, outcomedto.CompleteStepInput{OutcomeID: out.ID, StepID: step.ID, FinalActiveMin: 25})
	source.bank.minutes = 12

	exported, err := source.archive.Export(ctx, path)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if exported.Document.TimeBank != 12 || exported.Document.ExportDate != "2026-03-14T09:00:00Z" {
		t.Fatalf("unexpected document: %+v", exported.Document)
	}

	target := newFixture(now)
	imported, err := target.archive.Import(ctx, path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported.Outcomes != 1 || imported.TimeBank != 12 {
		t.Fatalf("unexpected import output: %+v", imported)
	}

	restored, err := target.outcomes.Get(ctx, out.ID)
	if err != nil {
		t.Fatalf("get after import: %v", err)
	}
	if len(restored.Steps) != 1 || !restored.Steps[0].Completed || *restored.Steps[0].ActualMin != 25 {
		t.Fatalf("restored outcome mismatch: %+v", restored)
	}
	if target.bank.minutes != 12 {
		t.Fatalf("bank = %d, want 12", target.bank.minutes)
	}
}

func TestImportMalformedLeavesStateUntouched(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	cases := []struct {
		name string
		body string
	}{
		{"outcomes is a string", `{"outcomes": "not-an-array", "timeBank": 99}`},
		{"outcomes missing", `{"stepNotes": {}, "timeBank": 99}`},
		{"not json", `{{{`},
		{"outcomes is an object", `{"outcomes": {"id": "x"}}`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(now)
			existing, _ := f.outcomes.Add(ctx, outcomedto.AddOutcomeInput{Title: "Keep me"})
			f.bank.minutes = 3

			path := filepath.Join(t.TempDir(), "bad.json")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := f.archive.Import(ctx, path); !errors.Is(err, apperrors.ErrMalformedArchive) {
				t.Fatalf("expected malformed archive error, got %v", err)
			}
			if _, err := f.outcomes.Get(ctx, existing.ID); err != nil {
				t.Fatalf("existing outcome should survive a failed import: %v", err)
			}
			if f.bank.minutes != 3 {
				t.Fatalf("bank should be untouched, got %d", f.bank.minutes)
			}
		})
	}
}

func TestImportClearsActiveTimer(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "export.json")

	if _, err := f.archive.Export(ctx, path); err != nil {
		t.Fatalf("export: %v", err)
	}
	f.timers.timer = &timerdomain.ActiveTimer{OutcomeID: "o1", StepID: "s1", ElapsedSec: 42}

	if _, err := f.archive.Import(ctx, path); err != nil {
		t.Fatalf("import: %v", err)
	}
	if f.timers.timer != nil {
		t.Fatalf("import should drop the active timer")
	}
}

func TestImportMissingFile(t *testing.T) {
	t.Parallel()
	f := newFixture(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	if _, err := f.archive.Import(context.Background(), filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestExportRequiresPath(t *testing.T) {
	t.Parallel()
	f := newFixture(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	if _, err := f.archive.Export(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
