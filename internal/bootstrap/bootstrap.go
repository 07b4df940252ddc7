package bootstrap

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	archiveinadapter "tempo/internal/modules/archive/adapter/in"
	archiveoutadapter "tempo/internal/modules/archive/adapter/out"
	archiveservice "tempo/internal/modules/archive/service"
	archiveusecase "tempo/internal/modules/archive/usecase"
	notesinadapter "tempo/internal/modules/notes/adapter/in"
	notesoutadapter "tempo/internal/modules/notes/adapter/out"
	notesservice "tempo/internal/modules/notes/service"
	notesusecase "tempo/internal/modules/notes/usecase"
	outcomeinadapter "tempo/internal/modules/outcome/adapter/in"
	outcomeoutadapter "tempo/internal/modules/outcome/adapter/out"
	outcomeservice "tempo/internal/modules/outcome/service"
	outcomeusecase "tempo/internal/modules/outcome/usecase"
	timerinadapter "tempo/internal/modules/timer/adapter/in"
	timeroutadapter "tempo/internal/modules/timer/adapter/out"
	timerservice "tempo/internal/modules/timer/service"
	timerusecase "tempo/internal/modules/timer/usecase"
	"tempo/internal/platform/clock"
	"tempo/internal/platform/config"
	"tempo/internal/platform/id"
	"tempo/internal/platform/kvstore"
	"tempo/internal/platform/tx"
	uiapp "tempo/internal/ui/app"
)

type App struct {
	Config config.Config
	Store  kvstore.Store

	OutcomeCLI outcomeinadapter.CLIHandler
	TimerCLI   timerinadapter.CLIHandler
	NotesCLI   notesinadapter.CLIHandler
	ArchiveCLI archiveinadapter.CLIHandler
}

func New(cfg config.Config, log zerolog.Logger) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}
	kv := kvstore.NewTiered(cfg.DBPath, log)
	if !kv.Available() {
		log.Warn().Msg("persistence degraded: state is memory-only for this run")
	}

	outcomeSvc := outcomeservice.NewOutcomeService(ids, outcomeoutadapter.NewKVOutcomeStore(kv, clk))
	outcomeUC := outcomeusecase.NewInteractor(outcomeSvc)

	timerSvc := timerservice.NewTimerService(
		timeroutadapter.NewKVTimerStore(kv),
		timeroutadapter.NewKVBankStore(kv),
		cfg.BorrowChunkMin,
	)
	timerUC := timerusecase.NewInteractor(timerSvc, outcomeUC)

	notesUC := notesusecase.NewInteractor(notesservice.NewNotesService(notesoutadapter.NewKVNoteStore(kv)), clk)

	archiveUC := archiveusecase.NewInteractor(
		archiveservice.NewArchiveService(clk),
		archiveoutadapter.NewFileArchiveStore(),
		outcomeUC,
		notesUC,
		timerUC,
		tx.NoopManager{},
	)

	return &App{
		Config:     cfg,
		Store:      kv,
		OutcomeCLI: outcomeinadapter.NewCLIHandler(outcomeUC),
		TimerCLI:   timerinadapter.NewCLIHandler(timerUC),
		NotesCLI:   notesinadapter.NewCLIHandler(notesUC),
		ArchiveCLI: archiveinadapter.NewCLIHandler(archiveUC),
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(
		app.OutcomeCLI,
		app.TimerCLI,
		app.NotesCLI,
		app.ArchiveCLI,
		app.Store.Tier(),
		app.Config.TickInterval,
	)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
