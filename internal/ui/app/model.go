package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	archivedto "tempo/internal/modules/archive/dto"
	notesdto "tempo/internal/modules/notes/dto"
	outcomedto "tempo/internal/modules/outcome/dto"
	timerdto "tempo/internal/modules/timer/dto"
	apperrors "tempo/internal/platform/errors"
	"tempo/internal/platform/kvstore"
	"tempo/internal/ui/components"
	"tempo/internal/ui/theme"
	notesview "tempo/internal/ui/views/notes"
	outcomesview "tempo/internal/ui/views/outcomes"
	timerview "tempo/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type outcomePort interface {
	List(ctx context.Context) ([]outcomedto.OutcomeOutput, error)
	Add(ctx context.Context, title string) (outcomedto.OutcomeOutput, error)
	Rename(ctx context.Context, outcomeID, title string) (outcomedto.OutcomeOutput, error)
	Delete(ctx context.Context, outcomeID string) error
	AddStep(ctx context.Context, outcomeID, title string, estimatedMin int) (outcomedto.StepOutput, error)
	EditStep(ctx context.Context, outcomeID, stepID, title string, estimatedMin int) (outcomedto.StepOutput, error)
	DeleteStep(ctx context.Context, outcomeID, stepID string) error
}

type timerPort interface {
	Start(ctx context.Context, outcomeID, stepID string) (timerdto.TimerOutput, error)
	Pause(ctx context.Context) (timerdto.PauseOutput, error)
	Complete(ctx context.Context, outcomeID, stepID string) (timerdto.CompleteOutput, error)
	Tick(ctx context.Context) (timerdto.TimerOutput, error)
	Borrow(ctx context.Context) (timerdto.BorrowOutput, error)
	Status(ctx context.Context) (timerdto.StatusOutput, error)
	Balance(ctx context.Context) (outcomedto.BalancesOutput, error)
}

type notesPort interface {
	Put(ctx context.Context, outcomeID, stepID, date, text string) (notesdto.NoteOutput, error)
	Get(ctx context.Context, outcomeID, stepID, date string) (notesdto.NoteOutput, error)
	ForStep(ctx context.Context, outcomeID, stepID string) ([]notesdto.NoteOutput, error)
}

type archivePort interface {
	Export(ctx context.Context, path string) (archivedto.ExportOutput, error)
	Import(ctx context.Context, path string) (archivedto.ImportOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabOutcomes tabID = iota
	tabTimer
	tabNotes
	tabCount
)

var tabLabels = [tabCount]string{"Outcomes", "Timer", "Notes"}

// ─── async messages ───────────────────────────────────────────────────────────

type statusLoadedMsg struct {
	status timerdto.StatusOutput
	err    error
}

type timerStartedMsg struct {
	out timerdto.TimerOutput
	err error
}

type timerPausedMsg struct {
	out timerdto.PauseOutput
	err error
}

type stepCompletedMsg struct {
	out timerdto.CompleteOutput
	err error
}

type borrowedMsg struct {
	out timerdto.BorrowOutput
	err error
}

type tickMsg struct {
	gen int
}

type tickedMsg struct {
	gen int
	out timerdto.TimerOutput
	err error
}

// mutationDoneMsg covers outcome/step/archive edits submitted from the
// palette; everything re-renders from reloaded state afterwards.
type mutationDoneMsg struct {
	notice string
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Start    key.Binding
	Pause    key.Binding
	Complete key.Binding
	Borrow   key.Binding
	Notes    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start timer")),
		Pause:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause timer")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete step")),
		Borrow:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "borrow from bank")),
		Notes:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notes for step")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Complete},
		{k.Borrow, k.Notes},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the one-second
// tick loop, the help overlay and the command palette. Business logic is
// behind port interfaces; rendering is delegated to sub-views.
type Model struct {
	outcome outcomePort
	timer   timerPort
	archive archivePort

	outView   outcomesview.Model
	timerView timerview.Model
	notesView notesview.Model

	activeTab    tabID
	keys         keyMap
	help         help.Model
	showHelp     bool
	palette      components.Palette
	status       timerdto.StatusOutput
	tickGen      int
	tickInterval time.Duration
	tier         kvstore.Tier
	notice       string
	width        int
	height       int
}

func NewModel(
	outcome outcomePort,
	timer timerPort,
	notes notesPort,
	archive archivePort,
	tier kvstore.Tier,
	tickInterval time.Duration,
) Model {
	if tickInterval <= 0 {
		tickInterval = time.Second
	}
	notice := "ready"
	if tier != kvstore.TierSQLite {
		notice = "storage degraded (" + string(tier) + "): changes survive this run only"
	}
	return Model{
		outcome:      outcome,
		timer:        timer,
		archive:      archive,
		outView:      outcomesview.New(outcome),
		timerView:    timerview.New(timer),
		notesView:    notesview.New(notes),
		activeTab:    tabOutcomes,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		tickInterval: tickInterval,
		tier:         tier,
		notice:       notice,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.outView.Init(),
		m.timerView.Init(),
		m.loadStatusCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case statusLoadedMsg:
		if msg.err != nil {
			m.notice = "timer status: " + msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		m.timerView.SetStatus(m.status)
		m.tickGen++ // invalidate any older tick loop
		if m.status.Active {
			cmds = append(cmds, m.scheduleTick())
		}

	case timerStartedMsg:
		if msg.err != nil {
			m.notice = "start failed: " + msg.err.Error()
			return m, nil
		}
		m.notice = "timer started"
		m.activeTab = tabTimer
		cmds = append(cmds, m.loadStatusCmd(), m.outView.Reload(), m.timerView.Refresh())

	case timerPausedMsg:
		m.tickGen++ // stop the running loop
		if msg.err != nil {
			m.notice = "pause failed: " + msg.err.Error()
			return m, nil
		}
		m.notice = fmt.Sprintf("paused (+%dm banked on step)", msg.out.MinutesAdded)
		cmds = append(cmds, m.loadStatusCmd(), m.outView.Reload(), m.timerView.Refresh())

	case stepCompletedMsg:
		m.tickGen++
		if msg.err != nil {
			m.notice = "complete failed: " + msg.err.Error()
			return m, nil
		}
		m.notice = fmt.Sprintf("step done: actual %dm (%+dm)", msg.out.ActualMin, msg.out.BalanceMin)
		cmds = append(cmds, m.loadStatusCmd(), m.outView.Reload(), m.timerView.Refresh())

	case borrowedMsg:
		if msg.err != nil {
			m.notice = "borrow rejected: " + msg.err.Error()
			return m, nil
		}
		m.notice = fmt.Sprintf("borrowed 10m, bank now %dm", msg.out.BankMin)
		cmds = append(cmds, m.loadStatusCmd(), m.timerView.Refresh())

	case tickMsg:
		if msg.gen != m.tickGen || !m.status.Active {
			return m, nil
		}
		cmds = append(cmds, m.tickTimerCmd(msg.gen))

	case tickedMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		if msg.err != nil {
			// Timer vanished under us (paused elsewhere); fall idle.
			m.status.Active = false
			m.timerView.SetStatus(m.status)
			return m, nil
		}
		m.status.ElapsedSec = msg.out.ElapsedSec
		m.timerView.SetStatus(m.status)
		cmds = append(cmds, m.scheduleTick())

	case mutationDoneMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
			return m, nil
		}
		m.notice = msg.notice
		cmds = append(cmds, m.outView.Reload(), m.timerView.Refresh(), m.loadStatusCmd())

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.notice = "ready"

	case notesview.NoteSavedMsg:
		if msg.Err != nil {
			m.notice = "note: " + msg.Err.Error()
		} else {
			m.notice = "note saved"
		}

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if handled, model, cmd := m.handleGlobalKey(msg); handled {
			return model, cmd
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabOutcomes:
		m.outView, tabCmd = m.outView.Update(msg)
	case tabTimer:
		m.timerView, tabCmd = m.timerView.Update(msg)
	case tabNotes:
		m.notesView, tabCmd = m.notesView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	// Yield to a sub-view capturing text input.
	if m.activeTab == tabOutcomes && m.outView.Filtering() {
		return false, m, nil
	}
	if m.activeTab == tabNotes && m.notesView.Editing() {
		return false, m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return true, m, tea.Quit
	case "tab":
		m.activeTab = (m.activeTab + 1) % tabCount
		return true, m, nil
	case "shift+tab":
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		return true, m, nil
	case "?":
		m.showHelp = !m.showHelp
		return true, m, nil
	case ":":
		return true, m, m.palette.Open()
	case "s":
		if outcomeID, stepID, ok := m.outView.SelectedStepID(); ok {
			return true, m, m.startTimerCmd(outcomeID, stepID)
		}
		m.notice = "no step selected"
		return true, m, nil
	case "p":
		return true, m, m.pauseTimerCmd()
	case "c":
		if outcomeID, stepID, ok := m.outView.SelectedStepID(); ok {
			return true, m, m.completeStepCmd(outcomeID, stepID)
		}
		m.notice = "no step selected"
		return true, m, nil
	case "b":
		return true, m, m.borrowCmd()
	case "n":
		if outcomeID, stepID, ok := m.outView.SelectedStepID(); ok {
			m.activeTab = tabNotes
			return true, m, m.notesView.SetContext(outcomeID, stepID, m.outView.SelectedStepTitle())
		}
		m.notice = "no step selected"
		return true, m, nil
	}
	return false, m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabOutcomes:
		return m.outView.View()
	case tabTimer:
		return m.timerView.View()
	case tabNotes:
		return m.notesView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "tempo  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.notice
	if m.status.Active {
		left = theme.Hot.Render("▶ "+m.status.StepTitle+" "+formatClock(m.status.ElapsedSec)) + "  " + left
	}
	right := theme.Muted.Render(fmt.Sprintf("bank %dm  ?:help  tab:switch  :::palette  q:quit", m.status.BankMin))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	selectedOutcome, _ := m.outView.SelectedOutcomeID()

	rest := func(n int) string {
		return strings.TrimSpace(strings.TrimPrefix(input, strings.Join(parts[:n], " ")))
	}

	switch parts[0] {
	case "outcome:add":
		title := rest(1)
		if title == "" {
			m.notice = "usage: outcome:add <title>"
			return m, nil
		}
		return m, m.mutationCmd("outcome added", func(ctx context.Context) error {
			_, err := m.outcome.Add(ctx, title)
			return err
		})

	case "outcome:rename":
		title := rest(1)
		if selectedOutcome == "" || title == "" {
			m.notice = "usage: outcome:rename <title> (with an outcome selected)"
			return m, nil
		}
		return m, m.mutationCmd("outcome renamed", func(ctx context.Context) error {
			_, err := m.outcome.Rename(ctx, selectedOutcome, title)
			return err
		})

	case "outcome:delete":
		if selectedOutcome == "" {
			m.notice = "no outcome selected"
			return m, nil
		}
		return m, m.mutationCmd("outcome deleted", func(ctx context.Context) error {
			return m.outcome.Delete(ctx, selectedOutcome)
		})

	case "step:add":
		if selectedOutcome == "" || len(parts) < 3 {
			m.notice = "usage: step:add <est-min> <title> (with an outcome selected)"
			return m, nil
		}
		est, err := strconv.Atoi(parts[1])
		if err != nil || est <= 0 {
			m.notice = "estimate must be a positive number of minutes"
			return m, nil
		}
		title := rest(2)
		return m, m.mutationCmd("step added", func(ctx context.Context) error {
			_, err := m.outcome.AddStep(ctx, selectedOutcome, title, est)
			return err
		})

	case "step:edit":
		outcomeID, stepID, ok := m.outView.SelectedStepID()
		if !ok || len(parts) < 2 {
			m.notice = "usage: step:edit <est-min> [title] (with a step selected)"
			return m, nil
		}
		est, err := strconv.Atoi(parts[1])
		if err != nil || est <= 0 {
			m.notice = "estimate must be a positive number of minutes"
			return m, nil
		}
		title := ""
		if len(parts) > 2 {
			title = rest(2)
		}
		return m, m.mutationCmd("step updated", func(ctx context.Context) error {
			_, err := m.outcome.EditStep(ctx, outcomeID, stepID, title, est)
			return err
		})

	case "step:delete":
		outcomeID, stepID, ok := m.outView.SelectedStepID()
		if !ok {
			m.notice = "no step selected"
			return m, nil
		}
		return m, m.mutationCmd("step deleted", func(ctx context.Context) error {
			return m.outcome.DeleteStep(ctx, outcomeID, stepID)
		})

	case "step:done":
		outcomeID, stepID, ok := m.outView.SelectedStepID()
		if !ok {
			m.notice = "no step selected"
			return m, nil
		}
		return m, m.completeStepCmd(outcomeID, stepID)

	case "timer:start":
		outcomeID, stepID, ok := m.outView.SelectedStepID()
		if !ok {
			m.notice = "no step selected"
			return m, nil
		}
		return m, m.startTimerCmd(outcomeID, stepID)

	case "timer:pause":
		return m, m.pauseTimerCmd()

	case "bank:borrow":
		return m, m.borrowCmd()

	case "note":
		outcomeID, stepID, ok := m.outView.SelectedStepID()
		if !ok {
			m.notice = "no step selected"
			return m, nil
		}
		m.activeTab = tabNotes
		cmd := m.notesView.SetContext(outcomeID, stepID, m.outView.SelectedStepTitle())
		return m, cmd

	case "export":
		if len(parts) < 2 {
			m.notice = "usage: export <path>"
			return m, nil
		}
		path := rest(1)
		return m, m.mutationCmd("exported to "+path, func(ctx context.Context) error {
			_, err := m.archive.Export(ctx, path)
			return err
		})

	case "import":
		if len(parts) < 2 {
			m.notice = "usage: import <path>"
			return m, nil
		}
		path := rest(1)
		return m, m.mutationCmd("imported "+path, func(ctx context.Context) error {
			_, err := m.archive.Import(ctx, path)
			return err
		})
	}

	m.notice = "unknown command: " + parts[0]
	return m, nil
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) loadStatusCmd() tea.Cmd {
	port := m.timer
	return func() tea.Msg {
		status, err := port.Status(context.Background())
		return statusLoadedMsg{status: status, err: err}
	}
}

func (m Model) startTimerCmd(outcomeID, stepID string) tea.Cmd {
	port := m.timer
	return func() tea.Msg {
		out, err := port.Start(context.Background(), outcomeID, stepID)
		return timerStartedMsg{out: out, err: err}
	}
}

func (m Model) pauseTimerCmd() tea.Cmd {
	port := m.timer
	return func() tea.Msg {
		out, err := port.Pause(context.Background())
		if err != nil && err == apperrors.ErrNoActiveTimer {
			return timerPausedMsg{err: fmt.Errorf("nothing running")}
		}
		return timerPausedMsg{out: out, err: err}
	}
}

func (m Model) completeStepCmd(outcomeID, stepID string) tea.Cmd {
	port := m.timer
	return func() tea.Msg {
		out, err := port.Complete(context.Background(), outcomeID, stepID)
		return stepCompletedMsg{out: out, err: err}
	}
}

func (m Model) borrowCmd() tea.Cmd {
	port := m.timer
	return func() tea.Msg {
		out, err := port.Borrow(context.Background())
		return borrowedMsg{out: out, err: err}
	}
}

func (m Model) scheduleTick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(m.tickInterval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m Model) tickTimerCmd(gen int) tea.Cmd {
	port := m.timer
	return func() tea.Msg {
		out, err := port.Tick(context.Background())
		return tickedMsg{gen: gen, out: out, err: err}
	}
}

func (m Model) mutationCmd(notice string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{notice: notice}
	}
}

func (m *Model) propagateSize() {
	tabBarH := 2
	statusBarH := 2
	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}
	size := tea.WindowSizeMsg{Width: m.width, Height: contentH}
	m.outView, _ = m.outView.Update(size)
	m.timerView, _ = m.timerView.Update(size)
	m.notesView, _ = m.notesView.Update(size)
}
