package outcomes

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	outcomedto "tempo/internal/modules/outcome/dto"
	"tempo/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type OutcomePort interface {
	List(ctx context.Context) ([]outcomedto.OutcomeOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type OutcomesLoadedMsg struct {
	Outcomes []outcomedto.OutcomeOutput
	Err      error
}

// ─── list items ──────────────────────────────────────────────────────────────

type outcomeItem struct {
	outcome outcomedto.OutcomeOutput
}

func (i outcomeItem) Title() string { return i.outcome.Title }
func (i outcomeItem) Description() string {
	return fmt.Sprintf("%s · est %dm · %d steps",
		formatBalance(i.outcome.BalanceMin), i.outcome.TotalEstimatedMin, len(i.outcome.Steps))
}
func (i outcomeItem) FilterValue() string { return i.outcome.Title }

type stepItem struct {
	step outcomedto.StepOutput
}

func (i stepItem) Title() string {
	if i.step.Completed {
		return "✓ " + i.step.Title
	}
	return "· " + i.step.Title
}

func (i stepItem) Description() string {
	if i.step.Completed && i.step.ActualMin != nil {
		return fmt.Sprintf("est %dm · actual %dm · %s",
			i.step.EstimatedMin, *i.step.ActualMin, formatBalance(i.step.EstimatedMin-*i.step.ActualMin))
	}
	if i.step.TimeSpentMin > 0 {
		return fmt.Sprintf("est %dm · spent %dm (paused)", i.step.EstimatedMin, i.step.TimeSpentMin)
	}
	return fmt.Sprintf("est %dm", i.step.EstimatedMin)
}

func (i stepItem) FilterValue() string { return i.step.Title }

func formatBalance(min int) string {
	if min >= 0 {
		return fmt.Sprintf("+%dm", min)
	}
	return fmt.Sprintf("%dm", min)
}

// ─── model ───────────────────────────────────────────────────────────────────

type focusArea int

const (
	focusOutcomes focusArea = iota
	focusSteps
)

type Model struct {
	port     OutcomePort
	outcomes list.Model
	steps    list.Model
	loaded   []outcomedto.OutcomeOutput
	focus    focusArea
	width    int
	height   int
}

func New(port OutcomePort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	ol := list.New(nil, delegate, 0, 0)
	ol.Title = "Outcomes"
	ol.Styles.Title = theme.Title
	ol.SetShowStatusBar(false)
	ol.SetFilteringEnabled(true)
	ol.SetShowHelp(false)

	sl := list.New(nil, delegate, 0, 0)
	sl.Title = "Steps"
	sl.Styles.Title = theme.Title
	sl.SetShowStatusBar(false)
	sl.SetFilteringEnabled(false)
	sl.SetShowHelp(false)

	return Model{port: port, outcomes: ol, steps: sl}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Reload refetches the outcome list, keeping the current selection where
// possible.
func (m Model) Reload() tea.Cmd {
	return m.loadCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case OutcomesLoadedMsg:
		if msg.Err != nil {
			m.outcomes.Title = "Outcomes (" + msg.Err.Error() + ")"
			return m, nil
		}
		m.outcomes.Title = "Outcomes"
		prevOutcome, _ := m.SelectedOutcomeID()
		m.loaded = msg.Outcomes
		items := make([]list.Item, len(msg.Outcomes))
		selected := 0
		for i, o := range msg.Outcomes {
			items[i] = outcomeItem{outcome: o}
			if o.ID == prevOutcome {
				selected = i
			}
		}
		cmds = append(cmds, m.outcomes.SetItems(items))
		m.outcomes.Select(selected)
		cmds = append(cmds, m.syncSteps())
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			if m.focus == focusSteps && !m.Filtering() {
				m.focus = focusOutcomes
				return m, nil
			}
		case "right", "l", "enter":
			if m.focus == focusOutcomes && !m.Filtering() {
				m.focus = focusSteps
				return m, nil
			}
		}
	}

	switch m.focus {
	case focusOutcomes:
		prevIdx := m.outcomes.Index()
		var cmd tea.Cmd
		m.outcomes, cmd = m.outcomes.Update(msg)
		cmds = append(cmds, cmd)
		if m.outcomes.Index() != prevIdx {
			cmds = append(cmds, m.syncSteps())
		}
	case focusSteps:
		var cmd tea.Cmd
		m.steps, cmd = m.steps.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	leftW := m.width * 4 / 10
	rightW := m.width - leftW

	leftStyle := lipgloss.NewStyle().Width(leftW).Height(m.height)
	rightStyle := lipgloss.NewStyle().Width(rightW).Height(m.height)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		leftStyle.Render(m.outcomes.View()),
		rightStyle.Render(m.steps.View()),
	)
}

// SelectedOutcomeID returns the selected outcome's ID, if any.
func (m Model) SelectedOutcomeID() (string, bool) {
	if item, ok := m.outcomes.SelectedItem().(outcomeItem); ok {
		return item.outcome.ID, true
	}
	return "", false
}

// SelectedStepID returns the selected step's IDs, if any.
func (m Model) SelectedStepID() (outcomeID, stepID string, ok bool) {
	item, isStep := m.steps.SelectedItem().(stepItem)
	if !isStep {
		return "", "", false
	}
	return item.step.OutcomeID, item.step.ID, true
}

// SelectedStepTitle returns the selected step's title.
func (m Model) SelectedStepTitle() string {
	if item, ok := m.steps.SelectedItem().(stepItem); ok {
		return item.step.Title
	}
	return ""
}

// Filtering reports whether the outcome list's search filter is active so
// the app model can avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.outcomes.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	leftW := m.width * 4 / 10
	m.outcomes.SetSize(leftW, m.height)
	m.steps.SetSize(m.width-leftW, m.height)
}

func (m *Model) syncSteps() tea.Cmd {
	item, ok := m.outcomes.SelectedItem().(outcomeItem)
	if !ok {
		return m.steps.SetItems(nil)
	}
	items := make([]list.Item, len(item.outcome.Steps))
	for i, s := range item.outcome.Steps {
		items[i] = stepItem{step: s}
	}
	m.steps.Title = "Steps: " + item.outcome.Title
	return m.steps.SetItems(items)
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		outcomes, err := m.port.List(context.Background())
		return OutcomesLoadedMsg{Outcomes: outcomes, Err: err}
	}
}
