package timer

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	outcomedto "tempo/internal/modules/outcome/dto"
	timerdto "tempo/internal/modules/timer/dto"
	"tempo/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TimerPort interface {
	Balance(ctx context.Context) (outcomedto.BalancesOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type BalanceLoadedMsg struct {
	Balances outcomedto.BalancesOutput
	Err      error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders the running timer and the balance board. The root app model
// owns the tick loop and pushes status snapshots in via SetStatus.
type Model struct {
	port     TimerPort
	status   timerdto.StatusOutput
	balances outcomedto.BalancesOutput
	width    int
	height   int
}

func New(port TimerPort) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd {
	return m.loadBalanceCmd()
}

// SetStatus replaces the displayed timer snapshot.
func (m *Model) SetStatus(status timerdto.StatusOutput) {
	m.status = status
}

// Refresh refetches the balance board, after any mutation.
func (m Model) Refresh() tea.Cmd {
	return m.loadBalanceCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case BalanceLoadedMsg:
		if msg.Err == nil {
			m.balances = msg.Balances
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder

	if m.status.Active {
		sb.WriteString(theme.Hot.Render("▶ "+m.status.StepTitle) + "\n")
		sb.WriteString(theme.Muted.Render(m.status.OutcomeTitle) + "\n\n")
		sb.WriteString(theme.Title.Render(formatElapsed(m.status.ElapsedSec)) + "\n\n")
		sb.WriteString(theme.Muted.Render("p: pause  c: complete  b: borrow 10m from bank") + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("No timer running.") + "\n")
		sb.WriteString(theme.Muted.Render("Select a step on the Outcomes tab and press s.") + "\n")
	}

	sb.WriteString("\n" + theme.Title.Render("Balance") + "\n")
	for _, b := range m.balances.Outcomes {
		sb.WriteString(fmt.Sprintf("  %-32s %s\n", truncate(b.Title, 32), renderBalance(b.BalanceMin)))
	}
	sb.WriteString("\n")
	sb.WriteString("  " + theme.Muted.Render("time bank   ") + renderBalance(m.balances.BankMin) + "\n")
	sb.WriteString("  " + theme.Muted.Render("global      ") + renderBalance(m.balances.GlobalMin) + "\n")

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(sb.String())
}

func formatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds/60)%60, seconds%60)
}

func renderBalance(min int) string {
	if min < 0 {
		return theme.Deficit.Render(fmt.Sprintf("%dm", min))
	}
	return theme.Surplus.Render(fmt.Sprintf("+%dm", min))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func (m Model) loadBalanceCmd() tea.Cmd {
	return func() tea.Msg {
		balances, err := m.port.Balance(context.Background())
		return BalanceLoadedMsg{Balances: balances, Err: err}
	}
}
