package notes

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	notesdto "tempo/internal/modules/notes/dto"
	apperrors "tempo/internal/platform/errors"
	"tempo/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type NotesPort interface {
	Put(ctx context.Context, outcomeID, stepID, date, text string) (notesdto.NoteOutput, error)
	Get(ctx context.Context, outcomeID, stepID, date string) (notesdto.NoteOutput, error)
	ForStep(ctx context.Context, outcomeID, stepID string) ([]notesdto.NoteOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type NoteLoadedMsg struct {
	Note    notesdto.NoteOutput
	History []notesdto.NoteOutput
	Err     error
}

type NoteSavedMsg struct {
	Note notesdto.NoteOutput
	Err  error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model edits today's note for the step selected on the Outcomes tab.
// Earlier dated notes for the same step render read-only below the editor.
type Model struct {
	port      NotesPort
	input     textarea.Model
	outcomeID string
	stepID    string
	stepTitle string
	history   []notesdto.NoteOutput
	width     int
	height    int
}

func New(port NotesPort) Model {
	ta := textarea.New()
	ta.Placeholder = "notes for today…"
	ta.CharLimit = 4000
	return Model{port: port, input: ta}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetContext points the editor at a step and reloads its notes.
func (m *Model) SetContext(outcomeID, stepID, stepTitle string) tea.Cmd {
	if outcomeID == m.outcomeID && stepID == m.stepID {
		return nil
	}
	m.outcomeID = outcomeID
	m.stepID = stepID
	m.stepTitle = stepTitle
	m.input.Reset()
	m.history = nil
	if stepID == "" {
		return nil
	}
	return m.loadCmd()
}

// Save persists the editor contents as today's note.
func (m Model) Save() tea.Cmd {
	if m.stepID == "" {
		return nil
	}
	outcomeID, stepID, text := m.outcomeID, m.stepID, m.input.Value()
	port := m.port
	return func() tea.Msg {
		note, err := port.Put(context.Background(), outcomeID, stepID, "", text)
		return NoteSavedMsg{Note: note, Err: err}
	}
}

// Editing reports whether the textarea has focus, so the app model leaves
// typed keys alone.
func (m Model) Editing() bool {
	return m.input.Focused()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(msg.Width - 6)
		m.input.SetHeight(max(msg.Height/3, 4))

	case NoteLoadedMsg:
		if msg.Err == nil {
			m.input.SetValue(msg.Note.Text)
		}
		m.history = msg.History
		return m, nil

	case NoteSavedMsg:
		if msg.Err == nil {
			return m, m.loadCmd()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "i", "enter":
			if !m.input.Focused() && m.stepID != "" {
				return m, m.input.Focus()
			}
		case "esc":
			if m.input.Focused() {
				m.input.Blur()
				return m, nil
			}
		case "ctrl+s":
			if m.input.Focused() {
				m.input.Blur()
				return m, m.Save()
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder

	if m.stepID == "" {
		sb.WriteString(theme.Muted.Render("Select a step on the Outcomes tab to write notes.") + "\n")
		return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(sb.String())
	}

	sb.WriteString(theme.Title.Render("Notes: "+m.stepTitle) + "\n\n")
	sb.WriteString(m.input.View() + "\n")
	sb.WriteString(theme.Muted.Render("i: edit  ctrl+s: save  esc: stop editing") + "\n")

	if len(m.history) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Earlier") + "\n")
		for i := len(m.history) - 1; i >= 0; i-- {
			n := m.history[i]
			sb.WriteString(theme.Muted.Render(n.Date) + "  " + firstLine(n.Text) + "\n")
		}
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(sb.String())
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx] + " …"
	}
	return s
}

func (m Model) loadCmd() tea.Cmd {
	outcomeID, stepID := m.outcomeID, m.stepID
	port := m.port
	return func() tea.Msg {
		note, err := port.Get(context.Background(), outcomeID, stepID, "")
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return NoteLoadedMsg{Err: err}
		}
		history, _ := port.ForStep(context.Background(), outcomeID, stepID)
		// Today's note stays in the editor, not the history block.
		trimmed := history[:0]
		for _, h := range history {
			if h.Date != note.Date {
				trimmed = append(trimmed, h)
			}
		}
		return NoteLoadedMsg{Note: note, History: trimmed}
	}
}
