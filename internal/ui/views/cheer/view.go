package cheer

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pomoterm/internal/modules/cheer/dto"
	"pomoterm/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type CheerPort interface {
	Thread(ctx context.Context) (dto.ThreadOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ThreadLoadedMsg struct {
	Thread dto.ThreadOutput
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

var (
	popupStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Green).
			Background(theme.Mantle).
			Padding(0, 1)

	bubbleStyle = lipgloss.NewStyle().
			Background(theme.Surface0).
			Foreground(theme.Green).
			Padding(0, 1)
)

// Model is the coach chat popup. Closed it renders as a small bubble with an
// unread count; open it shows the message thread.
type Model struct {
	port CheerPort

	messages []dto.MessageOutput
	body     viewport.Model
	open     bool
	unread   int
	width    int
	height   int
}

func New(port CheerPort) Model {
	vp := viewport.New(0, 0)
	return Model{port: port, body: vp}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Open reports whether the popup is expanded.
func (m Model) Open() bool { return m.open }

// Toggle flips the popup. Opening clears the unread counter.
func (m *Model) Toggle() {
	m.open = !m.open
	if m.open {
		m.unread = 0
		m.body.GotoBottom()
	}
}

// Refresh reloads the thread and, when the popup is closed, counts the new
// messages as unread.
func (m Model) Refresh() tea.Cmd { return m.loadCmd() }

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = m.popupWidth() - 4
		m.body.Height = min(m.height-6, 12)
		if m.body.Height < 3 {
			m.body.Height = 3
		}
		m.body.SetContent(m.renderThread())

	case ThreadLoadedMsg:
		if msg.Err != nil {
			return m, nil
		}
		if !m.open && len(msg.Thread.Messages) > len(m.messages) {
			m.unread += len(msg.Thread.Messages) - len(m.messages)
		}
		m.messages = msg.Thread.Messages
		m.body.SetContent(m.renderThread())
		m.body.GotoBottom()

	case tea.KeyMsg:
		if m.open {
			var cmd tea.Cmd
			m.body, cmd = m.body.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if !m.open {
		label := "💬 coach"
		if m.unread > 0 {
			label = theme.Hot.Render("💬 coach (" + itoa(m.unread) + ")")
		}
		return bubbleStyle.Render(label)
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Coach") + "\n")
	sb.WriteString(m.body.View() + "\n")
	sb.WriteString(theme.Muted.Render("c: close  ↑/↓: scroll"))
	return popupStyle.Width(m.popupWidth()).Render(sb.String())
}

func (m Model) renderThread() string {
	if len(m.messages) == 0 {
		return theme.Muted.Render("Finish an interval to hear from your coach.")
	}
	var sb strings.Builder
	for _, msg := range m.messages {
		stamp := theme.Muted.Render(msg.Timestamp.Format("15:04"))
		if msg.Sender == "system" {
			sb.WriteString(stamp + " " + theme.Good.Render(msg.Text) + "\n")
		} else {
			sb.WriteString(stamp + " " + msg.Text + "\n")
		}
	}
	return sb.String()
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Thread(context.Background())
		return ThreadLoadedMsg{Thread: out, Err: err}
	}
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) popupWidth() int {
	w := m.width / 2
	if w < 40 {
		w = 40
	}
	return w
}

func itoa(n int) string {
	if n > 9 {
		return "9+"
	}
	return string(rune('0' + n))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
