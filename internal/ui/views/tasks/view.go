package tasks

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pomoterm/internal/modules/task/dto"
	"pomoterm/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TaskPort interface {
	Add(ctx context.Context, input dto.AddInput) (dto.TaskOutput, error)
	List(ctx context.Context) (dto.ListOutput, error)
	Toggle(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type TasksLoadedMsg struct {
	Tasks []dto.TaskOutput
	Err   error
}

type taskMutatedMsg struct{ err error }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port TaskPort

	tasks  []dto.TaskOutput
	input  textinput.Model
	adding bool
	cursor int
	status string
	width  int
	height int
}

func New(port TaskPort) Model {
	ti := textinput.New()
	ti.Placeholder = "new task…"
	ti.CharLimit = 200
	return Model{port: port, input: ti}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Adding reports whether the task input has focus; global keys yield then.
func (m Model) Adding() bool { return m.adding }

// AddTask appends a task; the app model routes palette input here.
func (m Model) AddTask(text string) tea.Cmd { return m.addCmd(text) }

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TasksLoadedMsg:
		if msg.Err != nil {
			m.status = "tasks: " + msg.Err.Error()
			return m, nil
		}
		m.tasks = msg.Tasks
		if m.cursor >= len(m.tasks) {
			m.cursor = 0
		}

	case taskMutatedMsg:
		if msg.err != nil {
			m.status = "tasks: " + msg.err.Error()
			return m, nil
		}
		return m, m.loadCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.adding {
		switch msg.String() {
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			m.adding = false
			m.input.Blur()
			if text == "" {
				return m, nil
			}
			return m, m.addCmd(text)
		case "esc":
			m.adding = false
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "n":
		m.adding = true
		m.input.SetValue("")
		return m, m.input.Focus()
	case " ", "enter":
		if t, ok := m.cursorTask(); ok {
			return m, m.toggleCmd(t.ID)
		}
	case "d":
		if t, ok := m.cursorTask(); ok {
			return m, m.removeCmd(t.ID)
		}
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Tasks") + "\n\n")

	if len(m.tasks) == 0 && !m.adding {
		sb.WriteString(theme.Muted.Render("  no tasks, press n to add one") + "\n")
	}
	for i, t := range m.tasks {
		pointer := " "
		if i == m.cursor {
			pointer = theme.Title.Render("▸")
		}
		box := "☐"
		text := t.Text
		if t.Completed {
			box = theme.Good.Render("☑")
			text = theme.Muted.Strikethrough(true).Render(text)
		}
		sb.WriteString(pointer + " " + box + " " + text + "\n")
	}

	if m.adding {
		sb.WriteString("\n  " + m.input.View() + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("n: new  space: toggle  d: delete  j/k: move") + "\n")
	sb.WriteString(theme.Muted.Render(m.status))

	return lipgloss.NewStyle().Render(sb.String())
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) cursorTask() (dto.TaskOutput, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return dto.TaskOutput{}, false
	}
	return m.tasks[m.cursor], true
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.List(context.Background())
		return TasksLoadedMsg{Tasks: out.Tasks, Err: err}
	}
}

func (m Model) addCmd(text string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.port.Add(context.Background(), dto.AddInput{Text: text})
		return taskMutatedMsg{err: err}
	}
}

func (m Model) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return taskMutatedMsg{err: m.port.Toggle(context.Background(), id)}
	}
}

func (m Model) removeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return taskMutatedMsg{err: m.port.Remove(context.Background(), id)}
	}
}
