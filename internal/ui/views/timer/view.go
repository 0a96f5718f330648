package timer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pomoterm/internal/modules/timer/dto"
	"pomoterm/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TimerPort interface {
	Status(ctx context.Context) (dto.StatusOutput, error)
	Start(ctx context.Context, mode string) (dto.TimerOutput, error)
	Pause(ctx context.Context, mode string) (dto.TimerOutput, error)
	Reset(ctx context.Context, mode string) (dto.TimerOutput, error)
	SetGoal(ctx context.Context, input dto.GoalInput) (dto.TimerOutput, error)
	Tick(ctx context.Context, mode string) (dto.TickOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type StatusLoadedMsg struct {
	Status dto.StatusOutput
	Err    error
}

type timerChangedMsg struct {
	timer dto.TimerOutput
	err   error
}

// tickDueMsg fires once a second per running countdown. The generation token
// discards ticks scheduled before a pause or reset.
type tickDueMsg struct {
	mode       string
	generation int
}

type tickedMsg struct {
	out  dto.TickOutput
	mode string
	err  error
}

// CompletedMsg bubbles to the app model when an interval finishes, so it can
// refresh the cheer popup and surface the recorded session.
type CompletedMsg struct {
	Mode      string
	SessionID string
}

// ─── model ───────────────────────────────────────────────────────────────────

const (
	modeWork  = "work"
	modeBreak = "break"
)

var paneModes = [2]string{modeWork, modeBreak}

type Model struct {
	port TimerPort

	timers map[string]dto.TimerOutput
	// one generation counter per mode; bumped on every start/pause/reset so
	// in-flight tick timers from the previous run are ignored
	generations map[string]int

	cursor      int
	goalInput   textinput.Model
	editingGoal bool
	bars        map[string]progress.Model
	status      string
	width       int
	height      int
}

func New(port TimerPort) Model {
	ti := textinput.New()
	ti.Placeholder = "what are you working on?"
	ti.CharLimit = 200

	bars := map[string]progress.Model{}
	for _, mode := range paneModes {
		bar := progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Lavender)))
		bar.ShowPercentage = false
		bars[mode] = bar
	}

	return Model{
		port:        port,
		timers:      map[string]dto.TimerOutput{},
		generations: map[string]int{},
		goalInput:   ti,
		bars:        bars,
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadStatusCmd()
}

// EditingGoal reports whether the goal input has focus, in which case global
// key bindings must yield to allow free typing.
func (m Model) EditingGoal() bool { return m.editingGoal }

// StartTimer, PauseTimer, ResetTimer, and SetTimerGoal expose the view's
// operations to the command palette.
func (m Model) StartTimer(mode string) tea.Cmd { return m.startCmd(mode) }

func (m Model) PauseTimer(mode string) tea.Cmd { return m.pauseCmd(mode) }

func (m Model) ResetTimer(mode string) tea.Cmd { return m.resetCmd(mode) }

func (m Model) SetTimerGoal(mode, goal string) tea.Cmd { return m.setGoalCmd(mode, goal) }

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for mode, bar := range m.bars {
			bar.Width = m.paneWidth() - 6
			m.bars[mode] = bar
		}

	case StatusLoadedMsg:
		if msg.Err != nil {
			m.status = "timer: " + msg.Err.Error()
			return m, nil
		}
		for _, t := range msg.Status.Timers {
			m.timers[t.Mode] = t
			if t.Running {
				cmds = append(cmds, m.scheduleTickCmd(t.Mode, m.bumpGeneration(t.Mode)))
			}
		}

	case timerChangedMsg:
		if msg.err != nil {
			m.status = "timer: " + msg.err.Error()
			return m, nil
		}
		m.timers[msg.timer.Mode] = msg.timer
		gen := m.bumpGeneration(msg.timer.Mode)
		if msg.timer.Running {
			cmds = append(cmds, m.scheduleTickCmd(msg.timer.Mode, gen))
		}

	case tickDueMsg:
		if msg.generation != m.generations[msg.mode] {
			return m, nil
		}
		cmds = append(cmds, m.tickCmd(msg.mode))

	case tickedMsg:
		if msg.err != nil {
			m.status = "tick: " + msg.err.Error()
			return m, nil
		}
		m.timers[msg.out.Timer.Mode] = msg.out.Timer
		if msg.out.Completed {
			m.status = msg.mode + " interval complete"
			cmds = append(cmds, func() tea.Msg {
				return CompletedMsg{Mode: msg.mode, SessionID: msg.out.SessionID}
			})
			// the countdown rearms paused; no further ticks until restarted
			m.bumpGeneration(msg.mode)
			break
		}
		if msg.out.Timer.Running {
			cmds = append(cmds, m.scheduleTickCmd(msg.mode, m.generations[msg.mode]))
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.editingGoal {
		switch msg.String() {
		case "enter":
			goal := strings.TrimSpace(m.goalInput.Value())
			m.editingGoal = false
			m.goalInput.Blur()
			return m, m.setGoalCmd(m.selectedMode(), goal)
		case "esc":
			m.editingGoal = false
			m.goalInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.goalInput, cmd = m.goalInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "left", "h":
		m.cursor = 0
	case "right", "l":
		m.cursor = 1
	case " ", "enter":
		t := m.timers[m.selectedMode()]
		if t.Running {
			return m, m.pauseCmd(m.selectedMode())
		}
		return m, m.startCmd(m.selectedMode())
	case "r":
		return m, m.resetCmd(m.selectedMode())
	case "g":
		t := m.timers[m.selectedMode()]
		if t.Running {
			m.status = "pause before changing the goal"
			return m, nil
		}
		m.editingGoal = true
		m.goalInput.SetValue(t.Goal)
		return m, m.goalInput.Focus()
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	panes := make([]string, 0, len(paneModes))
	for i, mode := range paneModes {
		panes = append(panes, m.renderPane(mode, i == m.cursor))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, panes...)

	footer := theme.Muted.Render("space: start/pause  r: reset  g: goal  ←/→: switch")
	if m.editingGoal {
		footer = "goal: " + m.goalInput.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, "", footer, theme.Muted.Render(m.status))
}

func (m Model) renderPane(mode string, active bool) string {
	t := m.timers[mode]
	style := theme.Pane
	if active {
		style = theme.PaneActive
	}

	title := strings.ToUpper(mode[:1]) + mode[1:]
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(title) + "\n\n")
	sb.WriteString(renderClock(t.TimeLeftSeconds) + "\n\n")

	if bar, ok := m.bars[mode]; ok && t.DurationSeconds > 0 {
		done := float64(t.DurationSeconds-t.TimeLeftSeconds) / float64(t.DurationSeconds)
		sb.WriteString(bar.ViewAs(done) + "\n\n")
	}

	switch {
	case t.Running:
		sb.WriteString(theme.Hot.Render("● running") + "\n")
	case t.TimeLeftSeconds < t.DurationSeconds:
		sb.WriteString(theme.Muted.Render("⏸ paused") + "\n")
	default:
		sb.WriteString(theme.Muted.Render("at rest") + "\n")
	}
	if t.Goal != "" {
		sb.WriteString(theme.Good.Render("goal: "+t.Goal) + "\n")
	}

	return style.Width(m.paneWidth()).Render(sb.String())
}

func renderClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("%02d:%02d", seconds/60, seconds%60))
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) selectedMode() string { return paneModes[m.cursor] }

func (m *Model) bumpGeneration(mode string) int {
	m.generations[mode]++
	return m.generations[mode]
}

func (m Model) paneWidth() int {
	w := m.width/2 - 2
	if w < 24 {
		w = 24
	}
	return w
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadStatusCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.port.Status(context.Background())
		return StatusLoadedMsg{Status: status, Err: err}
	}
}

func (m Model) startCmd(mode string) tea.Cmd {
	return func() tea.Msg {
		t, err := m.port.Start(context.Background(), mode)
		return timerChangedMsg{timer: t, err: err}
	}
}

func (m Model) pauseCmd(mode string) tea.Cmd {
	return func() tea.Msg {
		t, err := m.port.Pause(context.Background(), mode)
		return timerChangedMsg{timer: t, err: err}
	}
}

func (m Model) resetCmd(mode string) tea.Cmd {
	return func() tea.Msg {
		t, err := m.port.Reset(context.Background(), mode)
		return timerChangedMsg{timer: t, err: err}
	}
}

func (m Model) setGoalCmd(mode, goal string) tea.Cmd {
	return func() tea.Msg {
		t, err := m.port.SetGoal(context.Background(), dto.GoalInput{Mode: mode, Goal: goal})
		return timerChangedMsg{timer: t, err: err}
	}
}

func (m Model) scheduleTickCmd(mode string, generation int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickDueMsg{mode: mode, generation: generation}
	})
}

func (m Model) tickCmd(mode string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Tick(context.Background(), mode)
		return tickedMsg{out: out, mode: mode, err: err}
	}
}
