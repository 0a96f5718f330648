package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	cheerdto "pomoterm/internal/modules/cheer/dto"
	historydto "pomoterm/internal/modules/history/dto"
	notifydto "pomoterm/internal/modules/notify/dto"
	taskdto "pomoterm/internal/modules/task/dto"
	timerdto "pomoterm/internal/modules/timer/dto"
	"pomoterm/internal/ui/components"
	"pomoterm/internal/ui/theme"
	cheerview "pomoterm/internal/ui/views/cheer"
	historyview "pomoterm/internal/ui/views/history"
	tasksview "pomoterm/internal/ui/views/tasks"
	timerview "pomoterm/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type timerPort interface {
	Status(ctx context.Context) (timerdto.StatusOutput, error)
	Start(ctx context.Context, mode string) (timerdto.TimerOutput, error)
	Pause(ctx context.Context, mode string) (timerdto.TimerOutput, error)
	Reset(ctx context.Context, mode string) (timerdto.TimerOutput, error)
	SetGoal(ctx context.Context, input timerdto.GoalInput) (timerdto.TimerOutput, error)
	Tick(ctx context.Context, mode string) (timerdto.TickOutput, error)
}

type historyPort interface {
	Query(ctx context.Context, input historydto.QueryInput) (historydto.QueryOutput, error)
	Stats(ctx context.Context) (historydto.StatsOutput, error)
	Export(ctx context.Context, input historydto.ExportInput) (historydto.ExportOutput, error)
	Archive(ctx context.Context, ids []string) (historydto.BulkOutput, error)
	Trash(ctx context.Context, ids []string) (historydto.BulkOutput, error)
	Restore(ctx context.Context, ids []string) (historydto.BulkOutput, error)
	PermanentlyDelete(ctx context.Context, ids []string) (historydto.BulkOutput, error)
}

type taskPort interface {
	Add(ctx context.Context, input taskdto.AddInput) (taskdto.TaskOutput, error)
	List(ctx context.Context) (taskdto.ListOutput, error)
	Toggle(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
}

type cheerPort interface {
	Thread(ctx context.Context) (cheerdto.ThreadOutput, error)
}

type notifyPort interface {
	Send(ctx context.Context, input notifydto.SendInput) (notifydto.SendOutput, error)
	Doctor(ctx context.Context) ([]notifydto.DoctorResult, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimer tabID = iota
	tabHistory
	tabTasks
	tabCount
)

var tabLabels = [tabCount]string{"Timer", "History", "Tasks"}

// ─── async messages ───────────────────────────────────────────────────────────

type notifySentMsg struct {
	out notifydto.SendOutput
	err error
}

type notifyDoctorMsg struct {
	results []notifydto.DoctorResult
	err     error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Coach   key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Select  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Coach:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "coach popup")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Select:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "select sessions")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Toggle, k.Select},
		{k.Coach, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the coach popup,
// the global help overlay, and the command palette. All business logic is
// delegated to port interfaces; all rendering is delegated to sub-views.
type Model struct {
	// ports used at this orchestration level only
	notify notifyPort

	// sub-views (one per tab) plus the floating coach popup
	timerView   timerview.Model
	historyView historyview.Model
	tasksView   tasksview.Model
	cheerView   cheerview.Model

	// global UI state
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	timer timerPort,
	history historyPort,
	tasks taskPort,
	cheer cheerPort,
	notify notifyPort,
	pageSize int,
) Model {
	return Model{
		notify:      notify,
		timerView:   timerview.New(timerPortBridge{p: timer}),
		historyView: historyview.New(historyPortBridge{p: history}, pageSize),
		tasksView:   tasksview.New(taskPortBridge{p: tasks}),
		cheerView:   cheerview.New(cheerPortBridge{p: cheer}),
		activeTab:   tabTimer,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.timerView.Init(),
		m.historyView.Init(),
		m.tasksView.Init(),
		m.cheerView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	// CompletedMsg bubbles up from the timer view; an interval has been
	// recorded, so the history list and the coach thread are both stale.
	case timerview.CompletedMsg:
		m.status = fmt.Sprintf("%s session recorded (%s)", msg.Mode, msg.SessionID)
		if !m.cheerView.Open() {
			m.cheerView.Toggle()
		}
		cmds = append(cmds, m.historyView.Reload(), m.cheerView.Refresh())

	case notifySentMsg:
		if msg.err != nil {
			m.status = "notify: " + msg.err.Error()
		} else {
			delivered := 0
			for _, d := range msg.out.Deliveries {
				if d.Delivered {
					delivered++
				}
			}
			m.status = fmt.Sprintf("notify: %d/%d channels delivered", delivered, len(msg.out.Deliveries))
		}

	case notifyDoctorMsg:
		if msg.err != nil {
			m.status = "doctor: " + msg.err.Error()
		} else {
			healthy := 0
			for _, r := range msg.results {
				if r.BinaryReachable && r.ChecksumValid && r.LifecycleOK {
					healthy++
				}
			}
			m.status = fmt.Sprintf("doctor: %d/%d plugins healthy", healthy, len(msg.results))
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// The coach popup owns keys while open; c and esc close it.
		if m.cheerView.Open() {
			if msg.String() == "c" || msg.String() == "esc" {
				m.cheerView.Toggle()
				return m, nil
			}
			var cmd tea.Cmd
			m.cheerView, cmd = m.cheerView.Update(msg)
			return m, cmd
		}

		// Yield to sub-views while they are capturing text.
		if m.subViewTyping() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "c":
			m.cheerView.Toggle()
			return m, nil
		}
	}

	_, isKey := msg.(tea.KeyMsg)

	// Tick and completion messages must reach the timer view even when
	// another tab is active, otherwise its loop stalls in the background.
	// Key input only reaches it while its tab is showing.
	if !isKey || m.activeTab == tabTimer {
		var timerCmd tea.Cmd
		m.timerView, timerCmd = m.timerView.Update(msg)
		cmds = append(cmds, timerCmd)
	}

	// Async results can land while another tab is showing; only key input is
	// confined to the active tab.
	if !isKey {
		var hCmd, tCmd, cCmd tea.Cmd
		m.historyView, hCmd = m.historyView.Update(msg)
		m.tasksView, tCmd = m.tasksView.Update(msg)
		m.cheerView, cCmd = m.cheerView.Update(msg)
		cmds = append(cmds, hCmd, tCmd, cCmd)
	} else {
		var tabCmd tea.Cmd
		switch m.activeTab {
		case tabHistory:
			m.historyView, tabCmd = m.historyView.Update(msg)
		case tabTasks:
			m.tasksView, tabCmd = m.tasksView.Update(msg)
		}
		cmds = append(cmds, tabCmd)
	}

	return m, tea.Batch(cmds...)
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
	case m.cheerView.Open():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.cheerView.View())
	default:
		body := m.activeView()
		bubble := m.cheerView.View()
		content = lipgloss.NewStyle().Width(m.width).Height(contentH - 1).Render(body)
		content = lipgloss.JoinVertical(lipgloss.Right, content, bubble)
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTimer:
		return m.timerView.View()
	case tabHistory:
		return m.historyView.View()
	case tabTasks:
		return m.tasksView.View()
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
	bar := "pomoterm  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  c:coach  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "timer:start", "timer:pause", "timer:reset":
		if len(parts) < 2 {
			m.status = "usage: " + parts[0] + " <work|break>"
			return m, nil
		}
		m.activeTab = tabTimer
		return m, m.timerCmd(parts[0], parts[1], "")

	case "timer:goal":
		if len(parts) < 3 {
			m.status = "usage: timer:goal <work|break> <text>"
			return m, nil
		}
		goal := strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1]))
		m.activeTab = tabTimer
		return m, m.timerCmd(parts[0], parts[1], goal)

	case "history:filter":
		if len(parts) < 2 {
			m.status = "usage: history:filter <active|archived|trashed>"
			return m, nil
		}
		m.activeTab = tabHistory
		return m, m.historyView.SetFilter(parts[1])

	case "history:export":
		if len(parts) < 2 {
			m.status = "usage: history:export <dir> [title]"
			return m, nil
		}
		title := strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1]))
		return m, m.historyView.Export(parts[1], title)

	case "history:stats":
		m.activeTab = tabHistory
		m.status = "switched to History tab"
		return m, nil

	case "task:add":
		text := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		if text == "" {
			m.status = "usage: task:add <text>"
			return m, nil
		}
		m.activeTab = tabTasks
		return m, m.tasksView.AddTask(text)

	case "notify:test":
		return m, m.notifyTestCmd()

	case "notify:doctor":
		return m, m.notifyDoctorCmd()

	case "cheer:toggle":
		m.cheerView.Toggle()
		return m, nil

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewTyping reports whether a sub-view is capturing free text, in which
// case global key bindings must yield.
func (m Model) subViewTyping() bool {
	switch m.activeTab {
	case tabTimer:
		return m.timerView.EditingGoal()
	case tabTasks:
		return m.tasksView.Adding()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.timerView, _ = m.timerView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
	m.tasksView, _ = m.tasksView.Update(sz)
	m.cheerView, _ = m.cheerView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) timerCmd(verb, mode, goal string) tea.Cmd {
	switch verb {
	case "timer:start":
		return m.timerView.StartTimer(mode)
	case "timer:pause":
		return m.timerView.PauseTimer(mode)
	case "timer:reset":
		return m.timerView.ResetTimer(mode)
	case "timer:goal":
		return m.timerView.SetTimerGoal(mode, goal)
	}
	return nil
}

func (m Model) notifyTestCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.notify.Send(context.Background(), notifydto.SendInput{
			Title: "Pomodoro Timer",
			Body:  "Test notification",
		})
		return notifySentMsg{out: out, err: err}
	}
}

func (m Model) notifyDoctorCmd() tea.Cmd {
	return func() tea.Msg {
		results, err := m.notify.Doctor(context.Background())
		return notifyDoctorMsg{results: results, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed
// by a specific sub-view, keeping view packages free of knowledge about the
// wider port surface.

type timerPortBridge struct{ p timerPort }

func (b timerPortBridge) Status(ctx context.Context) (timerdto.StatusOutput, error) {
	return b.p.Status(ctx)
}
func (b timerPortBridge) Start(ctx context.Context, mode string) (timerdto.TimerOutput, error) {
	return b.p.Start(ctx, mode)
}
func (b timerPortBridge) Pause(ctx context.Context, mode string) (timerdto.TimerOutput, error) {
	return b.p.Pause(ctx, mode)
}
func (b timerPortBridge) Reset(ctx context.Context, mode string) (timerdto.TimerOutput, error) {
	return b.p.Reset(ctx, mode)
}
func (b timerPortBridge) SetGoal(ctx context.Context, input timerdto.GoalInput) (timerdto.TimerOutput, error) {
	return b.p.SetGoal(ctx, input)
}
func (b timerPortBridge) Tick(ctx context.Context, mode string) (timerdto.TickOutput, error) {
	return b.p.Tick(ctx, mode)
}

type historyPortBridge struct{ p historyPort }

func (b historyPortBridge) Query(ctx context.Context, input historydto.QueryInput) (historydto.QueryOutput, error) {
	return b.p.Query(ctx, input)
}
func (b historyPortBridge) Stats(ctx context.Context) (historydto.StatsOutput, error) {
	return b.p.Stats(ctx)
}
func (b historyPortBridge) Export(ctx context.Context, input historydto.ExportInput) (historydto.ExportOutput, error) {
	return b.p.Export(ctx, input)
}
func (b historyPortBridge) Archive(ctx context.Context, ids []string) (historydto.BulkOutput, error) {
	return b.p.Archive(ctx, ids)
}
func (b historyPortBridge) Trash(ctx context.Context, ids []string) (historydto.BulkOutput, error) {
	return b.p.Trash(ctx, ids)
}
func (b historyPortBridge) Restore(ctx context.Context, ids []string) (historydto.BulkOutput, error) {
	return b.p.Restore(ctx, ids)
}
func (b historyPortBridge) PermanentlyDelete(ctx context.Context, ids []string) (historydto.BulkOutput, error) {
	return b.p.PermanentlyDelete(ctx, ids)
}

type taskPortBridge struct{ p taskPort }

func (b taskPortBridge) Add(ctx context.Context, input taskdto.AddInput) (taskdto.TaskOutput, error) {
	return b.p.Add(ctx, input)
}
func (b taskPortBridge) List(ctx context.Context) (taskdto.ListOutput, error) {
	return b.p.List(ctx)
}
func (b taskPortBridge) Toggle(ctx context.Context, id string) error {
	return b.p.Toggle(ctx, id)
}
func (b taskPortBridge) Remove(ctx context.Context, id string) error {
	return b.p.Remove(ctx, id)
}

type cheerPortBridge struct{ p cheerPort }

func (b cheerPortBridge) Thread(ctx context.Context) (cheerdto.ThreadOutput, error) {
	return b.p.Thread(ctx)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
