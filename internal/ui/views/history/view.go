package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pomoterm/internal/modules/history/domain"
	"pomoterm/internal/modules/history/dto"
	"pomoterm/internal/ui/components"
	"pomoterm/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type HistoryPort interface {
	Query(ctx context.Context, input dto.QueryInput) (dto.QueryOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
	Archive(ctx context.Context, ids []string) (dto.BulkOutput, error)
	Trash(ctx context.Context, ids []string) (dto.BulkOutput, error)
	Restore(ctx context.Context, ids []string) (dto.BulkOutput, error)
	PermanentlyDelete(ctx context.Context, ids []string) (dto.BulkOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type EntriesLoadedMsg struct {
	Entries []dto.EntryOutput
	Err     error
}

type StatsLoadedMsg struct {
	Stats dto.StatsOutput
	Err   error
}

type bulkDoneMsg struct {
	verb     string
	affected int
	err      error
}

type ExportedMsg struct {
	Path string
	Err  error
}

// pressExpiredMsg resolves a long press. The token must match the tracker's
// current generation or the press was cancelled or replaced.
type pressExpiredMsg struct{ token int }

// rows render below the filter tabs and the column header
const headerLines = 2

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port HistoryPort

	view    domain.View
	press   domain.PressTracker
	entries []dto.EntryOutput
	stats   dto.StatsOutput
	confirm components.Confirm
	spinner spinner.Model
	loading bool

	cursor int
	status string
	width  int
	height int
}

func New(port HistoryPort, pageSize int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{
		port:    port,
		view:    *domain.NewView(pageSize),
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.loadStatsCmd(), m.spinner.Tick)
}

// Reload refreshes the current bucket, e.g. after a completed interval.
func (m Model) Reload() tea.Cmd { return m.loadCmd() }

// Export writes a markdown report; the app model routes palette input here.
func (m Model) Export(dir, title string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Export(context.Background(), dto.ExportInput{Dir: dir, Title: title})
		return ExportedMsg{Path: out.Path, Err: err}
	}
}

// SetFilter switches buckets from the palette.
func (m *Model) SetFilter(filter string) tea.Cmd {
	switch domain.Filter(filter) {
	case domain.FilterActive, domain.FilterArchived, domain.FilterTrashed:
		m.view.SetFilter(domain.Filter(filter))
		m.cursor = 0
		return m.loadCmd()
	}
	m.status = "unknown bucket: " + filter
	return nil
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirm.Visible() {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case EntriesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.status = "history: " + msg.Err.Error()
			return m, nil
		}
		m.entries = msg.Entries
		if m.cursor >= len(m.entries) {
			m.cursor = max(0, len(m.entries)-1)
		}

	case StatsLoadedMsg:
		if msg.Err == nil {
			m.stats = msg.Stats
		}

	case bulkDoneMsg:
		if msg.err != nil {
			m.status = msg.verb + ": " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("%s: %d session(s)", msg.verb, msg.affected)
		m.view.ExitSelection()
		return m, tea.Batch(m.loadCmd(), m.loadStatsCmd())

	case ExportedMsg:
		if msg.Err != nil {
			m.status = "export: " + msg.Err.Error()
		} else {
			m.status = "exported " + msg.Path
		}

	case components.ConfirmResultMsg:
		if !msg.Accepted {
			m.status = "cancelled"
			return m, nil
		}
		ids := m.actionIDs()
		switch msg.Tag {
		case "archive":
			return m, m.bulkCmd("archived", ids, m.port.Archive)
		case "trash":
			return m, m.bulkCmd("trashed", ids, m.port.Trash)
		case "restore":
			return m, m.bulkCmd("restored", ids, m.port.Restore)
		case "delete":
			return m, m.bulkCmd("deleted", ids, m.port.PermanentlyDelete)
		}

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case pressExpiredMsg:
		if id, ok := m.press.Fire(msg.token, time.Now()); ok {
			m.view.EnterSelection(id)
			m.status = "selection mode"
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	visible := m.visibleEntries()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case "1":
		return m, m.SetFilter(string(domain.FilterActive))
	case "2":
		return m, m.SetFilter(string(domain.FilterArchived))
	case "3":
		return m, m.SetFilter(string(domain.FilterTrashed))
	case "m":
		if m.view.HasMore(len(m.entries)) {
			m.view.LoadMore()
		}
	case "v":
		if id, ok := m.cursorID(); ok {
			m.view.EnterSelection(id)
			m.status = "selection mode"
		}
	case "esc":
		m.view.ExitSelection()
		m.status = "ready"
	case " ":
		if id, ok := m.cursorID(); ok {
			m.view.ToggleSelect(id)
		}
	case "a":
		m.view.ToggleSelectAll(m.visibleIDs())
	case "x":
		if ids := m.actionIDs(); len(ids) > 0 {
			m.confirm.Open("archive", fmt.Sprintf("Archive %d session(s)?", len(ids)))
		}
	case "t":
		if ids := m.actionIDs(); len(ids) > 0 {
			m.confirm.Open("trash", fmt.Sprintf("Move %d session(s) to trash?", len(ids)))
		}
	case "u":
		if ids := m.actionIDs(); len(ids) > 0 {
			m.confirm.Open("restore", fmt.Sprintf("Restore %d session(s)?", len(ids)))
		}
	case "D":
		if ids := m.actionIDs(); len(ids) > 0 {
			m.confirm.Open("delete", fmt.Sprintf("Permanently delete %d session(s)? This cannot be undone.", len(ids)))
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseLeft:
		row := msg.Y - headerLines
		visible := m.visibleEntries()
		if row < 0 || row >= len(visible) {
			m.press.Cancel()
			return m, nil
		}
		m.cursor = row
		token := m.press.Begin(visible[row].ID, time.Now())
		return m, tea.Tick(domain.LongPressDuration, func(time.Time) tea.Msg {
			return pressExpiredMsg{token: token}
		})
	case tea.MouseRelease:
		m.press.Cancel()
	case tea.MouseMotion:
		m.press.Cancel()
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.loading {
		return m.spinner.View() + " Loading history…"
	}
	var sb strings.Builder
	sb.WriteString(m.renderTabs() + "\n")
	sb.WriteString(theme.Muted.Render("  kind   start             length  goal") + "\n")

	visible := m.visibleEntries()
	if len(visible) == 0 {
		sb.WriteString(theme.Muted.Render("  nothing here") + "\n")
	}
	for i, e := range visible {
		sb.WriteString(m.renderRow(i, e) + "\n")
	}
	if m.view.HasMore(len(m.entries)) {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("  m: load more (%d hidden)", len(m.entries)-len(visible))) + "\n")
	}

	sb.WriteString("\n" + m.renderStats() + "\n")
	if m.view.SelectionMode {
		sb.WriteString(theme.Hot.Render(fmt.Sprintf("%d selected", len(m.view.Selected))) +
			theme.Muted.Render("  space: toggle  a: all  x: archive  t: trash  u: restore  D: delete  esc: done") + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("1/2/3: bucket  v or hold click: select  j/k: move") + "\n")
	}
	sb.WriteString(theme.Muted.Render(m.status))

	body := sb.String()
	if m.confirm.Visible() {
		return lipgloss.JoinVertical(lipgloss.Left, body, "", m.confirm.View())
	}
	return body
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, 3)
	for _, f := range []domain.Filter{domain.FilterActive, domain.FilterArchived, domain.FilterTrashed} {
		label := " " + string(f) + " "
		if f == m.view.Filter {
			parts = append(parts, theme.Hot.Render(label))
		} else {
			parts = append(parts, theme.Muted.Render(label))
		}
	}
	return strings.Join(parts, theme.Muted.Render("│"))
}

func (m Model) renderRow(i int, e dto.EntryOutput) string {
	marker := "  "
	if m.view.SelectionMode {
		if m.view.IsSelected(e.ID) {
			marker = theme.Good.Render("☑ ")
		} else {
			marker = "☐ "
		}
	}
	pointer := " "
	if i == m.cursor {
		pointer = theme.Title.Render("▸")
	}
	line := fmt.Sprintf("%s%s%-6s %-17s %6s  %s",
		pointer, marker, e.Kind, e.StartTime.Format("2006-01-02 15:04"),
		formatLength(e.DurationSeconds), e.Goal)
	if m.view.Filter == domain.FilterTrashed {
		line += theme.Danger.Render(fmt.Sprintf("  %dd left", e.RemainingRetentionDays))
	}
	return line
}

func (m Model) renderStats() string {
	if len(m.stats.Kinds) == 0 {
		return theme.Muted.Render("no sessions yet")
	}
	parts := make([]string, 0, len(m.stats.Kinds))
	for _, k := range m.stats.Kinds {
		parts = append(parts, fmt.Sprintf("%s: %d (%s)", k.Kind, k.Sessions, formatLength(k.TotalSeconds)))
	}
	return theme.Good.Render(strings.Join(parts, "   "))
}

func formatLength(seconds int) string {
	if seconds >= 3600 {
		return fmt.Sprintf("%dh%02dm", seconds/3600, (seconds%3600)/60)
	}
	return fmt.Sprintf("%dm%02ds", seconds/60, seconds%60)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) visibleEntries() []dto.EntryOutput {
	return m.entries[:m.view.Visible(len(m.entries))]
}

func (m Model) visibleIDs() []string {
	visible := m.visibleEntries()
	ids := make([]string, len(visible))
	for i, e := range visible {
		ids[i] = e.ID
	}
	return ids
}

func (m Model) cursorID() (string, bool) {
	visible := m.visibleEntries()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return "", false
	}
	return visible[m.cursor].ID, true
}

// actionIDs is what a lifecycle key operates on: the selection when one
// exists, the cursor row otherwise.
func (m Model) actionIDs() []string {
	if m.view.SelectionMode {
		return m.view.SelectedIDs(m.visibleIDs())
	}
	if id, ok := m.cursorID(); ok {
		return []string{id}
	}
	return nil
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadCmd() tea.Cmd {
	filter := string(m.view.Filter)
	return func() tea.Msg {
		out, err := m.port.Query(context.Background(), dto.QueryInput{Filter: filter})
		return EntriesLoadedMsg{Entries: out.Entries, Err: err}
	}
}

func (m Model) loadStatsCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Stats(context.Background())
		return StatsLoadedMsg{Stats: out, Err: err}
	}
}

func (m Model) bulkCmd(verb string, ids []string, op func(context.Context, []string) (dto.BulkOutput, error)) tea.Cmd {
	return func() tea.Msg {
		out, err := op(context.Background(), ids)
		return bulkDoneMsg{verb: verb, affected: out.Affected, err: err}
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
