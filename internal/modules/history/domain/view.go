package domain

import "time"

// DefaultPageSize is how many rows each "load more" reveals.
const DefaultPageSize = 5

type Filter string

const (
	FilterActive   Filter = "active"
	FilterArchived Filter = "archived"
	FilterTrashed  Filter = "trashed"
)

// View is the history list's presentation state: which lifecycle bucket is
// shown, how many rows are revealed, and which rows are selected. It is pure
// bookkeeping; the rows themselves live in the session log.
type View struct {
	Filter        Filter
	PageSize      int
	WindowSize    int
	SelectionMode bool
	Selected      map[string]struct{}
}

func NewView(pageSize int) *View {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &View{
		Filter:     FilterActive,
		PageSize:   pageSize,
		WindowSize: pageSize,
		Selected:   map[string]struct{}{},
	}
}

// SetFilter switches buckets. The window collapses back to one page and any
// selection is discarded, so a filter change never carries hidden selections
// across buckets.
func (v *View) SetFilter(filter Filter) {
	v.Filter = filter
	v.WindowSize = v.PageSize
	v.ExitSelection()
}

// LoadMore reveals one more page.
func (v *View) LoadMore() {
	v.WindowSize += v.PageSize
}

// Visible clamps the window to the number of rows in the bucket.
func (v *View) Visible(total int) int {
	if total < v.WindowSize {
		return total
	}
	return v.WindowSize
}

// HasMore reports whether rows remain beyond the window.
func (v *View) HasMore(total int) bool {
	return total > v.WindowSize
}

// EnterSelection starts selection mode with one row selected.
func (v *View) EnterSelection(id string) {
	v.SelectionMode = true
	v.Selected = map[string]struct{}{id: {}}
}

// ExitSelection leaves selection mode and clears the set.
func (v *View) ExitSelection() {
	v.SelectionMode = false
	v.Selected = map[string]struct{}{}
}

// ToggleSelect flips one row. Deselecting the last row stays in selection
// mode; leaving is explicit.
func (v *View) ToggleSelect(id string) {
	if !v.SelectionMode {
		return
	}
	if _, ok := v.Selected[id]; ok {
		delete(v.Selected, id)
		return
	}
	v.Selected[id] = struct{}{}
}

// ToggleSelectAll selects every visible row, or clears the set when every
// visible row is already selected.
func (v *View) ToggleSelectAll(visibleIDs []string) {
	if !v.SelectionMode {
		return
	}
	if len(v.Selected) == len(visibleIDs) {
		v.Selected = map[string]struct{}{}
		return
	}
	v.Selected = make(map[string]struct{}, len(visibleIDs))
	for _, id := range visibleIDs {
		v.Selected[id] = struct{}{}
	}
}

func (v *View) IsSelected(id string) bool {
	_, ok := v.Selected[id]
	return ok
}

// SelectedIDs returns the selection in the order of the given visible rows.
func (v *View) SelectedIDs(visibleIDs []string) []string {
	out := make([]string, 0, len(v.Selected))
	for _, id := range visibleIDs {
		if v.IsSelected(id) {
			out = append(out, id)
		}
	}
	return out
}

// LongPressDuration is how long a press must be held to enter selection
// mode.
const LongPressDuration = 500 * time.Millisecond

// PressTracker arms a long press. Each Begin invalidates earlier presses via
// a generation token, so a stale expiry timer from a previous press can
// never fire against a new one.
type PressTracker struct {
	generation int
	targetID   string
	startedAt  time.Time
	active     bool
}

// Begin arms a press on one row and returns the token the expiry timer must
// present.
func (p *PressTracker) Begin(id string, now time.Time) int {
	p.generation++
	p.targetID = id
	p.startedAt = now
	p.active = true
	return p.generation
}

// Cancel disarms the press, e.g. when the pointer moves off the row or is
// released early.
func (p *PressTracker) Cancel() {
	p.active = false
}

// Fire resolves an expiry timer. It yields the pressed row only when the
// press is still armed, the token is current, and the hold lasted the full
// duration.
func (p *PressTracker) Fire(token int, now time.Time) (string, bool) {
	if !p.active || token != p.generation {
		return "", false
	}
	if now.Sub(p.startedAt) < LongPressDuration {
		return "", false
	}
	p.active = false
	return p.targetID, true
}
