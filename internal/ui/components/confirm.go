package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pomoterm/internal/ui/theme"
)

// ConfirmResultMsg reports how the dialog was answered. Tag echoes the value
// passed to Open so the caller can route the answer.
type ConfirmResultMsg struct {
	Tag      string
	Accepted bool
}

var confirmStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Red).
	Background(theme.Mantle).
	Foreground(theme.Text).
	Padding(0, 1)

// Confirm is a modal yes/no prompt. While visible it swallows all key input
// until the user answers with y, or declines with n or esc.
type Confirm struct {
	prompt  string
	tag     string
	visible bool
}

func (c Confirm) Visible() bool { return c.visible }

// Open shows the dialog with the given question.
func (c *Confirm) Open(tag, prompt string) {
	c.tag = tag
	c.prompt = prompt
	c.visible = true
}

func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	if !c.visible {
		return c, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	tag := c.tag
	switch key.String() {
	case "y", "Y":
		c.visible = false
		return c, func() tea.Msg { return ConfirmResultMsg{Tag: tag, Accepted: true} }
	case "n", "N", "esc":
		c.visible = false
		return c, func() tea.Msg { return ConfirmResultMsg{Tag: tag, Accepted: false} }
	}
	return c, nil
}

func (c Confirm) View() string {
	if !c.visible {
		return ""
	}
	body := theme.Danger.Render(c.prompt) + "\n\n" +
		theme.Muted.Render("y: confirm   n/esc: cancel")
	return confirmStyle.Render(body)
}
