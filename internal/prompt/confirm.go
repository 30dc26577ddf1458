package prompt

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazycommit/internal/theme"
)

// ConfirmModel asks a yes/no question.
type ConfirmModel struct {
	Message   string
	Yes       bool
	Thm       *theme.Theme
	done      bool
	cancelled bool
}

// NewConfirmModel creates a confirm prompt focused on the default answer.
func NewConfirmModel(message string, defaultYes bool, thm *theme.Theme) *ConfirmModel {
	return &ConfirmModel{Message: message, Yes: defaultYes, Thm: thm}
}

// Init implements tea.Model.
func (m *ConfirmModel) Init() tea.Cmd { return nil }

// Cancelled reports whether the user aborted the prompt.
func (m *ConfirmModel) Cancelled() bool { return m.cancelled }

// Update implements tea.Model.
func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case keyTab, keyShiftTab, "left", "right", "h", "l":
		m.Yes = !m.Yes
	case "y", "Y":
		m.Yes = true
		m.done = true
		return m, tea.Quit
	case "n", "N":
		m.Yes = false
		m.done = true
		return m, tea.Quit
	case keyEnter:
		m.done = true
		return m, tea.Quit
	case keyEsc, keyCtrlC, "q":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m *ConfirmModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	messageStyle := lipgloss.NewStyle().Foreground(m.Thm.TextFg).Bold(true)
	focused := lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(m.Thm.AccentFg).
		Background(m.Thm.Accent).
		Bold(true)
	unfocused := lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(m.Thm.MutedFg).
		Background(m.Thm.BorderDim)
	hint := lipgloss.NewStyle().Foreground(m.Thm.MutedFg)

	yes, no := unfocused.Render("Yes"), focused.Render("No")
	if m.Yes {
		yes, no = focused.Render("Yes"), unfocused.Render("No")
	}

	return fmt.Sprintf("%s\n\n%s  %s\n%s\n",
		messageStyle.Render("? "+m.Message),
		yes, no,
		hint.Render("y/n to answer • ←/→ to switch • enter to accept • esc to cancel"),
	)
}
