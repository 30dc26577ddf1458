package prompt

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazycommit/internal/theme"
)

// ChecklistModel lets the user check any number of options.
type ChecklistModel struct {
	Title   string
	Options []Option
	Thm     *theme.Theme

	checked      []bool
	cursor       int
	scrollOffset int
	height       int
	done         bool
	cancelled    bool
}

// NewChecklistModel builds a multi-select prompt with nothing checked.
func NewChecklistModel(title string, options []Option, height int, thm *theme.Theme) *ChecklistModel {
	if height < 3 {
		height = 3
	}
	return &ChecklistModel{
		Title:   title,
		Options: options,
		Thm:     thm,
		checked: make([]bool, len(options)),
		height:  height,
	}
}

// Init implements tea.Model.
func (m *ChecklistModel) Init() tea.Cmd { return nil }

// Cancelled reports whether the user aborted the prompt.
func (m *ChecklistModel) Cancelled() bool { return m.cancelled }

// Checked returns the indexes of the checked options in ascending order.
func (m *ChecklistModel) Checked() []int {
	var out []int
	for i, c := range m.checked {
		if c {
			out = append(out, i)
		}
	}
	return out
}

// Update implements tea.Model.
func (m *ChecklistModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case keyEnter:
		m.done = true
		return m, tea.Quit
	case keyEsc, keyCtrlC, "q":
		for i := range m.checked {
			m.checked[i] = false
		}
		m.cancelled = true
		return m, tea.Quit
	case "up", "k", "ctrl+k":
		m.move(-1)
	case "down", "j", "ctrl+j":
		m.move(1)
	case keySpace, "x":
		if m.cursor < len(m.checked) {
			m.checked[m.cursor] = !m.checked[m.cursor]
		}
	case "a":
		for i := range m.checked {
			m.checked[i] = true
		}
	case "n":
		for i := range m.checked {
			m.checked[i] = false
		}
	}
	return m, nil
}

func (m *ChecklistModel) move(delta int) {
	if len(m.Options) == 0 {
		return
	}
	m.cursor = max(0, min(len(m.Options)-1, m.cursor+delta))
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+m.height {
		m.scrollOffset = m.cursor - m.height + 1
	}
}

// View implements tea.Model.
func (m *ChecklistModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Foreground(m.Thm.Accent).Bold(true)
	cursorStyle := lipgloss.NewStyle().Foreground(m.Thm.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(m.Thm.MutedFg)
	hint := lipgloss.NewStyle().Foreground(m.Thm.MutedFg)

	var b strings.Builder
	b.WriteString(titleStyle.Render("? "+m.Title) + "\n")

	end := min(m.scrollOffset+m.height, len(m.Options))
	for i := m.scrollOffset; i < end; i++ {
		opt := m.Options[i]

		checkbox := "[ ] "
		if m.checked[i] {
			checkbox = "[x] "
		}
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("❯ ")
		}

		label := opt.Label
		if opt.Icon != "" {
			label = opt.Icon + " " + label
		}
		labelStyle := lipgloss.NewStyle().Foreground(m.Thm.TextFg)
		if opt.Color != "" {
			labelStyle = labelStyle.Foreground(opt.Color)
		}
		if i == m.cursor {
			labelStyle = labelStyle.Bold(true)
		}

		line := pointer + checkbox + labelStyle.Render(label)
		if opt.Description != "" {
			line += " " + descStyle.Render(opt.Description)
		}
		b.WriteString(line + "\n")
	}

	count := len(m.Checked())
	b.WriteString(hint.Render(fmt.Sprintf("%d selected • space to toggle • a/n all/none • enter to confirm • esc to cancel", count)) + "\n")
	return b.String()
}
