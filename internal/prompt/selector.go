package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazycommit/internal/theme"
)

// SelectModel picks one option from a filterable list.
type SelectModel struct {
	Title       string
	Options     []Option
	FilterInput textinput.Model
	Thm         *theme.Theme

	// filtered holds indexes into Options.
	filtered     []int
	cursor       int
	scrollOffset int
	height       int
	chosen       int
	cancelled    bool
}

// NewSelectModel builds a select prompt with the cursor on initial.
func NewSelectModel(title string, options []Option, initial, height int, thm *theme.Theme) *SelectModel {
	if height < 3 {
		height = 3
	}

	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.CharLimit = 100
	ti.Prompt = "> "
	ti.Focus()

	m := &SelectModel{
		Title:       title,
		Options:     options,
		FilterInput: ti,
		Thm:         thm,
		height:      height,
		chosen:      -1,
	}
	m.applyFilter()
	if initial >= 0 && initial < len(options) {
		m.cursor = initial
		if m.cursor >= m.height {
			m.scrollOffset = m.cursor - m.height + 1
		}
	}
	return m
}

// Init implements tea.Model.
func (m *SelectModel) Init() tea.Cmd { return textinput.Blink }

// Cancelled reports whether the user aborted the prompt.
func (m *SelectModel) Cancelled() bool { return m.cancelled }

// Selected returns the index in Options of the chosen entry.
func (m *SelectModel) Selected() (int, bool) {
	return m.chosen, m.chosen >= 0
}

// Update implements tea.Model.
func (m *SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case keyEnter:
		if m.cursor >= 0 && m.cursor < len(m.filtered) {
			m.chosen = m.filtered[m.cursor]
			return m, tea.Quit
		}
		return m, nil
	case keyEsc, keyCtrlC:
		m.cancelled = true
		return m, tea.Quit
	case "up", "ctrl+k", "ctrl+p":
		m.move(-1)
		return m, nil
	case "down", "ctrl+j", "ctrl+n":
		m.move(1)
		return m, nil
	case "pgup":
		m.move(-m.height)
		return m, nil
	case "pgdown":
		m.move(m.height)
		return m, nil
	}

	var cmd tea.Cmd
	m.FilterInput, cmd = m.FilterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *SelectModel) move(delta int) {
	if len(m.filtered) == 0 {
		return
	}
	m.cursor = max(0, min(len(m.filtered)-1, m.cursor+delta))
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+m.height {
		m.scrollOffset = m.cursor - m.height + 1
	}
}

func (m *SelectModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.FilterInput.Value()))
	m.filtered = m.filtered[:0]
	for i, opt := range m.Options {
		if query == "" ||
			strings.Contains(strings.ToLower(opt.Label), query) ||
			strings.Contains(strings.ToLower(opt.Description), query) {
			m.filtered = append(m.filtered, i)
		}
	}
	m.cursor = 0
	m.scrollOffset = 0
}

// View implements tea.Model.
func (m *SelectModel) View() string {
	if m.chosen >= 0 || m.cancelled {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Foreground(m.Thm.Accent).Bold(true)
	selectedStyle := lipgloss.NewStyle().
		Background(m.Thm.Accent).
		Foreground(m.Thm.AccentFg).
		Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(m.Thm.MutedFg)
	hint := lipgloss.NewStyle().Foreground(m.Thm.MutedFg)

	var b strings.Builder
	b.WriteString(titleStyle.Render("? "+m.Title) + "\n")
	b.WriteString(m.FilterInput.View() + "\n")

	if len(m.filtered) == 0 {
		b.WriteString(descStyle.Italic(true).Render("  No matches.") + "\n")
	}

	end := min(m.scrollOffset+m.height, len(m.filtered))
	for i := m.scrollOffset; i < end; i++ {
		opt := m.Options[m.filtered[i]]
		label := opt.Label
		if opt.Icon != "" {
			label = opt.Icon + " " + label
		}
		desc := ""
		if opt.Description != "" {
			desc = " " + descStyle.Render(opt.Description)
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("❯ "+label) + desc + "\n")
			continue
		}
		labelStyle := lipgloss.NewStyle().Foreground(m.Thm.TextFg)
		if opt.Color != "" {
			labelStyle = labelStyle.Foreground(opt.Color)
		}
		b.WriteString("  " + labelStyle.Render(label) + desc + "\n")
	}

	b.WriteString(hint.Render(fmt.Sprintf("%d/%d • ↑/↓ to move • enter to select • esc to cancel", len(m.filtered), len(m.Options))) + "\n")
	return b.String()
}
