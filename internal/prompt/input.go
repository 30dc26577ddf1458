package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/chmouel/lazycommit/internal/theme"
)

const helpWrapWidth = 72

// InputModel reads a single line, or several lines when Multiline is set.
type InputModel struct {
	Spec      InputSpec
	Input     textinput.Model
	Area      textarea.Model
	Thm       *theme.Theme
	done      bool
	cancelled bool
}

// NewInputModel creates a text prompt from spec.
func NewInputModel(spec InputSpec, thm *theme.Theme) *InputModel {
	m := &InputModel{Spec: spec, Thm: thm}

	if spec.Multiline {
		ta := textarea.New()
		ta.Placeholder = spec.Placeholder
		ta.SetValue(spec.Default)
		ta.Prompt = "┃ "
		ta.ShowLineNumbers = false
		ta.CharLimit = 0
		ta.SetWidth(helpWrapWidth + 4)
		ta.SetHeight(6)

		focused, _ := textarea.DefaultStyles()
		focused.Text = lipgloss.NewStyle().Foreground(thm.TextFg)
		focused.Prompt = lipgloss.NewStyle().Foreground(thm.Accent)
		focused.Placeholder = lipgloss.NewStyle().Foreground(thm.MutedFg).Italic(true)
		focused.CursorLine = lipgloss.NewStyle().Foreground(thm.TextFg)
		focused.EndOfBuffer = lipgloss.NewStyle().Foreground(thm.MutedFg)
		ta.FocusedStyle = focused
		ta.Focus()
		m.Area = ta
		return m
	}

	ti := textinput.New()
	ti.Placeholder = spec.Placeholder
	ti.SetValue(spec.Default)
	ti.CharLimit = 200
	ti.Prompt = "> "
	ti.Width = helpWrapWidth
	ti.TextStyle = lipgloss.NewStyle().Foreground(thm.TextFg)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(thm.MutedFg).Italic(true)
	ti.Focus()
	m.Input = ti
	return m
}

// Init implements tea.Model.
func (m *InputModel) Init() tea.Cmd {
	if m.Spec.Multiline {
		return textarea.Blink
	}
	return textinput.Blink
}

// Cancelled reports whether the user aborted the prompt.
func (m *InputModel) Cancelled() bool { return m.cancelled }

// Value returns the entered text.
func (m *InputModel) Value() string {
	if m.Spec.Multiline {
		return strings.TrimRight(m.Area.Value(), "\n")
	}
	return m.Input.Value()
}

// Update implements tea.Model.
func (m *InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case keyEsc, keyCtrlC:
		m.cancelled = true
		return m, tea.Quit
	case keyCtrlS:
		m.done = true
		return m, tea.Quit
	case keyEnter:
		if !m.Spec.Multiline {
			m.done = true
			return m, tea.Quit
		}
	case keyTab:
		// tab accepts the suggestion shown as placeholder
		if !m.Spec.Multiline && m.Input.Value() == "" && m.Spec.Placeholder != "" {
			m.Input.SetValue(m.Spec.Placeholder)
			m.Input.CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.Spec.Multiline {
		m.Area, cmd = m.Area.Update(msg)
	} else {
		m.Input, cmd = m.Input.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *InputModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	promptStyle := lipgloss.NewStyle().Foreground(m.Thm.Accent).Bold(true)
	helpStyle := lipgloss.NewStyle().Foreground(m.Thm.MutedFg)

	var b strings.Builder
	b.WriteString(promptStyle.Render("? "+m.Spec.Prompt) + "\n")
	if m.Spec.Multiline {
		b.WriteString(m.Area.View() + "\n")
	} else {
		b.WriteString(m.Input.View() + "\n")
	}
	if m.Spec.Help != "" {
		b.WriteString(helpStyle.Render(wordwrap.String(m.Spec.Help, helpWrapWidth)) + "\n")
	}

	keys := "enter to submit • tab to use suggestion • esc to cancel"
	if m.Spec.Multiline {
		keys = "ctrl+s to submit • esc to cancel"
	}
	b.WriteString(helpStyle.Render(keys) + "\n")
	return b.String()
}
