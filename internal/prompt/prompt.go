// Package prompt implements the interactive questions asked during a
// commit run as small bubbletea programs.
package prompt

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazycommit/internal/theme"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("operation cancelled")

// Key constants for navigation.
const (
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyCtrlC    = "ctrl+c"
	keyCtrlS    = "ctrl+s"
	keySpace    = " "
)

// Option is one selectable row. The caller keeps the mapping from the
// returned index back to its own records.
type Option struct {
	Label       string
	Description string
	Icon        string
	Color       lipgloss.Color
}

// InputSpec describes a free text question.
type InputSpec struct {
	Prompt      string
	Placeholder string
	Help        string
	Default     string
	Multiline   bool
}

// Prompter asks the user questions.
type Prompter interface {
	Confirm(ctx context.Context, message string, defaultYes bool) (bool, error)
	// Select returns the index of the chosen option; initial places the cursor.
	Select(ctx context.Context, title string, options []Option, initial int) (int, error)
	// MultiSelect returns the indexes of the checked options in ascending order.
	MultiSelect(ctx context.Context, title string, options []Option) ([]int, error)
	Input(ctx context.Context, spec InputSpec) (string, error)
}

// TUI is the terminal Prompter.
type TUI struct {
	Thm *theme.Theme
	In  io.Reader
	Out io.Writer
	// Height bounds the number of visible list rows.
	Height int
}

var _ Prompter = (*TUI)(nil)

// NewTUI returns a Prompter drawing on the controlling terminal.
func NewTUI(thm *theme.Theme) *TUI {
	if thm == nil {
		thm = theme.Dracula()
	}
	return &TUI{Thm: thm, Height: 12}
}

// finisher is implemented by every prompt model.
type finisher interface {
	tea.Model
	Cancelled() bool
}

func (p *TUI) run(ctx context.Context, m finisher) (tea.Model, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.In != nil {
		opts = append(opts, tea.WithInput(p.In))
	}
	if p.Out != nil {
		opts = append(opts, tea.WithOutput(p.Out))
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			return nil, ErrCancelled
		}
		return nil, err
	}
	if f, ok := final.(finisher); ok && f.Cancelled() {
		return nil, ErrCancelled
	}
	return final, nil
}

// Confirm implements Prompter.
func (p *TUI) Confirm(ctx context.Context, message string, defaultYes bool) (bool, error) {
	final, err := p.run(ctx, NewConfirmModel(message, defaultYes, p.Thm))
	if err != nil {
		return false, err
	}
	return final.(*ConfirmModel).Yes, nil
}

// Select implements Prompter.
func (p *TUI) Select(ctx context.Context, title string, options []Option, initial int) (int, error) {
	final, err := p.run(ctx, NewSelectModel(title, options, initial, p.Height, p.Thm))
	if err != nil {
		return -1, err
	}
	idx, ok := final.(*SelectModel).Selected()
	if !ok {
		return -1, ErrCancelled
	}
	return idx, nil
}

// MultiSelect implements Prompter.
func (p *TUI) MultiSelect(ctx context.Context, title string, options []Option) ([]int, error) {
	final, err := p.run(ctx, NewChecklistModel(title, options, p.Height, p.Thm))
	if err != nil {
		return nil, err
	}
	return final.(*ChecklistModel).Checked(), nil
}

// Input implements Prompter.
func (p *TUI) Input(ctx context.Context, spec InputSpec) (string, error) {
	final, err := p.run(ctx, NewInputModel(spec, p.Thm))
	if err != nil {
		return "", err
	}
	return final.(*InputModel).Value(), nil
}
