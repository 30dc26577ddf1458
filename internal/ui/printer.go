// Package ui renders everything lazycommit prints outside of prompts.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"golang.org/x/term"

	"github.com/chmouel/lazycommit/internal/models"
	"github.com/chmouel/lazycommit/internal/theme"
)

const (
	defaultWidth = 80
	maxWidth     = 120
)

// Printer writes coloured status lines. Messages go to Out, errors to Err.
type Printer struct {
	Out       io.Writer
	Err       io.Writer
	Thm       *theme.Theme
	Width     int
	ShowIcons bool
}

// NewPrinter returns a Printer on stdout/stderr sized to the terminal.
func NewPrinter(thm *theme.Theme, showIcons bool) *Printer {
	if thm == nil {
		thm = theme.Dracula()
	}
	return &Printer{
		Out:       os.Stdout,
		Err:       os.Stderr,
		Thm:       thm,
		Width:     TerminalWidth(os.Stdout),
		ShowIcons: showIcons,
	}
}

// TerminalWidth returns the column count of f, or a default when f is
// not a terminal.
func TerminalWidth(f *os.File) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return min(w, maxWidth)
}

func (p *Printer) width() int {
	if p.Width <= 0 {
		return defaultWidth
	}
	return p.Width
}

// fill wraps on word boundaries first, then hard-wraps what is still too
// long (paths, hashes).
func (p *Printer) fill(s string, indent int) string {
	w := p.width() - indent
	if w < 20 {
		return s
	}
	return wrap.String(wordwrap.String(s, w), w)
}

func (p *Printer) line(out io.Writer, style lipgloss.Style, symbol, msg string) {
	lines := strings.Split(p.fill(msg, 2), "\n")
	for i, l := range lines {
		prefix := "  "
		if i == 0 {
			prefix = symbol + " "
		}
		_, _ = fmt.Fprintln(out, style.Render(prefix+l))
	}
}

// Success reports a completed step.
func (p *Printer) Success(format string, args ...any) {
	p.line(p.Out, lipgloss.NewStyle().Foreground(p.Thm.SuccessFg), "✓", fmt.Sprintf(format, args...))
}

// Info reports progress.
func (p *Printer) Info(format string, args ...any) {
	p.line(p.Out, lipgloss.NewStyle().Foreground(p.Thm.Cyan), "ℹ", fmt.Sprintf(format, args...))
}

// Warning reports a problem the run recovers from.
func (p *Printer) Warning(format string, args ...any) {
	p.line(p.Err, lipgloss.NewStyle().Foreground(p.Thm.WarnFg), "⚠", fmt.Sprintf(format, args...))
}

// Error reports a fatal problem.
func (p *Printer) Error(format string, args ...any) {
	p.line(p.Err, lipgloss.NewStyle().Foreground(p.Thm.ErrorFg).Bold(true), "✗", fmt.Sprintf(format, args...))
}

// Notice prints a muted line without a symbol.
func (p *Printer) Notice(format string, args ...any) {
	style := lipgloss.NewStyle().Foreground(p.Thm.MutedFg)
	for _, l := range strings.Split(p.fill(fmt.Sprintf(format, args...), 0), "\n") {
		_, _ = fmt.Fprintln(p.Out, style.Render(l))
	}
}

// Header prints a bold section title.
func (p *Printer) Header(title string) {
	style := lipgloss.NewStyle().Foreground(p.Thm.Accent).Bold(true)
	_, _ = fmt.Fprintln(p.Out, style.Render(title))
}

// ShowChanges lists a change set, one coloured line per change.
func (p *Printer) ShowChanges(changes []models.Change) {
	p.Header(fmt.Sprintf("Changes (%d):", len(changes)))

	kindWidth := 0
	for _, c := range changes {
		kindWidth = max(kindWidth, ansi.StringWidth(c.Kind.String()))
	}
	for _, c := range changes {
		style := lipgloss.NewStyle().Foreground(p.Thm.KindColor(c.Kind))
		kind := c.Kind.String()
		kind += strings.Repeat(" ", kindWidth-ansi.StringWidth(kind))

		name := c.Path
		if c.OrigPath != "" {
			name = c.OrigPath + " → " + c.Path
		}
		if p.ShowIcons {
			name = iconWithSpace(FileIcon(c.Path)) + name
		}
		row := ansi.Truncate("  "+kind+"  "+name, p.width(), "…")
		_, _ = fmt.Fprintln(p.Out, style.Render(row))
	}
}

// ShowDraft prints a composed commit message.
func (p *Printer) ShowDraft(draft models.CommitDraft) {
	subject := lipgloss.NewStyle().Foreground(p.Thm.TextFg).Bold(true)
	_, _ = fmt.Fprintln(p.Out, subject.Render(draft.Subject()))
	if draft.HasBody() {
		_, _ = fmt.Fprintln(p.Out)
		_, _ = fmt.Fprintln(p.Out, lipgloss.NewStyle().Foreground(p.Thm.TextFg).Render(draft.Body))
	}
	if len(draft.Files) > 0 {
		_, _ = fmt.Fprintln(p.Out)
		p.Notice("Files: %s", strings.Join(draft.Files, ", "))
	}
}

// ShowRecentCommits prints `git log --oneline` entries with the hash highlighted.
func (p *Printer) ShowRecentCommits(commits []string) {
	if len(commits) == 0 {
		return
	}
	p.Header("Recent commits:")
	hashStyle := lipgloss.NewStyle().Foreground(p.Thm.Yellow)
	textStyle := lipgloss.NewStyle().Foreground(p.Thm.TextFg)
	for _, c := range commits {
		c = ansi.Truncate(c, p.width()-2, "…")
		hash, rest, _ := strings.Cut(c, " ")
		_, _ = fmt.Fprintln(p.Out, "  "+hashStyle.Render(hash)+" "+textStyle.Render(rest))
	}
}
