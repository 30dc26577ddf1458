package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazycommit/internal/models"
	"github.com/chmouel/lazycommit/internal/theme"
)

func newTestPrinter(width int) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &Printer{Out: &out, Err: &errOut, Thm: theme.Dracula(), Width: width}, &out, &errOut
}

func TestPrinterRoutesStreams(t *testing.T) {
	p, out, errOut := newTestPrinter(80)

	p.Success("Committed %d files", 2)
	p.Info("Fetching")
	p.Warning("stash pop failed")
	p.Error("boom")

	assert.Contains(t, out.String(), "✓ Committed 2 files")
	assert.Contains(t, out.String(), "ℹ Fetching")
	assert.NotContains(t, out.String(), "boom")
	assert.Contains(t, errOut.String(), "⚠ stash pop failed")
	assert.Contains(t, errOut.String(), "✗ boom")
}

func TestPrinterWrapsLongMessages(t *testing.T) {
	p, out, _ := newTestPrinter(30)

	p.Info("%s", strings.Repeat("word ", 20))
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, len([]rune(strings.TrimRight(l, " "))), 30)
	}
	assert.True(t, strings.HasPrefix(lines[1], "  "))
}

func TestShowChanges(t *testing.T) {
	p, out, _ := newTestPrinter(80)

	p.ShowChanges([]models.Change{
		{Kind: models.Modified, Path: "main.go"},
		{Kind: models.Renamed, Path: "new.go", OrigPath: "old.go"},
		{Kind: models.Untracked, Path: "notes.txt"},
	})

	got := out.String()
	assert.Contains(t, got, "Changes (3):")
	assert.Contains(t, got, "Modified   main.go")
	assert.Contains(t, got, "old.go → new.go")
	assert.Contains(t, got, "Untracked  notes.txt")
}

func TestShowChangesTruncates(t *testing.T) {
	p, out, _ := newTestPrinter(24)

	p.ShowChanges([]models.Change{{Kind: models.Added, Path: strings.Repeat("a", 60) + ".go"}})
	assert.Contains(t, out.String(), "…")
}

func TestShowRecentCommits(t *testing.T) {
	p, out, _ := newTestPrinter(80)

	p.ShowRecentCommits(nil)
	assert.Empty(t, out.String())

	p.ShowRecentCommits([]string{"abc1234 ✨ feat: add login", "def5678 🐛 fix: crash"})
	got := out.String()
	assert.Contains(t, got, "Recent commits:")
	assert.Contains(t, got, "abc1234 ✨ feat: add login")
	assert.Contains(t, got, "def5678 🐛 fix: crash")
}

func TestShowDraft(t *testing.T) {
	p, out, _ := newTestPrinter(80)

	p.ShowDraft(models.CommitDraft{
		Emoji: models.Emoji{Glyph: "🐛", Code: ":bug:"},
		Title: "fix: handle nil",
		Body:  "Guard against a nil pointer.",
		Files: []string{"a.go", "b.go"},
	})

	got := out.String()
	assert.Contains(t, got, "🐛 fix: handle nil")
	assert.Contains(t, got, "Guard against a nil pointer.")
	assert.Contains(t, got, "Files: a.go, b.go")
}

func TestFileIcon(t *testing.T) {
	assert.Empty(t, FileIcon(""))
	assert.NotEmpty(t, FileIcon("cmd/main.go"))
	assert.NotEmpty(t, FileIcon("docs/"))
	assert.Empty(t, iconWithSpace(""))
	assert.Equal(t, "x ", iconWithSpace("x"))
}

func TestChangeOptions(t *testing.T) {
	thm := theme.Nord()
	changes := []models.Change{
		{Kind: models.Added, Path: "a.go"},
		{Kind: models.Renamed, Path: "c.go", OrigPath: "b.go"},
	}

	opts := ChangeOptions(changes, thm, false)
	require.Len(t, opts, 2)
	assert.Equal(t, "a.go", opts[0].Label)
	assert.Equal(t, "(Added)", opts[0].Description)
	assert.Equal(t, thm.KindColor(models.Added), opts[0].Color)
	assert.Empty(t, opts[0].Icon)
	assert.Equal(t, "(Renamed from b.go)", opts[1].Description)

	withIcons := ChangeOptions(changes, thm, true)
	assert.NotEmpty(t, withIcons[0].Icon)
}

func TestEmojiOptions(t *testing.T) {
	opts := EmojiOptions([]models.Emoji{{Glyph: "✨", Code: ":sparkles:", Description: "Introduce new features"}})
	require.Len(t, opts, 1)
	assert.Equal(t, "✨ :sparkles:", opts[0].Label)
	assert.Equal(t, "Introduce new features", opts[0].Description)
}
