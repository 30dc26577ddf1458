// Package models defines the data objects shared across lazycommit packages.
package models

import "strings"

// ChangeKind classifies one entry of `git status --porcelain`.
type ChangeKind int

// Change kinds, in the order they are reported to the user.
const (
	Untracked ChangeKind = iota
	Added
	Modified
	Deleted
	Renamed
	Copied
)

// Display colour names, resolved to a concrete palette by the theme package.
const (
	ColorMagenta = "magenta"
	ColorGreen   = "green"
	ColorYellow  = "yellow"
	ColorRed     = "red"
	ColorBlue    = "blue"
	ColorCyan    = "cyan"
)

func (k ChangeKind) String() string {
	switch k {
	case Untracked:
		return "Untracked"
	case Added:
		return "Added"
	case Modified:
		return "Modified"
	case Deleted:
		return "Deleted"
	case Renamed:
		return "Renamed"
	case Copied:
		return "Copied"
	default:
		return "Unknown"
	}
}

// Color returns the presentation hint tied to the kind.
func (k ChangeKind) Color() string {
	switch k {
	case Untracked:
		return ColorMagenta
	case Added:
		return ColorGreen
	case Deleted:
		return ColorRed
	case Renamed:
		return ColorBlue
	case Copied:
		return ColorCyan
	default:
		return ColorYellow
	}
}

// Change is one modified path in the working tree.
type Change struct {
	Kind ChangeKind
	Path string
	// OrigPath is set for renames and copies ("old -> new").
	OrigPath string
}

// Color returns the display colour name for the change.
func (c Change) Color() string { return c.Kind.Color() }

// Emoji is one entry of the gitmoji catalogue.
type Emoji struct {
	Glyph       string `json:"emoji"`
	Entity      string `json:"entity"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Name        string `json:"name"`
}

// Label renders the emoji the way selection lists show it.
func (e Emoji) Label() string {
	return e.Glyph + " " + e.Code
}

// CommitDraft collects the pieces of a commit message during one run.
type CommitDraft struct {
	Emoji Emoji
	Title string
	Body  string
	Files []string
}

// Subject is the first commit message line: glyph, space, title.
func (d CommitDraft) Subject() string {
	if d.Emoji.Glyph == "" {
		return d.Title
	}
	return d.Emoji.Glyph + " " + d.Title
}

// HasBody reports whether the draft carries a non-blank body.
func (d CommitDraft) HasBody() bool {
	return strings.TrimSpace(d.Body) != ""
}

// Paths returns the paths of the given changes, preserving order.
func Paths(changes []Change) []string {
	out := make([]string, 0, len(changes))
	for _, c := range changes {
		out = append(out, c.Path)
	}
	return out
}
