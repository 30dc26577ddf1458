package ui

import (
	"github.com/chmouel/lazycommit/internal/models"
	"github.com/chmouel/lazycommit/internal/prompt"
	"github.com/chmouel/lazycommit/internal/theme"
)

// ChangeOptions turns a change set into multi-select rows. Row i always
// describes changes[i].
func ChangeOptions(changes []models.Change, thm *theme.Theme, showIcons bool) []prompt.Option {
	opts := make([]prompt.Option, 0, len(changes))
	for _, c := range changes {
		opt := prompt.Option{
			Label:       c.Path,
			Description: "(" + c.Kind.String() + ")",
			Color:       thm.KindColor(c.Kind),
		}
		if c.OrigPath != "" {
			opt.Description = "(" + c.Kind.String() + " from " + c.OrigPath + ")"
		}
		if showIcons {
			opt.Icon = FileIcon(c.Path)
		}
		opts = append(opts, opt)
	}
	return opts
}

// EmojiOptions turns catalogue entries into select rows.
func EmojiOptions(emojis []models.Emoji) []prompt.Option {
	opts := make([]prompt.Option, 0, len(emojis))
	for _, e := range emojis {
		opts = append(opts, prompt.Option{Label: e.Label(), Description: e.Description})
	}
	return opts
}
