// Package emoji loads the gitmoji catalogue and resolves user input against it.
package emoji

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chmouel/lazycommit/internal/config"
	"github.com/chmouel/lazycommit/internal/models"
)

// FileName is the name of the user catalogue inside the config directory.
const FileName = "emojis.json"

// ErrInvalidEmoji is returned when a value matches no catalogue entry.
var ErrInvalidEmoji = errors.New("invalid emoji")

//go:embed default_emojis.json
var defaultCatalogue []byte

// Catalogue is the read-only list of emojis available for commits.
type Catalogue struct {
	Emojis []models.Emoji `json:"emojis"`
}

// DefaultPath returns the location of the user catalogue.
func DefaultPath() string {
	return filepath.Join(config.Dir(), FileName)
}

// Parse decodes a catalogue document.
func Parse(data []byte) (*Catalogue, error) {
	var c Catalogue
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if len(c.Emojis) == 0 {
		return nil, errors.New("catalogue has no emojis")
	}
	return &c, nil
}

// Default returns the built-in catalogue.
func Default() *Catalogue {
	c, err := Parse(defaultCatalogue)
	if err != nil {
		panic(fmt.Sprintf("embedded emoji catalogue: %v", err))
	}
	return c
}

// Load reads the catalogue at path (DefaultPath() when empty), writing the
// built-in set there first when the file does not exist.
func Load(path string) (*Catalogue, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path) //nolint:gosec
	if os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return Default(), err
		}
		if err := os.WriteFile(path, defaultCatalogue, 0o600); err != nil {
			return Default(), err
		}
		return Default(), nil
	}
	if err != nil {
		return Default(), err
	}

	c, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// normalizeGlyph drops variation selectors so "⚡" matches "⚡️".
func normalizeGlyph(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\uFE0F", "")
}

func normalizeCode(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return ":" + strings.Trim(s, ":") + ":"
}

// Find looks up an entry by glyph, by ":code:" or by bare code name.
func (c *Catalogue) Find(value string) (models.Emoji, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return models.Emoji{}, false
	}
	glyph := normalizeGlyph(value)
	code := normalizeCode(value)
	for _, e := range c.Emojis {
		if normalizeGlyph(e.Glyph) == glyph || strings.EqualFold(e.Code, code) {
			return e, true
		}
	}
	return models.Emoji{}, false
}

// Resolve is Find returning ErrInvalidEmoji when nothing matches.
func (c *Catalogue) Resolve(value string) (models.Emoji, error) {
	if e, ok := c.Find(value); ok {
		return e, nil
	}
	return models.Emoji{}, fmt.Errorf("%w: %q matches no glyph or code", ErrInvalidEmoji, value)
}

// Ordered returns the catalogue with the suggested glyphs moved to the
// front, in the order they were suggested.
func (c *Catalogue) Ordered(suggested []string) []models.Emoji {
	out := make([]models.Emoji, 0, len(c.Emojis))
	used := make(map[int]bool, len(suggested))
	for _, glyph := range suggested {
		for i, e := range c.Emojis {
			if !used[i] && normalizeGlyph(e.Glyph) == normalizeGlyph(glyph) {
				out = append(out, e)
				used[i] = true
				break
			}
		}
	}
	for i, e := range c.Emojis {
		if !used[i] {
			out = append(out, e)
		}
	}
	return out
}

// IndexOf returns the position of the entry matching value in list, or -1.
func IndexOf(list []models.Emoji, value string) int {
	glyph := normalizeGlyph(value)
	code := normalizeCode(value)
	for i, e := range list {
		if normalizeGlyph(e.Glyph) == glyph || strings.EqualFold(e.Code, code) {
			return i
		}
	}
	return -1
}
