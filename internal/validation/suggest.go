package validation

import (
	"path"
	"slices"
	"strings"

	"github.com/chmouel/lazycommit/internal/config"
	"github.com/chmouel/lazycommit/internal/models"
)

var dependencyManifests = map[string]struct{}{
	"go.mod":            {},
	"go.sum":            {},
	"package.json":      {},
	"package-lock.json": {},
	"yarn.lock":         {},
	"pnpm-lock.yaml":    {},
	"cargo.toml":        {},
	"cargo.lock":        {},
	"requirements.txt":  {},
	"pyproject.toml":    {},
	"gemfile":           {},
	"gemfile.lock":      {},
	"pom.xml":           {},
	"build.gradle":      {},
	"composer.json":     {},
}

// Placeholder suggestions, highest priority first.
const (
	placeholderDeps    = "chore: update dependencies"
	placeholderDocs    = "docs: update documentation"
	placeholderTests   = "test: add unit tests"
	placeholderConfig  = "chore: update configuration"
	placeholderUI      = "style: improve UI components"
	placeholderFeature = "feat: add new feature"
	placeholderDefault = "fix: resolve issue"
)

func isDependencyManifest(p string) bool {
	_, ok := dependencyManifests[path.Base(strings.ToLower(p))]
	return ok
}

func isDocs(lower string) bool {
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".rst") || strings.Contains(lower, "readme")
}

func isTest(lower string) bool {
	return strings.Contains(lower, "test") || strings.Contains(lower, "spec")
}

func isConfig(lower string) bool {
	for _, ext := range []string{".toml", ".json", ".yml", ".yaml"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// isUI matches style sheets and names carrying "ui": a path token
// ("internal/ui/x.go", "ui-kit.ts") or an upper-case acronym ("ButtonUI.tsx").
// Plain substrings are ignored so that "build" or "guide" do not count.
func isUI(p string) bool {
	lower := strings.ToLower(p)
	if strings.HasSuffix(lower, ".css") || strings.HasSuffix(lower, ".scss") || strings.HasSuffix(lower, ".sass") {
		return true
	}
	if strings.Contains(path.Base(p), "UI") {
		return true
	}
	tokens := strings.FieldsFunc(lower, func(r rune) bool {
		return r == '/' || r == '.' || r == '_' || r == '-'
	})
	return slices.Contains(tokens, "ui")
}

// SuggestPlaceholder derives an advisory title from the change set. The
// result is shown as a placeholder and never applied automatically.
func SuggestPlaceholder(changes []models.Change, cfg config.CommitConfig) string {
	var hasNew, hasConfig, hasUI, hasDeps bool
	// docs and tests only win when they cover every file that is not new
	var existing, existingDocs, existingTests int
	for _, c := range changes {
		lower := strings.ToLower(c.Path)
		isNew := c.Kind == models.Added
		if isNew {
			hasNew = true
		} else {
			existing++
		}
		switch {
		case isDependencyManifest(lower):
			hasDeps = true
		case isDocs(lower):
			if !isNew {
				existingDocs++
			}
		case isTest(lower):
			if !isNew {
				existingTests++
			}
		case isConfig(lower):
			hasConfig = true
		case isUI(c.Path):
			hasUI = true
		}
	}
	onlyDocs := existing > 0 && existingDocs == existing
	onlyTests := existing > 0 && existingTests == existing

	var suggestion string
	switch {
	case hasDeps:
		suggestion = placeholderDeps
	case onlyDocs:
		suggestion = placeholderDocs
	case onlyTests:
		suggestion = placeholderTests
	case hasConfig:
		suggestion = placeholderConfig
	case hasUI:
		suggestion = placeholderUI
	case hasNew:
		suggestion = placeholderFeature
	default:
		suggestion = placeholderDefault
	}

	if cfg.EnforceConventional {
		return suggestion
	}
	_, bare, _ := strings.Cut(suggestion, ": ")
	return bare
}

// Emoji glyphs suggested from file names.
const (
	GlyphDocs     = "📝"
	GlyphTest     = "✅"
	GlyphStyle    = "💄"
	GlyphConfig   = "🔧"
	GlyphDocker   = "🐳"
	GlyphSecurity = "🔒"
	GlyphPerf     = "⚡"
)

func emojiForPath(p string) string {
	lower := strings.ToLower(p)
	base := path.Base(lower)
	switch {
	case strings.HasSuffix(lower, ".md"), strings.HasSuffix(lower, ".rst"), strings.HasSuffix(lower, ".txt"):
		return GlyphDocs
	case isTest(lower):
		return GlyphTest
	case strings.HasSuffix(lower, ".css"), strings.HasSuffix(lower, ".scss"), strings.HasSuffix(lower, ".sass"):
		return GlyphStyle
	case isConfig(lower):
		return GlyphConfig
	case strings.HasPrefix(base, "dockerfile"), strings.HasSuffix(lower, ".dockerfile"):
		return GlyphDocker
	case strings.Contains(lower, "security"), strings.Contains(lower, "auth"):
		return GlyphSecurity
	case strings.Contains(lower, "perf"):
		return GlyphPerf
	default:
		return ""
	}
}

// SuggestEmojis maps file names to candidate glyphs, deduplicated and sorted.
func SuggestEmojis(paths []string) []string {
	var out []string
	for _, p := range paths {
		if glyph := emojiForPath(p); glyph != "" {
			out = append(out, glyph)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
