package validation

import (
	"fmt"
	"strings"
)

// Template is a predefined commit shape.
type Template struct {
	Name         string
	Emoji        string
	Type         string
	BodyTemplate string
}

var templates = []Template{
	{Name: "Feature", Emoji: "✨", Type: "feat", BodyTemplate: "Add {feature}\n\n- {detail1}\n- {detail2}"},
	{Name: "Bugfix", Emoji: "🐛", Type: "fix", BodyTemplate: "Fix {issue}\n\nResolves #{issue_number}"},
	{Name: "Documentation", Emoji: "📝", Type: "docs", BodyTemplate: "Update documentation for {component}"},
	{Name: "Refactor", Emoji: "♻️", Type: "refactor", BodyTemplate: "Refactor {component}\n\n- Improve {aspect1}\n- Simplify {aspect2}"},
	{Name: "Style", Emoji: "💄", Type: "style", BodyTemplate: "Update styles for {component}"},
	{Name: "Test", Emoji: "✅", Type: "test", BodyTemplate: "Add tests for {component}"},
	{Name: "Chore", Emoji: "🔧", Type: "chore", BodyTemplate: "Update {component}"},
}

// Templates returns the built-in commit templates.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// FindTemplate looks a template up by name or type, ignoring case.
func FindTemplate(name string) (Template, error) {
	name = strings.TrimSpace(name)
	for _, t := range templates {
		if strings.EqualFold(t.Name, name) || strings.EqualFold(t.Type, name) {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("unknown template %q", name)
}

// TitleFormat is the title pattern shown to users, e.g. "feat: {title}".
func (t Template) TitleFormat() string {
	return t.Type + ": {title}"
}

// Prefix is the conventional prefix the template adds to titles.
func (t Template) Prefix() string {
	return t.Type + ": "
}

// ApplyTitle prefixes title with the template type unless it is already
// a conventional commit title.
func (t Template) ApplyTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" || IsConventional(title) {
		return title
	}
	return t.Prefix() + title
}
