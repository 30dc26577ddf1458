// Package validation checks commit messages against the configured rules
// and derives suggestions from the staged change set. Everything here is
// pure: no I/O and no global state.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/chmouel/lazycommit/internal/config"
)

// ErrValidation is matched by every *Error.
var ErrValidation = errors.New("validation failed")

// ConventionalTypes is the fixed vocabulary of conventional commit types.
var ConventionalTypes = []string{
	"feat", "fix", "docs", "style", "refactor",
	"test", "chore", "perf", "ci", "build", "revert",
}

// Kind identifies one broken rule.
type Kind int

// Rule violations.
const (
	EmptyTitle Kind = iota
	TitleTooLong
	NotConventionalCommit
	BodyTooLong
)

func (k Kind) String() string {
	switch k {
	case EmptyTitle:
		return "EmptyTitle"
	case TitleTooLong:
		return "TitleTooLong"
	case NotConventionalCommit:
		return "NotConventionalCommit"
	case BodyTooLong:
		return "BodyTooLong"
	default:
		return "Unknown"
	}
}

// Violation pairs a broken rule with its user-facing explanation.
type Violation struct {
	Kind    Kind
	Message string
}

// Error lists every rule a title or body broke.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "\n\n")
}

// Is makes errors.Is(err, ErrValidation) true for any *Error.
func (e *Error) Is(target error) bool {
	return target == ErrValidation
}

// Has reports whether the error contains a violation of kind k.
func (e *Error) Has(k Kind) bool {
	for _, v := range e.Violations {
		if v.Kind == k {
			return true
		}
	}
	return false
}

// Kinds returns the violated rules in the order they were checked.
func (e *Error) Kinds() []Kind {
	out := make([]Kind, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.Kind)
	}
	return out
}

const conventionalHelp = `Must follow conventional commit format: type(scope): description
Valid types: feat, fix, docs, style, refactor, test, chore, perf, ci, build, revert
Examples:
  • feat: add user authentication
  • fix(ui): resolve button alignment
  • docs: update installation guide`

// IsConventional reports whether title starts with "<type>: " or "<type>(".
func IsConventional(title string) bool {
	for _, t := range ConventionalTypes {
		if strings.HasPrefix(title, t+": ") || strings.HasPrefix(title, t+"(") {
			return true
		}
	}
	return false
}

// ValidateTitle checks the length and format rules. Both checks always run.
func ValidateTitle(title string, cfg config.CommitConfig) error {
	if strings.TrimSpace(title) == "" {
		return &Error{Violations: []Violation{{Kind: EmptyTitle, Message: "Commit title cannot be empty"}}}
	}

	var violations []Violation
	if n := utf8.RuneCountInString(title); n > cfg.MaxTitleLength {
		violations = append(violations, Violation{
			Kind:    TitleTooLong,
			Message: fmt.Sprintf("Title is %d characters (max %d)", n, cfg.MaxTitleLength),
		})
	}
	if cfg.EnforceConventional && !IsConventional(title) {
		violations = append(violations, Violation{Kind: NotConventionalCommit, Message: conventionalHelp})
	}

	if len(violations) > 0 {
		return &Error{Violations: violations}
	}
	return nil
}

// ValidateBody rejects a body whose first offending line exceeds MaxBodyLength.
func ValidateBody(body string, cfg config.CommitConfig) error {
	for i, line := range strings.Split(body, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if n := utf8.RuneCountInString(line); n > cfg.MaxBodyLength {
			return &Error{Violations: []Violation{{
				Kind:    BodyTooLong,
				Message: fmt.Sprintf("Body line %d is %d characters, lines should be %d characters or less", i+1, n, cfg.MaxBodyLength),
			}}}
		}
	}
	return nil
}

// CapitalizeFirst upper-cases the first rune of s.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// FormatTitle trims the title and applies auto-capitalization to titles
// that are not conventional commits, whose type must stay lower case.
func FormatTitle(title string, cfg config.CommitConfig) string {
	title = strings.TrimSpace(title)
	if cfg.AutoCapitalizeTitle && !IsConventional(title) {
		return CapitalizeFirst(title)
	}
	return title
}

// TitleHelp is the guidance shown below the title prompt.
func TitleHelp(cfg config.CommitConfig) string {
	if !cfg.EnforceConventional {
		return fmt.Sprintf("Max length: %d characters", cfg.MaxTitleLength)
	}
	return fmt.Sprintf("Use conventional commit format: type(scope): description\n"+
		"Types: %s\n"+
		"Example: feat: add user authentication\n"+
		"Max length: %d characters", strings.Join(ConventionalTypes, ", "), cfg.MaxTitleLength)
}
