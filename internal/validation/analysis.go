package validation

import (
	"strings"

	"github.com/chmouel/lazycommit/internal/models"
)

// Analysis summarizes a change set by kind and by file family.
type Analysis struct {
	Added     int
	Modified  int
	Deleted   int
	Renamed   int
	Copied    int
	Untracked int

	GoFiles     int
	RustFiles   int
	JSFiles     int
	PythonFiles int
	DocFiles    int
	TestFiles   int
}

// AnalyzeChanges counts the changes per kind and per file family.
func AnalyzeChanges(changes []models.Change) Analysis {
	var a Analysis
	for _, c := range changes {
		switch c.Kind {
		case models.Added:
			a.Added++
		case models.Modified:
			a.Modified++
		case models.Deleted:
			a.Deleted++
		case models.Renamed:
			a.Renamed++
		case models.Copied:
			a.Copied++
		case models.Untracked:
			a.Untracked++
		}

		lower := strings.ToLower(c.Path)
		switch {
		case strings.Contains(lower, "test"):
			a.TestFiles++
		case strings.HasSuffix(lower, ".go"):
			a.GoFiles++
		case strings.HasSuffix(lower, ".rs"):
			a.RustFiles++
		case strings.HasSuffix(lower, ".js"), strings.HasSuffix(lower, ".ts"):
			a.JSFiles++
		case strings.HasSuffix(lower, ".py"):
			a.PythonFiles++
		case strings.HasSuffix(lower, ".md"):
			a.DocFiles++
		}
	}
	return a
}

// Total is the number of analysed changes.
func (a Analysis) Total() int {
	return a.Added + a.Modified + a.Deleted + a.Renamed + a.Copied + a.Untracked
}

// SuggestType proposes a conventional commit type, if one stands out.
func (a Analysis) SuggestType() (string, bool) {
	total := a.Total()
	switch {
	case a.TestFiles > 0 && a.TestFiles == total:
		return "test", true
	case a.DocFiles > 0 && a.DocFiles == total:
		return "docs", true
	case a.Added > 0 && a.Modified == 0 && a.Deleted == 0:
		return "feat", true
	case a.Deleted > a.Added:
		return "refactor", true
	default:
		return "", false
	}
}
