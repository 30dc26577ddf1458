package git

import (
	"strconv"
	"strings"

	"github.com/chmouel/lazycommit/internal/models"
)

// kindPriority is the order in which status letters are matched when the
// index and worktree columns disagree.
var kindPriority = []struct {
	code byte
	kind models.ChangeKind
}{
	{'A', models.Added},
	{'M', models.Modified},
	{'D', models.Deleted},
	{'R', models.Renamed},
	{'C', models.Copied},
}

// ParseStatus converts `git status --porcelain` output into changes,
// preserving the order git reported them in. Lines shorter than three
// characters are skipped.
func ParseStatus(output string) []models.Change {
	var changes []models.Change
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if len(line) < 3 {
			continue
		}
		changes = append(changes, parseStatusLine(line))
	}
	return changes
}

func parseStatusLine(line string) models.Change {
	index, worktree := line[0], line[1]
	change := models.Change{Kind: classify(index, worktree)}

	path := line[3:]
	if strings.ContainsAny(line[:2], "RC") {
		if from, to, ok := strings.Cut(path, " -> "); ok {
			change.OrigPath = unquotePath(from)
			path = to
		}
	}
	change.Path = unquotePath(path)
	return change
}

func classify(index, worktree byte) models.ChangeKind {
	if index == '?' && worktree == '?' {
		return models.Untracked
	}
	for _, p := range kindPriority {
		if index == p.code || worktree == p.code {
			return p.kind
		}
	}
	return models.Modified
}

// unquotePath undoes the C-style quoting git applies to unusual paths.
func unquotePath(path string) string {
	if len(path) >= 2 && strings.HasPrefix(path, `"`) && strings.HasSuffix(path, `"`) {
		if unquoted, err := strconv.Unquote(path); err == nil {
			return unquoted
		}
	}
	return path
}
