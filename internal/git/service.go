// Package git wraps the git commands used by lazycommit.
package git

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chmouel/lazycommit/internal/models"
)

// LogFn receives debug messages.
type LogFn func(format string, args ...any)

// Service runs git operations against one repository.
type Service struct {
	exec Executor
	logf LogFn
	dir  string
	root string
}

// NewService constructs a Service running git from dir.
func NewService(exec Executor, dir string, logf LogFn) *Service {
	if exec == nil {
		exec = NewExecExecutor()
	}
	return &Service{exec: exec, logf: logf, dir: dir}
}

func (s *Service) debugf(format string, args ...any) {
	if s.logf == nil {
		return
	}
	s.logf(format, args...)
}

// workdir is the repository toplevel once known, the starting directory otherwise.
func (s *Service) workdir() string {
	if s.root != "" {
		return s.root
	}
	return s.dir
}

// Root returns the repository toplevel discovered by IsRepository.
func (s *Service) Root() string {
	return s.workdir()
}

func (s *Service) output(ctx context.Context, args ...string) (string, error) {
	command := strings.Join(args, " ")
	s.debugf("run: git %s (cwd=%s)", command, s.workdir())
	out, err := s.exec.Output(ctx, s.workdir(), args...)
	if err != nil {
		s.debugf("error: git %s: %v", command, err)
		return out, err
	}
	s.debugf("ok: git %s", command)
	return out, nil
}

func (s *Service) stream(ctx context.Context, args ...string) (Result, error) {
	command := strings.Join(args, " ")
	s.debugf("run: git %s (cwd=%s, streaming)", command, s.workdir())
	res, err := s.exec.Stream(ctx, s.workdir(), args...)
	if err != nil {
		s.debugf("error: git %s: %v", command, err)
		return res, err
	}
	s.debugf("ok: git %s", command)
	return res, nil
}

// IsRepository reports whether the working directory is inside a git work
// tree and remembers its toplevel. Only a failure to run git is an error.
func (s *Service) IsRepository(ctx context.Context) (bool, error) {
	out, err := s.output(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			return false, nil
		}
		return false, err
	}
	s.root = strings.TrimSpace(out)
	return s.root != "", nil
}

// ReadChanges returns the changes reported by `git status --porcelain`.
func (s *Service) ReadChanges(ctx context.Context) ([]models.Change, error) {
	out, err := s.output(ctx, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	changes := ParseStatus(out)
	s.debugf("found %d changes", len(changes))
	return changes, nil
}

// AddAll stages every change in the work tree.
func (s *Service) AddAll(ctx context.Context) error {
	_, err := s.output(ctx, "add", "--all")
	return err
}

// Add stages the given paths, relative to the repository toplevel.
func (s *Service) Add(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	_, err := s.output(ctx, args...)
	return err
}

// Commit records the staged changes. The body becomes a second message paragraph.
func (s *Service) Commit(ctx context.Context, subject, body string, noVerify bool) (Result, error) {
	args := []string{"commit", "-m", subject}
	if strings.TrimSpace(body) != "" {
		args = append(args, "-m", body)
	}
	if noVerify {
		args = append(args, "--no-verify")
	}
	return s.stream(ctx, args...)
}

// CurrentBranch returns the checked out branch name.
// Returns an error if HEAD is detached.
func (s *Service) CurrentBranch(ctx context.Context) (string, error) {
	out, err := s.output(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	branch := strings.TrimSpace(out)
	if branch == "" || branch == "HEAD" {
		return "", fmt.Errorf("not currently on a branch (detached HEAD)")
	}
	return branch, nil
}

// Fetch updates the remote tracking ref of branch.
func (s *Service) Fetch(ctx context.Context, remote, branch string) error {
	_, err := s.output(ctx, "fetch", remote, branch)
	return err
}

// HeadsDiffer reports whether HEAD and <remote>/<branch> point at different commits.
func (s *Service) HeadsDiffer(ctx context.Context, remote, branch string) (bool, error) {
	local, err := s.output(ctx, "rev-parse", "HEAD")
	if err != nil {
		return false, err
	}
	upstream, err := s.output(ctx, "rev-parse", remote+"/"+branch)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(local) != strings.TrimSpace(upstream), nil
}

// Pull integrates <remote>/<branch>, rebasing local commits when rebase is set.
func (s *Service) Pull(ctx context.Context, remote, branch string, rebase bool) (Result, error) {
	args := []string{"pull"}
	if rebase {
		args = append(args, "--rebase")
	}
	args = append(args, remote, branch)
	return s.stream(ctx, args...)
}

// Push sends branch to remote.
func (s *Service) Push(ctx context.Context, remote, branch string) (Result, error) {
	return s.stream(ctx, "push", remote, branch)
}

// Stash shelves uncommitted changes.
func (s *Service) Stash(ctx context.Context) error {
	_, err := s.output(ctx, "stash")
	return err
}

// StashPop restores the most recent stash entry.
func (s *Service) StashPop(ctx context.Context) error {
	_, err := s.output(ctx, "stash", "pop")
	return err
}

// RecentCommits returns up to n `git log --oneline` entries.
func (s *Service) RecentCommits(ctx context.Context, n int) ([]string, error) {
	out, err := s.output(ctx, "log", "--oneline", "-"+strconv.Itoa(n))
	if err != nil {
		return nil, err
	}
	var commits []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line != "" {
			commits = append(commits, line)
		}
	}
	return commits, nil
}
