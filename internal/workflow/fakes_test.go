package workflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/chmouel/lazycommit/internal/config"
	"github.com/chmouel/lazycommit/internal/emoji"
	"github.com/chmouel/lazycommit/internal/git"
	"github.com/chmouel/lazycommit/internal/models"
	"github.com/chmouel/lazycommit/internal/prompt"
	"github.com/chmouel/lazycommit/internal/theme"
	"github.com/chmouel/lazycommit/internal/ui"
)

var errFake = errors.New("fake failure")

// fakeGit records every operation as a short string and fails the ones
// listed in failures. commitFailures counts how many commits fail first.
type fakeGit struct {
	repo           bool
	changes        []models.Change
	branch         string
	differ         bool
	differErr      error
	commitFailures int
	failures       map[string]int
	commits        []string

	calls []string
}

func newFakeGit(changes ...models.Change) *fakeGit {
	return &fakeGit{repo: true, changes: changes, branch: "main", failures: map[string]int{}}
}

func (f *fakeGit) record(call string) error {
	f.calls = append(f.calls, call)
	name, _, _ := strings.Cut(call, " ")
	if f.failures[name] > 0 {
		f.failures[name]--
		return fmt.Errorf("%s: %w", name, errFake)
	}
	return nil
}

func (f *fakeGit) IsRepository(context.Context) (bool, error) {
	f.calls = append(f.calls, "is-repo")
	return f.repo, nil
}

func (f *fakeGit) Root() string { return "/repo" }

func (f *fakeGit) ReadChanges(context.Context) ([]models.Change, error) {
	return f.changes, f.record("status")
}

func (f *fakeGit) AddAll(context.Context) error { return f.record("add-all") }

func (f *fakeGit) Add(_ context.Context, paths []string) error {
	return f.record("add " + strings.Join(paths, ","))
}

func (f *fakeGit) Commit(_ context.Context, subject, body string, noVerify bool) (git.Result, error) {
	call := "commit " + subject
	if noVerify {
		call += " --no-verify"
	}
	f.calls = append(f.calls, call)
	f.commits = append(f.commits, subject+"|"+body)
	if f.commitFailures > 0 {
		f.commitFailures--
		return git.Result{ExitCode: 1}, &git.CommandError{Args: []string{"commit"}, ExitCode: 1}
	}
	return git.Result{Success: true}, nil
}

func (f *fakeGit) CurrentBranch(context.Context) (string, error) {
	return f.branch, f.record("branch")
}

func (f *fakeGit) Fetch(_ context.Context, remote, branch string) error {
	return f.record("fetch " + remote + "/" + branch)
}

func (f *fakeGit) HeadsDiffer(context.Context, string, string) (bool, error) {
	f.calls = append(f.calls, "compare")
	return f.differ, f.differErr
}

func (f *fakeGit) Pull(_ context.Context, remote, branch string, rebase bool) (git.Result, error) {
	call := "pull " + remote + "/" + branch
	if rebase {
		call = "pull --rebase " + remote + "/" + branch
	}
	if err := f.record(call); err != nil {
		return git.Result{}, err
	}
	return git.Result{Success: true}, nil
}

func (f *fakeGit) Push(_ context.Context, remote, branch string) (git.Result, error) {
	if err := f.record("push " + remote + "/" + branch); err != nil {
		return git.Result{}, err
	}
	return git.Result{Success: true}, nil
}

func (f *fakeGit) Stash(context.Context) error { return f.record("stash") }

func (f *fakeGit) StashPop(context.Context) error { return f.record("stash-pop") }

func (f *fakeGit) RecentCommits(context.Context, int) ([]string, error) {
	if err := f.record("log"); err != nil {
		return nil, err
	}
	return []string{"abc1234 latest"}, nil
}

func (f *fakeGit) count(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// fakePrompter answers from scripted queues and records the questions.
type fakePrompter struct {
	confirms  []bool
	selects   []int
	multi     [][]int
	inputs    []string
	errOn     string
	questions []string
	specs     []prompt.InputSpec
	initials  []int
	options   [][]prompt.Option
}

func (p *fakePrompter) Confirm(_ context.Context, message string, _ bool) (bool, error) {
	p.questions = append(p.questions, "confirm: "+message)
	if p.errOn == "confirm" || len(p.confirms) == 0 {
		return false, prompt.ErrCancelled
	}
	v := p.confirms[0]
	p.confirms = p.confirms[1:]
	return v, nil
}

func (p *fakePrompter) Select(_ context.Context, title string, options []prompt.Option, initial int) (int, error) {
	p.questions = append(p.questions, "select: "+title)
	p.initials = append(p.initials, initial)
	p.options = append(p.options, options)
	if p.errOn == "select" || len(p.selects) == 0 {
		return -1, prompt.ErrCancelled
	}
	v := p.selects[0]
	p.selects = p.selects[1:]
	return v, nil
}

func (p *fakePrompter) MultiSelect(_ context.Context, title string, _ []prompt.Option) ([]int, error) {
	p.questions = append(p.questions, "multi: "+title)
	if p.errOn == "multi" || len(p.multi) == 0 {
		return nil, prompt.ErrCancelled
	}
	v := p.multi[0]
	p.multi = p.multi[1:]
	return v, nil
}

func (p *fakePrompter) Input(_ context.Context, spec prompt.InputSpec) (string, error) {
	p.questions = append(p.questions, "input: "+spec.Prompt)
	p.specs = append(p.specs, spec)
	if p.errOn == "input" || len(p.inputs) == 0 {
		return "", prompt.ErrCancelled
	}
	v := p.inputs[0]
	p.inputs = p.inputs[1:]
	return v, nil
}

type fakeWatcher struct {
	started []string
	touched []string
}

func (w *fakeWatcher) Start(paths []string) error {
	w.started = paths
	return nil
}

func (w *fakeWatcher) Stop() []string { return w.touched }

type harness struct {
	git      *fakeGit
	prompter *fakePrompter
	cfg      *config.Config
	out      *bytes.Buffer
	errOut   *bytes.Buffer
	watcher  *fakeWatcher
}

func newHarness(t *testing.T, changes ...models.Change) *harness {
	t.Helper()
	return &harness{
		git:      newFakeGit(changes...),
		prompter: &fakePrompter{},
		cfg:      config.DefaultConfig(),
		out:      &bytes.Buffer{},
		errOut:   &bytes.Buffer{},
		watcher:  &fakeWatcher{},
	}
}

func (h *harness) run(t *testing.T, opts Options) error {
	t.Helper()
	wf := New(Deps{
		Git:      h.git,
		Prompter: h.prompter,
		Emojis:   emoji.Default(),
		Config:   h.cfg,
		Printer:  newPrinterFor(h),
		Watcher:  func(string) HookWatcher { return h.watcher },
		Logf:     t.Logf,
	}, opts)
	return wf.Run(context.Background())
}

func newPrinterFor(h *harness) *ui.Printer {
	return &ui.Printer{Out: h.out, Err: h.errOut, Thm: theme.Dracula(), Width: 100}
}
