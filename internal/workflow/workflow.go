// Package workflow drives one lazycommit run: stage, compose, commit,
// sync with the remote and push.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/chmouel/lazycommit/internal/config"
	"github.com/chmouel/lazycommit/internal/emoji"
	"github.com/chmouel/lazycommit/internal/git"
	"github.com/chmouel/lazycommit/internal/models"
	"github.com/chmouel/lazycommit/internal/prompt"
	"github.com/chmouel/lazycommit/internal/ui"
	"github.com/chmouel/lazycommit/internal/validation"
)

var (
	// ErrNoChangesSelected is returned when the user picks no file to stage.
	ErrNoChangesSelected = errors.New("no changes selected")
	// ErrCommitFailed is returned when git commit fails and no retry is left.
	ErrCommitFailed = errors.New("commit failed")
	// ErrMissingInput is returned in non-interactive mode when a required
	// value was not given on the command line.
	ErrMissingInput = errors.New("missing required input")
)

const recentCommitCount = 5

// GitRunner is the set of git operations a run needs.
type GitRunner interface {
	IsRepository(ctx context.Context) (bool, error)
	Root() string
	ReadChanges(ctx context.Context) ([]models.Change, error)
	AddAll(ctx context.Context) error
	Add(ctx context.Context, paths []string) error
	Commit(ctx context.Context, subject, body string, noVerify bool) (git.Result, error)
	CurrentBranch(ctx context.Context) (string, error)
	Fetch(ctx context.Context, remote, branch string) error
	HeadsDiffer(ctx context.Context, remote, branch string) (bool, error)
	Pull(ctx context.Context, remote, branch string, rebase bool) (git.Result, error)
	Push(ctx context.Context, remote, branch string) (git.Result, error)
	Stash(ctx context.Context) error
	StashPop(ctx context.Context) error
	RecentCommits(ctx context.Context, n int) ([]string, error)
}

var _ GitRunner = (*git.Service)(nil)

// HookWatcher reports files rewritten while a commit runs.
type HookWatcher interface {
	Start(paths []string) error
	Stop() []string
}

var _ HookWatcher = (*git.HookWatcher)(nil)

// Deps are the collaborators of a run. Nothing is looked up from globals.
type Deps struct {
	Git      GitRunner
	Prompter prompt.Prompter
	Emojis   *emoji.Catalogue
	Config   *config.Config
	Printer  *ui.Printer
	// Watcher builds a hook watcher for the repository root; nil disables it.
	Watcher func(root string) HookWatcher
	Logf    func(format string, args ...any)
}

// Options are the per-run choices made on the command line.
type Options struct {
	Interactive bool
	Emoji       string
	Title       string
	Body        string
	Template    string
	DryRun      bool
}

// Workflow runs the commit states in order.
type Workflow struct {
	deps Deps
	opts Options
	cfg  *config.Config

	template *validation.Template
}

// New creates a Workflow. A nil config falls back to the defaults.
func New(deps Deps, opts Options) *Workflow {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if deps.Emojis == nil {
		deps.Emojis = emoji.Default()
	}
	return &Workflow{deps: deps, opts: opts, cfg: cfg}
}

func (w *Workflow) debugf(format string, args ...any) {
	if w.deps.Logf == nil {
		return
	}
	w.deps.Logf(format, args...)
}

// staged is the outcome of the staging step.
type staged struct {
	files []string
	all   bool
}

// Run executes the workflow. A clean work tree is not an error.
func (w *Workflow) Run(ctx context.Context) error {
	if w.opts.Template != "" {
		tmpl, err := validation.FindTemplate(w.opts.Template)
		if err != nil {
			return err
		}
		w.template = &tmpl
	}

	ok, err := w.deps.Git.IsRepository(ctx)
	if err != nil {
		return fmt.Errorf("checking repository: %w", err)
	}
	if !ok {
		return git.ErrNotARepository
	}

	changes, err := w.deps.Git.ReadChanges(ctx)
	if err != nil {
		return fmt.Errorf("reading status: %w", err)
	}
	if len(changes) == 0 {
		w.deps.Printer.Info("Nothing to commit, working tree clean")
		return nil
	}
	w.deps.Printer.ShowChanges(changes)

	st, err := w.stage(ctx, changes)
	if err != nil {
		return err
	}

	draft, err := w.compose(ctx, changes, st.files)
	if err != nil {
		return err
	}

	if w.opts.DryRun {
		w.deps.Printer.Header("Dry run, the following commit would be created:")
		w.deps.Printer.ShowDraft(draft)
		return nil
	}

	if err := w.commit(ctx, draft, st); err != nil {
		return err
	}

	if branch, ok := w.sync(ctx); ok {
		w.push(ctx, branch)
	}

	w.summary(ctx)
	return nil
}

func (w *Workflow) stage(ctx context.Context, changes []models.Change) (staged, error) {
	all := true
	if w.opts.Interactive {
		yes, err := w.deps.Prompter.Confirm(ctx, "Stage all changes?", true)
		if err != nil {
			return staged{}, err
		}
		all = yes
	}

	if all {
		if !w.opts.DryRun {
			if err := w.deps.Git.AddAll(ctx); err != nil {
				return staged{}, fmt.Errorf("staging changes: %w", err)
			}
		}
		w.debugf("staged all %d changes", len(changes))
		return staged{files: models.Paths(changes), all: true}, nil
	}

	options := ui.ChangeOptions(changes, w.deps.Printer.Thm, w.cfg.General.ShowIcons)
	picked, err := w.deps.Prompter.MultiSelect(ctx, "Select files to stage", options)
	if err != nil {
		return staged{}, err
	}
	if len(picked) == 0 {
		return staged{}, ErrNoChangesSelected
	}

	files := make([]string, 0, len(picked))
	for _, idx := range picked {
		files = append(files, changes[idx].Path)
	}
	if !w.opts.DryRun {
		if err := w.deps.Git.Add(ctx, files); err != nil {
			return staged{}, fmt.Errorf("staging %s: %w", strings.Join(files, ", "), err)
		}
	}
	w.debugf("staged %d of %d changes", len(files), len(changes))
	return staged{files: files}, nil
}

func (w *Workflow) compose(ctx context.Context, changes []models.Change, files []string) (models.CommitDraft, error) {
	selected := selectChanges(changes, files)

	e, err := w.chooseEmoji(ctx, files)
	if err != nil {
		return models.CommitDraft{}, err
	}
	title, err := w.chooseTitle(ctx, selected)
	if err != nil {
		return models.CommitDraft{}, err
	}
	body, err := w.chooseBody(ctx)
	if err != nil {
		return models.CommitDraft{}, err
	}

	return models.CommitDraft{Emoji: e, Title: title, Body: body, Files: files}, nil
}

func (w *Workflow) chooseEmoji(ctx context.Context, files []string) (models.Emoji, error) {
	switch {
	case w.opts.Emoji != "":
		return w.deps.Emojis.Resolve(w.opts.Emoji)
	case w.template != nil:
		return w.deps.Emojis.Resolve(w.template.Emoji)
	case !w.opts.Interactive:
		return models.Emoji{}, fmt.Errorf("%w: --emoji is required with --no-interactive", ErrMissingInput)
	}

	suggested := validation.SuggestEmojis(files)
	ordered := w.deps.Emojis.Ordered(suggested)
	if len(ordered) == 0 {
		return models.Emoji{}, fmt.Errorf("%w: the emoji catalogue is empty", emoji.ErrInvalidEmoji)
	}

	initial := 0
	if len(suggested) == 0 {
		initial = max(0, emoji.IndexOf(ordered, w.cfg.General.DefaultEmoji))
	}
	idx, err := w.deps.Prompter.Select(ctx, "Choose an emoji", ui.EmojiOptions(ordered), initial)
	if err != nil {
		return models.Emoji{}, err
	}
	return ordered[idx], nil
}

func (w *Workflow) chooseTitle(ctx context.Context, selected []models.Change) (string, error) {
	rules := w.cfg.Commit

	var flagErr error
	if w.opts.Title != "" {
		title := w.formatTitle(w.opts.Title)
		flagErr = validation.ValidateTitle(title, rules)
		if flagErr == nil {
			return title, nil
		}
		if !w.opts.Interactive || !errors.Is(flagErr, validation.ErrValidation) {
			return "", flagErr
		}
	}
	if !w.opts.Interactive {
		return "", fmt.Errorf("%w: --title is required with --no-interactive", ErrMissingInput)
	}

	spec := prompt.InputSpec{
		Prompt:      "Commit title:",
		Placeholder: validation.SuggestPlaceholder(selected, rules),
		Help:        validation.TitleHelp(rules),
	}
	if w.template != nil {
		spec.Placeholder = w.template.TitleFormat()
		spec.Default = w.template.Prefix()
	} else if kind, ok := validation.AnalyzeChanges(selected).SuggestType(); ok {
		w.debugf("change analysis suggests %q", kind)
		spec.Help += "\nSuggested type: " + kind
	}
	if flagErr != nil {
		w.deps.Printer.Error("%s", flagErr.Error())
		spec.Default = w.opts.Title
	}

	for {
		raw, err := w.deps.Prompter.Input(ctx, spec)
		if err != nil {
			return "", err
		}
		title := w.formatTitle(raw)
		err = validation.ValidateTitle(title, rules)
		if err == nil {
			return title, nil
		}
		if !errors.Is(err, validation.ErrValidation) {
			return "", err
		}
		w.deps.Printer.Error("%s", err.Error())
		spec.Default = raw
	}
}

func (w *Workflow) formatTitle(title string) string {
	if w.template != nil {
		title = w.template.ApplyTitle(title)
	}
	return validation.FormatTitle(title, w.cfg.Commit)
}

func (w *Workflow) chooseBody(ctx context.Context) (string, error) {
	rules := w.cfg.Commit

	if w.opts.Body != "" {
		body := strings.TrimSpace(w.opts.Body)
		if err := validation.ValidateBody(body, rules); err != nil {
			return "", err
		}
		return body, nil
	}
	if !w.opts.Interactive {
		return "", nil
	}

	spec := prompt.InputSpec{
		Prompt:    "Commit body (optional):",
		Help:      fmt.Sprintf("Lines should be %d characters or less. ctrl+s to finish, leave empty to skip.", rules.MaxBodyLength),
		Multiline: true,
	}
	if w.template != nil {
		spec.Placeholder = w.template.BodyTemplate
	}
	body, err := w.deps.Prompter.Input(ctx, spec)
	if err != nil {
		return "", err
	}
	body = strings.TrimSpace(body)
	if err := validation.ValidateBody(body, rules); err != nil {
		return "", err
	}
	return body, nil
}

func (w *Workflow) commit(ctx context.Context, draft models.CommitDraft, st staged) error {
	hooks := w.cfg.Hooks
	noVerify := !hooks.RunPreCommit

	var watcher HookWatcher
	if w.deps.Watcher != nil && hooks.AutoFixLint && hooks.RetryOnFailure && !noVerify {
		watcher = w.deps.Watcher(w.deps.Git.Root())
		if err := watcher.Start(draft.Files); err != nil {
			w.debugf("hook watcher disabled: %v", err)
			watcher = nil
		}
	}

	_, err := w.deps.Git.Commit(ctx, draft.Subject(), draft.Body, noVerify)
	var touched []string
	if watcher != nil {
		touched = watcher.Stop()
	}
	if err == nil {
		w.deps.Printer.Success("Committed: %s", draft.Subject())
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if !hooks.RetryOnFailure {
		return fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}

	w.deps.Printer.Warning("Commit failed, re-staging files and retrying once")
	if len(touched) > 0 {
		w.deps.Printer.Info("Files modified by hooks: %s", strings.Join(touched, ", "))
	}
	if st.all {
		err = w.deps.Git.AddAll(ctx)
	} else {
		err = w.deps.Git.Add(ctx, st.files)
	}
	if err != nil {
		return fmt.Errorf("%w: re-staging: %w", ErrCommitFailed, err)
	}

	if _, err := w.deps.Git.Commit(ctx, draft.Subject(), draft.Body, noVerify); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	w.deps.Printer.Success("Committed after retry: %s", draft.Subject())
	return nil
}

// sync brings the local branch up to date. Every failure is reported and
// swallowed; ok is false when no branch could be determined.
func (w *Workflow) sync(ctx context.Context) (string, bool) {
	branch, err := w.deps.Git.CurrentBranch(ctx)
	if err != nil {
		w.deps.Printer.Warning("Skipping remote sync: %v", err)
		return "", false
	}
	remote := w.remote()

	w.deps.Printer.Info("Fetching %s/%s", remote, branch)
	if err := w.deps.Git.Fetch(ctx, remote, branch); err != nil {
		w.deps.Printer.Warning("Fetch failed: %v", err)
	}

	differ, err := w.deps.Git.HeadsDiffer(ctx, remote, branch)
	if err != nil {
		w.deps.Printer.Warning("Cannot compare with %s/%s, skipping pull", remote, branch)
		w.debugf("compare heads: %v", err)
		return branch, true
	}
	if !differ {
		w.deps.Printer.Info("Already up to date with %s/%s, nothing to pull", remote, branch)
		return branch, true
	}

	w.deps.Printer.Info("Pulling %s/%s with rebase", remote, branch)
	if _, err := w.deps.Git.Pull(ctx, remote, branch, true); err == nil {
		w.deps.Printer.Success("Pulled latest changes")
		return branch, true
	}

	w.deps.Printer.Warning("Pull failed, stashing local changes and retrying")
	if err := w.deps.Git.Stash(ctx); err != nil {
		w.deps.Printer.Warning("Stash failed: %v", err)
		return branch, true
	}
	if _, err := w.deps.Git.Pull(ctx, remote, branch, true); err != nil {
		w.deps.Printer.Warning("Pull failed again: %v", err)
	} else {
		w.deps.Printer.Success("Pulled latest changes")
	}
	if err := w.deps.Git.StashPop(ctx); err != nil {
		w.deps.Printer.Warning("Could not restore stashed changes, run 'git stash pop' manually: %v", err)
	}
	return branch, true
}

func (w *Workflow) push(ctx context.Context, branch string) {
	general := w.cfg.General
	remote := w.remote()

	doPush := general.AutoPush
	if w.opts.Interactive && general.ConfirmBeforePush {
		yes, err := w.deps.Prompter.Confirm(ctx, fmt.Sprintf("Push to %s/%s?", remote, branch), general.AutoPush)
		if err != nil && !errors.Is(err, prompt.ErrCancelled) {
			w.deps.Printer.Warning("Push prompt failed: %v", err)
		}
		doPush = err == nil && yes
	}
	if !doPush {
		w.debugf("push skipped")
		return
	}

	if _, err := w.deps.Git.Push(ctx, remote, branch); err != nil {
		w.deps.Printer.Error("Push failed: %v", err)
		return
	}
	w.deps.Printer.Success("Pushed to %s/%s", remote, branch)
}

func (w *Workflow) summary(ctx context.Context) {
	commits, err := w.deps.Git.RecentCommits(ctx, recentCommitCount)
	if err != nil {
		w.debugf("recent commits: %v", err)
		return
	}
	w.deps.Printer.ShowRecentCommits(commits)
}

func (w *Workflow) remote() string {
	if w.cfg.General.Remote == "" {
		return "origin"
	}
	return w.cfg.General.Remote
}

// selectChanges keeps the changes whose path is in files, in status order.
func selectChanges(changes []models.Change, files []string) []models.Change {
	out := make([]models.Change, 0, len(files))
	for _, c := range changes {
		if slices.Contains(files, c.Path) {
			out = append(out, c)
		}
	}
	return out
}
