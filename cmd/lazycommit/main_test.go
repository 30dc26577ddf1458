package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazycommit/internal/prompt"
	"github.com/chmouel/lazycommit/internal/theme"
	"github.com/chmouel/lazycommit/internal/workflow"
)

type testApp struct {
	*app
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newTestApp(t *testing.T, terminal bool) *testApp {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	a := newApp()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	a.stdout = out
	a.stderr = errOut
	a.isTerminal = func(int) bool { return terminal }
	return &testApp{app: a, out: out, errOut: errOut}
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func stubWorkflow(t *testing.T, err error) (*workflow.Deps, *workflow.Options) {
	t.Helper()
	var (
		gotDeps workflow.Deps
		gotOpts workflow.Options
	)
	orig := runWorkflowFunc
	runWorkflowFunc = func(_ context.Context, deps workflow.Deps, opts workflow.Options) error {
		gotDeps = deps
		gotOpts = opts
		return err
	}
	t.Cleanup(func() { runWorkflowFunc = orig })
	return &gotDeps, &gotOpts
}

func TestGlobalFlags(t *testing.T) {
	names := map[string]bool{}
	for _, f := range globalFlags() {
		for _, n := range f.Names() {
			names[n] = true
		}
	}
	for _, want := range []string{
		"debug", "d", "debug-log", "no-interactive", "emoji", "title", "body",
		"template", "dry-run", "config-file", "config", "C", "theme",
	} {
		assert.True(t, names[want], "missing flag %q", want)
	}
}

func TestTemplatesCommand(t *testing.T) {
	a := newTestApp(t, false)

	code := a.run(context.Background(), []string{"lazycommit", "templates"})
	require.Equal(t, 0, code, a.errOut.String())
	assert.Contains(t, a.out.String(), "Feature")
	assert.Contains(t, a.out.String(), "fix: {title}")
}

func TestEmojisCommand(t *testing.T) {
	a := newTestApp(t, false)

	code := a.run(context.Background(), []string{"lazycommit", "emojis"})
	require.Equal(t, 0, code, a.errOut.String())
	assert.Contains(t, a.out.String(), ":sparkles:")
	assert.Contains(t, a.out.String(), ":bug:")
}

func TestEmojisCommandSuggest(t *testing.T) {
	a := newTestApp(t, false)

	code := a.run(context.Background(), []string{"lazycommit", "emojis", "--suggest", "README.md", "Dockerfile"})
	require.Equal(t, 0, code, a.errOut.String())
	assert.Contains(t, a.out.String(), ":memo:")
	assert.Contains(t, a.out.String(), ":whale:")
	assert.NotContains(t, a.out.String(), ":bug:")

	a = newTestApp(t, false)
	code = a.run(context.Background(), []string{"lazycommit", "emojis", "--suggest"})
	assert.Equal(t, 1, code)
	assert.Contains(t, a.errOut.String(), "needs at least one path")
}

func TestConfigCommand(t *testing.T) {
	requireGit(t)
	a := newTestApp(t, false)

	code := a.run(context.Background(), []string{"lazycommit", "-C", "commit.max_title_length=72", "config"})
	require.Equal(t, 0, code, a.errOut.String())
	assert.Contains(t, a.out.String(), "config.yaml")
	assert.Contains(t, a.out.String(), "max_title_length: 72")
}

func TestRunCommitNeedsTerminal(t *testing.T) {
	stubWorkflow(t, nil)
	a := newTestApp(t, false)

	code := a.run(context.Background(), []string{"lazycommit"})
	assert.Equal(t, 1, code)
	assert.Contains(t, a.errOut.String(), "--no-interactive")
}

func TestRunCommitPassesOptions(t *testing.T) {
	requireGit(t)
	deps, opts := stubWorkflow(t, nil)
	a := newTestApp(t, false)

	code := a.run(context.Background(), []string{
		"lazycommit", "--no-interactive", "--emoji", "🐛", "--title", "fix: x",
		"--body", "details", "--template", "bugfix", "--dry-run", "--theme", "nord",
	})
	require.Equal(t, 0, code, a.errOut.String())

	assert.Equal(t, workflow.Options{
		Emoji:    "🐛",
		Title:    "fix: x",
		Body:     "details",
		Template: "bugfix",
		DryRun:   true,
	}, *opts)
	require.NotNil(t, deps.Config)
	assert.Equal(t, theme.NordName, deps.Config.General.Theme)
	assert.Equal(t, theme.Nord().Accent, a.thm.Accent)
	assert.NotNil(t, deps.Git)
	assert.NotNil(t, deps.Prompter)
	assert.NotNil(t, deps.Emojis)
	assert.NotNil(t, deps.Watcher)
}

func TestRunCommitUnknownTheme(t *testing.T) {
	requireGit(t)
	stubWorkflow(t, nil)
	a := newTestApp(t, true)

	code := a.run(context.Background(), []string{"lazycommit", "--theme", "no-such-theme"})
	assert.Equal(t, 1, code)
	assert.Contains(t, a.errOut.String(), "unknown theme")
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    int
		wantErr string
	}{
		{name: "success", err: nil, want: 0},
		{name: "cancelled prompt", err: fmt.Errorf("title: %w", prompt.ErrCancelled), want: 0, wantErr: "operation cancelled"},
		{name: "interrupted", err: context.Canceled, want: 0, wantErr: "operation cancelled"},
		{name: "fatal", err: errors.New("commit failed"), want: 1, wantErr: "commit failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, false)
			assert.Equal(t, tt.want, a.exitCode(tt.err))
			if tt.wantErr != "" {
				assert.Contains(t, a.errOut.String(), tt.wantErr)
			}
		})
	}
}

func TestVersionFlag(t *testing.T) {
	a := newTestApp(t, false)

	code := a.run(context.Background(), []string{"lazycommit", "--version"})
	require.Equal(t, 0, code)
	assert.Contains(t, a.out.String(), "commit:")
}
