// Package main provides CLI command definitions for lazycommit.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/chmouel/lazycommit/internal/config"
	"github.com/chmouel/lazycommit/internal/emoji"
	"github.com/chmouel/lazycommit/internal/git"
	"github.com/chmouel/lazycommit/internal/log"
	"github.com/chmouel/lazycommit/internal/prompt"
	"github.com/chmouel/lazycommit/internal/theme"
	"github.com/chmouel/lazycommit/internal/ui"
	"github.com/chmouel/lazycommit/internal/validation"
	"github.com/chmouel/lazycommit/internal/workflow"
)

type runWorkflowFuncType func(ctx context.Context, deps workflow.Deps, opts workflow.Options) error

var (
	runWorkflowFunc runWorkflowFuncType = func(ctx context.Context, deps workflow.Deps, opts workflow.Options) error {
		return workflow.New(deps, opts).Run(ctx)
	}
	newExecutorFunc = func(a *app) git.Executor {
		exec := git.NewExecExecutor()
		exec.Stdout = a.stdout
		exec.Stderr = a.stderr
		return exec
	}
)

// setupDebugLog routes debug output: a file wins over stderr, and nothing
// is kept when neither is requested.
func (a *app) setupDebugLog(debug bool, path string) {
	switch {
	case path != "":
		if err := log.SetFile(path); err != nil {
			_, _ = fmt.Fprintf(a.stderr, "Error opening debug log file %q: %v\n", path, err)
		}
	case debug:
		log.SetWriter(a.stderr)
	default:
		log.SetWriter(nil)
	}
}

// loadConfig layers the config file, git config of repoPath and the
// --config overrides, then applies --theme.
func (a *app) loadConfig(cmd *urfavecli.Command, repoPath string) (*config.Config, error) {
	cfg, err := config.LoadWithOverrides(config.LoadOptions{
		Path:      cmd.String("config-file"),
		RepoPath:  repoPath,
		Overrides: cmd.StringSlice("config"),
	})
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if name := cmd.String("theme"); name != "" {
		if !theme.IsKnown(strings.ToLower(strings.TrimSpace(name))) {
			return nil, fmt.Errorf("unknown theme %q, available: %s", name, strings.Join(theme.AvailableThemes(), ", "))
		}
		cfg.General.Theme = config.NormalizeThemeName(name)
	}
	a.thm = theme.GetTheme(cfg.General.Theme)
	return cfg, nil
}

// runCommit is the default action: the interactive commit workflow.
func (a *app) runCommit(ctx context.Context, cmd *urfavecli.Command) error {
	a.setupDebugLog(cmd.Bool("debug"), cmd.String("debug-log"))

	interactive := !cmd.Bool("no-interactive")
	if interactive && !a.isTerminal(int(a.stdin.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal, use --no-interactive with --emoji and --title")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	svc := git.NewService(newExecutorFunc(a), cwd, log.Printf)

	repoPath := ""
	if ok, err := svc.IsRepository(ctx); err == nil && ok {
		repoPath = svc.Root()
	}

	cfg, err := a.loadConfig(cmd, repoPath)
	if err != nil {
		return err
	}
	if cfg.General.Debug && !cmd.Bool("debug") && cmd.String("debug-log") == "" {
		log.SetWriter(a.stderr)
	}
	log.Printf("config loaded: theme=%s remote=%s", cfg.General.Theme, cfg.General.Remote)

	catalogue, err := emoji.Load(emoji.DefaultPath())
	if err != nil {
		log.Printf("emoji catalogue: %v", err)
		catalogue = emoji.Default()
	}

	printer := ui.NewPrinter(a.thm, cfg.General.ShowIcons)
	printer.Out = a.stdout
	printer.Err = a.stderr

	tui := prompt.NewTUI(a.thm)
	tui.In = a.stdin
	tui.Out = a.stdout

	deps := workflow.Deps{
		Git:      svc,
		Prompter: tui,
		Emojis:   catalogue,
		Config:   cfg,
		Printer:  printer,
		Watcher: func(root string) workflow.HookWatcher {
			return git.NewHookWatcher(root, log.Printf)
		},
		Logf: log.Printf,
	}
	opts := workflow.Options{
		Interactive: interactive,
		Emoji:       cmd.String("emoji"),
		Title:       cmd.String("title"),
		Body:        cmd.String("body"),
		Template:    cmd.String("template"),
		DryRun:      cmd.Bool("dry-run"),
	}
	return runWorkflowFunc(ctx, deps, opts)
}

func (a *app) emojisCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "emojis",
		Usage:     "List the emoji catalogue",
		ArgsUsage: "[paths...]",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:  "suggest",
				Usage: "Only list the emojis suggested for the given paths",
			},
		},
		Action: func(_ context.Context, cmd *urfavecli.Command) error {
			catalogue, err := emoji.Load(emoji.DefaultPath())
			if err != nil {
				return fmt.Errorf("error loading emojis: %w", err)
			}

			list := catalogue.Emojis
			if cmd.Bool("suggest") {
				if cmd.NArg() == 0 {
					return fmt.Errorf("--suggest needs at least one path")
				}
				list = nil
				for _, glyph := range validation.SuggestEmojis(cmd.Args().Slice()) {
					if e, ok := catalogue.Find(glyph); ok {
						list = append(list, e)
					}
				}
			}

			w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
			for _, e := range list {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", e.Glyph, e.Code, e.Description)
			}
			return w.Flush()
		},
	}
}

func (a *app) configCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "config",
		Usage: "Print the configuration file path and the effective values",
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			cwd, _ := os.Getwd()
			repoPath := ""
			svc := git.NewService(newExecutorFunc(a), cwd, log.Printf)
			if ok, err := svc.IsRepository(ctx); err == nil && ok {
				repoPath = svc.Root()
			}

			cfg, err := a.loadConfig(cmd.Root(), repoPath)
			if err != nil {
				return err
			}
			path := cmd.Root().String("config-file")
			if path == "" {
				path = config.DefaultPath()
			}
			_, _ = fmt.Fprintf(a.stdout, "# %s\n%s", path, cfg.String())
			return nil
		},
	}
}

func (a *app) templatesCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "templates",
		Usage: "List the commit templates usable with --template",
		Action: func(_ context.Context, _ *urfavecli.Command) error {
			w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
			for _, t := range validation.Templates() {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name, t.Emoji, t.TitleFormat())
			}
			return w.Flush()
		},
	}
}
