// Package main is the entry point for the lazycommit application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	urfavecli "github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/chmouel/lazycommit/internal/buildinfo"
	"github.com/chmouel/lazycommit/internal/log"
	"github.com/chmouel/lazycommit/internal/prompt"
	"github.com/chmouel/lazycommit/internal/theme"
	"github.com/chmouel/lazycommit/internal/ui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// app carries the process streams so commands can be run from tests.
type app struct {
	stdin  *os.File
	stdout io.Writer
	stderr io.Writer
	// thm is replaced by the configured theme once it is known, so fatal
	// errors use the same palette as the rest of the run.
	thm        *theme.Theme
	isTerminal func(fd int) bool
}

func newApp() *app {
	return &app{
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		thm:        theme.Dracula(),
		isTerminal: term.IsTerminal,
	}
}

func main() {
	buildinfo.Set(version, commit, date, builtBy)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := newApp().run(ctx, os.Args)
	stop()
	os.Exit(code)
}

func (a *app) command() *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "lazycommit",
		Usage:                 "Stage, compose and push emoji conventional commits",
		Version:               buildinfo.Get().String(),
		EnableShellCompletion: true,
		Writer:                a.stdout,
		ErrWriter:             a.stderr,

		Flags: globalFlags(),

		Commands: []*urfavecli.Command{
			a.emojisCommand(),
			a.configCommand(),
			a.templatesCommand(),
		},

		Action: a.runCommit,
	}
}

// run executes the command line and maps the outcome to an exit code.
func (a *app) run(ctx context.Context, args []string) int {
	err := a.command().Run(ctx, args)
	if closeErr := log.Close(); closeErr != nil {
		_, _ = fmt.Fprintf(a.stderr, "Error closing debug log: %v\n", closeErr)
	}
	return a.exitCode(err)
}

func (a *app) exitCode(err error) int {
	if err == nil {
		return 0
	}
	printer := &ui.Printer{Out: a.stdout, Err: a.stderr, Thm: a.thm}
	if errors.Is(err, prompt.ErrCancelled) || errors.Is(err, context.Canceled) {
		printer.Warning("%s", prompt.ErrCancelled)
		return 0
	}
	printer.Error("%v", err)
	return 1
}
