package git

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotARepository is returned when the working directory is not inside a git work tree.
	ErrNotARepository = errors.New("not a git repository")
	// ErrProcessExecution is wrapped by ProcessError when git cannot be started.
	ErrProcessExecution = errors.New("failed to execute git")
	// ErrCommandFailed is wrapped by CommandError when git exits non-zero.
	ErrCommandFailed = errors.New("git command failed")
)

// ProcessError reports a git process that could not be started or awaited.
type ProcessError struct {
	Args []string
	Err  error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%v: git %s: %v", ErrProcessExecution, strings.Join(e.Args, " "), e.Err)
}

// Unwrap exposes both the sentinel and the underlying os/exec error.
func (e *ProcessError) Unwrap() []error {
	return []error{ErrProcessExecution, e.Err}
}

// CommandError reports a git process that ran and exited with a non-zero status.
type CommandError struct {
	Args     []string
	Output   string
	ExitCode int
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s failed (exit %d)", strings.Join(e.Args, " "), e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg = fmt.Sprintf("%s: %s", msg, out)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return ErrCommandFailed
}
