package git

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// LookupPath is used to find executables in PATH. It's exposed as a package variable
// so tests can mock it and avoid depending on system binaries being installed.
var LookupPath = exec.LookPath

// Result is the outcome of a streamed git invocation.
type Result struct {
	// Output is stdout, a newline, then stderr.
	Output   string
	Success  bool
	ExitCode int
}

// Executor runs git subprocesses.
type Executor interface {
	// Output runs git quietly and returns its stdout.
	Output(ctx context.Context, dir string, args ...string) (string, error)
	// Stream runs git while echoing both output streams line by line.
	Stream(ctx context.Context, dir string, args ...string) (Result, error)
}

// ExecExecutor is the Executor backed by os/exec.
type ExecExecutor struct {
	// Binary defaults to "git".
	Binary string
	Stdout io.Writer
	Stderr io.Writer

	echoMu sync.Mutex
}

// NewExecExecutor returns an executor echoing to the process stdout and stderr.
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{Binary: "git", Stdout: os.Stdout, Stderr: os.Stderr}
}

func (e *ExecExecutor) command(ctx context.Context, dir string, args []string) *exec.Cmd {
	binary := e.Binary
	if binary == "" {
		binary = "git"
	}
	// #nosec G204 -- arguments for git command come from internal logic and are not shell interpolated
	cmd := exec.CommandContext(ctx, binary, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	return cmd
}

// Output implements Executor.
func (e *ExecExecutor) Output(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := e.command(ctx, dir, args)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), &CommandError{Args: args, Output: stderr.String(), ExitCode: exitErr.ExitCode()}
		}
		return "", &ProcessError{Args: args, Err: err}
	}
	return string(out), nil
}

// Stream implements Executor. Both pipes are drained by their own goroutine
// and joined before the process is waited on.
func (e *ExecExecutor) Stream(ctx context.Context, dir string, args ...string) (Result, error) {
	cmd := e.command(ctx, dir, args)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, &ProcessError{Args: args, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{}, &ProcessError{Args: args, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return Result{}, &ProcessError{Args: args, Err: err}
	}

	var (
		wg        sync.WaitGroup
		outBuffer string
		errBuffer string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		outBuffer = e.drain(stdout, e.Stdout)
	}()
	go func() {
		defer wg.Done()
		errBuffer = e.drain(stderr, e.Stderr)
	}()
	wg.Wait()

	res := Result{Output: outBuffer + "\n" + errBuffer, Success: true}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{Output: res.Output}, &ProcessError{Args: args, Err: err}
		}
		res.Success = false
		res.ExitCode = exitErr.ExitCode()
		return res, &CommandError{Args: args, Output: res.Output, ExitCode: res.ExitCode}
	}
	return res, nil
}

// drain copies r line by line to echo and returns everything read, each
// line terminated by a newline.
func (e *ExecExecutor) drain(r io.Reader, echo io.Writer) string {
	var sb strings.Builder
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimRight(line, "\r\n")
			sb.WriteString(line)
			sb.WriteByte('\n')
			if echo != nil {
				e.echoMu.Lock()
				_, _ = io.WriteString(echo, line+"\n")
				e.echoMu.Unlock()
			}
		}
		if err != nil {
			return sb.String()
		}
	}
}
