package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shellExecutor(t *testing.T) (*ExecExecutor, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	if _, err := LookupPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	var stdout, stderr bytes.Buffer
	return &ExecExecutor{Binary: "sh", Stdout: &stdout, Stderr: &stderr}, &stdout, &stderr
}

func TestStreamJoinsBothStreams(t *testing.T) {
	e, stdout, stderr := shellExecutor(t)

	res, err := e.Stream(context.Background(), "", "-c", "echo one; echo err1 >&2; echo two; echo err2 >&2")
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "one\ntwo\n\nerr1\nerr2\n", res.Output)
	assert.Equal(t, "one\ntwo\n", stdout.String())
	assert.Equal(t, "err1\nerr2\n", stderr.String())
}

func TestStreamLargeOutputDoesNotDeadlock(t *testing.T) {
	e, _, _ := shellExecutor(t)

	script := "i=0; while [ $i -lt 5000 ]; do echo out-line-$i; echo err-line-$i >&2; i=$((i+1)); done"
	res, err := e.Stream(context.Background(), "", "-c", script)
	require.NoError(t, err)

	out, errOut, _ := strings.Cut(res.Output, "\n\n")
	assert.Equal(t, 5000, strings.Count(out, "out-line-"))
	assert.Equal(t, 5000, strings.Count(errOut, "err-line-"))
	assert.True(t, strings.HasPrefix(out, "out-line-0\nout-line-1\n"))
}

func TestStreamNonZeroExit(t *testing.T) {
	e, _, _ := shellExecutor(t)

	res, err := e.Stream(context.Background(), "", "-c", "echo failing >&2; exit 3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCommandFailed))

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.False(t, res.Success)
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, res.Output, "failing")
}

func TestStreamMissingBinary(t *testing.T) {
	e := &ExecExecutor{Binary: "lazycommit-definitely-missing-binary"}

	_, err := e.Stream(context.Background(), "", "status")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProcessExecution))
	assert.True(t, errors.Is(err, exec.ErrNotFound))
}

func TestOutputCapturesStdoutAndStderr(t *testing.T) {
	e, stdout, _ := shellExecutor(t)

	out, err := e.Output(context.Background(), t.TempDir(), "-c", "pwd; echo hidden >&2")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
	assert.Empty(t, stdout.String(), "Output does not echo")

	_, err = e.Output(context.Background(), "", "-c", "echo nope >&2; exit 1")
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 1, cmdErr.ExitCode)
	assert.Equal(t, "nope\n", cmdErr.Output)
	assert.Contains(t, cmdErr.Error(), "exit 1")
}

func TestOutputMissingBinary(t *testing.T) {
	e := &ExecExecutor{Binary: "lazycommit-definitely-missing-binary"}
	_, err := e.Output(context.Background(), "", "status")
	assert.ErrorIs(t, err, ErrProcessExecution)
}
