package executor

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCappedBuffer(t *testing.T) {
	b := &cappedBuffer{limit: 4}

	n, err := b.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.False(t, b.truncated)

	n, err = b.Write([]byte("def"))
	require.NoError(t, err)
	assert.Equal(t, 3, n, "writes report full length so the plugin keeps running")
	assert.True(t, b.truncated)

	n, _ = b.Write([]byte("ghi"))
	assert.Equal(t, 3, n)
	assert.Equal(t, "abcd", string(b.buf))
	assert.Equal(t, "abcd\n[truncated]", string(b.bytes()))

	unlimited := &cappedBuffer{}
	_, _ = unlimited.Write([]byte(strings.Repeat("x", 1000)))
	assert.Len(t, unlimited.bytes(), 1000)
}

func TestRealProcessRunnerPassesStdin(t *testing.T) {
	stdout, stderr, err := NewRealProcessRunner().Run(context.Background(), "/bin/sh",
		[]string{"-c", "cat"}, strings.NewReader(`{"verbose":true}`))
	require.NoError(t, err)
	assert.Equal(t, `{"verbose":true}`, string(stdout))
	assert.Empty(t, stderr)
}

func TestRealProcessRunnerCapsStderr(t *testing.T) {
	runner := &RealProcessRunner{MaxStdout: DefaultMaxStdout, MaxStderr: 100}

	_, stderr, err := runner.Run(context.Background(), "/bin/sh",
		[]string{"-c", "yes failure | head -c 50000 >&2; exit 2"}, nil)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.ExitCode())
	assert.Len(t, stderr, 100+len("\n[truncated]"))
	assert.True(t, strings.HasPrefix(string(stderr), "failure\n"))
}

func TestRealProcessRunnerRejectsOversizedReply(t *testing.T) {
	runner := &RealProcessRunner{MaxStdout: 100, MaxStderr: DefaultMaxStderr}

	stdout, _, err := runner.Run(context.Background(), "/bin/sh",
		[]string{"-c", "yes '{}' | head -c 5000"}, nil)
	require.ErrorIs(t, err, ErrOutputTooLarge)
	assert.Len(t, stdout, 100)
}

func TestRealProcessRunnerCancelWithLingeringChild(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, _, err := NewRealProcessRunner().Run(ctx, "/bin/sh",
		[]string{"-c", "sleep 10 & sleep 10"}, nil)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
