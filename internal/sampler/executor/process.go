package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"
)

const (
	// DefaultMaxStdout bounds a plugin's reply. A sample is one short JSON
	// object, so anything near this size is a misbehaving plugin.
	DefaultMaxStdout = 64 << 10

	// DefaultMaxStderr bounds the diagnostics kept for error messages.
	DefaultMaxStderr = 8 << 10

	// waitDelay is how long a cancelled plugin may keep its pipes open
	// (through a forked child, say) before they are closed on it.
	waitDelay = time.Second
)

// ErrOutputTooLarge is returned when a plugin writes more than the stdout cap.
var ErrOutputTooLarge = errors.New("plugin output exceeds limit")

// ProcessRunner runs an external process to completion.
// This abstraction allows for dependency injection and easier testing.
type ProcessRunner interface {
	// Run executes path with args, feeding stdin, and returns stdout and stderr.
	Run(ctx context.Context, path string, args []string, stdin io.Reader) (stdout, stderr []byte, err error)
}

// RealProcessRunner runs sampler plugins with os/exec, keeping at most
// MaxStdout bytes of reply and MaxStderr bytes of diagnostics.
type RealProcessRunner struct {
	MaxStdout int
	MaxStderr int
}

// NewRealProcessRunner creates a runner with the default output caps.
func NewRealProcessRunner() *RealProcessRunner {
	return &RealProcessRunner{MaxStdout: DefaultMaxStdout, MaxStderr: DefaultMaxStderr}
}

// Run executes the plugin. Stderr beyond the cap is dropped and marked as
// truncated; stdout beyond the cap fails the run with ErrOutputTooLarge.
// A cancelled context kills the plugin and returns within waitDelay even
// if its children hold the pipes open.
func (r *RealProcessRunner) Run(ctx context.Context, path string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	stdout := &cappedBuffer{limit: r.MaxStdout}
	stderr := &cappedBuffer{limit: r.MaxStderr}

	cmd := exec.CommandContext(ctx, path, args...) // #nosec G204 -- plugin path is chosen by the user
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	if err == nil && stdout.truncated {
		err = fmt.Errorf("%w: more than %d bytes", ErrOutputTooLarge, r.MaxStdout)
	}
	return stdout.buf, stderr.bytes(), err
}

// cappedBuffer keeps the first limit bytes written to it and discards the
// rest. Writes always succeed so the plugin never sees a broken pipe.
// A limit of zero or less keeps everything.
type cappedBuffer struct {
	buf       []byte
	limit     int
	truncated bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if b.limit > 0 {
		room := b.limit - len(b.buf)
		if room < len(p) {
			b.truncated = true
			p = p[:max(room, 0)]
		}
	}
	b.buf = append(b.buf, p...)
	return n, nil
}

// bytes returns the kept output, marked when some was dropped.
func (b *cappedBuffer) bytes() []byte {
	if !b.truncated {
		return b.buf
	}
	return append(b.buf, "\n[truncated]"...)
}
