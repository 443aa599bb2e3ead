package executor

import (
	"context"
	"errors"
	"io"
	"time"
)

// mockProcessRunner is a ProcessRunner that never starts a process.
type mockProcessRunner struct {
	// runFunc allows tests to provide custom behaviour.
	runFunc func(ctx context.Context, path string, args []string, stdin io.Reader) (stdout, stderr []byte, err error)

	// delay simulates slow process execution.
	delay time.Duration

	// shouldTimeout blocks until the context is cancelled.
	shouldTimeout bool

	callCount int
	lastPath  string
	lastArgs  []string
	lastStdin []byte
}

// Run executes the mock behaviour.
func (m *mockProcessRunner) Run(ctx context.Context, path string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	m.callCount++
	m.lastPath = path
	m.lastArgs = args
	if stdin != nil {
		m.lastStdin, _ = io.ReadAll(stdin)
	}

	if m.shouldTimeout {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}

	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}

	if m.runFunc != nil {
		return m.runFunc(ctx, path, args, stdin)
	}

	return []byte(`{"hex":"#000000"}`), nil, nil
}

func newTimeoutMockProcessRunner() *mockProcessRunner {
	return &mockProcessRunner{shouldTimeout: true}
}

func newErrorMockProcessRunner(errMsg string) *mockProcessRunner {
	return &mockProcessRunner{
		runFunc: func(context.Context, string, []string, io.Reader) ([]byte, []byte, error) {
			return nil, []byte(errMsg), errors.New("exit status 1")
		},
	}
}

func newSuccessMockProcessRunner(stdout string) *mockProcessRunner {
	return &mockProcessRunner{
		runFunc: func(context.Context, string, []string, io.Reader) ([]byte, []byte, error) {
			return []byte(stdout), nil, nil
		},
	}
}
