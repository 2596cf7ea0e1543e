package cmd

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/twig-cli/twig/internal/log"
)

// RunContext executes a state-changing command in dir (or the current
// directory when dir is empty). Subprocess stdout goes to the diagnostic
// stream, never the tool's stdout. Returns the context error when the
// invocation was cancelled, otherwise an *Error carrying captured stderr.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	l := log.FromContext(ctx)

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Stdout = l.Writer()
	var stderr bytes.Buffer
	c.Stderr = &stderr

	done := l.Command(dir, name, args...)
	start := time.Now()
	err := c.Run()
	done(time.Since(start))

	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &Error{Name: name, Args: args, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return nil
}

// OutputContext executes a read-only query and returns its stdout.
// Error semantics match RunContext.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	l := log.FromContext(ctx)

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	done := l.Command(dir, name, args...)
	start := time.Now()
	err := c.Run()
	done(time.Since(start))

	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &Error{Name: name, Args: args, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return stdout.Bytes(), nil
}
