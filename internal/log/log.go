// Package log provides context-aware diagnostic logging for twig.
//
// All logger output goes to stderr. Stdout is reserved for primary data
// (paths, listings, completion responses) and is owned by the output package.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

type ctxKey struct{}

// Logger writes user diagnostics and verbose command traces.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
}

// New creates a logger. Quiet suppresses everything, including verbose
// output when both flags are set.
func New(out io.Writer, verbose, quiet bool) *Logger {
	return &Logger{out: out, verbose: verbose, quiet: quiet}
}

// SetFlags updates verbosity after construction. The logger is built
// and attached to the context before the CLI parses its flags, so the
// root command calls this once parsing has happened.
func (l *Logger) SetFlags(verbose, quiet bool) {
	l.verbose = verbose
	l.quiet = quiet
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a discard logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard}
}

// Printf writes formatted diagnostic output. Suppressed when quiet.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a diagnostic line. Suppressed when quiet.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Command logs an external command invocation and returns a callback that
// logs its duration. Prints only in verbose mode.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	if !l.IsVerbose() {
		return func(time.Duration) {}
	}
	if dir != "" {
		fmt.Fprintf(l.out, "[%s] $ %s %s\n", dir, name, strings.Join(args, " "))
	} else {
		fmt.Fprintf(l.out, "$ %s %s\n", name, strings.Join(args, " "))
	}
	return func(d time.Duration) {
		fmt.Fprintf(l.out, "  took %s\n", d.Round(time.Millisecond))
	}
}

// Debug writes a verbose-only message with key=val pairs appended.
// An odd trailing keyval is dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if !l.IsVerbose() {
		return
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
	}
	fmt.Fprintln(l.out, b.String())
}

// IsVerbose reports whether verbose output is active. Quiet wins.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

// IsQuiet reports whether non-error diagnostics are suppressed.
// Progress indicators consult this before rendering.
func (l *Logger) IsQuiet() bool {
	return l.quiet
}

// Writer returns the underlying writer. Useful for routing collaborator
// output to the diagnostic stream.
func (l *Logger) Writer() io.Writer {
	return l.out
}
