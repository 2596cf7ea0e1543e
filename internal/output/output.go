// Package output provides context-aware primary output for twig.
//
// Stdout carries machine-readable results only: worktree paths for the
// shell wrapper to cd into, listing lines, and completion responses.
// Everything else (progress, warnings, collaborator chatter) belongs on
// stderr via the log package. Shell wrappers capture stdout verbatim, so
// a single stray diagnostic line here breaks the directory switch.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
)

type ctxKey struct{}

// Printer writes primary output to stdout.
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to the given writer.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WithPrinter attaches a Printer to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, &Printer{w: w})
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return &Printer{w: os.Stdout}
}

// Print writes output without a newline.
func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.w, a...)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Path emits a filesystem path as the command's result, as a single
// line. The shell wrapper cds into whatever line arrives on stdout.
func (p *Printer) Path(path string) {
	fmt.Fprintln(p.w, path)
}

// Raw writes text verbatim with no formatting interpretation. Shell
// integration scripts go through here; they carry printf directives
// of their own.
func (p *Printer) Raw(text string) {
	io.WriteString(p.w, text)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}
