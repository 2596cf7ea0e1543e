package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

// TestLogger_Suppression covers the verbose/quiet matrix for every
// write method in one place: quiet silences everything, Debug needs
// verbose, Printf and Println print unless quiet.
func TestLogger_Suppression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		verbose     bool
		quiet       bool
		wantPrint   bool
		wantDebug   bool
		wantVerbose bool
	}{
		{name: "defaults", wantPrint: true},
		{name: "verbose", verbose: true, wantPrint: true, wantDebug: true, wantVerbose: true},
		{name: "quiet", quiet: true},
		{name: "quiet wins over verbose", verbose: true, quiet: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			l := New(&buf, tt.verbose, tt.quiet)

			l.Printf("removed %s\n", "/repos/app/feature-x")
			l.Println("done")
			if got := buf.Len() > 0; got != tt.wantPrint {
				t.Errorf("Printf/Println wrote=%v, want %v (buffer %q)", got, tt.wantPrint, buf.String())
			}

			buf.Reset()
			l.Debug("resolved branch", "outcome", "track-remote")
			if got := buf.Len() > 0; got != tt.wantDebug {
				t.Errorf("Debug wrote=%v, want %v (buffer %q)", got, tt.wantDebug, buf.String())
			}

			if got := l.IsVerbose(); got != tt.wantVerbose {
				t.Errorf("IsVerbose() = %v, want %v", got, tt.wantVerbose)
			}
			if got := l.IsQuiet(); got != tt.quiet {
				t.Errorf("IsQuiet() = %v, want %v", got, tt.quiet)
			}
		})
	}
}

// TestSetFlags covers the late flag propagation: the logger exists
// before the CLI parses -v/-q and picks the values up afterwards.
func TestSetFlags(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, false, false)

	l.Debug("before flags", "k", "v")
	if buf.Len() != 0 {
		t.Fatalf("Debug wrote %q before verbose was set", buf.String())
	}

	l.SetFlags(true, false)
	l.Debug("after flags", "k", "v")
	if !strings.Contains(buf.String(), "after flags") {
		t.Errorf("Debug stayed silent after SetFlags(true, false): %q", buf.String())
	}

	l.SetFlags(false, true)
	buf.Reset()
	l.Printf("quieted")
	if buf.Len() != 0 {
		t.Errorf("Printf wrote %q after SetFlags(false, true)", buf.String())
	}
}

func TestPrintln_Format(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, false, false).Println("Removed", "/repos/app/feature-x")

	if got := buf.String(); got != "Removed /repos/app/feature-x\n" {
		t.Errorf("Println output = %q", got)
	}
}

func TestCommand(t *testing.T) {
	t.Parallel()

	t.Run("echoes the invocation with its directory", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, true, false)

		done := l.Command("/repos/app", "git", "worktree", "list", "--porcelain")
		done(120 * time.Millisecond)

		got := buf.String()
		if !strings.Contains(got, "[/repos/app] $ git worktree list --porcelain") {
			t.Errorf("Command output = %q, want the invocation line", got)
		}
		if !strings.Contains(got, "120ms") {
			t.Errorf("Command output = %q, want the rounded duration", got)
		}
	})

	t.Run("omits the directory brackets when unset", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, true, false)

		l.Command("", "git", "config", "--global", "--get", "twig.registry")

		if got := buf.String(); !strings.HasPrefix(got, "$ git config") {
			t.Errorf("Command output = %q, want a bare $ prefix", got)
		}
	})

	t.Run("silent unless verbose", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, false, false)

		done := l.Command("/repos/app", "git", "fetch")
		done(time.Second)

		if buf.Len() != 0 {
			t.Errorf("Command wrote %q without verbose", buf.String())
		}
	})
}

func TestDebug_Keyvals(t *testing.T) {
	t.Parallel()

	t.Run("appends key=val pairs", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, true, false)

		l.Debug("creating worktree", "branch", "feature-x", "dest", "/repos/app/feature-x")

		got := buf.String()
		for _, want := range []string{"creating worktree", "branch=feature-x", "dest=/repos/app/feature-x"} {
			if !strings.Contains(got, want) {
				t.Errorf("Debug output = %q, want %q in it", got, want)
			}
		}
	})

	t.Run("drops an odd trailing keyval", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, true, false)

		l.Debug("pruned", "dir", "/repos/app/feat", "orphan")

		got := buf.String()
		if !strings.Contains(got, "dir=/repos/app/feat") {
			t.Errorf("Debug output = %q, want the complete pair", got)
		}
		if strings.Contains(got, "orphan") {
			t.Errorf("Debug output = %q, unpaired value should be dropped", got)
		}
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		l := New(io.Discard, true, false)
		if got := FromContext(WithLogger(context.Background(), l)); got != l {
			t.Error("FromContext did not return the attached logger")
		}
	})

	t.Run("unattached context discards", func(t *testing.T) {
		t.Parallel()
		l := FromContext(context.Background())
		l.Printf("nobody sees this")
		l.Debug("nobody sees this either")
		if l.Writer() != io.Discard {
			t.Error("fallback logger should write to io.Discard")
		}
	})
}

func TestWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, false, false)
	// Collaborator stdout is routed here by the exec layer.
	if l.Writer() != &buf {
		t.Error("Writer() should expose the underlying diagnostic stream")
	}
}
