// Package shellcomp implements the wire protocol between the shell
// completion hooks and the CLI.
//
// A completion query is an ordinary invocation of the binary with the
// marker variable _TWIG_COMPLETE set to <shell>_complete. The hook
// passes the current command line through COMP_WORDS plus a cursor
// index (COMP_CWORD, or COMP_CPOS with the whole line for powershell),
// and expects candidates on stdout in a per-shell line format. The
// protocol is a fixed external contract: hooks in users' shells parse
// these exact shapes.
//
// Candidate generation lives with the commands; this package only
// decodes requests and encodes responses. A query must never break the
// user's keypress, so malformed requests decode to nil and the caller
// responds with silence and exit 0.
package shellcomp

import "strings"

// Marker is the environment variable that turns an invocation into a
// completion query.
const Marker = "_TWIG_COMPLETE"

// Shell identifies the completion dialect.
type Shell string

const (
	Bash       Shell = "bash"
	Zsh        Shell = "zsh"
	Powershell Shell = "powershell"
)

// Kind tells the shell how to treat a candidate. Plain candidates are
// inserted as-is; dir and file make the hook fall back to the shell's
// native path completion.
type Kind string

const (
	KindPlain Kind = "plain"
	KindDir   Kind = "dir"
	KindFile  Kind = "file"
)

// Candidate is a single completion suggestion.
type Candidate struct {
	Kind        Kind
	Value       string
	Description string
}

// Plain builds a plain candidate without a description.
func Plain(value string) Candidate {
	return Candidate{Kind: KindPlain, Value: value}
}

// FilterPrefix keeps the candidates whose value starts with prefix.
// Matching is case-sensitive: completion favors determinism over
// cleverness.
func FilterPrefix(items []Candidate, prefix string) []Candidate {
	if prefix == "" {
		return items
	}

	var kept []Candidate
	for _, item := range items {
		if strings.HasPrefix(item.Value, prefix) {
			kept = append(kept, item)
		}
	}

	return kept
}
