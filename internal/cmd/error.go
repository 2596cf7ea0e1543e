package cmd

import "strings"

// Error reports a failed collaborator invocation. The collaborator's stderr
// is relayed verbatim as the message when present; the exec error is kept
// for unwrapping.
type Error struct {
	Name   string
	Args   []string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return strings.Join(append([]string{e.Name}, e.Args...), " ") + " failed"
}

func (e *Error) Unwrap() error { return e.Err }
