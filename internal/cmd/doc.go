// Package cmd executes collaborator commands with context cancellation and
// error capture.
//
// Commands run via [os/exec.CommandContext], so an interrupted invocation
// (Ctrl-C) kills the in-flight subprocess. Stderr is captured and carried
// verbatim in the returned [Error]; it is never parsed or reinterpreted.
// Subprocess stdout from state-changing commands is routed to the diagnostic
// stream, keeping the tool's own stdout clean for shell wrappers that
// capture it.
//
// # Design Notes
//
// twig shells out to the git CLI rather than using a Go git library. git is
// the authority on worktree metadata and holds its own locks; driving it as
// an opaque subprocess keeps state ownership in one place and inherits user
// configuration (SSH keys, credential helpers) for free.
package cmd
