package worktree

import "fmt"

// DestinationExistsError is returned when the computed worktree path
// is already occupied by a file or a non-empty directory.
type DestinationExistsError struct {
	Path string
}

func (e *DestinationExistsError) Error() string {
	return fmt.Sprintf("destination %s already exists", e.Path)
}

// NoSuchWorktreeError is returned when a switch or remove target does
// not name a live worktree and creation was not requested.
type NoSuchWorktreeError struct {
	Name string
}

func (e *NoSuchWorktreeError) Error() string {
	return fmt.Sprintf("no worktree for %q", e.Name)
}
