// Package worktree manages the worktree lifecycle on top of the git
// accessor: creating worktrees at deterministic paths, removing them
// together with their now-empty parent directories, and resolving
// switch targets.
//
// The destination for a branch is always <base>/<branch>, where base
// defaults to the repository root and the branch name keeps its
// slashes, so feat/x nests under feat/. Removal walks back up and
// deletes directories the removal emptied, stopping at the base.
//
// Nothing here rolls back: when the collaborator fails halfway the
// partial state is left for the user to inspect and remove.
package worktree
