package git

import (
	"context"
	"fmt"
	"strings"
)

// Worktree is one entry of the collaborator's worktree listing: a path,
// the branch checked out there, and the commit it points at. The primary
// checkout appears as a regular entry so it stays switchable like any
// linked worktree.
type Worktree struct {
	Path     string `json:"path"`
	Branch   string `json:"branch,omitempty"`
	Head     string `json:"head,omitempty"`
	Bare     bool   `json:"bare,omitempty"`
	Detached bool   `json:"detached,omitempty"`
}

// BranchSpec tells CreateWorktree how to produce the branch checked out
// in the new worktree.
type BranchSpec struct {
	// Branch is the local branch to check out. Always set.
	Branch string
	// Create makes a new branch instead of reusing an existing one.
	Create bool
	// StartPoint is the commit-ish a created branch forks from.
	// Empty means the collaborator's default (HEAD).
	StartPoint string
	// Track is the remote ref (e.g. "origin/feat") a created branch is
	// set up to track. Implies Create.
	Track string
}

// ListWorktrees returns all worktrees of the repository in the
// collaborator's native listing order, primary checkout first.
func ListWorktrees(ctx context.Context, root string) ([]Worktree, error) {
	output, err := outputGit(ctx, root, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %w", err)
	}
	return parseWorktreePorcelain(string(output)), nil
}

// parseWorktreePorcelain parses `git worktree list --porcelain` output.
// Entries are attribute blocks separated by blank lines, each starting
// with a "worktree <path>" line.
func parseWorktreePorcelain(raw string) []Worktree {
	var worktrees []Worktree
	var current Worktree

	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, "worktree "):
			if current.Path != "" {
				worktrees = append(worktrees, current)
			}
			current = Worktree{Path: strings.TrimPrefix(line, "worktree ")}
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch refs/heads/"):
			current.Branch = strings.TrimPrefix(line, "branch refs/heads/")
		case line == "bare":
			current.Bare = true
		case line == "detached":
			current.Detached = true
		}
	}
	if current.Path != "" {
		worktrees = append(worktrees, current)
	}

	return worktrees
}

// CreateWorktree materializes a worktree at path. The collaborator is the
// single authority here: it creates the branch spec describes, registers
// the worktree, and fails atomically on conflicts such as a branch already
// checked out elsewhere. Not retried.
func CreateWorktree(ctx context.Context, root, path string, spec BranchSpec) error {
	args := []string{"worktree", "add"}
	switch {
	case spec.Track != "":
		args = append(args, "--track", "-b", spec.Branch, path, spec.Track)
	case spec.Create:
		args = append(args, "-b", spec.Branch, path)
		if spec.StartPoint != "" {
			args = append(args, spec.StartPoint)
		}
	default:
		args = append(args, path, spec.Branch)
	}
	return runGit(ctx, root, args...)
}

// RemoveWorktree removes the worktree at path. Without force the
// collaborator refuses dirty or locked worktrees; that refusal is
// surfaced verbatim.
func RemoveWorktree(ctx context.Context, root, path string, force bool) error {
	args := []string{"worktree", "remove", path}
	if force {
		args = append(args, "--force")
	}
	return runGit(ctx, root, args...)
}

// Prune asks the collaborator to drop stale worktree metadata.
func Prune(ctx context.Context, root string) error {
	return runGit(ctx, root, "worktree", "prune")
}
