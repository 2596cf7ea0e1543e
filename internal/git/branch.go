package git

import (
	"context"
	"fmt"
	"strings"
)

// ListLocalBranches returns all local branch names, short form.
func ListLocalBranches(ctx context.Context, root string) ([]string, error) {
	output, err := outputGit(ctx, root, "for-each-ref", "refs/heads", "--format=%(refname:short)")
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return splitLines(output), nil
}

// ListRemoteBranches returns all remote-tracking branch names in
// "<remote>/<branch>" form. Symbolic HEAD pointers are skipped.
func ListRemoteBranches(ctx context.Context, root string) ([]string, error) {
	output, err := outputGit(ctx, root, "for-each-ref", "refs/remotes", "--format=%(refname:short)")
	if err != nil {
		return nil, fmt.Errorf("failed to list remote branches: %w", err)
	}

	var branches []string
	for _, ref := range splitLines(output) {
		if strings.HasSuffix(ref, "/HEAD") {
			continue
		}
		branches = append(branches, ref)
	}
	return branches, nil
}

// CurrentHead returns the branch name HEAD is on, or the short commit
// hash when detached. Used as the anchor for forked branches, so the
// value must be a valid start point for the collaborator.
func CurrentHead(ctx context.Context, root string) (string, error) {
	output, err := outputGit(ctx, root, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if branch := strings.TrimSpace(string(output)); branch != "" {
		return branch, nil
	}

	output, err = outputGit(ctx, root, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve detached HEAD: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// BranchExists reports whether a local branch with this name exists.
func BranchExists(ctx context.Context, root, branch string) bool {
	_, err := outputGit(ctx, root, "rev-parse", "--verify", "--quiet", "refs/heads/"+branch)
	return err == nil
}

// DeleteLocalBranch deletes a local branch; force drops unmerged ones.
func DeleteLocalBranch(ctx context.Context, root, branch string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	return runGit(ctx, root, "branch", flag, branch)
}

// splitLines splits command output into trimmed non-empty lines.
func splitLines(output []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(output), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
