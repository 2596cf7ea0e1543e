package worktree

import (
	"fmt"
	"path/filepath"
)

// DestinationPath computes the worktree path for a branch: base joined
// with the branch name as a relative path. Slashes in the branch name
// become directories, so feat/x lands at base/feat/x. Names that would
// escape base (absolute, empty, or containing "..") are rejected.
func DestinationPath(base, branch string) (string, error) {
	if branch == "" {
		return "", fmt.Errorf("branch name is empty")
	}
	if !filepath.IsLocal(filepath.FromSlash(branch)) {
		return "", fmt.Errorf("branch name %q escapes the worktree directory", branch)
	}

	return filepath.Join(base, filepath.FromSlash(branch)), nil
}

// BaseDir picks the directory new worktrees are created under: the
// configured worktree directory when set, the repository root
// otherwise.
func BaseDir(worktreeDir, root string) string {
	if worktreeDir != "" {
		return worktreeDir
	}

	return root
}
