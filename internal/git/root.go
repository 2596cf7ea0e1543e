package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotRepository indicates no repository root was found above the
// starting directory.
var ErrNotRepository = errors.New("not inside a git repository")

// FindRoot walks upward from startDir until it finds a .git entry and
// returns the primary clone's root. Inside a linked worktree the .git
// file is followed back to the primary root, so worktree placement and
// listing are always anchored at the same directory no matter where the
// command runs. Fails with ErrNotRepository when the filesystem root is
// reached first.
func FindRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		marker := filepath.Join(dir, ".git")
		info, err := os.Stat(marker)
		if err == nil {
			if info.IsDir() {
				// Primary root: a working .git directory, or the
				// bare .git layout produced by clone.
				return dir, nil
			}
			return rootFromGitFile(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w (searched from %s)", ErrNotRepository, startDir)
		}
		dir = parent
	}
}

// rootFromGitFile resolves the primary root from a linked worktree's .git
// file, which holds a line like "gitdir: /repo/.git/worktrees/name".
func rootFromGitFile(worktreePath string) (string, error) {
	content, err := os.ReadFile(filepath.Join(worktreePath, ".git"))
	if err != nil {
		return "", fmt.Errorf("failed to read .git file: %w", err)
	}

	line := strings.TrimSpace(string(content))
	if idx := strings.Index(line, "\n"); idx != -1 {
		line = strings.TrimSpace(line[:idx])
	}
	gitdir := strings.TrimPrefix(line, "gitdir: ")
	if gitdir == line || gitdir == "" {
		return "", fmt.Errorf("invalid .git file format: expected 'gitdir: <path>'")
	}

	if !filepath.IsAbs(gitdir) {
		gitdir = filepath.Join(worktreePath, gitdir)
	}
	gitdir = filepath.Clean(gitdir)

	// gitdir is like /repo/.git/worktrees/name; the root is the parent
	// of the .git component.
	dir := gitdir
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find repository root from gitdir: %s", gitdir)
		}
		if filepath.Base(dir) == ".git" {
			return parent, nil
		}
		dir = parent
	}
}
