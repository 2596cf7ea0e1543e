package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// RepoNameFromURL derives a repository name from a clone URL, handling
// both path-style and scp-style forms.
func RepoNameFromURL(url string) string {
	name := strings.TrimSuffix(strings.TrimRight(url, "/"), ".git")
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndex(name, ":"); idx != -1 {
		name = name[idx+1:]
	}
	return name
}

// Clone prepares a worktree-oriented clone at dest: the object store
// lives in a bare repository at dest/.git and no checkout is populated,
// so every working directory under dest is an explicit worktree. The
// fetch refspec maps all remote heads so branch resolution sees the full
// remote picture.
func Clone(ctx context.Context, url, dest string) error {
	gitDir := filepath.Join(dest, ".git")

	if err := runGit(ctx, "", "init", "--bare", gitDir); err != nil {
		return fmt.Errorf("failed to init repository: %w", err)
	}
	if err := runGit(ctx, dest, "remote", "add", "origin", url); err != nil {
		return fmt.Errorf("failed to add origin: %w", err)
	}
	if err := runGit(ctx, dest, "config", "remote.origin.fetch", "+refs/heads/*:refs/remotes/origin/*"); err != nil {
		return fmt.Errorf("failed to configure fetch refspec: %w", err)
	}
	if err := runGit(ctx, dest, "fetch", "--all"); err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	// Record the remote's default branch so HEAD-relative operations
	// work before any worktree exists.
	if err := runGit(ctx, dest, "remote", "set-head", "origin", "-a"); err != nil {
		return fmt.Errorf("failed to set origin HEAD: %w", err)
	}
	return nil
}
