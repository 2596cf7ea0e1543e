//go:build integration

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/twig-cli/twig/internal/config"
	"github.com/twig-cli/twig/internal/log"
	"github.com/twig-cli/twig/internal/output"
)

// testContext builds a command context rooted at workDir with stdout
// captured into the returned buffer. Diagnostics are discarded.
func testContext(t *testing.T, cfg *config.Config, workDir string) (context.Context, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(io.Discard, false, true))
	ctx = output.WithPrinter(ctx, &out)
	ctx = config.WithConfig(ctx, cfg)
	ctx = config.WithWorkDir(ctx, workDir)
	return ctx, &out
}

// isolateGlobalConfig points git's global config at a scratch file so
// registry state never leaks between tests or into the developer's
// real config. Uses t.Setenv, so the caller must not be parallel.
func isolateGlobalConfig(t *testing.T) {
	t.Helper()
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(t.TempDir(), "gitconfig"))
}

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// setupTestRepo creates a git repo with an initial commit in dir/name.
// Returns the absolute path to the created repo (symlinks resolved).
func setupTestRepo(t *testing.T, dir, name string) string {
	t.Helper()

	dir = resolvePath(t, dir)

	repoPath := filepath.Join(dir, name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	runGitCommand(t, repoPath, "git", "init", "-b", "main")
	runGitCommand(t, repoPath, "git", "config", "user.email", "test@test.com")
	runGitCommand(t, repoPath, "git", "config", "user.name", "Test User")
	runGitCommand(t, repoPath, "git", "config", "commit.gpgsign", "false")

	readmePath := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readmePath, []byte("# "+name+"\n"), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}
	runGitCommand(t, repoPath, "git", "add", "README.md")
	runGitCommand(t, repoPath, "git", "commit", "-m", "Initial commit")

	return repoPath
}

// setupTestRepoWithLocalOrigin creates a git repo whose origin is a
// local bare repo, with main pushed. Needed for remote branch
// resolution and completion tests.
func setupTestRepoWithLocalOrigin(t *testing.T, dir, name string) string {
	t.Helper()

	dir = resolvePath(t, dir)

	barePath := filepath.Join(dir, name+"-origin.git")
	if err := os.MkdirAll(barePath, 0755); err != nil {
		t.Fatalf("failed to create bare repo dir: %v", err)
	}
	runGitCommand(t, barePath, "git", "init", "--bare")

	repoPath := setupTestRepo(t, dir, name)
	runGitCommand(t, repoPath, "git", "remote", "add", "origin", barePath)
	runGitCommand(t, repoPath, "git", "push", "-u", "origin", "main")

	return repoPath
}

// pushBranchToOrigin publishes a branch to origin without keeping a
// local copy, so it only exists remotely.
func pushBranchToOrigin(t *testing.T, repoPath, branch string) {
	t.Helper()
	runGitCommand(t, repoPath, "git", "branch", branch)
	runGitCommand(t, repoPath, "git", "push", "origin", branch)
	runGitCommand(t, repoPath, "git", "branch", "-D", branch)
}

// setupWorktree creates a worktree on a new branch and returns its path.
func setupWorktree(t *testing.T, repoPath, worktreePath, branch string) string {
	t.Helper()

	cmd := exec.Command("git", "worktree", "add", "-b", branch, worktreePath)
	cmd.Dir = repoPath
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to create worktree: %v\n%s", err, out)
	}
	return worktreePath
}

// makeDirty creates uncommitted changes in a worktree.
func makeDirty(t *testing.T, worktreePath string) {
	t.Helper()

	filePath := filepath.Join(worktreePath, "dirty.txt")
	if err := os.WriteFile(filePath, []byte("uncommitted changes\n"), 0644); err != nil {
		t.Fatalf("failed to create dirty file: %v", err)
	}
}

// runGitCommand runs a git command and returns its output.
func runGitCommand(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run %v: %v\n%s", args, err, out)
	}
	return string(out)
}
