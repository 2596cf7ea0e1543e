//go:build integration

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/twig-cli/twig/internal/config"
	"github.com/twig-cli/twig/internal/worktree"
)

// TestRemove_ByBranch tests removing a worktree by branch name.
//
// Scenario: User runs `twig remove feature` for a clean worktree
// Expected: Worktree directory gone, branch still exists
func TestRemove_ByBranch(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	wtPath := setupWorktree(t, repoPath, filepath.Join(tmpDir, "feature"), "feature")

	cfg := config.Default()
	ctx, _ := testContext(t, &cfg, repoPath)

	cmd := newRemoveCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"feature"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("remove command failed: %v", err)
	}

	if _, err := os.Stat(wtPath); !os.IsNotExist(err) {
		t.Errorf("worktree directory still exists at %s", wtPath)
	}

	branches := runGitCommand(t, repoPath, "git", "branch", "--list", "feature")
	if !strings.Contains(branches, "feature") {
		t.Error("branch feature should survive a plain remove")
	}
}

// TestRemove_ByRelativePath tests removing a worktree by path.
//
// Scenario: User runs `twig remove ../feature` from the repo root
// Expected: The worktree at that path is removed
func TestRemove_ByRelativePath(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	wtPath := setupWorktree(t, repoPath, filepath.Join(tmpDir, "feature"), "feature")

	cfg := config.Default()
	ctx, _ := testContext(t, &cfg, repoPath)

	cmd := newRemoveCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"../feature"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("remove command failed: %v", err)
	}

	if _, err := os.Stat(wtPath); !os.IsNotExist(err) {
		t.Errorf("worktree directory still exists at %s", wtPath)
	}
}

// TestRemove_TrailingSlash tests path targets with a trailing slash.
//
// Scenario: User runs `twig remove /abs/path/to/feature/`, the slash
// left over from shell completion
// Expected: The worktree is still found and removed
func TestRemove_TrailingSlash(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	wtPath := setupWorktree(t, repoPath, filepath.Join(tmpDir, "feature"), "feature")

	cfg := config.Default()
	ctx, _ := testContext(t, &cfg, repoPath)

	cmd := newRemoveCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{wtPath + string(filepath.Separator)})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("remove command failed: %v", err)
	}

	if _, err := os.Stat(wtPath); !os.IsNotExist(err) {
		t.Errorf("worktree directory still exists at %s", wtPath)
	}
}

// TestRemove_Dirty tests refusal of a dirty worktree.
//
// Scenario: Worktree has uncommitted changes, user runs `twig remove`
// Expected: Error, directory untouched
func TestRemove_Dirty(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	wtPath := setupWorktree(t, repoPath, filepath.Join(tmpDir, "feature"), "feature")
	makeDirty(t, wtPath)

	cfg := config.Default()
	ctx, _ := testContext(t, &cfg, repoPath)

	cmd := newRemoveCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"feature"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for dirty worktree, got nil")
	}

	if _, err := os.Stat(wtPath); err != nil {
		t.Errorf("dirty worktree should survive a refused remove: %v", err)
	}
}

// TestRemove_DirtyForce tests --force on a dirty worktree.
//
// Scenario: Worktree has uncommitted changes, user runs `twig remove -f`
// Expected: Worktree removed despite the changes
func TestRemove_DirtyForce(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	wtPath := setupWorktree(t, repoPath, filepath.Join(tmpDir, "feature"), "feature")
	makeDirty(t, wtPath)

	cfg := config.Default()
	ctx, _ := testContext(t, &cfg, repoPath)

	cmd := newRemoveCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"feature", "-f"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("remove command failed: %v", err)
	}

	if _, err := os.Stat(wtPath); !os.IsNotExist(err) {
		t.Errorf("worktree directory still exists at %s", wtPath)
	}
}

// TestRemove_TemporaryFlag tests branch deletion via the -t flag.
//
// Scenario: User runs `twig remove feature -t` on a regular worktree
// Expected: Worktree and branch both gone
func TestRemove_TemporaryFlag(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	setupWorktree(t, repoPath, filepath.Join(tmpDir, "feature"), "feature")

	cfg := config.Default()
	ctx, _ := testContext(t, &cfg, repoPath)

	cmd := newRemoveCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"feature", "-t"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("remove command failed: %v", err)
	}

	branches := runGitCommand(t, repoPath, "git", "branch", "--list", "feature")
	if strings.Contains(branches, "feature") {
		t.Error("branch feature should be deleted by remove -t")
	}
}

// TestRemove_TaggedTemporary tests the add -t / remove handshake.
//
// Scenario: Worktree was created with `twig add spike -t`, then removed
// without any flag
// Expected: The temporary tag makes the plain remove delete the branch
func TestRemove_TaggedTemporary(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")

	cfg := config.Default()
	ctx, _ := testContext(t, &cfg, repoPath)

	addCmd := newAddCmd()
	addCmd.SetContext(ctx)
	addCmd.SetArgs([]string{"spike", "-t"})
	if err := addCmd.Execute(); err != nil {
		t.Fatalf("add command failed: %v", err)
	}

	cmd := newRemoveCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"spike"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("remove command failed: %v", err)
	}

	branches := runGitCommand(t, repoPath, "git", "branch", "--list", "spike")
	if strings.Contains(branches, "spike") {
		t.Error("branch spike should be deleted when its worktree was tagged temporary")
	}
}

// TestRemove_PrunesNestedDirs tests ancestor pruning for nested names.
//
// Scenario: Worktree feature/api was created under the repo root, then
// removed
// Expected: The intermediate feature/ directory disappears too
func TestRemove_PrunesNestedDirs(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")

	cfg := config.Default()
	ctx, _ := testContext(t, &cfg, repoPath)

	addCmd := newAddCmd()
	addCmd.SetContext(ctx)
	addCmd.SetArgs([]string{"feature/api"})
	if err := addCmd.Execute(); err != nil {
		t.Fatalf("add command failed: %v", err)
	}

	cmd := newRemoveCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"feature/api"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("remove command failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(repoPath, "feature")); !os.IsNotExist(err) {
		t.Error("emptied intermediate directory feature/ should be pruned")
	}
}

// TestRemove_Unknown tests the error for a target without a worktree.
//
// Scenario: User runs `twig remove nonexistent`
// Expected: NoSuchWorktreeError
func TestRemove_Unknown(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")

	cfg := config.Default()
	ctx, _ := testContext(t, &cfg, repoPath)

	cmd := newRemoveCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"nonexistent"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for unknown worktree, got nil")
	}
	var notFound *worktree.NoSuchWorktreeError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NoSuchWorktreeError, got %v", err)
	}
}
