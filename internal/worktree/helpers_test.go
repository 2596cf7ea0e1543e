package worktree

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// runGitCmd runs a git command and fails the test on error.
func runGitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run git %v: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

// gitConfigValue reads a repo-local config key, empty when unset.
func gitConfigValue(t *testing.T, repoPath, key string) string {
	t.Helper()
	cmd := exec.Command("git", "-C", repoPath, "config", "--get", key)
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// setupTestRepo creates a git repo with main branch and one commit.
// Returns the resolved repo path.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve symlinks: %v", err)
	}
	repoPath := filepath.Join(tmpDir, "repo")

	runGitCmd(t, "", "init", "-b", "main", repoPath)
	runGitCmd(t, repoPath, "config", "user.email", "test@test.com")
	runGitCmd(t, repoPath, "config", "user.name", "Test User")
	runGitCmd(t, repoPath, "config", "commit.gpgsign", "false")

	readme := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readme, []byte("# test\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	runGitCmd(t, repoPath, "add", "README.md")
	runGitCmd(t, repoPath, "commit", "-m", "Initial commit")

	return repoPath
}

// setupTestRepoWithOrigin creates a repo cloned from a local bare
// origin so remote-tracking branches exist. Returns (repoPath,
// originPath).
func setupTestRepoWithOrigin(t *testing.T) (string, string) {
	t.Helper()
	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve symlinks: %v", err)
	}

	originPath := filepath.Join(tmpDir, "origin.git")
	repoPath := filepath.Join(tmpDir, "repo")

	runGitCmd(t, "", "init", "--bare", "-b", "main", originPath)
	runGitCmd(t, "", "clone", originPath, repoPath)
	runGitCmd(t, repoPath, "config", "user.email", "test@test.com")
	runGitCmd(t, repoPath, "config", "user.name", "Test User")
	runGitCmd(t, repoPath, "config", "commit.gpgsign", "false")

	readme := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readme, []byte("# test\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	runGitCmd(t, repoPath, "add", "README.md")
	runGitCmd(t, repoPath, "commit", "-m", "Initial commit")
	runGitCmd(t, repoPath, "push", "-u", "origin", "HEAD")

	return repoPath, originPath
}
