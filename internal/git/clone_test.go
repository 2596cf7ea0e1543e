package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestRepoNameFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/user/repo.git", "repo"},
		{"https://github.com/user/repo", "repo"},
		{"git@github.com:user/repo.git", "repo"},
		{"git@host:repo.git", "repo"},
		{"ssh://git@host/team/repo.git", "repo"},
		{"/local/path/repo.git", "repo"},
		{"https://github.com/user/repo/", "repo"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			if got := RepoNameFromURL(tt.url); got != tt.want {
				t.Errorf("RepoNameFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestClone(t *testing.T) {
	t.Parallel()

	// A local origin keeps the test offline; git treats the path as a
	// regular remote URL.
	srcPath := setupTestRepo(t)
	ctx := context.Background()
	if err := runGit(ctx, srcPath, "branch", "feature-y"); err != nil {
		t.Fatalf("failed to create branch: %v", err)
	}

	dest := filepath.Join(resolveTempDir(t), "cloned")
	if err := Clone(ctx, srcPath, dest); err != nil {
		t.Fatalf("Clone = %v, want nil", err)
	}

	// The clone is bare-style: metadata under .git, no checkout.
	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatalf("read dest: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != ".git" {
		t.Errorf("dest entries = %v, want only .git", entries)
	}

	root, err := FindRoot(dest)
	if err != nil {
		t.Fatalf("FindRoot = %v", err)
	}
	if root != dest {
		t.Errorf("root = %q, want %q", root, dest)
	}

	remotes, err := ListRemoteBranches(ctx, dest)
	if err != nil {
		t.Fatalf("ListRemoteBranches = %v", err)
	}
	assertContains(t, remotes, "origin/main", "origin/feature-y")

	// No local branches yet; worktree creation will make them.
	locals, err := ListLocalBranches(ctx, dest)
	if err != nil {
		t.Fatalf("ListLocalBranches = %v", err)
	}
	if len(locals) != 0 {
		t.Errorf("local branches = %v, want none", locals)
	}
}
