package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestParseWorktreePorcelain(t *testing.T) {
	t.Parallel()

	raw := "worktree /repos/app\n" +
		"HEAD 1111111111111111111111111111111111111111\n" +
		"branch refs/heads/main\n" +
		"\n" +
		"worktree /repos/app/feature-x\n" +
		"HEAD 2222222222222222222222222222222222222222\n" +
		"branch refs/heads/feature-x\n" +
		"\n" +
		"worktree /repos/app/pinned\n" +
		"HEAD 3333333333333333333333333333333333333333\n" +
		"detached\n" +
		"\n" +
		"worktree /repos/bare/.git\n" +
		"bare\n"

	wts := parseWorktreePorcelain(raw)
	if len(wts) != 4 {
		t.Fatalf("got %d worktrees, want 4", len(wts))
	}

	main := wts[0]
	if main.Path != "/repos/app" || main.Branch != "main" || main.Head == "" {
		t.Errorf("main entry = %+v", main)
	}
	if wts[1].Branch != "feature-x" {
		t.Errorf("second entry branch = %q, want feature-x", wts[1].Branch)
	}
	detached := wts[2]
	if !detached.Detached || detached.Branch != "" {
		t.Errorf("detached entry = %+v", detached)
	}
	bare := wts[3]
	if !bare.Bare || bare.Path != "/repos/bare/.git" {
		t.Errorf("bare entry = %+v", bare)
	}
}

func TestParseWorktreePorcelain_Empty(t *testing.T) {
	t.Parallel()

	if wts := parseWorktreePorcelain(""); wts != nil {
		t.Errorf("parse of empty output = %v, want nil", wts)
	}
}

func TestListWorktrees(t *testing.T) {
	t.Parallel()

	t.Run("primary only", func(t *testing.T) {
		t.Parallel()
		repoPath := setupTestRepo(t)
		ctx := context.Background()

		wts, err := ListWorktrees(ctx, repoPath)
		if err != nil {
			t.Fatalf("ListWorktrees failed: %v", err)
		}
		if len(wts) != 1 {
			t.Fatalf("got %d worktrees, want 1 (primary only)", len(wts))
		}
		if wts[0].Branch != "main" {
			t.Errorf("primary branch = %q, want main", wts[0].Branch)
		}
		if wts[0].Path != repoPath {
			t.Errorf("primary path = %q, want %q", wts[0].Path, repoPath)
		}
	})

	t.Run("primary listed first with linked worktrees", func(t *testing.T) {
		t.Parallel()
		repoPath := setupTestRepo(t)
		ctx := context.Background()

		wt1 := filepath.Join(repoPath, "feature-1")
		wt2 := filepath.Join(repoPath, "feature-2")
		if err := runGit(ctx, repoPath, "worktree", "add", "-b", "feature-1", wt1); err != nil {
			t.Fatalf("failed to create worktree 1: %v", err)
		}
		if err := runGit(ctx, repoPath, "worktree", "add", "-b", "feature-2", wt2); err != nil {
			t.Fatalf("failed to create worktree 2: %v", err)
		}

		wts, err := ListWorktrees(ctx, repoPath)
		if err != nil {
			t.Fatalf("ListWorktrees failed: %v", err)
		}
		if len(wts) != 3 {
			t.Fatalf("got %d worktrees, want 3", len(wts))
		}
		if wts[0].Path != repoPath {
			t.Errorf("first entry = %q, want primary %q", wts[0].Path, repoPath)
		}

		var branches []string
		for _, wt := range wts {
			branches = append(branches, wt.Branch)
		}
		assertContains(t, branches, "main", "feature-1", "feature-2")
	})
}

func TestCreateWorktree(t *testing.T) {
	t.Parallel()

	t.Run("existing branch", func(t *testing.T) {
		t.Parallel()
		repoPath := setupTestRepo(t)
		ctx := context.Background()

		if err := runGit(ctx, repoPath, "branch", "existing"); err != nil {
			t.Fatalf("failed to create branch: %v", err)
		}

		path := filepath.Join(repoPath, "existing")
		if err := CreateWorktree(ctx, repoPath, path, BranchSpec{Branch: "existing"}); err != nil {
			t.Fatalf("CreateWorktree = %v, want nil", err)
		}
		if _, err := os.Stat(filepath.Join(path, "README.md")); err != nil {
			t.Errorf("worktree not populated: %v", err)
		}
	})

	t.Run("new branch from start point", func(t *testing.T) {
		t.Parallel()
		repoPath := setupTestRepo(t)
		ctx := context.Background()

		path := filepath.Join(repoPath, "forked")
		spec := BranchSpec{Branch: "forked", Create: true, StartPoint: "main"}
		if err := CreateWorktree(ctx, repoPath, path, spec); err != nil {
			t.Fatalf("CreateWorktree = %v, want nil", err)
		}
		if !BranchExists(ctx, repoPath, "forked") {
			t.Error("branch forked should exist after creation")
		}
	})

	t.Run("tracking remote branch", func(t *testing.T) {
		t.Parallel()
		repoPath, _ := setupTestRepoWithOrigin(t)
		ctx := context.Background()

		// Publish a branch that only exists on the remote side locally
		if err := runGit(ctx, repoPath, "push", "origin", "main:feature-y"); err != nil {
			t.Fatalf("failed to push: %v", err)
		}
		if err := runGit(ctx, repoPath, "fetch", "origin"); err != nil {
			t.Fatalf("failed to fetch: %v", err)
		}

		path := filepath.Join(repoPath, "feature-y")
		spec := BranchSpec{Branch: "feature-y", Track: "origin/feature-y"}
		if err := CreateWorktree(ctx, repoPath, path, spec); err != nil {
			t.Fatalf("CreateWorktree = %v, want nil", err)
		}

		upstream, err := ConfigGet(ctx, repoPath, "branch.feature-y.merge")
		if err != nil {
			t.Fatalf("ConfigGet = %v", err)
		}
		if upstream != "refs/heads/feature-y" {
			t.Errorf("upstream = %q, want refs/heads/feature-y", upstream)
		}
	})

	t.Run("branch already checked out fails", func(t *testing.T) {
		t.Parallel()
		repoPath := setupTestRepo(t)
		ctx := context.Background()

		path := filepath.Join(repoPath, "dup")
		err := CreateWorktree(ctx, repoPath, path, BranchSpec{Branch: "main"})
		if err == nil {
			t.Error("checking out main twice should fail")
		}
	})
}

func TestRemoveWorktree(t *testing.T) {
	t.Parallel()

	t.Run("clean worktree", func(t *testing.T) {
		t.Parallel()
		repoPath := setupTestRepo(t)
		ctx := context.Background()

		path := filepath.Join(repoPath, "gone")
		if err := CreateWorktree(ctx, repoPath, path, BranchSpec{Branch: "gone", Create: true}); err != nil {
			t.Fatalf("CreateWorktree = %v", err)
		}

		if err := RemoveWorktree(ctx, repoPath, path, false); err != nil {
			t.Fatalf("RemoveWorktree = %v, want nil", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("worktree dir still present after removal")
		}
	})

	t.Run("dirty worktree needs force", func(t *testing.T) {
		t.Parallel()
		repoPath := setupTestRepo(t)
		ctx := context.Background()

		path := filepath.Join(repoPath, "dirty")
		if err := CreateWorktree(ctx, repoPath, path, BranchSpec{Branch: "dirty", Create: true}); err != nil {
			t.Fatalf("CreateWorktree = %v", err)
		}
		if err := os.WriteFile(filepath.Join(path, "untracked.txt"), []byte("x"), 0644); err != nil {
			t.Fatalf("write file: %v", err)
		}

		if err := RemoveWorktree(ctx, repoPath, path, false); err == nil {
			t.Fatal("removing dirty worktree without force should fail")
		}
		if err := RemoveWorktree(ctx, repoPath, path, true); err != nil {
			t.Errorf("RemoveWorktree with force = %v, want nil", err)
		}
	})
}

func TestPrune(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	ctx := context.Background()

	path := filepath.Join(repoPath, "stale")
	if err := CreateWorktree(ctx, repoPath, path, BranchSpec{Branch: "stale", Create: true}); err != nil {
		t.Fatalf("CreateWorktree = %v", err)
	}
	// Delete the directory behind git's back, leaving stale metadata
	if err := os.RemoveAll(path); err != nil {
		t.Fatalf("remove dir: %v", err)
	}

	if err := Prune(ctx, repoPath); err != nil {
		t.Fatalf("Prune = %v, want nil", err)
	}

	wts, err := ListWorktrees(ctx, repoPath)
	if err != nil {
		t.Fatalf("ListWorktrees = %v", err)
	}
	for _, wt := range wts {
		if wt.Path == path {
			t.Error("stale worktree still listed after prune")
		}
	}
}
