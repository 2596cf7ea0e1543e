package git

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RepoWorktrees pairs a repository root with its worktree listing.
type RepoWorktrees struct {
	Root      string
	Worktrees []Worktree
}

// LoadWarning is a non-fatal error for one repository during a
// multi-repository listing.
type LoadWarning struct {
	Root string
	Err  error
}

// ListWorktreesForRoots lists worktrees of several repositories in
// parallel. Results keep the input order regardless of completion order;
// per-repository failures (moved or deleted roots) become warnings,
// never errors, so one broken registry entry cannot hide the rest.
func ListWorktreesForRoots(ctx context.Context, roots []string) ([]RepoWorktrees, []LoadWarning) {
	results := make([]RepoWorktrees, len(roots))
	errs := make([]error, len(roots))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8) // bound concurrent git invocations

	for i, root := range roots {
		g.Go(func() error {
			wts, err := ListWorktrees(ctx, root)
			results[i] = RepoWorktrees{Root: root, Worktrees: wts}
			errs[i] = err
			return nil
		})
	}

	_ = g.Wait() // goroutines report via errs

	var loaded []RepoWorktrees
	var warnings []LoadWarning
	for i, r := range results {
		if errs[i] != nil {
			warnings = append(warnings, LoadWarning{Root: roots[i], Err: errs[i]})
			continue
		}
		loaded = append(loaded, r)
	}
	return loaded, warnings
}
