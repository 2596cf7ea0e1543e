package worktree

import (
	"context"
	"os"

	"github.com/twig-cli/twig/internal/git"
	"github.com/twig-cli/twig/internal/log"
)

// lastKey is the repo-local config key remembering the directory the
// previous switch left from.
const lastKey = "twig.last"

// SwitchOptions tune switch target resolution.
type SwitchOptions struct {
	// Create builds a missing worktree instead of failing.
	Create bool

	// Temporary tags a created worktree for branch deletion on removal.
	Temporary bool

	// StartPoint, BaseDir and PreferredRemote carry over into the
	// created worktree; see AddOptions.
	StartPoint      string
	BaseDir         string
	PreferredRemote string

	// RecordFrom, when set, is stored as the directory "switch -"
	// returns to next time.
	RecordFrom string
}

// Switch resolves name to a worktree path. "-" returns the directory
// recorded by the previous switch. A name without a live worktree
// fails with NoSuchWorktreeError unless Create is set, in which case
// the worktree is created under the same resolution rules as Add.
func Switch(ctx context.Context, root, name string, opts SwitchOptions) (string, error) {
	target, err := switchTarget(ctx, root, name, opts)
	if err != nil {
		return "", err
	}

	if opts.RecordFrom != "" {
		if err := git.ConfigSet(ctx, root, lastKey, opts.RecordFrom); err != nil {
			log.FromContext(ctx).Debug("recording last directory failed", "err", err)
		}
	}

	return target, nil
}

func switchTarget(ctx context.Context, root, name string, opts SwitchOptions) (string, error) {
	if name == "-" {
		last, err := git.ConfigGet(ctx, root, lastKey)
		if err != nil {
			return "", err
		}
		if last == "" {
			return "", &NoSuchWorktreeError{Name: "-"}
		}
		// The recorded directory may be gone, removed behind our back.
		if info, err := os.Stat(last); err != nil || !info.IsDir() {
			return "", &NoSuchWorktreeError{Name: "-"}
		}
		return last, nil
	}

	worktrees, err := git.ListWorktrees(ctx, root)
	if err != nil {
		return "", err
	}
	for _, wt := range worktrees {
		if wt.Branch == name {
			return wt.Path, nil
		}
	}

	if !opts.Create {
		return "", &NoSuchWorktreeError{Name: name}
	}

	return Add(ctx, root, name, AddOptions{
		StartPoint:      opts.StartPoint,
		BaseDir:         opts.BaseDir,
		PreferredRemote: opts.PreferredRemote,
		Temporary:       opts.Temporary,
	})
}

// Find returns the live worktree whose branch or path equals ref.
func Find(worktrees []git.Worktree, ref string) (git.Worktree, bool) {
	for _, wt := range worktrees {
		if wt.Branch == ref || wt.Path == ref {
			return wt, true
		}
	}

	return git.Worktree{}, false
}
