package worktree

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/twig-cli/twig/internal/git"
	"github.com/twig-cli/twig/internal/log"
)

// RemoveOptions tune worktree removal.
type RemoveOptions struct {
	// Force removes worktrees with uncommitted changes.
	Force bool

	// Temporary deletes the branch after removal even when the worktree
	// was not tagged temporary at creation.
	Temporary bool

	// PruneBelow bounds ancestor pruning: directories between the
	// removed path and this one are deleted while empty. Empty string
	// disables pruning.
	PruneBelow string
}

// Remove deletes the worktree at path and prunes the directories the
// removal emptied. Worktrees tagged temporary, or removed with the
// Temporary option, lose their branch and their collaborator-side
// metadata too.
func Remove(ctx context.Context, root, path, branch string, opts RemoveOptions) error {
	temporary := opts.Temporary
	if !temporary && branch != "" {
		tag, err := git.ConfigGet(ctx, root, temporaryKey(branch))
		if err != nil {
			return err
		}
		temporary = tag == "true"
	}

	if err := git.RemoveWorktree(ctx, root, path, opts.Force); err != nil {
		return err
	}

	if opts.PruneBelow != "" {
		l := log.FromContext(ctx)
		for _, dir := range PruneAncestors(path, opts.PruneBelow) {
			l.Debug("pruned empty directory", "dir", dir)
		}
	}

	if temporary && branch != "" {
		if err := git.DeleteLocalBranch(ctx, root, branch, true); err != nil {
			return err
		}
		if err := git.ConfigUnset(ctx, root, temporaryKey(branch)); err != nil {
			return err
		}
		if err := git.Prune(ctx, root); err != nil {
			return err
		}
	}

	return nil
}

// PruneAncestors removes now-empty directories from path's parent
// upward, stopping before stop, at the first non-empty directory, or
// on any filesystem failure. A concurrent writer re-populating a
// directory is a stop condition, not an error. Returns the directories
// it removed.
func PruneAncestors(path, stop string) []string {
	stop = filepath.Clean(stop)
	dir := filepath.Dir(filepath.Clean(path))

	var removed []string
	for dir != stop {
		rel, err := filepath.Rel(stop, dir)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			break
		}

		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			break
		}
		if os.Remove(dir) != nil {
			break
		}

		removed = append(removed, dir)
		dir = filepath.Dir(dir)
	}

	return removed
}
