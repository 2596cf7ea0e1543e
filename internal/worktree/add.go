package worktree

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/twig-cli/twig/internal/git"
	"github.com/twig-cli/twig/internal/log"
	"github.com/twig-cli/twig/internal/resolve"
)

// AddOptions tune worktree creation.
type AddOptions struct {
	// StartPoint forces a new branch forked from the given ref.
	StartPoint string

	// Dest overrides the computed destination path.
	Dest string

	// BaseDir is the directory worktrees are created under. Empty means
	// the repository root.
	BaseDir string

	// PreferredRemote breaks ties when the branch exists on several
	// remotes.
	PreferredRemote string

	// Temporary tags the worktree so removal also deletes its branch.
	Temporary bool
}

// Add creates a worktree for branch and returns its absolute path.
// The branch is resolved against the current local and remote
// inventory; the destination must be absent or an empty directory.
func Add(ctx context.Context, root, branch string, opts AddOptions) (string, error) {
	locals, err := git.ListLocalBranches(ctx, root)
	if err != nil {
		return "", err
	}
	remotes, err := git.ListRemoteBranches(ctx, root)
	if err != nil {
		return "", err
	}
	head, err := git.CurrentHead(ctx, root)
	if err != nil {
		return "", err
	}

	outcome, err := resolve.Resolve(branch, locals, remotes, head, resolve.Options{
		StartPoint:      opts.StartPoint,
		PreferredRemote: opts.PreferredRemote,
	})
	if err != nil {
		return "", err
	}

	dest := opts.Dest
	if dest == "" {
		dest, err = DestinationPath(BaseDir(opts.BaseDir, root), branch)
		if err != nil {
			return "", err
		}
	}
	dest, err = filepath.Abs(dest)
	if err != nil {
		return "", err
	}

	if err := checkDestination(dest); err != nil {
		return "", err
	}

	l := log.FromContext(ctx)
	l.Debug("creating worktree", "branch", branch, "dest", dest, "resolution", outcome.Kind)

	if err := git.CreateWorktree(ctx, root, dest, branchSpec(outcome)); err != nil {
		return "", err
	}

	if opts.Temporary {
		if err := git.ConfigSet(ctx, root, temporaryKey(branch), "true"); err != nil {
			l.Printf("Warning: could not tag %s as temporary: %v\n", branch, err)
		}
	}

	return dest, nil
}

// checkDestination accepts a missing path or an empty directory and
// rejects everything else.
func checkDestination(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &DestinationExistsError{Path: path}
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return &DestinationExistsError{Path: path}
	}

	return nil
}

func branchSpec(o resolve.Outcome) git.BranchSpec {
	switch o.Kind {
	case resolve.TrackRemote:
		return git.BranchSpec{Branch: o.Branch, Track: o.TrackingRef()}
	case resolve.ForkNew:
		return git.BranchSpec{Branch: o.Branch, Create: true, StartPoint: o.StartPoint}
	default:
		return git.BranchSpec{Branch: o.Branch}
	}
}

// temporaryKey is the repo-local config key tagging a branch's
// worktree as temporary. The branch goes in the subsection, where git
// accepts slashes and dots; a variable name like feature/api would be
// rejected as invalid.
func temporaryKey(branch string) string {
	return "twig.temporary/" + branch + ".tag"
}
