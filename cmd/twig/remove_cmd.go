package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twig-cli/twig/internal/config"
	"github.com/twig-cli/twig/internal/git"
	"github.com/twig-cli/twig/internal/log"
	"github.com/twig-cli/twig/internal/worktree"
)

func newRemoveCmd() *cobra.Command {
	var (
		force     bool
		temporary bool
	)

	cmd := &cobra.Command{
		Use:     "remove <worktree>...",
		Short:   "Remove worktrees",
		Aliases: []string{"rm"},
		GroupID: GroupCore,
		Args:    cobra.MinimumNArgs(1),
		Long: `Remove worktrees by branch name or path.

Dirty worktrees are refused unless --force is given. Directories left
empty by the removal are pruned up to the repository root or the
configured worktree directory, so nested names like feature/api clean
up after themselves. A worktree created with --temporary also loses
its branch; --temporary at removal time forces that for any worktree.`,
		Example: `  twig remove feature-x          # by branch name
  twig remove ../feature-x       # by path
  twig remove feature-x -f       # discard uncommitted changes
  twig remove spike -t           # also delete the branch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			cfg := config.FromContext(ctx)

			workDir := config.WorkDirFromContext(ctx)
			root, err := git.FindRoot(workDir)
			if err != nil {
				return err
			}

			worktrees, err := git.ListWorktrees(ctx, root)
			if err != nil {
				return err
			}

			base := worktree.BaseDir(cfg.WorktreeDir, root)

			for _, target := range args {
				// Shell completion and copy-paste leave trailing
				// separators on path targets.
				target = filepath.Clean(target)
				wt, ok := worktree.Find(worktrees, target)
				if !ok && !filepath.IsAbs(target) {
					// A path target may have been given relative.
					wt, ok = worktree.Find(worktrees, filepath.Join(workDir, target))
				}
				if !ok {
					return &worktree.NoSuchWorktreeError{Name: target}
				}

				err := worktree.Remove(ctx, root, wt.Path, wt.Branch, worktree.RemoveOptions{
					Force:      force,
					Temporary:  temporary,
					PruneBelow: base,
				})
				if err != nil {
					return err
				}

				l.Printf("Removed %s\n", wt.Path)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove even with uncommitted changes")
	cmd.Flags().BoolVarP(&temporary, "temporary", "t", false, "Also delete the branch")

	// Completions
	cmd.ValidArgsFunction = completeWorktreeArgs

	return cmd
}
