package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twig-cli/twig/internal/config"
	"github.com/twig-cli/twig/internal/git"
	"github.com/twig-cli/twig/internal/log"
	"github.com/twig-cli/twig/internal/output"
	"github.com/twig-cli/twig/internal/ui/progress"
	"github.com/twig-cli/twig/internal/worktree"
)

func newAddCmd() *cobra.Command {
	var (
		startPoint string
		dest       string
		temporary  bool
	)

	cmd := &cobra.Command{
		Use:     "add <branch>",
		Short:   "Create a worktree for a branch",
		Aliases: []string{"a"},
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Create a worktree for a branch and print its path.

An existing local branch is checked out as-is. A branch that exists on
exactly one remote gets a local tracking branch; the same name on
several remotes is an error unless default_remote settles it. Anything
else becomes a new branch forked from HEAD, or from --start-point.

The worktree directory is derived from the branch name, nested under
the repository root or under worktree_dir from the config. Slashes in
the branch name become directories: feature/api lands in feature/api/.`,
		Example: `  twig add feature-x                  # local or remote branch
  twig add feature/api                # nested directory feature/api/
  twig add hotfix --start-point v1.2  # fork from a tag
  twig add spike -t                   # branch is deleted on remove
  cd $(twig add feature-x)            # jump straight in`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)
			cfg := config.FromContext(ctx)

			root, err := git.FindRoot(config.WorkDirFromContext(ctx))
			if err != nil {
				return err
			}

			l.Debug("adding worktree", "branch", args[0], "root", root)

			var path string
			err = progress.Run(fmt.Sprintf("Creating worktree for %s", args[0]), !l.IsQuiet(), func() error {
				var err error
				path, err = worktree.Add(ctx, root, args[0], worktree.AddOptions{
					StartPoint:      startPoint,
					Dest:            dest,
					BaseDir:         worktree.BaseDir(cfg.WorktreeDir, root),
					PreferredRemote: cfg.DefaultRemote,
					Temporary:       temporary,
				})
				return err
			})
			if err != nil {
				return err
			}

			out.Path(path)
			return nil
		},
	}

	cmd.Flags().StringVar(&startPoint, "start-point", "", "Ref to fork a new branch from (default: HEAD)")
	cmd.Flags().StringVarP(&dest, "dest", "d", "", "Worktree directory (default: derived from the branch name)")
	cmd.Flags().BoolVarP(&temporary, "temporary", "t", false, "Delete the branch when the worktree is removed")

	// Completions
	cmd.ValidArgsFunction = completeBranchArg
	cmd.RegisterFlagCompletionFunc("start-point", completeStartPoint)
	cmd.RegisterFlagCompletionFunc("dest", completeDirFlag)

	return cmd
}

// completeDirFlag offers directory completion for a path flag value.
func completeDirFlag(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveFilterDirs
}
