package main

import (
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/twig-cli/twig/internal/config"
	"github.com/twig-cli/twig/internal/git"
	"github.com/twig-cli/twig/internal/log"
	"github.com/twig-cli/twig/internal/output"
	"github.com/twig-cli/twig/internal/ui/picker"
	"github.com/twig-cli/twig/internal/ui/progress"
	"github.com/twig-cli/twig/internal/worktree"
)

func newSwitchCmd() *cobra.Command {
	var (
		create          bool
		temporary       bool
		startPoint      string
		interactive     bool
		copyToClipboard bool
	)

	cmd := &cobra.Command{
		Use:     "switch [worktree]",
		Short:   "Print a worktree path for cd",
		Aliases: []string{"sw"},
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Resolve a worktree by branch name and print its path to stdout.

The path is the only stdout output, so the command composes with
command substitution; the wrapper from 'twig init' turns it into an
actual directory change. "-" returns to the directory the previous
switch left from. With --create a missing worktree is created first,
under the same rules as add.`,
		Example: `  cd $(twig switch feature-x)    # plain shell
  twig switch feature-x          # with the 'twig init' wrapper
  twig switch -                  # back to the previous directory
  twig switch -c feature-y       # create if missing
  twig switch -i                 # pick interactively`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)
			cfg := config.FromContext(ctx)
			workDir := config.WorkDirFromContext(ctx)

			if interactive && len(args) > 0 {
				return fmt.Errorf("cannot combine --interactive with a worktree name")
			}

			root, err := git.FindRoot(workDir)
			if err != nil {
				return err
			}

			var target string
			switch {
			case interactive:
				target, err = pickWorktree(ctx, root)
				if err != nil {
					return err
				}
				if target == "" {
					// Cancelled; nothing may reach stdout.
					os.Exit(1)
				}
			case len(args) == 1:
				target = args[0]
			default:
				return fmt.Errorf("worktree name required (or use --interactive)")
			}

			var path string
			err = progress.Run(fmt.Sprintf("Creating worktree for %s", target), create && !l.IsQuiet(), func() error {
				var err error
				path, err = worktree.Switch(ctx, root, target, worktree.SwitchOptions{
					Create:          create,
					Temporary:       temporary,
					StartPoint:      startPoint,
					BaseDir:         worktree.BaseDir(cfg.WorktreeDir, root),
					PreferredRemote: cfg.DefaultRemote,
					RecordFrom:      workDir,
				})
				return err
			})
			if err != nil {
				return err
			}

			if copyToClipboard {
				if err := clipboard.WriteAll(path); err != nil {
					l.Printf("Warning: could not copy path to clipboard: %v\n", err)
				}
			}

			out.Path(path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&create, "create", "c", false, "Create the worktree if it does not exist")
	cmd.Flags().BoolVarP(&temporary, "temporary", "t", false, "With --create, delete the branch when the worktree is removed")
	cmd.Flags().StringVar(&startPoint, "start-point", "", "With --create, ref to fork a new branch from")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick the worktree from a fuzzy list")
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Also copy the path to the clipboard")

	// Completions
	cmd.ValidArgsFunction = completeSwitchArg
	cmd.RegisterFlagCompletionFunc("start-point", completeStartPoint)

	return cmd
}

// pickWorktree runs the interactive picker over the worktrees with a
// branch checked out. Returns the picked branch name, or "" when the
// user cancelled.
func pickWorktree(ctx context.Context, root string) (string, error) {
	worktrees, err := git.ListWorktrees(ctx, root)
	if err != nil {
		return "", err
	}

	var items []picker.Item
	var branches []string
	for _, wt := range worktrees {
		if wt.Branch == "" {
			continue
		}
		items = append(items, picker.Item{Label: wt.Branch, Description: wt.Path})
		branches = append(branches, wt.Branch)
	}

	result, err := picker.Pick("Switch to worktree", items)
	if err != nil {
		return "", err
	}
	if result.Cancelled {
		return "", nil
	}

	return branches[result.Index], nil
}
