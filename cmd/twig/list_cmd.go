package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/twig-cli/twig/internal/config"
	"github.com/twig-cli/twig/internal/git"
	"github.com/twig-cli/twig/internal/log"
	"github.com/twig-cli/twig/internal/output"
	"github.com/twig-cli/twig/internal/registry"
	"github.com/twig-cli/twig/internal/ui/static"
)

// repoListing is the JSON shape of one repository in 'list --all'.
type repoListing struct {
	Name      string         `json:"name"`
	Root      string         `json:"root"`
	Worktrees []git.Worktree `json:"worktrees"`
}

func newListCmd() *cobra.Command {
	var (
		all        bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List worktrees",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List the worktrees of the current repository, one per line:
branch, commit and path. --all lists every registered repository
instead; registry entries that stopped being repositories are warned
about on stderr and skipped.`,
		Example: `  twig list            # current repository
  twig list --all      # every registered repository
  twig list --json     # raw records for scripting`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if all {
				return listAll(cmd, jsonOutput)
			}

			root, err := git.FindRoot(config.WorkDirFromContext(ctx))
			if err != nil {
				return err
			}

			worktrees, err := git.ListWorktrees(ctx, root)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(worktrees)
			}

			rows := make([][]string, 0, len(worktrees))
			for _, wt := range worktrees {
				rows = append(rows, static.WorktreeRow(wt))
			}
			out.Raw(static.RenderColumns(rows))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "List worktrees of every registered repository")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func listAll(cmd *cobra.Command, jsonOutput bool) error {
	ctx := cmd.Context()
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	reg, err := registry.Load(ctx)
	if err != nil {
		return err
	}

	entries := reg.Entries()
	if len(entries) == 0 {
		l.Println("No repositories registered")
		return nil
	}

	names := make(map[string]string, len(entries))
	roots := make([]string, 0, len(entries))
	for _, entry := range entries {
		names[entry.Path] = entry.Name
		roots = append(roots, entry.Path)
	}

	listings, warnings := git.ListWorktreesForRoots(ctx, roots)
	for _, w := range warnings {
		l.Printf("Warning: skipping %s: %v\n", w.Root, w.Err)
	}

	if jsonOutput {
		repos := make([]repoListing, 0, len(listings))
		for _, listing := range listings {
			repos = append(repos, repoListing{
				Name:      names[listing.Root],
				Root:      listing.Root,
				Worktrees: listing.Worktrees,
			})
		}
		enc := json.NewEncoder(out.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(repos)
	}

	var rows [][]string
	for _, listing := range listings {
		for _, wt := range listing.Worktrees {
			rows = append(rows, append([]string{names[listing.Root]}, static.WorktreeRow(wt)...))
		}
	}
	out.Raw(static.RenderColumns(rows))
	return nil
}
