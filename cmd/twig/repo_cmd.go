package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twig-cli/twig/internal/config"
	"github.com/twig-cli/twig/internal/git"
	"github.com/twig-cli/twig/internal/log"
	"github.com/twig-cli/twig/internal/output"
	"github.com/twig-cli/twig/internal/registry"
	"github.com/twig-cli/twig/internal/ui/static"
)

func newRepoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "repo",
		Short:   "Manage the repository registry",
		GroupID: GroupRegistry,
		Long: `Manage the registry of repository roots. Registered repositories
show up in 'list --all' and can be jumped between with 'repo switch'.
The registry lives in git's global config, no extra state files.`,
	}

	cmd.AddCommand(newRepoRegisterCmd())
	cmd.AddCommand(newRepoListCmd())
	cmd.AddCommand(newRepoSwitchCmd())

	return cmd
}

func newRepoRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register [path]",
		Short: "Register a repository",
		Args:  cobra.MaximumNArgs(1),
		Long: `Register the repository containing path (default: the current
directory). The registered name is the root directory's basename and
must be unique.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			path := config.WorkDirFromContext(ctx)
			if len(args) == 1 {
				path = args[0]
				if !filepath.IsAbs(path) {
					path = filepath.Join(config.WorkDirFromContext(ctx), path)
				}
			}

			root, err := git.FindRoot(path)
			if err != nil {
				return err
			}

			reg, err := registry.Load(ctx)
			if err != nil {
				return err
			}
			if err := reg.Add(root); err != nil {
				return err
			}
			if err := reg.Save(ctx); err != nil {
				return err
			}

			l.Printf("Registered %s (%s)\n", lastEntryName(reg), root)
			return nil
		},
	}

	// Completions
	cmd.ValidArgsFunction = completeDirArg

	return cmd
}

func lastEntryName(reg *registry.Registry) string {
	entries := reg.Entries()
	return entries[len(entries)-1].Name
}

func newRepoListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List registered repositories",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{entry.Name, entry.Path})
			}
			out.Raw(static.RenderColumns(rows))
			return nil
		},
	}
}

func newRepoSwitchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "switch <name>",
		Short:   "Print a registered repository's path for cd",
		Aliases: []string{"sw"},
		Args:    cobra.ExactArgs(1),
		Long: `Resolve a registered repository by name (or path) and print its
root to stdout, for cd or the 'twig init' wrapper. "-" returns to the
repository the previous repo switch left from.`,
		Example: `  cd $(twig repo switch api)
  twig repo switch -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			reg, err := registry.Load(ctx)
			if err != nil {
				return err
			}

			var target string
			if args[0] == "-" {
				last, err := registry.LastRepo(ctx)
				if err != nil {
					return err
				}
				if last == "" {
					return fmt.Errorf("no previous repository recorded")
				}
				if info, err := os.Stat(last); err != nil || !info.IsDir() {
					return fmt.Errorf("previous repository is gone: %s", last)
				}
				target = last
			} else {
				entry, err := reg.Find(args[0])
				if err != nil {
					return err
				}
				target = entry.Path
			}

			// Remember where we left from, when that is a repository.
			if current, err := git.FindRoot(config.WorkDirFromContext(ctx)); err == nil {
				if err := registry.SetLastRepo(ctx, current); err != nil {
					l.Debug("recording last repository failed", "err", err)
				}
			}

			out.Path(target)
			return nil
		},
	}

	// Completions
	cmd.ValidArgsFunction = completeRepoArg

	return cmd
}
