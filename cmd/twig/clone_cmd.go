package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twig-cli/twig/internal/config"
	"github.com/twig-cli/twig/internal/git"
	"github.com/twig-cli/twig/internal/log"
	"github.com/twig-cli/twig/internal/registry"
	"github.com/twig-cli/twig/internal/ui/progress"
	"github.com/twig-cli/twig/internal/worktree"
)

func newCloneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clone <url> [destination]",
		Short:   "Clone a repository for worktree use",
		GroupID: GroupRegistry,
		Args:    cobra.RangeArgs(1, 2),
		Long: `Clone a repository laid out for worktrees: the object store lives
in a bare repository under <destination>/.git and no checkout is
created, so every working directory is an explicit worktree added
afterwards.

The destination defaults to the repository name from the URL. The
clone is registered so 'list --all' and 'repo switch' see it.`,
		Example: `  twig clone git@github.com:acme/api.git          # clones into api/
  twig clone https://github.com/acme/api.git src  # clones into src/
  cd api && twig add main                         # first worktree`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			url := args[0]
			dest := git.RepoNameFromURL(url)
			if len(args) == 2 {
				dest = args[1]
			}
			if !filepath.IsAbs(dest) {
				dest = filepath.Join(config.WorkDirFromContext(ctx), dest)
			}
			dest = filepath.Clean(dest)

			if _, err := os.Stat(dest); err == nil {
				return &worktree.DestinationExistsError{Path: dest}
			}

			l.Debug("cloning repository", "url", url, "dest", dest)

			err := progress.Run(fmt.Sprintf("Cloning %s", url), !l.IsQuiet(), func() error {
				return git.Clone(ctx, url, dest)
			})
			if err != nil {
				return err
			}

			reg, err := registry.Load(ctx)
			if err != nil {
				l.Printf("Warning: could not register %s: %v\n", dest, err)
			} else if err := reg.Add(dest); err != nil {
				l.Printf("Warning: could not register %s: %v\n", dest, err)
			} else if err := reg.Save(ctx); err != nil {
				l.Printf("Warning: could not register %s: %v\n", dest, err)
			}

			l.Printf("Cloned into %s\n", dest)
			return nil
		},
	}

	// Completions
	cmd.ValidArgsFunction = completeCloneArgs

	return cmd
}
