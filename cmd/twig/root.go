package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/twig-cli/twig/internal/config"
	"github.com/twig-cli/twig/internal/git"
	"github.com/twig-cli/twig/internal/log"
	"github.com/twig-cli/twig/internal/output"
	"github.com/twig-cli/twig/internal/shellcomp"
)

var (
	// Global flags
	verbose bool
	quiet   bool
)

// Command group IDs for organizing help output
const (
	GroupCore     = "core"
	GroupRegistry = "registry"
	GroupUtility  = "utility"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "twig",
	Short: "Git worktree manager",
	Long: `twig manages git worktrees: one directory per branch, created and
removed with a single command.

Machine-readable results (worktree paths, listings) go to stdout and
everything else goes to stderr, so output composes with command
substitution and the shell wrapper installed by 'twig init'.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	CompletionOptions:          cobra.CompletionOptions{DisableDefaultCmd: true},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Flags are only parsed now; propagate them to the logger that
		// was attached to the context before dispatch.
		log.FromContext(cmd.Context()).SetFlags(verbose, quiet)

		// Skip git check for help and for commands that only print scripts
		if cmd.Name() == "help" || cmd.Name() == "__complete" || cmd.Name() == "init" {
			return nil
		}

		return git.CheckGit()
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Shell completion queries arrive via the marker variable set by the
	// hook from 'twig init' and bypass normal command dispatch entirely.
	if req, ok := shellcomp.FromEnv(os.Getenv); ok {
		answerCompletion(req)
		return
	}

	// Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	// Get working directory
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "twig: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Logger on stderr for diagnostics, printer on stdout for results
	ctx = log.WithLogger(ctx, log.New(os.Stderr, verbose, quiet))
	ctx = output.WithPrinter(ctx, os.Stdout)
	ctx = config.WithConfig(ctx, &cfg)
	ctx = config.WithWorkDir(ctx, workDir)

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'twig -h' for help")
		os.Exit(1)
	}
}

// answerCompletion prints candidates for one completion query. Every
// failure stays silent with exit status zero: a broken completion
// setup must never break the user's keypress.
func answerCompletion(req *shellcomp.Request) {
	if req == nil {
		return
	}

	cfg, _ := config.Load()
	workDir, err := os.Getwd()
	if err != nil {
		return
	}

	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(io.Discard, false, true))
	ctx = config.WithConfig(ctx, &cfg)
	ctx = config.WithWorkDir(ctx, workDir)
	ctx = withCompletionLine(ctx, req.Args)

	candidates := completionCandidates(ctx, rootCmd, req)
	candidates = shellcomp.FilterPrefix(candidates, req.Incomplete)
	if lines := shellcomp.Format(req.Shell, candidates); lines != "" {
		fmt.Println(lines)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupRegistry, Title: "Registry Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
	)

	// Core commands
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newSwitchCmd())

	// Registry commands
	rootCmd.AddCommand(newCloneCmd())
	rootCmd.AddCommand(newRepoCmd())

	// Utility commands
	rootCmd.AddCommand(newInitCmd())
}
