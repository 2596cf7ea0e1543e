package git

import (
	"context"
	"strings"

	"github.com/twig-cli/twig/internal/cmd"
)

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// runGit executes a state-changing git command with context support and
// verbose logging. Collaborator stdout lands on the diagnostic stream.
func runGit(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, "", "git", gitArgs(dir, args)...)
}

// outputGit executes a read-only git query, returning stdout.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
}

// trimOutput trims a single-value query result.
func trimOutput(output []byte) string {
	return strings.TrimSpace(string(output))
}
