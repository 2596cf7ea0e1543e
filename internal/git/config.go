package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/twig-cli/twig/internal/cmd"
)

// twig keeps its few durable values in git's own config rather than in
// state files of its own: repo-local keys for per-repository memory and
// global keys for the cross-repository registry.

// ConfigGet reads a repo-local config value. An unset key is not an
// error; it yields "".
func ConfigGet(ctx context.Context, root, key string) (string, error) {
	return configGet(ctx, root, []string{"config", "--get", key})
}

// ConfigSet writes a repo-local config value.
func ConfigSet(ctx context.Context, root, key, value string) error {
	return runGit(ctx, root, "config", key, value)
}

// ConfigUnset removes a repo-local config key. Unsetting an absent key
// is not an error.
func ConfigUnset(ctx context.Context, root, key string) error {
	return configUnset(runGit(ctx, root, "config", "--unset", key))
}

// GlobalConfigGet reads a user-global config value.
func GlobalConfigGet(ctx context.Context, key string) (string, error) {
	return configGet(ctx, "", []string{"config", "--global", "--get", key})
}

// GlobalConfigSet writes a user-global config value.
func GlobalConfigSet(ctx context.Context, key, value string) error {
	return runGit(ctx, "", "config", "--global", key, value)
}

// GlobalConfigUnset removes a user-global config key.
func GlobalConfigUnset(ctx context.Context, key string) error {
	return configUnset(runGit(ctx, "", "config", "--global", "--unset", key))
}

func configGet(ctx context.Context, dir string, args []string) (string, error) {
	output, err := outputGit(ctx, dir, args...)
	if err != nil {
		// git config --get exits 1 with silent stderr for unset keys.
		var cmdErr *cmd.Error
		if errors.As(err, &cmdErr) && cmdErr.Stderr == "" {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config: %w", err)
	}
	return trimOutput(output), nil
}

func configUnset(err error) error {
	if err == nil {
		return nil
	}
	var cmdErr *cmd.Error
	if errors.As(err, &cmdErr) && cmdErr.Stderr == "" {
		return nil
	}
	return err
}
