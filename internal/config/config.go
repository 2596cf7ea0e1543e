package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the twig configuration.
type Config struct {
	// WorktreeDir, when set, is the base directory new worktrees are
	// created under instead of the repository root.
	WorktreeDir string `toml:"worktree_dir"`
	// DefaultRemote breaks ties when a branch name exists on several
	// remotes. Empty means a multi-remote match is an error.
	DefaultRemote string `toml:"default_remote"`

	// Undecoded lists config keys that were present in the file but are
	// not known settings. Reported as debug output, never an error.
	Undecoded []string `toml:"-"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{}
}

// ValidatePath checks that the path is absolute or starts with ~.
// Relative paths like "." or ".." are rejected.
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // not configured
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the location of the config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "twig", "config.toml"), nil
}

// Load reads config from ~/.config/twig/config.toml.
// Returns Default() without error if the file doesn't exist; returns
// Default() with an error when the file exists but is invalid, so the
// caller can warn and continue.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return loadFrom(path)
}

func loadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}
	for _, key := range md.Undecoded() {
		cfg.Undecoded = append(cfg.Undecoded, key.String())
	}

	if err := ValidatePath(cfg.WorktreeDir, "worktree_dir"); err != nil {
		return Default(), err
	}
	if cfg.WorktreeDir != "" {
		expanded, err := expandPath(cfg.WorktreeDir)
		if err != nil {
			return Default(), fmt.Errorf("expand worktree_dir: %w", err)
		}
		cfg.WorktreeDir = expanded
	}

	if strings.ContainsAny(cfg.DefaultRemote, " \t/") {
		return Default(), fmt.Errorf("invalid default_remote %q: must be a plain remote name", cfg.DefaultRemote)
	}

	return cfg, nil
}
