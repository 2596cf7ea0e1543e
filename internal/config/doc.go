// Package config handles loading and validation of twig configuration.
//
// Configuration is read from ~/.config/twig/config.toml. A missing file
// yields the defaults; a malformed file is reported as a warning and the
// defaults are used, so a broken config never blocks worktree operations.
//
// # Key Settings
//
//   - worktree_dir: optional base directory for new worktrees; when unset,
//     worktrees are created directly under the repository root (must be
//     absolute or start with ~)
//   - default_remote: remote preferred during branch resolution when a name
//     exists on several remotes; unset means ambiguity is an error
//
// # Path Validation
//
// Directory paths must be absolute or start with ~ (no relative paths like
// "." or "..") to avoid confusion about the working directory.
package config
