// Package git drives the git CLI as twig's version-control collaborator.
//
// All operations shell out to git rather than linking a Go git library.
// git owns every piece of durable state (branches, refs, worktree
// registrations) and holds its own locks; twig only issues commands and
// interprets exit status. Failure output is relayed verbatim, never parsed.
//
// # Repository Discovery
//
//   - [FindRoot]: walk upward to the primary clone's root, following the
//     .git file of linked worktrees
//
// # Worktree Operations
//
//   - [ListWorktrees]: porcelain listing, primary checkout included
//   - [CreateWorktree]: materialize a worktree per a [BranchSpec]
//   - [RemoveWorktree], [Prune]: removal and metadata cleanup
//   - [ListWorktreesForRoots]: parallel listing across registered roots
//
// # Branch Queries
//
// [ListLocalBranches], [ListRemoteBranches], [CurrentHead] and
// [BranchExists] back the branch resolver; they are read-only and safe to
// call from completion handlers.
//
// # Collaborator Config
//
// [ConfigGet]/[ConfigSet]/[ConfigUnset] (and their Global variants) store
// twig's few durable values (last worktree, repository registry) inside
// git's own config, so twig keeps no state files of its own.
package git
