// Package resolve decides how a requested branch name maps onto a
// branch for a new worktree.
//
// The decision is a pure function of the branch inventory: given the
// local branches, the remote-tracking branches and the current HEAD,
// [Resolve] picks exactly one of three outcomes. An existing local
// branch is checked out as-is. A branch that exists on exactly one
// remote is created locally with tracking configured. Anything else
// becomes a new branch forked from the current HEAD, or from an
// explicit start point when the caller supplies one.
//
// A name that matches branches on several remotes is refused with an
// [AmbiguousReferenceError] naming every candidate, unless the caller
// nominates a preferred remote that carries the branch.
package resolve
