package resolve

import (
	"fmt"
	"slices"
	"strings"
)

// Kind classifies the outcome of a branch resolution.
type Kind int

const (
	// UseExistingLocal checks out a branch that already exists locally.
	UseExistingLocal Kind = iota
	// TrackRemote creates a local branch tracking the remote branch of
	// the same name.
	TrackRemote
	// ForkNew creates a branch from a start point.
	ForkNew
)

func (k Kind) String() string {
	switch k {
	case UseExistingLocal:
		return "use-existing-local"
	case TrackRemote:
		return "track-remote"
	case ForkNew:
		return "fork-new"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome describes what should happen for a requested branch name.
type Outcome struct {
	Kind   Kind
	Branch string

	// Remote names the remote carrying the branch. Set for TrackRemote.
	Remote string

	// StartPoint is the ref the new branch forks from. Set for ForkNew.
	StartPoint string
}

// TrackingRef returns the remote ref a TrackRemote outcome follows,
// e.g. "origin/feature-x".
func (o Outcome) TrackingRef() string {
	return o.Remote + "/" + o.Branch
}

// AmbiguousReferenceError is returned when a branch exists on more
// than one remote and no preference singles one out.
type AmbiguousReferenceError struct {
	Name string
	// Candidates holds the full remote refs, e.g. "origin/feature-x".
	Candidates []string
}

func (e *AmbiguousReferenceError) Error() string {
	return fmt.Sprintf("branch %q exists on multiple remotes: %s", e.Name, strings.Join(e.Candidates, ", "))
}

// Options tune a resolution.
type Options struct {
	// StartPoint forces a fork from the given ref, even when a local or
	// remote branch with the requested name exists.
	StartPoint string

	// PreferredRemote breaks ties when several remotes carry the branch.
	// Empty means ties are reported as ambiguous.
	PreferredRemote string
}

// Resolve maps a requested branch name onto an outcome.
//
// An explicit start point always wins: the name becomes a new branch
// forked from that ref. Otherwise a local branch of that name is used
// as-is, a name found on exactly one remote tracks that remote, and a
// name found nowhere forks from head. remotes holds remote-tracking
// refs in "remote/branch" form.
func Resolve(name string, locals, remotes []string, head string, opts Options) (Outcome, error) {
	if opts.StartPoint != "" {
		return Outcome{Kind: ForkNew, Branch: name, StartPoint: opts.StartPoint}, nil
	}

	if slices.Contains(locals, name) {
		return Outcome{Kind: UseExistingLocal, Branch: name}, nil
	}

	var candidates []string
	for _, ref := range remotes {
		remote, branch, ok := strings.Cut(ref, "/")
		if !ok {
			continue
		}
		if branch == name {
			candidates = append(candidates, remote)
		}
	}

	switch len(candidates) {
	case 0:
		return Outcome{Kind: ForkNew, Branch: name, StartPoint: head}, nil
	case 1:
		return Outcome{Kind: TrackRemote, Branch: name, Remote: candidates[0]}, nil
	}

	if opts.PreferredRemote != "" && slices.Contains(candidates, opts.PreferredRemote) {
		return Outcome{Kind: TrackRemote, Branch: name, Remote: opts.PreferredRemote}, nil
	}

	refs := make([]string, len(candidates))
	for i, remote := range candidates {
		refs[i] = remote + "/" + name
	}

	return Outcome{}, &AmbiguousReferenceError{Name: name, Candidates: refs}
}
