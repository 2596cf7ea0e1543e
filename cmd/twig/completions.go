package main

import (
	"context"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twig-cli/twig/internal/config"
	"github.com/twig-cli/twig/internal/git"
	"github.com/twig-cli/twig/internal/registry"
	"github.com/twig-cli/twig/internal/shellcomp"
)

type completionLineKey struct{}

// withCompletionLine stores the raw words of a completion query so
// completers can see flags cobra has not parsed.
func withCompletionLine(ctx context.Context, args []string) context.Context {
	return context.WithValue(ctx, completionLineKey{}, args)
}

func completionLine(ctx context.Context) []string {
	args, _ := ctx.Value(completionLineKey{}).([]string)
	return args
}

// completionCandidates answers one completion query against the
// command tree: subcommand names at group level, flag names for a
// dash prefix, flag values after a value-taking flag, and otherwise
// whatever the command's own completer offers.
func completionCandidates(ctx context.Context, root *cobra.Command, req *shellcomp.Request) []shellcomp.Candidate {
	cmd, rest, err := root.Find(req.Args)
	if err != nil {
		return nil
	}
	cmd.SetContext(ctx)

	if strings.HasPrefix(req.Incomplete, "-") {
		return flagCandidates(cmd)
	}

	if len(req.Args) > 0 {
		if flag, ok := pendingFlagValue(cmd, req.Args[len(req.Args)-1]); ok {
			fn, exists := cmd.GetFlagCompletionFunc(flag.Name)
			if !exists {
				return nil
			}
			values, directive := fn(cmd, nil, req.Incomplete)
			return toCandidates(values, directive, req.Incomplete)
		}
	}

	positionals := positionalArgs(cmd, rest)

	if cmd.HasAvailableSubCommands() {
		if len(positionals) > 0 {
			return nil
		}
		return subcommandCandidates(cmd)
	}

	if cmd.ValidArgsFunction != nil {
		values, directive := cmd.ValidArgsFunction(cmd, positionals, req.Incomplete)
		return toCandidates(values, directive, req.Incomplete)
	}

	return nil
}

// toCandidates converts cobra completions, value and optional
// tab-separated description, into wire candidates. A directive asking
// for directory completion turns into a single dir candidate the shell
// hook expands itself.
func toCandidates(values []string, directive cobra.ShellCompDirective, incomplete string) []shellcomp.Candidate {
	if directive&cobra.ShellCompDirectiveFilterDirs != 0 {
		return []shellcomp.Candidate{{Kind: shellcomp.KindDir, Value: incomplete}}
	}

	candidates := make([]shellcomp.Candidate, 0, len(values))
	for _, v := range values {
		value, description, _ := strings.Cut(v, "\t")
		candidates = append(candidates, shellcomp.Candidate{
			Kind:        shellcomp.KindPlain,
			Value:       value,
			Description: description,
		})
	}
	return candidates
}

func subcommandCandidates(cmd *cobra.Command) []shellcomp.Candidate {
	var candidates []shellcomp.Candidate
	for _, sub := range cmd.Commands() {
		if !sub.IsAvailableCommand() {
			continue
		}
		candidates = append(candidates, shellcomp.Candidate{
			Kind:        shellcomp.KindPlain,
			Value:       sub.Name(),
			Description: sub.Short,
		})
	}
	return candidates
}

func flagCandidates(cmd *cobra.Command) []shellcomp.Candidate {
	var candidates []shellcomp.Candidate
	seen := make(map[string]bool)

	collect := func(f *pflag.Flag) {
		if f.Hidden || f.Deprecated != "" || seen[f.Name] {
			return
		}
		seen[f.Name] = true
		candidates = append(candidates, shellcomp.Candidate{
			Kind:        shellcomp.KindPlain,
			Value:       "--" + f.Name,
			Description: f.Usage,
		})
		if f.Shorthand != "" {
			candidates = append(candidates, shellcomp.Candidate{
				Kind:        shellcomp.KindPlain,
				Value:       "-" + f.Shorthand,
				Description: f.Usage,
			})
		}
	}

	cmd.Flags().VisitAll(collect)
	cmd.InheritedFlags().VisitAll(collect)
	return candidates
}

// pendingFlagValue reports whether prev is a value-taking flag of cmd,
// meaning the word under the cursor is that flag's value.
func pendingFlagValue(cmd *cobra.Command, prev string) (*pflag.Flag, bool) {
	if !strings.HasPrefix(prev, "-") || prev == "-" || strings.Contains(prev, "=") {
		return nil, false
	}

	var flag *pflag.Flag
	if name, ok := strings.CutPrefix(prev, "--"); ok {
		flag = cmd.Flags().Lookup(name)
	} else if len(prev) == 2 {
		flag = cmd.Flags().ShorthandLookup(prev[1:])
	}

	if flag == nil || flag.Value.Type() == "bool" {
		return nil, false
	}
	return flag, true
}

// positionalArgs filters flag tokens out of rest so argument
// completers see only positionals. A lone "-" counts as a positional;
// it is the previous-target shorthand, not a flag.
func positionalArgs(cmd *cobra.Command, rest []string) []string {
	var positionals []string
	skip := false
	for _, tok := range rest {
		if skip {
			skip = false
			continue
		}
		if strings.HasPrefix(tok, "-") && tok != "-" {
			if _, ok := pendingFlagValue(cmd, tok); ok {
				skip = true
			}
			continue
		}
		positionals = append(positionals, tok)
	}
	return positionals
}

// filterByPrefix keeps completions whose value starts with prefix. The
// value ends at the first tab; anything after it is description.
func filterByPrefix(values []string, prefix string) []string {
	if prefix == "" {
		return values
	}
	var matches []string
	for _, v := range values {
		name, _, _ := strings.Cut(v, "\t")
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, v)
		}
	}
	return matches
}

// branchCompletions lists every branch reachable for checkout: each
// remote branch once, described by its full remote ref, merged with
// local branches. A local branch replaces the remote entry for the
// same name but keeps its position.
func branchCompletions(ctx context.Context) []string {
	root, err := git.FindRoot(config.WorkDirFromContext(ctx))
	if err != nil {
		return nil
	}

	remotes, _ := git.ListRemoteBranches(ctx, root)
	locals, _ := git.ListLocalBranches(ctx, root)

	values := make([]string, 0, len(remotes)+len(locals))
	index := make(map[string]int, len(remotes))
	for _, ref := range remotes {
		_, branch, ok := strings.Cut(ref, "/")
		if !ok {
			continue
		}
		if _, dup := index[branch]; dup {
			continue
		}
		index[branch] = len(values)
		values = append(values, branch+"\t"+ref)
	}
	for _, branch := range locals {
		if i, dup := index[branch]; dup {
			values[i] = branch
			continue
		}
		index[branch] = len(values)
		values = append(values, branch)
	}
	return values
}

// worktreeCompletions lists live worktrees by branch name, described
// by their path. Bare and detached entries have no branch to offer.
func worktreeCompletions(ctx context.Context) []string {
	root, err := git.FindRoot(config.WorkDirFromContext(ctx))
	if err != nil {
		return nil
	}
	worktrees, err := git.ListWorktrees(ctx, root)
	if err != nil {
		return nil
	}

	var values []string
	for _, wt := range worktrees {
		if wt.Branch == "" {
			continue
		}
		values = append(values, wt.Branch+"\t"+wt.Path)
	}
	return values
}

// repoCompletions lists registered repositories by name, described by
// their root path.
func repoCompletions(ctx context.Context) []string {
	reg, err := registry.Load(ctx)
	if err != nil {
		return nil
	}

	var values []string
	for _, entry := range reg.Entries() {
		values = append(values, entry.Name+"\t"+entry.Path)
	}
	return values
}

// completeBranchArg completes the single branch argument of add.
func completeBranchArg(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterByPrefix(branchCompletions(cmd.Context()), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeStartPoint completes the --start-point flag value.
func completeStartPoint(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterByPrefix(branchCompletions(cmd.Context()), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// worktreePathCompletions lists live worktrees by path, described by
// their branch. Removal targets are paths: a path stays unambiguous
// when a branch is checked out nowhere or a worktree was moved. The
// root worktree is not offered; it cannot be removed.
func worktreePathCompletions(ctx context.Context) []string {
	root, err := git.FindRoot(config.WorkDirFromContext(ctx))
	if err != nil {
		return nil
	}
	worktrees, err := git.ListWorktrees(ctx, root)
	if err != nil {
		return nil
	}

	var values []string
	for _, wt := range worktrees {
		if wt.Path == root || wt.Bare {
			continue
		}
		if wt.Branch == "" {
			values = append(values, wt.Path)
			continue
		}
		values = append(values, wt.Path+"\t"+wt.Branch)
	}
	return values
}

// completeWorktreeArgs completes remove targets with worktree paths;
// any number of worktrees may be named.
func completeWorktreeArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterByPrefix(worktreePathCompletions(cmd.Context()), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeSwitchArg completes the switch target. With --create on the
// line the argument may also be a branch without a live worktree.
func completeSwitchArg(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	values := worktreeCompletions(cmd.Context())

	if wantsCreate(cmd) {
		seen := make(map[string]bool, len(values))
		for _, v := range values {
			name, _, _ := strings.Cut(v, "\t")
			seen[name] = true
		}
		for _, v := range branchCompletions(cmd.Context()) {
			name, _, _ := strings.Cut(v, "\t")
			if !seen[name] {
				values = append(values, v)
			}
		}
	}

	return filterByPrefix(values, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// wantsCreate reports whether the completion query carries the
// --create flag, parsed by cobra or still raw on the line.
func wantsCreate(cmd *cobra.Command) bool {
	if create, _ := cmd.Flags().GetBool("create"); create {
		return true
	}
	line := completionLine(cmd.Context())
	return slices.Contains(line, "-c") || slices.Contains(line, "--create")
}

// completeRepoArg completes a registered repository name.
func completeRepoArg(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterByPrefix(repoCompletions(cmd.Context()), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeCloneArgs offers directory completion for the destination.
func completeCloneArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 1 {
		return nil, cobra.ShellCompDirectiveFilterDirs
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// completeDirArg offers directory completion for a single positional.
func completeDirArg(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// completeShellArg completes the shell argument of init.
func completeShellArg(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterByPrefix([]string{"bash", "zsh", "powershell"}, toComplete), cobra.ShellCompDirectiveNoFileComp
}
