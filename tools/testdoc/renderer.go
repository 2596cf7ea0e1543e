package main

import (
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"
	"time"
)

// commandFor maps a test name prefix onto the twig command it covers.
// Anything unmapped falls back to the lowercased prefix, so new test
// families show up in the generated doc without touching this table.
var commandFor = map[string]string{
	"Add":                  "twig add",
	"Remove":               "twig remove",
	"List":                 "twig list",
	"Switch":               "twig switch",
	"Clone":                "twig clone",
	"Repo":                 "twig repo",
	"RepoRegister":         "twig repo",
	"RepoList":             "twig repo",
	"RepoSwitch":           "twig repo",
	"Init":                 "twig init",
	"CompletionCandidates": "completion",
	"BranchCompletions":    "completion",
}

// RenderMarkdown writes the scenario catalog: a summary table linking
// into one section per command, each listing its tests with the first
// line of their doc comments.
func RenderMarkdown(w io.Writer, packages []TestPackage) error {
	byCommand := make(map[string][]TestFunc)
	for _, pkg := range packages {
		for _, file := range pkg.Files {
			for _, test := range file.Tests {
				cmd := commandName(test.Name)
				byCommand[cmd] = append(byCommand[cmd], test)
			}
		}
	}

	commands := make([]string, 0, len(byCommand))
	for cmd := range byCommand {
		commands = append(commands, cmd)
	}
	slices.Sort(commands)

	fmt.Fprintf(w, "# Test Documentation\n\n")
	fmt.Fprintf(w, "Generated: %s\n\n", time.Now().Format("2006-01-02"))

	fmt.Fprintf(w, "## Summary\n\n")
	fmt.Fprintf(w, "| Command | Tests |\n")
	fmt.Fprintf(w, "|---------|-------|\n")
	total := 0
	for _, cmd := range commands {
		fmt.Fprintf(w, "| [%s](#%s) | %d |\n", cmd, anchor(cmd), len(byCommand[cmd]))
		total += len(byCommand[cmd])
	}
	fmt.Fprintf(w, "| **Total** | **%d** |\n\n", total)

	for _, cmd := range commands {
		fmt.Fprintf(w, "## %s\n\n", cmd)
		fmt.Fprintf(w, "| Test | Description |\n")
		fmt.Fprintf(w, "|------|-------------|\n")
		for _, test := range byCommand[cmd] {
			desc := strings.ReplaceAll(description(test), "|", "\\|")
			fmt.Fprintf(w, "| `%s` | %s |\n", test.Name, desc)
		}
		fmt.Fprintf(w, "\n")
	}

	return nil
}

// commandName derives the covered command from a test name, e.g.
// TestSwitch_CreateMissing -> "twig switch".
func commandName(testName string) string {
	prefix, _, _ := strings.Cut(strings.TrimPrefix(testName, "Test"), "_")
	if prefix == "" {
		return "other"
	}
	if cmd, ok := commandFor[prefix]; ok {
		return cmd
	}
	return strings.ToLower(prefix)
}

// description is the first non-empty doc comment line, with the
// conventional leading test name stripped and the sentence
// capitalized.
func description(test TestFunc) string {
	for line := range strings.Lines(test.Doc) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(line, test.Name+" ")
		return strings.ToUpper(line[:1]) + line[1:]
	}
	return "_No documentation_"
}

var anchorStrip = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// anchor converts a command heading into its markdown anchor.
func anchor(cmd string) string {
	return strings.ToLower(anchorStrip.ReplaceAllString(strings.ReplaceAll(cmd, " ", "-"), ""))
}
