package shellcomp

import "strings"

// Format renders candidates in the shell's wire format, one record per
// line: "kind,value" for bash, "kind\nvalue\ndescription" triples for
// zsh where "_" stands in for no description, and "value::description"
// for powershell. The result carries no trailing newline; an empty
// candidate list renders as the empty string.
func Format(shell Shell, items []Candidate) string {
	var lines []string
	for _, item := range items {
		switch shell {
		case Bash:
			lines = append(lines, string(item.Kind)+","+item.Value)
		case Zsh:
			descr := item.Description
			if descr == "" {
				descr = "_"
			}
			lines = append(lines, string(item.Kind), item.Value, descr)
		case Powershell:
			lines = append(lines, item.Value+"::"+item.Description)
		}
	}

	return strings.Join(lines, "\n")
}
