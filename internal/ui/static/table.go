// Package static provides non-interactive terminal output components.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/twig-cli/twig/internal/git"
)

// RenderColumns renders rows as aligned columns, one row per line.
// Column widths are calculated from the content; no borders or headers
// are drawn, so the output stays parseable with line-oriented tools.
func RenderColumns(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// WorktreeRow builds the display cells for a single worktree:
// branch, abbreviated head, and path.
func WorktreeRow(wt git.Worktree) []string {
	branch := wt.Branch
	switch {
	case wt.Bare:
		branch = "(bare)"
	case wt.Detached:
		branch = "(detached)"
	}
	return []string{branch, shortHash(wt.Head), wt.Path}
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
