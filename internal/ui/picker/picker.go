// Package picker provides an interactive fuzzy-filtered list for
// selecting a single item.
//
// The picker renders to stderr so stdout stays clean for command
// substitution. Typing narrows the list with fuzzy matching, escape
// clears the filter before it cancels, and enter confirms the row
// under the cursor.
package picker

import (
	"errors"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
	"github.com/sahilm/fuzzy"
)

var (
	filterLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	normalStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	descriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	matchStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).Underline(true)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// Item is one selectable row.
type Item struct {
	Label       string // matched against the filter
	Description string // rendered dimmed after the label
}

// Result reports the outcome of a picker session.
type Result struct {
	Index     int // index into the items passed to Pick
	Cancelled bool
}

// itemSource implements fuzzy.Source over the item labels.
type itemSource []Item

func (s itemSource) String(i int) string { return s[i].Label }
func (s itemSource) Len() int            { return len(s) }

type pickModel struct {
	prompt   string
	items    []Item
	filtered []fuzzy.Match
	cursor   int
	filter   string

	done      bool
	cancelled bool
	selected  int // index into items; -1 until chosen
}

func newPickModel(prompt string, items []Item) *pickModel {
	m := &pickModel{
		prompt:   prompt,
		items:    items,
		selected: -1,
	}
	m.applyFilter()
	return m
}

func (m *pickModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses. Other message types (window size, mouse)
// are ignored because the list operates on key events only.
func (m *pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		if m.filter != "" {
			m.filter = ""
			m.applyFilter()
			return m, nil
		}
		m.cancelled = true
		return m, tea.Quit
	case "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "home", "pgup":
		m.cursor = 0
	case "end", "pgdown":
		m.cursor = max(0, len(m.filtered)-1)
	case "enter":
		if len(m.filtered) > 0 && m.cursor >= 0 && m.cursor < len(m.filtered) {
			m.selected = m.filtered[m.cursor].Index
			m.done = true
			return m, tea.Quit
		}
	case "backspace":
		if len(m.filter) > 0 {
			m.filter = m.filter[:len(m.filter)-1]
			m.applyFilter()
		}
	default:
		if keyMsg.Text != "" {
			m.filter += keyMsg.Text
			m.applyFilter()
		}
	}

	return m, nil
}

func (m *pickModel) View() tea.View {
	if m.done || m.cancelled {
		return tea.NewView("")
	}

	var b strings.Builder
	b.WriteString(m.prompt + "\n")
	b.WriteString(filterLabelStyle.Render("Filter: ") + normalStyle.Render(m.filter) + "\n\n")

	// Scroll window
	maxVisible := 10
	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.filtered))

	if start > 0 {
		b.WriteString(descriptionStyle.Render("  ↑ more above") + "\n")
	}

	for i := start; i < end; i++ {
		match := m.filtered[i]
		item := m.items[match.Index]

		cursor := "  "
		style := normalStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedStyle
		}

		label := style.Render(item.Label)
		if m.filter != "" && len(match.MatchedIndexes) > 0 {
			label = highlightMatches(item.Label, match.MatchedIndexes, i == m.cursor)
		}

		b.WriteString(cursor + label)
		if item.Description != "" {
			b.WriteString("  " + descriptionStyle.Render(item.Description))
		}
		b.WriteString("\n")
	}

	if end < len(m.filtered) {
		b.WriteString(descriptionStyle.Render("  ↓ more below") + "\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString(descriptionStyle.Render("  No matching items") + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("↑/↓ move • type to filter • enter select • esc cancel") + "\n")

	return tea.NewView(b.String())
}

// highlightMatches renders the label with matched characters highlighted.
func highlightMatches(label string, matchedIndexes []int, isSelected bool) string {
	matchSet := make(map[int]bool, len(matchedIndexes))
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	var result strings.Builder
	for i, r := range []rune(label) {
		char := string(r)
		switch {
		case matchSet[i]:
			result.WriteString(matchStyle.Render(char))
		case isSelected:
			result.WriteString(selectedStyle.Render(char))
		default:
			result.WriteString(normalStyle.Render(char))
		}
	}
	return result.String()
}

func (m *pickModel) applyFilter() {
	if m.filter == "" {
		// No filter, keep the original order
		m.filtered = make([]fuzzy.Match, len(m.items))
		for i := range m.items {
			m.filtered[i] = fuzzy.Match{
				Str:   m.items[i].Label,
				Index: i,
			}
		}
	} else {
		// Matches come back sorted by score, best first
		m.filtered = fuzzy.FindFrom(m.filter, itemSource(m.items))
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

// Pick runs the interactive picker and returns the chosen item's index.
// An empty item list cancels immediately without drawing anything.
// Requires stderr to be a terminal; a piped stderr cannot host the UI.
func Pick(prompt string, items []Item) (Result, error) {
	if len(items) == 0 {
		return Result{Cancelled: true}, nil
	}
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return Result{}, errors.New("interactive selection needs a terminal on stderr")
	}

	model := newPickModel(prompt, items)

	profile := colorprofile.Detect(os.Stderr, os.Environ())
	p := tea.NewProgram(model,
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)

	finalModel, err := p.Run()
	if err != nil {
		return Result{}, err
	}

	m := finalModel.(*pickModel)
	if m.cancelled || !m.done || m.selected < 0 {
		return Result{Cancelled: true}, nil
	}

	return Result{Index: m.selected}, nil
}
