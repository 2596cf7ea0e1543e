// Package progress provides progress indication for long-running
// commands.
//
// Indicators render to stderr so stdout stays clean for command
// substitution. When stderr is not a terminal, or the indicator is
// disabled, the wrapped operation runs undecorated.
package progress

import (
	"fmt"
	"os"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
)

// spinnerModel animates a dot spinner next to a static message.
type spinnerModel struct {
	spinner spinner.Model
	message string
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case tea.KeyPressMsg:
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() tea.View {
	if m.message == "" {
		return tea.NewView("")
	}
	return tea.NewView(fmt.Sprintf("%s %s", m.spinner.View(), m.message))
}

// Run executes fn while a spinner with the given message animates on
// stderr. The spinner only renders when show is true and stderr is a
// terminal; otherwise fn runs bare. Run returns fn's error.
func Run(message string, show bool, fn func() error) error {
	if !show || !isatty.IsTerminal(os.Stderr.Fd()) {
		return fn()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	model := spinnerModel{spinner: sp, message: message}

	// Write to stderr so stdout remains clean for piping (e.g., cd $(twig switch ...))
	p := tea.NewProgram(model,
		tea.WithoutSignalHandler(),
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(colorprofile.Detect(os.Stderr, os.Environ())),
	)

	done := make(chan struct{})
	go func() {
		_, _ = p.Run()
		close(done)
	}()

	err := fn()

	p.Quit()

	// Wait for the program to finish with timeout
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
	}

	// Clear the spinner line
	fmt.Fprint(os.Stderr, "\r\033[K")

	return err
}
