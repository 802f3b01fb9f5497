// Package output provides console output for the wrapper: notices about
// tree mutations, echoed command lines and the request listing.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))  // cyan
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))  // yellow
	branchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))  // green
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	openStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))  // green
	closedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))  // red
	mergedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))  // magenta
)

// Splog writes human-readable output for the wrapper.
type Splog struct {
	writer io.Writer
}

// NewSplog creates a new splog instance writing to stdout.
func NewSplog() *Splog {
	return &Splog{writer: os.Stdout}
}

// NewSplogWriter creates a splog writing to w. Used by tests.
func NewSplogWriter(w io.Writer) *Splog {
	return &Splog{writer: w}
}

// Default is the process-wide splog instance.
var Default = NewSplog()

// Info writes an info message.
func (s *Splog) Info(format string, args ...interface{}) {
	fmt.Fprintf(s.writer, format+"\n", args...)
}

// Warn writes a warning message.
func (s *Splog) Warn(format string, args ...interface{}) {
	fmt.Fprintf(s.writer, warnStyle.Render("warning:")+" "+format+"\n", args...)
}

// Newline writes an empty line.
func (s *Splog) Newline() {
	fmt.Fprintln(s.writer)
}

// Running echoes a command line before it is executed.
func (s *Splog) Running(name string, args []string) {
	line := fmt.Sprintf("=> Running: %s %s", name, strings.Join(args, " "))
	fmt.Fprintln(s.writer, runningStyle.Render(line))
}

// BranchName styles a branch name for inline use.
func BranchName(name string) string {
	return branchStyle.Render(name)
}

// Muted styles secondary text.
func Muted(text string) string {
	return mutedStyle.Render(text)
}

// JoinNames joins branch names for inline use in messages.
func JoinNames(names []string) string {
	return strings.Join(names, ", ")
}

// RequestState styles a request state for the pr listing.
func RequestState(state string) string {
	switch state {
	case "open":
		return openStyle.Render(state)
	case "closed":
		return closedStyle.Render(state)
	case "merged":
		return mergedStyle.Render(state)
	}
	return state
}
