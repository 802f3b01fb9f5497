// Package run executes external programs: the real git binary, formatters
// and the user's editor. Delegated commands inherit stdio; introspection
// commands capture their output.
package run

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"

	gerrors "diffbase.dev/diffbase/internal/errors"
	"diffbase.dev/diffbase/internal/output"
)

// Dispatcher runs external commands from a fixed working directory.
// An empty workingDir means the process's current directory.
type Dispatcher struct {
	workingDir string
}

// NewDispatcher creates a Dispatcher rooted at dir.
func NewDispatcher(dir string) *Dispatcher {
	return &Dispatcher{workingDir: dir}
}

var defaultDispatcher = &Dispatcher{}

// Dispatch runs a command with inherited stdio and without echoing the
// command line. This is the path every delegated git invocation takes.
func (d *Dispatcher) Dispatch(name string, args ...string) error {
	return d.shellOut(name, args, false)
}

// Echo prints the command line, then runs it with inherited stdio. Used
// for the commands the wrapper issues on the user's behalf (pullc, review).
func (d *Dispatcher) Echo(args ...string) error {
	return d.shellOut(args[0], args[1:], true)
}

// Capture runs a command and returns its trimmed stdout.
func (d *Dispatcher) Capture(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	if d.workingDir != "" {
		cmd.Dir = d.workingDir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", gerrors.NewGitCommandError(name, args, stdout.String(), stderr.String(), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// CaptureLines runs a command and returns its stdout split into lines.
func (d *Dispatcher) CaptureLines(name string, args ...string) ([]string, error) {
	out, err := d.Capture(name, args...)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return []string{}, nil
	}
	return strings.Split(out, "\n"), nil
}

func (d *Dispatcher) shellOut(name string, args []string, echo bool) error {
	if echo {
		output.Default.Running(name, args)
	}

	cmd := exec.Command(name, args...)
	if d.workingDir != "" {
		cmd.Dir = d.workingDir
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if echo {
		// Blank line between consecutive echoed commands.
		output.Default.Newline()
	}
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.ExitCode() < 0 {
			return gerrors.NewSignaledError(name)
		}
		return gerrors.NewDelegationError(name, exitErr.ExitCode())
	}
	return gerrors.NewGitCommandError(name, args, "", "", err)
}

// EditFile opens path in the user's editor and waits for it to exit.
// VISUAL wins over EDITOR; the value may carry its own arguments.
func (d *Dispatcher) EditFile(path string) error {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		return gerrors.NewConfigMissingError("EDITOR", "set EDITOR or VISUAL to edit request descriptions")
	}
	fields := strings.Fields(editor)
	return d.Dispatch(fields[0], append(fields[1:], path)...)
}

// Dispatch runs a command using the default dispatcher.
func Dispatch(name string, args ...string) error {
	return defaultDispatcher.Dispatch(name, args...)
}
