// Package errors provides sentinel errors and custom error types for the g wrapper.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrDelegation indicates that a delegated subprocess failed
	ErrDelegation = errors.New("delegated command failed")

	// ErrInvalidDiffbase indicates an attempt to declare the trunk branch as a parent
	ErrInvalidDiffbase = errors.New("invalid diffbase")

	// ErrCorruptState indicates a cycle or dangling reference in the persisted tree
	ErrCorruptState = errors.New("corrupt diffbase state")

	// ErrConfigMissing indicates a required token or repository is absent
	ErrConfigMissing = errors.New("configuration missing")

	// ErrNoRepository indicates that no git repository is discoverable
	ErrNoRepository = errors.New("not inside a git repository")

	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")
)

// DelegationError represents a delegated subprocess that exited non-zero
// or was terminated by a signal.
type DelegationError struct {
	Command  string
	ExitCode int
	Signaled bool
}

func (e *DelegationError) Error() string {
	if e.Signaled {
		return fmt.Sprintf("%s was terminated by a signal", e.Command)
	}
	return fmt.Sprintf("%s exited with %d", e.Command, e.ExitCode)
}

// Is returns true if the target error is ErrDelegation
func (e *DelegationError) Is(target error) bool {
	return target == ErrDelegation
}

// NewDelegationError creates a new DelegationError for a non-zero exit
func NewDelegationError(command string, exitCode int) *DelegationError {
	return &DelegationError{Command: command, ExitCode: exitCode}
}

// NewSignaledError creates a new DelegationError for a signal termination
func NewSignaledError(command string) *DelegationError {
	return &DelegationError{Command: command, Signaled: true}
}

// InvalidDiffbaseError represents an attempt to set the trunk branch as a parent.
// Best-effort call sites match it with errors.Is(err, ErrInvalidDiffbase) and discard it.
type InvalidDiffbaseError struct {
	Branch string
}

func (e *InvalidDiffbaseError) Error() string {
	return fmt.Sprintf("%s cannot be a diffbase", e.Branch)
}

// Is returns true if the target error is ErrInvalidDiffbase
func (e *InvalidDiffbaseError) Is(target error) bool {
	return target == ErrInvalidDiffbase
}

// NewInvalidDiffbaseError creates a new InvalidDiffbaseError
func NewInvalidDiffbaseError(branch string) *InvalidDiffbaseError {
	return &InvalidDiffbaseError{Branch: branch}
}

// CorruptStateError represents a cycle detected while traversing the tree,
// typically introduced by a hand-edited or corrupted snapshot.
type CorruptStateError struct {
	Branch string
	Cycle  []string
}

func (e *CorruptStateError) Error() string {
	if len(e.Cycle) > 0 {
		return fmt.Sprintf("diffbase tree has a parent cycle at %s: %s", e.Branch, strings.Join(e.Cycle, " -> "))
	}
	return fmt.Sprintf("diffbase tree has a parent cycle at %s", e.Branch)
}

// Is returns true if the target error is ErrCorruptState
func (e *CorruptStateError) Is(target error) bool {
	return target == ErrCorruptState
}

// NewCorruptStateError creates a new CorruptStateError
func NewCorruptStateError(branch string, cycle []string) *CorruptStateError {
	return &CorruptStateError{Branch: branch, Cycle: cycle}
}

// ConfigMissingError represents a required environment token or setting
// that is absent. The command aborts before any mutation.
type ConfigMissingError struct {
	Name string
	Hint string
}

func (e *ConfigMissingError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s is not set (%s)", e.Name, e.Hint)
	}
	return fmt.Sprintf("%s is not set", e.Name)
}

// Is returns true if the target error is ErrConfigMissing
func (e *ConfigMissingError) Is(target error) bool {
	return target == ErrConfigMissing
}

// NewConfigMissingError creates a new ConfigMissingError
func NewConfigMissingError(name, hint string) *ConfigMissingError {
	return &ConfigMissingError{Name: name, Hint: hint}
}

// GitCommandError represents an error from a captured git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
