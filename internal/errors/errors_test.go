package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinelMatching(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"delegation", NewDelegationError("git", 128), ErrDelegation},
		{"signaled delegation", NewSignaledError("git"), ErrDelegation},
		{"invalid diffbase", NewInvalidDiffbaseError("main"), ErrInvalidDiffbase},
		{"corrupt state", NewCorruptStateError("a", []string{"a", "b", "a"}), ErrCorruptState},
		{"config missing", NewConfigMissingError("GITHUB_TOKEN", ""), ErrConfigMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.ErrorIs(t, tt.err, tt.sentinel)

			// Matching survives wrapping.
			wrapped := fmt.Errorf("context: %w", tt.err)
			require.ErrorIs(t, wrapped, tt.sentinel)
		})
	}
}

func TestDelegationErrorCarriesExitCode(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrapped: %w", NewDelegationError("git", 42))

	var delegation *DelegationError
	require.True(t, errors.As(err, &delegation))
	require.Equal(t, 42, delegation.ExitCode)
	require.False(t, delegation.Signaled)
}

func TestGitCommandErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("no such binary")
	err := NewGitCommandError("git", []string{"status"}, "", "boom", cause)

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "boom")
}

func TestCorruptStateErrorNamesTheCycle(t *testing.T) {
	t.Parallel()

	err := NewCorruptStateError("a", []string{"a", "b", "a"})
	require.Contains(t, err.Error(), "a -> b -> a")
}
