package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveReviewTargetUserBranch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg    string
		user   string
		branch string
	}{
		{"alice:fix", "alice", "fix"},
		{"alice:feature/foo", "alice", "feature/foo"},
		{"bob:release/v1/hotfix", "bob", "release/v1/hotfix"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			t.Parallel()
			user, branch, ref, err := resolveReviewTarget(nil, nil, tt.arg)
			require.NoError(t, err)
			require.Equal(t, tt.user, user)
			require.Equal(t, tt.branch, branch)
			require.Nil(t, ref)
		})
	}
}

func TestResolveReviewTargetRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, _, _, err := resolveReviewTarget(nil, nil, "not-a-target")
	require.Error(t, err)
}
