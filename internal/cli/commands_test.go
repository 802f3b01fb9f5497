package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpCommand(t *testing.T) {
	t.Parallel()

	t.Run("checks out the parent", func(t *testing.T) {
		t.Parallel()
		ctx, events := newTestContext(t, "feature-b", "main", "feature-a", "feature-b")
		require.NoError(t, ctx.Store.SetDiffbase("feature-b", "feature-a"))

		require.NoError(t, execute(ctx, "up"))
		require.Equal(t, []string{"checkout feature-a"}, *events)
	})

	t.Run("--root checks out the tree root", func(t *testing.T) {
		t.Parallel()
		ctx, events := newTestContext(t, "c", "main", "a", "b", "c")
		require.NoError(t, ctx.Store.SetDiffbase("b", "a"))
		require.NoError(t, ctx.Store.SetDiffbase("c", "b"))

		require.NoError(t, execute(ctx, "up", "--root"))
		require.Equal(t, []string{"checkout a"}, *events)
	})

	t.Run("no diffbase is an error", func(t *testing.T) {
		t.Parallel()
		ctx, events := newTestContext(t, "feature", "main", "feature")

		err := execute(ctx, "up")
		require.Error(t, err)
		require.Contains(t, err.Error(), "has no diffbase")
		require.Empty(t, *events)
	})
}

func TestDownCommand(t *testing.T) {
	t.Parallel()

	t.Run("checks out the unique child", func(t *testing.T) {
		t.Parallel()
		ctx, events := newTestContext(t, "feature-a", "main", "feature-a", "feature-b")
		require.NoError(t, ctx.Store.SetDiffbase("feature-b", "feature-a"))

		require.NoError(t, execute(ctx, "down"))
		require.Equal(t, []string{"checkout feature-b"}, *events)
	})

	t.Run("no children is an error", func(t *testing.T) {
		t.Parallel()
		ctx, _ := newTestContext(t, "feature", "main", "feature")

		err := execute(ctx, "down")
		require.Error(t, err)
		require.Contains(t, err.Error(), "has no branches that have it as diffbase")
	})

	t.Run("several children names every contender", func(t *testing.T) {
		t.Parallel()
		ctx, events := newTestContext(t, "base", "main", "base", "left", "right")
		require.NoError(t, ctx.Store.SetDiffbase("left", "base"))
		require.NoError(t, ctx.Store.SetDiffbase("right", "base"))

		err := execute(ctx, "down")
		require.Error(t, err)
		require.Contains(t, err.Error(), "left")
		require.Contains(t, err.Error(), "right")
		require.Empty(t, *events)
	})
}

func TestPullcCommand(t *testing.T) {
	t.Parallel()

	t.Run("walks the tree top-down, parent into child", func(t *testing.T) {
		t.Parallel()
		// base <- a <- {b, c}; base and b track origin, a and c do not.
		ctx, events := newTestContext(t, "a", "main", "base", "a", "b", "c")
		require.NoError(t, ctx.Store.SetDiffbase("a", "base"))
		require.NoError(t, ctx.Store.SetDiffbase("b", "a"))
		require.NoError(t, ctx.Store.SetDiffbase("c", "a"))
		setUpstream(ctx, "base")
		setUpstream(ctx, "b")

		require.NoError(t, execute(ctx, "pullc"))

		require.Equal(t, []string{
			"git fetch",
			"checkout base",
			"git pull",
			"checkout a",
			"merge base",
			"checkout b",
			"git pull",
			"merge a",
			"checkout c",
			"merge a",
			"checkout a",
		}, *events)
	})

	t.Run("--push pushes every branch with an upstream", func(t *testing.T) {
		t.Parallel()
		ctx, events := newTestContext(t, "child", "main", "base", "child")
		require.NoError(t, ctx.Store.SetDiffbase("child", "base"))
		setUpstream(ctx, "base")
		setUpstream(ctx, "child")

		require.NoError(t, execute(ctx, "pullc", "--push"))

		require.Equal(t, []string{
			"git fetch",
			"checkout base",
			"git pull",
			"git push",
			"checkout child",
			"git pull",
			"merge base",
			"git push",
		}, *events)
	})
}

func TestCleanupCommand(t *testing.T) {
	t.Parallel()

	t.Run("deletes review branches, keeps everything else", func(t *testing.T) {
		t.Parallel()
		ctx, events := newTestContext(t, "work", "main", "work", "alice/fix", "stale")

		require.NoError(t, execute(ctx, "cleanup", "--force"))

		require.Equal(t, []string{"git branch -D alice/fix"}, *events)
		require.NotContains(t, ctx.Store.Branches(), "alice/fix")
		require.Contains(t, ctx.Store.Branches(), "stale")
	})

	t.Run("never deletes the current branch", func(t *testing.T) {
		t.Parallel()
		ctx, events := newTestContext(t, "alice/fix", "main", "alice/fix")

		require.NoError(t, execute(ctx, "cleanup", "--force"))
		require.Empty(t, *events)
	})
}
