package forge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestTemplate(t *testing.T) {
	t.Parallel()

	t.Run("found under .github", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, ".github"), 0o755))
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, ".github", "PULL_REQUEST_TEMPLATE.md"),
			[]byte("## Summary\n"), 0o644))

		require.Equal(t, "## Summary\n", RequestTemplate(dir))
	})

	t.Run(".github wins over the root", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, ".github"), 0o755))
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, ".github", "pull_request_template.md"),
			[]byte("from .github"), 0o644))
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, "pull_request_template.md"),
			[]byte("from root"), 0o644))

		require.Equal(t, "from .github", RequestTemplate(dir))
	})

	t.Run("no template yields empty", func(t *testing.T) {
		t.Parallel()
		require.Empty(t, RequestTemplate(t.TempDir()))
	})
}
