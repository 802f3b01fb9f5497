package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
		require.Equal(t, "github.com", cfg.Clone.Host)
		require.Equal(t, "GITHUB_TOKEN", cfg.Tokens.GitHubEnv)
	})

	t.Run("partial file keeps defaults for the rest", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "g"), 0o755))
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, "g", "config.toml"),
			[]byte("trunk = \"develop\"\n\n[clone]\nhost = \"gitlab.example.org\"\n"),
			0o644))

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "develop", cfg.Trunk)
		require.Equal(t, "gitlab.example.org", cfg.Clone.Host)
		require.Equal(t, "GITHUB_TOKEN", cfg.Tokens.GitHubEnv)
		require.Equal(t, "GITLAB_TOKEN", cfg.Tokens.GitLabEnv)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "g"), 0o755))
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, "g", "config.toml"),
			[]byte("trunk = [broken"),
			0o644))

		_, err := Load()
		require.Error(t, err)
	})
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	path, err := Path()
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/tmp/xdg", "g", "config.toml"), path)
}
