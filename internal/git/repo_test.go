package git

import (
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"
)

func initTestRepo(t *testing.T) (string, *Repository) {
	t.Helper()

	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	repo, err := Discover(dir)
	require.NoError(t, err)
	return dir, repo
}

func TestAliases(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	require.NoError(t, os.WriteFile(
		filepath.Join(home, ".gitconfig"),
		[]byte("[alias]\n\tco = checkout\n\tlo = log --graph\n\tmasked = status\n"),
		0o644))

	dir, _ := initTestRepo(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".git", "config"),
		[]byte("[core]\n\tbare = false\n[alias]\n\tlo = log --oneline\n\tsh = !echo hi\n\tmasked = !true\n"),
		0o644))

	// Reopen so the repo config edit is visible.
	repo, err := Discover(dir)
	require.NoError(t, err)

	aliases := repo.Aliases()

	// Global aliases stay visible inside a repository.
	require.Equal(t, "checkout", aliases["co"])
	// Repo-local definitions win.
	require.Equal(t, "log --oneline", aliases["lo"])
	// Shelling aliases are never expanded, and a repo-local shelling
	// alias masks a global expansion of the same name.
	require.NotContains(t, aliases, "sh")
	require.NotContains(t, aliases, "masked")
}

func TestAliasesWithoutAnyConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	_, repo := initTestRepo(t)
	require.Empty(t, repo.Aliases())
}

func TestDiscoverOutsideRepository(t *testing.T) {
	t.Parallel()

	_, err := Discover(t.TempDir())
	require.Error(t, err)
}
