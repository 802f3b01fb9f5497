package cli

import (
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"
)

func TestRunWritesTheStoreBackAfterHandlerError(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	t.Chdir(dir)

	// The repository has no commits, so the handler fails before doing
	// anything; the snapshot must be written regardless.
	require.Error(t, Run([]string{"up"}))

	_, err = os.Stat(filepath.Join(dir, ".git", "diffbase.json"))
	require.NoError(t, err)
}
