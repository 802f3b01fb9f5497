package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"diffbase.dev/diffbase/internal/config"
	"diffbase.dev/diffbase/internal/diffbase"
	gerrors "diffbase.dev/diffbase/internal/errors"
	"diffbase.dev/diffbase/internal/git"
	"diffbase.dev/diffbase/internal/output"
)

// fakeRepo implements Repo in memory. Checkouts move the current branch,
// and every mutating call is appended to the shared event log so tests
// can assert the interleaving with dispatched commands.
type fakeRepo struct {
	current  string
	branches map[string]git.BranchInfo
	remotes  map[string]string
	dirty    bool
	events   *[]string
}

func (f *fakeRepo) CurrentBranch() (string, error) {
	if f.current == "" {
		return "", gerrors.ErrNotOnBranch
	}
	return f.current, nil
}

func (f *fakeRepo) LocalBranches() (map[string]git.BranchInfo, error) {
	return f.branches, nil
}

func (f *fakeRepo) Checkout(branch string) error {
	f.current = branch
	*f.events = append(*f.events, "checkout "+branch)
	return nil
}

func (f *fakeRepo) Merge(other string) error {
	*f.events = append(*f.events, "merge "+other)
	return nil
}

func (f *fakeRepo) Remotes() (map[string]string, error) {
	return f.remotes, nil
}

func (f *fakeRepo) OriginURL() (string, error) {
	url, ok := f.remotes["origin"]
	if !ok {
		return "", fmt.Errorf("repository has no origin remote")
	}
	return url, nil
}

func (f *fakeRepo) WorkDir() string { return "" }

func (f *fakeRepo) Status() (git.WorktreeStatus, error) {
	if f.dirty {
		return git.WorktreeStatus{Modified: []string{"file.go"}}, nil
	}
	return git.WorktreeStatus{}, nil
}

func (f *fakeRepo) ExpectClean() error {
	if f.dirty {
		return fmt.Errorf("you cannot have pending changes for this command")
	}
	return nil
}

func (f *fakeRepo) ChangedFiles(old, new string) ([]string, []string, []string, error) {
	return nil, nil, nil, nil
}

// fakeRunner records command lines instead of executing them.
type fakeRunner struct {
	events *[]string
}

func (f *fakeRunner) Dispatch(name string, args ...string) error {
	*f.events = append(*f.events, strings.Join(append([]string{name}, args...), " "))
	return nil
}

func (f *fakeRunner) Echo(args ...string) error {
	*f.events = append(*f.events, strings.Join(args, " "))
	return nil
}

func (f *fakeRunner) EditFile(path string) error { return nil }

// newTestContext builds a Context over fakes. The trunk is "main" and
// every named branch exists locally with no upstream.
func newTestContext(t *testing.T, current string, branches ...string) (*Context, *[]string) {
	t.Helper()

	events := &[]string{}
	infos := make(map[string]git.BranchInfo, len(branches))
	for _, branch := range branches {
		infos[branch] = git.BranchInfo{Name: branch}
	}

	ctx := &Context{
		Repo:   &fakeRepo{current: current, branches: infos, events: events},
		Store:  diffbase.New(branches, "main", filepath.Join(t.TempDir(), "diffbase.json")),
		Config: config.Default(),
		Splog:  output.NewSplogWriter(io.Discard),
		Runner: &fakeRunner{events: events},
	}
	return ctx, events
}

// setUpstream marks a branch as tracking origin.
func setUpstream(ctx *Context, branch string) {
	repo := ctx.Repo.(*fakeRepo)
	info := repo.branches[branch]
	info.Upstream = &git.Upstream{Remote: "origin", Branch: branch}
	repo.branches[branch] = info
}

// execute runs one leaf command through the cobra root.
func execute(ctx *Context, args ...string) error {
	root := newRootCmd(ctx)
	root.SetArgs(args)
	return root.Execute()
}
