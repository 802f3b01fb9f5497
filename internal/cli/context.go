package cli

import (
	"diffbase.dev/diffbase/internal/config"
	"diffbase.dev/diffbase/internal/diffbase"
	"diffbase.dev/diffbase/internal/git"
	"diffbase.dev/diffbase/internal/output"
	"diffbase.dev/diffbase/internal/run"
)

// Repo is the repository surface the routed handlers consume.
// *git.Repository implements it; tests substitute an in-memory fake.
type Repo interface {
	CurrentBranch() (string, error)
	LocalBranches() (map[string]git.BranchInfo, error)
	Checkout(branch string) error
	Merge(other string) error
	Remotes() (map[string]string, error)
	OriginURL() (string, error)
	WorkDir() string
	Status() (git.WorktreeStatus, error)
	ExpectClean() error
	ChangedFiles(old, new string) (added, deleted, modified []string, err error)
}

// Runner executes external commands on a handler's behalf.
// *run.Dispatcher implements it.
type Runner interface {
	Dispatch(name string, args ...string) error
	Echo(args ...string) error
	EditFile(path string) error
}

// Context carries everything a routed handler needs for one invocation:
// the opened repository, the diffbase store, user config and output. The
// store is exclusively owned by the invocation and written back exactly
// once, after the handler returns.
type Context struct {
	Repo   Repo
	Store  *diffbase.Store
	Config config.Config
	Splog  *output.Splog
	Runner Runner
}

// CurrentBranch returns the checked-out branch.
func (c *Context) CurrentBranch() (string, error) {
	return c.Repo.CurrentBranch()
}

// openContext discovers the repository and opens the diffbase store
// against the live local branch set.
func openContext(cfg config.Config) (*Context, error) {
	repo, err := git.Discover(".")
	if err != nil {
		return nil, err
	}

	branches, err := repo.LocalBranchNames()
	if err != nil {
		return nil, err
	}

	trunk := repo.MainBranch(cfg.Trunk)
	store, err := diffbase.Open(branches, trunk, repo.MetadataPath("diffbase.json"))
	if err != nil {
		return nil, err
	}

	// Delegated commands run from the invoking directory, not the
	// worktree root, so relative pathspec arguments keep their meaning.
	return &Context{
		Repo:   repo,
		Store:  store,
		Config: cfg,
		Splog:  output.Default,
		Runner: run.NewDispatcher(""),
	}, nil
}
