// Package git provides read-only queries against the local repository and
// the handful of write operations the wrapper performs itself (checkout,
// merge). Introspection goes through go-git; porcelain goes through the
// real git binary.
package git

import (
	"fmt"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/filesystem"

	gerrors "diffbase.dev/diffbase/internal/errors"
	"diffbase.dev/diffbase/internal/run"
)

// Upstream is the remote tracking configuration of a local branch.
type Upstream struct {
	Remote string
	Branch string
}

// BranchInfo describes one local branch.
type BranchInfo struct {
	Name     string
	Upstream *Upstream
}

// Repository wraps an opened git repository.
type Repository struct {
	repo       *gogit.Repository
	dispatcher *run.Dispatcher
	gitDir     string
	workDir    string
}

// Discover opens the repository containing dir, walking upwards the way
// git itself does. Returns ErrNoRepository if there is none.
func Discover(dir string) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, gerrors.ErrNoRepository
	}

	r := &Repository{repo: repo}

	if st, ok := repo.Storer.(*filesystem.Storage); ok {
		r.gitDir = st.Filesystem().Root()
	}
	if wt, err := repo.Worktree(); err == nil {
		r.workDir = wt.Filesystem.Root()
	}
	r.dispatcher = run.NewDispatcher(r.workDir)

	return r, nil
}

// WorkDir returns the root of the working tree.
func (r *Repository) WorkDir() string {
	return r.workDir
}

// MetadataPath returns the path of a file inside the repository's metadata
// directory (.git).
func (r *Repository) MetadataPath(name string) string {
	return filepath.Join(r.gitDir, name)
}

// CurrentBranch returns the name of the checked-out branch.
func (r *Repository) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", gerrors.ErrNotOnBranch
	}
	if !head.Name().IsBranch() {
		return "", gerrors.ErrNotOnBranch
	}
	return head.Name().Short(), nil
}

// LocalBranches returns every local branch with its upstream, if any.
func (r *Repository) LocalBranches() (map[string]BranchInfo, error) {
	iter, err := r.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	branches := make(map[string]BranchInfo)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		branches[name] = BranchInfo{Name: name}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cfg, err := r.repo.Config()
	if err != nil {
		return branches, nil //nolint:nilerr // Branches without upstream info are still usable
	}
	for name, branch := range cfg.Branches {
		info, ok := branches[name]
		if !ok || branch.Remote == "" || branch.Merge == "" {
			continue
		}
		info.Upstream = &Upstream{
			Remote: branch.Remote,
			Branch: strings.TrimPrefix(branch.Merge.String(), "refs/heads/"),
		}
		branches[name] = info
	}
	return branches, nil
}

// LocalBranchNames returns the names of all local branches.
func (r *Repository) LocalBranchNames() ([]string, error) {
	branches, err := r.LocalBranches()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(branches))
	for name := range branches {
		names = append(names, name)
	}
	return names, nil
}

// HasUpstream reports whether branch has a remote tracking branch.
func (r *Repository) HasUpstream(branch string) bool {
	branches, err := r.LocalBranches()
	if err != nil {
		return false
	}
	info, ok := branches[branch]
	return ok && info.Upstream != nil
}

// Remotes returns a map from remote name to fetch URL.
func (r *Repository) Remotes() (map[string]string, error) {
	remotes, err := r.repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}
	result := make(map[string]string, len(remotes))
	for _, remote := range remotes {
		cfg := remote.Config()
		if len(cfg.URLs) == 0 {
			continue
		}
		result[cfg.Name] = cfg.URLs[0]
	}
	return result, nil
}

// OriginURL returns the fetch URL of the origin remote.
func (r *Repository) OriginURL() (string, error) {
	remotes, err := r.Remotes()
	if err != nil {
		return "", err
	}
	url, ok := remotes["origin"]
	if !ok {
		return "", fmt.Errorf("repository has no origin remote")
	}
	return url, nil
}

// Aliases returns all git command aliases that do not shell out, with
// repo-local definitions overriding global ones. go-git's scoped config
// merge does not fold raw sections together, so the overlay is done by
// hand. Shelling aliases (values starting with "!") are skipped, the
// wrapper never needs to understand those; a repo-local shelling alias
// still masks a global one of the same name, as it does for git itself.
func (r *Repository) Aliases() map[string]string {
	aliases := GlobalAliases()

	cfg, err := r.repo.Config()
	if err != nil {
		return aliases
	}
	for _, option := range cfg.Raw.Section("alias").Options {
		if strings.HasPrefix(strings.TrimSpace(option.Value), "!") {
			delete(aliases, option.Key)
			continue
		}
		aliases[option.Key] = option.Value
	}
	return aliases
}

// MainBranch returns the repository's trunk branch name. An explicit
// override wins, then the remote HEAD, then a local "main" or "master".
func (r *Repository) MainBranch(override string) string {
	if override != "" {
		return override
	}

	if out, err := r.dispatcher.Capture("git", "symbolic-ref", "refs/remotes/origin/HEAD"); err == nil {
		if name := strings.TrimPrefix(out, "refs/remotes/origin/"); name != out {
			return name
		}
	}

	for _, candidate := range []string{"main", "master"} {
		if _, err := r.repo.Reference(plumbing.NewBranchReferenceName(candidate), false); err == nil {
			return candidate
		}
	}
	return "master"
}

// Checkout switches the working tree to branch via the git binary, which
// handles the working-tree update and all its edge cases.
func (r *Repository) Checkout(branch string) error {
	return r.dispatcher.Dispatch("git", "checkout", branch)
}

// Merge merges other into the current branch, echoing the command line.
func (r *Repository) Merge(other string) error {
	return r.dispatcher.Echo("git", "merge", other)
}
