package git

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// WorktreeStatus holds the paths git reports as pending in the worktree.
type WorktreeStatus struct {
	Deleted  []string
	Modified []string
}

// IsClean reports whether there are no pending changes.
func (s WorktreeStatus) IsClean() bool {
	return len(s.Deleted) == 0 && len(s.Modified) == 0
}

// Status returns the deleted and modified files in the working directory.
// This shells out to git: go-git's worktree status walks the whole tree
// and is far too slow on large repositories.
func (r *Repository) Status() (WorktreeStatus, error) {
	var status WorktreeStatus

	lines, err := r.dispatcher.CaptureLines("git", "status", "--porcelain", "-uno")
	if err != nil {
		return status, err
	}
	for _, line := range lines {
		if len(line) < 4 {
			continue
		}
		code, path := line[:2], strings.TrimSpace(line[3:])
		if strings.Contains(code, "D") {
			status.Deleted = append(status.Deleted, path)
		} else {
			status.Modified = append(status.Modified, path)
		}
	}
	return status, nil
}

// ExpectClean returns a descriptive error when the worktree has pending
// changes.
func (r *Repository) ExpectClean() error {
	status, err := r.Status()
	if err != nil {
		return err
	}
	if status.IsClean() {
		return nil
	}

	var b strings.Builder
	b.WriteString("you cannot have pending changes for this command. Changed files:\n\n")
	for _, path := range append(status.Deleted, status.Modified...) {
		fmt.Fprintf(&b, "  %s\n", path)
	}
	return fmt.Errorf("%s", b.String())
}

// ChangedFiles returns the (added, deleted, modified) paths between two
// revisions, e.g. branch names.
func (r *Repository) ChangedFiles(old, new string) (added, deleted, modified []string, err error) {
	oldTree, err := r.treeFor(old)
	if err != nil {
		return nil, nil, nil, err
	}
	newTree, err := r.treeFor(new)
	if err != nil {
		return nil, nil, nil, err
	}

	changes, err := oldTree.Diff(newTree)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to diff %s..%s: %w", old, new, err)
	}

	for _, change := range changes {
		action, err := change.Action()
		if err != nil {
			return nil, nil, nil, err
		}
		switch action {
		case merkletrie.Insert:
			added = append(added, change.To.Name)
		case merkletrie.Delete:
			deleted = append(deleted, change.From.Name)
		case merkletrie.Modify:
			modified = append(modified, change.To.Name)
		}
	}
	return added, deleted, modified, nil
}

func (r *Repository) treeFor(revision string) (*object.Tree, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", revision, err)
	}
	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("%s is not a commit: %w", revision, err)
	}
	return commit.Tree()
}
