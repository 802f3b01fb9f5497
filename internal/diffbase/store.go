// Package diffbase owns the branch-dependency tree: every local branch
// maps to its parent ("diffbase"), its children and an optional hosted
// request, persisted as a JSON snapshot inside the repository's metadata
// directory.
package diffbase

import (
	"errors"
	"fmt"
	"sort"

	gerrors "diffbase.dev/diffbase/internal/errors"
	"diffbase.dev/diffbase/internal/forge"
	"diffbase.dev/diffbase/internal/output"
)

// entry is one branch's node. Entries never hold pointers to each other;
// all links go through the name keys of the owning map.
type entry struct {
	parent   string
	children []string
	request  *forge.RequestRef
}

// Store maps every known branch name to its tree entry for the lifetime
// of one process invocation.
type Store struct {
	entries map[string]*entry
	trunk   string
	path    string
	log     *output.Splog
}

// New creates a store seeded with an empty entry per local branch. The
// trunk branch may never become anyone's parent.
func New(branches []string, trunk, path string) *Store {
	s := &Store{
		entries: make(map[string]*entry, len(branches)),
		trunk:   trunk,
		path:    path,
		log:     output.Default,
	}
	for _, branch := range branches {
		s.entries[branch] = &entry{}
	}
	return s
}

// Open creates a store for the given live branch set and merges in the
// persisted snapshot, if one exists.
func Open(branches []string, trunk, path string) (*Store, error) {
	s := New(branches, trunk, path)
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Trunk returns the trunk branch name the store was constructed with.
func (s *Store) Trunk() string {
	return s.trunk
}

// Branches returns all known branch names, sorted.
func (s *Store) Branches() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetDiffbase records parent as the diffbase of branch. The trunk branch
// is rejected with InvalidDiffbaseError. Missing entries are created for
// either side; branch is detached from any previous parent first.
func (s *Store) SetDiffbase(branch, parent string) error {
	if err := s.setDiffbaseQuiet(branch, parent); err != nil {
		return err
	}
	s.log.Info("Setting diffbase of %s to %s.", output.BranchName(branch), output.BranchName(parent))
	return nil
}

func (s *Store) setDiffbaseQuiet(branch, parent string) error {
	if parent == s.trunk {
		return gerrors.NewInvalidDiffbaseError(parent)
	}
	if branch == "" || parent == "" {
		return fmt.Errorf("branch names must not be empty")
	}

	if _, ok := s.entries[branch]; !ok {
		s.entries[branch] = &entry{}
	}
	if _, ok := s.entries[parent]; !ok {
		s.entries[parent] = &entry{}
	}

	s.detach(branch)
	s.entries[branch].parent = parent
	s.entries[parent].children = append(s.entries[parent].children, branch)
	return nil
}

// detach removes branch from its current parent's children list.
func (s *Store) detach(branch string) {
	previous := s.entries[branch].parent
	if previous == "" {
		return
	}
	if parent, ok := s.entries[previous]; ok {
		parent.children = remove(parent.children, branch)
	}
	s.entries[branch].parent = ""
}

// Parent returns the diffbase of branch. The second result is false when
// branch has no parent or is unknown.
func (s *Store) Parent(branch string) (string, bool) {
	e, ok := s.entries[branch]
	if !ok || e.parent == "" {
		return "", false
	}
	return e.parent, true
}

// Children returns all branches that have branch as their diffbase. The
// second result is false only when branch is entirely unknown to the
// store; every local branch is seeded at construction, so callers treat
// false as a logic error.
func (s *Store) Children(branch string) ([]string, bool) {
	e, ok := s.entries[branch]
	if !ok {
		return nil, false
	}
	children := make([]string, len(e.children))
	copy(children, e.children)
	return children, true
}

// Root walks the parent links upward until a branch with no diffbase is
// found; that may be branch itself. A cycle introduced by a corrupted
// snapshot is reported as CorruptStateError rather than walked forever.
func (s *Store) Root(branch string) (string, error) {
	if _, ok := s.entries[branch]; !ok {
		return "", fmt.Errorf("branch %s is not in the diffbase tree", branch)
	}

	visited := map[string]bool{}
	var walk []string
	current := branch
	for {
		if visited[current] {
			return "", gerrors.NewCorruptStateError(current, append(walk, current))
		}
		visited[current] = true
		walk = append(walk, current)

		parent, ok := s.Parent(current)
		if !ok {
			return current, nil
		}
		current = parent
	}
}

// Rename moves the entry of old to the key new and rewrites every parent
// pointer and children-list reference. It either fully applies or reports
// an error without touching anything: old must exist, and new must not,
// matching git's own refusal to rename onto an existing branch.
func (s *Store) Rename(old, new string) error {
	e, ok := s.entries[old]
	if !ok {
		return fmt.Errorf("branch %s is not in the diffbase tree", old)
	}
	if _, taken := s.entries[new]; taken {
		return fmt.Errorf("branch %s already exists in the diffbase tree", new)
	}

	delete(s.entries, old)
	s.entries[new] = e

	for _, other := range s.entries {
		if other.parent == old {
			other.parent = new
		}
		for i, child := range other.children {
			if child == old {
				other.children[i] = new
			}
		}
	}
	return nil
}

// Forget removes branch from the tree after an explicit deletion: the
// entry is detached from its parent and its children become roots.
func (s *Store) Forget(branch string) {
	e, ok := s.entries[branch]
	if !ok {
		return
	}
	s.detach(branch)
	for _, child := range e.children {
		if c, ok := s.entries[child]; ok {
			c.parent = ""
		}
	}
	delete(s.entries, branch)
}

// Request returns the hosted request associated with branch, if any.
func (s *Store) Request(branch string) *forge.RequestRef {
	e, ok := s.entries[branch]
	if !ok {
		return nil
	}
	return e.request
}

// SetRequest associates a hosted request with branch, creating the entry
// when needed.
func (s *Store) SetRequest(branch string, ref forge.RequestRef) {
	if _, ok := s.entries[branch]; !ok {
		s.entries[branch] = &entry{}
	}
	r := ref
	s.entries[branch].request = &r
}

// remove returns s without the first occurrence of value, preserving order.
func remove(s []string, value string) []string {
	for i, v := range s {
		if v == value {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// errIsInvalidDiffbase reports whether err is the recoverable trunk-as-parent
// condition.
func errIsInvalidDiffbase(err error) bool {
	return errors.Is(err, gerrors.ErrInvalidDiffbase)
}
