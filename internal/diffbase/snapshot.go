package diffbase

import (
	"encoding/json"
	"fmt"
	"os"

	"diffbase.dev/diffbase/internal/forge"
	"diffbase.dev/diffbase/internal/output"
)

// snapshotRecord is the wire shape of one branch in the on-disk snapshot:
// a flat list of these, keyed by branch name.
type snapshotRecord struct {
	Branch   string                `json:"branch"`
	Diffbase *string               `json:"diffbase"`
	GitHubPR *forge.PullRequestID  `json:"github_pr"`
	GitLabMR *forge.MergeRequestID `json:"gitlab_mr,omitempty"`
}

// load merges the persisted snapshot into the seeded entries. Records for
// branches that no longer exist locally are logged and dropped; parent
// links to vanished branches are skipped. A missing snapshot file is not
// an error.
func (s *Store) load() error {
	content, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var records []snapshotRecord
	if err := json.Unmarshal(content, &records); err != nil {
		return fmt.Errorf("failed to parse %s: %w", s.path, err)
	}

	for _, record := range records {
		if _, ok := s.entries[record.Branch]; !ok {
			s.log.Info("Branch %s no longer exists. Removing it from the diffbase map.", record.Branch)
			continue
		}

		if record.GitHubPR != nil {
			s.entries[record.Branch].request = &forge.RequestRef{GitHub: record.GitHubPR}
		} else if record.GitLabMR != nil {
			s.entries[record.Branch].request = &forge.RequestRef{GitLab: record.GitLabMR}
		}

		if record.Diffbase == nil {
			continue
		}
		parent := *record.Diffbase
		if _, ok := s.entries[parent]; !ok {
			continue
		}
		if err := s.setDiffbaseQuiet(record.Branch, parent); err != nil {
			// The snapshot can name the trunk as a parent when the trunk
			// branch changed since the last write. Drop the link, keep going.
			if errIsInvalidDiffbase(err) {
				s.log.Warn("Dropping diffbase of %s: %v", record.Branch, err)
				continue
			}
			return err
		}
	}
	return nil
}

// WriteToDisk serializes every entry as a flat record list and fully
// overwrites the snapshot file. Records are sorted by branch name so the
// snapshot round-trips bit for bit when nothing changed.
func (s *Store) WriteToDisk() error {
	records := make([]snapshotRecord, 0, len(s.entries))
	for _, branch := range s.Branches() {
		e := s.entries[branch]
		record := snapshotRecord{Branch: branch}
		if e.parent != "" {
			parent := e.parent
			record.Diffbase = &parent
		}
		if e.request != nil {
			record.GitHubPR = e.request.GitHub
			record.GitLabMR = e.request.GitLab
		}
		records = append(records, record)
	}

	content, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

// WriteBack persists the store, logging instead of failing: a snapshot
// write failure must never retroactively fail a command that already
// delegated successfully.
func (s *Store) WriteBack() {
	if err := s.WriteToDisk(); err != nil {
		output.Default.Warn("could not persist the diffbase tree: %v", err)
	}
}
