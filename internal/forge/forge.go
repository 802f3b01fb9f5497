// Package forge models the git hosting providers (GitHub, GitLab): remote
// URL classification, merge/pull request identities and the client
// operations the wrapper needs (fetch by id, create, list assigned).
package forge

import (
	"context"
	"fmt"
)

// Provider identifies a hosting provider.
type Provider string

const (
	// ProviderGitHub is github.com style hosting
	ProviderGitHub Provider = "github"
	// ProviderGitLab is gitlab.com style hosting
	ProviderGitLab Provider = "gitlab"
)

// RepoID identifies a hosted repository.
type RepoID struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

func (r RepoID) String() string {
	return r.Owner + "/" + r.Name
}

// PullRequestID identifies a GitHub pull request.
type PullRequestID struct {
	Repo   RepoID `json:"repo"`
	Number int    `json:"number"`
}

// URL returns the web URL of the pull request.
func (p PullRequestID) URL() string {
	return fmt.Sprintf("https://github.com/%s/%s/pull/%d", p.Repo.Owner, p.Repo.Name, p.Number)
}

func (p PullRequestID) String() string {
	return fmt.Sprintf("%s/%s#%d", p.Repo.Owner, p.Repo.Name, p.Number)
}

// MergeRequestID identifies a GitLab merge request by its project-qualified
// web URL, which carries both the project path and the iid.
type MergeRequestID struct {
	WebURL string `json:"web_url"`
}

func (m MergeRequestID) String() string {
	return m.WebURL
}

// RequestRef is a tagged reference to a hosted pull or merge request.
// Exactly one of the fields is set.
type RequestRef struct {
	GitHub *PullRequestID  `json:"github_pr,omitempty"`
	GitLab *MergeRequestID `json:"gitlab_mr,omitempty"`
}

// Provider returns the provider the reference points at.
func (r RequestRef) Provider() Provider {
	if r.GitLab != nil {
		return ProviderGitLab
	}
	return ProviderGitHub
}

// IsZero reports whether the reference points at nothing.
func (r RequestRef) IsZero() bool {
	return r.GitHub == nil && r.GitLab == nil
}

func (r RequestRef) String() string {
	switch {
	case r.GitHub != nil:
		return r.GitHub.String()
	case r.GitLab != nil:
		return r.GitLab.String()
	}
	return "<none>"
}

// RequestState is the lifecycle state of a hosted request.
type RequestState string

const (
	// StateOpen is an open request
	StateOpen RequestState = "open"
	// StateClosed is a closed, unmerged request
	StateClosed RequestState = "closed"
	// StateMerged is a merged request
	StateMerged RequestState = "merged"
)

// Request is the normalized view of a pull or merge request.
type Request struct {
	Ref    RequestRef
	Number int
	URL    string
	Title  string
	Author string
	State  RequestState
	Source string
	Target string
}

// CreateOptions describes a request to be opened.
type CreateOptions struct {
	Title  string
	Body   string
	Source string
	Target string
}

// Client is one hosting provider's request operations.
type Client interface {
	// Provider returns which provider this client talks to.
	Provider() Provider

	// Get fetches the current state of a request.
	Get(ctx context.Context, ref RequestRef) (*Request, error)

	// Create opens a new request.
	Create(ctx context.Context, repo RepoID, opts CreateOptions) (*Request, error)

	// ListAssigned lists open requests assigned to the authenticated user,
	// optionally restricted to one repository.
	ListAssigned(ctx context.Context, repo *RepoID) ([]Request, error)
}
