package forge

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	gerrors "diffbase.dev/diffbase/internal/errors"
)

// GitHubClient talks to the GitHub REST API.
type GitHubClient struct {
	client *github.Client
}

// NewGitHubClient creates a client authenticated with the token read from
// tokenEnv. A missing token aborts before any network call.
func NewGitHubClient(ctx context.Context, tokenEnv string) (*GitHubClient, error) {
	token := os.Getenv(tokenEnv)
	if token == "" {
		return nil, gerrors.NewConfigMissingError(tokenEnv, "a GitHub access token is required for this command")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	return &GitHubClient{client: github.NewClient(tc)}, nil
}

// Provider returns ProviderGitHub.
func (c *GitHubClient) Provider() Provider {
	return ProviderGitHub
}

// Get fetches the current state of a pull request.
func (c *GitHubClient) Get(ctx context.Context, ref RequestRef) (*Request, error) {
	if ref.GitHub == nil {
		return nil, fmt.Errorf("not a GitHub request: %s", ref)
	}
	id := *ref.GitHub

	pr, _, err := c.client.PullRequests.Get(ctx, id.Repo.Owner, id.Repo.Name, id.Number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", id, err)
	}
	return normalizePR(id.Repo, pr), nil
}

// Create opens a new pull request.
func (c *GitHubClient) Create(ctx context.Context, repo RepoID, opts CreateOptions) (*Request, error) {
	newPR := &github.NewPullRequest{
		Title: github.String(opts.Title),
		Head:  github.String(opts.Source),
		Base:  github.String(opts.Target),
	}
	if opts.Body != "" {
		newPR.Body = github.String(opts.Body)
	}

	pr, _, err := c.client.PullRequests.Create(ctx, repo.Owner, repo.Name, newPR)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}
	return normalizePR(repo, pr), nil
}

// ListAssigned lists open pull requests assigned to the authenticated user.
// The search API only returns issue-shaped results, so every hit is
// re-fetched as a pull request, concurrently.
func (c *GitHubClient) ListAssigned(ctx context.Context, repo *RepoID) ([]Request, error) {
	user, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to look up the authenticated user: %w", err)
	}

	query := fmt.Sprintf("is:pr is:open archived:false assignee:%s", user.GetLogin())
	if repo != nil {
		query += fmt.Sprintf(" repo:%s/%s", repo.Owner, repo.Name)
	}

	result, _, err := c.client.Search.Issues(ctx, query, &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: 25},
	})
	if err != nil {
		return nil, fmt.Errorf("pull request search failed: %w", err)
	}

	requests := make([]Request, len(result.Issues))
	errs := make([]error, len(result.Issues))
	var wg sync.WaitGroup
	for i, issue := range result.Issues {
		wg.Add(1)
		go func(i int, issue *github.Issue) {
			defer wg.Done()
			id, err := issueToID(issue)
			if err != nil {
				errs[i] = err
				return
			}
			pr, _, err := c.client.PullRequests.Get(ctx, id.Repo.Owner, id.Repo.Name, id.Number)
			if err != nil {
				errs[i] = err
				return
			}
			requests[i] = *normalizePR(id.Repo, pr)
		}(i, issue)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(requests, func(i, j int) bool {
		if requests[i].Ref.GitHub.Repo != requests[j].Ref.GitHub.Repo {
			return requests[i].Ref.GitHub.Repo.String() < requests[j].Ref.GitHub.Repo.String()
		}
		return requests[i].Number < requests[j].Number
	})
	return requests, nil
}

// issueToID derives the pull request id from a search hit. The repository
// URL looks like https://api.github.com/repos/<owner>/<name>.
func issueToID(issue *github.Issue) (PullRequestID, error) {
	parts := strings.Split(strings.Trim(issue.GetRepositoryURL(), "/"), "/")
	if len(parts) < 2 {
		return PullRequestID{}, fmt.Errorf("unparsable repository URL %q", issue.GetRepositoryURL())
	}
	return PullRequestID{
		Repo:   RepoID{Owner: parts[len(parts)-2], Name: parts[len(parts)-1]},
		Number: issue.GetNumber(),
	}, nil
}

func normalizePR(repo RepoID, pr *github.PullRequest) *Request {
	state := StateOpen
	switch {
	case pr.GetMerged() || pr.MergedAt != nil:
		state = StateMerged
	case pr.GetState() == "closed":
		state = StateClosed
	}

	return &Request{
		Ref: RequestRef{
			GitHub: &PullRequestID{Repo: repo, Number: pr.GetNumber()},
		},
		Number: pr.GetNumber(),
		URL:    pr.GetHTMLURL(),
		Title:  pr.GetTitle(),
		Author: pr.GetUser().GetLogin(),
		State:  state,
		Source: pr.GetHead().GetRef(),
		Target: pr.GetBase().GetRef(),
	}
}
