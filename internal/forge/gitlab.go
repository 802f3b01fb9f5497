package forge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	gerrors "diffbase.dev/diffbase/internal/errors"
)

// DefaultGitLabBaseURL is the API root used for gitlab.com remotes.
const DefaultGitLabBaseURL = "https://gitlab.com/api/v4"

// GitLabClient talks to the GitLab REST API. There is no GitLab SDK worth
// its weight for the three endpoints needed here, so this wraps net/http
// directly.
type GitLabClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewGitLabClient creates a client authenticated with the token read from
// tokenEnv. A missing token aborts before any network call.
func NewGitLabClient(tokenEnv string) (*GitLabClient, error) {
	token := os.Getenv(tokenEnv)
	if token == "" {
		return nil, gerrors.NewConfigMissingError(tokenEnv, "a GitLab access token is required for this command")
	}
	return &GitLabClient{
		baseURL: DefaultGitLabBaseURL,
		token:   token,
		http:    http.DefaultClient,
	}, nil
}

// Provider returns ProviderGitLab.
func (c *GitLabClient) Provider() Provider {
	return ProviderGitLab
}

// mergeRequestJSON is the wire shape of a GitLab merge request.
type mergeRequestJSON struct {
	IID          int    `json:"iid"`
	Title        string `json:"title"`
	State        string `json:"state"` // opened, closed, merged, locked
	SourceBranch string `json:"source_branch"`
	TargetBranch string `json:"target_branch"`
	WebURL       string `json:"web_url"`
	Author       struct {
		Username string `json:"username"`
	} `json:"author"`
}

func (c *GitLabClient) do(ctx context.Context, method, endpoint string, body, into interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("PRIVATE-TOKEN", c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GitLab API %s %s: %s: %s", method, endpoint, resp.Status, strings.TrimSpace(string(msg)))
	}
	return json.NewDecoder(resp.Body).Decode(into)
}

// Get fetches the current state of a merge request by its web URL.
func (c *GitLabClient) Get(ctx context.Context, ref RequestRef) (*Request, error) {
	if ref.GitLab == nil {
		return nil, fmt.Errorf("not a GitLab request: %s", ref)
	}

	project, iid, err := ParseMergeRequestURL(ref.GitLab.WebURL)
	if err != nil {
		return nil, err
	}

	var mr mergeRequestJSON
	endpoint := fmt.Sprintf("projects/%s/merge_requests/%d", url.PathEscape(project), iid)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &mr); err != nil {
		return nil, err
	}
	return normalizeMR(&mr), nil
}

// Create opens a new merge request. The repo owner may be a nested group
// path.
func (c *GitLabClient) Create(ctx context.Context, repo RepoID, opts CreateOptions) (*Request, error) {
	payload := map[string]string{
		"source_branch": opts.Source,
		"target_branch": opts.Target,
		"title":         opts.Title,
	}
	if opts.Body != "" {
		payload["description"] = opts.Body
	}

	var mr mergeRequestJSON
	endpoint := fmt.Sprintf("projects/%s/merge_requests", url.PathEscape(repo.Owner+"/"+repo.Name))
	if err := c.do(ctx, http.MethodPost, endpoint, payload, &mr); err != nil {
		return nil, fmt.Errorf("failed to create merge request: %w", err)
	}
	return normalizeMR(&mr), nil
}

// ListAssigned lists open merge requests assigned to the authenticated user.
func (c *GitLabClient) ListAssigned(ctx context.Context, repo *RepoID) ([]Request, error) {
	var endpoint string
	if repo != nil {
		endpoint = fmt.Sprintf("projects/%s/merge_requests?scope=assigned_to_me&state=opened",
			url.PathEscape(repo.Owner+"/"+repo.Name))
	} else {
		endpoint = "merge_requests?scope=assigned_to_me&state=opened"
	}

	var mrs []mergeRequestJSON
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &mrs); err != nil {
		return nil, err
	}

	requests := make([]Request, 0, len(mrs))
	for i := range mrs {
		requests = append(requests, *normalizeMR(&mrs[i]))
	}
	return requests, nil
}

// ParseMergeRequestURL splits a merge request web URL of the form
// https://host/<project path>/-/merge_requests/<iid> into the project path
// and the iid.
func ParseMergeRequestURL(webURL string) (string, int, error) {
	parsed, err := url.Parse(webURL)
	if err != nil {
		return "", 0, fmt.Errorf("unparsable merge request URL %q: %w", webURL, err)
	}

	const marker = "/-/merge_requests/"
	idx := strings.Index(parsed.Path, marker)
	if idx == -1 {
		return "", 0, fmt.Errorf("%q is not a merge request URL", webURL)
	}

	project := strings.Trim(parsed.Path[:idx], "/")
	iidText := strings.SplitN(strings.Trim(parsed.Path[idx+len(marker):], "/"), "/", 2)[0]
	iid, err := strconv.Atoi(iidText)
	if err != nil || project == "" {
		return "", 0, fmt.Errorf("%q is not a merge request URL", webURL)
	}
	return project, iid, nil
}

func normalizeMR(mr *mergeRequestJSON) *Request {
	state := StateOpen
	switch mr.State {
	case "closed", "locked":
		state = StateClosed
	case "merged":
		state = StateMerged
	}

	return &Request{
		Ref: RequestRef{
			GitLab: &MergeRequestID{WebURL: mr.WebURL},
		},
		Number: mr.IID,
		URL:    mr.WebURL,
		Title:  mr.Title,
		Author: mr.Author.Username,
		State:  state,
		Source: mr.SourceBranch,
		Target: mr.TargetBranch,
	}
}
