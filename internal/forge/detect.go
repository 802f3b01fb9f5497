package forge

import (
	"fmt"
	"strings"
)

// Remote is a classified git remote URL.
type Remote struct {
	Hostname string
	Repo     RepoID
	Provider Provider
}

// Classify parses a git remote URL into a hosting-provider identity.
// Both SSH (git@host:owner/repo.git) and HTTPS (https://host/owner/repo)
// forms are understood. The provider is derived from the hostname:
// anything with "gitlab" in it is GitLab, everything else GitHub style.
func Classify(remoteURL string) (*Remote, error) {
	remoteURL = strings.TrimSpace(remoteURL)
	remoteURL = strings.TrimSuffix(remoteURL, ".git")
	if remoteURL == "" {
		return nil, fmt.Errorf("empty remote URL")
	}

	var hostname, path string

	switch {
	case strings.Contains(remoteURL, "://"):
		// https://host/owner/repo, ssh://git@host/owner/repo
		rest := remoteURL[strings.Index(remoteURL, "://")+3:]
		if at := strings.Index(rest, "@"); at != -1 {
			rest = rest[at+1:]
		}
		parts := strings.SplitN(rest, "/", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("remote URL %q has no path", remoteURL)
		}
		hostname = parts[0]
		path = parts[1]
	case strings.Contains(remoteURL, "@"):
		// git@host:owner/repo
		rest := remoteURL[strings.Index(remoteURL, "@")+1:]
		parts := strings.SplitN(rest, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("remote URL %q is not of the form host:owner/repo", remoteURL)
		}
		hostname = parts[0]
		path = parts[1]
	default:
		return nil, fmt.Errorf("unrecognized remote URL %q", remoteURL)
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 {
		return nil, fmt.Errorf("remote URL %q path must be owner/repo", remoteURL)
	}

	// GitLab allows nested groups; everything up to the last segment is
	// the owner path.
	owner := strings.Join(segments[:len(segments)-1], "/")
	name := segments[len(segments)-1]

	provider := ProviderGitHub
	if strings.Contains(hostname, "gitlab") {
		provider = ProviderGitLab
	}

	return &Remote{
		Hostname: hostname,
		Repo:     RepoID{Owner: owner, Name: name},
		Provider: provider,
	}, nil
}
