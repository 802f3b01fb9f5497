package cli

import (
	"context"

	"diffbase.dev/diffbase/internal/config"
	"diffbase.dev/diffbase/internal/forge"
)

// newProviderClient creates the client for one provider, reading the
// token from the configured environment variable.
func newProviderClient(ctx context.Context, cfg config.Config, provider forge.Provider) (forge.Client, error) {
	switch provider {
	case forge.ProviderGitLab:
		return forge.NewGitLabClient(cfg.Tokens.GitLabEnv)
	default:
		return forge.NewGitHubClient(ctx, cfg.Tokens.GitHubEnv)
	}
}

// originRemote classifies the repository's origin remote.
func originRemote(c *Context) (*forge.Remote, error) {
	url, err := c.Repo.OriginURL()
	if err != nil {
		return nil, err
	}
	return forge.Classify(url)
}
