package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/pflag"

	"diffbase.dev/diffbase/internal/config"
	gerrors "diffbase.dev/diffbase/internal/errors"
	"diffbase.dev/diffbase/internal/forge"
	"diffbase.dev/diffbase/internal/output"
)

// handleListRequests lists the open requests assigned to the
// authenticated user, across every provider a token is configured for.
// Runs without a repository or the diffbase store.
func handleListRequests(cfg config.Config, args []string) error {
	flags := pflag.NewFlagSet("pr", pflag.ContinueOnError)
	repoFilter := flags.String("repo", "", "Only list requests on this owner/repo.")
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	var repo *forge.RepoID
	if *repoFilter != "" {
		parts := strings.SplitN(*repoFilter, "/", 2)
		if len(parts) != 2 {
			return fmt.Errorf("--repo must be of the form owner/repo, got %q", *repoFilter)
		}
		repo = &forge.RepoID{Owner: parts[0], Name: parts[1]}
	}

	ctx := context.Background()
	var clients []forge.Client
	if os.Getenv(cfg.Tokens.GitHubEnv) != "" {
		client, err := forge.NewGitHubClient(ctx, cfg.Tokens.GitHubEnv)
		if err != nil {
			return err
		}
		clients = append(clients, client)
	}
	if os.Getenv(cfg.Tokens.GitLabEnv) != "" {
		client, err := forge.NewGitLabClient(cfg.Tokens.GitLabEnv)
		if err != nil {
			return err
		}
		clients = append(clients, client)
	}
	if len(clients) == 0 {
		return gerrors.NewConfigMissingError(
			cfg.Tokens.GitHubEnv+" or "+cfg.Tokens.GitLabEnv,
			"an access token is required to list assigned requests")
	}

	// The providers are independent, side-effect-free reads; query them
	// concurrently.
	results := make([][]forge.Request, len(clients))
	errs := make([]error, len(clients))
	var wg sync.WaitGroup
	for i, client := range clients {
		wg.Add(1)
		go func(i int, client forge.Client) {
			defer wg.Done()
			results[i], errs[i] = client.ListAssigned(ctx, repo)
		}(i, client)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	splog := output.Default
	total := 0
	for _, requests := range results {
		for _, request := range requests {
			total++
			splog.Info("%s  %s  %s %s  %s -> %s",
				request.Ref,
				output.RequestState(string(request.State)),
				request.Title,
				output.Muted("by "+request.Author),
				request.Source,
				request.Target)
		}
	}
	if total == 0 {
		splog.Info("No requests assigned to you.")
	}
	return nil
}
