package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"diffbase.dev/diffbase/internal/forge"
	"diffbase.dev/diffbase/internal/output"
)

// newReviewCmd creates the review command
func newReviewCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "review <user>:<branch> | <number> | <url> | push",
		Short: "Check out someone's pull or merge request for local review",
		Long: `Check out someone's pull or merge request for local review.

The request may be named as <user>:<branch>, as a pull request number on
the origin repository, or as a merge request URL. A remote for the author
is added when missing, and the request is tracked on a local branch named
<user>/<branch>. 'g review push' force-pushes HEAD back to the reviewed
fork branch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "push" {
				return reviewPush(ctx)
			}

			if err := ctx.Repo.ExpectClean(); err != nil {
				return err
			}

			user, branch, ref, err := resolveReviewTarget(cmd, ctx, args[0])
			if err != nil {
				return err
			}

			if err := ensureUserRemote(ctx, user); err != nil {
				return err
			}

			localBranch := user + "/" + branch
			branches, err := ctx.Repo.LocalBranches()
			if err != nil {
				return err
			}
			if _, exists := branches[localBranch]; exists {
				if err := ctx.Runner.Echo("git", "branch", "-D", localBranch); err != nil {
					return err
				}
			}

			// The local branch name is remote/branch, so git resolves it to
			// the correct remote-tracking ref on its own.
			if err := ctx.Runner.Echo("git", "fetch", user); err != nil {
				return err
			}
			if err := ctx.Runner.Echo("git", "branch", "--track", localBranch, localBranch); err != nil {
				return err
			}
			if err := ctx.Runner.Echo("git", "checkout", localBranch); err != nil {
				return err
			}

			if ref != nil {
				ctx.Store.SetRequest(localBranch, *ref)
			}
			ctx.Splog.Info("Reviewing on %s.", output.BranchName(localBranch))
			return nil
		},
	}
}

// resolveReviewTarget turns the review argument into (user, branch) and,
// when the argument named a hosted request, its reference.
func resolveReviewTarget(cmd *cobra.Command, ctx *Context, arg string) (string, string, *forge.RequestRef, error) {
	// user:branch needs no provider roundtrip. The branch half may carry
	// slashes; only URLs (with a scheme separator) are excluded here.
	if strings.Contains(arg, ":") && !strings.Contains(arg, "://") {
		parts := strings.SplitN(arg, ":", 2)
		return parts[0], parts[1], nil, nil
	}

	var ref forge.RequestRef
	switch {
	case strings.Contains(arg, "/-/merge_requests/"):
		ref.GitLab = &forge.MergeRequestID{WebURL: arg}
	default:
		number, err := strconv.Atoi(arg)
		if err != nil {
			return "", "", nil, fmt.Errorf("review requires a user:branch, a request number or a merge request URL, got %q", arg)
		}
		origin, err := originRemote(ctx)
		if err != nil {
			return "", "", nil, err
		}
		ref.GitHub = &forge.PullRequestID{Repo: origin.Repo, Number: number}
	}

	client, err := newProviderClient(cmd.Context(), ctx.Config, ref.Provider())
	if err != nil {
		return "", "", nil, err
	}
	request, err := client.Get(cmd.Context(), ref)
	if err != nil {
		return "", "", nil, err
	}
	return request.Author, request.Source, &request.Ref, nil
}

// ensureUserRemote adds a remote named after the fork owner when none
// exists, reusing the origin's host and project name.
func ensureUserRemote(ctx *Context, user string) error {
	remotes, err := ctx.Repo.Remotes()
	if err != nil {
		return err
	}
	if _, ok := remotes[user]; ok {
		return nil
	}

	origin, err := originRemote(ctx)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("git@%s:%s/%s.git", origin.Hostname, user, origin.Repo.Name)
	return ctx.Runner.Echo("git", "remote", "add", user, url)
}

// reviewPush force-pushes HEAD back to the fork branch the current review
// branch tracks. The branch name is <user>/<branch>.
func reviewPush(ctx *Context) error {
	full, err := ctx.CurrentBranch()
	if err != nil {
		return err
	}
	parts := strings.SplitN(full, "/", 2)
	if len(parts) != 2 {
		return fmt.Errorf("%s is not a review branch (expected <user>/<branch>)", full)
	}
	user, branch := parts[0], parts[1]
	return ctx.Runner.Echo("git", "push", "--force", user, "HEAD:"+branch)
}
