package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"diffbase.dev/diffbase/internal/forge"
)

// newCleanupCmd creates the cleanup command
func newCleanupCmd(ctx *Context) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete review branches and branches whose request is closed or merged",
		Long: `Delete local branches that are done.

A branch is considered done when its name carries the review-branch
marker (a "/" as created by 'g review'), or when its associated pull or
merge request is reported closed or merged by the hosting provider.
The current branch is never deleted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := ctx.CurrentBranch()
			if err != nil {
				return err
			}

			doomed := collectDoomed(cmd.Context(), ctx, current)
			if len(doomed) == 0 {
				ctx.Splog.Info("Nothing to clean up.")
				return nil
			}

			if !force && isatty.IsTerminal(os.Stdout.Fd()) {
				ok := false
				prompt := &survey.Confirm{
					Message: fmt.Sprintf("Delete %d branch(es): %s?", len(doomed), strings.Join(doomed, ", ")),
				}
				if err := survey.AskOne(prompt, &ok); err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}

			for _, branch := range doomed {
				if err := ctx.Runner.Echo("git", "branch", "-D", branch); err != nil {
					return err
				}
				ctx.Store.Forget(branch)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete without confirmation.")

	return cmd
}

// collectDoomed gathers every branch other than current that is safe to
// delete. Provider lookups are best effort: a missing token or a failed
// fetch only skips the request check for that branch.
func collectDoomed(cmdCtx context.Context, ctx *Context, current string) []string {
	clients := map[forge.Provider]forge.Client{}

	var doomed []string
	for _, branch := range ctx.Store.Branches() {
		if branch == current || branch == ctx.Store.Trunk() {
			continue
		}

		if strings.Contains(branch, "/") {
			doomed = append(doomed, branch)
			continue
		}

		ref := ctx.Store.Request(branch)
		if ref == nil {
			continue
		}
		client, ok := clients[ref.Provider()]
		if !ok {
			var err error
			client, err = newProviderClient(cmdCtx, ctx.Config, ref.Provider())
			if err != nil {
				ctx.Splog.Warn("skipping request checks for %s: %v", branch, err)
				continue
			}
			clients[ref.Provider()] = client
		}

		request, err := client.Get(cmdCtx, *ref)
		if err != nil {
			ctx.Splog.Warn("could not fetch %s for %s: %v", ref, branch, err)
			continue
		}
		if request.State == forge.StateClosed || request.State == forge.StateMerged {
			ctx.Splog.Info("%s is %s: %s", ref, request.State, request.Title)
			doomed = append(doomed, branch)
		}
	}
	return doomed
}
