package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"diffbase.dev/diffbase/internal/forge"
)

// newStartCmd creates the start command
func newStartCmd(ctx *Context) *cobra.Command {
	var noEdit bool

	cmd := &cobra.Command{
		Use:   "start [title]",
		Short: "Publish the current branch as a pull or merge request",
		Long: `Publish the current branch as a pull or merge request.

Pushes the branch to origin and opens a request targeting the branch's
diffbase, or the trunk branch when it has none. The request body is
seeded from the repository's request template and opened in your editor.
The created request is recorded so 'g cleanup' can delete the branch once
it is closed or merged.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.Repo.ExpectClean(); err != nil {
				return err
			}

			current, err := ctx.CurrentBranch()
			if err != nil {
				return err
			}
			if current == ctx.Store.Trunk() {
				return fmt.Errorf("refusing to open a request from the trunk branch %s", current)
			}
			if existing := ctx.Store.Request(current); existing != nil {
				return fmt.Errorf("%s already has an associated request: %s", current, existing)
			}

			target := ctx.Store.Trunk()
			if parent, ok := ctx.Store.Parent(current); ok {
				target = parent
			}

			title := current
			if len(args) == 1 {
				title = args[0]
			}

			body := forge.RequestTemplate(ctx.Repo.WorkDir())
			if !noEdit {
				body, err = editBody(ctx, body)
				if err != nil {
					return err
				}
			}

			origin, err := originRemote(ctx)
			if err != nil {
				return err
			}
			client, err := newProviderClient(cmd.Context(), ctx.Config, origin.Provider)
			if err != nil {
				return err
			}

			if err := ctx.Runner.Echo("git", "push", "-u", "origin", current); err != nil {
				return err
			}

			request, err := client.Create(cmd.Context(), origin.Repo, forge.CreateOptions{
				Title:  title,
				Body:   body,
				Source: current,
				Target: target,
			})
			if err != nil {
				return err
			}

			ctx.Store.SetRequest(current, request.Ref)
			ctx.Splog.Info("Opened %s: %s", request.Ref, request.URL)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noEdit, "no-edit", false, "Use the template body as-is without opening an editor.")

	return cmd
}

// editBody lets the user edit the request body in their editor.
func editBody(ctx *Context, seed string) (string, error) {
	file, err := os.CreateTemp("", "g-request-*.md")
	if err != nil {
		return "", err
	}
	path := file.Name()
	defer os.Remove(path)

	if _, err := file.WriteString(seed); err != nil {
		file.Close()
		return "", err
	}
	file.Close()

	if err := ctx.Runner.EditFile(filepath.Clean(path)); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(edited)), nil
}
