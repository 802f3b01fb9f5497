package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newPullcCmd creates the pullc command
func newPullcCmd(ctx *Context) *cobra.Command {
	var push bool

	cmd := &cobra.Command{
		Use:   "pullc",
		Short: "Pull the whole diffbase tree, merging each branch into its children",
		Long: `Pull the whole diffbase tree the current branch belongs to.

Starting at the tree root, pulls every branch that has a remote upstream,
then walks depth-first over the children, merging each parent into each
child before recursing. Branches without an upstream are skipped for
pull/push but still merged into and recursed through. With --push, every
branch with an upstream is also pushed after it is up to date.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := ctx.CurrentBranch()
			if err != nil {
				return err
			}
			root, err := ctx.Store.Root(current)
			if err != nil {
				return err
			}

			branches, err := ctx.Repo.LocalBranches()
			if err != nil {
				return err
			}
			hasUpstream := func(name string) bool {
				info, ok := branches[name]
				return ok && info.Upstream != nil
			}

			if err := ctx.Runner.Echo("git", "fetch"); err != nil {
				return err
			}

			// Sync the root branch first.
			if err := ctx.Repo.Checkout(root); err != nil {
				return err
			}
			if hasUpstream(root) {
				if err := ctx.Runner.Echo("git", "pull"); err != nil {
					return err
				}
				if push {
					if err := ctx.Runner.Echo("git", "push"); err != nil {
						return err
					}
				}
			}

			if err := mergeIntoChildren(ctx, root, hasUpstream, push); err != nil {
				return err
			}

			// Return to where the user started.
			after, err := ctx.CurrentBranch()
			if err != nil || after != current {
				return ctx.Repo.Checkout(current)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&push, "push", "p", false, "Also push every branch that has an upstream.")

	return cmd
}

// mergeIntoChildren walks the subtree below parent depth-first: each child
// is checked out, pulled when it has an upstream, has the parent merged
// into it, optionally pushed, and then recursed into.
func mergeIntoChildren(ctx *Context, parent string, hasUpstream func(string) bool, push bool) error {
	children, ok := ctx.Store.Children(parent)
	if !ok {
		return fmt.Errorf("branch %s is not in the diffbase tree", parent)
	}

	for _, child := range children {
		if err := ctx.Repo.Checkout(child); err != nil {
			return err
		}
		if hasUpstream(child) {
			if err := ctx.Runner.Echo("git", "pull"); err != nil {
				return err
			}
		}
		if err := ctx.Repo.Merge(parent); err != nil {
			return err
		}
		if push && hasUpstream(child) {
			if err := ctx.Runner.Echo("git", "push"); err != nil {
				return err
			}
		}
		if err := mergeIntoChildren(ctx, child, hasUpstream, push); err != nil {
			return err
		}
	}
	return nil
}
