package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"diffbase.dev/diffbase/internal/output"
)

// newUpCmd creates the up command
func newUpCmd(ctx *Context) *cobra.Command {
	var toRoot bool

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Check out the diffbase of the current branch",
		Long: `Check out the diffbase of the current branch.

Moves towards the root of the diffbase tree. With --root, checks out the
tree root directly instead of the immediate parent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := ctx.CurrentBranch()
			if err != nil {
				return err
			}

			if toRoot {
				root, err := ctx.Store.Root(current)
				if err != nil {
					return err
				}
				return ctx.Repo.Checkout(root)
			}

			parent, ok := ctx.Store.Parent(current)
			if !ok {
				return fmt.Errorf("%s has no diffbase", current)
			}
			return ctx.Repo.Checkout(parent)
		},
	}

	cmd.Flags().BoolVarP(&toRoot, "root", "r", false, "Check out the tree root instead of the parent.")

	return cmd
}

// newDownCmd creates the down command
func newDownCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Check out the unique branch that has the current branch as diffbase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := ctx.CurrentBranch()
			if err != nil {
				return err
			}

			children, ok := ctx.Store.Children(current)
			if !ok {
				return fmt.Errorf("branch %s is not in the diffbase tree", current)
			}

			switch len(children) {
			case 0:
				return fmt.Errorf("%s has no branches that have it as diffbase", current)
			case 1:
				return ctx.Repo.Checkout(children[0])
			default:
				return fmt.Errorf("%s has no unique branch that has it as diffbase. Contenders are %s",
					current, output.JoinNames(children))
			}
		},
	}
}
