package cli

import (
	"github.com/spf13/cobra"
)

// newRootCmd assembles the wrapper's own leaf commands. Everything not
// listed here never reaches cobra; it is delegated to git beforehand.
func newRootCmd(ctx *Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "g",
		Short:         "A git wrapper that tracks how your branches depend on each other",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newUpCmd(ctx))
	rootCmd.AddCommand(newDownCmd(ctx))
	rootCmd.AddCommand(newPullcCmd(ctx))
	rootCmd.AddCommand(newCleanupCmd(ctx))
	rootCmd.AddCommand(newReviewCmd(ctx))
	rootCmd.AddCommand(newStartCmd(ctx))
	rootCmd.AddCommand(newFixCmd(ctx))

	return rootCmd
}
