package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// newFixCmd creates the fix command
func newFixCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "fix [revision]",
		Short: "Run formatters over the files changed on this branch",
		Long: `Run formatters over the files this branch changed.

Compares the current branch against origin/<trunk> (or the given
revision), runs the matching formatter for every added or modified file,
and commits the result when anything changed. Requires a clean worktree.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.Repo.ExpectClean(); err != nil {
				return err
			}

			other := "origin/" + ctx.Store.Trunk()
			if len(args) == 1 {
				other = args[0]
			}

			current, err := ctx.CurrentBranch()
			if err != nil {
				return err
			}

			ctx.Splog.Info("Fixing modified files compared to %s", other)
			added, _, modified, err := ctx.Repo.ChangedFiles(other, current)
			if err != nil {
				return err
			}

			workdir := ctx.Repo.WorkDir()
			for _, path := range append(added, modified...) {
				if err := formatFile(ctx, filepath.Join(workdir, path)); err != nil {
					return err
				}
			}

			status, err := ctx.Repo.Status()
			if err != nil {
				return err
			}
			if status.IsClean() {
				return nil
			}

			ctx.Splog.Info("Fixed files:\n")
			for _, path := range status.Modified {
				ctx.Splog.Info("  %s", path)
			}
			ctx.Splog.Newline()
			return ctx.Runner.Dispatch("git", "commit", "-am", "Ran g fix.")
		},
	}
}

// formatFile runs the formatter matching the file's type, if any.
func formatFile(ctx *Context, path string) error {
	name := filepath.Base(path)
	ext := strings.TrimPrefix(filepath.Ext(name), ".")

	switch {
	case ext == "h" || ext == "cc" || ext == "proto":
		return ctx.Runner.Dispatch("clang-format", "-i", "-sort-includes", "-style=Google", path)
	case ext == "go":
		return ctx.Runner.Dispatch("gofmt", "-w", path)
	case name == "BUILD" || ext == "BUILD" || ext == "bzl":
		return ctx.Runner.Dispatch("buildifier", path)
	}
	return nil
}
