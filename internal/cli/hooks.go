package cli

import (
	"errors"

	gerrors "diffbase.dev/diffbase/internal/errors"
	"diffbase.dev/diffbase/internal/output"
)

// handleBranch interjects "git branch -m" to catch renames before
// delegating the literal command.
func handleBranch(ctx *Context, args []string) error {
	newName, _, _ := ExtractOption("-m", args[1:])

	if newName != "" {
		current, err := ctx.CurrentBranch()
		if err != nil {
			return err
		}
		ctx.Splog.Info("Detected branch rename: %s -> %s", output.BranchName(current), output.BranchName(newName))
		if err := ctx.Store.Rename(current, newName); err != nil {
			return err
		}
	}
	return ctx.Runner.Dispatch("git", args...)
}

// handleCheckout intercepts "checkout -b <new>" to record the new
// branch's diffbase before the checkout happens.
func handleCheckout(ctx *Context, args []string) error {
	newBranch, options, positional := ExtractOption("-b", args[1:])

	if newBranch != "" {
		current, err := ctx.CurrentBranch()
		if err != nil {
			return err
		}
		if err := ctx.Store.SetDiffbase(newBranch, current); err != nil {
			if !errors.Is(err, gerrors.ErrInvalidDiffbase) {
				return err
			}
		}
	}

	// A plain single-branch checkout is performed directly; anything with
	// extra flags goes through git untouched.
	if len(options) == 0 && len(positional) == 1 && newBranch == "" {
		return ctx.Repo.Checkout(positional[0])
	}
	return ctx.Runner.Dispatch("git", args...)
}

// handleMerge records the merged branch as the current branch's diffbase
// for the plain "merge <branch>" form, best effort, then delegates.
func handleMerge(ctx *Context, args []string) error {
	_, options, positional := ExtractOption("", args[1:])

	if len(options) == 0 && len(positional) == 1 {
		current, err := ctx.CurrentBranch()
		if err != nil {
			return err
		}
		if err := ctx.Store.SetDiffbase(current, positional[0]); err != nil {
			if !errors.Is(err, gerrors.ErrInvalidDiffbase) {
				return err
			}
		}
	}
	return ctx.Runner.Dispatch("git", args...)
}
