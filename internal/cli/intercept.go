// Package cli is the command interception layer: for each invocation it
// decides whether to mutate the diffbase tree, delegate to the real git
// binary, or both. Unrecognized commands pass through verbatim.
package cli

import (
	"errors"
	"strings"

	"diffbase.dev/diffbase/internal/config"
	gerrors "diffbase.dev/diffbase/internal/errors"
	"diffbase.dev/diffbase/internal/git"
	"diffbase.dev/diffbase/internal/run"
)

// leafCommands are the wrapper's own subcommands, handled by cobra once
// the repository and store are open.
var leafCommands = map[string]bool{
	"up":      true,
	"down":    true,
	"pullc":   true,
	"cleanup": true,
	"review":  true,
	"start":   true,
	"fix":     true,
}

// Run is the entry point for one wrapper invocation. args is the argument
// vector without the program name. The returned error carries the exit
// status for delegation failures.
func Run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return run.Dispatch("git", args...)
	}

	args = expandAlias(args)

	// Commands with no repository dependency run without consulting the
	// store.
	switch args[0] {
	case "clone":
		return handleClone(cfg, args)
	case "pr":
		return handleListRequests(cfg, args)
	}

	// Everything else needs a repository; without one, fall through to
	// plain git unconditionally.
	ctx, err := openContext(cfg)
	if err != nil {
		if errors.Is(err, gerrors.ErrNoRepository) {
			return run.Dispatch("git", args...)
		}
		return err
	}

	// The store is written back after the routed handler returns, whether
	// it succeeded or failed; the handler's outcome is what's surfaced.
	defer ctx.Store.WriteBack()

	switch {
	case args[0] == "branch":
		return handleBranch(ctx, args)
	case args[0] == "checkout":
		return handleCheckout(ctx, args)
	case args[0] == "merge":
		return handleMerge(ctx, args)
	case leafCommands[args[0]]:
		root := newRootCmd(ctx)
		root.SetArgs(args)
		return root.Execute()
	}
	return run.Dispatch("git", args...)
}

// expandAlias substitutes a configured non-shelling git alias for the
// leading token. One level, no recursion, exactly like git.
func expandAlias(args []string) []string {
	var aliases map[string]string
	if repo, err := git.Discover("."); err == nil {
		aliases = repo.Aliases()
	} else {
		aliases = git.GlobalAliases()
	}

	expansion, ok := aliases[args[0]]
	if !ok {
		return args
	}
	return append(strings.Fields(expansion), args[1:]...)
}
