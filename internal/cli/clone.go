package cli

import (
	"strings"

	"diffbase.dev/diffbase/internal/config"
	"diffbase.dev/diffbase/internal/run"
)

// handleClone expands an owner/repo shorthand to a full remote URL before
// delegating. Anything that already looks like a URL or path passes
// through untouched. Runs without a repository or the diffbase store.
func handleClone(cfg config.Config, args []string) error {
	expanded := make([]string, len(args))
	copy(expanded, args)

	for i := 1; i < len(expanded); i++ {
		arg := expanded[i]
		if strings.HasPrefix(arg, "-") {
			continue
		}
		if isCloneShorthand(arg) {
			expanded[i] = "git@" + cfg.Clone.Host + ":" + arg + ".git"
		}
		// Only the first non-flag argument is the repository.
		break
	}
	return run.Dispatch("git", expanded...)
}

// isCloneShorthand reports whether arg is a bare owner/repo pair rather
// than a URL or a local path.
func isCloneShorthand(arg string) bool {
	if strings.Contains(arg, "://") || strings.Contains(arg, "@") || strings.Contains(arg, ":") {
		return false
	}
	if strings.HasPrefix(arg, ".") || strings.HasPrefix(arg, "/") || strings.HasPrefix(arg, "~") {
		return false
	}
	return strings.Count(arg, "/") == 1
}
