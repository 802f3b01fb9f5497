package main

import (
	"errors"
	"fmt"
	"os"

	"diffbase.dev/diffbase/internal/cli"
	gerrors "diffbase.dev/diffbase/internal/errors"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		var delegation *gerrors.DelegationError
		if errors.As(err, &delegation) {
			// The delegated git command already wrote its own
			// diagnostics; mirror its exit code silently.
			if delegation.Signaled {
				fmt.Fprintln(os.Stderr, delegation.Error())
				os.Exit(1)
			}
			os.Exit(delegation.ExitCode)
		}
		fmt.Fprintln(os.Stderr, "g:", err)
		os.Exit(1)
	}
}
