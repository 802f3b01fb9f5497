package git

import (
	"strings"

	gitconfig "github.com/go-git/go-git/v5/config"
)

// GlobalAliases returns the non-shelling git aliases from the user's
// global configuration, for invocations outside any repository.
func GlobalAliases() map[string]string {
	cfg, err := gitconfig.LoadConfig(gitconfig.GlobalScope)
	if err != nil {
		return map[string]string{}
	}

	aliases := make(map[string]string)
	for _, option := range cfg.Raw.Section("alias").Options {
		if strings.HasPrefix(strings.TrimSpace(option.Value), "!") {
			continue
		}
		aliases[option.Key] = option.Value
	}
	return aliases
}
