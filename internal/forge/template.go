package forge

import (
	"os"
	"path/filepath"
	"strings"
)

// RequestTemplate returns the repository's pull request template, if one
// exists. The usual locations are searched in order: .github/, docs/ and
// the repository root.
func RequestTemplate(workdir string) string {
	for _, sub := range []string{".github", "docs", "."} {
		entries, err := os.ReadDir(filepath.Join(workdir, sub))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			stem := entry.Name()
			if ext := filepath.Ext(stem); ext != "" {
				stem = stem[:len(stem)-len(ext)]
			}
			if strings.EqualFold(stem, "pull_request_template") {
				content, err := os.ReadFile(filepath.Join(workdir, sub, entry.Name()))
				if err != nil {
					continue
				}
				return string(content)
			}
		}
	}
	return ""
}
