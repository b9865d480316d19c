// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the first searched site config path.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/_config.yml"
	if len(searchedPaths) > 0 {
		hint += " or create " + searchedPaths[0]
	}
	return format(hint)
}

// ForConfigParse returns a hint for YAML syntax errors.
func ForConfigParse() string {
	return format(`list tokens as YAML sequences, e.g. options: ["SMART", "HARDBREAKS"]`)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForNotMarkdown returns a hint listing accepted input extensions.
func ForNotMarkdown() string {
	return format("accepted extensions: .md, .markdown, .mkd, .mkdn, .mkdown")
}

// ForInvalidTokens returns a hint listing valid tokens of a kind
// ("option" or "extension").
func ForInvalidTokens(kind string, valid []string) string {
	if len(valid) == 0 {
		return ""
	}
	return format("valid " + kind + "s: " + strings.Join(valid, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
