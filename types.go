package commonmark

import "fmt"

// ComponentName prefixes every diagnostic line.
const ComponentName = "CommonMark"

// Config selects rendering options and parser extensions by token.
// Unknown tokens are reported and ignored, never fatal.
type Config struct {
	Options    []string `yaml:"options"`
	Extensions []string `yaml:"extensions"`
}

// Flags holds the validated, deduplicated tokens of a Config.
// Both slices are sorted and contain only known tokens.
type Flags struct {
	Options    []string
	Extensions []string
}

// HasOption reports whether the option token is enabled.
func (f Flags) HasOption(token string) bool {
	return contains(f.Options, token)
}

// HasExtension reports whether the extension token is enabled.
func (f Flags) HasExtension(token string) bool {
	return contains(f.Extensions, token)
}

func contains(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}

// WarningKind names the Config field a rejected token came from.
type WarningKind string

// Warning kinds.
const (
	KindOption    WarningKind = "option"
	KindExtension WarningKind = "extension"
)

// Warning reports a token that is not part of the known enumeration.
type Warning struct {
	Kind  WarningKind
	Token string
}

// String formats the warning as a diagnostic line, e.g.
// "CommonMark: SOFTBREAKS is not a valid option".
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s is not a valid %s", ComponentName, w.Token, w.Kind)
}

// Result is the outcome of a single conversion.
type Result struct {
	HTML     string
	Flags    Flags
	Warnings []Warning
}
