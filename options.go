package commonmark

import (
	"slices"

	"github.com/alnah/go-commonmark/internal/pipeline"
)

// Rendering option tokens.
const (
	OptionDefault      = "DEFAULT"       // no-op
	OptionHardBreaks   = "HARDBREAKS"    // soft breaks render as <br />
	OptionNoBreaks     = "NOBREAKS"      // soft breaks render as a space
	OptionSmart        = "SMART"         // typographic quotes, dashes, ellipses
	OptionUnsafe       = "UNSAFE"        // pass raw HTML and dangerous URLs
	OptionFootnotes    = "FOOTNOTES"     // [^1] footnotes
	OptionValidateUTF8 = "VALIDATE_UTF8" // replace invalid UTF-8 with U+FFFD

	OptionGitHubPreLang  = "GITHUB_PRE_LANG"  // language on <pre lang="ID">
	OptionFullInfoString = "FULL_INFO_STRING" // info string remainder as data-meta

	// OptionStrikethroughDoubleTilde restricts the strikethrough extension
	// to "~~text~~".
	OptionStrikethroughDoubleTilde = "STRIKETHROUGH_DOUBLE_TILDE"
)

// Parser extension tokens.
const (
	ExtensionAutolink      = "autolink"
	ExtensionStrikethrough = "strikethrough"
	ExtensionTable         = "table"
	ExtensionTaskList      = "tasklist"
	ExtensionTagFilter     = "tagfilter"
)

// knownOptions and knownExtensions are never mutated after init.
var (
	knownOptions = []string{
		OptionDefault,
		OptionFootnotes,
		OptionFullInfoString,
		OptionGitHubPreLang,
		OptionHardBreaks,
		OptionNoBreaks,
		OptionSmart,
		OptionStrikethroughDoubleTilde,
		OptionUnsafe,
		OptionValidateUTF8,
	}
	knownExtensions = []string{
		ExtensionAutolink,
		ExtensionStrikethrough,
		ExtensionTable,
		ExtensionTagFilter,
		ExtensionTaskList,
	}
)

// KnownOptions returns the accepted option tokens, sorted.
func KnownOptions() []string {
	return slices.Clone(knownOptions)
}

// KnownExtensions returns the accepted extension tokens, sorted.
func KnownExtensions() []string {
	return slices.Clone(knownExtensions)
}

// Resolve filters cfg against the known enumerations. Tokens match
// case-sensitively. Each unknown token yields one Warning, in input order;
// accepted tokens are deduplicated. Resolve never fails.
func Resolve(cfg Config) (Flags, []Warning) {
	options, optionWarnings := filterTokens(cfg.Options, knownOptions, KindOption)
	extensions, extensionWarnings := filterTokens(cfg.Extensions, knownExtensions, KindExtension)

	return Flags{Options: options, Extensions: extensions}, append(optionWarnings, extensionWarnings...)
}

// filterTokens returns the known members of tokens, sorted and unique,
// plus a warning for every unknown one.
func filterTokens(tokens, known []string, kind WarningKind) ([]string, []Warning) {
	var valid []string
	var warnings []Warning

	for _, token := range tokens {
		if !slices.Contains(known, token) {
			warnings = append(warnings, Warning{Kind: kind, Token: token})
			continue
		}
		if !slices.Contains(valid, token) {
			valid = append(valid, token)
		}
	}

	slices.Sort(valid)
	return valid, warnings
}

// engineFlags maps validated tokens onto goldmark settings.
func engineFlags(f Flags) pipeline.EngineFlags {
	return pipeline.EngineFlags{
		HardBreaks: f.HasOption(OptionHardBreaks),
		NoBreaks:   f.HasOption(OptionNoBreaks),
		Smart:      f.HasOption(OptionSmart),
		Unsafe:     f.HasOption(OptionUnsafe),
		Footnotes:  f.HasOption(OptionFootnotes),

		GitHubPreLang:  f.HasOption(OptionGitHubPreLang),
		FullInfoString: f.HasOption(OptionFullInfoString),
		DoubleTilde:    f.HasOption(OptionStrikethroughDoubleTilde),

		Autolink:      f.HasExtension(ExtensionAutolink),
		Strikethrough: f.HasExtension(ExtensionStrikethrough),
		Table:         f.HasExtension(ExtensionTable),
		TaskList:      f.HasExtension(ExtensionTaskList),
		TagFilter:     f.HasExtension(ExtensionTagFilter),
	}
}
