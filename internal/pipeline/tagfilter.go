package pipeline

import "regexp"

// disallowedTag matches the opening or closing form of the raw HTML tags
// GFM's tagfilter extension neutralizes. The name must be followed by
// whitespace, "/", ">" or the end of input.
var disallowedTag = regexp.MustCompile(
	`(?i)<(/?(?:title|textarea|style|xmp|iframe|noembed|noframes|script|plaintext)(?:[\s/>]|$))`,
)

// FilterDisallowedTags replaces the leading "<" of disallowed raw HTML tags
// with "&lt;". Escaped text (code blocks, inline code) never contains a
// literal "<", so only raw HTML passed through by UNSAFE is affected.
func FilterDisallowedTags(html string) string {
	return disallowedTag.ReplaceAllString(html, "&lt;${1}")
}
