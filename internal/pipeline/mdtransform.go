package pipeline

import (
	"regexp"
	"strings"
)

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(content string) string
}

// CommonMarkPreprocessor prepares input for the engine.
type CommonMarkPreprocessor struct {
	// ValidateUTF8 replaces invalid UTF-8 sequences with U+FFFD.
	ValidateUTF8 bool
}

// PreprocessMarkdown normalizes line endings and, when enabled, repairs
// invalid UTF-8. Paragraph and blank-line structure is left to the engine.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(content string) string {
	if p.ValidateUTF8 {
		content = strings.ToValidUTF8(content, "�")
	}
	return normalizeLineEndings(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	if !strings.ContainsRune(content, '\r') {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}
