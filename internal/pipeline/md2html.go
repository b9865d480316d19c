package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// softBreakPriority runs the NOBREAKS transformer after every
// extension transformer (goldmark runs lower values first).
const softBreakPriority = 1000

// smartSubstitutions emits typographic punctuation as UTF-8 characters
// instead of goldmark's default named entities.
var smartSubstitutions = map[extension.TypographicPunctuation][]byte{
	extension.LeftSingleQuote:  []byte("‘"),
	extension.RightSingleQuote: []byte("’"),
	extension.LeftDoubleQuote:  []byte("“"),
	extension.RightDoubleQuote: []byte("”"),
	extension.EnDash:           []byte("–"),
	extension.EmDash:           []byte("—"),
	extension.Ellipsis:         []byte("…"),
	extension.Apostrophe:       []byte("’"),
}

// EngineFlags selects goldmark behavior. Each field corresponds to one
// validated option or extension token.
type EngineFlags struct {
	HardBreaks bool
	NoBreaks   bool
	Smart      bool
	Unsafe     bool
	Footnotes  bool

	GitHubPreLang  bool
	FullInfoString bool
	DoubleTilde    bool

	Autolink      bool
	Strikethrough bool
	Table         bool
	TaskList      bool
	TagFilter     bool
}

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(content string) (string, error)
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark.
type GoldmarkConverter struct {
	md        goldmark.Markdown
	tagFilter bool
}

// NewGoldmarkConverter builds a goldmark instance for the given flags.
// Output is always XHTML so line breaks render as "<br />". Fenced code
// blocks tagged with a language are highlighted by h, or by chroma through
// goldmark-highlighting when h is nil.
func NewGoldmarkConverter(flags EngineFlags, h Highlighter) *GoldmarkConverter {
	exts := []goldmark.Extender{
		newCodeBlockExtender(h, CodeBlockOptions{
			GitHubPreLang:  flags.GitHubPreLang,
			FullInfoString: flags.FullInfoString,
		}),
	}
	if flags.Autolink {
		exts = append(exts, extension.Linkify)
	}
	switch {
	case flags.Strikethrough && flags.DoubleTilde:
		exts = append(exts, DoubleTildeStrikethrough)
	case flags.Strikethrough:
		exts = append(exts, extension.Strikethrough)
	}
	if flags.Table {
		exts = append(exts, extension.Table)
	}
	if flags.TaskList {
		exts = append(exts, extension.TaskList)
	}
	if flags.Footnotes {
		exts = append(exts, extension.Footnote)
	}
	if flags.Smart {
		exts = append(exts, extension.NewTypographer(
			extension.WithTypographicSubstitutions(smartSubstitutions),
		))
	}

	var parserOpts []parser.Option
	// HARDBREAKS takes precedence, matching cmark.
	if flags.NoBreaks && !flags.HardBreaks {
		parserOpts = append(parserOpts, parser.WithASTTransformers(
			util.Prioritized(softBreakSpacer{}, softBreakPriority),
		))
	}

	rendererOpts := []renderer.Option{html.WithXHTML()}
	if flags.HardBreaks {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if flags.Unsafe {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parserOpts...),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &GoldmarkConverter{md: md, tagFilter: flags.TagFilter}
}

// ToHTML converts Markdown content to an HTML fragment.
// Panics raised by the parser on pathological input are reported as
// ErrHTMLConversion rather than propagated.
func (c *GoldmarkConverter) ToHTML(content string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = fmt.Errorf("%w: %v", ErrHTMLConversion, r)
		}
	}()

	var buf bytes.Buffer
	if err := c.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	out = buf.String()
	if c.tagFilter {
		out = FilterDisallowedTags(out)
	}
	return out, nil
}
