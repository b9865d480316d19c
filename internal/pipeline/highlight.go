package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ErrUnknownLanguage indicates the highlighter has no lexer for a language.
var ErrUnknownLanguage = errors.New("unknown highlight language")

// codeBlockPriority overrides goldmark's fenced code block renderer (1000).
// It matches the priority goldmark-highlighting registers with.
const codeBlockPriority = 200

// infoStringPriority orders the FULL_INFO_STRING transformer among the
// parser's AST transformers.
const infoStringPriority = 500

// metaAttribute holds the info string text after the language word when
// FULL_INFO_STRING is enabled.
var metaAttribute = []byte("data-meta")

// chromaFormatOptions emit class-based spans without a surrounding <pre>,
// so the wrapper controls the container.
var chromaFormatOptions = []chromahtml.Option{
	chromahtml.WithClasses(true),
	chromahtml.PreventSurroundingPre(true),
}

// Highlighter turns raw source text into highlighted HTML markup.
// Implementations must return ErrUnknownLanguage (possibly wrapped) when
// they cannot handle lang, and must be safe for concurrent use.
type Highlighter interface {
	Highlight(lang, code string) (string, error)
}

// ChromaHighlighter highlights code with chroma, emitting class-based spans
// and no surrounding <pre> so the caller controls the container.
type ChromaHighlighter struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

// NewChromaHighlighter creates a ChromaHighlighter.
func NewChromaHighlighter() *ChromaHighlighter {
	return &ChromaHighlighter{
		formatter: chromahtml.New(chromaFormatOptions...),
		style:     styles.Fallback,
	}
}

// Highlight implements Highlighter. Lexers are looked up by name, alias or
// file extension.
func (h *ChromaHighlighter) Highlight(lang, code string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenising %s: %w", lang, err)
	}

	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, iterator); err != nil {
		return "", fmt.Errorf("formatting %s: %w", lang, err)
	}
	return b.String(), nil
}

// CodeBlockOptions controls the container markup around fenced code.
type CodeBlockOptions struct {
	// GitHubPreLang moves the language onto <pre lang="ID"> instead of
	// <code data-lang="ID">.
	GitHubPreLang bool

	// FullInfoString records the info string text after the language word
	// as a data-meta attribute.
	FullInfoString bool
}

// newCodeBlockExtender returns the goldmark extension that renders fenced
// code blocks. With a nil h and no info string metadata, goldmark-highlighting
// drives chroma directly; otherwise CodeBlockRenderer calls h, defaulting
// to ChromaHighlighter.
func newCodeBlockExtender(h Highlighter, opts CodeBlockOptions) goldmark.Extender {
	if h == nil && !opts.FullInfoString {
		return highlighting.NewHighlighting(
			highlighting.WithFormatOptions(chromaFormatOptions...),
			highlighting.WithWrapperRenderer(rougeWrapper(opts)),
		)
	}
	if h == nil {
		h = NewChromaHighlighter()
	}
	return &codeBlockExtender{renderer: NewCodeBlockRenderer(h, opts)}
}

// rougeWrapper adapts writeCodeBlockOpen/Close to goldmark-highlighting.
// The context exposes only the language, so data-meta is never written here.
func rougeWrapper(opts CodeBlockOptions) highlighting.WrapperRenderer {
	return func(w util.BufWriter, c highlighting.CodeBlockContext, entering bool) {
		lang, _ := c.Language()
		if entering {
			writeCodeBlockOpen(w, lang, nil, opts)
			return
		}
		writeCodeBlockClose(w, lang)
	}
}

type codeBlockExtender struct {
	renderer *CodeBlockRenderer
}

func (e *codeBlockExtender) Extend(m goldmark.Markdown) {
	if e.renderer.opts.FullInfoString {
		m.Parser().AddOptions(parser.WithASTTransformers(
			util.Prioritized(infoStringMeta{}, infoStringPriority),
		))
	}
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(e.renderer, codeBlockPriority),
	))
}

// CodeBlockRenderer renders fenced code blocks through a Highlighter.
// Only blocks the parser produced are touched; raw HTML is left to
// goldmark's HTML block renderer.
type CodeBlockRenderer struct {
	highlighter Highlighter
	opts        CodeBlockOptions
}

// NewCodeBlockRenderer creates a CodeBlockRenderer backed by h.
// Panics if h is nil.
func NewCodeBlockRenderer(h Highlighter, opts CodeBlockOptions) *CodeBlockRenderer {
	if h == nil {
		panic("pipeline: NewCodeBlockRenderer highlighter must not be nil")
	}
	return &CodeBlockRenderer{highlighter: h, opts: opts}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *CodeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

// renderFencedCodeBlock writes
//
//	<div class="language-ID highlighter-rouge"><div class="highlight">
//	<pre class="highlight"><code data-lang="ID">...</code></pre></div></div>
//
// (without the line break) for blocks tagged with a language. Untagged
// blocks render as goldmark does. When the highlighter fails, the escaped
// source is placed in the same wrapper.
func (r *CodeBlockRenderer) renderFencedCodeBlock(
	w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	lang := n.Language(source)

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(source))
	}

	var meta []byte
	if v, ok := n.Attribute(metaAttribute); ok {
		meta, _ = v.([]byte)
	}

	writeCodeBlockOpen(w, lang, meta, r.opts)
	if lang == nil {
		_, _ = w.Write(util.EscapeHTML(code.Bytes()))
	} else if body, err := r.highlighter.Highlight(string(lang), code.String()); err == nil {
		_, _ = w.WriteString(body)
	} else {
		_, _ = w.Write(util.EscapeHTML(code.Bytes()))
	}
	writeCodeBlockClose(w, lang)
	return ast.WalkSkipChildren, nil
}

// writeCodeBlockOpen writes the opening container for a code block. A nil
// lang yields goldmark's plain "<pre><code>".
func writeCodeBlockOpen(w util.BufWriter, lang, meta []byte, opts CodeBlockOptions) {
	if lang == nil {
		_, _ = w.WriteString("<pre><code>")
		return
	}
	attr := html.EscapeString(string(lang))

	_, _ = w.WriteString(`<div class="language-`)
	_, _ = w.WriteString(attr)
	_, _ = w.WriteString(` highlighter-rouge"><div class="highlight"><pre class="highlight"`)
	if opts.GitHubPreLang {
		_, _ = w.WriteString(` lang="`)
		_, _ = w.WriteString(attr)
		_ = w.WriteByte('"')
		writeMeta(w, meta)
		_, _ = w.WriteString("><code>")
		return
	}
	_, _ = w.WriteString(`><code data-lang="`)
	_, _ = w.WriteString(attr)
	_ = w.WriteByte('"')
	writeMeta(w, meta)
	_ = w.WriteByte('>')
}

func writeMeta(w util.BufWriter, meta []byte) {
	if len(meta) == 0 {
		return
	}
	_, _ = w.WriteString(` data-meta="`)
	_, _ = w.WriteString(html.EscapeString(string(meta)))
	_ = w.WriteByte('"')
}

// writeCodeBlockClose closes what writeCodeBlockOpen opened.
func writeCodeBlockClose(w util.BufWriter, lang []byte) {
	if lang == nil {
		_, _ = w.WriteString("</code></pre>\n")
		return
	}
	_, _ = w.WriteString("</code></pre></div></div>\n")
}

// infoStringMeta stores the info string text after the language word on
// each fenced code block.
type infoStringMeta struct{}

func (infoStringMeta) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		n, ok := node.(*ast.FencedCodeBlock)
		if !ok || n.Info == nil {
			return ast.WalkContinue, nil
		}
		info := n.Info.Segment.Value(source)
		lang := n.Language(source)
		if meta := bytes.TrimSpace(info[len(lang):]); len(meta) > 0 {
			n.SetAttribute(metaAttribute, meta)
		}
		return ast.WalkSkipChildren, nil
	})
}
