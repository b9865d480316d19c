package commonmark

import (
	"fmt"
	"io"
	"os"

	"github.com/alnah/go-commonmark/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ Highlighter                   = (*pipeline.ChromaHighlighter)(nil)
)

// Highlighter turns source code into highlighted HTML markup for a language.
// It must return an error wrapping ErrUnknownLanguage for languages it does
// not recognize, and must be safe for concurrent use.
type Highlighter = pipeline.Highlighter

// Converter turns Markdown into HTML. It holds no mutable state and is safe
// for concurrent use when its Highlighter is.
type Converter struct {
	cfg          Config
	highlighter  Highlighter // nil selects chroma through goldmark-highlighting
	diagnostics  io.Writer
	maxInputSize int
}

// Option configures a Converter.
type Option func(*Converter)

// WithConfig sets the configuration used by Convert and Render.
func WithConfig(cfg Config) Option {
	return func(c *Converter) {
		c.cfg = cfg
	}
}

// WithHighlighter replaces the default chroma highlighter.
// Panics if h is nil.
func WithHighlighter(h Highlighter) Option {
	if h == nil {
		panic("commonmark: WithHighlighter highlighter must not be nil")
	}
	return func(c *Converter) {
		c.highlighter = h
	}
}

// WithDiagnostics sets where Convert writes warnings (default os.Stderr).
// A nil writer discards them.
func WithDiagnostics(w io.Writer) Option {
	if w == nil {
		w = io.Discard
	}
	return func(c *Converter) {
		c.diagnostics = w
	}
}

// WithMaxInputSize rejects Markdown larger than n bytes with
// ErrInputTooLarge. Zero disables the limit. Panics if n is negative.
func WithMaxInputSize(n int) Option {
	if n < 0 {
		panic("commonmark: WithMaxInputSize size must not be negative")
	}
	return func(c *Converter) {
		c.maxInputSize = n
	}
}

// NewConverter creates a Converter. Without options it uses the empty
// Config, the chroma highlighter and os.Stderr for diagnostics.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{diagnostics: os.Stderr}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert renders markdown with the converter's Config and returns the HTML
// as produced by the engine, untrimmed. Warnings for unknown tokens are
// written to the diagnostics writer, one per line, and do not fail the call.
func (c *Converter) Convert(markdown string) (string, error) {
	result, err := c.Render(markdown)
	if result != nil {
		for _, w := range result.Warnings {
			fmt.Fprintln(c.diagnostics, w.String())
		}
	}
	if err != nil {
		return "", err
	}
	return result.HTML, nil
}

// Render is Convert without diagnostics output: warnings are returned in
// the Result for the caller to report.
func (c *Converter) Render(markdown string) (*Result, error) {
	return c.ConvertWith(c.cfg, markdown)
}

// ConvertWith renders markdown using cfg instead of the converter's Config.
// Flags are resolved on every call. On engine failure the returned Result
// still carries the warnings, with empty HTML, and the error wraps
// ErrConversion.
func (c *Converter) ConvertWith(cfg Config, markdown string) (result *Result, err error) {
	flags, warnings := Resolve(cfg)
	result = &Result{Flags: flags, Warnings: warnings}

	defer func() {
		if r := recover(); r != nil {
			result.HTML = ""
			err = fmt.Errorf("%w: internal error: %v", ErrConversion, r)
		}
	}()

	if c.maxInputSize > 0 && len(markdown) > c.maxInputSize {
		return result, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(markdown), c.maxInputSize)
	}

	preprocessor := &pipeline.CommonMarkPreprocessor{
		ValidateUTF8: flags.HasOption(OptionValidateUTF8),
	}
	content := preprocessor.PreprocessMarkdown(markdown)

	htmlContent, err := pipeline.NewGoldmarkConverter(engineFlags(flags), c.highlighter).ToHTML(content)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrConversion, err)
	}

	result.HTML = htmlContent
	return result, nil
}
