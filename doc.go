// Package commonmark converts Markdown to HTML with goldmark, configured by
// CommonMarker-style option and extension tokens, and highlights fenced code
// blocks with chroma.
//
// # Quick Start
//
//	conv := commonmark.NewConverter(commonmark.WithConfig(commonmark.Config{
//	    Options:    []string{"SMART"},
//	    Extensions: []string{"autolink", "table"},
//	}))
//
//	html, err := conv.Convert("# Hello\n\n\"World\"")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration
//
// Options (case-sensitive): DEFAULT, FOOTNOTES, FULL_INFO_STRING,
// GITHUB_PRE_LANG, HARDBREAKS, NOBREAKS, SMART, STRIKETHROUGH_DOUBLE_TILDE,
// UNSAFE, VALIDATE_UTF8. Extensions: autolink, strikethrough, table,
// tagfilter, tasklist.
//
// Unknown tokens never fail a conversion. Convert writes one line per
// unknown token to the diagnostics writer (os.Stderr by default):
//
//	CommonMark: SOFTBREAKS is not a valid option
//
// Render returns the same warnings as data instead. Resolve exposes the
// validation step alone.
//
// Untyped configuration, for example decoded from YAML, is converted with
// DecodeConfig. Values of the wrong shape decode to the empty Config.
//
// # Code Highlighting
//
// Fenced code blocks with a language are rendered as
//
//	<div class="language-go highlighter-rouge"><div class="highlight">
//	<pre class="highlight"><code data-lang="go">...</code></pre></div></div>
//
// with class-based chroma spans inside. Blocks in an unknown language keep
// the wrapper around escaped text; blocks without a language are left as
// plain <pre><code>. GITHUB_PRE_LANG moves the language to
// <pre class="highlight" lang="go"> and FULL_INFO_STRING adds the rest of
// the info string as data-meta. Raw HTML passed through with UNSAFE is
// never highlighted. Supply another Highlighter with WithHighlighter.
package commonmark
