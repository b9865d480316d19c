// Package pipeline implements the Markdown-to-HTML conversion stages:
//   - Markdown preprocessing (line ending normalization, UTF-8 repair)
//   - Markdown to HTML conversion via goldmark, configured by EngineFlags
//   - GFM tag filtering of raw HTML
//   - Fenced code block highlighting via chroma
//
// Token validation lives in the root commonmark package. This package only
// sees the boolean EngineFlags it produces.
package pipeline
