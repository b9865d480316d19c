package commonmark

import (
	"errors"

	"github.com/alnah/go-commonmark/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrConversion    = errors.New("markdown conversion failed")
	ErrInputTooLarge = errors.New("markdown input exceeds maximum size")

	// ErrUnknownLanguage is returned by a Highlighter for an unrecognized
	// language. The converter recovers from it; it never reaches callers
	// of Convert.
	ErrUnknownLanguage = pipeline.ErrUnknownLanguage
)
