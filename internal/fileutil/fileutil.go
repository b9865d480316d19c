// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotMarkdown indicates a path without a Markdown extension.
var ErrNotMarkdown = errors.New("file must have a markdown extension")

// markdownExtensions are the extensions Jekyll's markdown_ext default
// recognizes, lowercased.
var markdownExtensions = []string{
	".markdown", ".mkdown", ".mkdn", ".mkd", ".md",
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsMarkdown reports whether path has a Markdown extension (case-insensitive).
func IsMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range markdownExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// HTMLOutputPath maps a Markdown input to its .html output. When outDir is
// empty the output sits next to the input.
func HTMLOutputPath(inputPath, outDir string) (string, error) {
	if !IsMarkdown(inputPath) {
		return "", fmt.Errorf("%w: %s", ErrNotMarkdown, inputPath)
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)) + ".html"
	if outDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base), nil
	}
	return filepath.Join(outDir, base), nil
}

// WriteFileAtomic writes content to path through a temporary file in the
// same directory, so readers never observe a partial file.
func WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".commonmark-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, writeErr := tmpFile.Write(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
