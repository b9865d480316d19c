package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-commonmark/internal/fileutil"
	"github.com/alnah/go-commonmark/internal/hints"
)

// maxWorkers bounds --workers.
const maxWorkers = 256

// FileToConvert represents a single file to process.
// An empty OutputPath means the HTML goes to stdout.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	HTML       string // Set only when OutputPath is empty
	Err        error
	Duration   time.Duration
}

// globMeta lists the characters that make an input a glob pattern.
const globMeta = "*?[{"

// discoverFiles expands inputs into files to convert. Directories are
// walked for Markdown files; files named explicitly are taken as given.
// Inputs that do not exist but contain glob syntax ("docs/**/*.md") are
// expanded. With outputDir set, every input must have a Markdown extension.
func discoverFiles(inputs []string, outputDir string) ([]FileToConvert, error) {
	var files []FileToConvert
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil && strings.ContainsAny(input, globMeta) {
			found, globErr := expandGlob(input, outputDir)
			if globErr != nil {
				return nil, globErr
			}
			files = append(files, found...)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		}

		if !info.IsDir() {
			outPath, err := resolveOutputPath(input, outputDir, "")
			if err != nil {
				return nil, err
			}
			files = append(files, FileToConvert{InputPath: input, OutputPath: outPath})
			continue
		}

		found, err := walkMarkdown(input, outputDir)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("%w: no markdown files in %s%s", ErrNoInput, input, hints.ForNotMarkdown())
		}
		files = append(files, found...)
	}
	return files, nil
}

// walkMarkdown collects Markdown files under dir.
func walkMarkdown(dir, outputDir string) ([]FileToConvert, error) {
	var files []FileToConvert
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsMarkdown(path) {
			return nil
		}
		outPath, err := resolveOutputPath(path, outputDir, dir)
		if err != nil {
			return err
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})
	return files, err
}

// expandGlob collects the regular files matching a doublestar pattern.
// Output paths keep their directory relative to the pattern's literal prefix.
func expandGlob(pattern, outputDir string) ([]FileToConvert, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, pattern)
	}

	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	base = filepath.FromSlash(base)

	var files []FileToConvert
	for _, match := range matches {
		if !fileutil.FileExists(match) {
			continue
		}
		outPath, err := resolveOutputPath(match, outputDir, base)
		if err != nil {
			return nil, err
		}
		files = append(files, FileToConvert{InputPath: match, OutputPath: outPath})
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files match %s", ErrNoInput, pattern)
	}
	return files, nil
}

// resolveOutputPath determines the HTML output path for a Markdown file.
// Files found under baseInputDir keep their relative directory.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) (string, error) {
	if outputDir == "" {
		return "", nil
	}

	targetDir := outputDir
	if baseInputDir != "" {
		if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			targetDir = filepath.Join(outputDir, filepath.Dir(relPath))
		}
	}

	outPath, err := fileutil.HTMLOutputPath(inputPath, targetDir)
	if err != nil {
		return "", fmt.Errorf("%w%s", err, hints.ForNotMarkdown())
	}
	return outPath, nil
}

// resolveWorkers returns the explicit worker count or GOMAXPROCS
// (container-aware through automaxprocs).
func resolveWorkers(flagWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	return max(runtime.GOMAXPROCS(0), 1)
}

// convertBatch processes files concurrently, at most workers at a time.
// Results keep the order of files; one failure does not stop the others.
func convertBatch(ctx context.Context, conv Renderer, files []FileToConvert, workers int) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	var g errgroup.Group
	g.SetLimit(workers)

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath, Err: err}
				return nil
			}
			results[i] = convertFile(conv, f)
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(conv Renderer, f FileToConvert) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- user-provided input path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		result.Duration = time.Since(start)
		return result
	}

	rendered, err := conv.Render(string(content))
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if f.OutputPath == "" {
		result.HTML = rendered.HTML
		result.Duration = time.Since(start)
		return result
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("%w: creating output directory: %v%s", ErrWriteHTML, err, hints.ForOutputDirectory())
		result.Duration = time.Since(start)
		return result
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(rendered.HTML), filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteHTML, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults writes HTML for stdout results and status lines for the
// rest. All results share one output mode; status goes to stderr when HTML
// occupies stdout. Returns the number of failures.
func printResults(results []ConversionResult, quiet, verbose bool, deps *Dependencies) int {
	summary := countResults(results)
	status := deps.Stdout
	if len(results) > 0 && results[0].OutputPath == "" {
		status = deps.Stderr
	}

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(deps.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if r.OutputPath == "" {
			_, _ = io.WriteString(deps.Stdout, r.HTML)
			if verbose {
				fmt.Fprintf(deps.Stderr, "%s -> stdout (%v)\n", r.InputPath, r.Duration.Round(time.Millisecond))
			}
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(deps.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(deps.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(status, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
