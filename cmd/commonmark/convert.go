package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	commonmark "github.com/alnah/go-commonmark"
	"github.com/alnah/go-commonmark/internal/config"
	"github.com/alnah/go-commonmark/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no markdown input found")
	ErrReadMarkdown       = errors.New("failed to read markdown")
	ErrWriteHTML          = errors.New("failed to write HTML")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrConversionsFailed  = errors.New("conversion failed")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Renderer is the conversion capability the CLI needs.
type Renderer interface {
	Render(markdown string) (*commonmark.Result, error)
}

// Compile-time interface implementation check.
var _ Renderer = (*commonmark.Converter)(nil)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, inputs []string, flags *cliFlags, deps *Dependencies) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.config, deps, flags.verbose)
	if err != nil {
		return err
	}
	cfg = mergeFlags(flags, cfg)

	// Warnings depend on the config only, so report them once per run.
	if !flags.quiet {
		printWarnings(cfg, flags.verbose, deps.Stderr)
	}

	conv := commonmark.NewConverter(commonmark.WithConfig(cfg))

	if len(inputs) == 0 {
		if deps.StdinIsTerminal {
			return fmt.Errorf("%w: pass files or pipe markdown on stdin (see --help)", ErrNoInput)
		}
		return convertStdin(conv, deps)
	}

	files, err := discoverFiles(inputs, flags.output)
	if err != nil {
		return err
	}

	if flags.output != "" {
		if err := os.MkdirAll(flags.output, dirPermissions); err != nil {
			return fmt.Errorf("%w: creating output directory: %v%s", ErrWriteHTML, err, hints.ForOutputDirectory())
		}
	}

	results := convertBatch(ctx, conv, files, resolveWorkers(flags.workers))

	failed := printResults(results, flags.quiet, flags.verbose, deps)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrConversionsFailed, failed, len(results))
	}
	return nil
}

// loadConfig reads the site config named by path, or discovers one in the
// working directory. A missing discovered config is not an error.
func loadConfig(path string, deps *Dependencies, verbose bool) (commonmark.Config, error) {
	if path == "" {
		found, err := config.FindSite(deps.WorkDir)
		if err != nil {
			return commonmark.Config{}, nil
		}
		path = found
	}

	cfg, err := config.LoadSite(path)
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return cfg, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(siteConfigCandidates(deps.WorkDir)))
	case errors.Is(err, config.ErrConfigParse):
		return cfg, fmt.Errorf("loading config: %w%s", err, hints.ForConfigParse())
	case err != nil:
		return cfg, fmt.Errorf("loading config: %w", err)
	}

	if verbose {
		fmt.Fprintf(deps.Stderr, "Using config %s\n", path)
	}
	return cfg, nil
}

// siteConfigCandidates lists the site config paths searched in dir.
func siteConfigCandidates(dir string) []string {
	paths := make([]string, 0, len(config.SiteConfigNames))
	for _, name := range config.SiteConfigNames {
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths
}

// mergeFlags appends CLI tokens to the config lists. The input is not modified.
func mergeFlags(flags *cliFlags, cfg commonmark.Config) commonmark.Config {
	return commonmark.Config{
		Options:    append(slices.Clone(cfg.Options), flags.options...),
		Extensions: append(slices.Clone(cfg.Extensions), flags.extensions...),
	}
}

// printWarnings writes one line per rejected token. In verbose mode it
// follows up with the valid tokens of each kind that had a warning.
func printWarnings(cfg commonmark.Config, verbose bool, w io.Writer) {
	_, warnings := commonmark.Resolve(cfg)
	var badOption, badExtension bool
	for _, warn := range warnings {
		fmt.Fprintln(w, warn.String())
		switch warn.Kind {
		case commonmark.KindOption:
			badOption = true
		case commonmark.KindExtension:
			badExtension = true
		}
	}

	if !verbose {
		return
	}
	if badOption {
		fmt.Fprintln(w, strings.TrimPrefix(hints.ForInvalidTokens(string(commonmark.KindOption), commonmark.KnownOptions()), "\n"))
	}
	if badExtension {
		fmt.Fprintln(w, strings.TrimPrefix(hints.ForInvalidTokens(string(commonmark.KindExtension), commonmark.KnownExtensions()), "\n"))
	}
}

// convertStdin converts all of stdin to stdout.
func convertStdin(conv Renderer, deps *Dependencies) error {
	content, err := io.ReadAll(deps.Stdin)
	if err != nil {
		return fmt.Errorf("%w: stdin: %v", ErrReadMarkdown, err)
	}

	result, err := conv.Render(string(content))
	if err != nil {
		return err
	}

	if _, err := io.WriteString(deps.Stdout, result.HTML); err != nil {
		return fmt.Errorf("%w: stdout: %v", ErrWriteHTML, err)
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}
