// Package config loads converter configuration from YAML site config files
// such as Jekyll's _config.yml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	commonmark "github.com/alnah/go-commonmark"
	"github.com/alnah/go-commonmark/internal/fileutil"
	"github.com/alnah/go-commonmark/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrEmptyPath      = errors.New("config path cannot be empty")
	ErrConfigParse    = errors.New("failed to parse config")
)

// SectionKey is the top-level key holding converter settings.
const SectionKey = "commonmark"

// SiteConfigNames lists the file names FindSite tries, in order.
var SiteConfigNames = []string{"_config.yml", "_config.yaml"}

// LoadSite reads a YAML site config and returns its commonmark section.
//
// The section is decoded with commonmark.DecodeConfig, so a missing or
// malformed section yields the empty Config rather than an error. An
// empty file is treated the same way. Only a missing file or invalid
// YAML fail.
func LoadSite(path string) (commonmark.Config, error) {
	if path == "" {
		return commonmark.Config{}, ErrEmptyPath
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return commonmark.Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return commonmark.Config{}, fmt.Errorf("reading config file: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return commonmark.Config{}, nil
	}

	section, err := yamlutil.Section(data, SectionKey)
	if err != nil {
		return commonmark.Config{}, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}

	return commonmark.DecodeConfig(section), nil
}

// FindSite returns the first site config file present in dir.
// The error wraps ErrConfigNotFound and lists the tried paths.
func FindSite(dir string) (string, error) {
	tried := make([]string, 0, len(SiteConfigNames))
	for _, name := range SiteConfigNames {
		path := filepath.Join(dir, name)
		if fileutil.FileExists(path) {
			return path, nil
		}
		tried = append(tried, path)
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
