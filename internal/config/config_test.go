package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	commonmark "github.com/alnah/go-commonmark"
)

// writeFile creates a file under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestLoadSite - Reads the commonmark section of a site config
// ---------------------------------------------------------------------------

func TestLoadSite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    commonmark.Config
		wantErr error
	}{
		{
			name: "options and extensions",
			content: `markdown: CommonMark
commonmark:
  options: ["SMART", "FOOTNOTES"]
  extensions: ["strikethrough", "autolink", "table"]
`,
			want: commonmark.Config{
				Options:    []string{"SMART", "FOOTNOTES"},
				Extensions: []string{"strikethrough", "autolink", "table"},
			},
		},
		{
			name: "block sequences",
			content: `commonmark:
  options:
    - HARDBREAKS
  extensions:
    - tasklist
`,
			want: commonmark.Config{
				Options:    []string{"HARDBREAKS"},
				Extensions: []string{"tasklist"},
			},
		},
		{
			name:    "scalar section",
			content: "commonmark: DEFAULT\n",
			want:    commonmark.Config{},
		},
		{
			name:    "missing section",
			content: "title: My Site\n",
			want:    commonmark.Config{},
		},
		{
			name:    "null section",
			content: "commonmark:\n",
			want:    commonmark.Config{},
		},
		{
			name:    "scalar options field",
			content: "commonmark:\n  options: SMART\n",
			want:    commonmark.Config{},
		},
		{
			name:    "non-string items kept for warnings",
			content: "commonmark:\n  options: [SMART, 42]\n",
			want:    commonmark.Config{Options: []string{"SMART", "42"}},
		},
		{
			name:    "empty file",
			content: "",
			want:    commonmark.Config{},
		},
		{
			name:    "whitespace only",
			content: "\n   \n",
			want:    commonmark.Config{},
		},
		{
			name:    "invalid YAML",
			content: "commonmark: [unclosed",
			wantErr: ErrConfigParse,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, t.TempDir(), "_config.yml", tt.content)
			got, err := LoadSite(path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("LoadSite mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadSite_Errors(t *testing.T) {
	t.Parallel()

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		_, err := LoadSite("")
		if !errors.Is(err, ErrEmptyPath) {
			t.Errorf("error = %v, want ErrEmptyPath", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nope.yml")
		_, err := LoadSite(path)
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
		if err != nil && !strings.Contains(err.Error(), path) {
			t.Errorf("error should name the path, got: %v", err)
		}
	})

	t.Run("directory instead of file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadSite(t.TempDir())
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if errors.Is(err, ErrConfigNotFound) {
			t.Errorf("directory should not be reported as not found: %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestFindSite - Config discovery in a directory
// ---------------------------------------------------------------------------

func TestFindSite(t *testing.T) {
	t.Parallel()

	t.Run("prefers yml", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		want := writeFile(t, dir, "_config.yml", "a: 1")
		writeFile(t, dir, "_config.yaml", "a: 2")

		got, err := FindSite(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("FindSite() = %q, want %q", got, want)
		}
	})

	t.Run("falls back to yaml", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		want := writeFile(t, dir, "_config.yaml", "a: 2")

		got, err := FindSite(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("FindSite() = %q, want %q", got, want)
		}
	})

	t.Run("none found lists tried paths", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		_, err := FindSite(dir)
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		for _, name := range SiteConfigNames {
			if !strings.Contains(err.Error(), name) {
				t.Errorf("error should mention %s, got: %v", name, err)
			}
		}
	})

	t.Run("directory named like config ignored", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.Mkdir(filepath.Join(dir, "_config.yml"), 0o750); err != nil {
			t.Fatal(err)
		}
		if _, err := FindSite(dir); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})
}
