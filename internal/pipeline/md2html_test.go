package pipeline

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_ToHTML - Flag-driven rendering behavior
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		flags        EngineFlags
		input        string
		want         string // exact output, when set
		wantContains []string
		wantNot      []string
	}{
		{
			name:  "heading",
			input: "# Heading",
			want:  "<h1>Heading</h1>\n",
		},
		{
			name:  "soft break kept by default",
			input: "a\nb",
			want:  "<p>a\nb</p>\n",
		},
		{
			name:  "blank line starts new paragraph",
			input: "a\n\nb",
			want:  "<p>a</p>\n<p>b</p>\n",
		},
		{
			name:  "hard breaks",
			flags: EngineFlags{HardBreaks: true},
			input: "a\nb",
			want:  "<p>a<br />\nb</p>\n",
		},
		{
			name:  "no breaks",
			flags: EngineFlags{NoBreaks: true},
			input: "a\nb",
			want:  "<p>a b</p>\n",
		},
		{
			name:  "no breaks inside emphasis",
			flags: EngineFlags{NoBreaks: true},
			input: "*a\nb*",
			want:  "<p><em>a b</em></p>\n",
		},
		{
			name:  "no breaks keeps explicit hard break",
			flags: EngineFlags{NoBreaks: true},
			input: "a  \nb",
			want:  "<p>a<br />\nb</p>\n",
		},
		{
			name:  "hard breaks win over no breaks",
			flags: EngineFlags{HardBreaks: true, NoBreaks: true},
			input: "a\nb",
			want:  "<p>a<br />\nb</p>\n",
		},
		{
			name:  "no breaks leaves code span intact",
			flags: EngineFlags{NoBreaks: true},
			input: "`a\nb`",
			want:  "<p><code>a b</code></p>\n",
		},
		{
			name:  "quotes escaped by default",
			input: `"SmartyPants"`,
			want:  "<p>&quot;SmartyPants&quot;</p>\n",
		},
		{
			name:  "smart quotes as characters",
			flags: EngineFlags{Smart: true},
			input: `"SmartyPants"`,
			want:  "<p>“SmartyPants”</p>\n",
		},
		{
			name:         "smart dashes and ellipsis",
			flags:        EngineFlags{Smart: true},
			input:        "a -- b --- c...",
			wantContains: []string{"–", "—", "…"},
			wantNot:      []string{"&ndash;", "&mdash;", "&hellip;"},
		},
		{
			name:  "bare URL not linked by default",
			input: "https://example.com",
			want:  "<p>https://example.com</p>\n",
		},
		{
			name:  "autolink",
			flags: EngineFlags{Autolink: true},
			input: "https://example.com",
			want:  "<p><a href=\"https://example.com\">https://example.com</a></p>\n",
		},
		{
			name:         "strikethrough",
			flags:        EngineFlags{Strikethrough: true},
			input:        "~~gone~~",
			wantContains: []string{"<del>gone</del>"},
		},
		{
			name:         "strikethrough disabled",
			input:        "~~gone~~",
			wantContains: []string{"~~gone~~"},
			wantNot:      []string{"<del>"},
		},
		{
			name:         "table",
			flags:        EngineFlags{Table: true},
			input:        "| A | B |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{"<table>", "<th>A</th>", "<td>1</td>"},
		},
		{
			name:    "table disabled",
			input:   "| A | B |\n|---|---|\n| 1 | 2 |",
			wantNot: []string{"<table>"},
		},
		{
			name:         "task list",
			flags:        EngineFlags{TaskList: true},
			input:        "- [x] done\n- [ ] todo",
			wantContains: []string{`type="checkbox"`, "checked"},
		},
		{
			name:         "footnotes",
			flags:        EngineFlags{Footnotes: true},
			input:        "Text[^1]\n\n[^1]: Note",
			wantContains: []string{"<sup", "footnote"},
		},
		{
			name:         "raw HTML omitted by default",
			input:        "<div>raw</div>",
			wantContains: []string{"raw HTML omitted"},
			wantNot:      []string{"<div>raw</div>"},
		},
		{
			name:         "raw HTML passed with unsafe",
			flags:        EngineFlags{Unsafe: true},
			input:        "<div>raw</div>",
			wantContains: []string{"<div>raw</div>"},
		},
		{
			name:         "tag filter escapes script",
			flags:        EngineFlags{Unsafe: true, TagFilter: true},
			input:        "<script>alert(1)</script>",
			wantContains: []string{"&lt;script>", "&lt;/script>"},
			wantNot:      []string{"<script>"},
		},
		{
			name:         "fenced code highlighted during rendering",
			input:        "```go\nfunc main() {}\n```",
			wantContains: []string{`<div class="language-go highlighter-rouge">`, `<code data-lang="go">`, `<span class="`},
			wantNot:      []string{`class="language-go">`},
		},
		{
			name:  "raw code markup untouched with unsafe",
			flags: EngineFlags{Unsafe: true},
			input: "<pre><code class=\"language-text\"><b>x</b> &amp;</code></pre>\n",
			want:  "<pre><code class=\"language-text\"><b>x</b> &amp;</code></pre>\n",
		},
		{
			name:  "single tilde strikes by default",
			flags: EngineFlags{Strikethrough: true},
			input: "~a~ ~~b~~",
			want:  "<p><del>a</del> <del>b</del></p>\n",
		},
		{
			name:  "double tilde only",
			flags: EngineFlags{Strikethrough: true, DoubleTilde: true},
			input: "~a~ ~~b~~",
			want:  "<p>~a~ <del>b</del></p>\n",
		},
		{
			name:    "double tilde without strikethrough",
			flags:   EngineFlags{DoubleTilde: true},
			input:   "~~b~~",
			want:    "<p>~~b~~</p>\n",
			wantNot: []string{"<del>"},
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewGoldmarkConverter(tt.flags, nil).ToHTML(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want != "" || (len(tt.wantContains) == 0 && len(tt.wantNot) == 0) {
				if got != tt.want {
					t.Errorf("ToHTML(%q) = %q, want %q", tt.input, got, tt.want)
				}
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\ngot: %s", want, got)
				}
			}
			for _, notWant := range tt.wantNot {
				if strings.Contains(got, notWant) {
					t.Errorf("output should not contain %q\ngot: %s", notWant, got)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_Concurrent - Shared converter across goroutines
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_Concurrent(t *testing.T) {
	t.Parallel()

	converter := NewGoldmarkConverter(EngineFlags{Smart: true, Autolink: true}, nil)
	errs := make(chan error, 16)

	for i := 0; i < 16; i++ {
		go func() {
			got, err := converter.ToHTML(`"quoted" https://example.com`)
			if err == nil && !strings.Contains(got, "“quoted”") {
				err = errors.New("missing smart quotes: " + got)
			}
			errs <- err
		}()
	}

	for i := 0; i < 16; i++ {
		if err := <-errs; err != nil {
			t.Error(err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestFilterDisallowedTags - GFM tagfilter
// ---------------------------------------------------------------------------

func TestFilterDisallowedTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"script", "<script>x</script>", "&lt;script>x&lt;/script>"},
		{"uppercase", "<STYLE>a</STYLE>", "&lt;STYLE>a&lt;/STYLE>"},
		{"with attributes", `<iframe src="x">`, `&lt;iframe src="x">`},
		{"self closing", "<xmp/>", "&lt;xmp/>"},
		{"at end of input", "<plaintext", "&lt;plaintext"},
		{"allowed tag", "<div><em>ok</em></div>", "<div><em>ok</em></div>"},
		{"prefix of allowed name", "<titles>", "<titles>"},
		{"already escaped", "&lt;script&gt;", "&lt;script&gt;"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FilterDisallowedTags(tt.input)
			if got != tt.want {
				t.Errorf("FilterDisallowedTags(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
