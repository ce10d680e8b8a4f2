// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package commonmark

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/coreglow/mdstream/internal/normhtml"
)

func TestParseFrontMatter(t *testing.T) {
	source := "---\ntitle: Hi\n---\n# Heading\n"
	opts := DefaultOptions()
	opts.FrontMatter = true
	out, fm := Parse(nil, []byte(source), &opts)
	if !fm.IsValid() {
		t.Fatal("front matter span is invalid, want a match")
	}
	if got, want := string(spanSlice([]byte(source), fm)), "title: Hi\n"; got != want {
		t.Errorf("front matter content = %q; want %q", got, want)
	}
	want := "<h1 id=\"heading\">Heading</h1>\n"
	if got := string(normhtml.NormalizeHTML(out)); got != string(normhtml.NormalizeHTML([]byte(want))) {
		t.Errorf("ToHTML = %q; want %q", got, want)
	}
}

func TestHeadingIDDeduplication(t *testing.T) {
	source := "# Foo\n# Foo\n# Foo\n"
	got := string(ToHTML([]byte(source)))
	want := "<h1 id=\"foo\">Foo</h1>\n<h1 id=\"foo-1\">Foo</h1>\n<h1 id=\"foo-2\">Foo</h1>\n"
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("ToHTML(-want +got):\n%s", diff)
	}
}

func TestFootnotes(t *testing.T) {
	source := "Here is a note[^1].\n\n[^1]: The note body.\n"
	opts := DefaultOptions()
	opts.Footnotes = true
	out, _ := Parse(nil, []byte(source), &opts)
	got := string(normhtml.NormalizeHTML(out))
	want := string(normhtml.NormalizeHTML([]byte(
		`<p>Here is a note<sup class="footnote-ref"><a href="#fn-1" id="fnref-1">1</a></sup>.</p>` +
			`<section class="footnotes"><ol><li id="fn-1">` +
			`<p>The note body.</p>` +
			`<a href="#fnref-1" class="footnote-backref">&#x21a9;</a></li></ol></section>`,
	)))
	if got != want {
		t.Errorf("ToHTML =\n%s\nwant\n%s", got, want)
	}
}

func TestFootnoteLabelNormalization(t *testing.T) {
	// A reference and a definition whose labels differ only in case must
	// still resolve to the same footnote.
	source := "See[^My-Note].\n\n[^my-note]: body text\n"
	opts := DefaultOptions()
	opts.Footnotes = true
	out, _ := Parse(nil, []byte(source), &opts)
	got := string(out)
	if want := `id="fnref-my-note"`; !hasSubstring(got, want) {
		t.Errorf("ToHTML output %q does not contain normalized reference id %q", got, want)
	}
	if want := `id="fn-my-note"`; !hasSubstring(got, want) {
		t.Errorf("ToHTML output %q does not contain normalized definition id %q", got, want)
	}
}

func hasSubstring(haystack, needle string) bool {
	return contains([]byte(haystack), needle)
}

func TestAutolinkLiterals(t *testing.T) {
	opts := DefaultOptions()
	opts.AutolinkLiterals = true
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "bare https",
			source: "Visit https://example.com/path today.\n",
			want:   `<p>Visit <a href="https://example.com/path">https://example.com/path</a> today.</p>`,
		},
		{
			name:   "bare www",
			source: "Visit www.example.com today.\n",
			want:   `<p>Visit <a href="http://www.example.com">www.example.com</a> today.</p>`,
		},
		{
			name:   "trailing punctuation excluded",
			source: "(see https://example.com/a).\n",
			want:   `<p>(see <a href="https://example.com/a">https://example.com/a</a>).</p>`,
		},
		{
			name:   "bare email",
			source: "contact jane@example.com please\n",
			want:   `<p>contact <a href="mailto:jane@example.com">jane@example.com</a> please</p>`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, _ := Parse(nil, []byte(test.source), &opts)
			got := string(normhtml.NormalizeHTML(out))
			want := string(normhtml.NormalizeHTML([]byte(test.want)))
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ToHTML(-want +got):\n%s", diff)
			}
		})
	}
}

func TestAutolinkLiteralsDisabledByDefault(t *testing.T) {
	got := string(ToHTML([]byte("Visit https://example.com now.\n")))
	want := "<p>Visit https://example.com now.</p>\n"
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("ToHTML(-want +got):\n%s", diff)
	}
}

func TestTablesAndStrikethrough(t *testing.T) {
	source := "| A | B |\n| - | :-: |\n| x | ~~y~~ |\n"
	got := string(normhtml.NormalizeHTML(ToHTML([]byte(source))))
	want := string(normhtml.NormalizeHTML([]byte(
		"<table><thead><tr><th>A</th><th style=\"text-align:center\">B</th></tr></thead>" +
			"<tbody><tr><td>x</td><td style=\"text-align:center\"><del>y</del></td></tr></tbody></table>",
	)))
	if got != want {
		t.Errorf("ToHTML =\n%s\nwant\n%s", got, want)
	}
}

func TestTaskList(t *testing.T) {
	source := "- [ ] todo\n- [x] done\n"
	got := string(ToHTML([]byte(source)))
	if !hasSubstring(got, `type="checkbox" disabled`) {
		t.Errorf("ToHTML = %q, want unchecked checkbox markup", got)
	}
	if !hasSubstring(got, "checked") {
		t.Errorf("ToHTML = %q, want a checked checkbox", got)
	}
}

func TestNestedEmphasisFromOneDelimiterRun(t *testing.T) {
	got := string(ToHTML([]byte("***foo***\n")))
	want := "<p><em><strong>foo</strong></em></p>\n"
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("ToHTML(-want +got):\n%s", diff)
	}
}

func TestTaskMarkerRequiresTrailingSpace(t *testing.T) {
	got := string(ToHTML([]byte("- [x]foo\n")))
	if hasSubstring(got, `type="checkbox"`) {
		t.Errorf("ToHTML = %q, want \"[x]foo\" treated as literal text, not a task marker", got)
	}
	if !hasSubstring(got, "[x]foo") {
		t.Errorf("ToHTML = %q, want the literal text preserved", got)
	}
}

func TestDisallowedRawHTML(t *testing.T) {
	got := string(ToHTML([]byte("<script>alert(1)</script>\n\ntext <script>x</script> more\n")))
	if hasSubstring(got, "<script>") {
		t.Errorf("ToHTML = %q, want disallowed <script> tag defused", got)
	}
	if !hasSubstring(got, "&lt;script>") {
		t.Errorf("ToHTML = %q, want defused tag to keep its contents escaped-open", got)
	}
}

func TestAllowHTMLFalseEscapesEverything(t *testing.T) {
	opts := DefaultOptions()
	opts.AllowHTML = false
	out, _ := Parse(nil, []byte("<em>raw</em>\n"), &opts)
	got := string(out)
	if hasSubstring(got, "<em>raw</em>") {
		t.Errorf("ToHTML = %q, want raw HTML escaped when AllowHTML is false", got)
	}
}

func TestMathSpans(t *testing.T) {
	opts := DefaultOptions()
	opts.Math = true
	out, _ := Parse(nil, []byte("Energy is $E=mc^2$ exactly.\n\n$$\nx = y\n$$\n"), &opts)
	got := string(out)
	if !hasSubstring(got, `<code class="language-math math-inline">`) {
		t.Errorf("ToHTML = %q, want an inline math span", got)
	}
	if !hasSubstring(got, `<code class="language-math math-display">`) {
		t.Errorf("ToHTML = %q, want a display math span", got)
	}
}

func TestCallouts(t *testing.T) {
	opts := DefaultOptions()
	opts.Callouts = true
	out, _ := Parse(nil, []byte("> [!WARNING]\n> be careful\n"), &opts)
	got := string(out)
	if !hasSubstring(got, "markdown-alert-warning") {
		t.Errorf("ToHTML = %q, want a callout class", got)
	}
}
