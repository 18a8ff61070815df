package markdown

import (
	"bytes"
	"strings"
	"testing"
)

func render(t *testing.T, md string) string {
	t.Helper()
	var buf bytes.Buffer
	Render(&buf, md)
	return buf.String()
}

func TestRenderParagraphs(t *testing.T) {
	got := render(t, "first paragraph\n\nsecond paragraph")
	if !strings.Contains(got, "<p>first paragraph</p>") {
		t.Errorf("missing first paragraph in %q", got)
	}
	if !strings.Contains(got, "<p>second paragraph</p>") {
		t.Errorf("missing second paragraph in %q", got)
	}
}

func TestRenderHeadings(t *testing.T) {
	got := render(t, "# Title\n\n## Section\n\n### Sub")
	for _, want := range []string{"<h2>Title</h2>", "<h2>Section</h2>", "<h3>Sub</h3>"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
}

func TestRenderList(t *testing.T) {
	got := render(t, "- one\n- two\n\nafter")
	if !strings.Contains(got, "<ul><li>one</li><li>two</li></ul>") {
		t.Errorf("unexpected list output %q", got)
	}
}

func TestRenderCodeFence(t *testing.T) {
	got := render(t, "```\nfmt.Println(\"<hi>\")\n```")
	if !strings.Contains(got, "<pre><code>") || !strings.Contains(got, "&lt;hi&gt;") {
		t.Errorf("code fence not escaped: %q", got)
	}
}

func TestRenderBlockquote(t *testing.T) {
	got := render(t, "> quoted line")
	if !strings.Contains(got, "<blockquote><p>quoted line</p></blockquote>") {
		t.Errorf("unexpected quote output %q", got)
	}
}

func TestFormatInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "a **b** c", "a <strong>b</strong> c"},
		{"italic", "a *b* c", "a <em>b</em> c"},
		{"code", "run `go doc`", "run <code>go doc</code>"},
		{"link", "[home](/blog/1/)", `<a href="/blog/1/" rel="noopener">home</a>`},
		{"unsafe link dropped", "[x](javascript:alert(1))", "x"},
		{"html escaped", "<script>", "&lt;script&gt;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatInline(tt.in); got != tt.want {
				t.Errorf("FormatInline(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
