// Package markdown renders blog content as HTML. Blog bodies are plain
// text with light Markdown: paragraphs, headings, emphasis, inline code,
// links, fenced code blocks, quotes and lists. Raw HTML is always escaped.
package markdown

import (
	"bytes"
	"html"
	"net/url"
	"regexp"
	"strings"
)

var (
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*`)
	reInlineCode = regexp.MustCompile("`([^`]+)`")
	reLink       = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
)

// Render writes the HTML representation of md to buf.
func Render(buf *bytes.Buffer, md string) {
	lines := strings.Split(md, "\n")
	inPara := false
	inList := false
	inQuote := false
	inCode := false

	flushPara := func() {
		if inPara {
			buf.WriteString("</p>")
			inPara = false
		}
	}
	flushList := func() {
		if inList {
			buf.WriteString("</ul>")
			inList = false
		}
	}
	flushQuote := func() {
		if inQuote {
			buf.WriteString("</blockquote>")
			inQuote = false
		}
	}
	flushAll := func() {
		flushPara()
		flushList()
		flushQuote()
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			if inCode {
				buf.WriteString("</code></pre>")
				inCode = false
			} else {
				flushAll()
				buf.WriteString("<pre><code>")
				inCode = true
			}
			continue
		}
		if inCode {
			buf.WriteString(html.EscapeString(line))
			buf.WriteString("\n")
			continue
		}

		switch {
		case trimmed == "":
			flushAll()

		case strings.HasPrefix(trimmed, "### "):
			flushAll()
			buf.WriteString("<h3>" + FormatInline(strings.TrimPrefix(trimmed, "### ")) + "</h3>")

		case strings.HasPrefix(trimmed, "## "):
			flushAll()
			buf.WriteString("<h2>" + FormatInline(strings.TrimPrefix(trimmed, "## ")) + "</h2>")

		case strings.HasPrefix(trimmed, "# "):
			flushAll()
			buf.WriteString("<h2>" + FormatInline(strings.TrimPrefix(trimmed, "# ")) + "</h2>")

		case strings.HasPrefix(trimmed, "> "):
			flushPara()
			flushList()
			if !inQuote {
				buf.WriteString("<blockquote>")
				inQuote = true
			}
			buf.WriteString("<p>" + FormatInline(strings.TrimPrefix(trimmed, "> ")) + "</p>")

		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			flushPara()
			flushQuote()
			if !inList {
				buf.WriteString("<ul>")
				inList = true
			}
			buf.WriteString("<li>" + FormatInline(trimmed[2:]) + "</li>")

		default:
			flushList()
			flushQuote()
			if inPara {
				buf.WriteString("<br>")
			} else {
				buf.WriteString("<p>")
				inPara = true
			}
			buf.WriteString(FormatInline(trimmed))
		}
	}
	flushAll()
	if inCode {
		buf.WriteString("</code></pre>")
	}
}

// FormatInline escapes a line and applies inline markup: bold, italic,
// inline code, and links. Only http(s) and relative link targets survive.
func FormatInline(s string) string {
	s = html.EscapeString(s)
	s = reInlineCode.ReplaceAllString(s, "<code>$1</code>")
	s = reBold.ReplaceAllString(s, "<strong>$1</strong>")
	s = reItalic.ReplaceAllString(s, "<em>$1</em>")
	s = reLink.ReplaceAllStringFunc(s, func(m string) string {
		parts := reLink.FindStringSubmatch(m)
		text, target := parts[1], parts[2]
		if !safeLink(target) {
			return text
		}
		return `<a href="` + target + `" rel="noopener">` + text + `</a>`
	})
	return s
}

func safeLink(target string) bool {
	if strings.HasPrefix(target, "/") {
		return true
	}
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
