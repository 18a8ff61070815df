package views

import (
	"html"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/firatdemir47/blogsphere-web/api"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

func esc(s string) string {
	return html.EscapeString(s)
}

// BlogURL returns the site-relative path of a blog's detail page.
func BlogURL(id int64) string {
	return "/blog/" + strconv.FormatInt(id, 10) + "/"
}

// ReadingMinutes estimates reading time at roughly 200 words per minute,
// never reporting less than one minute.
func ReadingMinutes(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Excerpt trims content to at most max runes on a word boundary.
func Excerpt(content string, max int) string {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) <= max {
		return content
	}
	runes := []rune(content)
	cut := string(runes[:max])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}

// FormatDate renders a backend timestamp as "Jan 2, 2006". Unparseable
// input comes back unchanged so a bad date never blanks a card.
func FormatDate(raw string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return raw
}

// AuthorName prefers the denormalized author_name field and falls back
// to the embedded author record.
func AuthorName(b api.Blog) string {
	if b.AuthorName != "" {
		return b.AuthorName
	}
	return "Unknown"
}

// Initials returns up to two uppercase initials for the avatar badge.
func Initials(name string) string {
	fields := strings.Fields(name)
	var out []rune
	for _, f := range fields {
		r, _ := utf8.DecodeRuneInString(f)
		out = append(out, r)
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return strings.ToUpper(string(out))
}

// JoinTagNames formats attached tags as a comma-separated string for
// the compose form field.
func JoinTagNames(tags []api.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

// PathEscape wraps url.PathEscape for use in component expressions.
func PathEscape(s string) string {
	return url.PathEscape(s)
}
