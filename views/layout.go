package views

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// component wraps a buffer-building function as a templ.Component so
// pages compose the same way generated templates would.
func component(build func(b *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b bytes.Buffer
		build(&b)
		_, err := w.Write(b.Bytes())
		return err
	})
}

// layout renders the shared document shell: head metadata, nav, flash
// banners, the page body, and the footer.
func layout(p Page, meta PageMeta, body func(b *bytes.Buffer)) templ.Component {
	return component(func(b *bytes.Buffer) {
		title := meta.Title
		if title == "" {
			title = p.Site.Name
		} else {
			title += " · " + p.Site.Name
		}
		desc := meta.Description
		if desc == "" {
			desc = p.Site.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}

		b.WriteString("<!DOCTYPE html><html lang=\"en\"><head>")
		b.WriteString(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		fmt.Fprintf(b, "<title>%s</title>", esc(title))
		if desc != "" {
			fmt.Fprintf(b, `<meta name="description" content="%s">`, esc(desc))
		}
		fmt.Fprintf(b, `<meta property="og:title" content="%s">`, esc(title))
		fmt.Fprintf(b, `<meta property="og:type" content="%s">`, esc(ogType))
		if meta.URL != "" {
			fmt.Fprintf(b, `<link rel="canonical" href="%s">`, esc(meta.URL))
			fmt.Fprintf(b, `<meta property="og:url" content="%s">`, esc(meta.URL))
		}
		b.WriteString(`<link rel="icon" href="/favicon.svg" type="image/svg+xml">`)
		b.WriteString(`<link rel="alternate" type="application/rss+xml" href="/feed.xml">`)
		b.WriteString(`<link rel="stylesheet" href="/public/styles.css">`)
		b.WriteString(`<script src="/public/htmx.min.js" defer></script>`)
		b.WriteString("</head><body>")

		nav(b, p)
		flash(b, p)

		b.WriteString(`<main class="site-main">`)
		body(b)
		b.WriteString("</main>")

		footer(b, p)
		b.WriteString("</body></html>")
	})
}

func nav(b *bytes.Buffer, p Page) {
	b.WriteString(`<header class="site-header"><nav class="site-nav">`)
	fmt.Fprintf(b, `<a class="brand" href="/">%s</a>`, esc(p.Site.Name))

	b.WriteString(`<div class="nav-links">`)
	navLink(b, p, "/", "Home")
	navLink(b, p, "/trending/", "Trending")
	navLink(b, p, "/categories/", "Categories")
	b.WriteString(`<form class="nav-search" method="get" action="/search/">`)
	b.WriteString(`<input type="search" name="q" placeholder="Search blogs…" aria-label="Search"></form>`)
	b.WriteString("</div>")

	b.WriteString(`<div class="nav-account">`)
	if p.User != nil {
		navLink(b, p, "/write/", "Write")
		fmt.Fprintf(b, `<a class="nav-bell" href="/notifications/" aria-label="Notifications">`)
		if p.Unread > 0 {
			fmt.Fprintf(b, `<span class="badge">%d</span>`, p.Unread)
		}
		b.WriteString("🔔</a>")
		fmt.Fprintf(b, `<a class="nav-avatar" href="/profile/" title="%s"><span>%s</span></a>`,
			esc(p.User.DisplayName()), esc(Initials(p.User.DisplayName())))
		fmt.Fprintf(b, `<form method="post" action="/logout/" class="inline">%s<button type="submit" class="nav-link">Logout</button></form>`, csrfField(p))
	} else {
		navLink(b, p, "/login/", "Login")
		fmt.Fprintf(b, `<a class="nav-cta" href="/register/">Sign up</a>`)
	}
	b.WriteString("</div></nav></header>")
}

func navLink(b *bytes.Buffer, p Page, href, label string) {
	cls := "nav-link"
	if p.Path == href {
		cls += " active"
	}
	fmt.Fprintf(b, `<a class="%s" href="%s">%s</a>`, cls, esc(href), esc(label))
}

func flash(b *bytes.Buffer, p Page) {
	if p.Flash != "" {
		fmt.Fprintf(b, `<div class="banner banner-ok" role="status">%s</div>`, esc(p.Flash))
	}
	if p.Error != "" {
		fmt.Fprintf(b, `<div class="banner banner-err" role="alert">%s</div>`, esc(p.Error))
	}
}

func footer(b *bytes.Buffer, p Page) {
	b.WriteString(`<footer class="site-footer">`)
	fmt.Fprintf(b, `<p>%s · <a href="/about/">About</a> · <a href="/feed.xml">RSS</a></p>`, esc(p.Site.Name))
	b.WriteString("</footer>")
}

// csrfField returns a hidden input carrying the request's CSRF token.
func csrfField(p Page) string {
	return `<input type="hidden" name="_csrf" value="` + esc(p.CSRF) + `">`
}

// NotFound is the 404 page.
func NotFound(p Page) templ.Component {
	return layout(p, PageMeta{Title: "Not Found"}, func(b *bytes.Buffer) {
		b.WriteString(`<section class="error-page"><h1>404</h1>`)
		b.WriteString(`<p>That page doesn't exist. It may have been removed.</p>`)
		b.WriteString(`<a class="button" href="/">Back to home</a></section>`)
	})
}

// ServerError is the 500 page.
func ServerError(p Page) templ.Component {
	return layout(p, PageMeta{Title: "Something went wrong"}, func(b *bytes.Buffer) {
		b.WriteString(`<section class="error-page"><h1>500</h1>`)
		b.WriteString(`<p>Something went wrong on our end. Please try again shortly.</p>`)
		b.WriteString(`<a class="button" href="/">Back to home</a></section>`)
	})
}

func itoa64(n int64) string {
	return strconv.FormatInt(n, 10)
}
