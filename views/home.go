package views

import (
	"bytes"
	"fmt"

	"github.com/a-h/templ"
	"github.com/firatdemir47/blogsphere-web/api"
)

// Home renders the landing page: latest blogs with a popular sidebar
// and the category strip.
func Home(p Page, cards []BlogCard, popular []api.Blog, categories []api.Category, page int, hasMore bool) templ.Component {
	meta := PageMeta{URL: buildURL(p.Site.URL)}
	return layout(p, meta, func(b *bytes.Buffer) {
		b.WriteString(`<section class="hero">`)
		fmt.Fprintf(b, "<h1>%s</h1>", esc(p.Site.Name))
		if p.Site.Description != "" {
			fmt.Fprintf(b, "<p>%s</p>", esc(p.Site.Description))
		}
		b.WriteString("</section>")

		categoryStrip(b, categories)

		b.WriteString(`<div class="home-grid"><section class="blog-list">`)
		if len(cards) == 0 {
			b.WriteString(`<p class="empty">No blogs yet. Be the first to <a href="/write/">write one</a>.</p>`)
		}
		for _, card := range cards {
			blogCard(b, card)
		}
		pagination(b, "/", page, hasMore)
		b.WriteString("</section>")

		b.WriteString(`<aside class="sidebar"><h2>Popular</h2><ol class="popular-list">`)
		for _, blog := range popular {
			fmt.Fprintf(b, `<li><a href="%s">%s</a><span class="views">%d views</span></li>`,
				BlogURL(blog.ID), esc(blog.Title), blog.ViewCount)
		}
		b.WriteString("</ol></aside></div>")
	})
}

func blogCard(b *bytes.Buffer, card BlogCard) {
	blog := card.Blog
	b.WriteString(`<article class="blog-card">`)
	if blog.CategoryName != "" {
		fmt.Fprintf(b, `<a class="card-category" href="/category/%s/">%s</a>`,
			PathEscape(blog.CategoryName), esc(blog.CategoryName))
	}
	fmt.Fprintf(b, `<h2><a href="%s">%s</a></h2>`, BlogURL(blog.ID), esc(blog.Title))
	if card.Excerpt != "" {
		fmt.Fprintf(b, `<p class="card-excerpt">%s</p>`, esc(card.Excerpt))
	}
	b.WriteString(`<div class="card-meta">`)
	fmt.Fprintf(b, `<span class="author">%s</span>`, esc(AuthorName(blog)))
	fmt.Fprintf(b, `<time>%s</time>`, esc(FormatDate(blog.CreatedAt)))
	fmt.Fprintf(b, `<span>%d min read</span>`, card.Minutes)
	fmt.Fprintf(b, `<span class="counts">👍 %d · 👎 %d · %d views</span>`,
		blog.LikeCount, blog.DislikeCount, blog.ViewCount)
	b.WriteString("</div></article>")
}

func categoryStrip(b *bytes.Buffer, categories []api.Category) {
	if len(categories) == 0 {
		return
	}
	b.WriteString(`<div class="category-strip">`)
	for _, cat := range categories {
		fmt.Fprintf(b, `<a class="category-pill" style="--cat-color:%s" href="/category/%s/">%s %s</a>`,
			esc(cat.Color), PathEscape(cat.Name), esc(cat.Icon), esc(cat.Name))
	}
	b.WriteString("</div>")
}

func pagination(b *bytes.Buffer, base string, page int, hasMore bool) {
	if page <= 1 && !hasMore {
		return
	}
	b.WriteString(`<nav class="pagination">`)
	if page > 1 {
		fmt.Fprintf(b, `<a href="%s?page=%d">&larr; Newer</a>`, esc(base), page-1)
	}
	fmt.Fprintf(b, `<span>Page %d</span>`, page)
	if hasMore {
		fmt.Fprintf(b, `<a href="%s?page=%d">Older &rarr;</a>`, esc(base), page+1)
	}
	b.WriteString("</nav>")
}

// Trending renders the most viewed blogs.
func Trending(p Page, cards []BlogCard) templ.Component {
	meta := PageMeta{Title: "Trending", URL: buildURL(p.Site.URL, "trending")}
	return layout(p, meta, func(b *bytes.Buffer) {
		b.WriteString(`<section class="blog-list"><h1>Trending</h1>`)
		if len(cards) == 0 {
			b.WriteString(`<p class="empty">Nothing is trending right now.</p>`)
		}
		for i, card := range cards {
			fmt.Fprintf(b, `<span class="rank">#%d</span>`, i+1)
			blogCard(b, card)
		}
		b.WriteString("</section>")
	})
}

// Search renders search results for a query.
func Search(p Page, query string, cards []BlogCard) templ.Component {
	meta := PageMeta{Title: "Search", URL: buildURL(p.Site.URL, "search")}
	return layout(p, meta, func(b *bytes.Buffer) {
		b.WriteString(`<section class="blog-list">`)
		fmt.Fprintf(b, `<form class="search-form" method="get" action="/search/"><input type="search" name="q" value="%s" placeholder="Search blogs…"><button type="submit">Search</button></form>`, esc(query))
		if query == "" {
			b.WriteString(`<p class="empty">Type something to search.</p>`)
		} else if len(cards) == 0 {
			fmt.Fprintf(b, `<p class="empty">No results for &ldquo;%s&rdquo;.</p>`, esc(query))
		} else {
			fmt.Fprintf(b, `<h1>Results for &ldquo;%s&rdquo;</h1>`, esc(query))
			for _, card := range cards {
				blogCard(b, card)
			}
		}
		b.WriteString("</section>")
	})
}

// Categories renders the category grid with blog counts.
func Categories(p Page, categories []api.Category) templ.Component {
	meta := PageMeta{Title: "Categories", URL: buildURL(p.Site.URL, "categories")}
	return layout(p, meta, func(b *bytes.Buffer) {
		b.WriteString(`<section class="category-grid"><h1>Categories</h1><div class="grid">`)
		for _, cat := range categories {
			fmt.Fprintf(b, `<a class="category-card" style="--cat-color:%s" href="/category/%s/">`,
				esc(cat.Color), PathEscape(cat.Name))
			fmt.Fprintf(b, `<span class="icon">%s</span><h2>%s</h2>`, esc(cat.Icon), esc(cat.Name))
			if cat.Description != "" {
				fmt.Fprintf(b, `<p>%s</p>`, esc(cat.Description))
			}
			fmt.Fprintf(b, `<span class="count">%d blogs</span></a>`, cat.BlogCount)
		}
		b.WriteString("</div></section>")
	})
}

// CategoryDetail renders one category's blogs.
func CategoryDetail(p Page, category api.Category, cards []BlogCard) templ.Component {
	meta := PageMeta{Title: category.Name, URL: buildURL(p.Site.URL, "category", category.Name)}
	return layout(p, meta, func(b *bytes.Buffer) {
		b.WriteString(`<section class="blog-list">`)
		fmt.Fprintf(b, `<h1>%s %s</h1>`, esc(category.Icon), esc(category.Name))
		if category.Description != "" {
			fmt.Fprintf(b, `<p class="lede">%s</p>`, esc(category.Description))
		}
		if len(cards) == 0 {
			b.WriteString(`<p class="empty">No blogs in this category yet.</p>`)
		}
		for _, card := range cards {
			blogCard(b, card)
		}
		b.WriteString("</section>")
	})
}

// About renders the static about page.
func About(p Page) templ.Component {
	meta := PageMeta{Title: "About", URL: buildURL(p.Site.URL, "about")}
	return layout(p, meta, func(b *bytes.Buffer) {
		b.WriteString(`<section class="about-page"><h1>About</h1>`)
		fmt.Fprintf(b, `<p>%s is a place to write, read and discuss. Sign up to publish your own blogs, react to what you read, and keep a reading list with bookmarks.</p>`, esc(p.Site.Name))
		b.WriteString(`<p>Questions? Reach out through the profile of any author.</p></section>`)
	})
}
