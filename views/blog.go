package views

import (
	"bytes"
	"fmt"

	"github.com/a-h/templ"

	"github.com/firatdemir47/blogsphere-web/api"
	"github.com/firatdemir47/blogsphere-web/markdown"
)

// BlogDetail renders the full blog page: content, reaction bar,
// bookmark button, tags, comments and related posts.
func BlogDetail(p Page, bp BlogPage) templ.Component {
	blog := bp.Blog
	meta := PageMeta{
		Title:       blog.Title,
		Description: Excerpt(blog.Content, 160),
		URL:         buildURL(p.Site.URL, "blog", itoa64(blog.ID)),
		OGType:      "article",
	}
	return layout(p, meta, func(b *bytes.Buffer) {
		b.WriteString(`<article class="blog-detail">`)

		b.WriteString(`<header class="blog-header">`)
		if blog.CategoryName != "" {
			fmt.Fprintf(b, `<a class="card-category" href="/category/%s/">%s</a>`,
				PathEscape(blog.CategoryName), esc(blog.CategoryName))
		}
		fmt.Fprintf(b, "<h1>%s</h1>", esc(blog.Title))
		b.WriteString(`<div class="card-meta">`)
		fmt.Fprintf(b, `<span class="author">%s</span>`, esc(AuthorName(blog)))
		fmt.Fprintf(b, `<time>%s</time>`, esc(FormatDate(blog.CreatedAt)))
		fmt.Fprintf(b, `<span>%d min read</span>`, bp.Minutes)
		fmt.Fprintf(b, `<span>%d views</span>`, blog.ViewCount)
		b.WriteString("</div>")
		if bp.CanEdit {
			fmt.Fprintf(b, `<a class="button button-small" href="/blog/%s/edit/">Edit</a>`, itoa64(blog.ID))
		}
		b.WriteString("</header>")

		b.WriteString(`<div class="blog-content">`)
		markdown.Render(b, blog.Content)
		b.WriteString("</div>")

		if len(bp.Tags) > 0 {
			b.WriteString(`<div class="tag-row">`)
			for _, t := range bp.Tags {
				fmt.Fprintf(b, `<span class="tag-pill" style="--tag-color:%s">%s</span>`, esc(t.Color), esc(t.Name))
			}
			b.WriteString("</div>")
		}

		b.WriteString(`<div class="blog-actions">`)
		reactionBar(b, p, blog.ID, bp.Reaction, "")
		bookmarkButton(b, p, blog.ID, bp.Bookmarked, "")
		b.WriteString("</div>")

		commentSection(b, p, blog.ID, bp.Comments)

		if len(bp.Related) > 0 {
			b.WriteString(`<aside class="related"><h2>More like this</h2><ul>`)
			for _, r := range bp.Related {
				fmt.Fprintf(b, `<li><a href="%s">%s</a></li>`, BlogURL(r.ID), esc(r.Title))
			}
			b.WriteString("</ul></aside>")
		}

		b.WriteString("</article>")
	})
}

// ReactionBar is the standalone reaction partial, the swap target after
// a toggle request.
func ReactionBar(p Page, blogID int64, rv ReactionView) templ.Component {
	return component(func(b *bytes.Buffer) {
		reactionBar(b, p, blogID, rv, "")
	})
}

// ReactionFailure re-renders the bar unchanged with the server's
// rejection message so a refused toggle is explained in place.
func ReactionFailure(p Page, blogID int64, rv ReactionView, notice string) templ.Component {
	return component(func(b *bytes.Buffer) {
		reactionBar(b, p, blogID, rv, notice)
	})
}

func reactionBar(b *bytes.Buffer, p Page, blogID int64, rv ReactionView, notice string) {
	fmt.Fprintf(b, `<div class="reaction-bar" id="reactions-%s">`, itoa64(blogID))
	reactionButton(b, p, blogID, "like", "👍", rv.LikeCount, rv.UserReaction == "like")
	reactionButton(b, p, blogID, "dislike", "👎", rv.DislikeCount, rv.UserReaction == "dislike")
	if notice != "" {
		fmt.Fprintf(b, `<p class="action-notice" role="alert">%s</p>`, esc(notice))
	}
	b.WriteString("</div>")
}

func reactionButton(b *bytes.Buffer, p Page, blogID int64, kind, icon string, count int, active bool) {
	cls := "reaction-btn"
	if active {
		cls += " active"
	}
	if p.User == nil {
		fmt.Fprintf(b, `<a class="%s" href="/login/">%s <span class="count">%d</span></a>`, cls, icon, count)
		return
	}
	fmt.Fprintf(b, `<form method="post" action="/blog/%s/reactions/%s/" hx-post="/blog/%s/reactions/%s/" hx-target="#reactions-%s" hx-swap="outerHTML" class="inline">`,
		itoa64(blogID), kind, itoa64(blogID), kind, itoa64(blogID))
	b.WriteString(csrfField(p))
	fmt.Fprintf(b, `<button type="submit" class="%s">%s <span class="count">%d</span></button></form>`, cls, icon, count)
}

// BookmarkButton is the standalone bookmark partial.
func BookmarkButton(p Page, blogID int64, bookmarked bool) templ.Component {
	return component(func(b *bytes.Buffer) {
		bookmarkButton(b, p, blogID, bookmarked, "")
	})
}

// BookmarkFailure re-renders the button unchanged with the server's
// rejection message.
func BookmarkFailure(p Page, blogID int64, bookmarked bool, notice string) templ.Component {
	return component(func(b *bytes.Buffer) {
		bookmarkButton(b, p, blogID, bookmarked, notice)
	})
}

func bookmarkButton(b *bytes.Buffer, p Page, blogID int64, bookmarked bool, notice string) {
	label, cls := "☆ Bookmark", "bookmark-btn"
	if bookmarked {
		label, cls = "★ Bookmarked", "bookmark-btn active"
	}
	fmt.Fprintf(b, `<div class="bookmark" id="bookmark-%s">`, itoa64(blogID))
	if p.User == nil {
		fmt.Fprintf(b, `<a class="%s" href="/login/">%s</a>`, cls, label)
	} else {
		fmt.Fprintf(b, `<form method="post" action="/blog/%s/bookmark/" hx-post="/blog/%s/bookmark/" hx-target="#bookmark-%s" hx-swap="outerHTML" class="inline">`,
			itoa64(blogID), itoa64(blogID), itoa64(blogID))
		b.WriteString(csrfField(p))
		fmt.Fprintf(b, `<button type="submit" class="%s">%s</button></form>`, cls, label)
	}
	if notice != "" {
		fmt.Fprintf(b, `<p class="action-notice" role="alert">%s</p>`, esc(notice))
	}
	b.WriteString("</div>")
}

// CommentList is the standalone comment section partial.
func CommentList(p Page, blogID int64, comments []api.Comment) templ.Component {
	return component(func(b *bytes.Buffer) {
		commentSection(b, p, blogID, comments)
	})
}

func commentSection(b *bytes.Buffer, p Page, blogID int64, comments []api.Comment) {
	fmt.Fprintf(b, `<section class="comments" id="comments-%s">`, itoa64(blogID))
	fmt.Fprintf(b, "<h2>Comments (%d)</h2>", len(comments))

	if p.User != nil {
		fmt.Fprintf(b, `<form method="post" action="/blog/%s/comments/" hx-post="/blog/%s/comments/" hx-target="#comments-%s" hx-swap="outerHTML" class="comment-form">`,
			itoa64(blogID), itoa64(blogID), itoa64(blogID))
		b.WriteString(csrfField(p))
		b.WriteString(`<textarea name="content" rows="3" required placeholder="Add a comment…"></textarea>`)
		b.WriteString(`<button type="submit">Post comment</button></form>`)
	} else {
		b.WriteString(`<p class="empty"><a href="/login/">Log in</a> to join the discussion.</p>`)
	}

	if len(comments) == 0 {
		b.WriteString(`<p class="empty">No comments yet.</p>`)
	}
	b.WriteString(`<ul class="comment-list">`)
	for _, c := range comments {
		commentItem(b, p, c)
	}
	b.WriteString("</ul></section>")
}

func commentItem(b *bytes.Buffer, p Page, c api.Comment) {
	fmt.Fprintf(b, `<li class="comment" id="comment-%s">`, itoa64(c.ID))
	b.WriteString(`<div class="comment-head">`)
	fmt.Fprintf(b, `<span class="avatar">%s</span><span class="author">%s</span><time>%s</time>`,
		esc(Initials(c.AuthorName)), esc(c.AuthorName), esc(FormatDate(c.CreatedAt)))
	b.WriteString("</div>")
	fmt.Fprintf(b, `<p class="comment-body">%s</p>`, esc(c.Content))

	if p.User != nil && p.User.ID == c.AuthorID {
		b.WriteString(`<div class="comment-actions">`)
		fmt.Fprintf(b, `<details class="comment-edit"><summary>Edit</summary>`)
		fmt.Fprintf(b, `<form method="post" action="/blog/%s/comments/%s/" hx-post="/blog/%s/comments/%s/" hx-target="#comments-%s" hx-swap="outerHTML">`,
			itoa64(c.BlogID), itoa64(c.ID), itoa64(c.BlogID), itoa64(c.ID), itoa64(c.BlogID))
		b.WriteString(csrfField(p))
		fmt.Fprintf(b, `<textarea name="content" rows="3" required>%s</textarea>`, esc(c.Content))
		b.WriteString(`<button type="submit">Save</button></form></details>`)
		fmt.Fprintf(b, `<form method="post" action="/blog/%s/comments/%s/" hx-delete="/blog/%s/comments/%s/" hx-target="#comments-%s" hx-swap="outerHTML" hx-confirm="Delete this comment?" class="inline">`,
			itoa64(c.BlogID), itoa64(c.ID), itoa64(c.BlogID), itoa64(c.ID), itoa64(c.BlogID))
		b.WriteString(csrfField(p))
		b.WriteString(`<input type="hidden" name="_method" value="DELETE">`)
		b.WriteString(`<button type="submit" class="danger">Delete</button></form>`)
		b.WriteString("</div>")
	}
	b.WriteString("</li>")
}
