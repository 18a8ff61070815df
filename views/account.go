package views

import (
	"bytes"
	"fmt"

	"github.com/a-h/templ"
	"github.com/firatdemir47/blogsphere-web/api"
)

// Profile renders the account page: profile form, password change form,
// and the user's own blogs.
func Profile(p Page, user api.User, myBlogs []BlogCard) templ.Component {
	return layout(p, PageMeta{Title: "Profile"}, func(b *bytes.Buffer) {
		b.WriteString(`<section class="profile-page">`)
		fmt.Fprintf(b, `<div class="profile-head"><span class="avatar avatar-lg">%s</span>`, esc(Initials(user.DisplayName())))
		fmt.Fprintf(b, `<div><h1>%s</h1><p>@%s · joined %s</p>`,
			esc(user.DisplayName()), esc(user.Username), esc(FormatDate(user.CreatedAt)))
		b.WriteString(`<form method="post" action="/profile/avatar/" enctype="multipart/form-data" class="avatar-form">`)
		b.WriteString(csrfField(p))
		b.WriteString(`<input type="file" name="avatar" accept="image/*" required>`)
		b.WriteString(`<button type="submit" class="button button-small">Update avatar</button></form>`)
		b.WriteString(`</div></div>`)

		b.WriteString(`<div class="profile-forms"><form method="post" action="/profile/" class="auth-form"><h2>Profile</h2>`)
		b.WriteString(csrfField(p))
		field(b, "text", "firstName", "First name", user.FirstName, false)
		field(b, "text", "lastName", "Last name", user.LastName, false)
		field(b, "email", "email", "Email", user.Email, true)
		b.WriteString(`<button type="submit">Save changes</button></form>`)

		b.WriteString(`<form method="post" action="/profile/password/" class="auth-form"><h2>Change password</h2>`)
		b.WriteString(csrfField(p))
		field(b, "password", "current", "Current password", "", true)
		field(b, "password", "password", "New password", "", true)
		field(b, "password", "confirm", "Confirm new password", "", true)
		b.WriteString(`<button type="submit">Change password</button></form></div>`)

		b.WriteString(`<h2>Your blogs</h2>`)
		if len(myBlogs) == 0 {
			b.WriteString(`<p class="empty">You haven't published anything yet. <a href="/write/">Start writing</a>.</p>`)
		}
		for _, card := range myBlogs {
			blogCard(b, card)
		}
		b.WriteString("</section>")
	})
}

// Bookmarks renders the reading list.
func Bookmarks(p Page, cards []BlogCard) templ.Component {
	return layout(p, PageMeta{Title: "Bookmarks"}, func(b *bytes.Buffer) {
		b.WriteString(`<section class="blog-list"><h1>Bookmarks</h1>`)
		if len(cards) == 0 {
			b.WriteString(`<p class="empty">Your reading list is empty. Bookmark a blog to keep it here.</p>`)
		}
		for _, card := range cards {
			blogCard(b, card)
		}
		b.WriteString("</section>")
	})
}

// MyComments renders the user's comments across all blogs.
func MyComments(p Page, comments []api.Comment) templ.Component {
	return layout(p, PageMeta{Title: "My comments"}, func(b *bytes.Buffer) {
		b.WriteString(`<section class="comments-page"><h1>My comments</h1>`)
		if len(comments) == 0 {
			b.WriteString(`<p class="empty">You haven't commented on anything yet.</p>`)
		}
		b.WriteString(`<ul class="comment-list">`)
		for _, c := range comments {
			fmt.Fprintf(b, `<li class="comment"><div class="comment-head">on <a href="%s">%s</a><time>%s</time></div>`,
				BlogURL(c.BlogID), esc(c.BlogTitle), esc(FormatDate(c.CreatedAt)))
			fmt.Fprintf(b, `<p class="comment-body">%s</p></li>`, esc(c.Content))
		}
		b.WriteString("</ul></section>")
	})
}

// Notifications renders the notification inbox.
func Notifications(p Page, items []api.Notification) templ.Component {
	return layout(p, PageMeta{Title: "Notifications"}, func(b *bytes.Buffer) {
		b.WriteString(`<section class="notifications-page"><div class="notifications-head"><h1>Notifications</h1>`)
		if p.Unread > 0 {
			fmt.Fprintf(b, `<form method="post" action="/notifications/read-all/" class="inline">%s<button type="submit" class="button button-small">Mark all read</button></form>`, csrfField(p))
		}
		b.WriteString("</div>")
		if len(items) == 0 {
			b.WriteString(`<p class="empty">Nothing here yet.</p>`)
		}
		b.WriteString(`<ul class="notification-list">`)
		for _, n := range items {
			cls := "notification"
			if !n.IsRead {
				cls += " unread"
			}
			fmt.Fprintf(b, `<li class="%s"><div><strong>%s</strong><p>%s</p><time>%s</time></div>`,
				cls, esc(n.Title), esc(n.Message), esc(FormatDate(n.CreatedAt)))
			if !n.IsRead {
				fmt.Fprintf(b, `<form method="post" action="/notifications/%s/read/" class="inline">%s<button type="submit" class="button button-small">Mark read</button></form>`,
					itoa64(n.ID), csrfField(p))
			}
			b.WriteString("</li>")
		}
		b.WriteString("</ul></section>")
	})
}
