package views

import (
	"bytes"
	"fmt"

	"github.com/a-h/templ"
)

// Compose renders the write and edit pages from the same form.
func Compose(p Page, f ComposeForm) templ.Component {
	title := "Write"
	action := "/write/"
	if f.Editing {
		title = "Edit blog"
		action = fmt.Sprintf("/blog/%s/edit/", itoa64(f.BlogID))
	}
	return layout(p, PageMeta{Title: title}, func(b *bytes.Buffer) {
		b.WriteString(`<section class="compose-page">`)
		fmt.Fprintf(b, "<h1>%s</h1>", esc(title))
		if f.DraftSavedAt != "" {
			fmt.Fprintf(b, `<p class="draft-note">Draft restored from %s.</p>`, esc(f.DraftSavedAt))
		}

		// Autosave posts the form to the draft endpoint; blog id 0 means
		// a not-yet-published post.
		fmt.Fprintf(b, `<form method="post" action="%s" class="compose-form" hx-post="/blog/%s/draft/" hx-trigger="keyup changed delay:2s from:find textarea" hx-swap="none">`,
			action, itoa64(f.BlogID))
		b.WriteString(csrfField(p))

		field(b, "text", "title", "Title", f.Title, true)

		b.WriteString(`<label>Category<select name="categoryId" required>`)
		b.WriteString(`<option value="">Choose a category…</option>`)
		for _, cat := range f.Categories {
			sel := ""
			if cat.ID == f.CategoryID {
				sel = " selected"
			}
			fmt.Fprintf(b, `<option value="%s"%s>%s</option>`, itoa64(cat.ID), sel, esc(cat.Name))
		}
		b.WriteString("</select></label>")

		fmt.Fprintf(b, `<label>Content<textarea name="content" rows="18" required placeholder="Write in Markdown…">%s</textarea></label>`, esc(f.Content))
		field(b, "text", "tags", "Tags (comma separated)", f.Tags, false)

		b.WriteString(`<div class="compose-actions"><button type="submit">`)
		if f.Editing {
			b.WriteString("Save changes")
		} else {
			b.WriteString("Publish")
		}
		b.WriteString("</button></div></form></section>")
	})
}
