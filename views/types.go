package views

import "github.com/firatdemir47/blogsphere-web/api"

// Site holds site-wide settings populated from environment variables.
// Every handler passes this to templates so nothing is hardcoded.
type Site struct {
	Name        string // SITE_NAME  (default "BlogSphere")
	URL         string // SITE_URL   (default "http://localhost:8080")
	Description string // SITE_DESCRIPTION
}

// Page carries per-request chrome state into the layout: the signed-in
// user (nil when anonymous), the CSRF token for forms, the current path
// for nav highlighting, and one-shot flash/error banners.
type Page struct {
	Site   Site
	User   *api.User
	CSRF   string
	Path   string
	Unread int
	Flash  string
	Error  string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string
	OGType      string // "website" or "article"
}

// BlogCard is a blog summary as shown in listings.
type BlogCard struct {
	Blog    api.Blog
	Excerpt string
	Minutes int
}

// ReactionView is the reaction state rendered in the reaction bar.
type ReactionView struct {
	LikeCount    int
	DislikeCount int
	UserReaction string // "like", "dislike" or ""
}

// BlogPage is everything the detail page needs in one place.
type BlogPage struct {
	Blog       api.Blog
	Minutes    int
	Tags       []api.Tag
	Comments   []api.Comment
	Reaction   ReactionView
	Bookmarked bool
	CanEdit    bool
	Related    []api.Blog
}

// ComposeForm backs the write and edit pages. Tags is comma-separated
// as typed into the form field.
type ComposeForm struct {
	BlogID       int64
	Title        string
	Content      string
	CategoryID   int64
	Tags         string
	Categories   []api.Category
	Editing      bool
	DraftSavedAt string
}
