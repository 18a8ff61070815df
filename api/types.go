package api

// Blog is the backend's blog projection as rendered by list and detail pages.
// Timestamps stay as the backend's strings; formatting happens in views.
type Blog struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	AuthorID     int64  `json:"author_id"`
	AuthorName   string `json:"author_name"`
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	ViewCount    int    `json:"view_count"`
	LikeCount    int    `json:"like_count"`
	DislikeCount int    `json:"dislike_count"`
}

// Comment belongs to one blog and one author.
type Comment struct {
	ID         int64  `json:"id"`
	BlogID     int64  `json:"blog_id"`
	BlogTitle  string `json:"blog_title,omitempty"`
	AuthorID   int64  `json:"author_id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
}

// Category groups blogs; icon and color drive the category grid.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	BlogCount   int    `json:"blog_count"`
}

// User is the profile object the backend returns (and the session persists).
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CreatedAt string `json:"created_at,omitempty"`
}

// DisplayName prefers the first name, falling back to the username.
func (u User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// Tag is one entry of the site-wide tag catalog.
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Notification is a single user notification.
type Notification struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// ReactionCounts is the authoritative counter block some toggle responses carry.
type ReactionCounts struct {
	LikeCount    int `json:"likeCount"`
	DislikeCount int `json:"dislikeCount"`
}
