package blogsphere

import (
	"errors"
	"testing"

	"github.com/firatdemir47/blogsphere-web/api"
)

func TestPaginate(t *testing.T) {
	blogs := make([]api.Blog, 25)
	for i := range blogs {
		blogs[i] = api.Blog{ID: int64(i + 1)}
	}

	tests := []struct {
		name     string
		page     int
		wantLen  int
		wantMore bool
		first    int64
	}{
		{"first page", 1, 10, true, 1},
		{"middle page", 2, 10, true, 11},
		{"last partial page", 3, 5, false, 21},
		{"past the end", 4, 0, false, 0},
		{"zero clamps to one", 0, 10, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slice, more := paginate(blogs, tt.page, 10)
			if len(slice) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(slice), tt.wantLen)
			}
			if more != tt.wantMore {
				t.Errorf("hasMore = %v, want %v", more, tt.wantMore)
			}
			if tt.wantLen > 0 && slice[0].ID != tt.first {
				t.Errorf("first id = %d, want %d", slice[0].ID, tt.first)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unauthorized", api.ErrUnauthorized, "Your session has expired. Please log in again."},
		{"not found", api.ErrNotFound, "That item no longer exists."},
		{"server message passes through", &api.Error{StatusCode: 400, Message: "Title is too long"}, "Title is too long"},
		{"blank server message gets generic text", &api.Error{StatusCode: 500}, "Something went wrong. Please try again."},
		{"transport error gets generic text", errors.New("dial tcp: connection refused"), "Something went wrong. Please try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := userMessage(tt.err); got != tt.want {
				t.Errorf("userMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBlogCards(t *testing.T) {
	cards := blogCards([]api.Blog{{ID: 1, Title: "Hi", Content: "some words here"}})
	if len(cards) != 1 {
		t.Fatalf("len = %d, want 1", len(cards))
	}
	if cards[0].Minutes != 1 {
		t.Errorf("minutes = %d, want 1", cards[0].Minutes)
	}
	if cards[0].Excerpt == "" {
		t.Error("excerpt is empty")
	}
}
