package blogsphere

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *LocalStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "local.db")
	s, err := OpenLocalStore(path)
	if err != nil {
		t.Fatalf("failed to open local store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoadDraft(t *testing.T) {
	s := setupTestStore(t)

	draft := Draft{
		ID:         "sess-1:0",
		SessionID:  "sess-1",
		BlogID:     0,
		Title:      "Working title",
		Content:    "Half-finished thoughts.",
		CategoryID: 3,
		Tags:       []string{"go", "testing"},
	}
	if err := s.SaveDraft(draft); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	got, err := s.LatestDraft("sess-1", 0)
	if err != nil {
		t.Fatalf("load draft: %v", err)
	}
	if got.Title != draft.Title || got.Content != draft.Content {
		t.Errorf("loaded draft = %q/%q, want %q/%q", got.Title, got.Content, draft.Title, draft.Content)
	}
	if got.CategoryID != 3 {
		t.Errorf("category id = %d, want 3", got.CategoryID)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "go" || got.Tags[1] != "testing" {
		t.Errorf("tags = %v, want [go testing]", got.Tags)
	}
	if got.SavedAt == "" {
		t.Error("saved_at was not stamped")
	}
}

func TestSaveDraftUpserts(t *testing.T) {
	s := setupTestStore(t)

	first := Draft{ID: "sess-1:7", SessionID: "sess-1", BlogID: 7, Title: "v1", Content: "a"}
	second := Draft{ID: "sess-1:7", SessionID: "sess-1", BlogID: 7, Title: "v2", Content: "b"}
	if err := s.SaveDraft(first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := s.SaveDraft(second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := s.LatestDraft("sess-1", 7)
	if err != nil {
		t.Fatalf("load draft: %v", err)
	}
	if got.Title != "v2" {
		t.Errorf("title = %q, want replacement v2", got.Title)
	}
}

func TestLatestDraftMissing(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.LatestDraft("nobody", 0)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("missing draft error = %v, want sql.ErrNoRows", err)
	}
}

func TestDeleteDrafts(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SaveDraft(Draft{ID: "sess-1:0", SessionID: "sess-1", Title: "x", Content: "y"}); err != nil {
		t.Fatalf("save draft: %v", err)
	}
	if err := s.DeleteDrafts("sess-1", 0); err != nil {
		t.Fatalf("delete drafts: %v", err)
	}
	if _, err := s.LatestDraft("sess-1", 0); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("draft survived delete: %v", err)
	}
}

func TestMarkViewedOncePerSession(t *testing.T) {
	s := setupTestStore(t)

	first, err := s.MarkViewed("sess-1", 42)
	if err != nil {
		t.Fatalf("mark viewed: %v", err)
	}
	if !first {
		t.Error("first view not reported as first")
	}

	again, err := s.MarkViewed("sess-1", 42)
	if err != nil {
		t.Fatalf("mark viewed again: %v", err)
	}
	if again {
		t.Error("repeat view reported as first")
	}

	other, err := s.MarkViewed("sess-2", 42)
	if err != nil {
		t.Fatalf("mark viewed other session: %v", err)
	}
	if !other {
		t.Error("different session's first view not reported as first")
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "go", []string{"go"}},
		{"spaced", " go , web ", []string{"go", "web"}},
		{"trailing comma", "go,web,", []string{"go", "web"}},
		{"empty segments", "go,,web", []string{"go", "web"}},
		{"whitespace only", " , ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitTags(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("splitTags(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("splitTags(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}
