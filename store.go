package blogsphere

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// LocalStore is the client-side SQLite database. Nothing in it is shared
// with the backend: it holds compose drafts that have not been published
// yet, and the per-session record of which blogs already got their view
// increment.
type LocalStore struct {
	db *sql.DB
}

// OpenLocalStore opens (or creates) the database at path, ensures the
// data directory exists, and runs schema migrations.
func OpenLocalStore(path string) (*LocalStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL so a draft autosave never blocks a concurrent page render; the
	// busy timeout makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &LocalStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *LocalStore) Close() error {
	return s.db.Close()
}

func (s *LocalStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS drafts (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    blog_id INTEGER NOT NULL DEFAULT 0,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    category_id INTEGER NOT NULL DEFAULT 0,
    tags TEXT NOT NULL DEFAULT '',
    saved_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_drafts_session ON drafts(session_id, blog_id);

CREATE TABLE IF NOT EXISTS viewed (
    session_id TEXT NOT NULL,
    blog_id INTEGER NOT NULL,
    viewed_at TEXT NOT NULL,
    PRIMARY KEY (session_id, blog_id)
);
`)
	return err
}

// Draft is locally autosaved compose state. BlogID is zero for a new
// post and set when editing an existing blog. The draft never reaches
// the backend until the user publishes.
type Draft struct {
	ID         string
	SessionID  string
	BlogID     int64
	Title      string
	Content    string
	CategoryID int64
	Tags       []string
	SavedAt    string
}

// SaveDraft upserts a draft by id.
func (s *LocalStore) SaveDraft(d Draft) error {
	if d.SavedAt == "" {
		d.SavedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO drafts (id, session_id, blog_id, title, content, category_id, tags, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.SessionID, d.BlogID, d.Title, d.Content, d.CategoryID,
		strings.Join(d.Tags, ","), d.SavedAt)
	return err
}

// LatestDraft returns the newest draft a session holds for a blog id
// (zero for the write page). sql.ErrNoRows when there is none.
func (s *LocalStore) LatestDraft(sessionID string, blogID int64) (Draft, error) {
	row := s.db.QueryRow(
		`SELECT id, session_id, blog_id, title, content, category_id, tags, saved_at
		 FROM drafts WHERE session_id = ? AND blog_id = ?
		 ORDER BY saved_at DESC LIMIT 1`, sessionID, blogID)
	var d Draft
	var tags string
	if err := row.Scan(&d.ID, &d.SessionID, &d.BlogID, &d.Title, &d.Content, &d.CategoryID, &tags, &d.SavedAt); err != nil {
		return Draft{}, err
	}
	d.Tags = splitTags(tags)
	return d, nil
}

// DeleteDrafts removes every draft a session holds for a blog id,
// called after a successful publish.
func (s *LocalStore) DeleteDrafts(sessionID string, blogID int64) error {
	_, err := s.db.Exec(`DELETE FROM drafts WHERE session_id = ? AND blog_id = ?`, sessionID, blogID)
	return err
}

// MarkViewed records that a session viewed a blog. It reports true only
// the first time, so exactly one view increment is sent per session per
// blog.
func (s *LocalStore) MarkViewed(sessionID string, blogID int64) (bool, error) {
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO viewed (session_id, blog_id, viewed_at) VALUES (?, ?, ?)`,
		sessionID, blogID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func splitTags(tagString string) []string {
	var tags []string
	for _, part := range strings.Split(tagString, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tags = append(tags, part)
	}
	return tags
}
