package dailypost

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Archive mirrors the post index into SQLite so past posts can be queried
// by category. The JSON index stays the source of truth.
type Archive struct {
	db *sql.DB
}

// NewArchive opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewArchive(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL with a busy timeout so a preview server reading the archive does
	// not fail a concurrent generator run.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	a := &Archive{db: db}
	if err := a.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

// Close closes the underlying database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) ensureSchema() error {
	_, err := a.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    filename TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    timestamp TEXT NOT NULL,
    category TEXT NOT NULL,
    excerpt TEXT NOT NULL,
    image TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS posts_category ON posts (lower(category));
`)
	return err
}

// Save upserts a post record keyed by its filename.
func (a *Archive) Save(p PostRecord) error {
	_, err := a.db.Exec(`INSERT OR REPLACE INTO posts (filename, title, date, timestamp, category, excerpt, image) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Filename, p.Title, p.Date, p.Timestamp, p.Category, p.Excerpt, p.Image)
	if err != nil {
		return fmt.Errorf("archive %s: %w", p.Filename, err)
	}
	return nil
}

// Rebuild replaces the archive content with posts in one transaction.
func (a *Archive) Rebuild(posts []PostRecord) error {
	tx, err := a.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM posts`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO posts (filename, title, date, timestamp, category, excerpt, image) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, p := range posts {
		if _, err := stmt.Exec(p.Filename, p.Title, p.Date, p.Timestamp, p.Category, p.Excerpt, p.Image); err != nil {
			return fmt.Errorf("archive %s: %w", p.Filename, err)
		}
	}
	return tx.Commit()
}

// List returns archived posts newest first. category filters case-insensitively
// when non-empty; limit <= 0 means no limit.
func (a *Archive) List(category string, limit int) ([]PostRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	var rows *sql.Rows
	var err error
	if category == "" {
		rows, err = a.db.Query(`SELECT filename, title, date, timestamp, category, excerpt, image FROM posts ORDER BY timestamp DESC LIMIT ?`, limit)
	} else {
		rows, err = a.db.Query(`SELECT filename, title, date, timestamp, category, excerpt, image FROM posts WHERE lower(category) = lower(?) ORDER BY timestamp DESC LIMIT ?`, category, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []PostRecord
	for rows.Next() {
		var p PostRecord
		if err := rows.Scan(&p.Filename, &p.Title, &p.Date, &p.Timestamp, &p.Category, &p.Excerpt, &p.Image); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Get returns a single archived post by filename.
func (a *Archive) Get(filename string) (PostRecord, error) {
	p := PostRecord{Filename: filename}
	err := a.db.QueryRow(`SELECT title, date, timestamp, category, excerpt, image FROM posts WHERE filename = ?`, filename).
		Scan(&p.Title, &p.Date, &p.Timestamp, &p.Category, &p.Excerpt, &p.Image)
	if err != nil {
		return PostRecord{}, err
	}
	return p, nil
}

// Categories returns the distinct categories in the archive, sorted.
func (a *Archive) Categories() ([]string, error) {
	rows, err := a.db.Query(`SELECT DISTINCT category FROM posts ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
