package likes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/glabrego/wikiscroll/internal/content"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One connection keeps read-modify-write increments serialized.
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS items (
  id INTEGER PRIMARY KEY,
  title TEXT NOT NULL,
  body TEXT NOT NULL,
  media_url TEXT,
  media_width INTEGER NOT NULL DEFAULT 0,
  media_height INTEGER NOT NULL DEFAULT 0,
  canonical_url TEXT NOT NULL,
  likes INTEGER NOT NULL DEFAULT 0,
  tracked_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_items_likes ON items(likes DESC, tracked_at ASC);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CheckWritable fails early when the database file cannot be written.
func (s *SQLiteStore) CheckWritable(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `CREATE TEMP TABLE IF NOT EXISTS write_probe (id INTEGER)`); err != nil {
		return fmt.Errorf("write probe: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE items SET likes = likes WHERE id = -1`); err != nil {
		return fmt.Errorf("write probe: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Track(ctx context.Context, items []content.Item) ([]content.Item, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsert, err := tx.PrepareContext(ctx, `
INSERT INTO items (id, title, body, media_url, media_width, media_height, canonical_url, likes, tracked_at)
VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?)
ON CONFLICT(id) DO UPDATE SET
  title=excluded.title,
  body=excluded.body,
  media_url=excluded.media_url,
  media_width=excluded.media_width,
  media_height=excluded.media_height,
  canonical_url=excluded.canonical_url
`)
	if err != nil {
		return nil, fmt.Errorf("prepare track statement: %w", err)
	}
	defer upsert.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	out := make([]content.Item, 0, len(items))
	for _, item := range items {
		var mediaURL sql.NullString
		var width, height int
		if item.Media != nil {
			mediaURL = sql.NullString{String: item.Media.URL, Valid: true}
			width, height = item.Media.Width, item.Media.Height
		}
		if _, err := upsert.ExecContext(ctx, item.ID, item.Title, item.Body, mediaURL, width, height, item.CanonicalURL, now); err != nil {
			return nil, fmt.Errorf("track item %d: %w", item.ID, err)
		}

		if err := tx.QueryRowContext(ctx, `SELECT likes FROM items WHERE id = ?`, item.ID).Scan(&item.LikeCount); err != nil {
			return nil, fmt.Errorf("read likes for item %d: %w", item.ID, err)
		}
		out = append(out, item)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Increment(ctx context.Context, id int64) (int, error) {
	var likes int
	err := s.db.QueryRowContext(ctx, `UPDATE items SET likes = likes + 1 WHERE id = ? RETURNING likes`, id).Scan(&likes)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, content.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("increment likes for item %d: %w", id, err)
	}
	return likes, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id int64) (int, bool, error) {
	var likes int
	err := s.db.QueryRowContext(ctx, `SELECT likes FROM items WHERE id = ?`, id).Scan(&likes)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query likes for item %d: %w", id, err)
	}
	return likes, true, nil
}

func (s *SQLiteStore) Popular(ctx context.Context, limit int) ([]content.Item, error) {
	if limit < 1 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, title, body, media_url, media_width, media_height, canonical_url, likes
FROM items
ORDER BY likes DESC, tracked_at ASC, id ASC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query popular items: %w", err)
	}
	defer rows.Close()

	items := make([]content.Item, 0, limit)
	for rows.Next() {
		var item content.Item
		var mediaURL sql.NullString
		var width, height int
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Body,
			&mediaURL,
			&width,
			&height,
			&item.CanonicalURL,
			&item.LikeCount,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if mediaURL.Valid {
			item.Media = &content.Media{URL: mediaURL.String, Width: width, Height: height}
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return items, nil
}
