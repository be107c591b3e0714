package fetch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Cache stores fetched documents on disk, keyed by URL. Manifest
// stores are slow and the documents are static snapshots, so repeated
// interactive runs read from here instead of the network.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (and if needed creates) a cache database at path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", path, err)
	}
	const schema = `CREATE TABLE IF NOT EXISTS resources (
		url        TEXT PRIMARY KEY,
		body       BLOB NOT NULL,
		fetched_at TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Get returns the cached body for a URL. The second return is false on
// a miss.
func (c *Cache) Get(ctx context.Context, url string) ([]byte, bool, error) {
	var body []byte
	err := c.db.QueryRowContext(ctx, `SELECT body FROM resources WHERE url = ?`, url).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

// Put stores or replaces the body for a URL.
func (c *Cache) Put(ctx context.Context, url string, body []byte) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO resources (url, body, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		url, body, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
