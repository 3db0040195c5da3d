package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/webarticle"
)

// Ensure Cache implements webarticle.Cache and webarticle.CachePurger at compile time.
var (
	_ webarticle.Cache       = (*Cache)(nil)
	_ webarticle.CachePurger = (*Cache)(nil)
)

// timeFormat is fixed width so stored timestamps sort as text.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Cache stores entries in the cache_entries table.
type Cache struct {
	db *DB

	// Now returns the time stamped on writes. Defaults to time.Now.
	Now func() time.Time
}

// NewCache creates a new Cache backed by db.
func NewCache(db *DB) *Cache {
	return &Cache{db: db, Now: time.Now}
}

func (c *Cache) Get(ctx context.Context, key string) (*webarticle.CacheEntry, error) {
	var content, updatedAt string
	err := c.db.QueryRowContext(ctx,
		`SELECT content, updated_at FROM cache_entries WHERE key = ?`, key,
	).Scan(&content, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, webarticle.Errorf(webarticle.ENOTFOUND, "cache entry %q not found", key)
	} else if err != nil {
		return nil, err
	}

	modTime, err := time.Parse(timeFormat, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return &webarticle.CacheEntry{Content: content, ModTime: modTime}, nil
}

func (c *Cache) Set(ctx context.Context, key, content string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, kind, content, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			content = excluded.content,
			updated_at = excluded.updated_at
	`, key, webarticle.CacheKind(key), content, c.Now().UTC().Format(timeFormat))
	return err
}

// Purge deletes entries of the given kind last written before cutoff and
// returns how many were removed. An empty kind matches every entry.
func (c *Cache) Purge(ctx context.Context, kind string, cutoff time.Time) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE (? = '' OR kind = ?) AND updated_at < ?`,
		kind, kind, cutoff.UTC().Format(timeFormat),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
