// Package fs provides filesystem implementations of webarticle.Cache and
// webarticle.Fetcher.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webarticle"
)

// DirPerm is the permission used when creating the cache directory.
const DirPerm = 0750

// Ensure Cache implements webarticle.Cache and webarticle.CachePurger at compile time.
var (
	_ webarticle.Cache       = (*Cache)(nil)
	_ webarticle.CachePurger = (*Cache)(nil)
)

// Cache stores entries as files in a directory, one file per key. File
// names are the xxhash of the key, so keys of any length or alphabet map
// to a flat directory.
type Cache struct {
	dir string
}

// NewCache creates a Cache rooted at dir. The directory is created on the
// first write.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Path returns the file that stores key.
func (c *Cache) Path(key string) string {
	return filepath.Join(c.dir, fmt.Sprintf("%016x%s", xxhash.Sum64String(key), kindExt(webarticle.CacheKind(key))))
}

func kindExt(kind string) string {
	switch kind {
	case webarticle.CacheKindRaw:
		return ".raw"
	case webarticle.CacheKindRobots:
		return ".robots"
	default:
		return ".txt"
	}
}

// Purge removes entries of the given kind whose files were last written
// before cutoff and returns how many were removed. An empty kind matches
// every entry. A missing directory purges nothing.
func (c *Cache) Purge(ctx context.Context, kind string, cutoff time.Time) (int64, error) {
	entries, err := os.ReadDir(c.dir)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}

	var n int64
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if kind != "" && filepath.Ext(name) != kindExt(kind) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return n, err
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, name)); err != nil {
			return n, fmt.Errorf("failed to remove %s: %w", name, err)
		}
		n++
	}
	return n, nil
}

func (c *Cache) Get(ctx context.Context, key string) (*webarticle.CacheEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := c.Path(key)
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, webarticle.Errorf(webarticle.ENOTFOUND, "cache entry %q not found", key)
	} else if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &webarticle.CacheEntry{Content: string(content), ModTime: info.ModTime()}, nil
}

// Set writes content to a temporary file and renames it into place, so
// concurrent readers never see a partial entry.
func (c *Cache) Set(ctx context.Context, key, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, DirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), c.Path(key))
}
