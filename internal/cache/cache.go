// Package cache provides a small SQLite-backed cache for AI lookup responses,
// so repeated lookups for the same title do not re-hit the paid service.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultTTL is the default time-to-live for cached lookup responses (30 days).
const DefaultTTL = 720 * time.Hour

const schema = `
CREATE TABLE IF NOT EXISTS lookup_cache (
	kind TEXT NOT NULL,
	cache_key TEXT NOT NULL,
	data TEXT NOT NULL,
	cached_at TEXT NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (kind, cache_key)
);
`

// FetchFunc represents a function that fetches data from an external source.
type FetchFunc[T any] func() (T, error)

// DB manages the SQLite database connection for caching.
type DB struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates (if necessary) and opens the cache database at the given path.
func Open(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to cache database: %w", err), closeErr)
	}

	if _, err := db.Exec(schema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to create cache table: %w", err), closeErr)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (c *DB) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.Close()
}

// Get returns the cached payload for (kind, key) if present and younger than
// ttl. The second return value reports whether a fresh entry was found.
func (c *DB) Get(kind, key string, ttl time.Duration) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var data string
	var cachedAt string
	err := c.db.QueryRow(
		`SELECT data, cached_at FROM lookup_cache WHERE kind = ? AND cache_key = ?`,
		kind, key).Scan(&data, &cachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cache: %w", err)
	}

	ts, err := time.Parse("2006-01-02 15:04:05", cachedAt)
	if err != nil || time.Since(ts) > ttl {
		return "", false, nil
	}
	return data, true, nil
}

// Set stores the payload for (kind, key), replacing any existing entry.
func (c *DB) Set(kind, key, data string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec(`
		INSERT INTO lookup_cache (kind, cache_key, data, cached_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT (kind, cache_key) DO UPDATE SET data = excluded.data, cached_at = excluded.cached_at`,
		kind, key, data)
	if err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// Invalidate deletes every entry of the given kind and returns the number of
// rows removed.
func (c *DB) Invalidate(kind string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, err := c.db.Exec(`DELETE FROM lookup_cache WHERE kind = ?`, kind)
	if err != nil {
		return 0, fmt.Errorf("failed to delete cache entries: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	slog.Debug("Cache entries cleared", "kind", kind, "rows_deleted", rows)
	return rows, nil
}

// GetOrFetch retrieves a value from the cache or fetches it using fetchFunc.
// The boolean result reports whether the value came from the cache. Cache
// read/write problems degrade to a direct fetch; they never fail the lookup.
func GetOrFetch[T any](c *DB, kind, key string, ttl time.Duration, fetchFunc FetchFunc[T]) (T, bool, error) {
	var zero T

	if data, found, err := c.Get(kind, key, ttl); err == nil && found {
		var cached T
		if err := json.Unmarshal([]byte(data), &cached); err == nil {
			slog.Debug("Cache hit", "kind", kind, "key", key)
			return cached, true, nil
		}
		slog.Warn("Discarding unreadable cache entry", "kind", kind, "key", key)
	} else if err != nil {
		slog.Warn("Cache read failed, fetching directly", "error", err)
	}

	value, err := fetchFunc()
	if err != nil {
		return zero, false, err
	}

	if data, err := json.Marshal(value); err == nil {
		if err := c.Set(kind, key, string(data)); err != nil {
			slog.Warn("Failed to cache fetched value", "kind", kind, "key", key, "error", err)
		}
	}

	return value, false, nil
}
