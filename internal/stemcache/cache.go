// Package stemcache keeps provider answers in sqlite so that reloading a
// source that was already separated skips the backend round trip.
package stemcache

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/llehouerou/stems/internal/db"
	"github.com/llehouerou/stems/internal/provider"
)

const (
	appName     = "stems"
	dbFileName  = "provider-cache.db"
	schemaLevel = 1
)

// Cache stores provider results keyed by source identifier.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// Open opens the cache at path, or in the XDG cache dir when path is empty.
func Open(path string, ttl time.Duration) (*Cache, error) {
	if path == "" {
		p, err := xdg.CacheFile(filepath.Join(appName, dbFileName))
		if err != nil {
			return nil, err
		}
		path = p
	} else if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	conn, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &Cache{db: conn, ttl: ttl, now: time.Now}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func initSchema(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS cache_entries (
			source TEXT PRIMARY KEY,
			fetched_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS cache_stems (
			source TEXT NOT NULL REFERENCES cache_entries(source) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			location TEXT NOT NULL,
			PRIMARY KEY (source, position)
		);

		CREATE INDEX IF NOT EXISTS idx_cache_entries_fetched ON cache_entries(fetched_at);
	`)
	if err != nil {
		return err
	}

	_, err = conn.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, schemaLevel)
	return err
}

// Get returns the cached result for source. ok is false on a miss or when the
// entry is older than the TTL.
func (c *Cache) Get(ctx context.Context, source string) (res provider.Result, ok bool, err error) {
	var fetchedAt int64
	err = c.db.QueryRowContext(ctx,
		`SELECT fetched_at FROM cache_entries WHERE source = ?`, source,
	).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return provider.Result{}, false, nil
	}
	if err != nil {
		return provider.Result{}, false, err
	}

	if c.ttl > 0 && c.now().Sub(time.Unix(fetchedAt, 0)) > c.ttl {
		return provider.Result{}, false, nil
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT name, location FROM cache_stems WHERE source = ? ORDER BY position`, source)
	if err != nil {
		return provider.Result{}, false, err
	}
	defer rows.Close()

	var stems []provider.Stem
	for rows.Next() {
		var s provider.Stem
		if err := rows.Scan(&s.Name, &s.Location); err != nil {
			return provider.Result{}, false, err
		}
		stems = append(stems, s)
	}
	if err := rows.Err(); err != nil {
		return provider.Result{}, false, err
	}

	res, err = provider.NewResult(stems)
	if err != nil {
		// Entry without usable stems: treat as a miss.
		return provider.Result{}, false, nil //nolint:nilerr // corrupt entries are refetched
	}
	return res, true, nil
}

// Put stores res for source, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, source string, res provider.Result) error {
	return db.WithTx(ctx, c.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cache_entries WHERE source = ?`, source); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cache_entries (source, fetched_at) VALUES (?, ?)`,
			source, c.now().Unix(),
		); err != nil {
			return err
		}
		for i, s := range res.Stems {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO cache_stems (source, position, name, location) VALUES (?, ?, ?, ?)`,
				source, i, s.Name, s.Location,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// Prune deletes entries older than the TTL and returns how many were removed.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	cutoff := c.now().Add(-c.ttl).Unix()
	result, err := c.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
