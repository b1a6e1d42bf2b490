package loader

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	_ "modernc.org/sqlite"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS unit_exports (
	unit        TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	session     TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	summary     BLOB NOT NULL,
	PRIMARY KEY (unit, fingerprint)
)`

// Cache is the on-disk export cache: yaml-serialized export summaries keyed
// by unit name and source fingerprint, so unchanged units skip export
// derivation across sessions. Every row records the writing session's id.
type Cache struct {
	db      *sql.DB
	session string
}

// OpenCache opens (creating if needed) the cache database at path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open export cache: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init export cache: %w", err)
	}
	return &Cache{db: db, session: uuid.NewString()}, nil
}

func (c *Cache) Close() error { return c.db.Close() }

// Session returns the id this cache's writes are attributed to.
func (c *Cache) Session() string { return c.session }

// Lookup returns the cached exports for a unit at the given fingerprint.
func (c *Cache) Lookup(unit string, fingerprint uint64) (Exports, bool, error) {
	var blob []byte
	err := c.db.QueryRow(
		`SELECT summary FROM unit_exports WHERE unit = ? AND fingerprint = ?`,
		unit, formatFingerprint(fingerprint),
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var exports Exports
	if err := yaml.Unmarshal(blob, &exports); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry for unit %q: %w", unit, err)
	}
	return exports, true, nil
}

// Store writes a unit's exports at the given fingerprint, replacing any
// previous entry.
func (c *Cache) Store(unit string, fingerprint uint64, exports Exports) error {
	blob, err := yaml.Marshal(exports)
	if err != nil {
		return err
	}
	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO unit_exports (unit, fingerprint, session, created_at, summary)
		 VALUES (?, ?, ?, ?, ?)`,
		unit, formatFingerprint(fingerprint), c.session,
		time.Now().UTC().Format(time.RFC3339), blob,
	)
	return err
}

func formatFingerprint(fp uint64) string {
	return fmt.Sprintf("%016x", fp)
}
