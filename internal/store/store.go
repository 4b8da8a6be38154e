// Package store persists rendered output in SQLite so renders survive
// restarts and can be shared between processes.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/FocuswithJustin/Compendium/core/cache"
	"github.com/FocuswithJustin/Compendium/core/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store is a SQLite-backed render cache.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Record is one stored rendering.
type Record struct {
	Key       cache.Key
	Format    string
	Output    string
	CreatedAt time.Time
	Hits      int64
}

// Open opens or creates the store at path. The path ":memory:" opens a
// private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	var (
		db  *sql.DB
		err error
	)
	if path == ":memory:" {
		db, err = sqlite.OpenMemory()
	} else {
		db, err = sqlite.OpenFile(ctx, path)
	}
	if err != nil {
		return nil, err
	}
	if err := sqlite.ApplyMigrations(ctx, db, migrations, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate render store: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the output stored under key and counts the hit.
func (s *Store) Get(ctx context.Context, key cache.Key) (string, bool, error) {
	var out string
	err := s.db.QueryRowContext(ctx,
		`UPDATE renders SET hits = hits + 1 WHERE key = ? RETURNING output`, key.String(),
	).Scan(&out)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get render %s: %w", key, err)
	}
	return out, true, nil
}

// Put stores output under key, replacing any previous rendering.
func (s *Store) Put(ctx context.Context, key cache.Key, format, output string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO renders (key, format, output, created_at) VALUES (?, ?, ?, ?)
ON CONFLICT (key) DO UPDATE SET format = excluded.format, output = excluded.output, created_at = excluded.created_at, hits = 0`,
		key.String(), format, output, s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put render %s: %w", key, err)
	}
	return nil
}

// Lookup returns the full record without counting a hit.
func (s *Store) Lookup(ctx context.Context, key cache.Key) (Record, bool, error) {
	var (
		rec     Record
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT format, output, created_at, hits FROM renders WHERE key = ?`, key.String(),
	).Scan(&rec.Format, &rec.Output, &created, &rec.Hits)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("lookup render %s: %w", key, err)
	}
	rec.Key = key
	rec.CreatedAt = time.UnixMilli(created).UTC()
	return rec, true, nil
}

// Delete removes the rendering under key, if any.
func (s *Store) Delete(ctx context.Context, key cache.Key) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM renders WHERE key = ?`, key.String()); err != nil {
		return fmt.Errorf("delete render %s: %w", key, err)
	}
	return nil
}

// Prune deletes renderings created before cutoff and returns how many were
// removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM renders WHERE created_at < ?`, cutoff.UTC().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("prune renders: %w", err)
	}
	return res.RowsAffected()
}

// Counts returns the number of stored renderings per format.
func (s *Store) Counts(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT format, count(*) FROM renders GROUP BY format`)
	if err != nil {
		return nil, fmt.Errorf("count renders: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			format string
			n      int64
		)
		if err := rows.Scan(&format, &n); err != nil {
			return nil, err
		}
		counts[format] = n
	}
	return counts, rows.Err()
}
