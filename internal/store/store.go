// Package store caches emitted function source under a content hash of the
// module bytes, the function name, the emitter settings and a per-Store
// generation id. Every Open mints a new generation id, so a row is only
// found again through the Store that wrote it; rows left by an earlier Open
// are never served. gs2dc's CLI consults the cache after decompiling, so a
// hit skips only the emitter, not symbolic execution or structural analysis.
//
// The connection/driver-switch shape is adapted from
// internal/database/db_manager.go's DBManager: sql.Open keyed off a driver
// name, a pooled *sql.DB, and a schema created on first use. Where
// DBManager connects once per named session, Store connects once per
// process and keys rows by decompile input instead of by connection id.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Driver names a supported backend. Unlike DBManager, which maps loose
// aliases ("sqlite3", "postgresql") onto a canonical driver, Store expects
// the caller to already know which of the wired drivers it wants; gs2dc's
// CLI is the only caller and it only ever requests sqlite in practice.
type Driver string

const (
	SQLite     Driver = "sqlite"
	SQLite3CGO Driver = "sqlite3"
	Postgres   Driver = "postgres"
	MySQL      Driver = "mysql"
	SQLServer  Driver = "sqlserver"
)

// Store is a decompile-result cache backed by a SQL table. Generation is a
// random id minted once per Store and folded into every cache key, so
// restarting gs2dc with a newer emitter build never serves a stale row from
// a previous run's table even though the schema itself didn't change.
type Store struct {
	db         *sql.DB
	driver     Driver
	generation uuid.UUID
}

// Open connects to dsn using driver, configures the pool the way
// DBManager.Connect does, and ensures the cache table exists.
func Open(ctx context.Context, driver Driver, dsn string) (*Store, error) {
	db, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping %s: %w", driver, err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	s := &Store{db: db, driver: driver, generation: uuid.New()}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS decompiled_functions (
	cache_key   TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	created_at  TEXT NOT NULL
)`)
	if err != nil {
		return fmt.Errorf("store: ensure schema: %w", err)
	}
	return nil
}

// Key derives a cache key from the raw module bytes, the target function
// name, and the emitter context that will render it (indent style, brace
// placement, ... all of it changes the output text), salted with this
// Store's generation so switching gs2dc builds never collides with an
// older row layout.
func (s *Store) Key(moduleBytes []byte, functionName string, emitContext fmt.Stringer) string {
	h := sha256.New()
	h.Write(moduleBytes)
	h.Write([]byte{0})
	h.Write([]byte(functionName))
	h.Write([]byte{0})
	h.Write([]byte(emitContext.String()))
	h.Write([]byte{0})
	h.Write(s.generation[:])
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached source for key, or ok=false on a miss.
func (s *Store) Get(ctx context.Context, key string) (source string, ok bool, err error) {
	row := s.db.QueryRowContext(ctx, `SELECT source FROM decompiled_functions WHERE cache_key = ?`, key)
	if err := row.Scan(&source); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("store: get: %w", err)
	}
	return source, true, nil
}

// Put stores source under key, overwriting any previous entry.
func (s *Store) Put(ctx context.Context, key, source string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO decompiled_functions (cache_key, source, created_at) VALUES (?, ?, ?)
ON CONFLICT (cache_key) DO UPDATE SET source = excluded.source, created_at = excluded.created_at`,
		key, source, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("store: put: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
