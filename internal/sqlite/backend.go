// Package sqlite implements the pinv storage backend: the schema registry
// for catagories and the entry store, both over a single SQLite database.
// Every mutating operation validates its input completely before touching
// the database and runs as one transaction, so a failure partway through
// never leaves partial state visible.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/openapeshop/pinv/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// dbFileName is the database file created under the data dir.
const dbFileName = "pinv.db"

// Backend owns the SQLite connection shared by the schema registry and the
// entry store. It is safe for the single-process, one-operation-at-a-time
// use pinv is built for; multi-process access is out of scope.
type Backend struct {
	db     *sql.DB
	config types.Config
}

// Open initializes the backend: creates DataDir if needed, opens the
// database file, and applies the schema. The schema is idempotent, so
// opening an existing database is a no-op beyond the connection.
func Open(config types.Config) (*Backend, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating data dir: %v", types.ErrStorage, err)
	}

	dbPath := filepath.Join(config.DataDir, dbFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", types.ErrStorage, dbPath, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling foreign keys: %v", types.ErrStorage, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: applying schema: %v", types.ErrStorage, err)
	}

	return &Backend{db: db, config: config}, nil
}

// Close releases the database connection. Idempotent.
func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	if err != nil {
		return fmt.Errorf("%w: closing database: %v", types.ErrStorage, err)
	}
	return nil
}

// storageErr wraps a database-layer failure so callers can distinguish
// "the store broke" from "your input was invalid" via errors.Is.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", types.ErrStorage, op, err)
}

// inTx runs fn inside a transaction with guaranteed commit-or-rollback on
// every exit path.
func (b *Backend) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := b.db.Begin()
	if err != nil {
		return storageErr("beginning transaction", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return storageErr("committing transaction", err)
	}
	return nil
}
