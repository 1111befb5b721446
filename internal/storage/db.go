// Package storage persists extracted documentation in a SQLite index so it can
// be queried without re-parsing the source tree.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the documentation index at path, creating the file and its
// schema when needed. Foreign keys are enabled for every connection.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	// One writer at a time; also keeps ":memory:" databases on one connection
	db.SetMaxOpenConns(1)

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sql.DB) error {
	version, err := GetSchemaVersion(db)
	if err != nil {
		return err
	}

	switch version {
	case "0":
		return CreateSchema(db)
	case SchemaVersion:
		return nil
	default:
		return fmt.Errorf("%w: found %s, want %s", ErrSchemaVersion, version, SchemaVersion)
	}
}
