package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// SchemaVersion is the version recorded in a new documentation index.
const SchemaVersion = "1"

// CreateSchema creates all tables and indexes of the documentation index.
// Uses a transaction so schema creation succeeds or fails as a whole.
//
// Schema includes:
//   - classes, methods and parameters, cascading on delete
//   - index_metadata (schema version, last write)
func CreateSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	tables := []struct {
		name string
		ddl  string
	}{
		{"classes", createClassesTable},
		{"methods", createMethodsTable},
		{"parameters", createParametersTable},
		{"index_metadata", createIndexMetadataTable},
	}

	for _, table := range tables {
		if _, err := tx.Exec(table.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.name, err)
		}
	}

	for i, idx := range getAllIndexes() {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index %d: %w", i+1, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	bootstrapSQL := `
		INSERT INTO index_metadata (key, value, updated_at) VALUES
			('schema_version', ?, ?),
			('last_written', '', ?)
	`
	if _, err := tx.Exec(bootstrapSQL, SchemaVersion, now, now); err != nil {
		return fmt.Errorf("failed to bootstrap index_metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}

	return nil
}

// GetSchemaVersion retrieves the schema version from index_metadata.
// Returns "0" if the table doesn't exist (new database).
func GetSchemaVersion(db *sql.DB) (string, error) {
	var tableExists int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='index_metadata'").Scan(&tableExists)
	if err != nil {
		return "", fmt.Errorf("failed to check index_metadata existence: %w", err)
	}
	if tableExists == 0 {
		return "0", nil // New database
	}

	var version string
	err = db.QueryRow("SELECT value FROM index_metadata WHERE key = 'schema_version'").Scan(&version)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("schema_version key not found in index_metadata")
	}
	if err != nil {
		return "", fmt.Errorf("failed to query schema version: %w", err)
	}
	return version, nil
}

// Table DDL constants

const createClassesTable = `
CREATE TABLE classes (
    class_id TEXT PRIMARY KEY,                   -- UUID
    file_path TEXT NOT NULL,                     -- Absolute path of the defining file
    relative_path TEXT NOT NULL,                 -- Path relative to the analyzed root
    name TEXT NOT NULL,                          -- "anonymous" for unnamed classes
    line INTEGER NOT NULL,
    col INTEGER NOT NULL,
    is_private INTEGER NOT NULL DEFAULT 0,       -- Boolean
    has_comment INTEGER NOT NULL DEFAULT 0,      -- Boolean
    description TEXT NOT NULL DEFAULT '',
    super_class TEXT,                            -- Superclass identifier
    super_class_module TEXT,                     -- Module the superclass was imported from
    super_class_file TEXT                        -- Relative path of the superclass file
)
`

const createMethodsTable = `
CREATE TABLE methods (
    method_id TEXT PRIMARY KEY,                  -- UUID
    class_id TEXT NOT NULL,
    name TEXT NOT NULL,
    position INTEGER NOT NULL,                   -- 0-indexed, in sorted method order
    line INTEGER NOT NULL,
    col INTEGER NOT NULL,
    is_private INTEGER NOT NULL DEFAULT 0,       -- Boolean
    has_comment INTEGER NOT NULL DEFAULT 0,      -- Boolean
    description TEXT NOT NULL DEFAULT '',
    has_returns INTEGER NOT NULL DEFAULT 0,      -- Boolean: @returns present
    return_types TEXT NOT NULL DEFAULT '',       -- "|"-joined type names
    return_optional INTEGER NOT NULL DEFAULT 0,  -- Boolean
    return_description TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (class_id) REFERENCES classes(class_id) ON DELETE CASCADE
)
`

const createParametersTable = `
CREATE TABLE parameters (
    param_id TEXT PRIMARY KEY,                   -- UUID
    method_id TEXT NOT NULL,
    name TEXT NOT NULL,
    position INTEGER NOT NULL,                   -- 0-indexed declaration order
    kind TEXT NOT NULL,                          -- simple, rest, defaultValue
    default_value TEXT,                          -- Literal default for defaultValue
    is_optional INTEGER NOT NULL DEFAULT 0,      -- Boolean
    types TEXT NOT NULL DEFAULT '',              -- "|"-joined type names
    description TEXT NOT NULL DEFAULT '',
    has_comment INTEGER NOT NULL DEFAULT 0,      -- Boolean
    FOREIGN KEY (method_id) REFERENCES methods(method_id) ON DELETE CASCADE
)
`

const createIndexMetadataTable = `
CREATE TABLE index_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL                     -- ISO 8601
)
`

func getAllIndexes() []string {
	return []string{
		// classes table indexes
		"CREATE INDEX idx_classes_file_path ON classes(file_path)",
		"CREATE INDEX idx_classes_name ON classes(name)",

		// methods table indexes
		"CREATE INDEX idx_methods_class_id ON methods(class_id)",
		"CREATE INDEX idx_methods_has_comment ON methods(has_comment)",

		// parameters table indexes
		"CREATE INDEX idx_parameters_method_id ON parameters(method_id)",
	}
}
