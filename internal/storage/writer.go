package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/mvp-joe/testable-docs/internal/docs"
)

// ErrSchemaVersion indicates an index written by an incompatible version.
var ErrSchemaVersion = errors.New("unsupported index schema version")

// typeSeparator joins type name lists into one column.
const typeSeparator = "|"

// DocWriter writes class documentation to the index.
type DocWriter struct {
	db *sql.DB
}

// NewDocWriter creates a DocWriter. DB must have the schema created.
func NewDocWriter(db *sql.DB) *DocWriter {
	return &DocWriter{db: db}
}

// WriteClasses replaces every class stored for filePath with classes, in
// one transaction. An empty classes slice deletes the file's classes.
func (w *DocWriter) WriteClasses(filePath string, classes []*docs.ClassDefinition) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	if err := replaceFile(tx, filePath, classes); err != nil {
		return err
	}

	if err := touch(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit classes for %s: %w", filePath, err)
	}
	return nil
}

// WriteClassSet replaces the whole index with the classes of set.
func (w *DocWriter) WriteClassSet(set *docs.ClassSet) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Cascades to methods and parameters
	if _, err := sq.Delete("classes").RunWith(tx).Exec(); err != nil {
		return fmt.Errorf("failed to clear classes: %w", err)
	}

	for _, file := range set.Files() {
		if err := insertClasses(tx, set.InFile(file)); err != nil {
			return err
		}
	}

	if err := touch(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit class set: %w", err)
	}
	return nil
}

func replaceFile(tx *sql.Tx, filePath string, classes []*docs.ClassDefinition) error {
	_, err := sq.Delete("classes").
		Where(sq.Eq{"file_path": filePath}).
		RunWith(tx).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to delete classes for file %s: %w", filePath, err)
	}

	for _, c := range classes {
		if c.FilePath != filePath {
			return fmt.Errorf("class %s belongs to %s, not %s", c.Name, c.FilePath, filePath)
		}
	}
	return insertClasses(tx, classes)
}

func insertClasses(tx *sql.Tx, classes []*docs.ClassDefinition) error {
	classSQL, _, err := sq.Insert("classes").
		Columns(
			"class_id", "file_path", "relative_path", "name", "line", "col",
			"is_private", "has_comment", "description",
			"super_class", "super_class_module", "super_class_file",
		).
		Values("", "", "", "", 0, 0, false, false, "", nil, nil, nil).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build class SQL: %w", err)
	}

	classStmt, err := tx.Prepare(classSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare class statement: %w", err)
	}
	defer classStmt.Close()

	methodSQL, _, err := sq.Insert("methods").
		Columns(
			"method_id", "class_id", "name", "position", "line", "col",
			"is_private", "has_comment", "description",
			"has_returns", "return_types", "return_optional", "return_description",
		).
		Values("", "", "", 0, 0, 0, false, false, "", false, "", false, "").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build method SQL: %w", err)
	}

	methodStmt, err := tx.Prepare(methodSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare method statement: %w", err)
	}
	defer methodStmt.Close()

	paramSQL, _, err := sq.Insert("parameters").
		Columns(
			"param_id", "method_id", "name", "position", "kind",
			"default_value", "is_optional", "types", "description", "has_comment",
		).
		Values("", "", "", 0, "", nil, false, "", "", false).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build parameter SQL: %w", err)
	}

	paramStmt, err := tx.Prepare(paramSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare parameter statement: %w", err)
	}
	defer paramStmt.Close()

	for _, c := range classes {
		classID := uuid.New().String()

		_, err := classStmt.Exec(
			classID,
			c.FilePath,
			c.Path(),
			c.Name,
			c.Line,
			c.Column,
			c.Private,
			c.HasComment,
			c.Description,
			nullableString(c.SuperClass),
			nullableString(c.SuperClassModule),
			nullableString(c.SuperClassFile),
		)
		if err != nil {
			return fmt.Errorf("failed to insert class %s: %w", c.Name, err)
		}

		for i, m := range c.Methods {
			methodID := uuid.New().String()

			returns := m.Returns
			if returns == nil {
				returns = &docs.Returns{}
			}

			_, err := methodStmt.Exec(
				methodID,
				classID,
				m.Name,
				i,
				m.Line,
				m.Column,
				m.Private,
				m.HasComment,
				m.Description,
				m.Returns != nil,
				strings.Join(returns.Types, typeSeparator),
				returns.Optional,
				returns.Description,
			)
			if err != nil {
				return fmt.Errorf("failed to insert method %s.%s: %w", c.Name, m.Name, err)
			}

			for j, p := range m.Parameters {
				var defaultValue any
				if p.Kind == docs.ParameterDefaultValue {
					defaultValue = p.Default
				}

				_, err := paramStmt.Exec(
					uuid.New().String(),
					methodID,
					p.Name,
					j,
					string(p.Kind),
					defaultValue,
					p.Optional,
					strings.Join(p.Types, typeSeparator),
					p.Description,
					p.HasComment,
				)
				if err != nil {
					return fmt.Errorf("failed to insert parameter %s of %s.%s: %w", p.Name, c.Name, m.Name, err)
				}
			}
		}
	}

	return nil
}

func touch(tx *sql.Tx) error {
	_, err := sq.Update("index_metadata").
		Set("value", time.Now().UTC().Format(time.RFC3339)).
		Set("updated_at", time.Now().UTC().Format(time.RFC3339)).
		Where(sq.Eq{"key": "last_written"}).
		RunWith(tx).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to update index metadata: %w", err)
	}
	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
