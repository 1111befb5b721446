package storage

import (
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/mvp-joe/testable-docs/internal/docs"
)

// DocReader queries the documentation index.
type DocReader struct {
	db *sql.DB
}

// NewDocReader creates a DocReader over db.
func NewDocReader(db *sql.DB) *DocReader {
	return &DocReader{db: db}
}

// UndocumentedMethod names a method without a bound comment.
type UndocumentedMethod struct {
	ClassName    string
	RelativePath string
	MethodName   string
	Line         int
	Private      bool
}

var classColumns = []string{
	"class_id", "file_path", "name", "line", "col", "is_private", "has_comment",
	"description", "super_class", "super_class_module", "super_class_file",
}

// ClassesByName loads every class with the given name, methods and
// parameters included, ordered by file and position.
func (r *DocReader) ClassesByName(name string) ([]*docs.ClassDefinition, error) {
	return r.queryClasses(sq.Eq{"name": name})
}

// ClassesByFile loads the classes defined in filePath.
func (r *DocReader) ClassesByFile(filePath string) ([]*docs.ClassDefinition, error) {
	return r.queryClasses(sq.Eq{"file_path": filePath})
}

// UndocumentedMethods lists methods with no bound comment, ordered by file,
// class and method position.
func (r *DocReader) UndocumentedMethods() ([]UndocumentedMethod, error) {
	rows, err := sq.Select("c.name", "c.relative_path", "m.name", "m.line", "m.is_private").
		From("methods m").
		Join("classes c ON c.class_id = m.class_id").
		Where(sq.Eq{"m.has_comment": false}).
		OrderBy("c.file_path", "c.line", "c.col", "m.position").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query undocumented methods: %w", err)
	}
	defer rows.Close()

	var methods []UndocumentedMethod
	for rows.Next() {
		var m UndocumentedMethod
		if err := rows.Scan(&m.ClassName, &m.RelativePath, &m.MethodName, &m.Line, &m.Private); err != nil {
			return nil, fmt.Errorf("failed to scan undocumented method: %w", err)
		}
		methods = append(methods, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating undocumented methods: %w", err)
	}

	return methods, nil
}

func (r *DocReader) queryClasses(where sq.Eq) ([]*docs.ClassDefinition, error) {
	rows, err := sq.Select(classColumns...).
		From("classes").
		Where(where).
		OrderBy("file_path", "line", "col").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query classes: %w", err)
	}

	var (
		classes []*docs.ClassDefinition
		ids     []string
	)
	for rows.Next() {
		var (
			id                                     string
			c                                      docs.ClassDefinition
			superClass, superModule, superFilePath sql.NullString
		)
		err := rows.Scan(&id, &c.FilePath, &c.Name, &c.Line, &c.Column, &c.Private, &c.HasComment,
			&c.Description, &superClass, &superModule, &superFilePath)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan class: %w", err)
		}
		c.SuperClass = superClass.String
		c.SuperClassModule = superModule.String
		c.SuperClassFile = superFilePath.String
		c.Methods = []*docs.Method{}

		classes = append(classes, &c)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating classes: %w", err)
	}
	// Release the connection before loading methods
	rows.Close()

	for i, c := range classes {
		if c.Methods, err = r.methods(ids[i]); err != nil {
			return nil, err
		}
	}

	return classes, nil
}

func (r *DocReader) methods(classID string) ([]*docs.Method, error) {
	rows, err := sq.Select(
		"method_id", "name", "line", "col", "is_private", "has_comment", "description",
		"has_returns", "return_types", "return_optional", "return_description",
	).
		From("methods").
		Where(sq.Eq{"class_id": classID}).
		OrderBy("position").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query methods: %w", err)
	}

	var (
		methods []*docs.Method
		ids     []string
	)
	for rows.Next() {
		var (
			id          string
			m           docs.Method
			hasReturns  bool
			returnTypes string
			returns     docs.Returns
		)
		err := rows.Scan(&id, &m.Name, &m.Line, &m.Column, &m.Private, &m.HasComment, &m.Description,
			&hasReturns, &returnTypes, &returns.Optional, &returns.Description)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan method: %w", err)
		}
		if hasReturns {
			returns.Types = splitTypes(returnTypes)
			m.Returns = &returns
		}
		m.Parameters = []*docs.Parameter{}

		methods = append(methods, &m)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating methods: %w", err)
	}
	rows.Close()

	for i, m := range methods {
		if m.Parameters, err = r.parameters(ids[i]); err != nil {
			return nil, err
		}
	}

	return methods, nil
}

func (r *DocReader) parameters(methodID string) ([]*docs.Parameter, error) {
	rows, err := sq.Select("name", "kind", "default_value", "is_optional", "types", "description", "has_comment").
		From("parameters").
		Where(sq.Eq{"method_id": methodID}).
		OrderBy("position").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query parameters: %w", err)
	}
	defer rows.Close()

	params := []*docs.Parameter{}
	for rows.Next() {
		var (
			p            docs.Parameter
			kind, types  string
			defaultValue sql.NullString
		)
		if err := rows.Scan(&p.Name, &kind, &defaultValue, &p.Optional, &types, &p.Description, &p.HasComment); err != nil {
			return nil, fmt.Errorf("failed to scan parameter: %w", err)
		}
		p.Kind = docs.ParameterKind(kind)
		p.Default = defaultValue.String
		p.Types = splitTypes(types)
		params = append(params, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parameters: %w", err)
	}

	return params, nil
}

func splitTypes(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, typeSeparator)
}
