package parsers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/testable-docs/internal/ast"
)

// Test Plan for JavaScript Parsing:
// - Class declarations and expressions are converted with name and superclass
// - Methods carry key, parameters and attached comments
// - Parameter shapes become Identifier, AssignmentPattern and RestElement
// - The comment list holds every comment in source order without delimiters
// - Comments above "export class" are attached to the class
// - Positions use 1-based lines and 0-based columns
// - require calls keep their string literal argument
// - JSX parses in .js files and TypeScript syntax in .ts files
// - Broken sources fail with ErrSyntax
// - A cancelled context stops parsing

const shapeSource = `// note
/** Shape doc. */
export class Shape extends Base {
  /** Area doc. */
  area(unit, scale = 2, ...rest) {
    return 0;
  }
}
const Other = class {};
`

func parse(t *testing.T, path, src string) *ast.File {
	t.Helper()
	file, err := ParseSource(context.Background(), path, []byte(src))
	require.NoError(t, err)
	require.NotNil(t, file.Root)
	return file
}

func TestParse_Classes(t *testing.T) {
	t.Parallel()

	file := parse(t, "shape.js", shapeSource)
	assert.Equal(t, "shape.js", file.Path)
	assert.Equal(t, ast.KindProgram, file.Root.Kind)

	classes := ast.Locate(file.Root, ast.KindClassDeclaration, ast.KindClassExpression)
	require.Len(t, classes, 2)

	shape := classes[0]
	assert.Equal(t, ast.KindClassDeclaration, shape.Kind)
	name, ok := ast.IdentifierName(shape.ID)
	require.True(t, ok)
	assert.Equal(t, "Shape", name)
	super, ok := ast.IdentifierName(shape.SuperClass)
	require.True(t, ok)
	assert.Equal(t, "Base", super)
	assert.Equal(t, ast.Position{Line: 3, Column: 7}, shape.Loc.Start)

	other := classes[1]
	assert.Equal(t, ast.KindClassExpression, other.Kind)
	assert.Nil(t, other.ID)
	assert.Nil(t, other.SuperClass)
	assert.Equal(t, 9, other.Loc.Start.Line)
}

func TestParse_Methods(t *testing.T) {
	t.Parallel()

	file := parse(t, "shape.js", shapeSource)
	methods := ast.Locate(file.Root, ast.KindMethodDefinition)
	require.Len(t, methods, 1)

	area := methods[0]
	name, _ := ast.IdentifierName(area.Key)
	assert.Equal(t, "area", name)
	assert.Equal(t, 5, area.Loc.Start.Line)
	assert.Equal(t, 2, area.Loc.Start.Column)

	require.Len(t, area.Params, 3)

	assert.Equal(t, ast.KindIdentifier, area.Params[0].Kind)
	assert.Equal(t, "unit", area.Params[0].Name)

	scale := area.Params[1]
	assert.Equal(t, ast.KindAssignmentPattern, scale.Kind)
	assert.Equal(t, "scale", scale.Left.Name)
	require.NotNil(t, scale.Right)
	assert.Equal(t, ast.KindLiteral, scale.Right.Kind)
	assert.Equal(t, "2", scale.Right.Value)

	rest := area.Params[2]
	assert.Equal(t, ast.KindRestElement, rest.Kind)
	assert.Equal(t, "rest", rest.Argument.Name)

	require.Len(t, area.Comments, 1)
	assert.Equal(t, "* Area doc. ", area.Comments[0].Text)
}

func TestParse_Comments(t *testing.T) {
	t.Parallel()

	file := parse(t, "shape.js", shapeSource)
	require.Len(t, file.Comments, 3)

	assert.Equal(t, ast.CommentLine, file.Comments[0].Kind)
	assert.Equal(t, " note", file.Comments[0].Text)
	assert.Equal(t, 0, file.Comments[0].Start)

	assert.Equal(t, ast.CommentBlock, file.Comments[1].Kind)
	assert.Equal(t, "* Shape doc. ", file.Comments[1].Text)
	assert.Equal(t, "/** Shape doc. */", shapeSource[file.Comments[1].Start:file.Comments[1].End])

	assert.Len(t, file.BlockComments(), 2)

	// Comments above the export statement belong to the exported class.
	shape := ast.Locate(file.Root, ast.KindClassDeclaration)[0]
	require.NotEmpty(t, shape.Comments)
	last := shape.Comments[len(shape.Comments)-1]
	assert.Same(t, file.Comments[1], last)
}

func TestParse_RequireLiteral(t *testing.T) {
	t.Parallel()

	file := parse(t, "circle.js", "const Base = require('./base');\nclass Circle extends Base {}\n")

	decls := ast.Follow(file.Root, ast.KindVariableDeclarator)
	require.Len(t, decls, 1)
	assert.Equal(t, "Base", decls[0].ID.Name)

	call := decls[0].Init
	require.NotNil(t, call)
	assert.Equal(t, ast.KindCallExpression, call.Kind)
	assert.Equal(t, "require", call.Callee.Name)
	require.Len(t, call.Arguments, 1)
	assert.Equal(t, ast.KindLiteral, call.Arguments[0].Kind)
	assert.Equal(t, "string", call.Arguments[0].Type)
	assert.Equal(t, "./base", call.Arguments[0].Value)
	assert.Equal(t, "'./base'", call.Arguments[0].Raw)
}

func TestParse_Imports(t *testing.T) {
	t.Parallel()

	file := parse(t, "circle.mjs", "import Base, { helper as h } from './base.js';\n")
	require.Len(t, file.Root.Body, 1)

	imp := file.Root.Body[0]
	assert.Equal(t, ast.KindImportDeclaration, imp.Kind)
	require.NotNil(t, imp.Source)
	assert.Equal(t, "./base.js", imp.Source.Value)

	var locals []string
	for _, spec := range imp.Specifiers {
		locals = append(locals, spec.Name)
	}
	assert.Equal(t, []string{"Base", "h"}, locals)
}

func TestParse_GrammarByExtension(t *testing.T) {
	t.Parallel()

	jsx := parse(t, "app.js", "class App {\n  render() {\n    return <div className=\"app\" />;\n  }\n}\n")
	assert.Len(t, ast.Locate(jsx.Root, ast.KindMethodDefinition), 1)

	ts := parse(t, "box.ts", "class Box<T> {\n  put(value: T, label?: string): void {}\n}\n")
	methods := ast.Locate(ts.Root, ast.KindMethodDefinition)
	require.Len(t, methods, 1)
	require.Len(t, methods[0].Params, 2)
	assert.Equal(t, "value", methods[0].Params[0].Name)
	assert.Equal(t, "label", methods[0].Params[1].Name)
}

func TestParse_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := ForPath("broken.js").Parse(context.Background(), "broken.js", []byte("class Broken {\n  area( {\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyntax)
	assert.Contains(t, err.Error(), "broken.js")
}

func TestParse_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewJavaScriptParser().Parse(ctx, "a.js", []byte("class A {}"))
	assert.ErrorIs(t, err, context.Canceled)
}
