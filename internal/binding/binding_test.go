package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/testable-docs/internal/ast"
	"github.com/mvp-joe/testable-docs/internal/jsdoc"
)

// Test Plan for Comment Binding:
// - Proximity binds a comment ending within the window before a class
// - A comment ending exactly at the declaration or at the threshold is not bound
// - Methods are measured from the start of their key
// - Line comments never bind
// - The first comment in the window wins
// - Non-positive distances fall back to the defaults
// - Attached binds only the block comments stored on the node
// - New selects strategies and rejects unknown names
// - Merge lets later comments override earlier ones

func blockComment(text string, start, end int) *ast.Comment {
	return &ast.Comment{Kind: ast.CommentBlock, Text: text, Start: start, End: end}
}

func TestProximity_ClassWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		commentEnd int
		classStart int
		bound      bool
	}{
		{"just before", 99, 100, true},
		{"within window", 60, 100, true},
		{"one short of threshold", 51, 100, true},
		{"at threshold", 50, 100, false},
		{"beyond threshold", 10, 100, false},
		{"touching", 100, 100, false},
		{"after the class", 120, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file := &ast.File{Comments: []*ast.Comment{blockComment("* Doc.", 0, tt.commentEnd)}}
			class := &ast.Node{Kind: ast.KindClassDeclaration, Start: tt.classStart}

			bound := NewProximity(file, 0, 0).Bind(class)
			if tt.bound {
				require.Len(t, bound, 1)
				assert.Equal(t, "Doc.", bound[0].Description)
			} else {
				assert.Nil(t, bound)
			}
		})
	}
}

func TestProximity_MethodMeasuredFromKey(t *testing.T) {
	t.Parallel()

	file := &ast.File{Comments: []*ast.Comment{blockComment("* Method doc.", 0, 40)}}

	// The method starts at "static" far from the comment, the key is close.
	method := &ast.Node{
		Kind:  ast.KindMethodDefinition,
		Start: 45,
		Key:   &ast.Node{Kind: ast.KindIdentifier, Name: "build", Start: 80},
	}
	bound := NewProximity(file, 50, 50).Bind(method)
	require.Len(t, bound, 1)
	assert.Equal(t, "Method doc.", bound[0].Description)

	far := &ast.Node{
		Kind:  ast.KindMethodDefinition,
		Start: 45,
		Key:   &ast.Node{Kind: ast.KindIdentifier, Name: "build", Start: 95},
	}
	assert.Nil(t, NewProximity(file, 50, 50).Bind(far))

	assert.Len(t, NewProximity(file, 50, 60).Bind(far), 1)
}

func TestProximity_IgnoresLineCommentsAndPicksFirst(t *testing.T) {
	t.Parallel()

	file := &ast.File{Comments: []*ast.Comment{
		{Kind: ast.CommentLine, Text: " not documentation", Start: 70, End: 95},
		blockComment("* First.", 0, 60),
		blockComment("* Second.", 61, 90),
	}}
	class := &ast.Node{Kind: ast.KindClassDeclaration, Start: 100}

	bound := NewProximity(file, 50, 50).Bind(class)
	require.Len(t, bound, 1)
	assert.Equal(t, "First.", bound[0].Description)

	assert.Nil(t, NewProximity(file, 50, 50).Bind(nil))
}

func TestProximity_ParsesEachCommentOnce(t *testing.T) {
	t.Parallel()

	file := &ast.File{Comments: []*ast.Comment{blockComment("* Shared.", 0, 10)}}
	p := NewProximity(file, 50, 50)

	a := p.Bind(&ast.Node{Kind: ast.KindClassDeclaration, Start: 20})
	b := p.Bind(&ast.Node{Kind: ast.KindClassDeclaration, Start: 30})
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Same(t, a[0], b[0])
}

func TestAttached(t *testing.T) {
	t.Parallel()

	decl := &ast.Node{
		Kind: ast.KindClassDeclaration,
		Comments: []*ast.Comment{
			blockComment("* One.", 0, 10),
			{Kind: ast.CommentLine, Text: " skipped"},
			blockComment("* Two.\n * @private", 20, 40),
		},
	}

	bound := NewAttached().Bind(decl)
	require.Len(t, bound, 2)
	assert.Equal(t, "One.", bound[0].Description)
	assert.True(t, bound[1].Private)

	assert.Nil(t, NewAttached().Bind(&ast.Node{Kind: ast.KindClassDeclaration}))
	assert.Nil(t, NewAttached().Bind(nil))
}

func TestNew(t *testing.T) {
	t.Parallel()

	file := &ast.File{}

	b, err := New(file, Options{})
	require.NoError(t, err)
	assert.IsType(t, &Proximity{}, b)

	b, err = New(file, DefaultOptions())
	require.NoError(t, err)
	assert.IsType(t, &Proximity{}, b)

	b, err = New(file, Options{Strategy: StrategyAttached})
	require.NoError(t, err)
	assert.IsType(t, &Attached{}, b)

	_, err = New(file, Options{Strategy: "nearest"})
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	first := jsdoc.Parse("* First description.\n * @param {string} a first a\n * @returns {number} count")
	second := jsdoc.Parse("* @param {number} a second a\n * @param {boolean} a ignored duplicate\n * @private")
	third := jsdoc.Parse("* Last description.")

	doc := Merge([]*jsdoc.Comment{first, nil, second, third})

	assert.True(t, doc.HasComment)
	assert.Equal(t, "Last description.", doc.Description)
	assert.True(t, doc.Private)

	a, ok := doc.Param("a")
	require.True(t, ok)
	assert.Equal(t, "second a", a.Description)
	assert.Equal(t, jsdoc.NameExpression{Name: "number"}, a.Type)

	require.NotNil(t, doc.Returns)
	assert.Equal(t, "count", doc.Returns.Description)

	_, ok = doc.Param("missing")
	assert.False(t, ok)
}

func TestMerge_Empty(t *testing.T) {
	t.Parallel()

	doc := Merge(nil)
	assert.False(t, doc.HasComment)
	assert.Empty(t, doc.Description)
	assert.Nil(t, doc.Returns)
	assert.False(t, doc.Private)
}
