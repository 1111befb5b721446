package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Tree Search:
// - Locate finds classes anywhere in the tree, in source order
// - Locate does not descend into a matching node
// - Locate returns nil for an empty result and a nil root
// - Locate reaches nodes under Other through the reflective fallback
// - Follow descends only through the first present property
// - Follow reaches a require call behind a variable declaration
// - Follow enters the declaration of an export statement

func ident(name string) *Node {
	return &Node{Kind: KindIdentifier, Name: name}
}

func class(name string, body ...*Node) *Node {
	return &Node{Kind: KindClassDeclaration, ID: ident(name), Body: body}
}

func TestLocate_FindsClassesInSourceOrder(t *testing.T) {
	t.Parallel()

	first := class("First")
	inner := &Node{Kind: KindClassExpression, ID: ident("Inner")}
	second := &Node{
		Kind: KindVariableDeclaration,
		Declarations: []*Node{
			{Kind: KindVariableDeclarator, ID: ident("x"), Init: inner},
		},
	}
	exported := class("Exported")
	root := &Node{
		Kind: KindProgram,
		Body: []*Node{
			first,
			second,
			{Kind: KindExportDeclaration, Declaration: exported},
		},
	}

	found := Locate(root, KindClassDeclaration, KindClassExpression)
	assert.Equal(t, []*Node{first, inner, exported}, found)
}

func TestLocate_DoesNotDescendIntoMatch(t *testing.T) {
	t.Parallel()

	nestedInMethod := class("Nested")
	outer := class("Outer", &Node{
		Kind: KindMethodDefinition,
		Key:  ident("build"),
		Body: []*Node{nestedInMethod},
	})
	root := &Node{Kind: KindProgram, Body: []*Node{outer}}

	found := Locate(root, KindClassDeclaration)
	require.Len(t, found, 1)
	assert.Same(t, outer, found[0])

	// Searching below the match still finds the nested class.
	assert.Equal(t, []*Node{nestedInMethod}, LocateIn(outer.Body, KindClassDeclaration))
}

func TestLocate_EmptyResultIsNil(t *testing.T) {
	t.Parallel()

	root := &Node{Kind: KindProgram, Body: []*Node{
		{Kind: KindExpressionStatement, Expression: ident("x")},
	}}

	assert.Nil(t, Locate(root, KindClassDeclaration))
	assert.Nil(t, Locate(nil, KindClassDeclaration))
	assert.Nil(t, LocateIn(nil, KindClassDeclaration))
}

func TestLocate_OtherNodesUseReflection(t *testing.T) {
	t.Parallel()

	hidden := class("Hidden")
	root := &Node{Kind: KindProgram, Body: []*Node{
		{
			Kind: KindOther,
			Type: "if_statement",
			Children: []*Node{
				{Kind: KindOther, Type: "statement_block", Children: []*Node{hidden}},
			},
		},
	}}

	assert.Equal(t, []*Node{hidden}, Locate(root, KindClassDeclaration))
}

func TestFollow_PrefersFirstPresentProperty(t *testing.T) {
	t.Parallel()

	viaRight := &Node{Kind: KindCallExpression, Callee: ident("require")}
	viaCallee := &Node{Kind: KindCallExpression, Callee: ident("other")}

	// Right wins over Expression and Callee.
	n := &Node{
		Kind:       KindAssignmentExpression,
		Left:       &Node{Kind: KindCallExpression, Callee: ident("left")},
		Right:      viaRight,
		Expression: viaCallee,
	}
	assert.Equal(t, []*Node{viaRight}, Follow(n, KindCallExpression))

	// Left is never followed.
	onlyLeft := &Node{
		Kind: KindAssignmentPattern,
		Left: &Node{Kind: KindCallExpression, Callee: ident("left")},
	}
	assert.Nil(t, Follow(onlyLeft, KindCallExpression))
}

func TestFollow_ReachesDeclarators(t *testing.T) {
	t.Parallel()

	declarator := &Node{
		Kind: KindVariableDeclarator,
		ID:   ident("Base"),
		Init: &Node{Kind: KindCallExpression, Callee: ident("require")},
	}
	root := &Node{Kind: KindProgram, Body: []*Node{
		{Kind: KindVariableDeclaration, Declarations: []*Node{declarator}},
		class("Foo"),
	}}

	assert.Equal(t, []*Node{declarator}, Follow(root, KindVariableDeclarator))
	assert.Nil(t, Follow(nil, KindVariableDeclarator))
}

func TestFollow_EntersExportedDeclaration(t *testing.T) {
	t.Parallel()

	declarator := &Node{
		Kind: KindVariableDeclarator,
		ID:   ident("Base"),
		Init: &Node{Kind: KindCallExpression, Callee: ident("require")},
	}
	root := &Node{Kind: KindProgram, Body: []*Node{
		{Kind: KindExportDeclaration, Declaration: &Node{
			Kind:         KindVariableDeclaration,
			Declarations: []*Node{declarator},
		}},
		{Kind: KindExportDeclaration, Declaration: class("Foo")},
	}}

	assert.Equal(t, []*Node{declarator}, Follow(root, KindVariableDeclarator))
}

func TestBlockComments(t *testing.T) {
	t.Parallel()

	block := &Comment{Kind: CommentBlock, Text: "* doc"}
	f := &File{Comments: []*Comment{
		{Kind: CommentLine, Text: " note"},
		block,
	}}

	assert.Equal(t, []*Comment{block}, f.BlockComments())

	name, ok := IdentifierName(ident("Foo"))
	assert.True(t, ok)
	assert.Equal(t, "Foo", name)

	_, ok = IdentifierName(&Node{Kind: KindLiteral})
	assert.False(t, ok)
}
