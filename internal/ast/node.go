package ast

// Kind identifies the shape of a Node.
type Kind string

// Node kinds the extractor understands. Grammar nodes without a dedicated
// kind are converted to KindOther and keep their grammar type in Node.Type.
const (
	KindProgram                 Kind = "Program"
	KindClassDeclaration        Kind = "ClassDeclaration"
	KindClassExpression         Kind = "ClassExpression"
	KindMethodDefinition        Kind = "MethodDefinition"
	KindIdentifier              Kind = "Identifier"
	KindRestElement             Kind = "RestElement"
	KindAssignmentPattern       Kind = "AssignmentPattern"
	KindVariableDeclaration     Kind = "VariableDeclaration"
	KindVariableDeclarator      Kind = "VariableDeclarator"
	KindCallExpression          Kind = "CallExpression"
	KindLiteral                 Kind = "Literal"
	KindExpressionStatement     Kind = "ExpressionStatement"
	KindAssignmentExpression    Kind = "AssignmentExpression"
	KindFunctionExpression      Kind = "FunctionExpression"
	KindBlockStatement          Kind = "BlockStatement"
	KindParenthesizedExpression Kind = "ParenthesizedExpression"
	KindExportDeclaration       Kind = "ExportDeclaration"
	KindImportDeclaration       Kind = "ImportDeclaration"
	KindOther                   Kind = "Other"
)

// Position is a line/column pair. Lines are 1-based, columns 0-based.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Location spans the first and last position of a node.
type Location struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Node is one element of the syntax tree handed to the extractor.
//
// Only the fields that belong to a node's kind are populated:
//
//	Program, BlockStatement, FunctionExpression  Body
//	ClassDeclaration, ClassExpression            ID, SuperClass, Body
//	MethodDefinition                             Key, Params, Body
//	RestElement                                  Argument
//	AssignmentPattern, AssignmentExpression      Left, Right
//	VariableDeclaration                          Declarations
//	VariableDeclarator                           ID, Init
//	CallExpression                               Callee, Arguments
//	ExpressionStatement, ParenthesizedExpression Expression
//	ExportDeclaration                            Declaration
//	ImportDeclaration                            Specifiers, Source
//	Identifier                                   Name
//	Literal                                      Value, Raw
//	Other                                        Children
type Node struct {
	Kind  Kind
	Type  string // grammar node type reported by the parser
	Start int
	End   int
	Loc   Location

	Name  string
	Value string
	Raw   string

	ID          *Node
	SuperClass  *Node
	Key         *Node
	Argument    *Node
	Left        *Node
	Right       *Node
	Init        *Node
	Callee      *Node
	Expression  *Node
	Declaration *Node
	Source      *Node

	Body         []*Node
	Params       []*Node
	Declarations []*Node
	Arguments    []*Node
	Specifiers   []*Node
	Children     []*Node

	// Comments holds the comments the parser attached to this node: the
	// run of comments immediately preceding it.
	Comments []*Comment
}

// CommentKind distinguishes block comments from line comments.
type CommentKind string

const (
	CommentBlock CommentKind = "block"
	CommentLine  CommentKind = "line"
)

// Comment is a raw comment token. Text excludes the comment delimiters.
type Comment struct {
	Kind  CommentKind
	Text  string
	Start int
	End   int
}

// IsBlock reports whether the comment is a block comment.
func (c *Comment) IsBlock() bool {
	return c != nil && c.Kind == CommentBlock
}

// File is a parsed source file: the tree and the flat comment list.
type File struct {
	Path     string
	Root     *Node
	Comments []*Comment
}

// BlockComments returns the block comments of the file in source order.
func (f *File) BlockComments() []*Comment {
	var blocks []*Comment
	for _, c := range f.Comments {
		if c.IsBlock() {
			blocks = append(blocks, c)
		}
	}
	return blocks
}

// IdentifierName returns the name of n when it is an identifier.
func IdentifierName(n *Node) (string, bool) {
	if n == nil || n.Kind != KindIdentifier {
		return "", false
	}
	return n.Name, true
}
