package parsers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/mvp-joe/testable-docs/internal/ast"
)

// ErrSyntax is returned when the source text cannot be parsed cleanly.
var ErrSyntax = errors.New("syntax error")

// Parser turns source text into the syntax tree and comment list the
// extractor consumes.
type Parser interface {
	Parse(ctx context.Context, filePath string, source []byte) (*ast.File, error)
}

// treeSitterParser provides common tree-sitter parsing functionality.
type treeSitterParser struct {
	language *sitter.Language
	lang     string
}

// newTreeSitterParser creates a new tree-sitter parser for the given language.
func newTreeSitterParser(language *sitter.Language, lang string) *treeSitterParser {
	return &treeSitterParser{
		language: language,
		lang:     lang,
	}
}

// NewJavaScriptParser creates a parser for JavaScript sources, JSX included.
// It uses the TSX grammar, which accepts plain JavaScript as is.
func NewJavaScriptParser() Parser {
	return newTreeSitterParser(sitter.NewLanguage(typescript.LanguageTSX()), "javascript")
}

// NewTypeScriptParser creates a parser for TypeScript sources. Angle bracket
// type assertions only parse with this grammar.
func NewTypeScriptParser() Parser {
	return newTreeSitterParser(sitter.NewLanguage(typescript.LanguageTypescript()), "typescript")
}

// ForPath picks the grammar matching the file extension.
func ForPath(filePath string) Parser {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts", ".mts", ".cts":
		return NewTypeScriptParser()
	default:
		return NewJavaScriptParser()
	}
}

// ParseSource parses source with the grammar matching filePath.
func ParseSource(ctx context.Context, filePath string, source []byte) (*ast.File, error) {
	return ForPath(filePath).Parse(ctx, filePath, source)
}

// Parse parses source and converts the concrete tree into an ast.File.
func (p *treeSitterParser) Parse(ctx context.Context, filePath string, source []byte) (*ast.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.language); err != nil {
		return nil, fmt.Errorf("failed to set %s language: %w", p.lang, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s file: %s", p.lang, filePath)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(root, filePath)
	}

	c := newConverter(source)
	c.collectComments(root)

	return &ast.File{
		Path:     filePath,
		Root:     c.convert(root),
		Comments: c.comments,
	}, nil
}

// syntaxError reports the first error or missing node of the tree.
func syntaxError(root *sitter.Node, filePath string) error {
	var bad *sitter.Node
	walkTree(root, func(n *sitter.Node) bool {
		if bad != nil {
			return false
		}
		if n.IsError() || n.IsMissing() {
			bad = n
			return false
		}
		return true
	})

	if bad == nil {
		return fmt.Errorf("%w in %s", ErrSyntax, filePath)
	}
	pos := bad.StartPosition()
	return fmt.Errorf("%w in %s at line %d, column %d", ErrSyntax, filePath, pos.Row+1, pos.Column)
}

// extractNodeText extracts the text content of a tree-sitter node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for each node.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		walkTree(child, visitor)
	}
}

// namedChildren returns the named, non-comment children of node.
func namedChildren(node *sitter.Node) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(uint(i))
		if child.Kind() == "comment" {
			continue
		}
		results = append(results, child)
	}
	return results
}

// firstNamedChild returns the first named, non-comment child of node.
func firstNamedChild(node *sitter.Node) *sitter.Node {
	children := namedChildren(node)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil &&
		a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Kind() == b.Kind()
}
