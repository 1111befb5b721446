package parsers

import (
	"slices"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/testable-docs/internal/ast"
)

// converter maps tree-sitter JavaScript/TypeScript nodes onto ast.Node.
type converter struct {
	source   []byte
	comments []*ast.Comment
	byStart  map[uint]*ast.Comment
}

func newConverter(source []byte) *converter {
	return &converter{
		source:  source,
		byStart: make(map[uint]*ast.Comment),
	}
}

// collectComments gathers every comment token in source order.
func (c *converter) collectComments(root *sitter.Node) {
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() != "comment" {
			return true
		}

		text := extractNodeText(n, c.source)
		comment := &ast.Comment{
			Start: int(n.StartByte()),
			End:   int(n.EndByte()),
		}
		if strings.HasPrefix(text, "/*") {
			comment.Kind = ast.CommentBlock
			comment.Text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
		} else {
			comment.Kind = ast.CommentLine
			comment.Text = strings.TrimPrefix(text, "//")
		}

		c.comments = append(c.comments, comment)
		c.byStart[n.StartByte()] = comment
		return false
	})
}

func (c *converter) base(n *sitter.Node, kind ast.Kind) *ast.Node {
	start, end := n.StartPosition(), n.EndPosition()
	return &ast.Node{
		Kind:  kind,
		Type:  n.Kind(),
		Start: int(n.StartByte()),
		End:   int(n.EndByte()),
		Loc: ast.Location{
			Start: ast.Position{Line: int(start.Row) + 1, Column: int(start.Column)},
			End:   ast.Position{Line: int(end.Row) + 1, Column: int(end.Column)},
		},
	}
}

func (c *converter) convert(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}

	switch n.Kind() {
	case "program":
		node := c.base(n, ast.KindProgram)
		node.Body = c.convertAll(namedChildren(n))
		return node

	case "statement_block":
		node := c.base(n, ast.KindBlockStatement)
		node.Body = c.convertAll(namedChildren(n))
		return node

	case "class_declaration", "abstract_class_declaration":
		return c.convertClass(n, ast.KindClassDeclaration)

	case "class":
		return c.convertClass(n, ast.KindClassExpression)

	case "identifier", "property_identifier", "type_identifier",
		"private_property_identifier", "shorthand_property_identifier", "shorthand_property_identifier_pattern":
		node := c.base(n, ast.KindIdentifier)
		node.Name = extractNodeText(n, c.source)
		return node

	case "string":
		node := c.base(n, ast.KindLiteral)
		node.Raw = extractNodeText(n, c.source)
		node.Value = unquote(node.Raw)
		return node

	case "number", "true", "false", "null", "undefined":
		node := c.base(n, ast.KindLiteral)
		node.Raw = extractNodeText(n, c.source)
		node.Value = node.Raw
		return node

	case "lexical_declaration", "variable_declaration":
		node := c.base(n, ast.KindVariableDeclaration)
		for _, child := range namedChildren(n) {
			if child.Kind() == "variable_declarator" {
				node.Declarations = append(node.Declarations, c.convert(child))
			}
		}
		return node

	case "variable_declarator":
		node := c.base(n, ast.KindVariableDeclarator)
		node.ID = c.convert(n.ChildByFieldName("name"))
		node.Init = c.convert(n.ChildByFieldName("value"))
		return node

	case "call_expression":
		node := c.base(n, ast.KindCallExpression)
		node.Callee = c.convert(n.ChildByFieldName("function"))
		if args := n.ChildByFieldName("arguments"); args != nil {
			if args.Kind() == "arguments" {
				node.Arguments = c.convertAll(namedChildren(args))
			} else {
				node.Arguments = []*ast.Node{c.convert(args)}
			}
		}
		return node

	case "expression_statement":
		node := c.base(n, ast.KindExpressionStatement)
		node.Expression = c.convert(firstNamedChild(n))
		return node

	case "parenthesized_expression":
		node := c.base(n, ast.KindParenthesizedExpression)
		node.Expression = c.convert(firstNamedChild(n))
		return node

	case "assignment_expression":
		node := c.base(n, ast.KindAssignmentExpression)
		node.Left = c.convert(n.ChildByFieldName("left"))
		node.Right = c.convert(n.ChildByFieldName("right"))
		return node

	case "function_expression", "function", "function_declaration", "arrow_function",
		"generator_function", "generator_function_declaration":
		return c.convertFunction(n)

	case "import_statement":
		return c.convertImport(n)

	case "export_statement":
		node := c.base(n, ast.KindExportDeclaration)
		decl := n.ChildByFieldName("declaration")
		if decl == nil {
			decl = n.ChildByFieldName("value")
		}
		node.Declaration = c.convert(decl)
		return node
	}

	node := c.base(n, ast.KindOther)
	node.Children = c.convertAll(namedChildren(n))
	return node
}

// convertImport records the local names an import statement binds and the
// module it reads them from.
func (c *converter) convertImport(n *sitter.Node) *ast.Node {
	node := c.base(n, ast.KindImportDeclaration)
	node.Source = c.convert(n.ChildByFieldName("source"))

	for _, child := range namedChildren(n) {
		switch child.Kind() {
		case "import_clause":
			node.Specifiers = append(node.Specifiers, c.importBindings(child)...)
		case "import_require_clause":
			for _, part := range namedChildren(child) {
				switch part.Kind() {
				case "identifier":
					node.Specifiers = append(node.Specifiers, c.convert(part))
				case "string":
					node.Source = c.convert(part)
				}
			}
		}
	}
	return node
}

func (c *converter) importBindings(clause *sitter.Node) []*ast.Node {
	var out []*ast.Node
	for _, child := range namedChildren(clause) {
		switch child.Kind() {
		case "identifier":
			out = append(out, c.convert(child))
		case "namespace_import":
			out = append(out, c.convert(firstNamedChild(child)))
		case "named_imports":
			for _, spec := range namedChildren(child) {
				local := spec.ChildByFieldName("alias")
				if local == nil {
					local = spec.ChildByFieldName("name")
				}
				if local != nil {
					out = append(out, c.convert(local))
				}
			}
		}
	}
	return out
}

func (c *converter) convertAll(nodes []*sitter.Node) []*ast.Node {
	var out []*ast.Node
	for _, n := range nodes {
		if converted := c.convert(n); converted != nil {
			out = append(out, converted)
		}
	}
	return out
}

func (c *converter) convertClass(n *sitter.Node, kind ast.Kind) *ast.Node {
	node := c.base(n, kind)
	node.ID = c.convert(n.ChildByFieldName("name"))
	node.SuperClass = c.convert(superClassNode(n))
	node.Comments = c.attachedComments(n)

	for _, member := range namedChildren(n.ChildByFieldName("body")) {
		if member.Kind() == "method_definition" {
			node.Body = append(node.Body, c.convertMethod(member))
			continue
		}
		node.Body = append(node.Body, c.convert(member))
	}
	return node
}

// superClassNode finds the extended expression. The TypeScript grammar wraps it
// in an extends_clause, the JavaScript grammar puts it directly under
// class_heritage.
func superClassNode(class *sitter.Node) *sitter.Node {
	for _, child := range namedChildren(class) {
		if child.Kind() != "class_heritage" {
			continue
		}
		for _, h := range namedChildren(child) {
			if h.Kind() == "extends_clause" {
				return h.ChildByFieldName("value")
			}
			if h.Kind() != "implements_clause" {
				return h
			}
		}
	}
	return nil
}

func (c *converter) convertMethod(n *sitter.Node) *ast.Node {
	node := c.base(n, ast.KindMethodDefinition)
	node.Key = c.convert(n.ChildByFieldName("name"))
	node.Params = c.convertParams(n.ChildByFieldName("parameters"))
	if body := n.ChildByFieldName("body"); body != nil {
		node.Body = c.convertAll(namedChildren(body))
	}
	node.Comments = c.attachedComments(n)
	return node
}

func (c *converter) convertFunction(n *sitter.Node) *ast.Node {
	node := c.base(n, ast.KindFunctionExpression)
	node.ID = c.convert(n.ChildByFieldName("name"))
	if params := n.ChildByFieldName("parameters"); params != nil {
		node.Params = c.convertParams(params)
	} else if param := n.ChildByFieldName("parameter"); param != nil {
		node.Params = []*ast.Node{c.convertParam(param)}
	}

	body := n.ChildByFieldName("body")
	switch {
	case body == nil:
	case body.Kind() == "statement_block":
		node.Body = c.convertAll(namedChildren(body))
	default:
		node.Body = []*ast.Node{c.convert(body)}
	}
	return node
}

func (c *converter) convertParams(params *sitter.Node) []*ast.Node {
	var out []*ast.Node
	for _, p := range namedChildren(params) {
		out = append(out, c.convertParam(p))
	}
	return out
}

// convertParam normalizes the parameter shapes of both grammars into
// Identifier, RestElement and AssignmentPattern nodes.
func (c *converter) convertParam(p *sitter.Node) *ast.Node {
	switch p.Kind() {
	case "required_parameter", "optional_parameter":
		pattern := c.convertParam(p.ChildByFieldName("pattern"))
		value := p.ChildByFieldName("value")
		if value == nil || pattern == nil {
			return pattern
		}
		node := c.base(p, ast.KindAssignmentPattern)
		node.Left = pattern
		node.Right = c.convert(value)
		return node

	case "rest_pattern":
		node := c.base(p, ast.KindRestElement)
		node.Argument = c.convert(firstNamedChild(p))
		return node

	case "assignment_pattern":
		node := c.base(p, ast.KindAssignmentPattern)
		node.Left = c.convertParam(p.ChildByFieldName("left"))
		node.Right = c.convert(p.ChildByFieldName("right"))
		return node
	}
	return c.convert(p)
}

// attachedComments returns the comments immediately preceding a declaration.
// The search starts from the outermost statement the declaration opens, so a
// comment above "export class" or "module.exports = class" is found as well.
func (c *converter) attachedComments(n *sitter.Node) []*ast.Comment {
	anchor := n
	for {
		parent := anchor.Parent()
		if parent == nil || !opensWith(parent, anchor) {
			break
		}
		anchor = parent
	}

	var run []*ast.Comment
	for prev := anchor.PrevSibling(); prev != nil && prev.Kind() == "comment"; prev = prev.PrevSibling() {
		if comment, ok := c.byStart[prev.StartByte()]; ok {
			run = append(run, comment)
		}
	}
	slices.Reverse(run)
	return run
}

// opensWith reports whether parent is a wrapper statement that child is the
// declared value of.
func opensWith(parent, child *sitter.Node) bool {
	switch parent.Kind() {
	case "export_statement", "expression_statement", "lexical_declaration", "variable_declaration":
		return true
	case "assignment_expression":
		return sameNode(parent.ChildByFieldName("right"), child)
	case "variable_declarator":
		return sameNode(parent.ChildByFieldName("value"), child)
	}
	return false
}

func unquote(raw string) string {
	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if (first == '"' || first == '\'') && first == last {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}
