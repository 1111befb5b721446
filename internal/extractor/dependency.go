package extractor

import (
	"github.com/mvp-joe/testable-docs/internal/ast"
)

// requireFunc is the module import primitive the resolver recognizes.
const requireFunc = "require"

// ResolveDependency returns the module a top-level variable of the file was
// loaded from, as in
//
//	const Base = require('./base');
//
// Declarators are visited along the file's assignment and wrapper chains and
// through export statements, so modules wrapped in an immediately invoked
// function are covered. The first declarator binding name to a require call with exactly one string literal
// argument decides. Import declarations binding name are honored as well.
// No alias chains are followed.
func ResolveDependency(root *ast.Node, name string) (string, bool) {
	if root == nil || name == "" {
		return "", false
	}

	for _, decl := range ast.Follow(root, ast.KindVariableDeclarator) {
		if id, ok := ast.IdentifierName(decl.ID); !ok || id != name {
			continue
		}
		if module, ok := requireArgument(decl.Init); ok {
			return module, true
		}
	}

	for _, stmt := range root.Body {
		if stmt.Kind == ast.KindExportDeclaration {
			stmt = stmt.Declaration
		}
		if stmt == nil || stmt.Kind != ast.KindImportDeclaration || !isStringLiteral(stmt.Source) {
			continue
		}
		for _, spec := range stmt.Specifiers {
			if id, ok := ast.IdentifierName(spec); ok && id == name {
				return stmt.Source.Value, true
			}
		}
	}
	return "", false
}

// requireArgument matches require('<module>') and returns the module name.
func requireArgument(init *ast.Node) (string, bool) {
	if init == nil || init.Kind != ast.KindCallExpression {
		return "", false
	}
	if callee, ok := ast.IdentifierName(init.Callee); !ok || callee != requireFunc {
		return "", false
	}
	if len(init.Arguments) != 1 || !isStringLiteral(init.Arguments[0]) {
		return "", false
	}
	return init.Arguments[0].Value, true
}

func isStringLiteral(n *ast.Node) bool {
	return n != nil && n.Kind == ast.KindLiteral && n.Type == "string"
}
