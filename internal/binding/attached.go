package binding

import (
	"github.com/mvp-joe/testable-docs/internal/ast"
	"github.com/mvp-joe/testable-docs/internal/jsdoc"
)

// Attached binds the block comments the parser attached to the declaration.
type Attached struct {
	parsed parsedCache
}

// NewAttached creates an attached-comment binder.
func NewAttached() *Attached {
	return &Attached{parsed: make(parsedCache)}
}

// Bind implements Binder.
func (a *Attached) Bind(decl *ast.Node) []*jsdoc.Comment {
	if decl == nil {
		return nil
	}

	var out []*jsdoc.Comment
	for _, c := range decl.Comments {
		if c.IsBlock() {
			out = append(out, a.parsed.get(c))
		}
	}
	return out
}
