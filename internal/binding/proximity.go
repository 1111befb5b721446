package binding

import (
	"github.com/mvp-joe/testable-docs/internal/ast"
	"github.com/mvp-joe/testable-docs/internal/jsdoc"
)

// Proximity binds the first block comment whose end lies strictly between
// zero and the threshold distance before the declaration. Classes are
// measured from their start, methods from the start of their key.
//
// Documentation further away than the threshold is not found and the
// declaration is reported as uncommented.
type Proximity struct {
	comments       []*ast.Comment
	classDistance  int
	methodDistance int
	parsed         parsedCache
}

// NewProximity creates a proximity binder over the block comments of file.
// Non-positive distances fall back to the defaults.
func NewProximity(file *ast.File, classDistance, methodDistance int) *Proximity {
	if classDistance <= 0 {
		classDistance = DefaultClassDistance
	}
	if methodDistance <= 0 {
		methodDistance = DefaultMethodDistance
	}
	return &Proximity{
		comments:       file.BlockComments(),
		classDistance:  classDistance,
		methodDistance: methodDistance,
		parsed:         make(parsedCache),
	}
}

// Bind implements Binder.
func (p *Proximity) Bind(decl *ast.Node) []*jsdoc.Comment {
	if decl == nil {
		return nil
	}

	offset, limit := decl.Start, p.classDistance
	if decl.Kind == ast.KindMethodDefinition {
		limit = p.methodDistance
		if decl.Key != nil {
			offset = decl.Key.Start
		}
	}

	for _, c := range p.comments {
		distance := offset - c.End
		if distance > 0 && distance < limit {
			return []*jsdoc.Comment{p.parsed.get(c)}
		}
	}
	return nil
}
