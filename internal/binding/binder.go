// Package binding associates documentation comments with class and method
// declarations.
package binding

import (
	"errors"
	"fmt"

	"github.com/mvp-joe/testable-docs/internal/ast"
	"github.com/mvp-joe/testable-docs/internal/jsdoc"
)

// ErrUnknownStrategy is returned for a strategy name New does not know.
var ErrUnknownStrategy = errors.New("unknown binding strategy")

// Strategy names a comment binding strategy.
type Strategy string

const (
	// StrategyProximity scans the file's comment list for the block comment
	// ending shortly before the declaration.
	StrategyProximity Strategy = "proximity"

	// StrategyAttached uses the comments the parser attached to the
	// declaration node.
	StrategyAttached Strategy = "attached"
)

// Default distances, in bytes, between the end of a comment and the
// declaration it documents.
const (
	DefaultClassDistance  = 50
	DefaultMethodDistance = 50
)

// Binder finds the documentation comments of a class or method node. A
// declaration without comments yields nil; that is not an error.
type Binder interface {
	Bind(decl *ast.Node) []*jsdoc.Comment
}

// Options selects and tunes the binding strategy.
type Options struct {
	Strategy       Strategy
	ClassDistance  int
	MethodDistance int
}

// DefaultOptions returns proximity binding with the default distances.
func DefaultOptions() Options {
	return Options{
		Strategy:       StrategyProximity,
		ClassDistance:  DefaultClassDistance,
		MethodDistance: DefaultMethodDistance,
	}
}

// New creates the binder for one file.
func New(file *ast.File, opts Options) (Binder, error) {
	switch opts.Strategy {
	case StrategyProximity, "":
		return NewProximity(file, opts.ClassDistance, opts.MethodDistance), nil
	case StrategyAttached:
		return NewAttached(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, opts.Strategy)
}

// parsedCache parses every raw comment at most once.
type parsedCache map[*ast.Comment]*jsdoc.Comment

func (c parsedCache) get(raw *ast.Comment) *jsdoc.Comment {
	if parsed, ok := c[raw]; ok {
		return parsed
	}
	parsed := jsdoc.Parse(raw.Text)
	c[raw] = parsed
	return parsed
}
