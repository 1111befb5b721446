// Package extractor builds class documentation records from a parsed file.
package extractor

import (
	"context"

	"github.com/mvp-joe/testable-docs/internal/ast"
	"github.com/mvp-joe/testable-docs/internal/binding"
	"github.com/mvp-joe/testable-docs/internal/docs"
	"github.com/mvp-joe/testable-docs/internal/jsdoc"
	"github.com/mvp-joe/testable-docs/internal/parsers"
)

// Extractor finds classes, their methods and parameters in a syntax tree and
// attaches the documentation bound to each of them.
type Extractor struct {
	binding binding.Options
}

// New creates an extractor using the given comment binding options.
func New(opts binding.Options) (*Extractor, error) {
	if _, err := binding.New(&ast.File{}, opts); err != nil {
		return nil, err
	}
	return &Extractor{binding: opts}, nil
}

// Default creates an extractor with proximity binding.
func Default() *Extractor {
	return &Extractor{binding: binding.DefaultOptions()}
}

// ExtractSource parses source and extracts its classes. Parse failures are
// returned unchanged.
func (e *Extractor) ExtractSource(ctx context.Context, filePath string, source []byte) ([]*docs.ClassDefinition, error) {
	file, err := parsers.ParseSource(ctx, filePath, source)
	if err != nil {
		return nil, err
	}
	return e.Extract(file), nil
}

// Extract returns one ClassDefinition per class declaration or expression in
// file, in source order. Classes nested in another class are reported on
// their own and their methods are not attributed to the outer class.
func (e *Extractor) Extract(file *ast.File) []*docs.ClassDefinition {
	binder, err := binding.New(file, e.binding)
	if err != nil {
		// Options are validated by New; only a hand-built Extractor gets here.
		binder = binding.NewProximity(file, e.binding.ClassDistance, e.binding.MethodDistance)
	}

	var classes []*docs.ClassDefinition
	for _, node := range classNodes([]*ast.Node{file.Root}) {
		classes = append(classes, e.class(file, node, binder))
	}
	return classes
}

var classKinds = []ast.Kind{ast.KindClassDeclaration, ast.KindClassExpression}

// classNodes locates the classes under nodes, each followed by the classes
// nested in its body.
func classNodes(nodes []*ast.Node) []*ast.Node {
	var out []*ast.Node
	for _, n := range ast.LocateIn(nodes, classKinds...) {
		out = append(out, n)
		out = append(out, classNodes(n.Body)...)
	}
	return out
}

// methodNodes locates the methods of a class body. The search stops at
// nested classes, which own their methods.
func methodNodes(body []*ast.Node) []*ast.Node {
	var methods []*ast.Node
	for _, n := range ast.LocateIn(body, append([]ast.Kind{ast.KindMethodDefinition}, classKinds...)...) {
		if n.Kind == ast.KindMethodDefinition {
			methods = append(methods, n)
		}
	}
	return methods
}

func (e *Extractor) class(file *ast.File, node *ast.Node, binder binding.Binder) *docs.ClassDefinition {
	def := &docs.ClassDefinition{
		Name:     docs.AnonymousName,
		Line:     node.Loc.Start.Line,
		Column:   node.Loc.Start.Column,
		FilePath: file.Path,
		Methods:  []*docs.Method{},
	}

	if name, ok := ast.IdentifierName(node.ID); ok {
		def.Name = name
	}
	if name, ok := ast.IdentifierName(node.SuperClass); ok {
		def.SuperClass = name
		def.SuperClassModule, _ = ResolveDependency(file.Root, name)
	}

	doc := binding.Merge(binder.Bind(node))
	def.HasComment = doc.HasComment
	def.Description = doc.Description
	def.Private = doc.Private

	for _, m := range methodNodes(node.Body) {
		def.Methods = append(def.Methods, e.method(m, binder))
	}
	docs.SortMethods(def.Methods)

	return def
}

func (e *Extractor) method(node *ast.Node, binder binding.Binder) *docs.Method {
	method := &docs.Method{
		Name:       docs.AnonymousName,
		Line:       node.Loc.Start.Line,
		Column:     node.Loc.Start.Column,
		Parameters: []*docs.Parameter{},
	}
	if name, ok := ast.IdentifierName(node.Key); ok {
		method.Name = name
	}

	doc := binding.Merge(binder.Bind(node))
	method.HasComment = doc.HasComment
	method.Description = doc.Description
	method.Private = doc.Private

	if doc.Returns != nil {
		types, optional := jsdoc.Names(doc.Returns.Type)
		method.Returns = &docs.Returns{
			Types:       types,
			Optional:    optional,
			Description: doc.Returns.Description,
		}
	}

	for _, p := range node.Params {
		param := classifyParameter(p)
		applyParamDoc(param, doc)
		method.Parameters = append(method.Parameters, param)
	}
	return method
}

// classifyParameter derives name and kind from the parameter's shape.
func classifyParameter(node *ast.Node) *docs.Parameter {
	switch node.Kind {
	case ast.KindRestElement:
		name, _ := ast.IdentifierName(node.Argument)
		return &docs.Parameter{Name: name, Kind: docs.ParameterRest}

	case ast.KindAssignmentPattern:
		name, _ := ast.IdentifierName(node.Left)
		param := &docs.Parameter{Name: name, Kind: docs.ParameterDefaultValue}
		if node.Right != nil && node.Right.Kind == ast.KindLiteral {
			param.Default = node.Right.Value
		}
		return param
	}

	name, _ := ast.IdentifierName(node)
	return &docs.Parameter{Name: name, Kind: docs.ParameterSimple}
}

// applyParamDoc layers the param tag documenting p onto it. Tags naming
// parameters the signature does not have are never looked at.
func applyParamDoc(p *docs.Parameter, doc binding.Doc) {
	if p.Name == "" {
		return
	}
	tag, ok := doc.Param(p.Name)
	if !ok {
		return
	}

	types, optional := jsdoc.Names(tag.Type)
	p.HasComment = true
	p.Types = types
	p.Optional = optional || tag.Optional
	p.Description = tag.Description
}
