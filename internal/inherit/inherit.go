// Package inherit links classes to the superclasses they import from other
// files of the same source tree.
package inherit

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/dominikbraun/graph"

	"github.com/mvp-joe/testable-docs/internal/docs"
)

// moduleExtensions are tried, in order, when a module reference omits the
// file extension.
var moduleExtensions = []string{".js", ".mjs", ".cjs", ".ts", ".jsx", ".tsx"}

// Hierarchy is the inheritance graph of a ClassSet. Edges point from a class
// to its superclass.
type Hierarchy struct {
	set   *docs.ClassSet
	graph graph.Graph[string, *docs.ClassDefinition]
}

// ClassKey identifies a class by file and position.
func ClassKey(c *docs.ClassDefinition) string {
	return fmt.Sprintf("%s:%d:%d", c.FilePath, c.Line, c.Column)
}

// Build links every class whose superclass module is a relative path to the
// class defined in that file. The linked file's relative path is recorded in
// SuperClassFile. References that cannot be followed are left alone.
func Build(set *docs.ClassSet) (*Hierarchy, error) {
	h := &Hierarchy{
		set:   set,
		graph: graph.New(ClassKey, graph.Directed(), graph.PreventCycles()),
	}

	classes := set.Classes()
	for _, c := range classes {
		// Links from an earlier build may point at classes that are gone
		c.SuperClassFile = ""
		if err := h.graph.AddVertex(c); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("failed to add class %s: %w", c.Name, err)
		}
	}

	for _, c := range classes {
		parent := h.resolve(c)
		if parent == nil {
			continue
		}

		err := h.graph.AddEdge(ClassKey(c), ClassKey(parent))
		switch {
		case err == nil, errors.Is(err, graph.ErrEdgeAlreadyExists):
			c.SuperClassFile = parent.Path()
		case errors.Is(err, graph.ErrEdgeCreatesCycle):
			log.Printf("Warning: inheritance cycle between %s and %s, link skipped", c.Name, parent.Name)
		default:
			return nil, fmt.Errorf("failed to link %s to %s: %w", c.Name, parent.Name, err)
		}
	}

	return h, nil
}

// Parent returns the linked superclass of c.
func (h *Hierarchy) Parent(c *docs.ClassDefinition) *docs.ClassDefinition {
	edges, err := h.graph.AdjacencyMap()
	if err != nil {
		return nil
	}
	for target := range edges[ClassKey(c)] {
		parent, err := h.graph.Vertex(target)
		if err == nil {
			return parent
		}
	}
	return nil
}

// Ancestors returns the superclass chain of c, nearest first.
func (h *Hierarchy) Ancestors(c *docs.ClassDefinition) []*docs.ClassDefinition {
	var chain []*docs.ClassDefinition
	for parent := h.Parent(c); parent != nil; parent = h.Parent(parent) {
		chain = append(chain, parent)
	}
	return chain
}

// InheritedMethods returns the methods c inherits from its ancestors and does
// not override, nearest ancestor first.
func (h *Hierarchy) InheritedMethods(c *docs.ClassDefinition) []*docs.Method {
	defined := map[string]bool{}
	for _, m := range c.Methods {
		defined[m.Name] = true
	}

	var inherited []*docs.Method
	for _, ancestor := range h.Ancestors(c) {
		for _, m := range ancestor.Methods {
			if defined[m.Name] {
				continue
			}
			defined[m.Name] = true
			inherited = append(inherited, m)
		}
	}
	return inherited
}

// resolve finds the class the superclass module of c refers to.
func (h *Hierarchy) resolve(c *docs.ClassDefinition) *docs.ClassDefinition {
	module := c.SuperClassModule
	if c.FilePath == "" || !(strings.HasPrefix(module, "./") || strings.HasPrefix(module, "../")) {
		return nil
	}

	base := filepath.Join(filepath.Dir(c.FilePath), filepath.FromSlash(module))
	for _, candidate := range candidates(base) {
		classes := h.set.InFile(candidate)
		if len(classes) == 0 {
			continue
		}
		for _, k := range classes {
			if k.Name == c.SuperClass {
				return k
			}
		}
		if len(classes) == 1 {
			return classes[0]
		}
		return nil
	}
	return nil
}

// candidates lists the file paths a module reference may point to.
func candidates(base string) []string {
	out := []string{base}
	for _, ext := range moduleExtensions {
		out = append(out, base+ext)
	}
	for _, ext := range moduleExtensions {
		out = append(out, filepath.Join(base, "index"+ext))
	}
	return out
}
