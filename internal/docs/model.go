// Package docs holds the documentation records extracted from source files.
package docs

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"
)

// AnonymousName is used for classes and methods declared without a name.
const AnonymousName = "anonymous"

// ParameterKind classifies a formal parameter.
type ParameterKind string

const (
	ParameterSimple       ParameterKind = "simple"
	ParameterRest         ParameterKind = "rest"
	ParameterDefaultValue ParameterKind = "defaultValue"
)

// Parameter is one formal parameter of a method.
type Parameter struct {
	Name        string        `json:"name" yaml:"name"`
	Kind        ParameterKind `json:"kind" yaml:"kind"`
	Default     string        `json:"default,omitempty" yaml:"default,omitempty"`
	Optional    bool          `json:"optional" yaml:"optional"`
	Types       []string      `json:"types,omitempty" yaml:"types,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	HasComment  bool          `json:"hasComment" yaml:"hasComment"`
}

// Returns documents the value a method returns.
type Returns struct {
	Types       []string `json:"types,omitempty" yaml:"types,omitempty"`
	Optional    bool     `json:"optional,omitempty" yaml:"optional,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Method is one method of a class.
type Method struct {
	Name        string       `json:"name" yaml:"name"`
	Line        int          `json:"line" yaml:"line"`
	Column      int          `json:"column" yaml:"column"`
	Parameters  []*Parameter `json:"parameters" yaml:"parameters"`
	Private     bool         `json:"private" yaml:"private"`
	HasComment  bool         `json:"hasComment" yaml:"hasComment"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Returns     *Returns     `json:"returns,omitempty" yaml:"returns,omitempty"`
}

// Parameter returns the parameter with the given name.
func (m *Method) Parameter(name string) *Parameter {
	for _, p := range m.Parameters {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ClassDefinition is the documentation of one class.
//
// SuperClassModule is the module the superclass identifier was imported
// from. SuperClassFile is the relative path of the file defining the
// superclass, set once the module reference was followed to a known class.
type ClassDefinition struct {
	Name             string    `json:"name" yaml:"name"`
	Line             int       `json:"line" yaml:"line"`
	Column           int       `json:"column" yaml:"column"`
	FilePath         string    `json:"filePath,omitempty" yaml:"filePath,omitempty"`
	RootPath         string    `json:"-" yaml:"-"`
	Private          bool      `json:"private" yaml:"private"`
	HasComment       bool      `json:"hasComment" yaml:"hasComment"`
	Description      string    `json:"description,omitempty" yaml:"description,omitempty"`
	SuperClass       string    `json:"superClass,omitempty" yaml:"superClass,omitempty"`
	SuperClassModule string    `json:"superClassModule,omitempty" yaml:"superClassModule,omitempty"`
	SuperClassFile   string    `json:"superClassFile,omitempty" yaml:"superClassFile,omitempty"`
	Methods          []*Method `json:"methods" yaml:"methods"`
}

// Method returns the first method with the given name.
func (c *ClassDefinition) Method(name string) *Method {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// IsAnonymous reports whether the class was declared without a name.
func (c *ClassDefinition) IsAnonymous() bool {
	return c.Name == AnonymousName
}

// RelativePath returns the file path with rootPath and one separator
// removed. Without a root, or when the file lies outside of it, the full
// path is returned.
func (c *ClassDefinition) RelativePath(rootPath string) string {
	if c.FilePath == "" {
		return ""
	}
	if rootPath == "" || !strings.HasPrefix(c.FilePath, rootPath) {
		return c.FilePath
	}

	rel := c.FilePath[len(rootPath):]
	if rel != "" && !strings.HasSuffix(rootPath, string(filepath.Separator)) {
		if rel[0] != filepath.Separator && rel[0] != '/' {
			return c.FilePath
		}
		rel = rel[1:]
	}
	return rel
}

// Path returns the file path relative to the class' own root path.
func (c *ClassDefinition) Path() string {
	return c.RelativePath(c.RootPath)
}

// SortMethods orders methods with every public method before every private
// one, by name within each group. Methods that compare equal keep their
// order.
func SortMethods(methods []*Method) {
	slices.SortStableFunc(methods, func(a, b *Method) int {
		if a.Private != b.Private {
			if a.Private {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.Name, b.Name)
	})
}
