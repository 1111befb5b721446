package docs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Documentation Model:
// - SortMethods puts public methods first and sorts by name, stable on ties
// - RelativePath strips the root and exactly one separator
// - RelativePath leaves paths outside the root untouched
// - Lookups by name on classes and methods

func names(methods []*Method) []string {
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		out = append(out, m.Name)
	}
	return out
}

func TestSortMethods(t *testing.T) {
	t.Parallel()

	firstDup := &Method{Name: "dup", Line: 1}
	secondDup := &Method{Name: "dup", Line: 2}
	methods := []*Method{
		{Name: "zeta"},
		{Name: "_hidden", Private: true},
		firstDup,
		{Name: "alpha"},
		{Name: "beta", Private: true},
		secondDup,
	}

	SortMethods(methods)

	assert.Equal(t, []string{"alpha", "dup", "dup", "zeta", "_hidden", "beta"}, names(methods))
	assert.Same(t, firstDup, methods[1])
	assert.Same(t, secondDup, methods[2])
}

func TestSortMethods_Empty(t *testing.T) {
	t.Parallel()

	var methods []*Method
	SortMethods(methods)
	assert.Empty(t, methods)
}

func TestRelativePath(t *testing.T) {
	t.Parallel()

	root := filepath.Join("/", "project")
	file := filepath.Join(root, "lib", "shape.js")
	c := &ClassDefinition{FilePath: file}

	assert.Equal(t, filepath.Join("lib", "shape.js"), c.RelativePath(root))
	assert.Equal(t, filepath.Join("lib", "shape.js"), c.RelativePath(root+string(filepath.Separator)))
	assert.Equal(t, file, c.RelativePath(""))
	assert.Equal(t, file, c.RelativePath(filepath.Join("/", "other")))

	// A sibling directory sharing the prefix is not inside the root.
	sibling := &ClassDefinition{FilePath: filepath.Join("/", "project2", "a.js")}
	assert.Equal(t, sibling.FilePath, sibling.RelativePath(root))

	assert.Empty(t, (&ClassDefinition{}).RelativePath(root))

	c.RootPath = root
	assert.Equal(t, filepath.Join("lib", "shape.js"), c.Path())
}

func TestLookups(t *testing.T) {
	t.Parallel()

	method := &Method{
		Name: "area",
		Parameters: []*Parameter{
			{Name: "unit", Kind: ParameterSimple},
			{Name: "rest", Kind: ParameterRest},
		},
	}
	c := &ClassDefinition{Name: "Shape", Methods: []*Method{method}}

	assert.Same(t, method, c.Method("area"))
	assert.Nil(t, c.Method("perimeter"))

	require.NotNil(t, method.Parameter("rest"))
	assert.Equal(t, ParameterRest, method.Parameter("rest").Kind)
	assert.Nil(t, method.Parameter("missing"))

	assert.False(t, c.IsAnonymous())
	assert.True(t, (&ClassDefinition{Name: AnonymousName}).IsAnonymous())
}
