package jsdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Tag Parser:
// - Description is everything before the first tag, sanitized
// - @param with union, optional and plain types
// - @param names in brackets are optional and may carry a default
// - Bracketed defaults may contain brackets themselves
// - Tag descriptions continue over following lines and drop a leading "- "
// - @returns and its @return alias
// - @private and @access private set the private flag
// - Unknown type shapes are ignored without dropping the tag
// - Comments without tags and empty comments

func TestParse_DescriptionAndTags(t *testing.T) {
	t.Parallel()

	raw := `*
   * Computes the area
   * of a shape.
   *
   * Second paragraph.
   *
   * @param {string|number} x first value
   * @param {string=} y second value
   * @param {Shape} shape - the shape,
   *   described over two lines
   * @returns {number} the area
   `

	c := Parse(raw)

	assert.Equal(t, "Computes the area of a shape.\n\nSecond paragraph.", c.Description)
	assert.False(t, c.Private)
	require.Len(t, c.Tags, 4)

	x, ok := c.Param("x")
	require.True(t, ok)
	assert.Equal(t, TitleParam, x.Title)
	assert.Equal(t, "string|number", x.TypeText)
	names, optional := Names(x.Type)
	assert.Equal(t, []string{"string", "number"}, names)
	assert.False(t, optional)
	assert.Equal(t, "first value", x.Description)

	y, ok := c.Param("y")
	require.True(t, ok)
	names, optional = Names(y.Type)
	assert.Equal(t, []string{"string"}, names)
	assert.True(t, optional)

	shape, ok := c.Param("shape")
	require.True(t, ok)
	assert.Equal(t, "the shape, described over two lines", shape.Description)

	returns, ok := c.Tag(TitleReturns)
	require.True(t, ok)
	assert.Empty(t, returns.Name)
	assert.Equal(t, NameExpression{Name: "number"}, returns.Type)
	assert.Equal(t, "the area", returns.Description)
}

func TestParse_BracketNames(t *testing.T) {
	t.Parallel()

	c := Parse("* @param {number} [size=10] the size\n * @param {boolean} [strict] strict mode")

	size, ok := c.Param("size")
	require.True(t, ok)
	assert.True(t, size.Optional)
	assert.Equal(t, "10", size.Default)
	assert.Equal(t, "the size", size.Description)

	strict, ok := c.Param("strict")
	require.True(t, ok)
	assert.True(t, strict.Optional)
	assert.Empty(t, strict.Default)
}

func TestParse_BracketedDefaultWithBrackets(t *testing.T) {
	t.Parallel()

	c := Parse("*\n * @param {Array} [list=[1,2]] the list")

	require.Len(t, c.Tags, 1)
	list, ok := c.Param("list")
	require.True(t, ok)
	assert.True(t, list.Optional)
	assert.Equal(t, "[1,2]", list.Default)
	assert.Equal(t, "the list", list.Description)
	assert.Equal(t, NameExpression{Name: "Array"}, list.Type)
}

func TestParse_Aliases(t *testing.T) {
	t.Parallel()

	c := Parse("* @arg {string} a the a\n * @return {boolean} whether it worked")

	_, ok := c.Param("a")
	assert.True(t, ok)

	returns, ok := c.Tag(TitleReturns)
	require.True(t, ok)
	assert.Equal(t, "whether it worked", returns.Description)
}

func TestParse_Private(t *testing.T) {
	t.Parallel()

	assert.True(t, Parse("* Internal.\n * @private").Private)
	assert.True(t, Parse("* @access private").Private)
	assert.False(t, Parse("* @access public").Private)
	assert.False(t, Parse("* Public thing.").Private)
}

func TestParse_UnknownTypeShapeIsIgnored(t *testing.T) {
	t.Parallel()

	c := Parse("* @param {Array<string>} list the list\n * @param {number} n count")

	list, ok := c.Param("list")
	require.True(t, ok)
	assert.Nil(t, list.Type)
	assert.Equal(t, "Array<string>", list.TypeText)
	assert.Equal(t, "the list", list.Description)

	n, ok := c.Param("n")
	require.True(t, ok)
	assert.Equal(t, NameExpression{Name: "number"}, n.Type)
}

func TestParse_WithoutTags(t *testing.T) {
	t.Parallel()

	c := Parse("* Just a description.  ")
	assert.Equal(t, "Just a description.", c.Description)
	assert.Empty(t, c.Tags)

	empty := Parse("*")
	assert.Empty(t, empty.Description)
	assert.Empty(t, empty.Tags)
	assert.False(t, empty.Private)
}
