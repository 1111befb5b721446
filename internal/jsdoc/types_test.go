package jsdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want TypeExpr
	}{
		{"string", NameExpression{Name: "string"}},
		{" Promise ", NameExpression{Name: "Promise"}},
		{"module.Shape", NameExpression{Name: "module.Shape"}},
		{"string|number", UnionType{Elements: []TypeExpr{NameExpression{Name: "string"}, NameExpression{Name: "number"}}}},
		{"(string|null)", UnionType{Elements: []TypeExpr{NameExpression{Name: "string"}, NameExpression{Name: "null"}}}},
		{"string=", OptionalType{Expression: NameExpression{Name: "string"}}},
		{"(string|number)=", OptionalType{Expression: UnionType{Elements: []TypeExpr{NameExpression{Name: "string"}, NameExpression{Name: "number"}}}}},
		{"string|Array<number>", UnionType{Elements: []TypeExpr{NameExpression{Name: "string"}}}},
		{"Array<string>", nil},
		{"{a: number}", nil},
		{"function(string): number", nil},
		{"?string", nil},
		{"*", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseType(tt.text))
		})
	}
}

func TestNames(t *testing.T) {
	t.Parallel()

	names, optional := Names(ParseType("string|number"))
	assert.Equal(t, []string{"string", "number"}, names)
	assert.False(t, optional)

	names, optional = Names(ParseType("string="))
	assert.Equal(t, []string{"string"}, names)
	assert.True(t, optional)

	names, optional = Names(ParseType("Shape"))
	assert.Equal(t, []string{"Shape"}, names)
	assert.False(t, optional)

	names, optional = Names(nil)
	assert.Nil(t, names)
	assert.False(t, optional)
}
