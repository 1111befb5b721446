package jsdoc

import (
	"regexp"
	"strings"
)

// TypeExpr is a parsed tag type. The set of shapes is closed: a name, a
// union of types, or an optional type. Type expressions of any other shape
// parse to nil and contribute no type information.
type TypeExpr interface {
	isTypeExpr()
}

// NameExpression is a single type name such as string or Promise.
type NameExpression struct {
	Name string
}

// UnionType is a list of alternatives such as string|number.
type UnionType struct {
	Elements []TypeExpr
}

// OptionalType marks the wrapped type as optional, written string=.
type OptionalType struct {
	Expression TypeExpr
}

func (NameExpression) isTypeExpr() {}
func (UnionType) isTypeExpr()      {}
func (OptionalType) isTypeExpr()   {}

// Names returns the type names carried by t and whether t is optional.
// Union members that are not plain names are skipped.
func Names(t TypeExpr) (names []string, optional bool) {
	switch t := t.(type) {
	case NameExpression:
		return []string{t.Name}, false
	case UnionType:
		for _, el := range t.Elements {
			if name, ok := el.(NameExpression); ok {
				names = append(names, name.Name)
			}
		}
		return names, false
	case OptionalType:
		names, _ = Names(t.Expression)
		return names, true
	}
	return nil, false
}

var typeName = regexp.MustCompile(`^[A-Za-z_$][\w$]*(\.[A-Za-z_$][\w$]*)*$`)

// ParseType parses the text between the braces of a tag.
func ParseType(text string) TypeExpr {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if inner, ok := unwrapParens(text); ok {
		return ParseType(inner)
	}

	if strings.HasSuffix(text, "=") {
		inner := ParseType(strings.TrimSuffix(text, "="))
		if inner == nil {
			return nil
		}
		return OptionalType{Expression: inner}
	}

	if parts := splitUnion(text); len(parts) > 1 {
		union := UnionType{}
		for _, part := range parts {
			if el := ParseType(part); el != nil {
				union.Elements = append(union.Elements, el)
			}
		}
		if len(union.Elements) == 0 {
			return nil
		}
		return union
	}

	if typeName.MatchString(text) {
		return NameExpression{Name: text}
	}
	return nil
}

// unwrapParens strips one pair of parentheses enclosing the whole text.
func unwrapParens(text string) (string, bool) {
	if !strings.HasPrefix(text, "(") || !strings.HasSuffix(text, ")") {
		return "", false
	}
	depth := 0
	for i, r := range text {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(text)-1 {
				return "", false
			}
		}
	}
	return text[1 : len(text)-1], true
}

// splitUnion splits text on the | separators that are not nested.
func splitUnion(text string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range text {
		switch r {
		case '(', '<', '{', '[':
			depth++
		case ')', '>', '}', ']':
			depth--
		case '|':
			if depth == 0 {
				parts = append(parts, text[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, text[start:])
}
