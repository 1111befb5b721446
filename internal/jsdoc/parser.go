// Package jsdoc parses documentation block comments into a description and
// a list of typed tags.
package jsdoc

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_jsdoc "github.com/tree-sitter/tree-sitter-jsdoc/bindings/go"
)

// Tag titles with special meaning.
const (
	TitleParam   = "param"
	TitleReturns = "returns"
	TitlePrivate = "private"
)

// Tag is one @-annotation of a comment.
type Tag struct {
	Title       string
	Name        string
	Type        TypeExpr
	TypeText    string
	Optional    bool   // name written as [name]
	Default     string // from [name=default]
	Description string
}

// Comment is the parsed content of one block comment.
type Comment struct {
	Description string
	Tags        []Tag
	Private     bool
}

// Tag returns the first tag with the given title.
func (c *Comment) Tag(title string) (Tag, bool) {
	for _, t := range c.Tags {
		if t.Title == title {
			return t, true
		}
	}
	return Tag{}, false
}

// Param returns the first param tag documenting name.
func (c *Comment) Param(name string) (Tag, bool) {
	for _, t := range c.Tags {
		if t.Title == TitleParam && t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

// titleAliases maps synonyms onto the canonical title.
var titleAliases = map[string]string{
	"arg":      TitleParam,
	"argument": TitleParam,
	"return":   TitleReturns,
}

// namedTitles are the tags whose first word after the type is a name.
var namedTitles = map[string]bool{
	TitleParam: true,
	"property": true,
	"prop":     true,
	"typedef":  true,
}

var language = sitter.NewLanguage(tree_sitter_jsdoc.Language())

// nameKinds are the grammar nodes that hold a tag's name argument.
var nameKinds = map[string]bool{
	"identifier":           true,
	"optional_identifier":  true,
	"member_expression":    true,
	"path_expression":      true,
	"qualified_expression": true,
}

// tagNode is what the grammar tells us about one block tag, as byte
// offsets into the wrapped comment source.
type tagNode struct {
	start     int
	afterType int // end of the tag name, or of the closing type brace
	title     string
	typeText  string
	nameStart int
	nameEnd   int
}

// Parse parses the text of a block comment, delimiters excluded.
func Parse(raw string) *Comment {
	source := []byte("/**" + strings.TrimPrefix(raw, "*") + "*/")
	end := len(source) - 2

	tags := parseTags(source)

	descEnd := end
	if len(tags) > 0 {
		descEnd = tags[0].start
	}
	comment := &Comment{
		Description: Sanitize(strings.TrimSpace(cleanLines(string(source[3:descEnd])))),
	}

	for i, n := range tags {
		tagEnd := end
		if i+1 < len(tags) {
			tagEnd = tags[i+1].start
		}
		tag := n.build(source, tagEnd)
		if tag.Title == TitlePrivate || (tag.Title == "access" && tag.Description == "private") {
			comment.Private = true
		}
		comment.Tags = append(comment.Tags, tag)
	}
	return comment
}

// parseTags runs the jsdoc grammar over source and returns its block tags
// in source order. A comment the grammar cannot handle has no tags.
func parseTags(source []byte) []tagNode {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(language); err != nil {
		return nil
	}
	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	var tags []tagNode
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		switch node.Kind() {
		case "tag":
			tags = append(tags, readTag(node, source))
			return
		case "inline_tag":
			return
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			if child := node.Child(i); child != nil {
				walk(child)
			}
		}
	}
	walk(tree.RootNode())
	return tags
}

func readTag(node *sitter.Node, source []byte) tagNode {
	n := tagNode{start: int(node.StartByte()), afterType: int(node.StartByte()), nameStart: -1}

	typeStart := -1
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch kind := child.Kind(); {
		case kind == "tag_name":
			n.title = strings.TrimPrefix(child.Utf8Text(source), "@")
			n.afterType = int(child.EndByte())
		case kind == "{" && typeStart < 0:
			typeStart = int(child.EndByte())
		case kind == "}" && typeStart >= 0:
			n.typeText = strings.TrimSpace(string(source[typeStart:child.StartByte()]))
			n.afterType = int(child.EndByte())
		case nameKinds[kind] && n.nameStart < 0:
			n.nameStart = int(child.StartByte())
			n.nameEnd = int(child.EndByte())
		}
	}
	return n
}

// build turns the grammar's view of the tag into a Tag; the name and
// description are read from the text up to tagEnd.
func (n tagNode) build(source []byte, tagEnd int) Tag {
	tag := Tag{Title: n.title, TypeText: n.typeText}
	if alias, ok := titleAliases[tag.Title]; ok {
		tag.Title = alias
	}
	if tag.TypeText != "" {
		tag.Type = ParseType(tag.TypeText)
	}

	pos := n.afterType
	if namedTitles[tag.Title] {
		pos = tag.readName(source, pos, tagEnd, n)
	}
	if pos > tagEnd {
		pos = tagEnd
	}

	rest := strings.TrimSpace(cleanLines(string(source[pos:tagEnd])))
	rest = strings.TrimSpace(strings.TrimPrefix(rest, "- "))
	tag.Description = Sanitize(rest)
	return tag
}

// readName reads the tag name starting at pos and returns the offset just
// past it. A bracketed name is optional and may carry a default, which can
// itself contain brackets.
func (t *Tag) readName(source []byte, pos, end int, n tagNode) int {
	for pos < end && (source[pos] == ' ' || source[pos] == '\t') {
		pos++
	}
	if pos >= end {
		return end
	}

	if source[pos] == '[' {
		depth := 0
		for i := pos; i < end; i++ {
			switch source[i] {
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					inner := string(source[pos+1 : i])
					t.Optional = true
					if name, def, ok := strings.Cut(inner, "="); ok {
						t.Name = strings.TrimSpace(name)
						t.Default = strings.TrimSpace(def)
					} else {
						t.Name = strings.TrimSpace(inner)
					}
					return i + 1
				}
			}
		}
	}

	if n.nameStart == pos && n.nameEnd <= end {
		t.Name = string(source[n.nameStart:n.nameEnd])
		return n.nameEnd
	}

	stop := pos
	for stop < end && !isSpace(source[stop]) {
		stop++
	}
	t.Name = string(source[pos:stop])
	return stop
}

// cleanLines drops the leading asterisk marker, and one space after it, from
// every line but the first, and trailing blanks from all of them.
func cleanLines(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if i > 0 {
			line = strings.TrimLeft(line, " \t")
			if strings.HasPrefix(line, "*") {
				line = strings.TrimPrefix(line[1:], " ")
			}
		}
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
