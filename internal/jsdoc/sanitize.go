package jsdoc

import (
	"regexp"
	"strings"
)

var (
	paragraphBreak = regexp.MustCompile(`\n{2,}`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// Sanitize collapses every run of whitespace, line breaks included, into a
// single space. Two or more consecutive line breaks are kept as exactly one
// paragraph break.
func Sanitize(text string) string {
	paragraphs := paragraphBreak.Split(text, -1)
	for i, p := range paragraphs {
		paragraphs[i] = whitespaceRun.ReplaceAllString(p, " ")
	}
	return strings.Join(paragraphs, "\n\n")
}
