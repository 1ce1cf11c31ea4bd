// Package normalize strips markup leftovers from extracted email text and
// flattens it into a single line of prose.
package normalize

import (
	"regexp"
	"strings"
)

var (
	urlPattern   = regexp.MustCompile(`http\S+`)
	imagePattern = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	// A table is two or more consecutive lines that each open and close
	// with a pipe. A lone bracketed line is prose.
	tablePattern = regexp.MustCompile(`(?m)(?:^[ \t]*\|[^\n]*\|[ \t]*\r?(?:\n|\z)){2,}`)
)

const separator = "---"

// Text removes URLs, markdown image placeholders, table rows and "---"
// separators, then collapses every whitespace run into one space.
//
// Table rows are matched once, against the original line structure. The
// other steps repeat until the text stops changing, since a removal can
// expose a new match (an image placeholder nested in another). The result
// is a single line, which can never hold a table, so Text(Text(s)) ==
// Text(s).
func Text(s string) string {
	s = urlPattern.ReplaceAllString(s, "")
	s = imagePattern.ReplaceAllString(s, "")
	s = tablePattern.ReplaceAllString(s, "")
	for {
		next := pass(s)
		if next == s {
			return next
		}
		s = next
	}
}

func pass(s string) string {
	s = urlPattern.ReplaceAllString(s, "")
	s = imagePattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, separator, "")
	return strings.Join(strings.Fields(s), " ")
}

// Tokens is the number of whitespace-separated tokens in s.
func Tokens(s string) int {
	return len(strings.Fields(s))
}
