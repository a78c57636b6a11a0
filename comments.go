package ksrt

import "regexp"

var (
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComment  = regexp.MustCompile(`(?m)//.*$`)
)

// StripComments removes all block (/* ... */) and line (// ...) comments
// from schema source, leaving every byte outside comment spans unchanged.
//
// Block-comment spans are located first; line comments are stripped only
// from the gaps between them. A // marker inside a block comment is
// therefore never processed on its own, and a /* marker inside a would-be
// line comment still starts a block comment.
//
// An unterminated block comment never matches and passes through as-is. An
// unterminated line comment at end of input is stripped to end of input.
// The function is pure and idempotent.
func StripComments(schema string) string {
	var buf []byte
	start := 0

	stripLines := func(gap string) {
		slStart := 0
		for _, m := range lineComment.FindAllStringIndex(gap, -1) {
			buf = append(buf, gap[slStart:m[0]]...)
			slStart = m[1]
		}

		buf = append(buf, gap[slStart:]...)
	}

	matches := blockComment.FindAllStringIndex(schema, -1)
	if len(matches) == 0 && !lineComment.MatchString(schema) {
		return schema
	}

	buf = make([]byte, 0, len(schema))
	for _, m := range matches {
		stripLines(schema[start:m[0]])
		start = m[1]
	}

	stripLines(schema[start:])

	return string(buf)
}
