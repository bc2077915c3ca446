// Package describe extracts the best available human description for a
// field definition, using a fixed precedence over comment styles and
// schema-native annotations.
package describe

import (
	"bytes"
	"strings"

	"github.com/griffnb/ts-swag/internal/domain"
)

// Resolve returns the description for the field occupying span within src.
// Precedence, first match wins:
//  1. explicit, a schema-native description attached to the field itself
//  2. a documentation comment (/** ... */) immediately preceding the field
//  3. a plain block comment (/* ... */) immediately preceding the field
//  4. a trailing same-line line comment
//
// Returns "" when nothing applies.
func Resolve(src []byte, span domain.Span, explicit string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit
	}

	if c := precedingBlockComment(src, span.Start); c != "" {
		return c
	}

	return trailingLineComment(src, span.End)
}

// precedingBlockComment finds a /* */ or /** */ comment whose closing
// delimiter is the last non-whitespace text before the field's line.
// Documentation and plain block comments occupy the same position, so the
// nearest one wins; the doc/block distinction only orders them against the
// other sources.
func precedingBlockComment(src []byte, fieldStart int) string {
	if fieldStart > len(src) {
		fieldStart = len(src)
	}

	lineStart := fieldStart
	for lineStart > 0 && src[lineStart-1] != '\n' {
		lineStart--
	}

	i := lineStart
	for i > 0 {
		c := src[i-1]
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			break
		}
		i--
	}

	if i < 2 || src[i-2] != '*' || src[i-1] != '/' {
		return ""
	}

	open := bytes.LastIndex(src[:i-2], []byte("/*"))
	if open < 0 {
		return ""
	}

	return cleanBlockComment(string(src[open:i]))
}

// trailingLineComment finds a // comment on the remainder of the field's
// own line.
func trailingLineComment(src []byte, fieldEnd int) string {
	if fieldEnd >= len(src) {
		return ""
	}

	rest := src[fieldEnd:]
	if nl := bytes.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}

	idx := bytes.Index(rest, []byte("//"))
	if idx < 0 {
		return ""
	}

	return strings.TrimSpace(string(rest[idx+2:]))
}

// cleanBlockComment strips the comment delimiters and per-line leading
// asterisks, joining the remaining lines with single spaces.
func cleanBlockComment(comment string) string {
	comment = strings.TrimPrefix(comment, "/**")
	comment = strings.TrimPrefix(comment, "/*")
	comment = strings.TrimSuffix(comment, "*/")

	var parts []string
	for _, line := range strings.Split(comment, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)
		if line != "" {
			parts = append(parts, line)
		}
	}

	return strings.Join(parts, " ")
}

// StripQuotes removes a single level of surrounding string quotes from a
// raw source literal, e.g. an argument to .describe("...").
func StripQuotes(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if first == last && (first == '\'' || first == '"' || first == '`') {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}
