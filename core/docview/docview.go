// Package docview provides a read-only, lazily scanned view over a JSON text
// blob. It extracts scalar fields, nested objects and arrays of objects by key
// without building a parse tree, which keeps the fetch path dependency-free and
// tolerant of the partial records the upstream API routinely returns.
//
// Every query re-scans the view's span from the start. The payloads are tens
// of kilobytes at most, so this is a deliberate simplicity-over-speed
// tradeoff. Array extraction is still a single linear scan with a running
// brace-depth counter, never quadratic matching.
//
// This is not a general JSON parser. Nested arrays inside a row object are
// treated as opaque text, which is correct for the flat row-of-objects shape
// the API produces. Missing or malformed input degrades to empty results,
// never an error.
package docview

import "strings"

// View is a read-only window into a JSON text buffer. The zero value is an
// empty view whose queries all return empty results.
type View struct {
	raw string
}

// New wraps a raw JSON text blob in a View.
func New(text string) View {
	return View{raw: text}
}

// Raw returns the text span backing this view.
func (v View) Raw() string {
	return v.raw
}

// GetString returns the string value for a top-level key in this view, or ""
// when the key is absent or the value is not a quoted string. An unterminated
// string clamps to the end of the buffer.
func (v View) GetString(key string) string {
	i := v.keyIndex(key)
	if i < 0 {
		return ""
	}
	start := strings.IndexByte(v.raw[i:], '"')
	if start < 0 {
		return ""
	}
	start += i + 1
	// Find the closing quote, skipping escaped quotes.
	for j := start; j < len(v.raw); j++ {
		switch v.raw[j] {
		case '\\':
			j++ // skip the escaped byte
		case '"':
			return v.raw[start:j]
		}
	}
	return v.raw[start:]
}

// GetArray returns one child view per object found at depth 1 inside the named
// array, in source order. Brackets of arrays nested inside a row object are not
// tracked, so nesting inside a row never changes the element count. An absent
// key yields an empty slice.
func (v View) GetArray(key string) []View {
	var res []View
	i := v.keyIndex(key)
	if i < 0 {
		return res
	}
	aStart := strings.IndexByte(v.raw[i:], '[')
	if aStart < 0 {
		return res
	}
	aStart += i
	aEnd := findMatching(v.raw, aStart)

	inside := v.raw[aStart+1 : aEnd]
	depth, objStart := 0, -1
	for x := 0; x < len(inside); x++ {
		switch inside[x] {
		case '{':
			if depth == 0 {
				objStart = x
			}
			depth++
		case '}':
			depth--
			if depth == 0 && objStart >= 0 {
				res = append(res, View{raw: inside[objStart : x+1]})
				objStart = -1
			}
		}
	}
	return res
}

// GetObject returns a child view scoped to the named object's text span.
// An absent key yields an empty object view.
func (v View) GetObject(key string) View {
	i := v.keyIndex(key)
	if i < 0 {
		return View{raw: "{}"}
	}
	oStart := strings.IndexByte(v.raw[i:], '{')
	if oStart < 0 {
		return View{raw: "{}"}
	}
	oStart += i
	oEnd := findMatching(v.raw, oStart)
	return View{raw: v.raw[oStart : oEnd+1]}
}

// keyIndex locates the position just past the `"key":` token, or -1.
func (v View) keyIndex(key string) int {
	k := `"` + key + `":`
	i := strings.Index(v.raw, k)
	if i < 0 {
		return -1
	}
	return i + len(k)
}

// findMatching returns the index of the bracket or brace that closes the one
// at start. When no closing token exists the scan clamps to the end of the
// buffer, so bracket matching always terminates.
func findMatching(s string, start int) int {
	open := s[start]
	var close byte = ']'
	if open == '{' {
		close = '}'
	}
	depth := 1
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(s) - 1
}
