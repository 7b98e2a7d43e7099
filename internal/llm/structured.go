package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// SchemaValidator checks a decoded value after extraction.
type SchemaValidator[T any] func(T) error

// ExtractJSON pulls the first JSON object out of model output and decodes it
// into T. Markdown fences, surrounding prose, comments and bare leading
// decimals (".5") are tolerated. Every failure wraps ErrInvalidOutput.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var out T

	block := firstObject(stripFences(raw))
	if block == "" {
		return out, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	if err := json.Unmarshal([]byte(sanitizeJSON(block)), &out); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validator != nil {
		if err := validator(out); err != nil {
			var zero T
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return out, nil
}

// Fences are only recognised at the start or end of a line, so backticks
// inside string values survive.
var (
	openFence  = regexp.MustCompile("(?m)^[ \t]*```[A-Za-z0-9_+-]*")
	closeFence = regexp.MustCompile("(?m)```[ \t]*$")
)

func stripFences(s string) string {
	return closeFence.ReplaceAllString(openFence.ReplaceAllString(s, ""), "")
}

// stringState tracks whether a byte walk is inside a JSON string literal.
type stringState struct {
	inString bool
	escaped  bool
}

// step consumes c and reports whether it belongs to a string literal
// (quotes included).
func (st *stringState) step(c byte) bool {
	switch {
	case st.escaped:
		st.escaped = false
		return true
	case st.inString && c == '\\':
		st.escaped = true
		return true
	case c == '"':
		st.inString = !st.inString
		return true
	default:
		return st.inString
	}
}

// firstObject returns the first brace-balanced {...} span of s, or "" when
// none closes.
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	var st stringState
	depth := 0
	for i := start; i < len(s); i++ {
		if st.step(s[i]) {
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// sanitizeJSON drops // and /* */ comments and rewrites ".8" as "0.8"
// outside string literals.
func sanitizeJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	var st stringState
	for i := 0; i < len(s); i++ {
		c := s[i]
		if st.step(c) {
			b.WriteByte(c)
			continue
		}

		if c == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				if nl := strings.IndexByte(s[i:], '\n'); nl >= 0 {
					i += nl - 1
				} else {
					i = len(s)
				}
				continue
			case '*':
				if end := strings.Index(s[i+2:], "*/"); end >= 0 {
					i += end + 3
				} else {
					i = len(s)
				}
				continue
			}
		}

		if c == '.' && i+1 < len(s) && isDigit(s[i+1]) && startsNumber(lastSignificant(s[:i])) {
			b.WriteByte('0')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// lastSignificant returns the last non-whitespace byte of s, or 0.
func lastSignificant(s string) byte {
	t := strings.TrimRight(s, " \t\r\n")
	if t == "" {
		return 0
	}
	return t[len(t)-1]
}

// startsNumber reports whether a value may begin right after c.
func startsNumber(c byte) bool {
	return c == 0 || strings.IndexByte(":,[{-", c) >= 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
