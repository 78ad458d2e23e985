package serialize

import "strings"

// Minify strips comments and collapses whitespace in a single forward pass.
//
// Comments are skipped by searching forward for the terminator, so no
// offset is scanned twice; an unterminated comment consumes the rest of the
// input. Strings and backslash escapes are copied verbatim. Whitespace is
// dropped around { } ; , > and after :, repeated semicolons collapse and a
// semicolon before } is removed. Minify(Minify(s)) == Minify(s).
func Minify(css string) string {
	out := make([]byte, 0, len(css))
	pendingSpace := false
	afterPunct := true // start of input behaves like punctuation
	lastSemi := -1

	emitSpace := func() {
		if pendingSpace && !afterPunct {
			out = append(out, ' ')
		}
		pendingSpace = false
	}

	for i := 0; i < len(css); {
		c := css[i]
		switch {
		case c == '/' && i+1 < len(css) && css[i+1] == '*':
			end := strings.Index(css[i+2:], "*/")
			if end < 0 {
				i = len(css)
				continue
			}
			i += 2 + end + 2
			pendingSpace = true

		case isSpace(c):
			pendingSpace = true
			i++

		case c == '"' || c == '\'':
			emitSpace()
			j := stringEnd(css, i)
			out = append(out, css[i:j]...)
			afterPunct = false
			i = j

		case c == '\\':
			emitSpace()
			j := min(i+2, len(css))
			out = append(out, css[i:j]...)
			afterPunct = false
			i = j

		case c == ';':
			pendingSpace = false
			if lastSemi != len(out)-1 {
				out = append(out, ';')
				lastSemi = len(out) - 1
			}
			afterPunct = true
			i++

		case c == '}':
			pendingSpace = false
			if lastSemi >= 0 && lastSemi == len(out)-1 {
				out = out[:lastSemi]
				lastSemi = -1
			}
			out = append(out, '}')
			afterPunct = true
			i++

		case c == '{' || c == ',' || c == '>':
			pendingSpace = false
			out = append(out, c)
			afterPunct = true
			i++

		case c == ':':
			emitSpace()
			out = append(out, ':')
			afterPunct = true
			i++

		default:
			emitSpace()
			out = append(out, c)
			afterPunct = false
			i++
		}
	}
	return string(out)
}

// stringEnd returns the offset just past the string starting at i. An
// unterminated string runs to the end of the input.
func stringEnd(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		}
	}
	return len(s)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
