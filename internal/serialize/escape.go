package serialize

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// EscapeSelector escapes a class name for use after "." in a selector,
// following the CSSOM CSS.escape algorithm.
func EscapeSelector(ident string) string {
	if ident == "-" {
		return `\-`
	}

	var b strings.Builder
	b.Grow(len(ident) + 8)
	for i, r := range ident {
		switch {
		case r == 0:
			b.WriteRune(utf8.RuneError)
		case r < 0x20 || r == 0x7f:
			writeHexEscape(&b, r)
		case r >= '0' && r <= '9' && (i == 0 || (i == 1 && ident[0] == '-')):
			writeHexEscape(&b, r)
		case r >= 0x80, r == '-', r == '_',
			r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

func writeHexEscape(b *strings.Builder, r rune) {
	b.WriteByte('\\')
	b.WriteString(strconv.FormatInt(int64(r), 16))
	b.WriteByte(' ')
}

// ClassSelector returns the selector for a class name.
func ClassSelector(class string) string {
	return "." + EscapeSelector(class)
}
