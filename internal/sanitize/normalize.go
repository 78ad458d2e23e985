package sanitize

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// maxPasses bounds the decode loop. Each pass peels one layer of entity or
// escape obfuscation; values that still change after that are rejected by
// the caller as over-encoded.
const maxPasses = 4

// normalize decodes HTML entities, CSS escapes and comments and strips
// control and zero-width characters, repeating until a fixpoint or
// maxPasses. It reports whether a fixpoint was reached. Case is preserved
// so base64 payloads survive; matching downstream is case-insensitive.
func normalize(v string) (string, bool) {
	cur := v
	for range maxPasses {
		next := stripControl(stripComments(decodeEscapes(html.UnescapeString(cur))))
		if next == cur {
			return cur, true
		}
		cur = next
	}
	return cur, false
}

// stripControl drops C0/C1 controls (keeping whitespace as a plain space),
// DEL and zero-width code points used to split keywords.
func stripControl(s string) string {
	clean := true
	for _, r := range s {
		if isInvisible(r) || (r != ' ' && unicode.IsSpace(r)) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		case isInvisible(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isInvisible(r rune) bool {
	switch {
	case r == utf8.RuneError:
		return false
	case r < 0x20 && r != '\t' && r != '\n' && r != '\r' && r != '\f':
		return true
	case r == 0x7f, r >= 0x80 && r < 0xa0:
		return true
	case r == 0x200b, r == 0x200c, r == 0x200d, r == 0x2060, r == 0xfeff, r == 0xad:
		return true
	}
	return false
}

// decodeEscapes resolves CSS escapes: "\6a" (1-6 hex digits plus one
// optional whitespace), "\<newline>" (continuation) and "\x" (literal x).
func decodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}

		j := i + 1
		for j < len(s) && j-i <= 6 && isHex(s[j]) {
			j++
		}
		if j > i+1 {
			code, _ := strconv.ParseUint(s[i+1:j], 16, 32)
			r := rune(code)
			if r == 0 || r > unicode.MaxRune || (r >= 0xd800 && r <= 0xdfff) {
				r = utf8.RuneError
			}
			b.WriteRune(r)
			if j < len(s) && s[j] == '\r' && j+1 < len(s) && s[j+1] == '\n' {
				j += 2
			} else if j < len(s) && isCSSSpace(s[j]) {
				j++
			}
			i = j - 1
			continue
		}

		if s[j] == '\n' {
			i = j
			continue
		}
		r, size := utf8.DecodeRuneInString(s[j:])
		b.WriteRune(r)
		i = j + size - 1
	}
	return b.String()
}

// stripComments removes /* ... */ with a forward scan; an unterminated
// comment swallows the rest of the input.
func stripComments(s string) string {
	if !strings.Contains(s, "/*") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for {
		start := strings.Index(s, "/*")
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:start])
		end := strings.Index(s[start+2:], "*/")
		if end < 0 {
			return b.String()
		}
		s = s[start+2+end+2:]
	}
}

// compact removes every whitespace rune so split keywords ("java script:")
// line up with the pattern table.
func compact(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isCSSSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// asciiLower lowercases ASCII letters only, keeping byte offsets stable.
func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
