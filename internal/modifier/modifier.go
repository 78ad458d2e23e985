// Package modifier transforms generated properties for the !important,
// /opacity and leading-minus token modifiers.
//
// Every function returns a new Properties value and never mutates its
// input.
package modifier

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/yacobolo/utilcss/internal/serialize"
	"github.com/yacobolo/utilcss/rule"
)

const importantSuffix = " !important"

// Important marks every leaf value !important, recursing into nested
// groups. Values that already end in !important are left alone.
func Important(props rule.Properties) rule.Properties {
	out := make(rule.Properties, len(props))
	for i, p := range props {
		switch v := p.Value.(type) {
		case rule.Properties:
			p.Value = Important(v)
		case string:
			if !HasImportant(v) {
				p.Value = strings.TrimRightFunc(v, unicode.IsSpace) + importantSuffix
			}
		default:
			// Non-finite and unsupported values are left for the serializer
			// to reject.
			if s, err := serialize.FormatValue(v); err == nil {
				p.Value = s + importantSuffix
			}
		}
		out[i] = p
	}
	return out
}

// HasImportant reports whether v already ends in "!important", allowing
// whitespace before and after the bang.
func HasImportant(v string) bool {
	const word = "important"
	s := strings.TrimRightFunc(v, unicode.IsSpace)
	if len(s) < len(word) || !strings.EqualFold(s[len(s)-len(word):], word) {
		return false
	}
	s = strings.TrimRightFunc(s[:len(s)-len(word)], unicode.IsSpace)
	return strings.HasSuffix(s, "!")
}

// Negate negates numeric values and strings that start with a digit.
// Keywords and function values pass through unchanged.
func Negate(props rule.Properties) rule.Properties {
	out := make(rule.Properties, len(props))
	for i, p := range props {
		switch v := p.Value.(type) {
		case rule.Properties:
			p.Value = Negate(v)
		case string:
			p.Value = negateString(v)
		case int:
			p.Value = -v
		case int64:
			p.Value = -v
		case int8:
			p.Value = -int64(v)
		case int16:
			p.Value = -int64(v)
		case int32:
			p.Value = -int64(v)
		case uint8:
			p.Value = -int64(v)
		case uint16:
			p.Value = -int64(v)
		case uint32:
			p.Value = -int64(v)
		case uint:
			p.Value = negateUint(uint64(v))
		case uint64:
			p.Value = negateUint(v)
		case float64:
			if v != 0 {
				p.Value = -v
			}
		case float32:
			if v != 0 {
				p.Value = -v
			}
		}
		out[i] = p
	}
	return out
}

// negateUint returns -v as an int64, or as a string when it does not fit.
func negateUint(v uint64) any {
	if v <= math.MaxInt64 {
		return -int64(v)
	}
	return "-" + strconv.FormatUint(v, 10)
}

// negateString flips the sign of each numeric term in a space-separated
// value that starts with a number ("1rem -2rem" → "-1rem 2rem").
func negateString(v string) string {
	trimmed := strings.TrimSpace(v)
	if !startsNumeric(strings.TrimPrefix(trimmed, "-")) {
		return v
	}
	terms := strings.Fields(trimmed)
	for i, term := range terms {
		switch {
		case isZero(term):
		case startsNumeric(term):
			terms[i] = "-" + term
		case strings.HasPrefix(term, "-") && startsNumeric(term[1:]):
			terms[i] = term[1:]
		}
	}
	return strings.Join(terms, " ")
}

func startsNumeric(s string) bool {
	if s == "" {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return true
	}
	return s[0] == '.' && len(s) > 1 && s[1] >= '0' && s[1] <= '9'
}

// isZero reports a zero length such as "0" or "0.0px".
func isZero(term string) bool {
	digits := false
	for i := 0; i < len(term); i++ {
		switch c := term[i]; {
		case c == '0':
			digits = true
		case c == '.':
		default:
			return digits && (unicode.IsLetter(rune(c)) || c == '%')
		}
	}
	return digits
}
