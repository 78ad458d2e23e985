package rule

import "strings"

// ParsedClass is a token split into its modifiers, variants and base utility.
//
// Negative and Opacity are candidates after ParseClass. Registry.Resolve
// settles them against the rule space.
type ParsedClass struct {
	Raw       string
	Important bool
	Variants  []string // declaration order, leftmost first
	Negative  bool
	Utility   string // base utility without a leading "-" or a trailing "/x"
	Opacity   string // "50" or "[0.2]"
}

// Base returns the base utility as written in the token.
func (pc ParsedClass) Base() string {
	return pc.signed() + pc.opacitySuffix()
}

func (pc ParsedClass) signed() string {
	if pc.Negative {
		return "-" + pc.Utility
	}
	return pc.Utility
}

func (pc ParsedClass) opacitySuffix() string {
	if pc.Opacity == "" {
		return ""
	}
	return "/" + pc.Opacity
}

// ParseClass splits a raw token such as "!md:hover:-mt-4" or
// "dark:bg-red-500/50". When prefix is non-empty the base utility must
// carry it ("hover:tw-block"); tokens without it do not parse.
//
// It returns false for tokens that cannot be a utility at all (empty
// segments, unbalanced brackets).
func ParseClass(token, prefix string) (ParsedClass, bool) {
	pc := ParsedClass{Raw: token}
	s := token
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return pc, false
	}

	if strings.HasPrefix(s, "!") {
		pc.Important = true
		s = s[1:]
	}

	parts, ok := splitTopLevel(s, ':')
	if !ok {
		return pc, false
	}
	for _, p := range parts {
		if p == "" {
			return pc, false
		}
	}
	pc.Variants = parts[:len(parts)-1]
	base := parts[len(parts)-1]

	if strings.HasPrefix(base, "!") {
		pc.Important = true
		base = base[1:]
	}
	if strings.HasSuffix(base, "!") {
		pc.Important = true
		base = strings.TrimSuffix(base, "!")
	}

	negative := false
	if strings.HasPrefix(base, "-") && len(base) > 1 {
		negative = true
		base = base[1:]
	}

	if prefix != "" {
		if !strings.HasPrefix(base, prefix) {
			return pc, false
		}
		base = strings.TrimPrefix(base, prefix)
		if !negative && strings.HasPrefix(base, "-") && len(base) > 1 {
			negative = true
			base = base[1:]
		}
	}
	if base == "" {
		return pc, false
	}

	pc.Negative = negative
	pc.Utility = base
	if i := lastTopLevel(base, '/'); i > 0 && i < len(base)-1 {
		if mod := base[i+1:]; isOpacityModifier(mod) {
			pc.Utility = base[:i]
			pc.Opacity = mod
		}
	}
	return pc, true
}

func isOpacityModifier(mod string) bool {
	if strings.HasPrefix(mod, "[") && strings.HasSuffix(mod, "]") {
		return len(mod) > 2
	}
	dot := false
	for _, c := range mod {
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return mod != "" && mod != "."
}

// DecodeArbitrary applies the arbitrary-value convention: class tokens
// cannot hold spaces, so "_" stands for a space and "\_" for a literal "_".
func DecodeArbitrary(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == '_':
			b.WriteByte('_')
			i++
		case s[i] == '_':
			b.WriteByte(' ')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// splitTopLevel splits on sep outside of [] and (). It reports false on
// unbalanced nesting.
func splitTopLevel(s string, sep byte) ([]string, bool) {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[', '(':
			depth++
		case ']', ')':
			depth--
			if depth < 0 {
				return nil, false
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, false
	}
	return append(parts, s[start:]), true
}

func lastTopLevel(s string, c byte) int {
	depth := 0
	last := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case c:
			if depth == 0 {
				last = i
			}
		}
	}
	return last
}

// bracketSpans returns [open, close] index pairs of top-level [...] groups.
func bracketSpans(s string) [][2]int {
	var spans [][2]int
	depth := 0
	open := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[':
			if depth == 0 {
				open = i
			}
			depth++
		case ']':
			depth--
			if depth == 0 && open >= 0 {
				spans = append(spans, [2]int{open, i})
				open = -1
			}
		}
	}
	return spans
}

func insideBracket(spans [][2]int, start, end int) bool {
	for _, sp := range spans {
		if start >= sp[0] && end <= sp[1]+1 {
			return true
		}
	}
	return false
}
