// Package preset is the default rule set: a Tailwind-flavoured selection of
// layout, spacing, sizing, colour, typography and border utilities, the
// common variants, and the theme they read from.
//
//	rules, _ := preset.RuleRegistry()
//	variants, _ := preset.VariantRegistry()
//	gen := utilcss.New(rules, utilcss.WithVariants(variants), utilcss.WithTheme(preset.Theme()))
package preset

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/yacobolo/utilcss/rule"
	"github.com/yacobolo/utilcss/variant"
)

// RuleRegistry builds the preset rules followed by extra.
func RuleRegistry(extra ...rule.Rule) (*rule.Registry, error) {
	return rule.NewBuilder().Add(Rules()...).Add(extra...).Build()
}

// VariantRegistry builds the preset variants followed by extra. A named
// variant in extra replaces the preset one (DarkClass, for instance).
func VariantRegistry(extra ...variant.Variant) (*variant.Registry, error) {
	return variant.NewBuilder().Add(Variants()...).Add(extra...).Build()
}

// arbitrary returns the inside of a "[...]" capture.
func arbitrary(s string) (string, bool) {
	if len(s) > 2 && s[0] == '[' && s[len(s)-1] == ']' {
		return s[1 : len(s)-1], true
	}
	return "", false
}

var (
	fractionPattern = regexp.MustCompile(`^(\d+)/(\d+)$`)
	lengthPattern   = regexp.MustCompile(`^-?(?:\d+\.?\d*|\.\d+)(?:px|rem|em|%|vh|vw|svh|dvh|ch|ex|pt|cm|mm|in)?$`)
)

// fraction turns "1/3" into "33.333333%".
func fraction(s string) (string, bool) {
	m := fractionPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	num, err1 := strconv.Atoi(m[1])
	den, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil || den == 0 {
		return "", false
	}
	pct := math.Round(float64(num)/float64(den)*100*1e6) / 1e6
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%", true
}

// isLength reports whether an arbitrary value reads as a length rather
// than a colour, e.g. text-[14px] versus text-[#333].
func isLength(v string) bool {
	if lengthPattern.MatchString(v) {
		return true
	}
	for _, fn := range []string{"calc(", "clamp(", "min(", "max("} {
		if strings.HasPrefix(v, fn) {
			return true
		}
	}
	return false
}

// scale resolves a utility value: an arbitrary [value], a keyword, a
// fraction, or a key in a theme group.
type scale struct {
	group     string
	keywords  map[string]string
	fractions bool
}

func (s scale) value(th rule.Theme, key string) (string, bool) {
	if v, ok := arbitrary(key); ok {
		return v, true
	}
	if v, ok := s.keywords[key]; ok {
		return v, true
	}
	if s.fractions {
		if v, ok := fraction(key); ok {
			return v, true
		}
	}
	if s.group == "" {
		return "", false
	}
	return th.String(s.group, key)
}

// each sets every property in names to value.
func each(value string, names ...string) rule.Properties {
	props := make(rule.Properties, 0, len(names))
	for _, n := range names {
		props = append(props, rule.Property{Name: n, Value: value})
	}
	return props
}
