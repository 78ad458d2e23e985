package rule

import (
	"fmt"
	"regexp"
)

// Builder accumulates rules from plugins. Build validates them and hands
// back an immutable Registry.
type Builder struct {
	rules []Rule
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends rules in registration order.
func (b *Builder) Add(rules ...Rule) *Builder {
	b.rules = append(b.rules, rules...)
	return b
}

// Len reports how many rules have been added.
func (b *Builder) Len() int {
	return len(b.rules)
}

// Build validates every rule and freezes the set.
func (b *Builder) Build() (*Registry, error) {
	reg := &Registry{
		literal: make(map[string]*Rule),
	}

	for i := range b.rules {
		r := b.rules[i]
		if err := validate(&r); err != nil {
			return nil, fmt.Errorf("rule #%d (%s): %w", i, r.Key(), err)
		}
		if r.Match != nil {
			reg.dynamic = append(reg.dynamic, &r)
			continue
		}
		if _, dup := reg.literal[r.Pattern]; dup {
			return nil, fmt.Errorf("rule #%d: duplicate pattern %q: %w", i, r.Pattern, ErrInvalidRule)
		}
		reg.literal[r.Pattern] = &r
		reg.order = append(reg.order, r.Pattern)
	}

	return reg, nil
}

func validate(r *Rule) error {
	switch {
	case r.Pattern == "" && r.Match == nil:
		return fmt.Errorf("no pattern: %w", ErrInvalidRule)
	case r.Pattern != "" && r.Match != nil:
		return fmt.Errorf("both literal and capturing pattern set: %w", ErrInvalidRule)
	case r.Generate == nil && r.Handler == nil && len(r.Properties) == 0:
		return fmt.Errorf("no properties, generate or handler: %w", ErrInvalidRule)
	case !r.Layer.valid():
		return fmt.Errorf("unknown layer %q: %w", r.Layer, ErrInvalidRule)
	}
	return nil
}

// Registry is the frozen rule space. It is safe for concurrent reads.
type Registry struct {
	literal map[string]*Rule
	order   []string
	dynamic []*Rule
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.literal) + len(r.dynamic)
}

// Literals returns literal patterns in registration order.
func (r *Registry) Literals() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Match resolves a bare utility (no variants or modifiers).
//
// Literal patterns are looked up directly. Capturing patterns are tried in
// registration order and the first one that matches wins.
func (r *Registry) Match(utility string) (Match, bool) {
	if utility == "" {
		return Match{}, false
	}
	if rule, ok := r.literal[utility]; ok {
		return Match{Rule: rule, Utility: utility}, true
	}
	for _, rule := range r.dynamic {
		if caps, ok := Captures(rule.Match, utility); ok {
			return Match{Rule: rule, Utility: utility, Captures: caps}, true
		}
	}
	return Match{}, false
}

// Resolve matches a parsed class, deciding whether a trailing "/x" is an
// opacity modifier and whether a leading "-" is a negation.
//
// The base as written is tried first so rules like w-1/2 or literal
// negative patterns win over modifier interpretation.
func (r *Registry) Resolve(pc ParsedClass) (Match, ParsedClass, bool) {
	type candidate struct {
		utility  string
		negative bool
		opacity  string
	}

	written := pc.Base()
	candidates := []candidate{{utility: written}}
	if pc.Opacity != "" {
		candidates = append(candidates, candidate{utility: pc.signed(), opacity: pc.Opacity})
	}
	if pc.Negative {
		candidates = append(candidates, candidate{utility: pc.Utility + pc.opacitySuffix(), negative: true})
		if pc.Opacity != "" {
			candidates = append(candidates, candidate{utility: pc.Utility, negative: true, opacity: pc.Opacity})
		}
	}

	for _, c := range candidates {
		m, ok := r.Match(c.utility)
		if !ok {
			continue
		}
		out := pc
		out.Utility = c.utility
		out.Negative = c.negative
		out.Opacity = c.opacity
		return m, out, true
	}
	return Match{}, pc, false
}

// Captures runs re against s and returns the submatches (whole match
// excluded). Captures that sit inside an arbitrary-value bracket are
// decoded with DecodeArbitrary.
func Captures(re *regexp.Regexp, s string) ([]string, bool) {
	loc := re.FindStringSubmatchIndex(s)
	if loc == nil {
		return nil, false
	}
	spans := bracketSpans(s)
	caps := make([]string, 0, len(loc)/2-1)
	for i := 2; i+1 < len(loc); i += 2 {
		start, end := loc[i], loc[i+1]
		if start < 0 {
			caps = append(caps, "")
			continue
		}
		val := s[start:end]
		if insideBracket(spans, start, end) {
			val = DecodeArbitrary(val)
		}
		caps = append(caps, val)
	}
	return caps, true
}

// MustCompile is regexp.MustCompile, re-exported so plugin tables read
// naturally next to the rule constructors.
func MustCompile(expr string) *regexp.Regexp {
	return regexp.MustCompile(expr)
}
