// Package rule holds the utility rule model and the matcher that resolves a
// utility token to the rule that generates its declarations.
package rule

import (
	"errors"
	"regexp"
)

// ErrInvalidRule is returned by Builder.Build for malformed rules.
var ErrInvalidRule = errors.New("invalid rule")

// Layer is the output bucket a rule belongs to.
type Layer string

// Layers in output order.
const (
	LayerBase       Layer = "base"
	LayerComponents Layer = "components"
	LayerUtilities  Layer = "utilities"
)

// Order returns the cascade position of the layer (base=0, components=1, utilities=2).
func (l Layer) Order() int {
	switch l {
	case LayerBase:
		return 0
	case LayerComponents:
		return 1
	default:
		return 2
	}
}

func (l Layer) valid() bool {
	switch l {
	case "", LayerBase, LayerComponents, LayerUtilities:
		return true
	}
	return false
}

// Result is the explicit return type of a Handler.
type Result struct {
	Properties Properties
}

// GenerateFunc produces declarations from a match. Returning nil (or an
// empty list) means "no result" and falls through to the next source.
type GenerateFunc func(m Match, theme Theme) Properties

// HandlerFunc is the richer callback form. A nil result falls through.
type HandlerFunc func(m Match, theme Theme) *Result

// Rule maps a utility pattern to CSS declarations.
//
// Exactly one of Pattern (literal) and Match (capturing) is set.
// Declarations come from Generate, then Handler, then Properties; the
// first non-empty source wins.
type Rule struct {
	Pattern    string
	Match      *regexp.Regexp
	Properties Properties
	Generate   GenerateFunc
	Handler    HandlerFunc
	Layer      Layer
	Priority   int
}

// Static returns a literal rule with fixed declarations.
func Static(pattern string, props Properties) Rule {
	return Rule{Pattern: pattern, Properties: props}
}

// Dynamic returns a capturing rule backed by a generator.
func Dynamic(re *regexp.Regexp, gen GenerateFunc) Rule {
	return Rule{Match: re, Generate: gen}
}

// Key identifies the rule in logs and errors.
func (r *Rule) Key() string {
	if r.Match != nil {
		return r.Match.String()
	}
	return r.Pattern
}

// EffectiveLayer returns the rule's layer, defaulting to utilities.
func (r *Rule) EffectiveLayer() Layer {
	if r.Layer == "" {
		return LayerUtilities
	}
	return r.Layer
}

// Produce runs the rule's declaration sources in precedence order.
// The returned Properties are always a fresh copy.
func (r *Rule) Produce(m Match, theme Theme) Properties {
	if r.Generate != nil {
		if props := r.Generate(m, theme); len(props) > 0 {
			return props.Clone()
		}
	}
	if r.Handler != nil {
		if res := r.Handler(m, theme); res != nil && len(res.Properties) > 0 {
			return res.Properties.Clone()
		}
	}
	if len(r.Properties) > 0 {
		return r.Properties.Clone()
	}
	return nil
}

// Match is the outcome of resolving a utility against the registry.
type Match struct {
	Rule     *Rule
	Utility  string
	Captures []string
}

// Capture returns the i-th capture or "" when absent.
func (m Match) Capture(i int) string {
	if i < 0 || i >= len(m.Captures) {
		return ""
	}
	return m.Captures[i]
}
