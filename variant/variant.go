// Package variant resolves variant prefixes (hover:, md:, data-[state=open]:)
// into selector rewrites and at-rule wrappers and composes them around
// generated CSS.
package variant

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/yacobolo/utilcss/internal/serialize"
	"github.com/yacobolo/utilcss/rule"
)

// ErrInvalidVariant is returned by Builder.Build for malformed variants.
var ErrInvalidVariant = errors.New("invalid variant")

// RewriteFunc maps the current selector to a new one.
type RewriteFunc func(selector string, captures []string) string

// Wrapper is the closed set of wrapper kinds. The kind is fixed by the Go
// type at registration, never inferred from what a callback returns.
type Wrapper interface {
	wrap(css string, captures []string) string
	kind() string
}

// LiteralWrapper encloses CSS in a fixed at-rule, e.g. "@media (min-width: 640px)".
type LiteralWrapper struct {
	AtRule string
}

// FactoryWrapper builds the at-rule from the variant's captures.
type FactoryWrapper func(captures []string) string

// TransformWrapper rewrites already-produced CSS text.
type TransformWrapper func(css string) string

func (w LiteralWrapper) wrap(css string, _ []string) string { return block(w.AtRule, css) }
func (w LiteralWrapper) kind() string                      { return "literal" }

func (w FactoryWrapper) wrap(css string, captures []string) string {
	return block(w(captures), css)
}
func (w FactoryWrapper) kind() string { return "factory" }

func (w TransformWrapper) wrap(css string, _ []string) string { return w(css) }
func (w TransformWrapper) kind() string                      { return "transform" }

func nilWrapper(w Wrapper) bool {
	switch fn := w.(type) {
	case FactoryWrapper:
		return fn == nil
	case TransformWrapper:
		return fn == nil
	case LiteralWrapper:
		return fn.AtRule == ""
	}
	return false
}

func block(atRule, css string) string {
	return atRule + " {\n" + serialize.Indent(strings.TrimRight(css, "\n"), "  ") + "\n}"
}

// Variant is a registered variant.
//
// Name is matched exactly; Match (when set) handles parametric names and
// its submatches become the captures. Exactly one of Rewrite and Wrapper
// is set.
type Variant struct {
	Name    string
	Match   *regexp.Regexp
	Rewrite RewriteFunc
	Wrapper Wrapper
}

// Selector returns a selector-rewriting variant.
func Selector(name string, fn RewriteFunc) Variant {
	return Variant{Name: name, Rewrite: fn}
}

// Suffix returns a variant appending a pseudo-class or pseudo-element.
func Suffix(name, suffix string) Variant {
	return Selector(name, func(sel string, _ []string) string { return sel + suffix })
}

// AtRule returns a variant wrapping output in a fixed at-rule.
func AtRule(name, atRule string) Variant {
	return Variant{Name: name, Wrapper: LiteralWrapper{AtRule: atRule}}
}

// Parametric returns a capturing variant with a selector rewrite.
func Parametric(re *regexp.Regexp, fn RewriteFunc) Variant {
	return Variant{Match: re, Rewrite: fn}
}

// ParametricAtRule returns a capturing variant whose at-rule is built from captures.
func ParametricAtRule(re *regexp.Regexp, fn func(captures []string) string) Variant {
	return Variant{Match: re, Wrapper: FactoryWrapper(fn)}
}

// Transform returns a variant that rewrites the produced CSS text.
func Transform(name string, fn func(css string) string) Variant {
	return Variant{Name: name, Wrapper: TransformWrapper(fn)}
}

func (v *Variant) key() string {
	if v.Match != nil {
		return v.Match.String()
	}
	return v.Name
}

// Resolved is a variant bound to the name it was found under.
type Resolved struct {
	Name     string
	Variant  *Variant
	Captures []string
}

// Kind reports "selector" or the wrapper kind.
func (r Resolved) Kind() string {
	if r.Variant.Rewrite != nil {
		return "selector"
	}
	return r.Variant.Wrapper.kind()
}

// Builder accumulates variants and hands out an immutable Registry.
type Builder struct {
	variants []Variant
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends variants in registration order.
func (b *Builder) Add(variants ...Variant) *Builder {
	b.variants = append(b.variants, variants...)
	return b
}

// Build validates and freezes the variant set. A later literal variant
// with the same name replaces an earlier one, so plugins can override.
func (b *Builder) Build() (*Registry, error) {
	reg := &Registry{exact: make(map[string]*Variant)}
	for i := range b.variants {
		v := b.variants[i]
		switch {
		case v.Name == "" && v.Match == nil:
			return nil, fmt.Errorf("variant #%d: no name or pattern: %w", i, ErrInvalidVariant)
		case v.Name != "" && v.Match != nil:
			return nil, fmt.Errorf("variant #%d (%s): both name and pattern set: %w", i, v.key(), ErrInvalidVariant)
		case (v.Rewrite == nil) == (v.Wrapper == nil):
			return nil, fmt.Errorf("variant #%d (%s): exactly one of rewrite or wrapper required: %w", i, v.key(), ErrInvalidVariant)
		case nilWrapper(v.Wrapper):
			return nil, fmt.Errorf("variant #%d (%s): nil wrapper function: %w", i, v.key(), ErrInvalidVariant)
		}
		if v.Match != nil {
			reg.parametric = append(reg.parametric, &v)
			continue
		}
		if _, ok := reg.exact[v.Name]; !ok {
			reg.names = append(reg.names, v.Name)
		}
		reg.exact[v.Name] = &v
	}
	return reg, nil
}

// Registry is the frozen variant set.
type Registry struct {
	exact      map[string]*Variant
	names      []string
	parametric []*Variant
}

// Len returns the number of distinct variants.
func (r *Registry) Len() int {
	return len(r.exact) + len(r.parametric)
}

// Names returns literal variant names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Find resolves a variant name: exact lookup first, then parametric
// variants in registration order.
func (r *Registry) Find(name string) (Resolved, bool) {
	if v, ok := r.exact[name]; ok {
		return Resolved{Name: name, Variant: v}, true
	}
	for _, v := range r.parametric {
		if caps, ok := rule.Captures(v.Match, name); ok {
			return Resolved{Name: name, Variant: v, Captures: caps}, true
		}
	}
	return Resolved{}, false
}

// FindAll resolves names in order; it reports the first unknown name.
func (r *Registry) FindAll(names []string) ([]Resolved, string, bool) {
	out := make([]Resolved, 0, len(names))
	for _, n := range names {
		res, ok := r.Find(n)
		if !ok {
			return nil, n, false
		}
		out = append(out, res)
	}
	return out, "", true
}
