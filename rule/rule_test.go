package rule

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLiteralMatch(t *testing.T) {
	literals := []string{"block", "flex", "hidden", "sr-only"}

	b := NewBuilder()
	for _, p := range literals {
		b.Add(Static(p, Props("display", p)))
	}
	reg, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, len(literals), reg.Len())
	assert.Equal(t, literals, reg.Literals())

	for _, p := range literals {
		t.Run(p, func(t *testing.T) {
			m, ok := reg.Match(p)
			require.True(t, ok)
			assert.Equal(t, p, m.Rule.Pattern)
			assert.Empty(t, m.Captures)
		})
	}

	_, ok := reg.Match("blocky")
	assert.False(t, ok)
	_, ok = reg.Match("")
	assert.False(t, ok)
}

func TestRegistryCapturingMatch(t *testing.T) {
	reg, err := NewBuilder().Add(
		Dynamic(regexp.MustCompile(`^p-(\d+)$`), func(m Match, _ Theme) Properties {
			return Props("padding", m.Capture(0))
		}),
		Dynamic(regexp.MustCompile(`^bg-\[(.+)\]$`), func(m Match, _ Theme) Properties {
			return Props("background", m.Capture(0))
		}),
		Dynamic(regexp.MustCompile(`^grid-cols-(\[.+\])$`), func(m Match, _ Theme) Properties {
			return Props("grid-template-columns", m.Capture(0))
		}),
	).Build()
	require.NoError(t, err)

	tests := []struct {
		name     string
		utility  string
		captures []string
	}{
		{name: "numeric", utility: "p-4", captures: []string{"4"}},
		{name: "arbitrary decodes underscores", utility: "bg-[url(a.png)_no-repeat]", captures: []string{"url(a.png) no-repeat"}},
		{name: "escaped underscore stays", utility: `bg-[my\_var]`, captures: []string{"my_var"}},
		{name: "capture includes brackets", utility: "grid-cols-[1fr_2fr]", captures: []string{"[1fr 2fr]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := reg.Match(tt.utility)
			require.True(t, ok)
			assert.Equal(t, tt.captures, m.Captures)
			assert.Equal(t, tt.utility, m.Utility)
		})
	}
}

func TestRegistryFirstRegisteredWins(t *testing.T) {
	reg, err := NewBuilder().Add(
		Rule{Match: regexp.MustCompile(`^text-(.+)$`), Properties: Props("color", "first")},
		Rule{Match: regexp.MustCompile(`^text-(\d+)$`), Properties: Props("font-size", "second")},
	).Build()
	require.NoError(t, err)

	m, ok := reg.Match("text-12")
	require.True(t, ok)
	assert.Equal(t, Props("color", "first"), m.Rule.Produce(m, nil))
}

func TestProducePrecedence(t *testing.T) {
	gen := func(Match, Theme) Properties { return Props("from", "generate") }
	handler := func(Match, Theme) *Result { return &Result{Properties: Props("from", "handler")} }
	static := Props("from", "static")
	none := func(Match, Theme) Properties { return nil }
	nilHandler := func(Match, Theme) *Result { return nil }

	tests := []struct {
		name string
		rule Rule
		want Properties
	}{
		{name: "generate beats handler and static", rule: Rule{Generate: gen, Handler: handler, Properties: static}, want: Props("from", "generate")},
		{name: "handler beats static", rule: Rule{Handler: handler, Properties: static}, want: Props("from", "handler")},
		{name: "static alone", rule: Rule{Properties: static}, want: static},
		{name: "nil generate falls through", rule: Rule{Generate: none, Handler: handler}, want: Props("from", "handler")},
		{name: "nil handler falls through", rule: Rule{Handler: nilHandler, Properties: static}, want: static},
		{name: "nothing produced", rule: Rule{Generate: none}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.rule
			assert.Equal(t, tt.want, r.Produce(Match{Rule: &r}, nil))
		})
	}
}

func TestProduceReturnsCopy(t *testing.T) {
	r := Static("p-4", Props("padding", Props("top", "1rem")))
	got := r.Produce(Match{Rule: &r}, nil)
	got[0].Value.(Properties)[0].Value = "mutated"
	assert.Equal(t, "1rem", r.Properties[0].Value.(Properties)[0].Value)
}

func TestBuilderValidation(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
	}{
		{name: "no pattern", rule: Rule{Properties: Props("a", "b")}},
		{name: "both patterns", rule: Rule{Pattern: "x", Match: regexp.MustCompile("x"), Properties: Props("a", "b")}},
		{name: "no source", rule: Rule{Pattern: "x"}},
		{name: "bad layer", rule: Rule{Pattern: "x", Properties: Props("a", "b"), Layer: "overlay"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder().Add(tt.rule).Build()
			require.ErrorIs(t, err, ErrInvalidRule)
		})
	}

	_, err := NewBuilder().Add(Static("x", Props("a", "b")), Static("x", Props("a", "c"))).Build()
	require.ErrorIs(t, err, ErrInvalidRule)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLayerDefaults(t *testing.T) {
	r := Static("x", Props("a", "b"))
	assert.Equal(t, LayerUtilities, r.EffectiveLayer())
	assert.Equal(t, 0, LayerBase.Order())
	assert.Equal(t, 1, LayerComponents.Order())
	assert.Equal(t, 2, LayerUtilities.Order())
}

func TestThemeLookup(t *testing.T) {
	theme := Theme{
		"colors": map[string]any{
			"red": map[string]any{"500": "#ef4444"},
			"white": "#fff",
		},
		"spacing": map[any]any{"0.5": "0.125rem", 4: "1rem"},
		"zIndex":  map[string]any{"10": 10},
	}

	v, ok := theme.String("colors", "red", "500")
	require.True(t, ok)
	assert.Equal(t, "#ef4444", v)

	v, ok = theme.String("spacing", "4")
	require.True(t, ok)
	assert.Equal(t, "1rem", v)

	v, ok = theme.String("zIndex", "10")
	require.True(t, ok)
	assert.Equal(t, "10", v)

	_, ok = theme.String("colors", "red")
	assert.False(t, ok, "groups are not leaves")

	_, ok = theme.Lookup("colors", "blue", "500")
	assert.False(t, ok)

	assert.ElementsMatch(t, []string{"red", "white"}, theme.Keys("colors"))
}

func TestMergeThemes(t *testing.T) {
	base := Theme{"colors": map[string]any{"red": "#f00", "blue": "#00f"}, "radius": "4px"}
	over := Theme{"colors": map[string]any{"red": "#e00"}, "font": "Inter"}

	merged := MergeThemes(base, over)

	v, _ := merged.String("colors", "red")
	assert.Equal(t, "#e00", v)
	v, _ = merged.String("colors", "blue")
	assert.Equal(t, "#00f", v)
	v, _ = merged.String("font")
	assert.Equal(t, "Inter", v)

	v, _ = base.String("colors", "red")
	assert.Equal(t, "#f00", v, "base is not mutated")
}
