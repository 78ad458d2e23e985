package modifier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/utilcss/rule"
)

func TestImportant(t *testing.T) {
	tests := []struct {
		name  string
		props rule.Properties
		want  rule.Properties
	}{
		{
			name:  "leaf",
			props: rule.Props("padding", "1rem"),
			want:  rule.Props("padding", "1rem !important"),
		},
		{
			name:  "nested",
			props: rule.Props("padding", rule.Props("top", "1rem", "bottom", "2rem")),
			want:  rule.Props("padding", rule.Props("top", "1rem !important", "bottom", "2rem !important")),
		},
		{
			name:  "already important",
			props: rule.Props("color", "red !important"),
			want:  rule.Props("color", "red !important"),
		},
		{
			name:  "already important spaced",
			props: rule.Props("color", "red ! IMPORTANT "),
			want:  rule.Props("color", "red ! IMPORTANT "),
		},
		{
			name:  "number",
			props: rule.Props("z-index", 10, "opacity", 0.5),
			want:  rule.Props("z-index", "10 !important", "opacity", "0.5 !important"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Important(tt.props))
		})
	}
}

func TestImportantIdempotent(t *testing.T) {
	props := rule.Props("margin", rule.Props("x", "auto"), "display", "block")
	once := Important(props)
	require.Equal(t, once, Important(once))
}

func TestImportantDoesNotMutate(t *testing.T) {
	props := rule.Props("padding", rule.Props("top", "1rem"))
	_ = Important(props)
	require.Equal(t, rule.Props("padding", rule.Props("top", "1rem")), props)
}

func TestImportantKeepsNonFinite(t *testing.T) {
	out := Important(rule.Props("opacity", math.NaN()))
	v, _ := out.Get("opacity")
	f, ok := v.(float64)
	require.True(t, ok)
	require.True(t, math.IsNaN(f))
}

func TestAlpha(t *testing.T) {
	tests := []struct {
		mod  string
		want string
		ok   bool
	}{
		{mod: "50", want: "0.5", ok: true},
		{mod: "0", want: "0", ok: true},
		{mod: "100", want: "1", ok: true},
		{mod: "5", want: "0.05", ok: true},
		{mod: "[0.2]", want: "0.2", ok: true},
		{mod: "[35%]", want: "35%", ok: true},
		{mod: "101", ok: false},
		{mod: "[2]", ok: false},
		{mod: "[red]", ok: false},
		{mod: "[0.2", ok: false},
		{mod: "abc", ok: false},
		{mod: "NaN", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.mod, func(t *testing.T) {
			got, ok := Alpha(tt.mod)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestWithAlpha(t *testing.T) {
	tests := []struct {
		name  string
		color string
		want  string
		ok    bool
	}{
		{name: "hex6", color: "#ef4444", want: "rgb(239 68 68 / 0.5)", ok: true},
		{name: "hex3", color: "#fff", want: "rgb(255 255 255 / 0.5)", ok: true},
		{name: "hex upper", color: "#EF4444", want: "rgb(239 68 68 / 0.5)", ok: true},
		{name: "hex8 alpha replaced", color: "#ef444480", want: "rgb(239 68 68 / 0.5)", ok: true},
		{name: "hex4 alpha replaced", color: "#0008", want: "rgb(0 0 0 / 0.5)", ok: true},
		{name: "rgb space", color: "rgb(1 2 3)", want: "rgb(1 2 3 / 0.5)", ok: true},
		{name: "rgb with alpha", color: "rgb(1 2 3 / 0.9)", want: "rgb(1 2 3 / 0.5)", ok: true},
		{name: "hsl", color: "hsl(0 84% 60%)", want: "hsl(0 84% 60% / 0.5)", ok: true},
		{name: "oklch", color: "oklch(63.7% 0.237 25.331)", want: "oklch(63.7% 0.237 25.331 / 0.5)", ok: true},
		{name: "rgba comma", color: "rgba(1, 2, 3, 0.9)", want: "rgba(1, 2, 3, 0.5)", ok: true},
		{name: "hsla comma", color: "hsla(0,84%,60%,1)", want: "hsla(0, 84%, 60%, 0.5)", ok: true},
		{name: "rgb comma", color: "rgb(1,2,3)", want: "rgb(1, 2, 3, 0.5)", ok: true},
		{name: "keyword", color: "red", ok: false},
		{name: "current color", color: "currentColor", ok: false},
		{name: "var", color: "var(--brand)", ok: false},
		{name: "bad hex", color: "#ggg", ok: false},
		{name: "hex5", color: "#12345", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WithAlpha(tt.color, "0.5")
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestOpacity(t *testing.T) {
	props := rule.Props(
		"background-color", "#ef4444",
		"border", rule.Props("color", "#000"),
		"width", "#fff",
		"color", "inherit",
	)
	got := Opacity(props, "0.5")
	want := rule.Props(
		"background-color", "rgb(239 68 68 / 0.5)",
		"border", rule.Props("color", "rgb(0 0 0 / 0.5)"),
		"width", "#fff",
		"color", "inherit",
	)
	require.Equal(t, want, got)
}

func TestOpacityCamelCase(t *testing.T) {
	got := Opacity(rule.Props("backgroundColor", "#fff"), "0.2")
	v, _ := got.Get("backgroundColor")
	assert.Equal(t, "rgb(255 255 255 / 0.2)", v)
}

func TestNegate(t *testing.T) {
	tests := []struct {
		name  string
		props rule.Properties
		want  rule.Properties
	}{
		{name: "length", props: rule.Props("margin", "1rem"), want: rule.Props("margin", "-1rem")},
		{name: "fraction", props: rule.Props("top", ".5rem"), want: rule.Props("top", "-.5rem")},
		{name: "percent", props: rule.Props("translate", "50%"), want: rule.Props("translate", "-50%")},
		{name: "already negative", props: rule.Props("margin", "-4px"), want: rule.Props("margin", "4px")},
		{name: "list", props: rule.Props("margin", "1rem 2rem"), want: rule.Props("margin", "-1rem -2rem")},
		{name: "zero", props: rule.Props("margin", "0px"), want: rule.Props("margin", "0px")},
		{name: "keyword", props: rule.Props("margin", "auto"), want: rule.Props("margin", "auto")},
		{name: "function", props: rule.Props("margin", "calc(1rem + 2px)"), want: rule.Props("margin", "calc(1rem + 2px)")},
		{name: "int", props: rule.Props("z-index", 10), want: rule.Props("z-index", -10)},
		{name: "float", props: rule.Props("order", 1.5), want: rule.Props("order", -1.5)},
		{name: "int8", props: rule.Props("order", int8(-128)), want: rule.Props("order", int64(128))},
		{name: "int16", props: rule.Props("order", int16(3)), want: rule.Props("order", int64(-3))},
		{name: "int32", props: rule.Props("order", int32(3)), want: rule.Props("order", int64(-3))},
		{name: "uint8", props: rule.Props("order", uint8(3)), want: rule.Props("order", int64(-3))},
		{name: "uint16", props: rule.Props("order", uint16(3)), want: rule.Props("order", int64(-3))},
		{name: "uint32", props: rule.Props("order", uint32(3)), want: rule.Props("order", int64(-3))},
		{name: "uint", props: rule.Props("order", uint(3)), want: rule.Props("order", int64(-3))},
		{name: "uint64 overflow", props: rule.Props("order", uint64(math.MaxUint64)), want: rule.Props("order", "-18446744073709551615")},
		{name: "nested", props: rule.Props("margin", rule.Props("top", "1px", "left", "auto")), want: rule.Props("margin", rule.Props("top", "-1px", "left", "auto"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Negate(tt.props))
		})
	}
}
