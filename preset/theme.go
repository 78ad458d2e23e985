package preset

import (
	"strconv"

	"github.com/yacobolo/utilcss/rule"
)

// Screen is a named min-width breakpoint.
type Screen struct {
	Name  string
	Width string
}

// Screens are the default breakpoints, smallest first.
var Screens = []Screen{
	{Name: "sm", Width: "640px"},
	{Name: "md", Width: "768px"},
	{Name: "lg", Width: "1024px"},
	{Name: "xl", Width: "1280px"},
	{Name: "2xl", Width: "1536px"},
}

var palette = map[string][]string{
	"gray":   {"#f9fafb", "#f3f4f6", "#e5e7eb", "#d1d5db", "#9ca3af", "#6b7280", "#4b5563", "#374151", "#1f2937", "#111827", "#030712"},
	"red":    {"#fef2f2", "#fee2e2", "#fecaca", "#fca5a5", "#f87171", "#ef4444", "#dc2626", "#b91c1c", "#991b1b", "#7f1d1d", "#450a0a"},
	"orange": {"#fff7ed", "#ffedd5", "#fed7aa", "#fdba74", "#fb923c", "#f97316", "#ea580c", "#c2410c", "#9a3412", "#7c2d12", "#431407"},
	"yellow": {"#fefce8", "#fef9c3", "#fef08a", "#fde047", "#facc15", "#eab308", "#ca8a04", "#a16207", "#854d0e", "#713f12", "#422006"},
	"green":  {"#f0fdf4", "#dcfce7", "#bbf7d0", "#86efac", "#4ade80", "#22c55e", "#16a34a", "#15803d", "#166534", "#14532d", "#052e16"},
	"blue":   {"#eff6ff", "#dbeafe", "#bfdbfe", "#93c5fd", "#60a5fa", "#3b82f6", "#2563eb", "#1d4ed8", "#1e40af", "#1e3a8a", "#172554"},
	"indigo": {"#eef2ff", "#e0e7ff", "#c7d2fe", "#a5b4fc", "#818cf8", "#6366f1", "#4f46e5", "#4338ca", "#3730a3", "#312e81", "#1e1b4b"},
	"purple": {"#faf5ff", "#f3e8ff", "#e9d5ff", "#d8b4fe", "#c084fc", "#a855f7", "#9333ea", "#7e22ce", "#6b21a8", "#581c87", "#3b0764"},
	"pink":   {"#fdf2f8", "#fce7f3", "#fbcfe8", "#f9a8d4", "#f472b6", "#ec4899", "#db2777", "#be185d", "#9d174d", "#831843", "#500724"},
}

var shades = []string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900", "950"}

var spacingSteps = []float64{
	0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 5, 6, 7, 8, 9, 10, 11, 12,
	14, 16, 20, 24, 28, 32, 36, 40, 44, 48, 52, 56, 60, 64, 72, 80, 96,
}

// Theme returns a fresh copy of the default theme. Callers may modify it
// or merge a user theme over it with rule.MergeThemes.
func Theme() rule.Theme {
	colors := map[string]any{
		"inherit":     "inherit",
		"current":     "currentColor",
		"transparent": "transparent",
		"black":       "#000000",
		"white":       "#ffffff",
	}
	for name, hexes := range palette {
		group := make(map[string]any, len(hexes))
		for i, hex := range hexes {
			group[shades[i]] = hex
		}
		colors[name] = group
	}

	spacing := map[string]any{"0": "0px", "px": "1px"}
	for _, step := range spacingSteps {
		key := strconv.FormatFloat(step, 'f', -1, 64)
		spacing[key] = strconv.FormatFloat(step/4, 'f', -1, 64) + "rem"
	}

	opacity := map[string]any{}
	for n := 0; n <= 100; n += 5 {
		opacity[strconv.Itoa(n)] = strconv.FormatFloat(float64(n)/100, 'f', -1, 64)
	}

	screens := map[string]any{}
	for _, s := range Screens {
		screens[s.Name] = s.Width
	}

	return rule.Theme{
		"colors":  colors,
		"spacing": spacing,
		"opacity": opacity,
		"screens": screens,
		"zIndex": map[string]any{
			"0": "0", "10": "10", "20": "20", "30": "30", "40": "40", "50": "50", "auto": "auto",
		},
		"fontWeight": map[string]any{
			"thin": "100", "extralight": "200", "light": "300", "normal": "400", "medium": "500",
			"semibold": "600", "bold": "700", "extrabold": "800", "black": "900",
		},
		"fontFamily": map[string]any{
			"sans":  "ui-sans-serif, system-ui, sans-serif",
			"serif": "ui-serif, Georgia, Cambria, serif",
			"mono":  "ui-monospace, SFMono-Regular, Menlo, Consolas, monospace",
		},
		"fontSize": map[string]any{
			"xs":   map[string]any{"size": "0.75rem", "lineHeight": "1rem"},
			"sm":   map[string]any{"size": "0.875rem", "lineHeight": "1.25rem"},
			"base": map[string]any{"size": "1rem", "lineHeight": "1.5rem"},
			"lg":   map[string]any{"size": "1.125rem", "lineHeight": "1.75rem"},
			"xl":   map[string]any{"size": "1.25rem", "lineHeight": "1.75rem"},
			"2xl":  map[string]any{"size": "1.5rem", "lineHeight": "2rem"},
			"3xl":  map[string]any{"size": "1.875rem", "lineHeight": "2.25rem"},
			"4xl":  map[string]any{"size": "2.25rem", "lineHeight": "2.5rem"},
			"5xl":  map[string]any{"size": "3rem", "lineHeight": "1"},
			"6xl":  map[string]any{"size": "3.75rem", "lineHeight": "1"},
		},
		"borderRadius": map[string]any{
			"none": "0px", "sm": "0.125rem", "DEFAULT": "0.25rem", "md": "0.375rem", "lg": "0.5rem",
			"xl": "0.75rem", "2xl": "1rem", "3xl": "1.5rem", "full": "9999px",
		},
		"borderWidth": map[string]any{
			"DEFAULT": "1px", "0": "0px", "2": "2px", "4": "4px", "8": "8px",
		},
		"transitionDuration": map[string]any{
			"0": "0s", "75": "75ms", "100": "100ms", "150": "150ms", "200": "200ms",
			"300": "300ms", "500": "500ms", "700": "700ms", "1000": "1000ms",
		},
	}
}
