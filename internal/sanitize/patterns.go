package sanitize

import (
	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// patternSet is a case-insensitive multi-pattern matcher over the
// whitespace-free form of a value. One linear pass finds any entry.
type patternSet struct {
	names   []string
	remedy  []string
	matcher ahocorasick.AhoCorasick
}

type pattern struct {
	text   string
	remedy string
}

func newPatternSet(patterns []pattern) *patternSet {
	ps := &patternSet{}
	for _, p := range patterns {
		ps.names = append(ps.names, p.text)
		ps.remedy = append(ps.remedy, p.remedy)
	}
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
		DFA:                  true,
	})
	ps.matcher = builder.Build(ps.names)
	return ps
}

// firstMatch returns the index of the leftmost pattern found in s, or -1.
func (ps *patternSet) firstMatch(s string) int {
	if s == "" {
		return -1
	}
	matches := ps.matcher.FindAll(s)
	if len(matches) == 0 {
		return -1
	}
	return matches[0].Pattern()
}

func (ps *patternSet) name(idx int) string {
	return ps.names[idx]
}

const (
	remedyScript  = "script URLs are never allowed in CSS; use an http(s) or relative URL"
	remedyMarkup  = "CSS values cannot carry HTML or SVG markup; move it out of the class list"
	remedyBinding = "binding and behavior declarations load executable components and are not allowed"
)

// dangerousPatterns are rejected anywhere in a value, after normalization
// and whitespace removal.
var dangerousPatterns = []pattern{
	{text: "javascript:", remedy: remedyScript},
	{text: "vbscript:", remedy: remedyScript},
	{text: "livescript:", remedy: remedyScript},
	{text: "expression(", remedy: "IE expression() executes script; compute the value with calc() or a custom property"},
	{text: "@import", remedy: "@import cannot be injected through a value; import stylesheets in the build instead"},
	{text: "<script", remedy: remedyMarkup},
	{text: "</script", remedy: remedyMarkup},
	{text: "<style", remedy: remedyMarkup},
	{text: "</style", remedy: remedyMarkup},
	{text: "<link", remedy: remedyMarkup},
	{text: "<iframe", remedy: remedyMarkup},
	{text: "<object", remedy: remedyMarkup},
	{text: "<embed", remedy: remedyMarkup},
	{text: "<foreignobject", remedy: remedyMarkup},
	{text: "<meta", remedy: remedyMarkup},
	{text: "<base", remedy: remedyMarkup},
}

// allowedFunctions are the CSS functions a value may call. Vendor prefixes
// are stripped before lookup; url() is handled separately.
var allowedFunctions = []string{
	// color
	"rgb", "rgba", "hsl", "hsla", "hwb", "lab", "lch", "oklab", "oklch",
	"color", "color-mix", "light-dark", "device-cmyk",
	// math
	"calc", "clamp", "min", "max", "round", "mod", "rem", "abs", "sign",
	"sin", "cos", "tan", "asin", "acos", "atan", "atan2", "pow", "sqrt",
	"hypot", "log", "exp",
	// references
	"var", "env", "attr", "counter", "counters",
	// images
	"image-set", "cross-fade", "image",
	"linear-gradient", "radial-gradient", "conic-gradient",
	"repeating-linear-gradient", "repeating-radial-gradient", "repeating-conic-gradient",
	// transforms
	"translate", "translatex", "translatey", "translatez", "translate3d",
	"scale", "scalex", "scaley", "scalez", "scale3d",
	"rotate", "rotatex", "rotatey", "rotatez", "rotate3d",
	"skew", "skewx", "skewy", "matrix", "matrix3d", "perspective",
	// filters
	"blur", "brightness", "contrast", "drop-shadow", "grayscale",
	"hue-rotate", "invert", "opacity", "saturate", "sepia",
	// easing
	"cubic-bezier", "steps", "linear",
	// grid and sizing
	"repeat", "minmax", "fit-content",
	// shapes
	"inset", "circle", "ellipse", "polygon", "path", "rect", "xywh",
	// fonts
	"format", "local", "tech",
}

// markupPatterns are the subset checked inside opaque (raster) payloads.
var markupPatterns = []pattern{
	{text: "<script", remedy: remedyMarkup},
	{text: "<style", remedy: remedyMarkup},
	{text: "<link", remedy: remedyMarkup},
	{text: "<iframe", remedy: remedyMarkup},
	{text: "<foreignobject", remedy: remedyMarkup},
	{text: "javascript:", remedy: remedyScript},
	{text: "vbscript:", remedy: remedyScript},
}
