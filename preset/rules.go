package preset

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yacobolo/utilcss/rule"
)

// Rules returns the preset rules in registration order. Literal rules
// always win over capturing ones; capturing rules are tried in order.
func Rules() []rule.Rule {
	var rules []rule.Rule
	for _, group := range [][]rule.Rule{
		layoutRules(),
		flexGridRules(),
		typographyRules(),
		spacingRules(),
		sizingRules(),
		colorRules(),
		borderRules(),
		effectRules(),
		arbitraryRules(),
	} {
		rules = append(rules, group...)
	}
	return rules
}

// literals registers pattern → value pairs for one property.
func literals(property string, pairs ...string) []rule.Rule {
	rules := make([]rule.Rule, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		rules = append(rules, rule.Static(pairs[i], rule.Props(property, pairs[i+1])))
	}
	return rules
}

func layoutRules() []rule.Rule {
	rules := literals("display",
		"block", "block",
		"inline-block", "inline-block",
		"inline", "inline",
		"flex", "flex",
		"inline-flex", "inline-flex",
		"grid", "grid",
		"inline-grid", "inline-grid",
		"table", "table",
		"table-row", "table-row",
		"table-cell", "table-cell",
		"contents", "contents",
		"flow-root", "flow-root",
		"list-item", "list-item",
		"hidden", "none",
	)
	rules = append(rules, literals("position",
		"static", "static",
		"fixed", "fixed",
		"absolute", "absolute",
		"relative", "relative",
		"sticky", "sticky",
	)...)
	rules = append(rules, literals("visibility",
		"visible", "visible",
		"invisible", "hidden",
		"collapse", "collapse",
	)...)
	rules = append(rules, literals("box-sizing",
		"box-border", "border-box",
		"box-content", "content-box",
	)...)
	for _, v := range []string{"auto", "hidden", "clip", "visible", "scroll"} {
		rules = append(rules,
			rule.Static("overflow-"+v, rule.Props("overflow", v)),
			rule.Static("overflow-x-"+v, rule.Props("overflow-x", v)),
			rule.Static("overflow-y-"+v, rule.Props("overflow-y", v)),
		)
	}
	rules = append(rules,
		rule.Static("sr-only", rule.Props(
			"position", "absolute",
			"width", "1px",
			"height", "1px",
			"padding", "0",
			"margin", "-1px",
			"overflow", "hidden",
			"clip", "rect(0, 0, 0, 0)",
			"whiteSpace", "nowrap",
			"borderWidth", "0",
		)),
		rule.Rule{
			Pattern: "container",
			Properties: rule.Props(
				"width", "100%",
				"margin", rule.Props("left", "auto", "right", "auto"),
			),
			Layer: rule.LayerComponents,
		},
		rule.Rule{
			Match:    regexp.MustCompile(`^z-(\d+|auto|\[.+\])$`),
			Generate: themed("zIndex", "z-index"),
		},
		rule.Rule{
			Match: regexp.MustCompile(`^order-(\d+|first|last|none|\[.+\])$`),
			Generate: func(m rule.Match, _ rule.Theme) rule.Properties {
				keywords := map[string]string{"first": "-9999", "last": "9999", "none": "0"}
				v, ok := arbitrary(m.Capture(0))
				if !ok {
					if v, ok = keywords[m.Capture(0)]; !ok {
						v = m.Capture(0)
					}
				}
				return rule.Props("order", v)
			},
		},
		rule.Rule{
			Match: regexp.MustCompile(`^aspect-(auto|square|video|\[.+\])$`),
			Generate: func(m rule.Match, _ rule.Theme) rule.Properties {
				v, ok := scale{keywords: map[string]string{
					"auto": "auto", "square": "1 / 1", "video": "16 / 9",
				}}.value(nil, m.Capture(0))
				if !ok {
					return nil
				}
				return rule.Props("aspect-ratio", v)
			},
		},
	)

	inset := scale{group: "spacing", fractions: true, keywords: map[string]string{"auto": "auto", "full": "100%"}}
	insetSides := map[string][]string{
		"inset":   {"inset"},
		"inset-x": {"left", "right"},
		"inset-y": {"top", "bottom"},
		"top":     {"top"},
		"right":   {"right"},
		"bottom":  {"bottom"},
		"left":    {"left"},
		"start":   {"inset-inline-start"},
		"end":     {"inset-inline-end"},
	}
	rules = append(rules, rule.Rule{
		Match: regexp.MustCompile(`^(inset-[xy]|inset|top|right|bottom|left|start|end)-(.+)$`),
		Generate: func(m rule.Match, th rule.Theme) rule.Properties {
			v, ok := inset.value(th, m.Capture(1))
			if !ok {
				return nil
			}
			return each(v, insetSides[m.Capture(0)]...)
		},
	})
	return rules
}

func flexGridRules() []rule.Rule {
	rules := literals("flex-direction",
		"flex-row", "row",
		"flex-row-reverse", "row-reverse",
		"flex-col", "column",
		"flex-col-reverse", "column-reverse",
	)
	rules = append(rules, literals("flex-wrap",
		"flex-wrap", "wrap",
		"flex-wrap-reverse", "wrap-reverse",
		"flex-nowrap", "nowrap",
	)...)
	rules = append(rules, literals("flex",
		"flex-1", "1 1 0%",
		"flex-auto", "1 1 auto",
		"flex-initial", "0 1 auto",
		"flex-none", "none",
	)...)
	rules = append(rules,
		rule.Static("grow", rule.Props("flex-grow", 1)),
		rule.Static("grow-0", rule.Props("flex-grow", 0)),
		rule.Static("shrink", rule.Props("flex-shrink", 1)),
		rule.Static("shrink-0", rule.Props("flex-shrink", 0)),
	)
	rules = append(rules, literals("align-items",
		"items-start", "flex-start",
		"items-end", "flex-end",
		"items-center", "center",
		"items-baseline", "baseline",
		"items-stretch", "stretch",
	)...)
	rules = append(rules, literals("justify-content",
		"justify-start", "flex-start",
		"justify-end", "flex-end",
		"justify-center", "center",
		"justify-between", "space-between",
		"justify-around", "space-around",
		"justify-evenly", "space-evenly",
	)...)

	gap := scale{group: "spacing"}
	gapProps := map[string]string{"": "gap", "x": "column-gap", "y": "row-gap"}
	rules = append(rules,
		rule.Rule{
			Match: regexp.MustCompile(`^gap(?:-([xy]))?-(.+)$`),
			Generate: func(m rule.Match, th rule.Theme) rule.Properties {
				v, ok := gap.value(th, m.Capture(1))
				if !ok {
					return nil
				}
				return rule.Props(gapProps[m.Capture(0)], v)
			},
		},
		rule.Rule{
			Match: regexp.MustCompile(`^grid-(cols|rows)-(\d+|none|subgrid|\[.+\])$`),
			Generate: func(m rule.Match, _ rule.Theme) rule.Properties {
				prop := "grid-template-columns"
				if m.Capture(0) == "rows" {
					prop = "grid-template-rows"
				}
				n := m.Capture(1)
				if v, ok := arbitrary(n); ok {
					return rule.Props(prop, v)
				}
				if n == "none" || n == "subgrid" {
					return rule.Props(prop, n)
				}
				if n == "0" {
					return nil
				}
				return rule.Props(prop, "repeat("+n+", minmax(0, 1fr))")
			},
		},
		rule.Rule{
			Match: regexp.MustCompile(`^(col|row)-span-(\d+|full)$`),
			Generate: func(m rule.Match, _ rule.Theme) rule.Properties {
				prop := "grid-column"
				if m.Capture(0) == "row" {
					prop = "grid-row"
				}
				if m.Capture(1) == "full" {
					return rule.Props(prop, "1 / -1")
				}
				return rule.Props(prop, "span "+m.Capture(1)+" / span "+m.Capture(1))
			},
		},
	)
	return rules
}

func typographyRules() []rule.Rule {
	rules := literals("text-align",
		"text-left", "left",
		"text-center", "center",
		"text-right", "right",
		"text-justify", "justify",
		"text-start", "start",
		"text-end", "end",
	)
	rules = append(rules, literals("text-transform",
		"uppercase", "uppercase",
		"lowercase", "lowercase",
		"capitalize", "capitalize",
		"normal-case", "none",
	)...)
	rules = append(rules, literals("text-decoration-line",
		"underline", "underline",
		"overline", "overline",
		"line-through", "line-through",
		"no-underline", "none",
	)...)
	rules = append(rules, literals("white-space",
		"whitespace-normal", "normal",
		"whitespace-nowrap", "nowrap",
		"whitespace-pre", "pre",
		"whitespace-pre-line", "pre-line",
		"whitespace-pre-wrap", "pre-wrap",
	)...)
	rules = append(rules,
		rule.Static("italic", rule.Props("font-style", "italic")),
		rule.Static("not-italic", rule.Props("font-style", "normal")),
		rule.Static("truncate", rule.Props(
			"overflow", "hidden",
			"text-overflow", "ellipsis",
			"white-space", "nowrap",
		)),
		rule.Static("antialiased", rule.Props(
			"WebkitFontSmoothing", "antialiased",
			"MozOsxFontSmoothing", "grayscale",
		)),
		rule.Rule{
			Match: regexp.MustCompile(`^font-(\[.+\]|[a-z]+)$`),
			Generate: func(m rule.Match, th rule.Theme) rule.Properties {
				key := m.Capture(0)
				if v, ok := arbitrary(key); ok {
					if lengthPattern.MatchString(v) {
						return rule.Props("font-weight", v)
					}
					return rule.Props("font-family", v)
				}
				if v, ok := th.String("fontWeight", key); ok {
					return rule.Props("font-weight", v)
				}
				if v, ok := th.String("fontFamily", key); ok {
					return rule.Props("font-family", v)
				}
				return nil
			},
		},
		rule.Rule{
			Match: regexp.MustCompile(`^text-(\[.+\]|[a-z0-9]+(?:-\d+)?)$`),
			Generate: func(m rule.Match, th rule.Theme) rule.Properties {
				key := m.Capture(0)
				if v, ok := arbitrary(key); ok {
					if isLength(v) {
						return rule.Props("font-size", v)
					}
					return rule.Props("color", v)
				}
				if size, ok := th.String("fontSize", key, "size"); ok {
					props := rule.Props("font-size", size)
					if lh, ok := th.String("fontSize", key, "lineHeight"); ok {
						props = append(props, rule.Property{Name: "line-height", Value: lh})
					}
					return props
				}
				if v, ok := color(th, key); ok {
					return rule.Props("color", v)
				}
				return nil
			},
		},
		rule.Rule{
			Match: regexp.MustCompile(`^line-clamp-(\d+|none)$`),
			Handler: func(m rule.Match, _ rule.Theme) *rule.Result {
				if m.Capture(0) == "none" {
					return &rule.Result{Properties: rule.Props(
						"overflow", "visible",
						"display", "block",
						"WebkitBoxOrient", "horizontal",
						"WebkitLineClamp", "none",
					)}
				}
				return &rule.Result{Properties: rule.Props(
					"overflow", "hidden",
					"display", "-webkit-box",
					"WebkitBoxOrient", "vertical",
					"WebkitLineClamp", m.Capture(0),
				)}
			},
		},
		rule.Rule{
			Match: regexp.MustCompile(`^content-(none|\[.+\])$`),
			Generate: func(m rule.Match, _ rule.Theme) rule.Properties {
				if v, ok := arbitrary(m.Capture(0)); ok {
					return rule.Props("content", v)
				}
				return rule.Props("content", "none")
			},
		},
	)
	return rules
}

// spacingRules registers padding and margin. Axis and side rules sort after
// the shorthand so p-4 px-2 resolves the way it reads.
func spacingRules() []rule.Rule {
	padding := scale{group: "spacing"}
	margin := scale{group: "spacing", keywords: map[string]string{"auto": "auto"}}
	props := map[string]string{"p": "padding", "m": "margin"}
	scales := map[string]scale{"p": padding, "m": margin}
	axes := map[string][]string{
		"x": {"left", "right"},
		"y": {"top", "bottom"},
		"t": {"top"},
		"r": {"right"},
		"b": {"bottom"},
		"l": {"left"},
	}

	sided := func(m rule.Match, th rule.Theme) rule.Properties {
		kind, side := m.Capture(0), m.Capture(1)
		v, ok := scales[kind].value(th, m.Capture(2))
		if !ok {
			return nil
		}
		names := make([]string, 0, 2)
		for _, s := range axes[side] {
			names = append(names, props[kind]+"-"+s)
		}
		return each(v, names...)
	}

	return []rule.Rule{
		{
			Match: regexp.MustCompile(`^([pm])-(.+)$`),
			Generate: func(m rule.Match, th rule.Theme) rule.Properties {
				v, ok := scales[m.Capture(0)].value(th, m.Capture(1))
				if !ok {
					return nil
				}
				return rule.Props(props[m.Capture(0)], v)
			},
		},
		{Match: regexp.MustCompile(`^([pm])([xy])-(.+)$`), Generate: sided, Priority: 1},
		{Match: regexp.MustCompile(`^([pm])([trbl])-(.+)$`), Generate: sided, Priority: 2},
	}
}

func sizingRules() []rule.Rule {
	common := map[string]string{
		"auto": "auto", "full": "100%", "min": "min-content", "max": "max-content", "fit": "fit-content",
	}
	widths := scale{group: "spacing", fractions: true, keywords: with(common, "screen", "100vw", "svw", "100svw", "dvw", "100dvw")}
	heights := scale{group: "spacing", fractions: true, keywords: with(common, "screen", "100vh", "svh", "100svh", "dvh", "100dvh")}
	maxWidths := scale{group: "spacing", fractions: true, keywords: with(common,
		"none", "none", "xs", "20rem", "sm", "24rem", "md", "28rem", "lg", "32rem",
		"xl", "36rem", "2xl", "42rem", "3xl", "48rem", "4xl", "56rem", "prose", "65ch", "screen", "100vw",
	)}

	sizes := map[string]struct {
		scale scale
		props []string
	}{
		"w":     {widths, []string{"width"}},
		"min-w": {widths, []string{"min-width"}},
		"max-w": {maxWidths, []string{"max-width"}},
		"h":     {heights, []string{"height"}},
		"min-h": {heights, []string{"min-height"}},
		"max-h": {heights, []string{"max-height"}},
		"size":  {widths, []string{"width", "height"}},
	}

	return []rule.Rule{{
		Match: regexp.MustCompile(`^((?:min-|max-)?[wh]|size)-(.+)$`),
		Generate: func(m rule.Match, th rule.Theme) rule.Properties {
			s, ok := sizes[m.Capture(0)]
			if !ok {
				return nil
			}
			v, ok := s.scale.value(th, m.Capture(1))
			if !ok {
				return nil
			}
			return each(v, s.props...)
		},
	}}
}

// with returns a copy of base extended with pairs.
func with(base map[string]string, pairs ...string) map[string]string {
	out := make(map[string]string, len(base)+len(pairs)/2)
	for k, v := range base {
		out[k] = v
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		out[pairs[i]] = pairs[i+1]
	}
	return out
}

// color resolves a colour key: "black", "red-500" or an arbitrary value.
func color(th rule.Theme, key string) (string, bool) {
	if v, ok := arbitrary(key); ok {
		return v, true
	}
	if v, ok := th.String("colors", key); ok {
		return v, true
	}
	if i := strings.LastIndexByte(key, '-'); i > 0 {
		return th.String("colors", key[:i], key[i+1:])
	}
	return "", false
}

// colorPattern matches a named, shaded or arbitrary colour but never a
// trailing opacity modifier, so bg-red-500/50 falls through to the
// modifier interpretation.
const colorPattern = `(\[.+\]|[a-z]+(?:-\d+)?)`

func colorRules() []rule.Rule {
	return []rule.Rule{
		{
			Match: regexp.MustCompile(`^bg-` + colorPattern + `$`),
			Generate: func(m rule.Match, th rule.Theme) rule.Properties {
				if v, ok := arbitrary(m.Capture(0)); ok && (strings.HasPrefix(v, "url(") || strings.Contains(v, "gradient(")) {
					return rule.Props("background-image", v)
				}
				v, ok := color(th, m.Capture(0))
				if !ok {
					return nil
				}
				return rule.Props("background-color", v)
			},
		},
		rule.Static("fill-none", rule.Props("fill", "none")),
		rule.Static("stroke-none", rule.Props("stroke", "none")),
		{
			Match: regexp.MustCompile(`^(fill|stroke|outline|accent|caret)-` + colorPattern + `$`),
			Generate: func(m rule.Match, th rule.Theme) rule.Properties {
				v, ok := color(th, m.Capture(1))
				if !ok {
					return nil
				}
				switch m.Capture(0) {
				case "outline":
					return rule.Props("outline-color", v)
				case "accent":
					return rule.Props("accent-color", v)
				case "caret":
					return rule.Props("caret-color", v)
				}
				return rule.Props(m.Capture(0), v)
			},
		},
		{
			Match:    regexp.MustCompile(`^opacity-(\d+|\[.+\])$`),
			Generate: themed("opacity", "opacity"),
		},
	}
}

func borderRules() []rule.Rule {
	sides := map[string][]string{
		"":  {"border-width"},
		"x": {"border-left-width", "border-right-width"},
		"y": {"border-top-width", "border-bottom-width"},
		"t": {"border-top-width"},
		"r": {"border-right-width"},
		"b": {"border-bottom-width"},
		"l": {"border-left-width"},
	}
	corners := map[string][]string{
		"":   {"border-radius"},
		"t":  {"border-top-left-radius", "border-top-right-radius"},
		"r":  {"border-top-right-radius", "border-bottom-right-radius"},
		"b":  {"border-bottom-right-radius", "border-bottom-left-radius"},
		"l":  {"border-top-left-radius", "border-bottom-left-radius"},
		"tl": {"border-top-left-radius"},
		"tr": {"border-top-right-radius"},
		"br": {"border-bottom-right-radius"},
		"bl": {"border-bottom-left-radius"},
	}

	rules := literals("border-style",
		"border-solid", "solid",
		"border-dashed", "dashed",
		"border-dotted", "dotted",
		"border-double", "double",
		"border-none", "none",
	)
	rules = append(rules,
		rule.Static("outline-none", rule.Props("outline", "2px solid transparent", "outline-offset", "2px")),
		rule.Static("outline", rule.Props("outline-style", "solid")),
		rule.Rule{
			Match: regexp.MustCompile(`^border(?:-([xytrbl]))?(?:-(\d+))?$`),
			Generate: func(m rule.Match, th rule.Theme) rule.Properties {
				key := m.Capture(1)
				if key == "" {
					key = "DEFAULT"
				}
				v, ok := th.String("borderWidth", key)
				if !ok {
					return nil
				}
				return each(v, sides[m.Capture(0)]...)
			},
		},
		rule.Rule{
			Match: regexp.MustCompile(`^border-` + colorPattern + `$`),
			Generate: func(m rule.Match, th rule.Theme) rule.Properties {
				if v, ok := arbitrary(m.Capture(0)); ok && isLength(v) {
					return rule.Props("border-width", v)
				}
				v, ok := color(th, m.Capture(0))
				if !ok {
					return nil
				}
				return rule.Props("border-color", v)
			},
		},
		rule.Rule{
			Match: regexp.MustCompile(`^rounded(?:-(tl|tr|br|bl|t|r|b|l))?(?:-(\[.+\]|[a-z0-9]+))?$`),
			Generate: func(m rule.Match, th rule.Theme) rule.Properties {
				key := m.Capture(1)
				if key == "" {
					key = "DEFAULT"
				}
				v, ok := scale{group: "borderRadius"}.value(th, key)
				if !ok {
					return nil
				}
				return each(v, corners[m.Capture(0)]...)
			},
		},
	)
	return rules
}

func effectRules() []rule.Rule {
	translate := scale{group: "spacing", fractions: true, keywords: map[string]string{"full": "100%"}}
	return []rule.Rule{
		rule.Static("transition", rule.Props(
			"transitionProperty", "color, background-color, border-color, fill, stroke, opacity, box-shadow, transform",
			"transitionTimingFunction", "cubic-bezier(0.4, 0, 0.2, 1)",
			"transitionDuration", "150ms",
		)),
		rule.Static("transition-none", rule.Props("transition-property", "none")),
		rule.Static("pointer-events-none", rule.Props("pointer-events", "none")),
		rule.Static("pointer-events-auto", rule.Props("pointer-events", "auto")),
		rule.Static("select-none", rule.Props("user-select", "none")),
		rule.Static("select-all", rule.Props("user-select", "all")),
		{
			Match:    regexp.MustCompile(`^duration-(\d+|\[.+\])$`),
			Generate: themed("transitionDuration", "transition-duration"),
		},
		{
			Match: regexp.MustCompile(`^cursor-(auto|default|pointer|wait|text|move|help|not-allowed|grab|grabbing)$`),
			Generate: func(m rule.Match, _ rule.Theme) rule.Properties {
				return rule.Props("cursor", m.Capture(0))
			},
		},
		{
			Match: regexp.MustCompile(`^translate-([xy])-(.+)$`),
			Generate: func(m rule.Match, th rule.Theme) rule.Properties {
				v, ok := translate.value(th, m.Capture(1))
				if !ok {
					return nil
				}
				if m.Capture(0) == "x" {
					return rule.Props("translate", v+" 0")
				}
				return rule.Props("translate", "0 "+v)
			},
		},
		{
			Match: regexp.MustCompile(`^rotate-(\d+|\[.+\])$`),
			Generate: func(m rule.Match, _ rule.Theme) rule.Properties {
				if v, ok := arbitrary(m.Capture(0)); ok {
					return rule.Props("rotate", v)
				}
				return rule.Props("rotate", m.Capture(0)+"deg")
			},
		},
		{
			Match: regexp.MustCompile(`^scale-(\d+|\[.+\])$`),
			Generate: func(m rule.Match, _ rule.Theme) rule.Properties {
				if v, ok := arbitrary(m.Capture(0)); ok {
					return rule.Props("scale", v)
				}
				n, err := strconv.Atoi(m.Capture(0))
				if err != nil {
					return nil
				}
				return rule.Props("scale", strconv.FormatFloat(float64(n)/100, 'f', -1, 64))
			},
		},
	}
}

// arbitraryRules covers [property:value] tokens. The property name is
// restricted to lowercase CSS names, vendor-prefixed names and custom
// properties; both name and value are left to the sanitizer.
func arbitraryRules() []rule.Rule {
	return []rule.Rule{{
		Match: regexp.MustCompile(`^\[(-?[a-z][a-z-]*|--[a-zA-Z0-9-]+):(.+)\]$`),
		Generate: func(m rule.Match, _ rule.Theme) rule.Properties {
			return rule.Props(m.Capture(0), m.Capture(1))
		},
		Priority: 10,
	}}
}

// themed maps the single capture through a theme group onto property.
func themed(group, property string) rule.GenerateFunc {
	s := scale{group: group}
	return func(m rule.Match, th rule.Theme) rule.Properties {
		v, ok := s.value(th, m.Capture(0))
		if !ok {
			return nil
		}
		return rule.Props(property, v)
	}
}
