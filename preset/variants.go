package preset

import (
	"regexp"
	"strings"

	"github.com/yacobolo/utilcss/internal/serialize"
	"github.com/yacobolo/utilcss/variant"
)

type pseudo struct {
	name     string
	selector string
}

var pseudoClasses = []pseudo{
	{"hover", ":hover"},
	{"focus", ":focus"},
	{"focus-within", ":focus-within"},
	{"focus-visible", ":focus-visible"},
	{"active", ":active"},
	{"visited", ":visited"},
	{"target", ":target"},
	{"first", ":first-child"},
	{"last", ":last-child"},
	{"only", ":only-child"},
	{"odd", ":nth-child(odd)"},
	{"even", ":nth-child(even)"},
	{"first-of-type", ":first-of-type"},
	{"last-of-type", ":last-of-type"},
	{"empty", ":empty"},
	{"disabled", ":disabled"},
	{"enabled", ":enabled"},
	{"checked", ":checked"},
	{"indeterminate", ":indeterminate"},
	{"required", ":required"},
	{"invalid", ":invalid"},
	{"valid", ":valid"},
	{"placeholder-shown", ":placeholder-shown"},
	{"autofill", ":autofill"},
	{"read-only", ":read-only"},
	{"open", "[open]"},
}

var pseudoElements = []pseudo{
	{"before", "::before"},
	{"after", "::after"},
	{"placeholder", "::placeholder"},
	{"selection", "::selection"},
	{"marker", "::marker"},
	{"file", "::file-selector-button"},
	{"first-line", "::first-line"},
	{"first-letter", "::first-letter"},
	{"backdrop", "::backdrop"},
}

var mediaVariants = []struct {
	name  string
	query string
}{
	{"dark", "@media (prefers-color-scheme: dark)"},
	{"print", "@media print"},
	{"motion-safe", "@media (prefers-reduced-motion: no-preference)"},
	{"motion-reduce", "@media (prefers-reduced-motion: reduce)"},
	{"contrast-more", "@media (prefers-contrast: more)"},
	{"portrait", "@media (orientation: portrait)"},
	{"landscape", "@media (orientation: landscape)"},
}

var ariaStates = []string{"busy", "checked", "disabled", "expanded", "hidden", "pressed", "readonly", "required", "selected"}

// Variants returns the preset variants. Captured values are restricted by
// each pattern to characters that cannot leave a selector or at-rule
// prelude.
func Variants() []variant.Variant {
	var vs []variant.Variant

	states := make(map[string]string, len(pseudoClasses))
	names := make([]string, 0, len(pseudoClasses))
	for _, p := range pseudoClasses {
		vs = append(vs, variant.Suffix(p.name, p.selector))
		states[p.name] = p.selector
		names = append(names, regexp.QuoteMeta(p.name))
	}
	for _, p := range pseudoElements {
		vs = append(vs, variant.Suffix(p.name, p.selector))
	}
	for _, m := range mediaVariants {
		vs = append(vs, variant.AtRule(m.name, m.query))
	}
	for _, s := range Screens {
		vs = append(vs,
			variant.AtRule(s.Name, "@media (min-width: "+s.Width+")"),
			variant.AtRule("max-"+s.Name, "@media not all and (min-width: "+s.Width+")"),
		)
	}

	stateGroup := `(` + strings.Join(names, "|") + `)`
	vs = append(vs,
		variant.Parametric(regexp.MustCompile(`^group-`+stateGroup+`$`), func(sel string, caps []string) string {
			return ".group" + states[caps[0]] + " " + sel
		}),
		variant.Parametric(regexp.MustCompile(`^peer-`+stateGroup+`$`), func(sel string, caps []string) string {
			return ".peer" + states[caps[0]] + " ~ " + sel
		}),
		variant.Parametric(regexp.MustCompile(`^data-\[([a-zA-Z0-9-]+)(?:=([a-zA-Z0-9_.-]+))?\]$`), func(sel string, caps []string) string {
			return sel + attribute("data-"+caps[0], caps[1])
		}),
		variant.Parametric(regexp.MustCompile(`^aria-(`+strings.Join(ariaStates, "|")+`)$`), func(sel string, caps []string) string {
			return sel + attribute("aria-"+caps[0], "true")
		}),
		variant.Parametric(regexp.MustCompile(`^aria-\[([a-z-]+)=([a-zA-Z0-9_.-]+)\]$`), func(sel string, caps []string) string {
			return sel + attribute("aria-"+caps[0], caps[1])
		}),
		variant.ParametricAtRule(regexp.MustCompile(`^supports-\[([a-z-]+):([a-zA-Z0-9_.%#-]+)\]$`), func(caps []string) string {
			return "@supports (" + caps[0] + ": " + caps[1] + ")"
		}),
		variant.ParametricAtRule(regexp.MustCompile(`^min-\[(\d+(?:\.\d+)?(?:px|rem|em))\]$`), func(caps []string) string {
			return "@media (min-width: " + caps[0] + ")"
		}),
		variant.ParametricAtRule(regexp.MustCompile(`^max-\[(\d+(?:\.\d+)?(?:px|rem|em))\]$`), func(caps []string) string {
			return "@media (max-width: " + caps[0] + ")"
		}),
		variant.Selector("*", func(sel string, _ []string) string {
			return ":is(" + sel + " > *)"
		}),
		variant.Selector("rtl", func(sel string, _ []string) string {
			return `[dir="rtl"] ` + sel
		}),
		variant.Selector("ltr", func(sel string, _ []string) string {
			return `[dir="ltr"] ` + sel
		}),
		variant.Transform("starting", func(css string) string {
			return "@starting-style {\n" + serialize.Indent(strings.TrimRight(css, "\n"), "  ") + "\n}"
		}),
	)
	return vs
}

// DarkClass returns a dark variant keyed on an ancestor selector such as
// ".dark" instead of the colour-scheme media query. Pass it to
// VariantRegistry to replace the default.
func DarkClass(ancestor string) variant.Variant {
	return variant.Selector("dark", func(sel string, _ []string) string {
		return ancestor + " " + sel
	})
}

func attribute(name, value string) string {
	if value == "" {
		return "[" + name + "]"
	}
	return "[" + name + `="` + value + `"]`
}
