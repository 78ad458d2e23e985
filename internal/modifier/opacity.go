package modifier

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/yacobolo/utilcss/internal/serialize"
	"github.com/yacobolo/utilcss/rule"
)

// colorProperties are the only properties an opacity modifier touches.
var colorProperties = map[string]bool{
	"color":            true,
	"background-color": true,
	"border-color":     true,
	"outline-color":    true,
	"fill":             true,
	"stroke":           true,
}

// Alpha converts an opacity modifier to a CSS alpha value: "50" → "0.5",
// "[0.2]" → "0.2", "[35%]" → "35%".
func Alpha(mod string) (string, bool) {
	if inner, ok := strings.CutPrefix(mod, "["); ok {
		inner, ok = strings.CutSuffix(inner, "]")
		if !ok {
			return "", false
		}
		if pct, ok := strings.CutSuffix(inner, "%"); ok {
			f, err := strconv.ParseFloat(pct, 64)
			if err != nil || math.IsNaN(f) || f < 0 || f > 100 {
				return "", false
			}
			return inner, true
		}
		f, err := strconv.ParseFloat(inner, 64)
		if err != nil || math.IsNaN(f) || f < 0 || f > 1 {
			return "", false
		}
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}

	f, err := strconv.ParseFloat(mod, 64)
	if err != nil || math.IsNaN(f) || f < 0 || f > 100 {
		return "", false
	}
	return strconv.FormatFloat(f/100, 'f', -1, 64), true
}

// Opacity applies alpha to every color-bearing property in props,
// including nested groups that flatten to one (border: {color: ...}).
func Opacity(props rule.Properties, alpha string) rule.Properties {
	return opacity("", props, alpha)
}

func opacity(parent string, props rule.Properties, alpha string) rule.Properties {
	out := make(rule.Properties, len(props))
	for i, p := range props {
		name := serialize.PropertyName(parent, p.Name)
		switch v := p.Value.(type) {
		case rule.Properties:
			p.Value = opacity(name, v, alpha)
		case string:
			if colorProperties[name] {
				if c, ok := WithAlpha(v, alpha); ok {
					p.Value = c
				}
			}
		}
		out[i] = p
	}
	return out
}

// WithAlpha returns color with its alpha channel set. It reports false for
// formats it does not understand, such as keywords or var().
func WithAlpha(color, alpha string) (string, bool) {
	c := strings.TrimSpace(color)
	if strings.HasPrefix(c, "#") {
		return hexWithAlpha(c, alpha)
	}

	open := strings.IndexByte(c, '(')
	if open <= 0 || !strings.HasSuffix(c, ")") {
		return "", false
	}
	name := strings.ToLower(c[:open])
	args := strings.TrimSpace(c[open+1 : len(c)-1])

	switch name {
	case "rgb", "rgba", "hsl", "hsla", "hwb", "lab", "lch", "oklab", "oklch":
		if strings.Contains(args, ",") {
			return commaWithAlpha(name, args, alpha, 3)
		}
		return spaceWithAlpha(name, args, alpha), true
	}
	return "", false
}

func hexWithAlpha(c, alpha string) (string, bool) {
	digits := c[1:]
	switch len(digits) {
	case 4:
		digits = digits[:3]
	case 8:
		digits = digits[:6]
	case 3, 6:
	default:
		return "", false
	}
	col, err := colorful.Hex("#" + digits)
	if err != nil {
		return "", false
	}
	r, g, b := col.RGB255()
	return fmt.Sprintf("rgb(%d %d %d / %s)", r, g, b, alpha), true
}

// spaceWithAlpha handles "r g b" and "r g b / a".
func spaceWithAlpha(name, args, alpha string) string {
	if slash := strings.LastIndexByte(args, '/'); slash >= 0 {
		args = strings.TrimSpace(args[:slash])
	}
	return name + "(" + args + " / " + alpha + ")"
}

// commaWithAlpha handles the legacy "r, g, b[, a]" syntax, replacing or
// appending the alpha argument.
func commaWithAlpha(name, args, alpha string, channels int) (string, bool) {
	parts := strings.Split(args, ",")
	if len(parts) != channels && len(parts) != channels+1 {
		return "", false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	parts = append(parts[:channels], alpha)
	return name + "(" + strings.Join(parts, ", ") + ")", true
}
