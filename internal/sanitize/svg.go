package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// Elements that execute or load active content wherever they appear.
var executableElements = map[string]bool{
	"script":   true,
	"iframe":   true,
	"frame":    true,
	"frameset": true,
	"object":   true,
	"embed":    true,
	"applet":   true,
	"base":     true,
	"meta":     true,
	"link":     true,
	"style":    true,
	"handler":  true,
	"listener": true,
}

// Elements that are only a problem when a foreignObject drops the
// document back into HTML.
var foreignHTMLElements = map[string]bool{
	"html":     true,
	"body":     true,
	"form":     true,
	"input":    true,
	"button":   true,
	"textarea": true,
	"select":   true,
	"a":        true,
	"img":      true,
	"video":    true,
	"audio":    true,
	"source":   true,
	"math":     true,
}

// URL-carrying attributes whose scheme must not be executable. to/from/
// values cover <set>/<animate> rewriting href at runtime.
var urlAttributes = map[string]bool{
	"href":       true,
	"xlink:href": true,
	"src":        true,
	"action":     true,
	"formaction": true,
	"to":         true,
	"from":       true,
	"values":     true,
}

// checkSVG scans an SVG payload: text patterns first, then a tag walk for
// event attributes, executable URLs and foreignObject content.
func (s *Sanitizer) checkSVG(payload string, depth int) *finding {
	text, fixed := normalize(payload)
	if !fixed {
		return overEncoded()
	}
	if f := s.scanText(text); f != nil {
		f.reason += " in SVG data URI"
		return f
	}

	z := html.NewTokenizer(strings.NewReader(text))
	foreignDepth := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return nil

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			name := strings.ToLower(tok.Data)

			if executableElements[name] {
				return &finding{reason: "<" + name + "> element in SVG data URI", remedy: remedyMarkup}
			}
			if foreignDepth > 0 && foreignHTMLElements[name] {
				return &finding{
					reason: "<foreignObject> wrapping <" + name + "> in SVG data URI",
					remedy: "foreignObject embeds HTML; draw the shape with plain SVG elements",
				}
			}
			if name == "foreignobject" && tt == html.StartTagToken {
				foreignDepth++
			}

			for _, attr := range tok.Attr {
				if f := s.checkSVGAttr(attr, depth); f != nil {
					return f
				}
			}

		case html.EndTagToken:
			tok := z.Token()
			if strings.EqualFold(tok.Data, "foreignobject") && foreignDepth > 0 {
				foreignDepth--
			}
		}
	}
}

func (s *Sanitizer) checkSVGAttr(attr html.Attribute, depth int) *finding {
	key := strings.ToLower(attr.Key)
	if attr.Namespace != "" {
		key = strings.ToLower(attr.Namespace) + ":" + key
	}

	if strings.HasPrefix(key, "on") {
		return &finding{
			reason: "SVG event handler attribute " + key,
			remedy: "event handlers run script; remove the attribute",
		}
	}
	if !urlAttributes[key] {
		return nil
	}

	val, fixed := normalize(attr.Val)
	if !fixed {
		return overEncoded()
	}
	raw := strings.Trim(compact(val), `"'`)
	lower := asciiLower(raw)

	if scheme := executableScheme(lower); scheme != "" {
		return &finding{reason: "SVG " + key + " with " + scheme + " URL", remedy: remedyScript}
	}
	if strings.HasPrefix(lower, "data:") {
		return s.checkDataURI("data:"+raw[len("data:"):], depth+1)
	}
	return nil
}

// executableScheme reports the scheme of url when it runs code.
func executableScheme(url string) string {
	for _, scheme := range []string{"javascript:", "vbscript:", "livescript:", "data:text/html", "data:application/xhtml"} {
		if strings.HasPrefix(url, scheme) {
			return strings.TrimSuffix(scheme, ":")
		}
	}
	return ""
}
