package sanitize

import (
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/tdewolff/parse/v2"
)

// maxDataURIDepth bounds recursion through data URIs nested in SVG payloads.
const maxDataURIDepth = 2

// dataURI is a data: URI located inside a value.
type dataURI struct {
	mediatype string // lowercased, parameters stripped
	payload   string // decoded when possible, raw otherwise
}

// extractDataURIs finds data: URIs (ASCII case-insensitive) and returns
// them, with the scheme lowercased, together with the value where each URI
// is replaced by a bare "data:".
//
// A URI inside url(...) or quotes ends at the closing delimiter; a bare URI
// stops early (see bareDataURIEnd) so the rest of the value is still
// checked in place.
func extractDataURIs(s string) ([]string, string) {
	lower := asciiLower(s)
	if !strings.Contains(lower, "data:") {
		return nil, s
	}

	var uris []string
	var masked strings.Builder
	masked.Grow(len(s))

	i := 0
	for {
		idx := strings.Index(lower[i:], "data:")
		if idx < 0 {
			masked.WriteString(s[i:])
			break
		}
		start := i + idx
		if start > 0 && isWordByte(s[start-1]) {
			masked.WriteString(s[i : start+5])
			i = start + 5
			continue
		}

		end := len(s)
		switch open := openerBefore(s, start); open {
		case '"', '\'':
			if j := strings.IndexByte(s[start:], open); j >= 0 {
				end = start + j
			}
		case '(':
			if j := strings.IndexByte(s[start:], ')'); j >= 0 {
				end = start + j
			}
		default:
			end = bareDataURIEnd(s, start)
		}

		uris = append(uris, "data:"+s[start+5:end])
		masked.WriteString(s[i:start])
		masked.WriteString("data:")
		i = end
	}
	return uris, masked.String()
}

// bareDataURIEnd returns where an undelimited data URI starting at start
// stops: at whitespace, a quote, a paren or a brace, and after the header
// also at a semicolon.
func bareDataURIEnd(s string, start int) int {
	inPayload := false
	for i := start + len("data:"); i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\f', '\r', '{', '}', '(', ')', '"', '\'':
			return i
		case ',':
			inPayload = true
		case ';':
			if inPayload {
				return i
			}
		}
	}
	return len(s)
}

// openerBefore returns the delimiter (quote or "(") immediately preceding
// position i, skipping whitespace, or 0.
func openerBefore(s string, i int) byte {
	for j := i - 1; j >= 0; j-- {
		switch c := s[j]; {
		case isCSSSpace(c):
			continue
		case c == '"', c == '\'', c == '(':
			return c
		default:
			return 0
		}
	}
	return 0
}

func isWordByte(c byte) bool {
	return c == '-' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// parseDataURI splits a data URI into media type and payload. Payloads
// that fail to decode are kept raw so they can still be scanned.
//
// The header is lowercased first: browsers match ";base64" case-insensitively
// and parse.DataURI only recognizes the lowercase form.
func parseDataURI(text string) dataURI {
	var d dataURI
	body := strings.TrimPrefix(text, "data:")
	header, payload, found := strings.Cut(body, ",")
	header = asciiLower(header)
	if found {
		text = "data:" + header + "," + payload
	}

	if mt, data, err := parse.DataURI([]byte(text)); err == nil {
		d.mediatype = baseMediatype(string(mt))
		d.payload = string(data)
		if !strings.Contains(header, ";base64") && strings.Contains(d.payload, "%") {
			if unescaped, err := url.PathUnescape(d.payload); err == nil {
				d.payload = unescaped
			}
		}
		return d
	}

	if !found {
		d.mediatype = baseMediatype(header)
		return d
	}
	d.mediatype = baseMediatype(header)
	d.payload = payload

	if strings.Contains(header, ";base64") {
		if raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload)); err == nil {
			d.payload = string(raw)
		} else if raw, err := base64.RawStdEncoding.DecodeString(strings.TrimSpace(payload)); err == nil {
			d.payload = string(raw)
		}
		return d
	}
	if unescaped, err := url.PathUnescape(payload); err == nil {
		d.payload = unescaped
	}
	return d
}

func baseMediatype(mt string) string {
	mt, _, _ = strings.Cut(mt, ";")
	mt = strings.ToLower(strings.TrimSpace(mt))
	if mt == "" {
		return "text/plain"
	}
	return mt
}

// checkDataURI applies the data: policy: image/* only, and decoded
// content must itself be clean.
func (s *Sanitizer) checkDataURI(text string, depth int) *finding {
	if depth > maxDataURIDepth {
		return &finding{
			reason: "data URI nested too deeply",
			remedy: "inline the image once instead of nesting data URIs",
		}
	}

	d := parseDataURI(text)
	if !strings.HasPrefix(d.mediatype, "image/") {
		return &finding{
			reason: "data URI with non-image MIME type " + d.mediatype,
			remedy: "only data:image/* URIs are allowed; host other content and reference it with url(https://...)",
		}
	}

	if d.mediatype == "image/svg+xml" {
		return s.checkSVG(d.payload, depth)
	}

	// Raster payloads are binary; only look for smuggled markup.
	if idx := s.markup.firstMatch(d.payload); idx >= 0 {
		return &finding{
			reason: "markup " + s.markup.name(idx) + " inside " + d.mediatype + " data URI",
			remedy: "re-encode the image from a trusted source",
		}
	}
	return nil
}
