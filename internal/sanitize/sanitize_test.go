package sanitize

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func svgBase64(markup string) string {
	return `url("data:image/svg+xml;base64,` + base64.StdEncoding.EncodeToString([]byte(markup)) + `")`
}

func svgPercent(markup string) string {
	return `url("data:image/svg+xml,` + url.PathEscape(markup) + `")`
}

func TestIsDangerous(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		// script schemes
		{name: "javascript scheme", value: "javascript:alert(1)", want: true},
		{name: "javascript upper", value: "JAVASCRIPT:alert(1)", want: true},
		{name: "javascript mixed", value: "JaVaScRiPt:alert(1)", want: true},
		{name: "vbscript", value: "vbscript:msgbox(1)", want: true},
		{name: "javascript in url", value: `url("javascript:alert(1)")`, want: true},
		{name: "javascript in unquoted url", value: "url(javascript:alert(1))", want: true},
		{name: "split by spaces", value: "java script:alert(1)", want: true},
		{name: "split by newline", value: "java\nscript:alert(1)", want: true},
		{name: "split by tab before colon", value: "javascript\t:alert(1)", want: true},
		{name: "split by comment", value: "java/**/script:alert(1)", want: true},
		{name: "split by zero width space", value: "java\u200bscript:alert(1)", want: true},
		{name: "split by NUL", value: "java\x00script:alert(1)", want: true},
		{name: "decimal entity", value: "java&#115;cript:alert(1)", want: true},
		{name: "hex entity", value: "&#x6A;avascript:alert(1)", want: true},
		{name: "named entity colon", value: "javascript&colon;alert(1)", want: true},
		{name: "css escape", value: `\6a avascript:alert(1)`, want: true},
		{name: "css escape six digits", value: `\00006aavascript:alert(1)`, want: true},
		{name: "css literal escape", value: `java\script:alert(1)`, want: true},
		{name: "double entity", value: "java&amp;#115;cript:alert(1)", want: true},
		{name: "over-encoded", value: "&" + strings.Repeat("amp;", 5) + "#106;avascript:alert(1)", want: true},

		// legacy executable CSS
		{name: "expression", value: "expression(alert(1))", want: true},
		{name: "expression upper", value: "EXPRESSION(alert(1))", want: true},
		{name: "expression escaped", value: `e\78pression(alert(1))`, want: true},
		{name: "behavior", value: "behavior: url(x.htc)", want: true},
		{name: "moz binding", value: "-moz-binding: url(x.xml#xss)", want: true},
		{name: "import", value: "@import url(x.css)", want: true},
		{name: "import upper", value: "@IMPORT url(x.css)", want: true},
		{name: "import mixed", value: "@ImPoRt url(x.css)", want: true},
		{name: "at-rule in value", value: "@media screen", want: true},

		// markup
		{name: "script tag", value: "</style><script>alert(1)</script>", want: true},
		{name: "style tag", value: "<style>body{}</style>", want: true},
		{name: "link tag", value: "<link rel=stylesheet href=x>", want: true},
		{name: "entity encoded tag", value: "&lt;script&gt;alert(1)&lt;/script&gt;", want: true},
		{name: "event handler", value: "x onmouseover=alert(1)", want: true},
		{name: "event handler spaced", value: "x onclick =alert(1)", want: true},
		{name: "html comment open", value: "<!-- red", want: true},

		// break-out
		{name: "semicolon", value: "red; background: url(x)", want: true},
		{name: "closing brace", value: "red}body{color:red", want: true},
		{name: "opening brace", value: "a{", want: true},
		{name: "extra paren", value: "calc(1px))", want: true},
		{name: "unclosed paren", value: "calc(1px", want: true},
		{name: "unterminated string", value: `"open`, want: true},

		// functions and urls
		{name: "unknown function", value: "evil(1)", want: true},
		{name: "file url", value: "url(file:///etc/passwd)", want: true},
		{name: "quoted ftp url", value: `url("ftp://example.com/a.png")`, want: true},

		// data URIs
		{name: "png data uri", value: "data:image/png;base64,...", want: false},
		{name: "png data uri in url", value: "url(data:image/png;base64,iVBORw0KGgo=)", want: false},
		{name: "svg onload raw", value: "data:image/svg+xml,<svg onload=alert(1)>", want: true},
		{name: "svg onload base64", value: svgBase64(`<svg xmlns="http://www.w3.org/2000/svg" onload="alert(1)"></svg>`), want: true},
		{name: "svg onload uppercase base64 marker", value: "url(data:image/svg+xml;BASE64,PHN2ZyBvbmxvYWQ9YWxlcnQoMSk+)", want: true},
		{name: "svg onload mixed case base64 marker", value: "url(data:IMAGE/SVG+XML;Base64,PHN2ZyBvbmxvYWQ9YWxlcnQoMSk+)", want: true},
		{name: "png uppercase base64 marker", value: "url(data:image/png;BASE64,iVBORw0KGgo=)", want: false},
		{name: "svg onload percent", value: svgPercent(`<svg onload="alert(1)"></svg>`), want: true},
		{name: "svg script base64", value: svgBase64(`<svg><script>alert(1)</script></svg>`), want: true},
		{name: "svg foreignObject", value: svgBase64(`<svg><foreignObject><div>x</div></foreignObject></svg>`), want: true},
		{name: "svg xlink href", value: svgBase64(`<svg><a xlink:href="java&#x09;script:alert(1)"><rect/></a></svg>`), want: true},
		{name: "svg nested html data uri", value: svgBase64(`<svg><image href="data:text/html,hi"/></svg>`), want: true},
		{name: "text html data uri", value: "url(data:text/html,hello)", want: true},
		{name: "text plain data uri", value: `url("data:text/plain,hello")`, want: true},
		{name: "data uri smuggling declaration", value: "data:image/png;base64,AAAA;color:red", want: true},
		{name: "data uri smuggling brace", value: "data:image/png;base64,AAAA}body{", want: true},
		{name: "safe svg", value: svgBase64(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 8 8"><path d="M0 0h8v8H0z" fill="#000"/></svg>`), want: false},

		// ordinary values
		{name: "keyword", value: "block", want: false},
		{name: "length", value: "1rem", want: false},
		{name: "hex color", value: "#ef4444", want: false},
		{name: "modern rgb", value: "rgb(239 68 68 / 0.5)", want: false},
		{name: "calc", value: "calc(100% - 1rem)", want: false},
		{name: "nested functions", value: "clamp(1rem, calc(2vw + 1rem), 3rem)", want: false},
		{name: "custom property", value: "var(--tw-ring-color, #fff)", want: false},
		{name: "gradient", value: "linear-gradient(to right, #fff, rgb(0 0 0 / 0.5))", want: false},
		{name: "vendor gradient", value: "-webkit-linear-gradient(top, #fff, #000)", want: false},
		{name: "grid template", value: "repeat(3, minmax(0, 1fr))", want: false},
		{name: "font stack", value: `"Inter", ui-sans-serif, system-ui, sans-serif`, want: false},
		{name: "shadow", value: "0 1px 2px 0 rgb(0 0 0 / 0.05)", want: false},
		{name: "transform", value: "translateX(-50%) rotate(45deg)", want: false},
		{name: "https url", value: "url(https://example.com/bg.png)", want: false},
		{name: "relative url", value: `url('/img/bg.png')`, want: false},
		{name: "protocol relative url", value: "url(//cdn.example.com/a.png)", want: false},
		{name: "fragment url", value: "url(#gradient)", want: false},
		{name: "attr", value: "attr(data-label)", want: false},
		{name: "content string", value: `"\201C"`, want: false},
		{name: "grid areas", value: `"header header" "sidebar main"`, want: false},
		{name: "empty", value: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsDangerous(tt.value), "value %q", tt.value)
		})
	}
}

func TestCheckError(t *testing.T) {
	value := "url(javascript:" + strings.Repeat("a", 200) + ")"
	err := Check("background-image", value)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnsafeValue))

	var uerr *UnsafeValueError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "background-image", uerr.Property)
	assert.Equal(t, maxReportedValue, utf8.RuneCountInString(uerr.Value))
	assert.True(t, strings.HasSuffix(uerr.Value, "..."))
	assert.Contains(t, uerr.Reason, "javascript:")
	assert.NotEmpty(t, uerr.Remediation)
	assert.Contains(t, err.Error(), "background-image")
}

func TestCheckAcceptsSafeValue(t *testing.T) {
	require.NoError(t, Check("color", "rgb(239 68 68 / 0.5)"))
}

func TestCheckProperty(t *testing.T) {
	tests := []struct {
		property string
		reason   string
	}{
		{property: "color"},
		{property: "-webkit-line-clamp"},
		{property: "--tw-Ring_color"},
		{property: ""},
		{property: "behavior", reason: "behavior declaration"},
		{property: "BEHAVIOR", reason: "behavior declaration"},
		{property: "-ms-behavior", reason: "-ms-behavior declaration"},
		{property: "-moz-binding", reason: "-moz-binding declaration"},
		{property: "color:red", reason: "not a CSS identifier"},
		{property: "a b", reason: "not a CSS identifier"},
		{property: "1x", reason: "not a CSS identifier"},
		{property: "--", reason: "not a CSS identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.property, func(t *testing.T) {
			err := Check(tt.property, "url(x.htc)")
			if tt.reason == "" {
				require.NoError(t, err)
				return
			}
			var uerr *UnsafeValueError
			require.True(t, errors.As(err, &uerr), "expected rejection of %q", tt.property)
			assert.Equal(t, tt.property, uerr.Property)
			assert.Contains(t, uerr.Reason, tt.reason)
		})
	}
}

func TestCheckReasons(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		reason string
	}{
		{name: "scheme", value: "url(file:///etc/passwd)", reason: "file: scheme"},
		{name: "function", value: "evil(1)", reason: "evil()"},
		{name: "mime", value: `url("data:text/plain,hello")`, reason: "text/plain"},
		{name: "breakout", value: "red; color: blue", reason: "top-level ;"},
		{name: "svg", value: svgBase64(`<svg><rect onclick="x()"/></svg>`), reason: "SVG data URI"},
		{name: "binding", value: "-moz-binding: url(x.xml)", reason: "-moz-binding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check("x", tt.value)
			var uerr *UnsafeValueError
			require.True(t, errors.As(err, &uerr), "expected rejection of %q", tt.value)
			assert.Contains(t, uerr.Reason, tt.reason)
		})
	}
}

func TestOptions(t *testing.T) {
	t.Run("max length", func(t *testing.T) {
		s := New(WithMaxLength(10))
		assert.False(t, s.IsDangerous("1234567890"))
		assert.True(t, s.IsDangerous("12345678901"))
	})

	t.Run("allowed functions", func(t *testing.T) {
		assert.True(t, IsDangerous("anchor-size(width)"))
		s := New(WithAllowedFunctions("Anchor-Size"))
		assert.False(t, s.IsDangerous("anchor-size(width)"))
	})

	t.Run("allowlist does not disable scheme checks", func(t *testing.T) {
		s := New(WithAllowedFunctions("expression"))
		assert.True(t, s.IsDangerous("expression(alert(1))"))
	})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		fixed bool
	}{
		{name: "plain", in: "red", want: "red", fixed: true},
		{name: "entity", in: "&#106;s", want: "js", fixed: true},
		{name: "escape with space", in: `\6a s`, want: "js", fixed: true},
		{name: "escape continuation", in: "a\\\nb", want: "ab", fixed: true},
		{name: "comment", in: "a/* x */b", want: "ab", fixed: true},
		{name: "unterminated comment", in: "a/* x", want: "a", fixed: true},
		{name: "control chars", in: "a\x01b\tc", want: "ab c", fixed: true},
		{name: "case kept", in: "AbC", want: "AbC", fixed: true},
		{name: "nested entity", in: "&amp;#106;", want: "j", fixed: true},
		{name: "too deep", in: "&" + strings.Repeat("amp;", 6) + "#106;", fixed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fixed := normalize(tt.in)
			require.Equal(t, tt.fixed, fixed)
			if tt.fixed {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtractDataURIs(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		uris   []string
		masked string
	}{
		{name: "none", in: "red", masked: "red"},
		{name: "quoted", in: `url("data:image/png;base64,AA==") no-repeat`, uris: []string{"data:image/png;base64,AA=="}, masked: `url("data:") no-repeat`},
		{name: "unquoted", in: "url(data:image/gif,x)", uris: []string{"data:image/gif,x"}, masked: "url(data:)"},
		{name: "bare", in: "DATA:image/png,x y", uris: []string{"data:image/png,x"}, masked: "data: y"},
		{name: "bare stops at payload semicolon", in: "data:image/png;base64,AA;b", uris: []string{"data:image/png;base64,AA"}, masked: "data:;b"},
		{name: "word prefix", in: "xdata:y", masked: "xdata:y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uris, masked := extractDataURIs(tt.in)
			require.Equal(t, tt.uris, uris)
			require.Equal(t, tt.masked, masked)
		})
	}
}

func TestParseDataURI(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want dataURI
	}{
		{name: "base64", in: "data:image/svg+xml;base64,PHN2Zz4=", want: dataURI{mediatype: "image/svg+xml", payload: "<svg>"}},
		{name: "uppercase base64", in: "data:image/svg+xml;BASE64,PHN2Zz4=", want: dataURI{mediatype: "image/svg+xml", payload: "<svg>"}},
		{name: "mixed case header", in: "data:Image/SVG+xml;Base64,PHN2Zz4=", want: dataURI{mediatype: "image/svg+xml", payload: "<svg>"}},
		{name: "percent encoded", in: "data:image/svg+xml,%3Csvg%3E", want: dataURI{mediatype: "image/svg+xml", payload: "<svg>"}},
		{name: "no payload", in: "data:image/png", want: dataURI{mediatype: "image/png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDataURI(tt.in))
		})
	}
}

func TestLinearTime(t *testing.T) {
	inputs := []string{
		strings.Repeat("/*/**/", 2000),
		strings.Repeat("(", 5000) + strings.Repeat(")", 5000),
		strings.Repeat(`\`, 10000),
		strings.Repeat("&amp;", 3000),
		strings.Repeat("data:", 3000),
		strings.Repeat("on", 8000),
	}
	for _, in := range inputs {
		start := time.Now()
		_ = IsDangerous(in)
		require.Less(t, time.Since(start), 500*time.Millisecond)
	}
}
