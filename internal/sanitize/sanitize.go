// Package sanitize classifies CSS values as safe or dangerous before they
// can reach generated output.
//
// A value is normalized first (HTML entities, CSS escapes and comments
// decoded, control and zero-width characters stripped, bounded to a few
// passes) and then checked for:
//   - script schemes (javascript:, vbscript:) anywhere, including url()
//   - expression(), @import and direct behavior:/-moz-binding: declarations
//   - embedded <script>, <style>, <link> and on<event>= handler text
//   - declaration break-out ({, }, top-level ;) and unknown functions
//   - data: URIs that are not image/*, or whose decoded payload is unclean,
//     including SVG event attributes, executable hrefs and foreignObject
//
// Rejections are returned as *UnsafeValueError, never silently dropped.
// All matching is linear: a multi-pattern automaton, RE2 regular
// expressions and forward-only scans.
package sanitize

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ErrUnsafeValue is wrapped by every *UnsafeValueError.
var ErrUnsafeValue = errors.New("unsafe CSS value")

// DefaultMaxLength is the longest value accepted, in bytes.
const DefaultMaxLength = 16 << 10

const maxReportedValue = 80

// UnsafeValueError describes a rejected value.
type UnsafeValueError struct {
	Property    string
	Value       string // truncated
	Reason      string
	Remediation string
}

func (e *UnsafeValueError) Error() string {
	prop := e.Property
	if prop == "" {
		prop = "value"
	}
	return fmt.Sprintf("unsafe CSS value for %s %q: %s; %s", prop, e.Value, e.Reason, e.Remediation)
}

func (e *UnsafeValueError) Unwrap() error {
	return ErrUnsafeValue
}

type finding struct {
	reason string
	remedy string
}

func overEncoded() *finding {
	return &finding{
		reason: "value is still changing after repeated entity/escape decoding",
		remedy: "write the value literally instead of nesting encodings",
	}
}

var (
	eventHandler = regexp.MustCompile(`(?i)(?:^|[^a-z0-9_-])on[a-z]+\s*=`)
	urlScheme    = regexp.MustCompile(`^([a-z][a-z0-9+.-]*):`)
	propertyName = regexp.MustCompile(`^(?:--[a-zA-Z0-9_-]+|-?[a-zA-Z][a-zA-Z0-9-]*)$`)
)

// Option configures a Sanitizer.
type Option func(*Sanitizer)

// WithAllowedFunctions extends the CSS function allowlist.
func WithAllowedFunctions(names ...string) Option {
	return func(s *Sanitizer) {
		for _, n := range names {
			s.functions[strings.ToLower(n)] = true
		}
	}
}

// WithMaxLength overrides DefaultMaxLength.
func WithMaxLength(n int) Option {
	return func(s *Sanitizer) {
		if n > 0 {
			s.maxLength = n
		}
	}
}

// Sanitizer is immutable after New and safe for concurrent use.
type Sanitizer struct {
	maxLength int
	functions map[string]bool
	dangerous *patternSet
	markup    *patternSet
}

// New returns a Sanitizer with the default policy plus opts.
func New(opts ...Option) *Sanitizer {
	s := &Sanitizer{
		maxLength: DefaultMaxLength,
		functions: make(map[string]bool, len(allowedFunctions)),
		dangerous: newPatternSet(dangerousPatterns),
		markup:    newPatternSet(markupPatterns),
	}
	for _, f := range allowedFunctions {
		s.functions[f] = true
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSanitizer = New()

// Default returns the shared default Sanitizer.
func Default() *Sanitizer {
	return defaultSanitizer
}

// IsDangerous classifies value with the default policy.
func IsDangerous(value string) bool {
	return defaultSanitizer.IsDangerous(value)
}

// Check validates value for property with the default policy.
func Check(property, value string) error {
	return defaultSanitizer.Check(property, value)
}

// IsDangerous reports whether value would be rejected.
func (s *Sanitizer) IsDangerous(value string) bool {
	return s.inspect(value) != nil
}

// Check returns an *UnsafeValueError when the declaration property: value
// must not be emitted. An empty property checks the value alone.
func (s *Sanitizer) Check(property, value string) error {
	f := checkProperty(property)
	if f == nil {
		f = s.inspect(value)
	}
	if f == nil {
		return nil
	}
	return &UnsafeValueError{
		Property:    property,
		Value:       truncate(value, maxReportedValue),
		Reason:      f.reason,
		Remediation: f.remedy,
	}
}

// checkProperty rejects property names that are not plain CSS identifiers
// or custom properties, and the legacy binding properties.
func checkProperty(property string) *finding {
	if property == "" {
		return nil
	}
	if !propertyName.MatchString(property) {
		return &finding{
			reason: "property name " + strconv.Quote(property) + " is not a CSS identifier",
			remedy: "use a standard CSS property or a --custom-property name",
		}
	}
	switch strings.ToLower(property) {
	case "behavior", "-ms-behavior", "-moz-binding", "binding":
		return &finding{
			reason: "contains a " + strings.ToLower(property) + " declaration",
			remedy: remedyBinding,
		}
	}
	return nil
}

func (s *Sanitizer) inspect(value string) *finding {
	if len(value) > s.maxLength {
		return &finding{
			reason: fmt.Sprintf("value is %d bytes, limit is %d", len(value), s.maxLength),
			remedy: "move large assets to a file and reference them with url()",
		}
	}
	if !utf8.ValidString(value) {
		return &finding{reason: "value is not valid UTF-8", remedy: "re-encode the source as UTF-8"}
	}

	norm, fixed := normalize(value)
	if !fixed {
		return overEncoded()
	}

	raw := stripControl(value)
	rawURIs, rawMasked := extractDataURIs(raw)
	normURIs, normMasked := extractDataURIs(norm)

	if f := s.scanText(normMasked); f != nil {
		return f
	}
	if f := checkStructure(rawMasked); f != nil {
		return f
	}
	if f := s.checkTokens(rawMasked); f != nil {
		return f
	}

	seen := make(map[string]bool, len(rawURIs))
	for _, uri := range append(rawURIs, normURIs...) {
		if seen[uri] {
			continue
		}
		seen[uri] = true
		if f := s.checkDataURI(uri, 0); f != nil {
			return f
		}
	}
	return nil
}

// scanText runs the textual checks on decoded text.
func (s *Sanitizer) scanText(text string) *finding {
	flat := compact(text)
	if idx := s.dangerous.firstMatch(flat); idx >= 0 {
		return &finding{
			reason: "contains " + s.dangerous.name(idx),
			remedy: s.dangerous.remedy[idx],
		}
	}

	lower := asciiLower(flat)
	for _, decl := range []string{"behavior:", "-moz-binding:"} {
		if directDeclaration(lower, decl) {
			return &finding{
				reason: "contains a " + strings.TrimSuffix(decl, ":") + " declaration",
				remedy: remedyBinding,
			}
		}
	}

	if eventHandler.MatchString(text) {
		return &finding{
			reason: "contains an on<event>= handler",
			remedy: "event handlers run script; remove the attribute text",
		}
	}
	return nil
}

// directDeclaration reports an occurrence of decl that is not inside a
// url(...) argument.
func directDeclaration(s, decl string) bool {
	from := 0
	for {
		idx := strings.Index(s[from:], decl)
		if idx < 0 {
			return false
		}
		at := from + idx
		open := strings.LastIndex(s[:at], "url(")
		if open < 0 || strings.Contains(s[open:at], ")") {
			return true
		}
		from = at + len(decl)
	}
}

// checkStructure rejects text that would end the declaration or rule it is
// placed in: braces, top-level semicolons, unbalanced parentheses or an
// unterminated string.
func checkStructure(s string) *finding {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\\':
			i++
		case '"', '\'':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return breakOut("unbalanced )")
			}
		case '{', '}':
			return breakOut("contains " + string(c))
		case ';':
			if depth == 0 {
				return breakOut("contains a top-level ;")
			}
		}
	}
	if quote != 0 {
		return breakOut("unterminated string")
	}
	if depth != 0 {
		return breakOut("unbalanced (")
	}
	return nil
}

func breakOut(what string) *finding {
	return &finding{
		reason: what + " that would break out of the declaration",
		remedy: "a value must be a single CSS value; split separate declarations into separate utilities",
	}
}

// checkTokens walks the value with a CSS lexer: functions must be on the
// allowlist and url() targets must use a safe scheme.
func (s *Sanitizer) checkTokens(value string) *finding {
	l := css.NewLexer(parse.NewInputString(value))
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return nil

		case css.FunctionToken:
			name := functionName(data)
			if name == "url" {
				if f := checkQuotedURL(l); f != nil {
					return f
				}
				continue
			}
			if !s.functions[name] {
				return &finding{
					reason: "function " + name + "() is not allowed",
					remedy: "use a standard CSS function such as calc(), var() or rgb()",
				}
			}

		case css.URLToken:
			if f := checkURL(urlInner(string(data))); f != nil {
				return f
			}

		case css.BadURLToken:
			return &finding{reason: "malformed url()", remedy: "quote the URL or percent-encode parentheses and whitespace"}

		case css.BadStringToken:
			return &finding{reason: "unterminated string", remedy: "close the string on the same line"}

		case css.AtKeywordToken:
			return &finding{
				reason: "at-rule " + string(data) + " inside a value",
				remedy: "at-rules belong in variants, not in values",
			}

		case css.CDOToken, css.CDCToken:
			return &finding{reason: "HTML comment delimiter inside a value", remedy: remedyMarkup}
		}
	}
}

// checkQuotedURL handles url( "..." ) lexed as a function followed by a string.
func checkQuotedURL(l *css.Lexer) *finding {
	for {
		tt, data := l.Next()
		switch tt {
		case css.WhitespaceToken:
			continue
		case css.StringToken:
			return checkURL(unquote(string(data)))
		case css.ErrorToken, css.RightParenthesisToken:
			return nil
		default:
			return &finding{reason: "unexpected token in url()", remedy: "pass a single quoted or unquoted URL"}
		}
	}
}

func checkURL(u string) *finding {
	c := asciiLower(compact(u))
	if c == "" || strings.HasPrefix(c, "data:") {
		return nil
	}
	m := urlScheme.FindStringSubmatch(c)
	if m == nil {
		return nil
	}
	switch m[1] {
	case "http", "https":
		return nil
	}
	return &finding{
		reason: "url() with " + m[1] + ": scheme",
		remedy: "use an http(s) or relative URL",
	}
}

func functionName(data []byte) string {
	name := strings.ToLower(strings.TrimSuffix(string(data), "("))
	for _, vendor := range []string{"-webkit-", "-moz-", "-ms-", "-o-"} {
		if strings.HasPrefix(name, vendor) {
			return strings.TrimPrefix(name, vendor)
		}
	}
	return name
}

func urlInner(tok string) string {
	if len(tok) >= 4 && strings.EqualFold(tok[:4], "url(") {
		tok = tok[4:]
	}
	tok = strings.TrimSuffix(tok, ")")
	return unquote(strings.TrimSpace(tok))
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}
