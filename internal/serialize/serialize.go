// Package serialize turns rule properties into CSS text.
package serialize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/yacobolo/utilcss/internal/sanitize"
	"github.com/yacobolo/utilcss/rule"
)

var (
	// ErrNonFinite is returned for NaN and infinite numeric values.
	ErrNonFinite = errors.New("non-finite numeric value")
	// ErrInvalidValue is returned for empty values and unsupported Go types.
	ErrInvalidValue = errors.New("unsupported property value")
)

// Declaration is one flattened "property: value" pair.
type Declaration struct {
	Property string
	Value    string
}

// Checker validates a value before it is emitted.
// *sanitize.Sanitizer implements it.
type Checker interface {
	Check(property, value string) error
}

// Flatten converts props into ordered declarations. Nested groups are
// dash-joined onto their parent name and camelCase names become kebab-case.
func Flatten(props rule.Properties) ([]Declaration, error) {
	decls := make([]Declaration, 0, len(props))
	if err := flatten("", props, &decls); err != nil {
		return nil, err
	}
	return decls, nil
}

func flatten(parent string, props rule.Properties, out *[]Declaration) error {
	for _, p := range props {
		name := PropertyName(parent, p.Name)
		if group, ok := p.Value.(rule.Properties); ok {
			if err := flatten(name, group, out); err != nil {
				return err
			}
			continue
		}
		if name == "" {
			return fmt.Errorf("property without a name: %w", ErrInvalidValue)
		}
		value, err := FormatValue(p.Value)
		if err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
		*out = append(*out, Declaration{Property: name, Value: value})
	}
	return nil
}

// PropertyName returns the flattened CSS name of a property nested under
// parent ("" at the top level).
func PropertyName(parent, name string) string {
	return join(parent, kebab(name))
}

func join(parent, name string) string {
	switch {
	case parent == "":
		return name
	case name == "":
		return parent
	}
	return parent + "-" + name
}

// kebab converts camelCase to kebab-case. A leading capital is a vendor
// prefix (WebkitTransition → -webkit-transition). Custom properties are
// kept as written.
func kebab(name string) string {
	if strings.HasPrefix(name, "--") || strings.IndexFunc(name, unicode.IsUpper) < 0 {
		return name
	}
	var b strings.Builder
	b.Grow(len(name) + 4)
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatValue renders a leaf property value. Numbers use the shortest
// exact decimal form; NaN and infinities are rejected.
func FormatValue(v any) (string, error) {
	switch v := v.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return "", fmt.Errorf("empty value: %w", ErrInvalidValue)
		}
		return v, nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return formatFloat(float64(v), 32)
	case float64:
		return formatFloat(v, 64)
	case nil:
		return "", fmt.Errorf("nil value: %w", ErrInvalidValue)
	}
	return "", fmt.Errorf("type %T: %w", v, ErrInvalidValue)
}

func formatFloat(f float64, bits int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%v: %w", f, ErrNonFinite)
	}
	return strconv.FormatFloat(f, 'f', -1, bits), nil
}

// Declarations flattens props and checks every value with checker.
// A nil checker uses the default sanitizer.
func Declarations(props rule.Properties, checker Checker) ([]Declaration, error) {
	if checker == nil {
		checker = sanitize.Default()
	}
	decls, err := Flatten(props)
	if err != nil {
		return nil, err
	}
	for _, d := range decls {
		if err := checker.Check(d.Property, d.Value); err != nil {
			return nil, err
		}
	}
	return decls, nil
}

// Serialize renders props as a single rule for selector. It returns "" when
// props flatten to nothing.
func Serialize(selector string, props rule.Properties, checker Checker) (string, error) {
	decls, err := Declarations(props, checker)
	if err != nil {
		return "", err
	}
	return Render(selector, decls), nil
}

// Render formats already checked declarations.
func Render(selector string, decls []Declaration) string {
	if len(decls) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, d := range decls {
		b.WriteString("  ")
		b.WriteString(d.Property)
		b.WriteString(": ")
		b.WriteString(d.Value)
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

// Indent prefixes every non-empty line of css with prefix.
func Indent(css, prefix string) string {
	lines := strings.Split(css, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
