package variant

import (
	"fmt"
	"strings"
)

// Apply composes resolved variants around css whose rules use selector.
//
// Selector rewrites run in reverse declaration order, so the variant
// nearest the utility transforms the selector first; every occurrence of
// the running selector in the text is replaced. Wrappers are deferred and
// then nested so the first-declared variant ends up outermost.
//
// It returns the final text and the final selector.
func Apply(css, selector string, variants []Resolved) (string, string, error) {
	current := selector
	var wrappers []Resolved

	for i := len(variants) - 1; i >= 0; i-- {
		res := variants[i]
		if res.Variant == nil {
			return "", "", fmt.Errorf("variant %q: unresolved: %w", res.Name, ErrInvalidVariant)
		}
		if res.Variant.Rewrite == nil {
			wrappers = append(wrappers, res)
			continue
		}
		next := res.Variant.Rewrite(current, res.Captures)
		if next == "" {
			return "", "", fmt.Errorf("variant %q: rewrite produced an empty selector: %w", res.Name, ErrInvalidVariant)
		}
		css = strings.ReplaceAll(css, current, next)
		current = next
	}

	// wrappers holds the innermost (last-declared) variant first.
	for _, res := range wrappers {
		css = res.Variant.Wrapper.wrap(css, res.Captures)
	}
	return css, current, nil
}
