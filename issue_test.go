package utilcss

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestIssuesFromError(t *testing.T) {
	require.Nil(t, IssuesFromError(nil))

	unsafe := &TokenError{
		Token: "bg-[url(javascript:x)]",
		Err: &UnsafeValueError{
			Property:    "background-image",
			Value:       "url(javascript:x)",
			Reason:      "javascript: scheme",
			Remediation: "use an https URL",
		},
	}
	plain := &TokenError{Token: "boom", Err: errors.New("rule panicked")}
	other := errors.New("something else")

	issues := IssuesFromError(multierr.Combine(unsafe, plain, other))
	require.Len(t, issues, 3)

	assert.Equal(t, Issue{
		FromLinter:  LinterName,
		Severity:    SeverityError,
		Token:       "bg-[url(javascript:x)]",
		Text:        `unsafe CSS value for background-image "url(javascript:x)": javascript: scheme`,
		Remediation: "use an https URL",
	}, issues[0])

	assert.Equal(t, "boom", issues[1].Token)
	assert.Equal(t, "rule panicked", issues[1].Text)
	assert.Empty(t, issues[1].Remediation)

	assert.Empty(t, issues[2].Token)
	assert.Equal(t, "something else", issues[2].Text)
}
