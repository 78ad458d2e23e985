package utilcss

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Issue is a single generation problem in golangci-lint format.
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "utilcss"
	Text        string   `json:"Text"`        // "unsafe CSS value for background-image ..."
	Severity    string   `json:"Severity"`    // "", "warning", "error"
	Token       string   `json:"Token"`       // raw token, e.g. "bg-[url(javascript:x)]"
	SourceLines []string `json:"SourceLines"` // lines of code with the token, when known
	Pos         IssuePos `json:"Pos"`         // file location, when known
	Remediation string   `json:"Remediation,omitempty"`
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"`
	Line     int    `json:"Line"`
	Column   int    `json:"Column"` // 1-based start of the token
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// LinterName is the FromLinter value of every issue.
const LinterName = "utilcss"

// IssuesFromError flattens an error returned by the Generator (possibly a
// multierr combination) into issues. Sanitizer rejections are errors;
// configuration and runtime failures are errors too, since both abort the
// token. Locations are left empty for the caller to fill in.
func IssuesFromError(err error) []Issue {
	if err == nil {
		return nil
	}
	errs := multierr.Errors(err)
	issues := make([]Issue, 0, len(errs))
	for _, e := range errs {
		issue := Issue{FromLinter: LinterName, Severity: SeverityError, Text: e.Error()}

		var terr *TokenError
		if errors.As(e, &terr) {
			issue.Token = terr.Token
			issue.Text = terr.Err.Error()
		}

		var uerr *UnsafeValueError
		if errors.As(e, &uerr) {
			issue.Text = fmt.Sprintf("unsafe CSS value for %s %q: %s", uerr.Property, uerr.Value, uerr.Reason)
			issue.Remediation = uerr.Remediation
		}

		issues = append(issues, issue)
	}
	return issues
}
