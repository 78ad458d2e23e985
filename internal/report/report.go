// Package report prints generation results: issues in golangci-lint
// format, run statistics, and a JSON export for tooling.
package report

import (
	"os"
	"strings"

	"github.com/yacobolo/utilcss"
	"github.com/yacobolo/utilcss/internal/scan"
)

// Result is everything one generate or check run produced.
type Result struct {
	Tokens       int // distinct tokens considered
	Generated    int // tokens that produced CSS
	Skipped      int // tokens nothing matched
	FilesScanned int
	Cache        utilcss.CacheStats
	Issues       []utilcss.Issue
	Unmatched    []string // distinct unmatched tokens, input order
}

// Errors counts error-severity issues.
func (r Result) Errors() int {
	return r.count(utilcss.SeverityError)
}

// Warnings counts warning-severity issues.
func (r Result) Warnings() int {
	return r.count(utilcss.SeverityWarning)
}

func (r Result) count(severity string) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}

// Config controls terminal output.
type Config struct {
	Color            string // "auto" (default), "always" or "never"
	PrintIssuedLines bool   // Print the offending source line with a caret
	PrintLinterName  bool   // Append "(utilcss)" to each issue
}

// OutputFormat represents the report output format.
type OutputFormat string

const (
	// OutputIssues shows only issues in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows run statistics only
	OutputSummary OutputFormat = "summary"
	// OutputFull shows issues followed by statistics
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
)

// DetermineOutputFormat selects the output format from the flag value.
// Unknown values fall back to issues, following golangci-lint's default.
func DetermineOutputFormat(format string) OutputFormat {
	switch OutputFormat(strings.ToLower(format)) {
	case OutputSummary:
		return OutputSummary
	case OutputFull:
		return OutputFull
	case OutputJSON:
		return OutputJSON
	}
	return OutputIssues
}

// shouldUseColors determines if colors should be enabled.
func shouldUseColors(cfg Config) bool {
	switch cfg.Color {
	case "always":
		return true
	case "never":
		return false
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}

// Locate fills in issue positions and source lines from scanned token
// locations. Issues whose token was not scanned keep an empty position.
func Locate(issues []utilcss.Issue, idx map[string]scan.Location) []utilcss.Issue {
	out := make([]utilcss.Issue, len(issues))
	for i, issue := range issues {
		if loc, ok := idx[issue.Token]; ok {
			issue.Pos = utilcss.IssuePos{
				Filename: scan.RelativePath(loc.File),
				Line:     loc.Line,
				Column:   loc.Column,
			}
			if loc.Text != "" {
				issue.SourceLines = []string{loc.Text}
			}
		}
		out[i] = issue
	}
	return out
}
