package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/yacobolo/utilcss"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string             `json:"version"`
	Timestamp string             `json:"timestamp"`
	Summary   JSONSummary        `json:"summary"`
	Stats     JSONStats          `json:"stats"`
	Cache     utilcss.CacheStats `json:"cache"`
	Issues    []JSONIssue        `json:"issues"`
	Unmatched []string           `json:"unmatched"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	FilesScanned int `json:"files_scanned"`
}

// JSONStats contains token counts
type JSONStats struct {
	Tokens    int `json:"tokens"`
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
}

// JSONIssue represents a single issue
type JSONIssue struct {
	File        string `json:"file,omitempty"`
	Line        int    `json:"line,omitempty"`
	Column      int    `json:"column,omitempty"`
	Severity    string `json:"severity"`
	Token       string `json:"token"`
	Message     string `json:"message"`
	Remediation string `json:"remediation,omitempty"`
	Linter      string `json:"linter"`
	Source      string `json:"source,omitempty"` // Optional source line
}

// now is replaced in tests.
var now = time.Now

// WriteJSON writes the result as indented JSON
func WriteJSON(w io.Writer, result Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONOutput(result))
}

// buildJSONOutput converts Result to JSONOutput
func buildJSONOutput(result Result) JSONOutput {
	issues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		issues[i] = JSONIssue{
			File:        issue.Pos.Filename,
			Line:        issue.Pos.Line,
			Column:      issue.Pos.Column,
			Severity:    issue.Severity,
			Token:       issue.Token,
			Message:     issue.Text,
			Remediation: issue.Remediation,
			Linter:      issue.FromLinter,
			Source:      source,
		}
	}

	unmatched := result.Unmatched
	if unmatched == nil {
		unmatched = []string{}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       result.Errors(),
			Warnings:     result.Warnings(),
			FilesScanned: result.FilesScanned,
		},
		Stats: JSONStats{
			Tokens:    result.Tokens,
			Generated: result.Generated,
			Skipped:   result.Skipped,
		},
		Cache:     result.Cache,
		Issues:    issues,
		Unmatched: unmatched,
	}
}
