package report

import (
	"fmt"
	"io"
)

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result Result, format OutputFormat, cfg Config) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, result)

	case OutputSummary:
		stats := NewStatsReporter(w, shouldUseColors(cfg))
		stats.PrintStatistics(result)
		stats.PrintUnmatched(result)

	case OutputFull:
		reporter := NewReporter(w, cfg)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(result)

		stats := NewStatsReporter(w, reporter.UseColors())
		stats.PrintStatistics(result)
		stats.PrintUnmatched(result)

	case OutputIssues:
		reporter := NewReporter(w, cfg)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(result)

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}
