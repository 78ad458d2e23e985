package report

import (
	"fmt"
	"io"
)

// maxUnmatched caps the unmatched token listing.
const maxUnmatched = 10

// StatsReporter prints run statistics.
type StatsReporter struct {
	w         io.Writer
	useColors bool
}

// NewStatsReporter creates a statistics reporter
func NewStatsReporter(w io.Writer, useColors bool) *StatsReporter {
	return &StatsReporter{w: w, useColors: useColors}
}

// PrintStatistics outputs token and cache statistics
func (r *StatsReporter) PrintStatistics(result Result) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Generation Statistics", r.useColors))
	fmt.Fprintln(r.w, "---------------------")

	fmt.Fprintf(r.w, "Files Scanned:   %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Tokens:          %d\n", result.Tokens)
	fmt.Fprintf(r.w, "Generated:       %d\n", result.Generated)
	fmt.Fprintf(r.w, "Skipped:         %d\n", result.Skipped)
	fmt.Fprintf(r.w, "Rejected:        %d\n", len(result.Issues))
	fmt.Fprintf(r.w, "Cache:           %d hits, %d misses (%.1f%%)\n",
		result.Cache.Hits, result.Cache.Misses, result.Cache.HitRate*100)
}

// PrintUnmatched lists tokens no rule matched
func (r *StatsReporter) PrintUnmatched(result Result) {
	if len(result.Unmatched) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Unmatched Tokens", r.useColors))
	fmt.Fprintln(r.w, "----------------")

	for i, tok := range result.Unmatched {
		if i >= maxUnmatched {
			fmt.Fprintf(r.w, "… and %d more\n", len(result.Unmatched)-maxUnmatched)
			break
		}
		fmt.Fprintf(r.w, "• %s\n", tok)
	}
}
