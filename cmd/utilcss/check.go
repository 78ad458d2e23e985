package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/yacobolo/utilcss"
	"github.com/yacobolo/utilcss/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check values...",
	Short: "Check CSS values against the sanitizer",
	Long: `Run each value through the same sanitizer generation uses.
Rejected values are reported as issues and exit 1.`,
	Example: `  utilcss check 'url(https://example.com/a.png)' 'expression(alert(1))'
  utilcss check --property background-image 'url(javascript:alert(1))'`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("property", "background", "Property the values are checked for")
}

func runCheck(cmd *cobra.Command, args []string) error {
	property, _ := cmd.Flags().GetString("property")

	var errs error
	for _, value := range args {
		if err := utilcss.CheckValue(property, value); err != nil {
			errs = multierr.Append(errs, &utilcss.TokenError{Token: value, Err: err})
		}
	}

	result := report.Result{
		Tokens:    len(args),
		Generated: len(args) - len(multierr.Errors(errs)),
		Issues:    utilcss.IssuesFromError(errs),
	}

	if !getBoolWithFallback("quiet", "quiet", false) {
		r := report.NewReporter(cmd.OutOrStdout(), report.Config{
			Color:           getStringWithFallback("color", "color", "auto"),
			PrintLinterName: true,
		})
		r.PrintIssues(result.Issues)
		if len(result.Issues) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%d safe\n", len(args))
		}
	}

	if result.Errors() > 0 {
		return errIssuesFound
	}
	return nil
}
