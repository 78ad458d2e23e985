package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/utilcss"
	"github.com/yacobolo/utilcss/internal/report"
	"github.com/yacobolo/utilcss/internal/scan"
	"github.com/yacobolo/utilcss/preset"
)

var generateCmd = &cobra.Command{
	Use:     "generate [tokens...]",
	Aliases: []string{"gen"},
	Short:   "Generate CSS for utility-class tokens",
	Long: `Generate CSS for tokens given as arguments and tokens scanned from source files.
Unsafe values are reported as issues and exit 1; unmatched tokens are skipped.`,
	Example: `  utilcss generate flex p-4 hover:bg-red-500/50
  utilcss generate --paths 'web/**/*.templ' --layers --output web/static/utilities.css
  utilcss generate --paths 'web/**/*.html' --output-format json --output out.css`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringSlice("paths", nil, "Glob patterns of source files to scan for tokens")
	f.Bool("ignore-gitignore", false, "Scan files matched by .gitignore too")
	f.String("prefix", "", "Utility prefix, e.g. tw-")
	f.String("theme", "", "Theme file (YAML or TOML) merged over the preset theme")
	f.Bool("minify", false, "Minify the generated CSS")
	f.Bool("cache", true, "Cache generated rules by token")
	f.Bool("layers", false, "Group output into @layer base, components, utilities")
	f.Bool("merge", false, "Collapse conflicting tokens before generating (last one wins)")
	f.StringP("output", "o", "", "Output file for CSS (default: stdout)")
	f.String("output-format", "issues", "Report format: issues|summary|full|json")
	f.Bool("print-lines", true, "Show source lines with issues")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	config := buildGenerateConfig()
	log := newLogger()
	defer func() { _ = log.Sync() }()

	tokens := argTokens(args)
	var index map[string]scan.Location
	filesScanned := 0

	if len(config.ScanPaths) > 0 {
		opts := []scan.Option{scan.WithLogger(log)}
		if config.IgnoreGitignore {
			opts = append(opts, scan.WithGitignore(""))
		}
		found, stats, err := scan.New(opts...).Scan(config.ScanPaths)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		tokens = append(tokens, scan.Values(found)...)
		index = scan.Index(found)
		filesScanned = stats.FilesScanned
	}

	if config.Merge {
		tokens = mergeTokens(tokens)
	}

	gen, err := newGenerator(config, log)
	if err != nil {
		return err
	}

	result := classify(gen, tokens)
	result.FilesScanned = filesScanned

	var css string
	var genErr error
	if config.Layers {
		css, genErr = gen.GenerateSheet(tokens)
	} else {
		css, genErr = gen.GenerateMultiple(tokens)
	}
	result.Cache = gen.GetCacheStats()
	result.Issues = report.Locate(utilcss.IssuesFromError(genErr), index)

	reportOut, err := writeCSS(cmd, config.Output, css)
	if err != nil {
		return err
	}

	if !config.Quiet {
		rcfg := report.Config{
			Color:            config.Color,
			PrintIssuedLines: config.PrintLines,
			PrintLinterName:  true,
		}
		if err := report.WriteOutput(reportOut, result, report.DetermineOutputFormat(config.OutputFormat), rcfg); err != nil {
			return err
		}
	}

	if result.Errors() > 0 {
		return errIssuesFound
	}
	return nil
}

// newGenerator builds a Generator over the preset rules and variants.
func newGenerator(config generateConfig, log *zap.Logger) (*utilcss.Generator, error) {
	rules, err := preset.RuleRegistry()
	if err != nil {
		return nil, fmt.Errorf("building rules: %w", err)
	}
	variants, err := preset.VariantRegistry()
	if err != nil {
		return nil, fmt.Errorf("building variants: %w", err)
	}
	theme, err := loadTheme(config.ThemeFile)
	if err != nil {
		return nil, err
	}

	return utilcss.New(rules,
		utilcss.WithLogger(log),
		utilcss.WithTheme(theme),
		utilcss.WithVariants(variants),
		utilcss.WithPrefix(config.Prefix),
		utilcss.WithCache(config.Cache),
		utilcss.WithMinify(config.Minify),
	), nil
}

// classify generates every distinct token once and counts the outcome.
// Token errors are left to the sheet generation that follows; its lookups
// visit the same tokens in the same order.
func classify(gen *utilcss.Generator, tokens []string) report.Result {
	var result report.Result
	seen := make(map[string]bool, len(tokens))

	for _, tok := range tokens {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		result.Tokens++

		css, err := gen.GenerateClass(tok)
		switch {
		case err != nil:
			continue
		case css == "":
			result.Skipped++
			result.Unmatched = append(result.Unmatched, tok)
		default:
			result.Generated++
		}
	}
	return result
}

// argTokens splits command-line arguments into tokens, so a quoted class
// list counts as several tokens.
func argTokens(args []string) []string {
	var tokens []string
	for _, arg := range args {
		tokens = append(tokens, strings.Fields(arg)...)
	}
	return tokens
}

// mergeTokens drops tokens a later token overrides ("p-2 p-4" -> "p-4").
func mergeTokens(tokens []string) []string {
	if len(tokens) == 0 {
		return tokens
	}
	return strings.Fields(twmerge.Merge(strings.Join(tokens, " ")))
}

// writeCSS writes css to path, or to stdout when path is "" or "-". It
// returns where the report should go: stderr when CSS took stdout.
func writeCSS(cmd *cobra.Command, path, css string) (io.Writer, error) {
	if css != "" && !strings.HasSuffix(css, "\n") {
		css += "\n"
	}

	if path == "" || path == "-" {
		if _, err := io.WriteString(cmd.OutOrStdout(), css); err != nil {
			return nil, fmt.Errorf("writing css: %w", err)
		}
		return cmd.ErrOrStderr(), nil
	}

	if err := os.WriteFile(path, []byte(css), 0o644); err != nil {
		return nil, fmt.Errorf("writing css to %s: %w", path, err)
	}
	return cmd.OutOrStdout(), nil
}
