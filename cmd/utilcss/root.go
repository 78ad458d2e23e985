package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// errIssuesFound makes the process exit 1 after issues were printed.
var errIssuesFound = errors.New("issues found")

var rootCmd = &cobra.Command{
	Use:   "utilcss",
	Short: "Utility-class CSS generator",
	Long: `Generate CSS from utility-class tokens such as hover:bg-red-500/50.
Tokens come from the command line or are scanned from templ, Go, HTML and JSX sources.
Every value passes a sanitizer; unsafe tokens are reported and never emitted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output except generated CSS")
	rootCmd.PersistentFlags().String("color", "auto", "Color output: auto|always|never")
	rootCmd.PersistentFlags().String("config", ".utilcss.yaml", "Config file path")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the console logger for a run. It writes to stderr so
// generated CSS on stdout stays clean.
func newLogger() *zap.Logger {
	if getBoolWithFallback("quiet", "quiet", false) {
		return zap.NewNop()
	}

	level := zapcore.WarnLevel
	if getBoolWithFallback("verbose", "verbose", false) {
		level = zapcore.DebugLevel
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	if getStringWithFallback("color", "color", "auto") == "always" {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(level))
	return zap.New(core)
}
