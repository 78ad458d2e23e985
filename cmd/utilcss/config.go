package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

const defaultConfigFile = ".utilcss.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence). Flags left at their default do not
	// override keys the file or environment already set.
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (UTILCSS_* prefix)
	if err := k.Load(env.Provider("UTILCSS_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key.
//
//	UTILCSS_PREFIX        -> prefix
//	UTILCSS_OUTPUT_FORMAT -> output-format
//	UTILCSS_SCAN__PATHS   -> scan.paths
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "UTILCSS_"))
	parts := strings.Split(s, "__")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(p, "_", "-")
	}
	return strings.Join(parts, ".")
}

// generateConfig is the resolved configuration of a generate run.
type generateConfig struct {
	Prefix          string
	ThemeFile       string
	Minify          bool
	Cache           bool
	Layers          bool
	Merge           bool
	ScanPaths       []string
	IgnoreGitignore bool
	Output          string // "" or "-" writes to stdout
	OutputFormat    string
	PrintLines      bool
	Color           string
	Quiet           bool
}

// buildGenerateConfig constructs the run configuration from koanf state.
func buildGenerateConfig() generateConfig {
	config := generateConfig{
		Prefix:          getStringWithFallback("prefix", "prefix", ""),
		ThemeFile:       getStringWithFallback("theme", "theme", ""),
		Minify:          getBoolWithFallback("minify", "minify", false),
		Cache:           getBoolWithFallback("cache", "cache", true),
		Layers:          getBoolWithFallback("layers", "layers", false),
		Merge:           getBoolWithFallback("merge", "merge", false),
		IgnoreGitignore: getBoolWithFallback("ignore-gitignore", "ignore-gitignore", false),
		Output:          getStringWithFallback("output", "output", ""),
		OutputFormat:    getStringWithFallback("output-format", "output-format", "issues"),
		PrintLines:      getBoolWithFallback("print-lines", "print-lines", true),
		Color:           getStringWithFallback("color", "color", "auto"),
		Quiet:           getBoolWithFallback("quiet", "quiet", false),
	}

	// Handle paths: check flag key first, then config key
	if paths := k.Strings("paths"); len(paths) > 0 {
		config.ScanPaths = paths
	} else if paths := k.Strings("scan.paths"); len(paths) > 0 {
		config.ScanPaths = paths
	}

	return config
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}
