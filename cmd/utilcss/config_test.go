package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".utilcss.yaml")
	configContent := `
prefix: tw-
verbose: true
minify: true
layers: true

scan:
  paths:
    - "web/**/*.templ"
output-format: json
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "tw-", k.String("prefix"))
	assert.True(t, k.Bool("verbose"))
	assert.True(t, k.Bool("minify"))
	assert.Equal(t, []string{"web/**/*.templ"}, k.Strings("scan.paths"))
	assert.Equal(t, "json", k.String("output-format"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config, should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.utilcss.yaml"))

	config := buildGenerateConfig()
	assert.Empty(t, config.Prefix)
	assert.True(t, config.Cache)
	assert.False(t, config.Minify)
	assert.Equal(t, "issues", config.OutputFormat)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".utilcss.yaml")
	configContent := `
prefix: from-file
output-format: issues
cache: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	// Set env vars that should override config file
	t.Setenv("UTILCSS_PREFIX", "from-env")
	t.Setenv("UTILCSS_OUTPUT_FORMAT", "json")
	t.Setenv("UTILCSS_CACHE", "false")

	require.NoError(t, loadConfigFromPath(configPath))

	config := buildGenerateConfig()
	assert.Equal(t, "from-env", config.Prefix)
	assert.Equal(t, "json", config.OutputFormat)
	assert.False(t, config.Cache)
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"UTILCSS_PREFIX":           "prefix",
		"UTILCSS_OUTPUT_FORMAT":    "output-format",
		"UTILCSS_SCAN__PATHS":      "scan.paths",
		"UTILCSS_IGNORE_GITIGNORE": "ignore-gitignore",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestBuildGenerateConfig_Defaults(t *testing.T) {
	resetKoanf()

	config := buildGenerateConfig()
	assert.Equal(t, generateConfig{
		Cache:        true,
		OutputFormat: "issues",
		PrintLines:   true,
		Color:        "auto",
	}, config)
}

func TestBuildGenerateConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".utilcss.yaml")
	configContent := `
prefix: tw-
theme: theme.toml
minify: true
cache: false
layers: true
merge: true
ignore-gitignore: true
scan:
  paths:
    - "src/**/*.go"
output: out.css
print-lines: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))
	require.NoError(t, loadConfigFromPath(configPath))

	config := buildGenerateConfig()
	assert.Equal(t, "tw-", config.Prefix)
	assert.Equal(t, "theme.toml", config.ThemeFile)
	assert.True(t, config.Minify)
	assert.False(t, config.Cache)
	assert.True(t, config.Layers)
	assert.True(t, config.Merge)
	assert.True(t, config.IgnoreGitignore)
	assert.Equal(t, []string{"src/**/*.go"}, config.ScanPaths)
	assert.Equal(t, "out.css", config.Output)
	assert.False(t, config.PrintLines)
}

func TestFlagPathsOverrideConfig(t *testing.T) {
	resetKoanf()
	require.NoError(t, k.Set("scan.paths", []string{"from-config"}))
	require.NoError(t, k.Set("paths", []string{"from-flag"}))

	assert.Equal(t, []string{"from-flag"}, buildGenerateConfig().ScanPaths)
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := execute(t, "init")
	require.NoError(t, err)

	// Verify file was created
	data, err := os.ReadFile(".utilcss.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "scan:")
	assert.Contains(t, string(data), "output-format: issues")

	// The written defaults load back
	resetKoanf()
	require.NoError(t, loadConfigFromPath(".utilcss.yaml"))
	config := buildGenerateConfig()
	assert.True(t, config.Layers)
	assert.Equal(t, "web/static/utilities.css", config.Output)
	assert.Equal(t, []string{"internal/web/**/*.templ", "internal/web/**/*.go"}, config.ScanPaths)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())

	// Create existing file
	require.NoError(t, os.WriteFile(".utilcss.yaml", []byte("existing"), 0o644))

	_, _, err := execute(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())

	// Create existing file
	require.NoError(t, os.WriteFile(".utilcss.yaml", []byte("existing"), 0o644))

	_, _, err := execute(t, "init", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(".utilcss.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "cache: true")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "utilcss dev\n", out)
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "utilcss")

	_, _, err = execute(t, "completion", "tcsh")
	require.Error(t, err)
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))

	require.NoError(t, k.Set("config.key", "from-config"))
	assert.Equal(t, "from-config", getStringWithFallback("flag-key", "config.key", "default"))

	require.NoError(t, k.Set("flag-key", "from-flag"))
	assert.Equal(t, "from-flag", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))

	require.NoError(t, k.Set("config.key", false))
	assert.False(t, getBoolWithFallback("flag-key", "config.key", true))
}
