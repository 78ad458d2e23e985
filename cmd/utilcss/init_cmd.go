package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .utilcss.yaml config file",
	Long:  `Create a .utilcss.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
		}

		if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigFile)
		return nil
	},
}

const defaultConfig = `# utilcss configuration
# Docs: https://github.com/yacobolo/utilcss

# Generation settings
prefix: ""
theme: ""                # YAML or TOML file merged over the preset theme
minify: false
cache: true
layers: true
merge: false

# Token sources
scan:
  paths:
    - "internal/web/**/*.templ"
    - "internal/web/**/*.go"
ignore-gitignore: false

# Output settings
output: web/static/utilities.css
output-format: issues    # issues | summary | full | json
print-lines: true
verbose: false
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
