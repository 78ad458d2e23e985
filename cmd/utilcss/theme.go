package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/yacobolo/utilcss/preset"
	"github.com/yacobolo/utilcss/rule"
)

// loadTheme returns the preset theme with the file at path merged over it.
// An empty path returns the preset theme. Files ending in .toml are TOML;
// anything else is YAML.
func loadTheme(path string) (rule.Theme, error) {
	base := preset.Theme()
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme %s: %w", path, err)
	}

	var over map[string]any
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &over)
	} else {
		over, err = yaml.Parser().Unmarshal(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme %s: %w", path, err)
	}

	return rule.MergeThemes(base, over), nil
}
