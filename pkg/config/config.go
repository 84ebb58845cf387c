// Package config provides configuration management for promptpack.
//
// Configuration Loading Order (later overrides earlier):
// 1. Defaults (hardcoded)
// 2. Project Config: ./.promptpack.yaml (searched upward from the working directory)
// 3. User Config: $HOME/.config/promptpack/config.yaml
// 4. Command-line flags
package config

// Config represents the complete application configuration.
type Config struct {
	Model     string          `yaml:"model"`
	Output    string          `yaml:"output"`
	MaxTokens int             `yaml:"max_tokens"`
	FileTypes []string        `yaml:"file_types,omitempty"`
	Normalize NormalizeConfig `yaml:"normalize"`
	Display   DisplayConfig   `yaml:"display"`
	Debug     bool            `yaml:"debug"`
}

// NormalizeConfig controls the text normalization pipeline.
type NormalizeConfig struct {
	LineNumbers  bool `yaml:"line_numbers"`
	KeepComments bool `yaml:"keep_comments"`
	Concise      bool `yaml:"concise"`
	DropBlank    bool `yaml:"drop_blank"`
}

// DisplayConfig selects which path string is rendered as a file header.
type DisplayConfig struct {
	// ShowFullPath renders the resolved filesystem path.
	ShowFullPath bool `yaml:"show_full_path"`
	// ShowPath renders the path exactly as written in a manifest.
	ShowPath bool `yaml:"show_path"`
}
