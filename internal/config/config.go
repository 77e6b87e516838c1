// Package config loads and defaults the checkrunner configuration. The
// classification section carries the repository layout conventions (roots,
// well-known filenames, test path globs) that the classifier consumes; the
// build section carries the task-runner invocation conventions.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Classify ClassifyConfig `yaml:"classify"`
	Build    BuildConfig    `yaml:"build"`
	Git      GitConfig      `yaml:"git"`
	History  HistoryConfig  `yaml:"history"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ClassifyConfig carries the repository layout conventions used to map changed
// file paths to target labels. All paths are repo-relative with forward slashes.
type ClassifyConfig struct {
	BuildSystemRoot    string `yaml:"build_system_root"`
	ValidatorRoot      string `yaml:"validator_root"`
	ValidatorWebUIRoot string `yaml:"validator_webui_root"`
	ExtensionsRoot     string `yaml:"extensions_root"`
	ExamplesRoot       string `yaml:"examples_root"`

	OwnersFile        string   `yaml:"owners_file"`
	SchemaExtensions  []string `yaml:"schema_extensions"`
	DocsExtensions    []string `yaml:"docs_extensions"`
	ValidatorOutputs  []string `yaml:"validator_output_extensions"`
	FlagConfigFiles   []string `yaml:"flag_config_files"`
	DashboardEntry    string   `yaml:"dashboard_entry"`
	DashboardIndexDir string   `yaml:"dashboard_index_dir"`
	VisualDiffDrivers []string `yaml:"visual_diff_drivers"`
	VisualTestsDir    string   `yaml:"visual_tests_dir"`

	// Externally supplied test-path glob lists (doublestar syntax).
	UnitTestGlobs        []string `yaml:"unit_test_globs"`
	IntegrationTestGlobs []string `yaml:"integration_test_globs"`
}

// BuildConfig carries task-runner invocation conventions.
type BuildConfig struct {
	Tool          string `yaml:"tool"`           // task runner prefix, e.g. "gulp"
	ReleaseBranch string `yaml:"release_branch"` // branch that persists bundle-size data
}

// GitConfig configures changed-file resolution.
type GitConfig struct {
	Remote     string `yaml:"remote"`
	BaseBranch string `yaml:"base_branch"`
}

// HistoryConfig configures the optional local run-history store.
type HistoryConfig struct {
	Path string `yaml:"path"` // sqlite file; empty disables history
}

// MetricsConfig configures the optional metrics textfile export.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path"` // empty disables export
}

// Default returns the built-in configuration for a conventional repo layout.
func Default() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

// Load loads configuration from the specified file. A missing file yields the
// built-in defaults so the runner works out of the box in a conventional repo.
func Load(configPath string) (*Config, error) {
	var config Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		applyDefaults(&config)
		return &config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}
