package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Default returns the configuration used when no file is given: issue and
// repository tools enabled, no cache, no HTTP server.
func Default() *AppConfig {
	return &AppConfig{
		Logging: LoggingConfig{Level: "info"},
		GitHub: GitHubConfig{
			MaxRetries:         5,
			BackoffBase:        2.0,
			RetryBufferSeconds: 5,
		},
		ToolGroups: map[string]ToolGroup{
			"issues":       {Enabled: true},
			"repositories": {Enabled: true},
		},
	}
}

// Load reads configuration from a YAML file. An empty path yields the
// defaults. Environment variables in the file are expanded before parsing.
func Load(path string) (*AppConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Backstop defaults for zeroed fields
	if cfg.GitHub.MaxRetries == 0 {
		cfg.GitHub.MaxRetries = 5
	}
	if cfg.GitHub.BackoffBase == 0 {
		cfg.GitHub.BackoffBase = 2.0
	}
	if cfg.GitHub.RetryBufferSeconds == 0 {
		cfg.GitHub.RetryBufferSeconds = 5
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.ToolGroups == nil {
		cfg.ToolGroups = Default().ToolGroups
	}

	return cfg, nil
}
