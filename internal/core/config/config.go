package config

import (
	"github.com/vietddude/github-mcp/internal/infra/cache"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server     ServerConfig         `yaml:"server"`
	Logging    LoggingConfig        `yaml:"logging"`
	Cache      cache.Config         `yaml:"cache"`
	GitHub     GitHubConfig         `yaml:"github"`
	ToolGroups map[string]ToolGroup `yaml:"tool_groups"`
}

// ServerConfig holds the health/metrics HTTP server settings. Port 0
// disables the server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// GitHubConfig holds retry and backoff tuning for the GitHub client.
type GitHubConfig struct {
	MaxRetries         int     `yaml:"max_retries"`
	BackoffBase        float64 `yaml:"backoff_base"`         // seconds
	RetryBufferSeconds int     `yaml:"retry_buffer_seconds"` // extra wait after a quota reset
}

// ToolGroup enables or disables one group of MCP tools.
type ToolGroup struct {
	Enabled bool `yaml:"enabled"`
}

// GroupEnabled reports whether a tool group is switched on.
func (c *AppConfig) GroupEnabled(name string) bool {
	group, ok := c.ToolGroups[name]
	return ok && group.Enabled
}
