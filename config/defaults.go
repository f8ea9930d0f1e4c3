package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Generation defaults
	v.SetDefault("gen.limit", 20)

	// Visualization defaults
	v.SetDefault("viz.mode", VizModeStatic)
	v.SetDefault("viz.file", "pvx-graph.html")

	// Server configuration defaults
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost",
		"https://localhost",
		"http://127.0.0.1",
		"https://127.0.0.1",
	})
	v.SetDefault("server.log_theme", "everforest")
}

// GetServerPort returns the configured PVX server port
// Returns server.port from config, or DefaultServerPort (8191) if not configured
func GetServerPort() int {
	cfg, err := Load()
	if err != nil || cfg.Server.Port == nil || *cfg.Server.Port == 0 {
		return DefaultServerPort
	}
	return *cfg.Server.Port
}

// GetGenLimit returns the configured sieve limit (default: 20)
func (c *Config) GetGenLimit() int64 {
	if c.Gen.Limit == 0 {
		return 20
	}
	return c.Gen.Limit
}

// GetVizMode returns the visualization mode (default: static)
func (c *Config) GetVizMode() string {
	if c.Viz.Mode == "" {
		return VizModeStatic
	}
	return c.Viz.Mode
}

// GetVizFile returns the static output path (default: pvx-graph.html)
func (c *Config) GetVizFile() string {
	if c.Viz.File == "" {
		return "pvx-graph.html"
	}
	return c.Viz.File
}

// GetServerAllowedOrigins returns the allowed CORS origins
func (c *Config) GetServerAllowedOrigins() []string {
	if len(c.Server.AllowedOrigins) == 0 {
		return []string{
			"http://localhost",
			"https://localhost",
			"http://127.0.0.1",
			"https://127.0.0.1",
		}
	}
	return c.Server.AllowedOrigins
}

// GetServerLogTheme returns the log theme (default: everforest)
func (c *Config) GetServerLogTheme() string {
	if c.Server.LogTheme == "" {
		return "everforest"
	}
	return c.Server.LogTheme
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Gen: {Limit: %d}, Viz: {Mode: %s}, Server: {LogTheme: %s}}",
		c.Gen.Limit, c.Viz.Mode, c.Server.LogTheme)
}
