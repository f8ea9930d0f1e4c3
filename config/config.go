package config

// Config represents the core PVX configuration
type Config struct {
	Gen    GenConfig    `mapstructure:"gen"`
	Factor FactorConfig `mapstructure:"factor"`
	Viz    VizConfig    `mapstructure:"viz"`
	Server ServerConfig `mapstructure:"server"`
}

// GenConfig configures prime generation
type GenConfig struct {
	Limit int64 `mapstructure:"limit"` // Upper bound for the sieve (default: 20)
}

// FactorConfig configures factorization
type FactorConfig struct {
	Target int64 `mapstructure:"target"` // Default factorization target (0 = none, argument required)
}

// VizConfig configures visualization output
type VizConfig struct {
	Mode string `mapstructure:"mode"` // "static" writes an HTML file, "interactive" serves over WebSocket
	File string `mapstructure:"file"` // Output path for static mode (default: pvx-graph.html)
}

// ServerConfig configures the PVX graph server
type ServerConfig struct {
	Port           *int     `mapstructure:"port"` // Server port: nil = default 8191, 0 is invalid (omit for default)
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	LogTheme       string   `mapstructure:"log_theme"` // Color theme: gruvbox, everforest
}

// Visualization modes
const (
	VizModeStatic      = "static"
	VizModeInteractive = "interactive"
)

// Server port constants
const (
	DefaultServerPort  = 8191 // Development port (2^13 - 1, easy to remember)
	FallbackServerPort = 7878 // Fallback when the default is taken
)

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)
