package config

import "github.com/teranos/PVX/errors"

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Gen limit: 0 = use default, negative or 1 cannot describe a sieve range
	if c.Gen.Limit < 0 {
		return errors.Newf("gen.limit must be >= 0, got %d", c.Gen.Limit)
	}
	if c.Gen.Limit == 1 {
		return errors.New("gen.limit must be at least 2 (smallest prime)")
	}

	// Factor target: 0 = none configured, otherwise must be factorizable
	if c.Factor.Target < 0 {
		return errors.Newf("factor.target must be >= 0, got %d", c.Factor.Target)
	}
	if c.Factor.Target == 1 {
		return errors.New("factor.target must be at least 2")
	}

	// Viz mode: empty = use default
	if c.Viz.Mode != "" && c.Viz.Mode != VizModeStatic && c.Viz.Mode != VizModeInteractive {
		return errors.Newf("viz.mode must be %q or %q, got %q", VizModeStatic, VizModeInteractive, c.Viz.Mode)
	}

	// Server port: 0 is invalid (omit for default), negative is invalid
	if c.Server.Port != nil && *c.Server.Port == 0 {
		return errors.Newf("server.port cannot be 0 (omit for default port %d)", DefaultServerPort)
	}
	if c.Server.Port != nil && *c.Server.Port < 0 {
		return errors.Newf("server.port must be positive, got %d", *c.Server.Port)
	}

	// Log theme: empty = use default
	if c.Server.LogTheme != "" && c.Server.LogTheme != "everforest" && c.Server.LogTheme != "gruvbox" {
		return errors.Newf("server.log_theme must be \"everforest\" or \"gruvbox\", got %q", c.Server.LogTheme)
	}

	return nil
}
