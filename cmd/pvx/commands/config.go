package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/PVX/config"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage PVX configuration",
	Long: `config — Manage PVX configuration

Display and manage PVX configuration settings.

Configuration sources (in order of precedence):
1. Environment variables (PVX_* prefix)
2. Project config (./pvx.toml, searching up directories)
3. User config (~/.pvx/pvx.toml)
4. System config (/etc/pvx/config.toml)
5. Default values

Examples:
  pvx config show                 # Show current configuration
  pvx config show --format json   # Show configuration in JSON format
  pvx config get gen.limit        # Get specific config value
  pvx config set gen.limit 50     # Persist a value to the user config
  pvx config validate             # Validate current configuration`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the current PVX configuration from all sources",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., gen.limit, viz.mode)",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a configuration value",
	Long: `Persist a configuration value to the user config (~/.pvx/pvx.toml).

The existing file is backed up (.back1 through .back3) before writing.

Examples:
  pvx config set gen.limit 50
  pvx config set viz.mode interactive
  pvx config set server.port 9000`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	Long:  "Validate that the current PVX configuration is valid",
	RunE:  runConfigValidate,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configGetCmd)
	ConfigCmd.AddCommand(configSetCmd)
	ConfigCmd.AddCommand(configValidateCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch configFormat {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		fmt.Println(string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		fmt.Printf("# PVX configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
		fmt.Printf("# PVX configuration\n%s", string(data))

	default:
		return fmt.Errorf("unsupported format: %s (supported: toml, json, yaml)", configFormat)
	}

	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	v := config.GetViper()
	if !v.IsSet(key) {
		return fmt.Errorf("configuration key %q not found", key)
	}

	fmt.Println(config.Get(key))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]

	// Known keys go through their typed updaters so bad values are
	// rejected before touching the file
	switch key {
	case "gen.limit":
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("gen.limit must be an integer, got %q", raw)
		}
		if err := config.UpdateGenLimit(limit); err != nil {
			return err
		}
	case "viz.mode":
		if err := config.UpdateVizMode(raw); err != nil {
			return err
		}
	case "server.port":
		port, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("server.port must be an integer, got %q", raw)
		}
		if err := config.UpdateServerPort(port); err != nil {
			return err
		}
	default:
		if err := config.SetValue(key, coerceValue(raw)); err != nil {
			return err
		}
	}

	fmt.Printf("✓ Set %s = %s\n", key, raw)
	return nil
}

// coerceValue converts a raw CLI string to int, bool, or string so the
// TOML file gets properly typed values
func coerceValue(raw string) interface{} {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	fmt.Println("✓ Configuration is valid")
	return nil
}
