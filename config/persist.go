package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/PVX/errors"
	"github.com/teranos/PVX/logger"
)

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	// Check if file exists before backing up
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	// Rotate backups: .back3 -> delete, .back2 -> .back3, .back1 -> .back2, current -> .back1
	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	// Delete oldest backup if exists
	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		// Deletion failures should not block the config save
		logger.Warnw("Failed to delete old config backup",
			"file", back3,
			"error", err)
	}

	// Rotate .back2 to .back3
	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	// Rotate .back1 to .back2
	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	// Copy current to .back1
	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}

// GetUserConfigPath returns the path to the user config file in ~/.pvx/pvx.toml
func GetUserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pvx", "pvx.toml")
}

// loadOrInitializeUserConfig loads the user config file, or creates an empty one if it doesn't exist
func loadOrInitializeUserConfig() (map[string]interface{}, string, error) {
	configPath := GetUserConfigPath()
	if configPath == "" {
		return nil, "", errors.New("could not determine home directory")
	}

	// Ensure ~/.pvx directory exists
	pvxDir := filepath.Dir(configPath)
	if err := os.MkdirAll(pvxDir, DefaultDirPermissions); err != nil {
		return nil, "", errors.Wrap(err, "failed to create .pvx directory")
	}

	// Try to read existing config
	var config map[string]interface{}
	if data, err := os.ReadFile(configPath); err == nil {
		// File exists, parse it
		if err := toml.Unmarshal(data, &config); err != nil {
			return nil, "", errors.Wrap(err, "failed to parse user config")
		}
	} else {
		// File doesn't exist, create empty config
		config = make(map[string]interface{})
	}

	return config, configPath, nil
}

// saveUserConfig writes the config to the user config file with backup
func saveUserConfig(config map[string]interface{}, configPath string) error {
	// Create backup
	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	// Marshal to TOML
	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	// Mark this as our own write to prevent reload loops
	globalWatcherMu.Lock()
	if globalWatcher != nil {
		globalWatcher.MarkOwnWrite()
	}
	globalWatcherMu.Unlock()

	// Write to file
	if err := os.WriteFile(configPath, data, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to write user config")
	}

	return nil
}

// SetValue persists a dotted-key configuration value (e.g. "gen.limit")
// to the user config file. Only recognized keys are accepted.
func SetValue(key string, value interface{}) error {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return errors.Newf("config key must be section.name, got %q", key)
	}

	config, configPath, err := loadOrInitializeUserConfig()
	if err != nil {
		return errors.Wrap(err, "failed to load user config")
	}

	// Get or create the section
	var section map[string]interface{}
	if s, ok := config[parts[0]].(map[string]interface{}); ok {
		section = s
	} else {
		section = make(map[string]interface{})
	}

	section[parts[1]] = value
	config[parts[0]] = section

	if err := saveUserConfig(config, configPath); err != nil {
		return err
	}

	// Invalidate the cached config so the next Load sees the new value
	Reset()
	return nil
}

// UpdateGenLimit updates the gen.limit setting in the user config
func UpdateGenLimit(limit int64) error {
	return SetValue("gen.limit", limit)
}

// UpdateVizMode updates the viz.mode setting in the user config
func UpdateVizMode(mode string) error {
	if mode != VizModeStatic && mode != VizModeInteractive {
		return errors.Newf("viz.mode must be %q or %q, got %q", VizModeStatic, VizModeInteractive, mode)
	}
	return SetValue("viz.mode", mode)
}

// UpdateServerPort updates the server.port setting in the user config
func UpdateServerPort(port int) error {
	if port <= 0 {
		return errors.Newf("server.port must be positive, got %d", port)
	}
	return SetValue("server.port", port)
}
