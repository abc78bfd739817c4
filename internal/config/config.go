// Package config loads remdex configuration and selects the default
// document directory for the machine it runs on.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	DocDir          string `json:"doc_dir"`
	DebounceSeconds int    `json:"debounce_seconds"`
	LogLevel        string `json:"log_level"`
	LogJSON         bool   `json:"log_json"`
}

var (
	errConfigNotFound = errors.New("config file not found")
	errConfigInvalid  = errors.New("invalid config file")
)

// xochitlDir is where the reMarkable device keeps its document store.
const xochitlDir = "/home/root/.local/share/remarkable/xochitl"

// Default returns the default configuration.
func Default() Config {
	return Config{
		DocDir:          DefaultDocDir(),
		DebounceSeconds: 2,
		LogLevel:        "info",
	}
}

// DefaultDocDir returns the xochitl store when running on the device
// itself, and the bundled sample store otherwise.
func DefaultDocDir() string {
	if runtime.GOOS == "linux" && runtime.GOARCH == "arm" {
		if _, err := os.Stat(xochitlDir); err == nil {
			return xochitlDir
		}
	}

	return "./samples/v6"
}

// defaultPath returns the user config file path, honoring XDG_CONFIG_HOME.
// Returns empty string if no home directory can be determined.
func defaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "remdex", "config.json")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "remdex", "config.json")
}

// Load returns the configuration from path, merged over the defaults.
// An explicit path must exist; with an empty path the default user config
// location is used and silently skipped when absent. The file is HuJSON:
// comments and trailing commas are permitted.
func Load(path string) (Config, error) {
	cfg := Default()

	mustExist := path != ""
	if path == "" {
		path = defaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !mustExist {
			return cfg, nil
		}

		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", errConfigNotFound, path)
		}

		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w %s: %v", errConfigInvalid, path, err)
	}

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w %s: %v", errConfigInvalid, path, err)
	}

	if cfg.DocDir == "" {
		return Config{}, fmt.Errorf("%w %s: doc_dir cannot be empty", errConfigInvalid, path)
	}

	if cfg.DebounceSeconds < 0 {
		return Config{}, fmt.Errorf("%w %s: debounce_seconds cannot be negative", errConfigInvalid, path)
	}

	return cfg, nil
}
