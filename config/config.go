// ABOUTME: YAML configuration with BINDER_* environment overrides.
// ABOUTME: A missing file means defaults; env vars are applied after the file so they always win.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the optional user settings. All fields have defaults; the
// file may set any subset.
type Config struct {
	Collection   string `yaml:"collection"`    // default collection spreadsheet path
	ExportDir    string `yaml:"export_dir"`    // where -export writes when -out is relative
	Bind         string `yaml:"bind"`          // viewer listen address, loopback only
	HistoryLimit int    `yaml:"history_limit"` // activity entries shown in the log panel
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Bind:         "127.0.0.1:2389",
		HistoryLimit: 50,
	}
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist, then applies BINDER_* environment overrides. A file
// that exists but does not parse is an error, not a silent fallback.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	if cfg.Bind == "" {
		cfg.Bind = Default().Bind
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = Default().HistoryLimit
	}
	return cfg, nil
}

// applyEnv overlays non-empty BINDER_* variables onto the config.
func (c *Config) applyEnv() {
	c.Collection = envOrKeep("BINDER_COLLECTION", c.Collection)
	c.ExportDir = envOrKeep("BINDER_EXPORT_DIR", c.ExportDir)
	c.Bind = envOrKeep("BINDER_BIND", c.Bind)
}

func envOrKeep(key, current string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return current
}

// CollectionPath resolves the collection file: the CLI argument wins, then
// the configured path (file or BINDER_COLLECTION), then ./collection.xlsx.
func (c Config) CollectionPath(cliArg string) string {
	if cliArg != "" {
		return cliArg
	}
	if c.Collection != "" {
		return c.Collection
	}
	return "collection.xlsx"
}
