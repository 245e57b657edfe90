// ABOUTME: XDG-based data and config directory resolution for the binder CLI.
// ABOUTME: Checks flags and BINDER_* variables first, then XDG homes, then the dotted fallbacks.
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// resolveDataDir picks the activity journal directory: the -data-dir flag,
// then BINDER_DATA_DIR, then the XDG default.
func resolveDataDir(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv("BINDER_DATA_DIR"); env != "" {
		return env, nil
	}
	return defaultDataDir()
}

// defaultDataDir returns the default directory for binder persistent state.
// It checks XDG_DATA_HOME first, then falls back to ~/.local/share/binder.
func defaultDataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "binder"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, ".local", "share", "binder"), nil
}

// resolveConfigPath picks the config file: the -config flag, then
// BINDER_CONFIG, then config.yaml in the XDG config directory.
func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("BINDER_CONFIG"); env != "" {
		return env
	}
	dir, err := defaultConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "config.yaml")
}

// defaultConfigDir returns the default directory for binder configuration.
// It checks XDG_CONFIG_HOME first, then falls back to ~/.config/binder.
func defaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "binder"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, ".config", "binder"), nil
}
