// ABOUTME: Tests for .env line parsing and non-clobbering environment loading.
// ABOUTME: Covers comments, quotes, export prefixes, and existing-variable precedence.
package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseEnvLine(t *testing.T) {
	tests := []struct {
		line  string
		key   string
		value string
		ok    bool
	}{
		{"BINDER_BIND=127.0.0.1:8080", "BINDER_BIND", "127.0.0.1:8080", true},
		{"  BINDER_COLLECTION = cards.xlsx ", "BINDER_COLLECTION", "cards.xlsx", true},
		{`BINDER_EXPORT_DIR="/tmp/exports"`, "BINDER_EXPORT_DIR", "/tmp/exports", true},
		{"BINDER_CONFIG='conf.yaml'", "BINDER_CONFIG", "conf.yaml", true},
		{"export BINDER_DATA_DIR=/data", "BINDER_DATA_DIR", "/data", true},
		{"BINDER_QUERY=a=b", "BINDER_QUERY", "a=b", true},
		{"# a comment", "", "", false},
		{"", "", "", false},
		{"no equals here", "", "", false},
		{"=value-without-key", "", "", false},
	}

	for _, tc := range tests {
		key, value, ok := parseEnvLine(tc.line)
		if ok != tc.ok {
			t.Errorf("parseEnvLine(%q) ok = %v, want %v", tc.line, ok, tc.ok)
			continue
		}
		if key != tc.key || value != tc.value {
			t.Errorf("parseEnvLine(%q) = (%q, %q), want (%q, %q)", tc.line, key, value, tc.key, tc.value)
		}
	}
}

func TestLoadDotEnvSetsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "BINDER_DOTENV_A=from-file\n# comment\nBINDER_DOTENV_B=also-set\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	os.Unsetenv("BINDER_DOTENV_A")
	os.Unsetenv("BINDER_DOTENV_B")
	t.Cleanup(func() {
		os.Unsetenv("BINDER_DOTENV_A")
		os.Unsetenv("BINDER_DOTENV_B")
	})

	loadDotEnv(path)

	if got := os.Getenv("BINDER_DOTENV_A"); got != "from-file" {
		t.Errorf("expected from-file, got %q", got)
	}
	if got := os.Getenv("BINDER_DOTENV_B"); got != "also-set" {
		t.Errorf("expected also-set, got %q", got)
	}
}

func TestLoadDotEnvDoesNotClobber(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("BINDER_DOTENV_C=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("BINDER_DOTENV_C", "from-env")
	loadDotEnv(path)

	if got := os.Getenv("BINDER_DOTENV_C"); got != "from-env" {
		t.Errorf("expected existing value to win, got %q", got)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	// Must not panic or set anything.
	loadDotEnv(filepath.Join(t.TempDir(), "absent.env"))
}
