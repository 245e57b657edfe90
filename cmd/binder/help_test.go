// ABOUTME: Tests for the CLI help output and environment status formatting.
// ABOUTME: Asserts section presence rather than exact layout.
package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintHelpSections(t *testing.T) {
	var buf bytes.Buffer
	printHelp(&buf, "1.2.3")

	out := buf.String()
	for _, want := range []string{
		"binder 1.2.3",
		"Usage:",
		"Export Flags:",
		"Viewer Flags:",
		"Examples:",
		"Environment:",
		"BINDER_COLLECTION",
		"-history <n>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected help to contain %q", want)
		}
	}
}

func TestEnvStatus(t *testing.T) {
	t.Setenv("BINDER_TEST_STATUS", "x")
	if got := envStatus("BINDER_TEST_STATUS"); got != "[set]" {
		t.Errorf("expected [set], got %q", got)
	}
	if got := envStatus("BINDER_TEST_STATUS_ABSENT"); got != "[not set]" {
		t.Errorf("expected [not set], got %q", got)
	}
}
