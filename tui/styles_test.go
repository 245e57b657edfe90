// ABOUTME: Tests for lipgloss style definitions and the StyleForColor helper.
// ABOUTME: Validates the card color mapping and its fallback for off-list values.
package tui

import (
	"testing"

	"github.com/2389-research/binder/card"
)

func TestStyleForColorCoversFixedColors(t *testing.T) {
	for _, color := range card.Colors {
		t.Run(color, func(t *testing.T) {
			rendered := StyleForColor(color).Render(color)
			if rendered == "" {
				t.Errorf("StyleForColor(%q).Render returned empty string", color)
			}
		})
	}
}

func TestStyleForColorFallback(t *testing.T) {
	got := StyleForColor("Rainbow")
	testStr := "fallback"
	if got.Render(testStr) != PlainRowStyle.Render(testStr) {
		t.Errorf("off-list color should fall back to the plain row style")
	}
}

func TestStyleForColorMixedUsesFallback(t *testing.T) {
	// "Mixed (Check Notes)" is a fixed value but has no single terminal color.
	got := StyleForColor("Mixed (Check Notes)")
	testStr := "mixed"
	if got.Render(testStr) != PlainRowStyle.Render(testStr) {
		t.Errorf("mixed color should render with the plain row style")
	}
}
