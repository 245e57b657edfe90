// ABOUTME: Defines lipgloss style constants for the TUI panels, table rows, status bar, and dialogs.
// ABOUTME: Provides StyleForColor to map card color values to their display styles.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Panel borders
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	// Table rows
	HeaderRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	CursorRowStyle = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("231")).Bold(true)
	MarkedRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	PlainRowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	DimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Outcome colors
	OKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	ErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	DirtyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	// Activity log
	LogTimestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	LogActionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	// Detail and form labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(15)
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// Form fields
	FocusedFieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)

	// Modal dialogs (duplicate resolution, confirmations)
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(1, 2)

	// Stats bars
	BarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

// Card color values mapped to terminal colors. Values outside the fixed set
// fall back to the plain row style.
var colorStyles = map[string]lipgloss.Style{
	"Red":    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	"Green":  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	"Blue":   lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	"Black":  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	"White":  lipgloss.NewStyle().Foreground(lipgloss.Color("231")),
	"Purple": lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
	"Yellow": lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
}

// StyleForColor returns the display style for a card's Color value.
func StyleForColor(color string) lipgloss.Style {
	if s, ok := colorStyles[color]; ok {
		return s
	}
	return PlainRowStyle
}
