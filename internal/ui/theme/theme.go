package theme

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/compat"
)

// Theme defines all colors used throughout the UI.
type Theme struct {
	// Base colors
	Primary compat.CompleteAdaptiveColor

	// Text colors
	Text      compat.CompleteAdaptiveColor
	TextMuted compat.CompleteAdaptiveColor

	// Border colors
	Border compat.AdaptiveColor

	// Chart colors
	Marker compat.CompleteAdaptiveColor
	Label  compat.AdaptiveColor
	Axis   compat.AdaptiveColor

	Error compat.AdaptiveColor
}

// DefaultTheme is the adaptive color scheme used by default.
// Use Open Color palette when possible to define colors: https://yeun.github.io/open-color/
var DefaultTheme = Theme{
	Primary: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#B2003C"), ANSI256: lipgloss.Color("161"), ANSI: lipgloss.Color("13")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#F73D68"), ANSI256: lipgloss.Color("204"), ANSI: lipgloss.Color("13")},
	},

	// Text
	Text: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#111827"), ANSI256: lipgloss.Color("0"), ANSI: lipgloss.Color("0")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#F9FAFB"), ANSI256: lipgloss.Color("15"), ANSI: lipgloss.Color("15")},
	},
	TextMuted: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#6B7280"), ANSI256: lipgloss.Color("240"), ANSI: lipgloss.Color("8")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#9CA3AF"), ANSI256: lipgloss.Color("250"), ANSI: lipgloss.Color("7")},
	},

	// Borders
	Border: compat.AdaptiveColor{
		Light: lipgloss.Color("#D1D5DB"), // Gray-300
		Dark:  lipgloss.Color("#374151"), // Gray-700
	},

	// Charts
	Marker: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#B6598A"), ANSI256: lipgloss.Color("132"), ANSI: lipgloss.Color("5")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#E599F7"), ANSI256: lipgloss.Color("176"), ANSI: lipgloss.Color("13")},
	},
	Label: compat.AdaptiveColor{
		Light: lipgloss.Color("#868E96"), // Gray-6
		Dark:  lipgloss.Color("#ADB5BD"), // Gray-5
	},
	Axis: compat.AdaptiveColor{
		Light: lipgloss.Color("#495057"),
		Dark:  lipgloss.Color("#CED4DA"),
	},

	Error: compat.AdaptiveColor{
		Light: lipgloss.Color("#FF0000"),
		Dark:  lipgloss.Color("#FF0000"),
	},
}

// Styles holds all lipgloss styles derived from a theme
type Styles struct {
	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusItem lipgloss.Style
	StatusYear lipgloss.Style

	// Content
	ViewTitle lipgloss.Style
	ViewText  lipgloss.Style
	ViewMuted lipgloss.Style

	// Charts
	ChartAxis   lipgloss.Style
	ChartTick   lipgloss.Style
	ChartMarker lipgloss.Style
	ChartLabel  lipgloss.Style
	ChartPath   lipgloss.Style
	ChartTitle  lipgloss.Style

	// Tooltip
	TooltipTitle  lipgloss.Style
	TooltipBorder lipgloss.Style
	TooltipMeta   lipgloss.Style

	// Errors
	ErrorTitle  lipgloss.Style
	ErrorBorder lipgloss.Style
}

// NewStyles creates a Styles instance from the default adaptive theme.
func NewStyles() Styles {
	t := DefaultTheme
	return Styles{
		// Status bar
		StatusBar: lipgloss.NewStyle().
			Padding(0, 1),

		StatusKey: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Border).
			Padding(0, 1),

		StatusItem: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			PaddingRight(1),

		StatusYear: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			PaddingRight(1),

		// Content
		ViewTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		ViewText: lipgloss.NewStyle().
			Foreground(t.Text),

		ViewMuted: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		// Charts
		ChartAxis: lipgloss.NewStyle().
			Foreground(t.Axis),

		ChartTick: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		ChartMarker: lipgloss.NewStyle().
			Foreground(t.Marker),

		ChartLabel: lipgloss.NewStyle().
			Foreground(t.Label),

		ChartPath: lipgloss.NewStyle().
			Foreground(t.Marker),

		ChartTitle: lipgloss.NewStyle().
			Foreground(t.Text).
			Bold(true),

		// Tooltip
		TooltipTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TooltipBorder: lipgloss.NewStyle().
			Foreground(t.Border),

		TooltipMeta: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		ErrorTitle: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		ErrorBorder: lipgloss.NewStyle().
			Foreground(t.Error),
	}
}
