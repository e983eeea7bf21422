// Package theme holds the colors and styles of the keyboardist demo.
package theme

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/compat"
)

// Theme defines all colors used throughout the UI.
type Theme struct {
	Primary compat.CompleteAdaptiveColor

	Text      compat.CompleteAdaptiveColor
	TextMuted compat.CompleteAdaptiveColor

	StatusBg compat.CompleteAdaptiveColor
	StatusFg compat.CompleteAdaptiveColor

	Border      compat.AdaptiveColor
	BorderFocus compat.CompleteAdaptiveColor

	SelectedFg compat.AdaptiveColor
	SelectedBg compat.AdaptiveColor

	// Love meter and beat indicator
	Love compat.AdaptiveColor
	Beat compat.AdaptiveColor

	Success compat.AdaptiveColor
	Error   compat.AdaptiveColor
}

// DefaultTheme is the adaptive color scheme used by default.
// Colors come from the Open Color palette: https://yeun.github.io/open-color/
var DefaultTheme = Theme{
	Primary: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#5f3dc4"), ANSI256: lipgloss.Color("55"), ANSI: lipgloss.Color("5")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#9775fa"), ANSI256: lipgloss.Color("141"), ANSI: lipgloss.Color("13")},
	},

	Text: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#212529"), ANSI256: lipgloss.Color("0"), ANSI: lipgloss.Color("0")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#f8f9fa"), ANSI256: lipgloss.Color("15"), ANSI: lipgloss.Color("15")},
	},
	TextMuted: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#868e96"), ANSI256: lipgloss.Color("244"), ANSI: lipgloss.Color("8")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#adb5bd"), ANSI256: lipgloss.Color("250"), ANSI: lipgloss.Color("7")},
	},

	StatusBg: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#7048e8"), ANSI256: lipgloss.Color("98"), ANSI: lipgloss.Color("5")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#5f3dc4"), ANSI256: lipgloss.Color("55"), ANSI: lipgloss.Color("5")},
	},
	StatusFg: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#f8f9fa"), ANSI256: lipgloss.Color("255"), ANSI: lipgloss.Color("15")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#f8f9fa"), ANSI256: lipgloss.Color("255"), ANSI: lipgloss.Color("15")},
	},

	Border: compat.AdaptiveColor{
		Light: lipgloss.Color("#ced4da"), // gray 4
		Dark:  lipgloss.Color("#495057"), // gray 7
	},
	BorderFocus: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#5f3dc4"), ANSI256: lipgloss.Color("55"), ANSI: lipgloss.Color("5")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#9775fa"), ANSI256: lipgloss.Color("141"), ANSI: lipgloss.Color("13")},
	},

	SelectedFg: compat.AdaptiveColor{
		Light: lipgloss.Color("#f8f9fa"),
		Dark:  lipgloss.Color("#f8f9fa"),
	},
	SelectedBg: compat.AdaptiveColor{
		Light: lipgloss.Color("#7048e8"),
		Dark:  lipgloss.Color("#6741d9"),
	},

	Love: compat.AdaptiveColor{
		Light: lipgloss.Color("#d6336c"),
		Dark:  lipgloss.Color("#f06595"),
	},
	Beat: compat.AdaptiveColor{
		Light: lipgloss.Color("#f08c00"),
		Dark:  lipgloss.Color("#ffd43b"),
	},

	Success: compat.AdaptiveColor{
		Light: lipgloss.Color("#2f9e44"),
		Dark:  lipgloss.Color("#51cf66"),
	},
	Error: compat.AdaptiveColor{
		Light: lipgloss.Color("#e03131"),
		Dark:  lipgloss.Color("#ff6b6b"),
	},
}

// Styles holds all lipgloss styles derived from a theme
type Styles struct {
	// Status bar
	StatusBar   lipgloss.Style
	StatusLabel lipgloss.Style
	StatusValue lipgloss.Style

	// Navbar
	NavBar    lipgloss.Style
	NavBrand  lipgloss.Style
	NavItem   lipgloss.Style
	NavActive lipgloss.Style
	NavKey    lipgloss.Style

	// Content
	ViewTitle lipgloss.Style
	ViewText  lipgloss.Style
	ViewMuted lipgloss.Style
	KeyCap    lipgloss.Style

	// Table
	TableHeader    lipgloss.Style
	TableSelected  lipgloss.Style
	TableSeparator lipgloss.Style

	// Layout helpers
	BorderStyle lipgloss.Style
	FocusBorder lipgloss.Style

	// Meters
	MeterFill  lipgloss.Style
	MeterEmpty lipgloss.Style
	BeatOn     lipgloss.Style
	BeatOff    lipgloss.Style

	// Key monitor
	Suppressed lipgloss.Style
	Passed     lipgloss.Style

	// Errors
	ErrorTitle  lipgloss.Style
	ErrorBorder lipgloss.Style
}

// NewStyles creates a Styles instance from the default adaptive theme.
func NewStyles() Styles {
	t := DefaultTheme
	return Styles{
		StatusBar: lipgloss.NewStyle().
			Foreground(t.StatusFg).
			Background(t.StatusBg),

		StatusLabel: lipgloss.NewStyle().
			Foreground(t.StatusFg).
			Background(t.StatusBg),

		StatusValue: lipgloss.NewStyle().
			Foreground(t.StatusFg).
			Background(t.StatusBg).
			Bold(true),

		NavBar: lipgloss.NewStyle(),

		NavBrand: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			PaddingRight(1),

		NavItem: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			PaddingRight(1),

		NavActive: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			PaddingRight(1),

		NavKey: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Border).
			Padding(0, 1),

		ViewTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		ViewText: lipgloss.NewStyle().
			Foreground(t.Text),

		ViewMuted: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		KeyCap: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Border).
			Padding(0, 1),

		TableHeader: lipgloss.NewStyle().
			Foreground(t.Text).
			Bold(true),

		TableSelected: lipgloss.NewStyle().
			Foreground(t.SelectedFg).
			Background(t.SelectedBg),

		TableSeparator: lipgloss.NewStyle().
			Foreground(t.Border),

		BorderStyle: lipgloss.NewStyle().
			Foreground(t.Border),

		FocusBorder: lipgloss.NewStyle().
			Foreground(t.BorderFocus),

		MeterFill: lipgloss.NewStyle().
			Foreground(t.Love),

		MeterEmpty: lipgloss.NewStyle().
			Foreground(t.Border),

		BeatOn: lipgloss.NewStyle().
			Foreground(t.Beat).
			Bold(true),

		BeatOff: lipgloss.NewStyle().
			Foreground(t.Border),

		Suppressed: lipgloss.NewStyle().
			Foreground(t.Success),

		Passed: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		ErrorTitle: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		ErrorBorder: lipgloss.NewStyle().
			Foreground(t.Error),
	}
}
