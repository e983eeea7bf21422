// Package views holds the demo screens. Each view owns binding scopes that
// are attached to the shared surface while the view is mounted.
package views

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kpumuk/keyboardist/internal/config"
	"github.com/kpumuk/keyboardist/internal/ui/dialogs/help"
)

// Styles holds the view-related styles from the theme
type Styles struct {
	Title          lipgloss.Style
	Text           lipgloss.Style
	Muted          lipgloss.Style
	KeyCap         lipgloss.Style
	TableHeader    lipgloss.Style
	TableSelected  lipgloss.Style
	TableSeparator lipgloss.Style
	BorderStyle    lipgloss.Style
	FocusBorder    lipgloss.Style
	MeterFill      lipgloss.Style
	MeterEmpty     lipgloss.Style
	BeatOn         lipgloss.Style
	BeatOff        lipgloss.Style
}

// View defines the interface that all views must implement
type View interface {
	// Init returns an initial command for the view
	Init() tea.Cmd

	// Update handles messages and returns the updated view and any commands
	Update(msg tea.Msg) (View, tea.Cmd)

	// View renders the view as a string
	View() string

	// Name returns the display name for this view (shown in navbar)
	Name() string

	// ShortHelp returns keybindings to show in the navbar
	ShortHelp() []key.Binding

	// HelpSection returns the view's section of the help dialog
	HelpSection() help.Section

	// SetSize updates the view dimensions
	SetSize(width, height int) View

	// SetStyles updates the view styles
	SetStyles(styles Styles) View

	// Mount attaches the view's bindings when it becomes active
	Mount() tea.Cmd

	// Unmount detaches the view's bindings when it is switched away
	Unmount()

	// Rebind applies key bindings from a reloaded configuration
	Rebind(cfg config.Config) error

	// InputFocused reports whether a text input owns printable keys
	InputFocused() bool
}
