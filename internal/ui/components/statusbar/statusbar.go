// Package statusbar renders the one-line summary of the key surface shown
// above the views.
package statusbar

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Data holds the values shown in the status bar.
type Data struct {
	KeyDownListeners int
	KeyUpListeners   int
	Events           int
	Monitoring       bool
	LastKey          string
	LastScope        string
	LastSuppressed   bool
	ReleaseEvents    bool
}

// Styles holds the styles needed by the status bar.
type Styles struct {
	Bar       lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Separator lipgloss.Style
}

// DefaultStyles returns default styles for the status bar.
func DefaultStyles() Styles {
	return Styles{
		Bar:       lipgloss.NewStyle(),
		Label:     lipgloss.NewStyle().Faint(true),
		Value:     lipgloss.NewStyle().Bold(true),
		Separator: lipgloss.NewStyle().Faint(true),
	}
}

// Model defines state for the status bar component.
type Model struct {
	styles Styles
	data   Data
	width  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new status bar model.
func New(opts ...Option) Model {
	m := Model{styles: DefaultStyles()}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithWidth sets the width.
func WithWidth(w int) Option {
	return func(m *Model) { m.width = w }
}

// WithData sets the initial data.
func WithData(d Data) Option {
	return func(m *Model) { m.data = d }
}

// SetWidth sets the width.
func (m *Model) SetWidth(w int) { m.width = w }

// SetData sets the displayed values.
func (m *Model) SetData(d Data) { m.data = d }

// Data returns the displayed values.
func (m Model) Data() Data { return m.data }

// Height returns the height of the status bar (always 1).
func (m Model) Height() int { return 1 }

// View renders the status bar, truncated and padded to the width.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	item := func(label, value string) string {
		return m.styles.Label.Render(label+" ") + m.styles.Value.Render(value)
	}
	items := []string{
		item("keydown", strconv.Itoa(m.data.KeyDownListeners)),
		item("keyup", strconv.Itoa(m.data.KeyUpListeners)),
	}
	releases := "no"
	if m.data.ReleaseEvents {
		releases = "yes"
	}
	items = append(items, item("releases", releases))
	if m.data.Monitoring {
		items = append(items, item("events", strconv.Itoa(m.data.Events)))
	}
	if m.data.LastKey != "" {
		last := m.data.LastKey
		if m.data.LastScope != "" {
			last += " → " + m.data.LastScope
		}
		if m.data.LastSuppressed {
			last += " (suppressed)"
		}
		items = append(items, item("last", last))
	}

	content := " " + strings.Join(items, m.styles.Separator.Render(" │ "))
	content = ansi.Truncate(content, m.width, "…")
	if pad := m.width - lipgloss.Width(content); pad > 0 {
		content += strings.Repeat(" ", pad)
	}
	return m.styles.Bar.Render(content)
}
