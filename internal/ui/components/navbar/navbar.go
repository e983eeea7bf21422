// Package navbar renders the bottom navigation bar.
package navbar

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// ViewInfo holds information about a view for display in the navbar.
type ViewInfo struct {
	Name string
}

// Styles holds the styles needed by the navbar.
type Styles struct {
	Bar    lipgloss.Style
	Brand  lipgloss.Style
	Key    lipgloss.Style
	Item   lipgloss.Style
	Active lipgloss.Style
}

// DefaultStyles returns default styles for the navbar.
func DefaultStyles() Styles {
	return Styles{
		Bar:    lipgloss.NewStyle(),
		Brand:  lipgloss.NewStyle().Bold(true).PaddingRight(1),
		Key:    lipgloss.NewStyle().Padding(0, 1),
		Item:   lipgloss.NewStyle().PaddingRight(1),
		Active: lipgloss.NewStyle().Bold(true).PaddingRight(1),
	}
}

// Model defines state for the navbar component.
type Model struct {
	styles Styles
	brand  string
	views  []ViewInfo
	active int
	hints  []key.Binding
	width  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new navbar model.
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

// WithBrand sets the text shown before the views.
func WithBrand(brand string) Option {
	return func(m *Model) { m.brand = brand }
}

// WithViews sets the views to display.
func WithViews(views []ViewInfo) Option {
	return func(m *Model) { m.views = views }
}

// WithHints sets the key hints shown on the right.
func WithHints(hints ...key.Binding) Option {
	return func(m *Model) { m.hints = hints }
}

// WithWidth sets the width.
func WithWidth(w int) Option {
	return func(m *Model) { m.width = w }
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) { m.styles = s }

// SetActive marks the view at index i as active.
func (m *Model) SetActive(i int) { m.active = i }

// SetHints replaces the key hints.
func (m *Model) SetHints(hints ...key.Binding) { m.hints = hints }

// SetWidth sets the width.
func (m *Model) SetWidth(w int) { m.width = w }

// Height returns the height of the navbar (always 1).
func (m Model) Height() int { return 1 }

// View renders the navbar. Hints are dropped when they do not fit.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	var left strings.Builder
	left.WriteString(" ")
	if m.brand != "" {
		left.WriteString(m.styles.Brand.Render(m.brand))
	}
	for i, v := range m.views {
		left.WriteString(m.styles.Key.Render(strconv.Itoa(i + 1)))
		if i == m.active {
			left.WriteString(m.styles.Active.Render(v.Name))
		} else {
			left.WriteString(m.styles.Item.Render(v.Name))
		}
	}

	var right strings.Builder
	for _, h := range m.hints {
		if !h.Enabled() || h.Help().Key == "" {
			continue
		}
		right.WriteString(m.styles.Key.Render(h.Help().Key))
		right.WriteString(m.styles.Item.Render(h.Help().Desc))
	}

	line := left.String()
	gap := m.width - lipgloss.Width(line) - lipgloss.Width(right.String())
	if gap >= 1 {
		line += strings.Repeat(" ", gap) + right.String()
	}
	line = ansi.Truncate(line, m.width, "")
	if w := lipgloss.Width(line); w < m.width {
		line += strings.Repeat(" ", m.width-w)
	}
	return m.styles.Bar.Render(line)
}
