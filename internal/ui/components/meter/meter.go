// Package meter renders a horizontal gauge.
package meter

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kpumuk/keyboardist/internal/mathutil"
)

// Styles holds the styles needed by the meter.
type Styles struct {
	Label   lipgloss.Style
	Fill    lipgloss.Style
	Empty   lipgloss.Style
	Percent lipgloss.Style
}

// DefaultStyles returns default styles for the meter.
func DefaultStyles() Styles {
	return Styles{
		Label:   lipgloss.NewStyle().PaddingRight(1),
		Fill:    lipgloss.NewStyle(),
		Empty:   lipgloss.NewStyle().Faint(true),
		Percent: lipgloss.NewStyle().PaddingLeft(1),
	}
}

// Model defines state for the meter component.
type Model struct {
	styles Styles
	label  string
	value  float64
	width  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new meter model.
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

// WithLabel sets the text before the bar.
func WithLabel(label string) Option {
	return func(m *Model) { m.label = label }
}

// WithWidth sets the total width.
func WithWidth(w int) Option {
	return func(m *Model) { m.width = w }
}

// SetWidth sets the total width.
func (m *Model) SetWidth(w int) { m.width = w }

// SetValue sets the fill ratio, clamped to [0, 1].
func (m *Model) SetValue(v float64) { m.value = mathutil.Clamp(v, 0, 1) }

// Value returns the fill ratio.
func (m Model) Value() float64 { return m.value }

// Full reports whether the meter is completely filled.
func (m Model) Full() bool { return m.value >= 1 }

// View renders the label, the bar and the percentage on one line.
func (m Model) View() string {
	label := ""
	if m.label != "" {
		label = m.styles.Label.Render(m.label)
	}
	percent := m.styles.Percent.Render(fmt.Sprintf("%3d%%", int(math.Round(m.value*100))))

	bar := max(m.width-lipgloss.Width(label)-lipgloss.Width(percent), 0)
	filled := int(math.Round(m.value * float64(bar)))
	return label +
		m.styles.Fill.Render(strings.Repeat("█", filled)) +
		m.styles.Empty.Render(strings.Repeat("░", bar-filled)) +
		percent
}
