// Package errorpopup overlays a centered error box on top of other content.
package errorpopup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const maxWidth = 70

// Styles holds the styles needed by the error popup.
type Styles struct {
	Title   lipgloss.Style
	Message lipgloss.Style
	Hint    lipgloss.Style
	Border  lipgloss.Style
}

// DefaultStyles returns default styles for the error popup.
func DefaultStyles() Styles {
	errorColor := lipgloss.AdaptiveColor{Light: "#e03131", Dark: "#ff6b6b"}
	return Styles{
		Title:   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
		Message: lipgloss.NewStyle(),
		Hint:    lipgloss.NewStyle().Faint(true),
		Border:  lipgloss.NewStyle().Foreground(errorColor),
	}
}

// Model defines state for the error popup component.
type Model struct {
	styles     Styles
	title      string
	message    string
	hint       string
	background string
	width      int
	height     int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new error popup model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
		title:  "Error",
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithSize sets the width and height.
func WithSize(w, h int) Option {
	return func(m *Model) {
		m.width = w
		m.height = h
	}
}

// WithTitle sets the title shown in the top border.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithMessage sets the error message.
func WithMessage(msg string) Option {
	return func(m *Model) { m.message = msg }
}

// WithHint sets the faint line below the message.
func WithHint(hint string) Option {
	return func(m *Model) { m.hint = hint }
}

// SetSize sets the width and height.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetMessage sets the error message to display. An empty message hides the
// popup.
func (m *Model) SetMessage(msg string) { m.message = msg }

// SetBackground sets the content to overlay on.
func (m *Model) SetBackground(content string) { m.background = content }

// Message returns the current error message.
func (m Model) Message() string { return m.message }

// HasError returns true if there is an error message to display.
func (m Model) HasError() bool { return m.message != "" }

// View renders the popup centered over the background. Without a message it
// returns the background unchanged.
func (m Model) View() string {
	if m.message == "" {
		return m.background
	}
	width := min(m.width, maxWidth)
	if width < 6 || m.height <= 0 {
		return m.background
	}

	box := strings.Split(m.renderBox(width), "\n")
	if len(box) > m.height {
		box = box[:m.height]
	}

	lines := strings.Split(m.background, "\n")
	for len(lines) < m.height {
		lines = append(lines, "")
	}
	top := (m.height - len(box)) / 2
	for i, line := range box {
		lines[top+i] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderBox(width int) string {
	border := lipgloss.RoundedBorder()
	inner := width - 2

	title := m.styles.Title.Render(" " + m.title + " ")
	fill := max(inner-1-lipgloss.Width(title), 0)
	top := m.styles.Border.Render(border.TopLeft+border.Top) + title +
		m.styles.Border.Render(strings.Repeat(border.Top, fill)+border.TopRight)

	body := m.styles.Message.Render(m.message)
	if m.hint != "" {
		body += "\n\n" + m.styles.Hint.Render(m.hint)
	}
	body = lipgloss.NewStyle().Width(inner).Padding(0, 1).Render(body)

	left := m.styles.Border.Render(border.Left)
	right := m.styles.Border.Render(border.Right)
	rows := []string{top}
	for _, line := range strings.Split(body, "\n") {
		if w := lipgloss.Width(line); w < inner {
			line += strings.Repeat(" ", inner-w)
		}
		rows = append(rows, left+line+right)
	}
	rows = append(rows, m.styles.Border.Render(border.BottomLeft+strings.Repeat(border.Bottom, inner)+border.BottomRight))
	return strings.Join(rows, "\n")
}
