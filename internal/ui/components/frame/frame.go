// Package frame renders a titled bordered box with optional meta content.
package frame

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// StyleState holds styles for a focus state.
type StyleState struct {
	Title  lipgloss.Style
	Meta   lipgloss.Style
	Border lipgloss.Style
}

// Styles holds focus-aware styles for a frame.
type Styles struct {
	Focused StyleState
	Blurred StyleState
}

// DefaultStyles returns unstyled frame styles with a bold title.
func DefaultStyles() Styles {
	state := StyleState{
		Title:  lipgloss.NewStyle().Bold(true),
		Meta:   lipgloss.NewStyle(),
		Border: lipgloss.NewStyle(),
	}
	return Styles{Focused: state, Blurred: state}
}

// Model is a bordered box. The title sits in the top border on the left,
// the meta text on the right.
type Model struct {
	styles  Styles
	title   string
	meta    string
	content string
	width   int
	height  int
	padding int
	focused bool
	border  lipgloss.Border
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new frame model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
		border: lipgloss.RoundedBorder(),
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

// WithTitle sets the title.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithMeta sets the meta text.
func WithMeta(meta string) Option {
	return func(m *Model) { m.meta = meta }
}

// WithContent sets the content.
func WithContent(content string) Option {
	return func(m *Model) { m.content = content }
}

// WithSize sets the outer width and height.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// WithPadding sets horizontal padding inside the frame.
func WithPadding(padding int) Option {
	return func(m *Model) { m.padding = padding }
}

// WithFocused sets the focus state.
func WithFocused(focused bool) Option {
	return func(m *Model) { m.focused = focused }
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) { m.styles = s }

// SetTitle sets the title.
func (m *Model) SetTitle(title string) { m.title = title }

// SetMeta sets the meta text.
func (m *Model) SetMeta(meta string) { m.meta = meta }

// SetContent sets the content.
func (m *Model) SetContent(content string) { m.content = content }

// SetSize sets the outer width and height.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetFocused sets the focus state.
func (m *Model) SetFocused(focused bool) { m.focused = focused }

// ContentSize returns the space available to content.
func (m Model) ContentSize() (width, height int) {
	return max(m.width-2-2*m.padding, 0), max(m.height-2, 0)
}

// View renders the frame. Content lines wider than the frame are truncated,
// missing lines are blank.
func (m Model) View() string {
	if m.width < 4 || m.height < 2 {
		return ""
	}

	state := m.styles.Blurred
	if m.focused {
		state = m.styles.Focused
	}
	inner := m.width - 2

	lines := make([]string, 0, m.height)
	lines = append(lines, m.top(state, inner))

	content := strings.Split(m.content, "\n")
	left := state.Border.Render(m.border.Left)
	right := state.Border.Render(m.border.Right)
	for i := range m.height - 2 {
		var line string
		if i < len(content) {
			line = content[i]
		}
		lines = append(lines, left+fit(line, inner, m.padding)+right)
	}

	lines = append(lines, state.Border.Render(
		m.border.BottomLeft+strings.Repeat(m.border.Bottom, inner)+m.border.BottomRight,
	))
	return strings.Join(lines, "\n")
}

func (m Model) top(state StyleState, inner int) string {
	available := inner - 2
	title := label(m.title)
	meta := label(m.meta)

	if lipgloss.Width(title)+lipgloss.Width(meta) > available {
		meta = ""
	}
	if lipgloss.Width(title) > available {
		title = ansi.Truncate(title, available, "…")
	}
	fill := max(available-lipgloss.Width(title)-lipgloss.Width(meta), 0)

	bar := m.border.Top
	var b strings.Builder
	b.WriteString(state.Border.Render(m.border.TopLeft + bar))
	b.WriteString(state.Title.Render(title))
	b.WriteString(state.Border.Render(strings.Repeat(bar, fill)))
	b.WriteString(state.Meta.Render(meta))
	b.WriteString(state.Border.Render(bar + m.border.TopRight))
	return b.String()
}

func fit(line string, width, padding int) string {
	if width <= 0 {
		return ""
	}
	inner := max(width-2*padding, 0)
	line = ansi.Truncate(line, inner, "…")
	pad := strings.Repeat(" ", padding)
	line = pad + line + pad
	if w := lipgloss.Width(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return line
}

func label(s string) string {
	if s == "" {
		return ""
	}
	return " " + s + " "
}
