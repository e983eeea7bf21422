// Package jsonview renders a value as indented, syntax-highlighted JSON in a
// scrollable window.
package jsonview

import (
	"encoding/json"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/keyboardist/internal/mathutil"
)

// Styles holds styles for JSON tokens.
type Styles struct {
	Text        lipgloss.Style
	Key         lipgloss.Style
	String      lipgloss.Style
	Number      lipgloss.Style
	Bool        lipgloss.Style
	Null        lipgloss.Style
	Punctuation lipgloss.Style
}

// DefaultStyles returns unstyled token styles.
func DefaultStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Text:        plain,
		Key:         plain,
		String:      plain,
		Number:      plain,
		Bool:        plain,
		Null:        plain,
		Punctuation: plain,
	}
}

// Model is the JSON view component state.
type Model struct {
	styles Styles
	width  int
	height int
	offset int

	lines  []string
	tokens [][]chroma.Token
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new JSON view model.
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

// WithSize sets the dimensions.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) { m.styles = s }

// SetSize sets the dimensions and keeps the scroll offset in range.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ScrollBy(0)
}

// LineCount returns the number of formatted lines.
func (m Model) LineCount() int { return len(m.lines) }

// Offset returns the first visible line.
func (m Model) Offset() int { return m.offset }

// SetValue formats value as JSON and resets the scroll position. A nil value
// clears the view.
func (m *Model) SetValue(value any) error {
	m.lines, m.tokens, m.offset = nil, nil, 0
	if value == nil {
		return nil
	}

	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	text := string(b)
	m.lines = strings.Split(text, "\n")
	if tokens := highlight(text); len(tokens) == len(m.lines) {
		m.tokens = tokens
	}
	return nil
}

// ScrollBy moves the window by delta lines.
func (m *Model) ScrollBy(delta int) {
	maxOffset := max(len(m.lines)-m.height, 0)
	m.offset = mathutil.Clamp(m.offset+delta, 0, maxOffset)
}

// View renders the visible window, each line padded or truncated to width.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	out := make([]string, 0, m.height)
	for i := m.offset; i < len(m.lines) && len(out) < m.height; i++ {
		out = append(out, m.renderLine(i))
	}
	return strings.Join(out, "\n")
}

func (m Model) renderLine(i int) string {
	var line string
	if m.tokens != nil {
		var b strings.Builder
		for _, token := range m.tokens[i] {
			b.WriteString(m.styleFor(token).Render(token.Value))
		}
		line = b.String()
	} else {
		line = m.styles.Text.Render(m.lines[i])
	}

	line = ansi.Truncate(line, m.width, "…")
	if w := lipgloss.Width(line); w < m.width {
		line += strings.Repeat(" ", m.width-w)
	}
	return line
}

func (m Model) styleFor(token chroma.Token) lipgloss.Style {
	switch {
	case token.Type == chroma.NameTag:
		return m.styles.Key
	case token.Type.InSubCategory(chroma.LiteralString):
		return m.styles.String
	case token.Type.InSubCategory(chroma.LiteralNumber):
		return m.styles.Number
	case token.Type.InCategory(chroma.Keyword):
		if token.Value == "null" {
			return m.styles.Null
		}
		return m.styles.Bool
	case token.Type == chroma.Punctuation:
		return m.styles.Punctuation
	default:
		return m.styles.Text
	}
}

// highlight splits the token stream of text into lines.
func highlight(text string) [][]chroma.Token {
	if jsonLexer == nil {
		return nil
	}
	it, err := jsonLexer.Tokenise(nil, text)
	if err != nil {
		return nil
	}

	lines := [][]chroma.Token{nil}
	for token := it(); token != chroma.EOF; token = it() {
		for i, part := range strings.Split(token.Value, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part != "" {
				lines[len(lines)-1] = append(lines[len(lines)-1], chroma.Token{Type: token.Type, Value: part})
			}
		}
	}
	return lines
}

var jsonLexer = func() chroma.Lexer {
	if lexer := lexers.Get("json"); lexer != nil {
		return chroma.Coalesce(lexer)
	}
	return nil
}()
