// Package modal provides the selection modal of the keyboardists view. While
// open it traps focus: only its own bindings receive keys.
package modal

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kpumuk/keyboardist"
	"github.com/kpumuk/keyboardist/internal/ui/components/frame"
	"github.com/kpumuk/keyboardist/internal/ui/dialogs"
	"github.com/kpumuk/keyboardist/internal/ui/keymap"
)

// DialogID identifies the selection modal.
const DialogID dialogs.DialogID = "modal"

// ClosedMsg reports that the modal was dismissed.
type ClosedMsg struct {
	Selection string
}

// KeyMap holds the modal's own bindings.
type KeyMap struct {
	Close key.Binding
}

// Styles holds the styles used by the modal.
type Styles struct {
	Title  lipgloss.Style
	Border lipgloss.Style
	Text   lipgloss.Style
	Accent lipgloss.Style
	Muted  lipgloss.Style
}

// Model defines state for the selection modal.
type Model struct {
	styles    Styles
	keys      KeyMap
	trap      *dialogs.Trap
	title     string
	selection string
	detail    string

	width, height int
	row, col      int
	padding       int
	minWidth      int
	windowWidth   int
	windowHeight  int
}

// Option configures the modal.
type Option func(*Model)

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithTitle sets the modal title.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = strings.TrimSpace(title) }
}

// WithDetail sets the line shown under the selection.
func WithDetail(detail string) Option {
	return func(m *Model) { m.detail = strings.TrimSpace(detail) }
}

// WithMinWidth sets the minimum modal width.
func WithMinWidth(width int) Option {
	return func(m *Model) { m.minWidth = width }
}

// New creates a modal announcing selection.
func New(selection string, keys KeyMap, scopes keymap.Scopes, opts ...Option) (*Model, error) {
	m := &Model{
		title:     "Selected",
		selection: selection,
		keys:      keys,
		padding:   1,
		minWidth:  36,
	}
	for _, opt := range opts {
		opt(m)
	}

	bindings := keyboardist.Bindings{}
	err := keyboardist.Bind(bindings, keys.Close, func(ev *keyboardist.Event) error {
		ev.Cmd(dialogs.Close)
		ev.Cmd(func() tea.Msg { return ClosedMsg{Selection: m.selection} })
		return keyboardist.Suppress
	})
	if err != nil {
		return nil, err
	}
	trap, err := dialogs.NewTrap(bindings, scopes.Options(string(DialogID))...)
	if err != nil {
		return nil, err
	}
	m.trap = trap
	return m, nil
}

// Init attaches the modal's bindings.
func (m *Model) Init() tea.Cmd {
	m.trap.Open()
	return nil
}

// Close detaches the modal's bindings.
func (m *Model) Close() tea.Cmd {
	m.trap.Close()
	return nil
}

// Selection returns the announced selection.
func (m *Model) Selection() string {
	return m.selection
}

// Update handles window size and key messages.
func (m *Model) Update(msg tea.Msg) (dialogs.DialogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth, m.windowHeight = msg.Width, msg.Height
		m.applySize()
	case tea.KeyPressMsg, tea.KeyReleaseMsg:
		cmd, _ := m.trap.Dispatch(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the modal.
func (m *Model) View() string {
	m.applySize()
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	contentWidth := max(m.width-2-(m.padding*2), 1)
	state := frame.StyleState{Title: m.styles.Title, Meta: m.styles.Muted, Border: m.styles.Border}
	return frame.New(
		frame.WithStyles(frame.Styles{Focused: state, Blurred: state}),
		frame.WithTitle(m.title),
		frame.WithMeta(m.hint()),
		frame.WithContent(strings.Join(m.lines(contentWidth), "\n")),
		frame.WithPadding(m.padding),
		frame.WithSize(m.width, m.height),
		frame.WithFocused(true),
	).View()
}

// Position returns the dialog position.
func (m *Model) Position() (int, int) {
	return m.row, m.col
}

// ID returns the dialog ID.
func (m *Model) ID() dialogs.DialogID {
	return DialogID
}

func (m *Model) hint() string {
	h := m.keys.Close.Help()
	if h.Key == "" {
		return ""
	}
	return h.Key + " " + h.Desc
}

func (m *Model) lines(width int) []string {
	lines := []string{"", centerLine(m.styles.Accent.Render(m.selection), width)}
	if m.detail != "" {
		wrapped := lipgloss.Wrap(m.detail, width, " ")
		lines = append(lines, "")
		for line := range strings.SplitSeq(wrapped, "\n") {
			lines = append(lines, centerLine(m.styles.Text.Render(line), width))
		}
	}
	return append(lines, "")
}

func (m *Model) applySize() {
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return
	}

	dialogWidth := max(m.windowWidth/3, m.minWidth)
	dialogWidth = min(dialogWidth, m.windowWidth-4)
	if dialogWidth < 10 {
		dialogWidth = max(m.windowWidth-2, 10)
	}

	contentWidth := max(dialogWidth-2-(m.padding*2), 1)
	dialogHeight := len(m.lines(contentWidth)) + 2
	dialogHeight = min(dialogHeight, max(m.windowHeight-2, 3))

	m.width = dialogWidth
	m.height = dialogHeight
	m.row = max((m.windowHeight-dialogHeight)/2, 0)
	m.col = max((m.windowWidth-dialogWidth)/2, 0)
}

func centerLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if width <= 0 || lineWidth >= width {
		return line
	}
	return strings.Repeat(" ", (width-lineWidth)/2) + line
}
