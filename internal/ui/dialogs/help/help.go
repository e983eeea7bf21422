// Package help provides a key bindings help dialog.
package help

import (
	"errors"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/keyboardist"
	"github.com/kpumuk/keyboardist/internal/mathutil"
	"github.com/kpumuk/keyboardist/internal/ui/components/frame"
	"github.com/kpumuk/keyboardist/internal/ui/dialogs"
	"github.com/kpumuk/keyboardist/internal/ui/keymap"
)

// DialogID identifies the help dialog.
const DialogID dialogs.DialogID = "help"

// Column describes which column to render a section into.
type Column int

const (
	// ColumnAuto lets the dialog decide placement.
	ColumnAuto Column = iota
	// ColumnLeft forces placement in the left column.
	ColumnLeft
	// ColumnRight forces placement in the right column.
	ColumnRight
)

// Section groups bindings or custom lines under a title.
type Section struct {
	Title    string
	Bindings []key.Binding
	Lines    []string
	Column   Column
}

// KeyMap holds the dialog's own bindings.
type KeyMap struct {
	Close key.Binding
	Up    key.Binding
	Down  key.Binding
}

// Styles holds the styles used by the help dialog.
type Styles struct {
	Title   lipgloss.Style
	Border  lipgloss.Style
	Section lipgloss.Style
	Key     lipgloss.Style
	Desc    lipgloss.Style
}

const (
	minWidth  = 56
	minHeight = 12
	columnGap = 4
)

// Model defines state for the help dialog component.
type Model struct {
	styles   Styles
	sections []Section
	trap     *dialogs.Trap

	width, height int
	row, col      int
	yOffset       int
	windowWidth   int
	windowHeight  int
}

// Option configures the help dialog.
type Option func(*Model)

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithSections sets the help sections.
func WithSections(sections ...Section) Option {
	return func(m *Model) { m.sections = sections }
}

// New creates a help dialog whose keys are handled by its own scope.
func New(keys KeyMap, scopes keymap.Scopes, opts ...Option) (*Model, error) {
	m := &Model{}
	for _, opt := range opts {
		opt(m)
	}

	bindings := keyboardist.Bindings{}
	err := errors.Join(
		keyboardist.Bind(bindings, keys.Close, func(ev *keyboardist.Event) error {
			ev.Cmd(dialogs.Close)
			return keyboardist.Suppress
		}),
		keyboardist.Bind(bindings, keys.Up, keyboardist.Suppressing(func() { m.scrollBy(-1) })),
		keyboardist.Bind(bindings, keys.Down, keyboardist.Suppressing(func() { m.scrollBy(1) })),
	)
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

// Init attaches the dialog's bindings.
func (m *Model) Init() tea.Cmd {
	m.trap.Open()
	return nil
}

// Close detaches the dialog's bindings.
func (m *Model) Close() tea.Cmd {
	m.trap.Close()
	return nil
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

// View renders the help dialog.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	lines := m.lines()
	visible := m.contentHeight()
	m.yOffset = mathutil.Clamp(m.yOffset, 0, max(len(lines)-visible, 0))
	lines = lines[m.yOffset:min(m.yOffset+visible, len(lines))]

	state := frame.StyleState{Title: m.styles.Title, Border: m.styles.Border}
	return frame.New(
		frame.WithStyles(frame.Styles{Focused: state, Blurred: state}),
		frame.WithTitle("Help"),
		frame.WithContent(strings.Join(lines, "\n")),
		frame.WithPadding(1),
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

func (m *Model) applySize() {
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return
	}
	m.width = min(max(m.windowWidth*2/3, minWidth), m.windowWidth-4)
	m.height = min(max(m.windowHeight/2, minHeight), m.windowHeight-4)
	if m.width < 10 || m.height < 5 {
		m.width = max(m.windowWidth-2, 10)
		m.height = max(m.windowHeight-2, 5)
	}
	m.row = max((m.windowHeight-m.height)/2, 0)
	m.col = max((m.windowWidth-m.width)/2, 0)
	m.scrollBy(0)
}

func (m *Model) contentWidth() int {
	return max(m.width-4, 1)
}

func (m *Model) contentHeight() int {
	return max(m.height-2, 0)
}

func (m *Model) scrollBy(delta int) {
	maxOffset := max(len(m.lines())-m.contentHeight(), 0)
	m.yOffset = mathutil.Clamp(m.yOffset+delta, 0, maxOffset)
}

// lines lays the sections out in two columns.
func (m *Model) lines() []string {
	width := m.contentWidth()
	if len(m.sections) == 0 {
		return nil
	}

	gap := columnGap
	if width <= gap+10 {
		gap = 2
	}
	columnWidth := max((width-gap)/2, 1)
	left, right := splitSections(m.sections)
	leftLines := renderSections(left, columnWidth, m.styles)
	rightLines := renderSections(right, columnWidth, m.styles)

	rows := max(len(leftLines), len(rightLines))
	out := make([]string, 0, rows)
	for i := range rows {
		var l, r string
		if i < len(leftLines) {
			l = leftLines[i]
		}
		if i < len(rightLines) {
			r = rightLines[i]
		}
		out = append(out, padRight(l, columnWidth)+strings.Repeat(" ", gap)+padRight(r, columnWidth))
	}
	return out
}

// splitSections places auto sections into whichever column is shorter.
func splitSections(sections []Section) (left, right []Section) {
	var auto []Section
	for _, s := range sections {
		switch s.Column {
		case ColumnLeft:
			left = append(left, s)
		case ColumnRight:
			right = append(right, s)
		default:
			auto = append(auto, s)
		}
	}
	for _, s := range auto {
		if sectionHeight(left) <= sectionHeight(right) {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	return left, right
}

func sectionHeight(sections []Section) int {
	n := 0
	for _, s := range sections {
		n += 2 + len(s.Lines) + len(s.Bindings)
	}
	return n
}

func renderSections(sections []Section, width int, styles Styles) []string {
	var lines []string
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		if title := strings.TrimSpace(section.Title); title != "" {
			lines = append(lines, ansi.Truncate(styles.Section.Render(title), width, ""))
		}
		for _, line := range section.Lines {
			lines = append(lines, ansi.Truncate(line, width, ""))
		}

		keyWidth := 0
		for _, b := range section.Bindings {
			if b.Enabled() {
				keyWidth = max(keyWidth, ansi.StringWidth(b.Help().Key))
			}
		}
		for _, b := range section.Bindings {
			h := b.Help()
			if !b.Enabled() || h.Key == "" {
				continue
			}
			k := styles.Key.Render(padRight(h.Key, keyWidth))
			lines = append(lines, ansi.Truncate(k+" "+styles.Desc.Render(h.Desc), width, ""))
		}
	}
	return lines
}

func padRight(value string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(value)
	if w > width {
		return ansi.Truncate(value, width, "")
	}
	return value + strings.Repeat(" ", width-w)
}
