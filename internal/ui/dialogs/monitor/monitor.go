// Package monitor provides a quake-style console listing the key events seen
// by binding scopes.
package monitor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kpumuk/keyboardist"
	"github.com/kpumuk/keyboardist/internal/keylog"
	"github.com/kpumuk/keyboardist/internal/ui/components/frame"
	"github.com/kpumuk/keyboardist/internal/ui/components/jsonview"
	"github.com/kpumuk/keyboardist/internal/ui/components/table"
	"github.com/kpumuk/keyboardist/internal/ui/dialogs"
	"github.com/kpumuk/keyboardist/internal/ui/keymap"
)

// DialogID identifies the key monitor dialog.
const DialogID dialogs.DialogID = "monitor"

const (
	minHeight   = 10
	detailWidth = 34
)

// KeyMap holds the dialog's own bindings.
type KeyMap struct {
	Close key.Binding
	Up    key.Binding
	Down  key.Binding
	Clear key.Binding
}

// Styles holds the styles used by the key monitor.
type Styles struct {
	Title          lipgloss.Style
	Border         lipgloss.Style
	Text           lipgloss.Style
	Muted          lipgloss.Style
	TableHeader    lipgloss.Style
	TableSelected  lipgloss.Style
	TableSeparator lipgloss.Style
	Suppressed     lipgloss.Style
	JSON           jsonview.Styles
}

var columns = []table.Column{
	{Title: "#", Width: 5},
	{Title: "Time", Width: 12},
	{Title: "Scope", Width: 14},
	{Title: "Event", Width: 7},
	{Title: "Keys", Width: 16},
	{Title: "Status"},
}

// Model defines state for the key monitor.
type Model struct {
	styles Styles
	log    *keylog.Log
	trap   *dialogs.Trap
	table  *table.Table
	detail jsonview.Model
	now    func() time.Time

	width, height int
	windowWidth   int
	windowHeight  int
}

// Option configures the key monitor.
type Option func(*Model)

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithClock sets the time source used for the last event age.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// New creates a key monitor reading from log.
func New(log *keylog.Log, keys KeyMap, scopes keymap.Scopes, opts ...Option) (*Model, error) {
	m := &Model{
		log:    log,
		table:  table.New(columns).SetEmptyMessage("No key events recorded."),
		detail: jsonview.New(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.table.SetStyles(table.Styles{
		Text:      m.styles.Text,
		Muted:     m.styles.Muted,
		Header:    m.styles.TableHeader,
		Selected:  m.styles.TableSelected,
		Separator: m.styles.TableSeparator,
	})
	m.detail.SetStyles(m.styles.JSON)

	bindings := keyboardist.Bindings{}
	err := errors.Join(
		keyboardist.Bind(bindings, keys.Close, func(ev *keyboardist.Event) error {
			ev.Cmd(dialogs.Close)
			return keyboardist.Suppress
		}),
		keyboardist.Bind(bindings, keys.Up, keyboardist.Suppressing(func() { m.table.MoveBy(-1) })),
		keyboardist.Bind(bindings, keys.Down, keyboardist.Suppressing(func() { m.table.MoveBy(1) })),
		keyboardist.Bind(bindings, keys.Clear, keyboardist.Suppressing(m.log.Clear)),
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

// Init attaches the dialog's bindings and selects the newest event.
func (m *Model) Init() tea.Cmd {
	m.trap.Open()
	m.sync()
	m.table.GotoBottom()
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
		// The trap's own scope records this key too, after the table moved.
		cmd, _ := m.trap.Dispatch(msg)
		m.sync()
		return m, cmd
	}
	return m, nil
}

// View renders the console.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	m.sync()

	contentWidth := max(m.width-4, 1)
	contentHeight := max(m.height-2, 1)
	jsonWidth := min(detailWidth, contentWidth/2)
	tableWidth := max(contentWidth-jsonWidth-1, 1)

	m.table.SetSize(tableWidth, contentHeight)
	m.detail.SetSize(jsonWidth, contentHeight)
	if row, ok := m.table.Selected(); ok {
		if entry, ok := m.entry(row.ID); ok {
			_ = m.detail.SetValue(entry)
		}
	} else {
		_ = m.detail.SetValue(nil)
	}

	left := fill(m.table.View(), tableWidth, contentHeight)
	right := fill(m.detail.View(), jsonWidth, contentHeight)
	divider := m.styles.Muted.Render(strings.TrimSuffix(strings.Repeat("│\n", contentHeight), "\n"))
	content := lipgloss.JoinHorizontal(lipgloss.Top, left, divider, right)

	state := frame.StyleState{Title: m.styles.Title, Meta: m.styles.Muted, Border: m.styles.Border}
	return frame.New(
		frame.WithStyles(frame.Styles{Focused: state, Blurred: state}),
		frame.WithTitle("Key Monitor"),
		frame.WithMeta(m.meta()),
		frame.WithContent(content),
		frame.WithPadding(1),
		frame.WithSize(m.width, m.height),
		frame.WithFocused(true),
	).View()
}

// Position returns the dialog position.
func (m *Model) Position() (int, int) {
	return 0, 0
}

// ID returns the dialog ID.
func (m *Model) ID() dialogs.DialogID {
	return DialogID
}

func (m *Model) applySize() {
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return
	}
	m.width = m.windowWidth
	m.height = max(min(max(m.windowHeight/2, minHeight), m.windowHeight-1), 1)
}

// sync refreshes the rows from the log, following the tail when the newest
// event was selected.
func (m *Model) sync() {
	followTail := m.table.RowCount() == 0 || m.table.Cursor() >= m.table.RowCount()-1

	entries := m.log.Entries()
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		seq := strconv.FormatUint(e.Seq, 10)
		rows = append(rows, table.Row{
			ID: seq,
			Cells: []string{
				seq,
				e.Time.Format("15:04:05.000"),
				e.Scope,
				e.Event,
				e.Combo(),
				m.status(e),
			},
		})
	}
	m.table.SetRows(rows)
	if followTail {
		m.table.GotoBottom()
	}
}

func (m *Model) status(e keylog.Entry) string {
	switch {
	case e.Suppressed:
		return m.styles.Suppressed.Render("suppressed " + e.Matched)
	case e.Matched != "":
		return "matched " + e.Matched
	}
	return ""
}

func (m *Model) entry(id string) (keylog.Entry, bool) {
	for _, e := range m.log.Entries() {
		if strconv.FormatUint(e.Seq, 10) == id {
			return e, true
		}
	}
	return keylog.Entry{}, false
}

func (m *Model) meta() string {
	entries := m.log.Entries()
	if len(entries) == 0 {
		return "0 events"
	}
	last := entries[len(entries)-1]
	return fmt.Sprintf("%d events, last %s ago", len(entries), keylog.FormatAge(m.now(), last.Time))
}

// fill pads a block to exactly width x height.
func fill(block string, width, height int) string {
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(block)
}
