// Package table renders a selectable, vertically scrolling table. It has no
// key handling of its own: callers move the cursor from their key bindings.
package table

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/keyboardist/internal/mathutil"
)

// Column defines a table column. The last column takes the remaining width.
type Column struct {
	Title string
	Width int
}

// Row is one table row. ID keeps the selection stable across SetRows.
type Row struct {
	ID    string
	Cells []string
}

// Styles holds the styles needed by the table
type Styles struct {
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Header    lipgloss.Style
	Selected  lipgloss.Style
	Separator lipgloss.Style
}

// Table is a scrollable table component with selection support
type Table struct {
	columns      []Column
	rows         []Row
	styles       Styles
	width        int
	height       int
	cursor       int
	offset       int
	emptyMessage string
}

// New creates a new Table component
func New(columns []Column) *Table {
	return &Table{
		columns:      columns,
		emptyMessage: "No data",
	}
}

// SetEmptyMessage sets the message shown when there are no rows
func (t *Table) SetEmptyMessage(msg string) *Table {
	t.emptyMessage = msg
	return t
}

// SetStyles updates the table styles
func (t *Table) SetStyles(styles Styles) {
	t.styles = styles
}

// SetSize sets the table dimensions, header included.
func (t *Table) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.scrollToCursor()
}

// SetRows replaces the rows. The cursor follows the previously selected row
// ID when it is still present.
func (t *Table) SetRows(rows []Row) {
	selected, ok := t.Selected()
	t.rows = rows
	if ok && selected.ID != "" {
		for i, r := range rows {
			if r.ID == selected.ID {
				t.cursor = i
				break
			}
		}
	}
	t.cursor = mathutil.Clamp(t.cursor, 0, max(len(rows)-1, 0))
	t.scrollToCursor()
}

// Selected returns the row under the cursor.
func (t *Table) Selected() (Row, bool) {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return Row{}, false
	}
	return t.rows[t.cursor], true
}

// Cursor returns the selected row index.
func (t *Table) Cursor() int {
	return t.cursor
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.rows)
}

// SetCursor selects row i, clamped to the table.
func (t *Table) SetCursor(i int) {
	t.cursor = mathutil.Clamp(i, 0, max(len(t.rows)-1, 0))
	t.scrollToCursor()
}

// MoveBy moves the cursor n rows, stopping at either end.
func (t *Table) MoveBy(n int) {
	t.SetCursor(t.cursor + n)
}

// GotoTop selects the first row.
func (t *Table) GotoTop() {
	t.SetCursor(0)
}

// GotoBottom selects the last row.
func (t *Table) GotoBottom() {
	t.SetCursor(len(t.rows) - 1)
}

// View renders the header, a separator, and the visible rows.
func (t *Table) View() string {
	if t.width <= 0 || t.height <= 0 {
		return ""
	}
	widths := t.columnWidths()

	titles := make([]string, len(t.columns))
	for i, c := range t.columns {
		titles[i] = c.Title
	}
	lines := []string{
		t.styles.Header.Render(t.renderCells(titles, widths)),
		t.styles.Separator.Render(strings.Repeat("─", t.width)),
	}

	if len(t.rows) == 0 {
		lines = append(lines, t.styles.Muted.Render(pad(t.emptyMessage, t.width)))
		return strings.Join(lines[:min(len(lines), t.height)], "\n")
	}

	end := min(t.offset+t.viewport(), len(t.rows))
	for i := t.offset; i < end; i++ {
		line := t.renderCells(t.rows[i].Cells, widths)
		if i == t.cursor {
			lines = append(lines, t.styles.Selected.Render(line))
		} else {
			lines = append(lines, t.styles.Text.Render(line))
		}
	}
	return strings.Join(lines[:min(len(lines), t.height)], "\n")
}

func (t *Table) viewport() int {
	return max(t.height-2, 1)
}

func (t *Table) scrollToCursor() {
	vp := t.viewport()
	if t.cursor < t.offset {
		t.offset = t.cursor
	} else if t.cursor >= t.offset+vp {
		t.offset = t.cursor - vp + 1
	}
	t.offset = mathutil.Clamp(t.offset, 0, max(len(t.rows)-vp, 0))
}

func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.columns))
	used := 0
	for i, c := range t.columns {
		if i == len(t.columns)-1 {
			break
		}
		widths[i] = c.Width
		used += c.Width + 1
	}
	if n := len(widths); n > 0 {
		widths[n-1] = max(t.width-used, 0)
	}
	return widths
}

func (t *Table) renderCells(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = pad(ansi.Truncate(cell, w, "…"), w)
	}
	return ansi.Truncate(pad(strings.Join(parts, " "), t.width), t.width, "")
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
