package table

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func row(id string, cells ...string) Row {
	return Row{ID: id, Cells: cells}
}

func numbered(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = row(fmt.Sprint(i), fmt.Sprint(i), fmt.Sprintf("name %d", i))
	}
	return rows
}

func newTable(width, height int) *Table {
	tbl := New([]Column{{Title: "#", Width: 3}, {Title: "Name"}})
	tbl.SetSize(width, height)
	return tbl
}

func TestViewLayout(t *testing.T) {
	t.Parallel()

	tbl := newTable(16, 5)
	tbl.SetRows([]Row{row("a", "1", "Ada Lovelace"), row("b", "2", "Grace")})

	want := []string{
		"#   Name        ",
		strings.Repeat("─", 16),
		"1   Ada Lovelace",
		"2   Grace       ",
	}
	if got := strings.Split(ansi.Strip(tbl.View()), "\n"); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("view =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestViewTruncatesCells(t *testing.T) {
	t.Parallel()

	tbl := newTable(10, 3)
	tbl.SetRows([]Row{row("a", "12345", "Margaret Hamilton")})
	for i, line := range strings.Split(tbl.View(), "\n") {
		if w := ansi.StringWidth(line); w != 10 {
			t.Fatalf("line %d: want width 10, got %d (%q)", i, w, ansi.Strip(line))
		}
	}
}

func TestEmptyMessage(t *testing.T) {
	t.Parallel()

	tbl := newTable(20, 4).SetEmptyMessage("No key events yet")
	if out := ansi.Strip(tbl.View()); !strings.Contains(out, "No key events yet") {
		t.Fatalf("view = %q", out)
	}
	if _, ok := tbl.Selected(); ok {
		t.Fatal("empty table has no selection")
	}
}

func TestCursorMovement(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		move func(*Table)
		want int
	}{
		"down":          {move: func(t *Table) { t.MoveBy(1) }, want: 1},
		"skip":          {move: func(t *Table) { t.MoveBy(3) }, want: 3},
		"stop at end":   {move: func(t *Table) { t.MoveBy(100) }, want: 9},
		"stop at start": {move: func(t *Table) { t.MoveBy(-1) }, want: 0},
		"bottom":        {move: (*Table).GotoBottom, want: 9},
		"top":           {move: func(t *Table) { t.GotoBottom(); t.GotoTop() }, want: 0},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tbl := newTable(20, 5)
			tbl.SetRows(numbered(10))
			tc.move(tbl)
			if got := tbl.Cursor(); got != tc.want {
				t.Fatalf("Cursor() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	t.Parallel()

	tbl := newTable(20, 5) // three visible rows
	tbl.SetRows(numbered(10))
	tbl.MoveBy(5)

	lines := strings.Split(ansi.Strip(tbl.View()), "\n")
	if len(lines) != 5 {
		t.Fatalf("want 5 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[4], "5 ") || !strings.HasPrefix(lines[2], "3 ") {
		t.Fatalf("visible rows:\n%s", strings.Join(lines[2:], "\n"))
	}
}

func TestSetRowsKeepsSelectionByID(t *testing.T) {
	t.Parallel()

	tbl := newTable(20, 5)
	tbl.SetRows([]Row{row("a", "1", "a"), row("b", "2", "b"), row("c", "3", "c")})
	tbl.SetCursor(1)

	tbl.SetRows([]Row{row("z", "0", "z"), row("a", "1", "a"), row("b", "2", "b")})
	if r, _ := tbl.Selected(); r.ID != "b" {
		t.Fatalf("selected = %q, want b", r.ID)
	}

	tbl.SetRows([]Row{row("x", "9", "x")})
	if r, _ := tbl.Selected(); r.ID != "x" {
		t.Fatalf("selected = %q, want x", r.ID)
	}
}
