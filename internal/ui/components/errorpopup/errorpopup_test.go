package errorpopup

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestHasError(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		message string
		want    bool
	}{
		"empty":  {message: "", want: false},
		"filled": {message: "boom", want: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			m := New(WithMessage(tc.message))
			if got := m.HasError(); got != tc.want {
				t.Fatalf("HasError() = %v, want %v", got, tc.want)
			}
			if got := m.Message(); got != tc.message {
				t.Fatalf("Message() = %q, want %q", got, tc.message)
			}
		})
	}
}

func TestViewWithoutMessageReturnsBackground(t *testing.T) {
	t.Parallel()

	m := New(WithSize(40, 3))
	m.SetBackground("a\nb\nc")
	if got := m.View(); got != "a\nb\nc" {
		t.Fatalf("View() = %q", got)
	}
}

func TestViewOverlaysCenteredBox(t *testing.T) {
	t.Parallel()

	background := strings.TrimSuffix(strings.Repeat("background\n", 11), "\n")
	m := New(
		WithSize(80, 11),
		WithTitle("Config Error"),
		WithMessage(`bindings.bpm.incrment: unknown binding action`),
		WithHint("previous bindings stay active"),
	)
	m.SetBackground(background)

	lines := strings.Split(ansi.Strip(m.View()), "\n")
	if len(lines) != 11 {
		t.Fatalf("want 11 lines, got %d", len(lines))
	}

	// message, blank, hint plus two borders
	const boxHeight = 5
	top := (11 - boxHeight) / 2
	if lines[top-1] != "background" || lines[top+boxHeight] != "background" {
		t.Fatalf("background rows not preserved:\n%s", strings.Join(lines, "\n"))
	}
	if !strings.Contains(lines[top], "╭─ Config Error ─") {
		t.Fatalf("top border = %q", lines[top])
	}
	if !strings.Contains(lines[top+1], "incrment") || !strings.Contains(lines[top+3], "previous bindings stay active") {
		t.Fatalf("box body:\n%s", strings.Join(lines[top:top+boxHeight], "\n"))
	}
	for i := top; i < top+boxHeight; i++ {
		if w := ansi.StringWidth(lines[i]); w != 80 {
			t.Fatalf("line %d: want width 80, got %d", i, w)
		}
		if w := ansi.StringWidth(strings.TrimSpace(lines[i])); w != maxWidth {
			t.Fatalf("line %d: want box width %d, got %d", i, maxWidth, w)
		}
	}
}

func TestViewTooSmall(t *testing.T) {
	t.Parallel()

	m := New(WithSize(4, 10), WithMessage("boom"))
	m.SetBackground("x")
	if got := m.View(); got != "x" {
		t.Fatalf("View() = %q, want background", got)
	}
}
