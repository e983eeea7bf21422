package help

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/keyboardist/internal/ui/dialogs"
	"github.com/kpumuk/keyboardist/internal/ui/keymap"
)

func keyCode(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

func keyText(text string) tea.KeyPressMsg {
	r := []rune(text)
	return tea.KeyPressMsg(tea.Key{Text: text, Code: r[0]})
}

func collectMsgs(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collectMsgs(t, c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func testKeys() KeyMap {
	return KeyMap{
		Close: key.NewBinding(key.WithKeys("esc", "?")),
		Up:    key.NewBinding(key.WithKeys("up")),
		Down:  key.NewBinding(key.WithKeys("down")),
	}
}

func newHelp(t *testing.T, sections ...Section) *Model {
	t.Helper()
	m, err := New(testKeys(), keymap.Scopes{}, WithSections(sections...))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	m.Init()
	return m
}

func sampleSections() []Section {
	return []Section{
		{
			Title: "Global",
			Bindings: []key.Binding{
				key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
				key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
			},
			Column: ColumnLeft,
		},
		{
			Title: "Keyboardists",
			Bindings: []key.Binding{
				key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
				key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "skip ahead")),
			},
			Column: ColumnRight,
		},
		{
			Title: "Descriptors",
			Lines: []string{"case-insensitive", "modifiers must match exactly"},
		},
	}
}

func TestHelpDialogWindowSizing(t *testing.T) {
	t.Parallel()

	m := newHelp(t, sampleSections()...)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.width != 80 || m.height != 20 {
		t.Fatalf("size = %dx%d, want 80x20", m.width, m.height)
	}
	if row, col := m.Position(); row != 10 || col != 20 {
		t.Fatalf("position = %d,%d, want 10,20", row, col)
	}
}

func TestHelpDialogCloseKeys(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		msg tea.Msg
	}{
		"question": {msg: keyText("?")},
		"escape":   {msg: keyCode(tea.KeyEscape)},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			m := newHelp(t, sampleSections()...)
			_, cmd := m.Update(tc.msg)
			msgs := collectMsgs(t, cmd)
			if len(msgs) != 1 {
				t.Fatalf("msgs = %v, want one close message", msgs)
			}
			if _, ok := msgs[0].(dialogs.CloseDialogMsg); !ok {
				t.Fatalf("msg = %T, want CloseDialogMsg", msgs[0])
			}
		})
	}
}

func TestHelpDialogIgnoresKeysWhenClosed(t *testing.T) {
	t.Parallel()

	m := newHelp(t, sampleSections()...)
	m.Close()
	if _, cmd := m.Update(keyCode(tea.KeyEscape)); cmd != nil {
		t.Fatal("closed dialog must not react to keys")
	}
}

func TestHelpDialogScrollClamp(t *testing.T) {
	t.Parallel()

	var bindings []key.Binding
	for i := range 30 {
		name := string(rune('a' + i%26))
		bindings = append(bindings, key.NewBinding(key.WithKeys(name), key.WithHelp(name, "action")))
	}
	m := newHelp(t, Section{Title: "Long", Bindings: bindings, Column: ColumnLeft})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	m.Update(keyCode(tea.KeyUp))
	if m.yOffset != 0 {
		t.Fatalf("yOffset = %d, want 0", m.yOffset)
	}
	for range 100 {
		m.Update(keyCode(tea.KeyDown))
	}
	// 31 lines, 10 visible in a 12-row dialog
	if want := 31 - (m.height - 2); m.yOffset != want {
		t.Fatalf("yOffset = %d, want %d", m.yOffset, want)
	}
}

func TestHelpDialogSplitSections(t *testing.T) {
	t.Parallel()

	left, right := splitSections(sampleSections())
	if len(left) != 2 || len(right) != 1 {
		t.Fatalf("left = %d, right = %d", len(left), len(right))
	}
	if left[1].Title != "Descriptors" {
		t.Fatalf("auto section placed in %q", left[1].Title)
	}
}

func TestHelpDialogView(t *testing.T) {
	t.Parallel()

	m := newHelp(t, sampleSections()...)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := ansi.Strip(m.View())
	for _, want := range []string{"Help", "Global", "q quit", "Keyboardists", "shift+↓ skip ahead", "↓       next", "modifiers must match exactly"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	for i, line := range strings.Split(view, "\n") {
		if w := ansi.StringWidth(line); w != m.width {
			t.Fatalf("line %d: width %d, want %d", i, w, m.width)
		}
	}
}

func TestHelpDialogRejectsDuplicateKeys(t *testing.T) {
	t.Parallel()

	keys := testKeys()
	keys.Down = key.NewBinding(key.WithKeys("UP"))
	if _, err := New(keys, keymap.Scopes{}); err == nil {
		t.Fatal("expected duplicate binding error")
	}
}
