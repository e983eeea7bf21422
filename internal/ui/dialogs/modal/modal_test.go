package modal

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/keyboardist/internal/keylog"
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
	return KeyMap{Close: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close"))}
}

func newModal(t *testing.T, scopes keymap.Scopes, opts ...Option) *Model {
	t.Helper()
	m, err := New("Glenn Gould", testKeys(), scopes, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Init()
	return m
}

func TestModalEscapeCloses(t *testing.T) {
	t.Parallel()

	m := newModal(t, keymap.Scopes{})
	_, cmd := m.Update(keyCode(tea.KeyEscape))

	msgs := collectMsgs(t, cmd)
	var closed, reported bool
	for _, msg := range msgs {
		switch msg := msg.(type) {
		case dialogs.CloseDialogMsg:
			closed = true
		case ClosedMsg:
			reported = msg.Selection == "Glenn Gould"
		}
	}
	if !closed || !reported {
		t.Fatalf("messages = %#v, want close and ClosedMsg", msgs)
	}
}

func TestModalTrapsOnlyItsKeys(t *testing.T) {
	t.Parallel()

	log := keylog.New(10)
	m := newModal(t, keymap.Scopes{Observer: log.Observer()})

	if _, cmd := m.Update(keyText("q")); cmd != nil {
		t.Fatal("unbound key must not produce commands")
	}
	entries := log.Entries()
	if len(entries) != 1 || entries[0].Matched != "" || entries[0].Scope != string(DialogID) {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestModalDetachesOnClose(t *testing.T) {
	t.Parallel()

	m := newModal(t, keymap.Scopes{})
	m.Close()
	m.Close()
	if _, cmd := m.Update(keyCode(tea.KeyEscape)); cmd != nil {
		t.Fatal("closed modal must not react to keys")
	}

	m.Init()
	if _, cmd := m.Update(keyCode(tea.KeyEscape)); cmd == nil {
		t.Fatal("reopened modal should handle escape")
	}
}

func TestModalLayout(t *testing.T) {
	t.Parallel()

	m := newModal(t, keymap.Scopes{}, WithDetail("Plays Bach at any tempo."))
	view := m.View()
	lines := strings.Split(view, "\n")

	if len(lines) != m.height {
		t.Fatalf("lines = %d, want %d", len(lines), m.height)
	}
	if w := ansi.StringWidth(lines[0]); w != 40 {
		t.Fatalf("width = %d, want 40", w)
	}
	row, col := m.Position()
	if row != (40-m.height)/2 || col != 40 {
		t.Fatalf("position = %d,%d", row, col)
	}

	plain := ansi.Strip(view)
	for _, want := range []string{"Selected", "esc close", "Glenn Gould", "Plays Bach at any tempo."} {
		if !strings.Contains(plain, want) {
			t.Fatalf("view missing %q:\n%s", want, plain)
		}
	}
}
