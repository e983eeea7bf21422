package valuebox

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/kpumuk/keyboardist"
)

func keyCode(code rune, mod tea.KeyMod) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code, Mod: mod})
}

func keyText(text string) tea.KeyPressMsg {
	r := []rune(text)
	return tea.KeyPressMsg(tea.Key{Code: r[0], Text: text})
}

// send mimics a host: surface first, then default handling for whatever was
// not suppressed.
func send(surface *keyboardist.Surface, box *Model, msg tea.Msg) {
	if _, handled := surface.Dispatch(msg); handled {
		return
	}
	box.Update(msg)
}

func newTempoBox(t *testing.T, surface *keyboardist.Surface, opts ...Option) *Model {
	t.Helper()

	const lower, upper = 40, 280
	var box *Model
	adjust := func(delta int) keyboardist.Callback {
		return func(*keyboardist.Event) error {
			n, err := box.Int()
			if err != nil {
				return err
			}
			box.SetInt(min(max(n+delta, lower), upper))
			return keyboardist.Suppress
		}
	}

	opts = append([]Option{WithValue("140")}, opts...)
	var err error
	box, err = New(surface, keyboardist.Bindings{
		"Up":   adjust(1),
		"Down": adjust(-1),
	}, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return box
}

func TestValueBoxIncrementsWithinBounds(t *testing.T) {
	t.Parallel()

	surface := keyboardist.NewSurface()
	box := newTempoBox(t, surface)
	box.Focus()

	for range 5 {
		send(surface, box, keyCode(tea.KeyUp, 0))
	}
	if got, _ := box.Int(); got != 145 {
		t.Fatalf("value = %d, want 145", got)
	}

	box.SetInt(280)
	send(surface, box, keyCode(tea.KeyUp, 0))
	if got, _ := box.Int(); got != 280 {
		t.Fatalf("value = %d, want 280", got)
	}

	box.SetInt(40)
	send(surface, box, keyCode(tea.KeyDown, 0))
	if got, _ := box.Int(); got != 40 {
		t.Fatalf("value = %d, want 40", got)
	}
}

func TestValueBoxFocusLifetime(t *testing.T) {
	t.Parallel()

	surface := keyboardist.NewSurface()
	box := newTempoBox(t, surface)
	if box.Attached() {
		t.Fatal("bindings attached before focus")
	}

	send(surface, box, keyCode(tea.KeyUp, 0))
	if got, _ := box.Int(); got != 140 {
		t.Fatalf("value changed without focus: %d", got)
	}

	box.Focus()
	if !box.Attached() || !box.Focused() {
		t.Fatal("focus should attach bindings")
	}
	box.Blur()
	if box.Attached() {
		t.Fatal("blur should detach bindings")
	}
	if got := surface.Listeners(keyboardist.EventKeyDown); got != 0 {
		t.Fatalf("listeners = %d, want 0", got)
	}
}

func TestValueBoxMountLifetime(t *testing.T) {
	t.Parallel()

	surface := keyboardist.NewSurface()
	box := newTempoBox(t, surface, WithMountLifetime())
	if !box.Attached() {
		t.Fatal("mount lifetime should attach on construction")
	}

	send(surface, box, keyCode(tea.KeyUp, 0))
	if got, _ := box.Int(); got != 141 {
		t.Fatalf("value = %d, want 141", got)
	}

	box.Focus()
	box.Blur()
	if !box.Attached() {
		t.Fatal("blur must not detach a mount-lifetime box")
	}

	box.Close()
	box.Close()
	if box.Attached() {
		t.Fatal("close should detach")
	}
	send(surface, box, keyCode(tea.KeyUp, 0))
	if got, _ := box.Int(); got != 141 {
		t.Fatalf("value changed after close: %d", got)
	}
	box.Focus()
	if box.Attached() {
		t.Fatal("closed box must not re-attach")
	}
}

func TestValueBoxDefaultHandling(t *testing.T) {
	t.Parallel()

	surface := keyboardist.NewSurface()
	box := newTempoBox(t, surface, WithValue(""))
	box.Focus()

	send(surface, box, keyText("1"))
	send(surface, box, keyText("2"))
	send(surface, box, keyText("0"))
	if got := box.Value(); got != "120" {
		t.Fatalf("value = %q, want %q", got, "120")
	}

	send(surface, box, keyCode(tea.KeyUp, 0))
	if got := box.Value(); got != "121" {
		t.Fatalf("value = %q, want %q", got, "121")
	}
}

func TestValueBoxRebind(t *testing.T) {
	t.Parallel()

	surface := keyboardist.NewSurface()
	box := newTempoBox(t, surface)
	box.Focus()

	if err := box.Rebind(keyboardist.Bindings{"PageUp": keyboardist.Suppressing(func() { box.SetInt(200) })}); err != nil {
		t.Fatalf("Rebind() error = %v", err)
	}
	send(surface, box, keyCode(tea.KeyUp, 0))
	if got, _ := box.Int(); got != 140 {
		t.Fatalf("old binding fired: %d", got)
	}
	send(surface, box, keyCode(tea.KeyPgUp, 0))
	if got, _ := box.Int(); got != 200 {
		t.Fatalf("value = %d, want 200", got)
	}

	err := box.Rebind(keyboardist.Bindings{"Pgup": keyboardist.Do(func() {}), "PageUp": keyboardist.Do(func() {})})
	if !errors.Is(err, keyboardist.ErrDuplicateBinding) {
		t.Fatalf("Rebind() error = %v, want %v", err, keyboardist.ErrDuplicateBinding)
	}
}

func TestValueBoxOptions(t *testing.T) {
	t.Parallel()

	surface := keyboardist.NewSurface()
	box, err := New(surface, nil,
		WithPrompt("bpm: "),
		WithPlaceholder("tempo"),
		WithWidth(6),
		WithCharLimit(3),
		WithEventName(keyboardist.EventKeyUp),
		WithName("tempo"),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := box.Scope().EventName(); got != keyboardist.EventKeyUp {
		t.Fatalf("event = %q, want keyup", got)
	}
	if got := box.Scope().Name(); got != "tempo" {
		t.Fatalf("scope name = %q, want tempo", got)
	}
	box.SetValue("abc")
	if _, err := box.Int(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValueBoxConstructionErrors(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, nil); !errors.Is(err, keyboardist.ErrNilSurface) {
		t.Fatalf("New(nil) error = %v, want %v", err, keyboardist.ErrNilSurface)
	}
	_, err := New(keyboardist.NewSurface(), keyboardist.Bindings{"ctrl+": keyboardist.Do(func() {})})
	if !errors.Is(err, keyboardist.ErrEmptyKey) {
		t.Fatalf("New() error = %v, want %v", err, keyboardist.ErrEmptyKey)
	}
}

func TestValueBoxObserver(t *testing.T) {
	t.Parallel()

	var records []keyboardist.MonitorRecord
	surface := keyboardist.NewSurface()
	box := newTempoBox(t, surface,
		WithName("tempo"),
		WithObserver(func(r keyboardist.MonitorRecord) { records = append(records, r) }),
	)
	box.Focus()

	send(surface, box, keyCode(tea.KeyUp, 0))
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if r := records[0]; r.ScopeName != "tempo" || r.Matched != "Up" || !r.Suppressed {
		t.Fatalf("record = %+v", r)
	}
}
