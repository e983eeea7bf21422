package dialogs

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/kpumuk/keyboardist"
)

type testDialog struct {
	id        DialogID
	initCalls int
	updates   []tea.Msg
	width     int
	height    int
	row       int
	col       int
	view      string
}

func (d *testDialog) Init() tea.Cmd {
	d.initCalls++
	return nil
}

func (d *testDialog) Update(msg tea.Msg) (DialogModel, tea.Cmd) {
	d.updates = append(d.updates, msg)
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		d.width = size.Width
		d.height = size.Height
	}
	return d, nil
}

func (d *testDialog) View() string {
	return d.view
}

func (d *testDialog) Position() (int, int) {
	return d.row, d.col
}

func (d *testDialog) ID() DialogID {
	return d.id
}

type closeDialog struct {
	testDialog
	closed bool
	msg    tea.Msg
}

func (d *closeDialog) Update(msg tea.Msg) (DialogModel, tea.Cmd) {
	_, cmd := d.testDialog.Update(msg)
	return d, cmd
}

func (d *closeDialog) Close() tea.Cmd {
	d.closed = true
	if d.msg == nil {
		return nil
	}
	return func() tea.Msg { return d.msg }
}

func TestDialogCmpOpenClose(t *testing.T) {
	t.Parallel()

	cmp := NewDialogCmp()
	cmp, _ = cmp.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	dialog := &testDialog{id: "a"}
	cmp, _ = cmp.Update(OpenDialogMsg{Model: dialog})

	if !cmp.HasDialogs() {
		t.Fatal("expected dialogs to be present")
	}
	if dialog.initCalls != 1 {
		t.Fatalf("init calls = %d, want %d", dialog.initCalls, 1)
	}
	if dialog.width != 80 || dialog.height != 24 {
		t.Fatalf("dialog size = %dx%d, want 80x24", dialog.width, dialog.height)
	}
	if got := cmp.ActiveDialogID(); got != "a" {
		t.Fatalf("active id = %q, want %q", got, "a")
	}

	cmp, _ = cmp.Update(CloseDialogMsg{})
	if cmp.HasDialogs() {
		t.Fatal("expected dialogs to be closed")
	}
}

func TestDialogCmpReusesExistingDialog(t *testing.T) {
	t.Parallel()

	cmp := NewDialogCmp()
	cmp, _ = cmp.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	dialogA := &testDialog{id: "a"}
	dialogB := &testDialog{id: "b"}
	cmp, _ = cmp.Update(OpenDialogMsg{Model: dialogA})
	cmp, _ = cmp.Update(OpenDialogMsg{Model: dialogB})

	dialogA2 := &testDialog{id: "a"}
	cmp, _ = cmp.Update(OpenDialogMsg{Model: dialogA2})

	if got := cmp.ActiveModel(); got != dialogA {
		t.Fatalf("active model = %p, want %p", got, dialogA)
	}
	if len(cmp.Dialogs()) != 2 {
		t.Fatalf("dialogs len = %d, want %d", len(cmp.Dialogs()), 2)
	}

	initCalls := dialogA.initCalls
	cmp, _ = cmp.Update(OpenDialogMsg{Model: dialogA})
	if dialogA.initCalls != initCalls {
		t.Fatalf("init calls = %d, want %d", dialogA.initCalls, initCalls)
	}
	if len(cmp.Dialogs()) != 2 {
		t.Fatalf("dialogs len = %d, want %d", len(cmp.Dialogs()), 2)
	}
}

func TestDialogCmpCloseCallback(t *testing.T) {
	t.Parallel()

	cmp := NewDialogCmp()
	dialog := &closeDialog{
		testDialog: testDialog{id: "close"},
		msg:        tea.QuitMsg{},
	}

	cmp, _ = cmp.Update(OpenDialogMsg{Model: dialog})
	if got := cmp.ActiveModel(); got != dialog {
		t.Fatalf("active model = %T, want the dialog that was opened", got)
	}
	_, cmd := cmp.Update(CloseDialogMsg{})
	if !dialog.closed {
		t.Fatal("expected Close to be called")
	}
	if cmd == nil {
		t.Fatal("expected close cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("unexpected close message type %T", cmd())
	}
}

func TestDialogCmpForwardsUpdatesToActive(t *testing.T) {
	t.Parallel()

	cmp := NewDialogCmp()
	dialogA := &testDialog{id: "a"}
	dialogB := &testDialog{id: "b"}
	cmp, _ = cmp.Update(OpenDialogMsg{Model: dialogA})
	cmp, _ = cmp.Update(OpenDialogMsg{Model: dialogB})

	key := tea.KeyPressMsg(tea.Key{Text: "x", Code: 'x'})
	_, _ = cmp.Update(key)

	if len(dialogA.updates) != 1 {
		t.Fatalf("dialogA updates = %d, want %d", len(dialogA.updates), 1)
	}
	if len(dialogB.updates) != 2 {
		t.Fatalf("dialogB updates = %d, want %d", len(dialogB.updates), 2)
	}
	if dialogB.updates[len(dialogB.updates)-1] != key {
		t.Fatalf("dialogB last update = %T, want key msg", dialogB.updates[len(dialogB.updates)-1])
	}
}

// sizedDialog returns a new value from Update, like value-receiver models do.
type sizedDialog struct {
	id    DialogID
	width int
}

func (d sizedDialog) Init() tea.Cmd        { return nil }
func (d sizedDialog) View() string         { return "" }
func (d sizedDialog) Position() (int, int) { return 0, 0 }
func (d sizedDialog) ID() DialogID         { return d.id }

func (d sizedDialog) Update(msg tea.Msg) (DialogModel, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		d.width = size.Width
	}
	return d, nil
}

func TestDialogCmpKeepsUpdatedModelOnOpen(t *testing.T) {
	t.Parallel()

	cmp := NewDialogCmp()
	cmp, _ = cmp.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	cmp, _ = cmp.Update(OpenDialogMsg{Model: sizedDialog{id: "sized"}})

	got, ok := cmp.ActiveModel().(sizedDialog)
	if !ok || got.width != 100 {
		t.Fatalf("active model = %#v, want width 100", cmp.ActiveModel())
	}
}

func TestDialogCmpIgnoresNilAndEmptyClose(t *testing.T) {
	t.Parallel()

	cmp := NewDialogCmp()
	cmp, _ = cmp.Update(OpenDialogMsg{})
	cmp, cmd := cmp.Update(CloseDialogMsg{})
	if cmp.HasDialogs() || cmd != nil {
		t.Fatalf("dialogs = %d, cmd = %v", len(cmp.Dialogs()), cmd)
	}
	if cmp.ActiveDialogID() != "" || cmp.ActiveModel() != nil {
		t.Fatal("expected no active dialog")
	}
}

func TestDialogCmpLayersFollowStackOrder(t *testing.T) {
	t.Parallel()

	cmp := NewDialogCmp()
	cmp, _ = cmp.Update(OpenDialogMsg{Model: &testDialog{id: "a", view: "a", row: 2, col: 3}})
	cmp, _ = cmp.Update(OpenDialogMsg{Model: &testDialog{id: "b", view: "b"}})

	layers := cmp.GetLayers()
	if len(layers) != 2 {
		t.Fatalf("layers = %d, want 2", len(layers))
	}
	if layers[0].GetZ() >= layers[1].GetZ() {
		t.Fatalf("z order = %d, %d", layers[0].GetZ(), layers[1].GetZ())
	}
	if layers[0].GetX() != 3 || layers[0].GetY() != 2 {
		t.Fatalf("position = %d,%d, want 3,2", layers[0].GetX(), layers[0].GetY())
	}
}

func TestCommands(t *testing.T) {
	t.Parallel()

	dialog := &testDialog{id: "x"}
	msg, ok := Open(dialog)().(OpenDialogMsg)
	if !ok || msg.Model != dialog {
		t.Fatalf("Open() msg = %#v", msg)
	}
	if _, ok := Close().(CloseDialogMsg); !ok {
		t.Fatalf("Close() msg = %T", Close())
	}
}

func TestTrapOwnsItsSurface(t *testing.T) {
	t.Parallel()

	closed := 0
	trap, err := NewTrap(keyboardist.Bindings{
		"esc": func(ev *keyboardist.Event) error {
			closed++
			ev.Cmd(Close)
			return keyboardist.Suppress
		},
	})
	if err != nil {
		t.Fatalf("NewTrap() error = %v", err)
	}
	esc := tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})

	if _, handled := trap.Dispatch(esc); handled || closed != 0 {
		t.Fatal("closed trap must not handle keys")
	}

	trap.Open()
	if !trap.IsOpen() {
		t.Fatal("expected trap to be open")
	}
	cmd, handled := trap.Dispatch(esc)
	if !handled || closed != 1 {
		t.Fatalf("handled = %v, closed = %d", handled, closed)
	}
	if _, ok := cmd().(CloseDialogMsg); !ok {
		t.Fatalf("cmd msg = %T, want CloseDialogMsg", cmd())
	}

	trap.Close()
	trap.Close()
	if _, handled := trap.Dispatch(esc); handled || closed != 1 {
		t.Fatal("trap still handling keys after close")
	}
}

func TestTrapRebind(t *testing.T) {
	t.Parallel()

	var got []string
	trap, err := NewTrap(keyboardist.Bindings{"esc": keyboardist.Do(func() { got = append(got, "esc") })},
		keyboardist.WithName("help"))
	if err != nil {
		t.Fatalf("NewTrap() error = %v", err)
	}
	trap.Open()
	if err := trap.Rebind(keyboardist.Bindings{"q": keyboardist.Do(func() { got = append(got, "q") })}); err != nil {
		t.Fatalf("Rebind() error = %v", err)
	}
	trap.Dispatch(tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}))
	trap.Dispatch(tea.KeyPressMsg(tea.Key{Code: 'q', Text: "q"}))
	if len(got) != 1 || got[0] != "q" {
		t.Fatalf("calls = %v, want [q]", got)
	}
	if trap.Scope().Name() != "help" {
		t.Fatalf("scope name = %q", trap.Scope().Name())
	}

	if _, err := NewTrap(keyboardist.Bindings{"hyper+x": nil}); err == nil {
		t.Fatal("expected bad descriptor error")
	}
}
