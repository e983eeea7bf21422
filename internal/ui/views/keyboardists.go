package views

import (
	"errors"
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/kpumuk/keyboardist"
	"github.com/kpumuk/keyboardist/internal/config"
	"github.com/kpumuk/keyboardist/internal/ui/components/table"
	"github.com/kpumuk/keyboardist/internal/ui/dialogs"
	"github.com/kpumuk/keyboardist/internal/ui/dialogs/help"
	"github.com/kpumuk/keyboardist/internal/ui/dialogs/modal"
	"github.com/kpumuk/keyboardist/internal/ui/keymap"
)

// skipRows is how far shift+arrows move the selection.
const skipRows = 3

// Names lists the keyboardists to pick from.
var Names = []string{
	"Rick Wakeman",
	"Keith Emerson",
	"Jordan Rudess",
	"Tony Banks",
	"Richard Wright",
	"Chick Corea",
	"Stevie Wonder",
	"Herbie Hancock",
	"Aleks Syntek",
	"Chico Che",
}

// KeyboardistsKeyMap holds the keyboardists view bindings.
type KeyboardistsKeyMap struct {
	Next     key.Binding
	Skip     key.Binding
	Prev     key.Binding
	SkipBack key.Binding
	Select   key.Binding
}

func keyboardistsKeys(cfg config.Config) KeyboardistsKeyMap {
	return KeyboardistsKeyMap{
		Next:     keymap.Binding(cfg, "keyboardists", "next", "next"),
		Skip:     keymap.Binding(cfg, "keyboardists", "skip", "skip 3"),
		Prev:     keymap.Binding(cfg, "keyboardists", "prev", "previous"),
		SkipBack: keymap.Binding(cfg, "keyboardists", "skip_back", "back 3"),
		Select:   keymap.Binding(cfg, "keyboardists", "select", "select"),
	}
}

func modalKeys(cfg config.Config) modal.KeyMap {
	return modal.KeyMap{Close: keymap.Binding(cfg, "modal", "close", "close")}
}

// Keyboardists lets the user pick a favorite keyboardist and announces the
// pick in a modal.
type Keyboardists struct {
	width     int
	height    int
	styles    Styles
	surface   *keyboardist.Surface
	scopes    keymap.Scopes
	keys      KeyboardistsKeyMap
	modalKeys modal.KeyMap
	scope     *keyboardist.Scope
	table     *table.Table
	selected  string
}

// NewKeyboardists creates the keyboardists view.
func NewKeyboardists(surface *keyboardist.Surface, cfg config.Config, scopes keymap.Scopes) (*Keyboardists, error) {
	k := &Keyboardists{
		surface:   surface,
		scopes:    scopes,
		keys:      keyboardistsKeys(cfg),
		modalKeys: modalKeys(cfg),
		table:     table.New([]table.Column{{Title: "#", Width: 3}, {Title: "Name"}}),
	}

	rows := make([]table.Row, 0, len(Names))
	for i, name := range Names {
		rows = append(rows, table.Row{ID: name, Cells: []string{strconv.Itoa(i + 1), name}})
	}
	k.table.SetRows(rows)

	bindings, err := k.bindings()
	if err != nil {
		return nil, err
	}
	scope, err := scopes.New("keyboardists", bindings)
	if err != nil {
		return nil, err
	}
	k.scope = scope
	return k, nil
}

func (k *Keyboardists) bindings() (keyboardist.Bindings, error) {
	b := keyboardist.Bindings{}
	err := errors.Join(
		keyboardist.Bind(b, k.keys.Next, keyboardist.Suppressing(func() { k.table.MoveBy(1) })),
		keyboardist.Bind(b, k.keys.Skip, keyboardist.Suppressing(func() { k.table.MoveBy(skipRows) })),
		keyboardist.Bind(b, k.keys.Prev, keyboardist.Suppressing(func() { k.table.MoveBy(-1) })),
		keyboardist.Bind(b, k.keys.SkipBack, keyboardist.Suppressing(func() { k.table.MoveBy(-skipRows) })),
		keyboardist.Bind(b, k.keys.Select, k.submit),
	)
	return b, err
}

func (k *Keyboardists) submit(ev *keyboardist.Event) error {
	row, ok := k.table.Selected()
	if !ok {
		return nil
	}
	dialog, err := modal.New(row.ID, k.modalKeys, k.scopes,
		modal.WithTitle("You selected"),
		modal.WithDetail("press "+k.modalKeys.Close.Help().Key+" to close"),
		modal.WithStyles(modal.Styles{
			Title:  k.styles.Title,
			Border: k.styles.FocusBorder,
			Text:   k.styles.Muted,
			Accent: k.styles.KeyCap,
			Muted:  k.styles.Muted,
		}),
	)
	if err != nil {
		return err
	}
	ev.Cmd(dialogs.Open(dialog))
	return keyboardist.Suppress
}

// Selected returns the highlighted name.
func (k *Keyboardists) Selected() string {
	row, _ := k.table.Selected()
	return row.ID
}

// Init implements View
func (k *Keyboardists) Init() tea.Cmd {
	return nil
}

// Update implements View
func (k *Keyboardists) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(modal.ClosedMsg); ok {
		k.selected = msg.Selection
	}
	return k, nil
}

// View implements View
func (k *Keyboardists) View() string {
	contentWidth := max(k.width-4, 1)
	header := []string{
		k.styles.Text.Render("Use arrows to highlight a name, hold shift to move three at a time."),
		instructions(k.styles, k.keys.Next, k.keys.Prev, k.keys.Skip, k.keys.SkipBack, k.keys.Select),
		"",
	}
	footer := ""
	if k.selected != "" {
		footer = k.styles.Muted.Render("Last pick: ") + k.styles.Text.Render(k.selected)
	}

	tableHeight := max(k.height-2-len(header)-2, 1)
	k.table.SetSize(contentWidth, tableHeight)

	content := joinLines(header...) + "\n" + k.table.View()
	if footer != "" {
		content += "\n\n" + footer
	}
	return renderFrame(k.styles, "Select your favorite keyboardist", "", content, k.width, k.height)
}

// Name implements View
func (k *Keyboardists) Name() string {
	return "Keyboardists"
}

// ShortHelp implements View
func (k *Keyboardists) ShortHelp() []key.Binding {
	return []key.Binding{k.keys.Next, k.keys.Skip, k.keys.Select}
}

// HelpSection implements View
func (k *Keyboardists) HelpSection() help.Section {
	return helpSection("Keyboardists", k.keys.Next, k.keys.Prev, k.keys.Skip, k.keys.SkipBack, k.keys.Select, k.modalKeys.Close)
}

// SetSize implements View
func (k *Keyboardists) SetSize(width, height int) View {
	k.width = width
	k.height = height
	return k
}

// SetStyles implements View
func (k *Keyboardists) SetStyles(styles Styles) View {
	k.styles = styles
	k.table.SetStyles(tableStylesFromTheme(styles))
	return k
}

// Mount implements View
func (k *Keyboardists) Mount() tea.Cmd {
	// Attach only fails for a nil surface.
	_ = k.scope.Attach(k.surface)
	return nil
}

// Unmount implements View
func (k *Keyboardists) Unmount() {
	k.scope.Detach()
}

// Rebind implements View
func (k *Keyboardists) Rebind(cfg config.Config) error {
	keys := keyboardistsKeys(cfg)
	previous := k.keys
	k.keys = keys
	bindings, err := k.bindings()
	if err == nil {
		err = k.scope.Update(bindings)
	}
	if err != nil {
		k.keys = previous
		return err
	}
	k.modalKeys = modalKeys(cfg)
	return nil
}

// InputFocused implements View
func (k *Keyboardists) InputFocused() bool {
	return false
}
