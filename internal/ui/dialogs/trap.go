package dialogs

import (
	tea "charm.land/bubbletea/v2"

	"github.com/kpumuk/keyboardist"
)

// Trap is a dialog's private key surface. While a dialog is on top the host
// sends keys only to its trap, so scopes attached elsewhere stay silent.
type Trap struct {
	surface *keyboardist.Surface
	scope   *keyboardist.Scope
}

// NewTrap compiles bindings into a detached trap.
func NewTrap(bindings keyboardist.Bindings, opts ...keyboardist.Option) (*Trap, error) {
	scope, err := keyboardist.New(bindings, opts...)
	if err != nil {
		return nil, err
	}
	return &Trap{surface: keyboardist.NewSurface(), scope: scope}, nil
}

// Open attaches the bindings.
func (t *Trap) Open() {
	// Attach only fails on a nil surface.
	_ = t.scope.Attach(t.surface)
}

// Close detaches the bindings. It is safe to call more than once.
func (t *Trap) Close() {
	t.scope.Detach()
}

// IsOpen reports whether the bindings are attached.
func (t *Trap) IsOpen() bool {
	return t.scope.Attached()
}

// Rebind replaces the bindings, keeping the old ones on error.
func (t *Trap) Rebind(bindings keyboardist.Bindings) error {
	return t.scope.Update(bindings)
}

// Dispatch delivers msg to the trap's surface.
func (t *Trap) Dispatch(msg tea.Msg) (tea.Cmd, bool) {
	return t.surface.Dispatch(msg)
}

// Scope returns the trap's binding scope.
func (t *Trap) Scope() *keyboardist.Scope {
	return t.scope
}
