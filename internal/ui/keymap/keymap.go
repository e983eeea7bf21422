// Package keymap turns configured descriptors into bubbles key bindings and
// creates the binding scopes of the demo with shared logging and monitoring.
package keymap

import (
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/kpumuk/keyboardist"
	"github.com/kpumuk/keyboardist/internal/config"
)

var prettyKeys = map[string]string{
	keyboardist.KeyUp:       "↑",
	keyboardist.KeyDown:     "↓",
	keyboardist.KeyLeft:     "←",
	keyboardist.KeyRight:    "→",
	keyboardist.KeyEscape:   "esc",
	keyboardist.KeyPageUp:   "pgup",
	keyboardist.KeyPageDown: "pgdn",
}

// Binding returns a key binding for a configured view action. Its keys are
// the descriptors as configured, its help key their short rendering.
func Binding(cfg config.Config, view, action, desc string) key.Binding {
	descriptors := cfg.Keys(view, action)
	return key.NewBinding(
		key.WithKeys(descriptors...),
		key.WithHelp(HelpKey(descriptors), desc),
	)
}

// HelpKey renders descriptors for help text, e.g. "shift+↑/k".
func HelpKey(descriptors []string) string {
	parts := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		parts = append(parts, Pretty(d))
	}
	return strings.Join(parts, "/")
}

// Pretty renders one descriptor compactly. Malformed descriptors are
// returned unchanged.
func Pretty(descriptor string) string {
	combo, err := keyboardist.ParseDescriptor(descriptor)
	if err != nil {
		return descriptor
	}
	name, ok := prettyKeys[combo.Key]
	switch {
	case ok:
	case strings.HasPrefix(combo.Key, "Key") && len(combo.Key) == 4:
		name = strings.ToLower(combo.Key[3:])
	case strings.HasPrefix(combo.Key, "Digit") && len(combo.Key) == 6:
		name = combo.Key[5:]
	default:
		name = strings.ToLower(combo.Key)
	}
	if mods := combo.Mods.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}

// Scopes creates binding scopes that share the app logger and, when set, the
// key monitor observer.
type Scopes struct {
	Logger   *slog.Logger
	Observer keyboardist.Observer
}

// Options returns the scope options for a scope called name, followed by
// extra.
func (s Scopes) Options(name string, extra ...keyboardist.Option) []keyboardist.Option {
	opts := []keyboardist.Option{keyboardist.WithName(name), keyboardist.WithLogger(s.Logger)}
	if s.Observer != nil {
		opts = append(opts, keyboardist.WithObserver(s.Observer))
	}
	return append(opts, extra...)
}

// New creates a scope called name.
func (s Scopes) New(name string, bindings keyboardist.Bindings, extra ...keyboardist.Option) (*keyboardist.Scope, error) {
	return keyboardist.New(bindings, s.Options(name, extra...)...)
}
