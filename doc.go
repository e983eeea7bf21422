// Package keyboardist binds keyboard shortcuts to bubbletea components for
// the time they are mounted.
//
// A program owns a Surface and feeds it every key message from its root
// Update:
//
//	cmd, handled := m.surface.Dispatch(msg)
//	if handled {
//		return m, cmd
//	}
//
// Components create a Scope from a Bindings map, attach it when they mount
// and detach it when they go away:
//
//	scope, err := keyboardist.New(keyboardist.Bindings{
//		"down":       keyboardist.Do(l.next),
//		"shift+down": keyboardist.Do(l.skip),
//		"esc":        keyboardist.Suppressing(l.close),
//	})
//	...
//	scope.Attach(surface)
//	defer scope.Detach()
//
// Descriptors are "(modifier+)*key". Modifiers are shift, ctrl, alt and meta.
// Keys use KeyboardEvent.code style names (Up, Escape, KeyL, Digit1), and
// the usual legacy spellings ("esc", "pgup", "l", "76") normalize to the same
// names. A descriptor matches only when the modifier set is exactly the one
// held. Shifted symbols are named by what they produce: "shift+/" parses as
// "?".
package keyboardist
