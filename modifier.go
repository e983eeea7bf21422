package keyboardist

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// Modifier is the set of modifier keys held during a key event.
type Modifier uint8

const (
	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota
	// ModCtrl indicates the Control key.
	ModCtrl
	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt
	// ModMeta indicates the Meta key (Cmd on macOS, Super/Windows elsewhere).
	ModMeta
)

// ModNone is the empty modifier set.
const ModNone Modifier = 0

// modifierOrder is the order modifiers are rendered in canonical descriptors.
var modifierOrder = []Modifier{ModCtrl, ModAlt, ModShift, ModMeta}

var modifierNames = map[Modifier]string{
	ModShift: "shift",
	ModCtrl:  "ctrl",
	ModAlt:   "alt",
	ModMeta:  "meta",
}

var modifierAliases = map[string]Modifier{
	"shift":   ModShift,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
	"super":   ModMeta,
	"win":     ModMeta,
}

// Has reports whether every modifier in mod is present in m.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod == mod
}

// String renders the set in canonical order, e.g. "ctrl+shift".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	parts := make([]string, 0, len(modifierOrder))
	for _, mod := range modifierOrder {
		if m.Has(mod) {
			parts = append(parts, modifierNames[mod])
		}
	}
	return strings.Join(parts, "+")
}

// ModifierFromName resolves a modifier token. Lookup is case-insensitive.
func ModifierFromName(name string) (Modifier, bool) {
	mod, ok := modifierAliases[strings.ToLower(strings.TrimSpace(name))]
	return mod, ok
}

// modifiersFromTea maps bubbletea modifier flags onto the four tracked
// modifiers. Hyper and the lock keys are not part of a combination.
func modifiersFromTea(mod tea.KeyMod) Modifier {
	var m Modifier
	if mod.Contains(tea.ModShift) {
		m |= ModShift
	}
	if mod.Contains(tea.ModCtrl) {
		m |= ModCtrl
	}
	if mod.Contains(tea.ModAlt) {
		m |= ModAlt
	}
	if mod.Contains(tea.ModMeta) || mod.Contains(tea.ModSuper) {
		m |= ModMeta
	}
	return m
}
