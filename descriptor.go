package keyboardist

import (
	"strings"
)

// Combo is a parsed descriptor: a modifier set and one canonical primary key.
// Combos are comparable; two descriptors bind the same keys iff their combos
// are equal.
type Combo struct {
	Mods Modifier
	Key  string
}

// String renders the canonical descriptor, e.g. "shift+Down".
func (c Combo) String() string {
	if c.Mods == ModNone {
		return c.Key
	}
	return c.Mods.String() + "+" + c.Key
}

// Matches reports whether the snapshot is exactly this combination: same
// primary key and the same modifier set, no more and no less.
func (c Combo) Matches(s Snapshot) bool {
	return c.Key == s.Key && c.Mods == s.Mods
}

// ParseDescriptor parses a descriptor of the form
//
//	(modifier "+")* primaryKey
//
// Modifiers are shift, ctrl, alt and meta (plus a few common aliases such as
// control, option and cmd), case-insensitive. The primary key is a canonical
// key name ("Down", "Escape", "KeyL"), a legacy alias ("esc", "pgup"), a
// single character, or a legacy numeric key code ("27"). "+" alone, or a
// trailing "++", names the plus key. Letters name the physical key, so "A"
// is the same as "a"; write "shift+a" for a capital. Shift with a digit or
// punctuation key is rewritten to the symbol it produces on a US layout, so
// "shift+/" is the same as "?".
func ParseDescriptor(descriptor string) (Combo, error) {
	s := strings.TrimSpace(descriptor)
	if s == "" {
		return Combo{}, &DescriptorError{Descriptor: descriptor, Err: ErrEmptyDescriptor}
	}

	modsPart, keyPart := splitDescriptor(s)

	var mods Modifier
	if modsPart != "" {
		for token := range strings.SplitSeq(modsPart, "+") {
			token = strings.TrimSpace(token)
			mod, ok := ModifierFromName(token)
			if !ok {
				return Combo{}, &DescriptorError{
					Descriptor: descriptor,
					Token:      token,
					Suggestion: Suggest(token, modifierCandidates()),
					Err:        ErrUnknownModifier,
				}
			}
			mods |= mod
		}
	}

	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Combo{}, &DescriptorError{Descriptor: descriptor, Err: ErrEmptyKey}
	}
	if _, isModifier := ModifierFromName(keyPart); isModifier {
		return Combo{}, &DescriptorError{Descriptor: descriptor, Token: keyPart, Err: ErrEmptyKey}
	}

	key, err := CanonicalKey(keyPart)
	if err != nil {
		return Combo{}, &DescriptorError{
			Descriptor: descriptor,
			Token:      keyPart,
			Suggestion: Suggest(keyPart, keyCandidates()),
			Err:        err,
		}
	}

	// Terminals report a shifted symbol as the symbol itself, so
	// "shift+/" binds "?".
	if symbol, ok := shiftedKeys[key]; ok && mods.Has(ModShift) {
		key = symbol
		mods &^= ModShift
	}

	return Combo{Mods: mods, Key: key}, nil
}

// MustParseDescriptor is like ParseDescriptor but panics on error. Use only
// for descriptors known at compile time.
func MustParseDescriptor(descriptor string) Combo {
	combo, err := ParseDescriptor(descriptor)
	if err != nil {
		panic(err)
	}
	return combo
}

// NormalizeDescriptor parses and re-renders a descriptor in canonical form.
func NormalizeDescriptor(descriptor string) (string, error) {
	combo, err := ParseDescriptor(descriptor)
	if err != nil {
		return "", err
	}
	return combo.String(), nil
}

func splitDescriptor(s string) (string, string) {
	switch {
	case s == "+":
		return "", "+"
	case strings.HasSuffix(s, "++"):
		return s[:len(s)-2], "+"
	}
	idx := strings.LastIndex(s, "+")
	if idx < 0 {
		return "", s
	}
	return s[:idx], s[idx+1:]
}
