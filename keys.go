package keyboardist

import (
	"strconv"
	"strings"
	"unicode"

	tea "charm.land/bubbletea/v2"
)

// Canonical names of non-character keys.
const (
	KeyUp        = "Up"
	KeyDown      = "Down"
	KeyLeft      = "Left"
	KeyRight     = "Right"
	KeyEnter     = "Enter"
	KeyEscape    = "Escape"
	KeyTab       = "Tab"
	KeySpace     = "Space"
	KeyBackspace = "Backspace"
	KeyDelete    = "Delete"
	KeyInsert    = "Insert"
	KeyHome      = "Home"
	KeyEnd       = "End"
	KeyPageUp    = "PageUp"
	KeyPageDown  = "PageDown"
)

// teaKeys maps bubbletea key codes of non-printable keys to canonical names.
var teaKeys = map[rune]string{
	tea.KeyUp:        KeyUp,
	tea.KeyDown:      KeyDown,
	tea.KeyLeft:      KeyLeft,
	tea.KeyRight:     KeyRight,
	tea.KeyEnter:     KeyEnter,
	tea.KeyKpEnter:   KeyEnter,
	tea.KeyEscape:    KeyEscape,
	tea.KeyTab:       KeyTab,
	tea.KeySpace:     KeySpace,
	tea.KeyBackspace: KeyBackspace,
	tea.KeyDelete:    KeyDelete,
	tea.KeyInsert:    KeyInsert,
	tea.KeyHome:      KeyHome,
	tea.KeyEnd:       KeyEnd,
	tea.KeyPgUp:      KeyPageUp,
	tea.KeyPgDown:    KeyPageDown,
	tea.KeyF1:        "F1",
	tea.KeyF2:        "F2",
	tea.KeyF3:        "F3",
	tea.KeyF4:        "F4",
	tea.KeyF5:        "F5",
	tea.KeyF6:        "F6",
	tea.KeyF7:        "F7",
	tea.KeyF8:        "F8",
	tea.KeyF9:        "F9",
	tea.KeyF10:       "F10",
	tea.KeyF11:       "F11",
	tea.KeyF12:       "F12",
	tea.KeyF13:       "F13",
	tea.KeyF14:       "F14",
	tea.KeyF15:       "F15",
	tea.KeyF16:       "F16",
	tea.KeyF17:       "F17",
	tea.KeyF18:       "F18",
	tea.KeyF19:       "F19",
	tea.KeyF20:       "F20",
}

// punctuationKeys names the punctuation keys of a US layout the same way
// KeyboardEvent.code does.
var punctuationKeys = map[rune]string{
	' ':  KeySpace,
	'-':  "Minus",
	'=':  "Equal",
	'[':  "BracketLeft",
	']':  "BracketRight",
	'\\': "Backslash",
	';':  "Semicolon",
	'\'': "Quote",
	'`':  "Backquote",
	',':  "Comma",
	'.':  "Period",
	'/':  "Slash",
}

// shiftedSymbols maps keys of a US layout to the symbol they produce with
// shift held.
var shiftedSymbols = map[rune]rune{
	'1': '!', '2': '@', '3': '#', '4': '$', '5': '%',
	'6': '^', '7': '&', '8': '*', '9': '(', '0': ')',
	'-': '_', '=': '+', '[': '{', ']': '}', '\\': '|',
	';': ':', '\'': '"', '`': '~', ',': '<', '.': '>', '/': '?',
}

// shiftedKeys maps canonical key names to the canonical name of their
// shifted symbol, e.g. "Slash" to "?".
var shiftedKeys = func() map[string]string {
	keys := make(map[string]string, len(shiftedSymbols))
	for r, s := range shiftedSymbols {
		keys[runeName(r)] = runeName(s)
	}
	return keys
}()

// legacyKeyCodes maps KeyboardEvent.keyCode values to canonical names.
var legacyKeyCodes = func() map[int]string {
	codes := map[int]string{
		8:   KeyBackspace,
		9:   KeyTab,
		13:  KeyEnter,
		27:  KeyEscape,
		32:  KeySpace,
		33:  KeyPageUp,
		34:  KeyPageDown,
		35:  KeyEnd,
		36:  KeyHome,
		37:  KeyLeft,
		38:  KeyUp,
		39:  KeyRight,
		40:  KeyDown,
		45:  KeyInsert,
		46:  KeyDelete,
		186: "Semicolon",
		187: "Equal",
		188: "Comma",
		189: "Minus",
		190: "Period",
		191: "Slash",
		192: "Backquote",
		219: "BracketLeft",
		220: "Backslash",
		221: "BracketRight",
		222: "Quote",
	}
	for r := '0'; r <= '9'; r++ {
		codes[int(r)] = runeName(r)
	}
	for r := 'A'; r <= 'Z'; r++ {
		codes[int(r)] = runeName(r)
	}
	for i := 1; i <= 20; i++ {
		codes[111+i] = "F" + strconv.Itoa(i)
	}
	return codes
}()

// keyAliases maps lowercase key tokens to canonical names. Every canonical
// name is also present in lowercase form.
var keyAliases = func() map[string]string {
	aliases := map[string]string{
		"arrowup":    KeyUp,
		"arrowdown":  KeyDown,
		"arrowleft":  KeyLeft,
		"arrowright": KeyRight,
		"return":     KeyEnter,
		"cr":         KeyEnter,
		"esc":        KeyEscape,
		"spacebar":   KeySpace,
		"bs":         KeyBackspace,
		"del":        KeyDelete,
		"ins":        KeyInsert,
		"pgup":       KeyPageUp,
		"pgdown":     KeyPageDown,
		"pgdn":       KeyPageDown,
		"plus":       "+",
	}
	for _, name := range teaKeys {
		aliases[strings.ToLower(name)] = name
	}
	for _, name := range punctuationKeys {
		aliases[strings.ToLower(name)] = name
	}
	for r := 'a'; r <= 'z'; r++ {
		name := runeName(r)
		aliases[strings.ToLower(name)] = name
	}
	for r := '0'; r <= '9'; r++ {
		name := runeName(r)
		aliases[strings.ToLower(name)] = name
	}
	return aliases
}()

// runeName returns the canonical name of a character key. Letters are
// case-insensitive.
func runeName(r rune) string {
	switch {
	case r >= 'a' && r <= 'z':
		return "Key" + string(unicode.ToUpper(r))
	case r >= 'A' && r <= 'Z':
		return "Key" + string(r)
	case r >= '0' && r <= '9':
		return "Digit" + string(r)
	}
	if name, ok := punctuationKeys[r]; ok {
		return name
	}
	return string(unicode.ToLower(r))
}

// CanonicalKey normalizes a primary-key token (canonical name, legacy alias,
// single character or legacy numeric key code) to its canonical name.
func CanonicalKey(token string) (string, error) {
	if token == "" {
		return "", ErrEmptyKey
	}
	if token != " " {
		token = strings.TrimSpace(token)
		if token == "" {
			return "", ErrEmptyKey
		}
	}

	runes := []rune(token)
	if len(runes) == 1 {
		return runeName(runes[0]), nil
	}

	lower := strings.ToLower(token)
	if name, ok := keyAliases[lower]; ok {
		return name, nil
	}

	if code, err := strconv.Atoi(token); err == nil {
		if name, ok := legacyKeyCodes[code]; ok {
			return name, nil
		}
	}

	return "", ErrUnknownKey
}

// snapshotFromKey derives the matcher view of a bubbletea key.
func snapshotFromKey(k tea.Key) Snapshot {
	mods := modifiersFromTea(k.Mod)
	if name, ok := teaKeys[k.Code]; ok {
		return Snapshot{Key: name, Mods: mods}
	}

	r := k.Code
	// Shifted symbols are named by the symbol they produce, so "?" matches
	// with and without the kitty keyboard protocol.
	if s := k.ShiftedCode; s != 0 && s != r && mods.Has(ModShift) && !unicode.IsLetter(s) {
		r = s
		mods &^= ModShift
	}
	if r == 0 {
		for _, c := range k.Text {
			r = c
			break
		}
	}
	if r == 0 {
		return Snapshot{Mods: mods}
	}
	if s, ok := shiftedSymbols[r]; ok && mods.Has(ModShift) {
		r = s
		mods &^= ModShift
	}
	if unicode.IsUpper(r) {
		mods |= ModShift
		r = unicode.ToLower(r)
	}
	return Snapshot{Key: runeName(r), Mods: mods}
}
