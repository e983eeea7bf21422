package ui

import (
	"charm.land/bubbles/v2/key"

	"github.com/kpumuk/keyboardist/internal/config"
	"github.com/kpumuk/keyboardist/internal/ui/dialogs/help"
	"github.com/kpumuk/keyboardist/internal/ui/dialogs/monitor"
	"github.com/kpumuk/keyboardist/internal/ui/keymap"
)

// KeyMap defines all global keybindings.
type KeyMap struct {
	Quit     key.Binding
	View1    key.Binding
	View2    key.Binding
	View3    key.Binding
	NextView key.Binding
	PrevView key.Binding
	Help     key.Binding
	Monitor  key.Binding
}

// NewKeyMap returns the global keybindings of cfg.
func NewKeyMap(cfg config.Config) KeyMap {
	return KeyMap{
		Quit:     keymap.Binding(cfg, "global", "quit", "quit"),
		View1:    keymap.Binding(cfg, "global", "view1", "keyboardists"),
		View2:    keymap.Binding(cfg, "global", "view2", "bpm"),
		View3:    keymap.Binding(cfg, "global", "view3", "love"),
		NextView: keymap.Binding(cfg, "global", "next_view", "next view"),
		PrevView: keymap.Binding(cfg, "global", "prev_view", "prev view"),
		Help:     keymap.Binding(cfg, "global", "help", "help"),
		Monitor:  keymap.Binding(cfg, "global", "monitor", "key monitor"),
	}
}

// ShortHelp returns keybindings to show in the navbar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Monitor, k.Quit}
}

// FullHelp returns keybindings for the help dialog.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.View1, k.View2, k.View3, k.NextView, k.PrevView},
		{k.Help, k.Monitor, k.Quit},
	}
}

func helpKeys(cfg config.Config) help.KeyMap {
	return help.KeyMap{
		Close: keymap.Binding(cfg, "help", "close", "close"),
		Up:    keymap.Binding(cfg, "help", "up", "scroll up"),
		Down:  keymap.Binding(cfg, "help", "down", "scroll down"),
	}
}

func monitorKeys(cfg config.Config) monitor.KeyMap {
	return monitor.KeyMap{
		Close: keymap.Binding(cfg, "monitor", "close", "close"),
		Up:    keymap.Binding(cfg, "monitor", "up", "older"),
		Down:  keymap.Binding(cfg, "monitor", "down", "newer"),
		Clear: keymap.Binding(cfg, "monitor", "clear", "clear"),
	}
}
