package views

import (
	"charm.land/bubbles/v2/key"

	"github.com/kpumuk/keyboardist/internal/ui/dialogs/help"
)

// helpSection creates a help section from the enabled bindings.
func helpSection(title string, bindings ...key.Binding) help.Section {
	enabled := make([]key.Binding, 0, len(bindings))
	for _, b := range bindings {
		if b.Enabled() {
			enabled = append(enabled, b)
		}
	}
	return help.Section{Title: title, Bindings: enabled}
}
