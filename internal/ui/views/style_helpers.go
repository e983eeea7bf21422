package views

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	"github.com/kpumuk/keyboardist/internal/ui/components/frame"
	"github.com/kpumuk/keyboardist/internal/ui/components/table"
)

func frameStylesFromTheme(styles Styles) frame.Styles {
	return frame.Styles{
		Focused: frame.StyleState{
			Title:  styles.Title,
			Meta:   styles.Muted,
			Border: styles.FocusBorder,
		},
		Blurred: frame.StyleState{
			Title:  styles.Title,
			Meta:   styles.Muted,
			Border: styles.BorderStyle,
		},
	}
}

func tableStylesFromTheme(styles Styles) table.Styles {
	return table.Styles{
		Text:      styles.Text,
		Muted:     styles.Muted,
		Header:    styles.TableHeader,
		Selected:  styles.TableSelected,
		Separator: styles.TableSeparator,
	}
}

// renderFrame draws the view's bordered box filling width x height.
func renderFrame(styles Styles, title, meta, content string, width, height int) string {
	return frame.New(
		frame.WithStyles(frameStylesFromTheme(styles)),
		frame.WithTitle(title),
		frame.WithMeta(meta),
		frame.WithContent(content),
		frame.WithPadding(1),
		frame.WithSize(width, height),
		frame.WithFocused(true),
	).View()
}

// instructions renders "key desc" pairs for enabled bindings, separated by
// a muted dot.
func instructions(styles Styles, bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, styles.KeyCap.Render(h.Key)+" "+styles.Muted.Render(h.Desc))
	}
	return strings.Join(parts, styles.Muted.Render(" · "))
}

func centered(width int, s string) string {
	w := lipgloss.Width(s)
	if width <= w {
		return s
	}
	return strings.Repeat(" ", (width-w)/2) + s
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}
