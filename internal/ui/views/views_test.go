package views

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/kpumuk/keyboardist"
	"github.com/kpumuk/keyboardist/internal/config"
	"github.com/kpumuk/keyboardist/internal/ui/keymap"
)

func testConfig() config.Config {
	return config.Config{
		BPM:     config.BPMConfig{Initial: 140, Min: 40, Max: 280, Step: 1, BigStep: 10},
		Love:    config.LoveConfig{Rate: 100 * time.Millisecond},
		Monitor: config.MonitorConfig{Enabled: true, Limit: 100},
	}
}

func keyCode(code rune, mod tea.KeyMod) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code, Mod: mod})
}

func keyText(text string) tea.KeyPressMsg {
	r := []rune(text)
	return tea.KeyPressMsg(tea.Key{Code: r[0], Text: text})
}

func keyRelease(code rune) tea.KeyReleaseMsg {
	return tea.KeyReleaseMsg(tea.Key{Code: code})
}

// send mimics the app: the surface first, then the view for keys nobody
// suppressed. It returns the commands from both.
func send(surface *keyboardist.Surface, v View, msg tea.Msg) tea.Cmd {
	cmd, handled := surface.Dispatch(msg)
	if handled {
		return cmd
	}
	_, viewCmd := v.Update(msg)
	return tea.Batch(cmd, viewCmd)
}

func collectMsgs(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collectMsgs(t, c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func mount(t *testing.T, v View) {
	t.Helper()
	v.SetStyles(Styles{})
	v.SetSize(100, 30)
	v.Mount()
	t.Cleanup(v.Unmount)
}

var noScopes = keymap.Scopes{}
