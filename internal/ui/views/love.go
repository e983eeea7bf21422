package views

import (
	"errors"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/kpumuk/keyboardist"
	"github.com/kpumuk/keyboardist/internal/config"
	"github.com/kpumuk/keyboardist/internal/ui/components/meter"
	"github.com/kpumuk/keyboardist/internal/ui/dialogs/help"
	"github.com/kpumuk/keyboardist/internal/ui/keymap"
)

const (
	// loveStep is how much the meter fills per tick.
	loveStep = 0.02
	// holdTimeout stops filling when the terminal reports no key releases
	// and no repeat press arrived for this long.
	holdTimeout = 600 * time.Millisecond
)

// loveTickMsg advances the meter. Messages from an older generation are
// dropped.
type loveTickMsg struct {
	gen int
	at  time.Time
}

// LoveKeyMap holds the love meter bindings.
type LoveKeyMap struct {
	Fill  key.Binding
	Reset key.Binding
}

func loveKeys(cfg config.Config) LoveKeyMap {
	return LoveKeyMap{
		Fill:  keymap.Binding(cfg, "love", "fill", "hold to fill"),
		Reset: keymap.Binding(cfg, "love", "reset", "reset"),
	}
}

// Love fills a meter while a key is held: one scope starts filling on key
// press, another stops it on key release.
type Love struct {
	width   int
	height  int
	styles  Styles
	surface *keyboardist.Surface
	keys    LoveKeyMap
	rate    time.Duration
	now     func() time.Time

	press   *keyboardist.Scope
	release *keyboardist.Scope
	meter   meter.Model

	filling   bool
	releases  bool
	gen       int
	lastPress time.Time
}

// NewLove creates the love meter view.
func NewLove(surface *keyboardist.Surface, cfg config.Config, scopes keymap.Scopes) (*Love, error) {
	l := &Love{
		surface: surface,
		keys:    loveKeys(cfg),
		rate:    cfg.Love.Rate,
		now:     time.Now,
		meter:   meter.New(meter.WithLabel("love")),
	}

	press, release, err := l.bindings()
	if err != nil {
		return nil, err
	}
	if l.press, err = scopes.New("love", press); err != nil {
		return nil, err
	}
	if l.release, err = scopes.New("love-release", release, keyboardist.WithEventName(keyboardist.EventKeyUp)); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Love) bindings() (press, release keyboardist.Bindings, err error) {
	press, release = keyboardist.Bindings{}, keyboardist.Bindings{}
	err = errors.Join(
		keyboardist.Bind(press, l.keys.Fill, l.start),
		keyboardist.Bind(press, l.keys.Reset, keyboardist.Suppressing(l.reset)),
		keyboardist.Bind(release, l.keys.Fill, keyboardist.Suppressing(l.stop)),
	)
	return press, release, err
}

func (l *Love) start(ev *keyboardist.Event) error {
	l.lastPress = l.now()
	if !l.filling && !l.meter.Full() {
		l.filling = true
		l.gen++
		ev.Cmd(l.tick())
	}
	return keyboardist.Suppress
}

func (l *Love) stop() {
	l.filling = false
	l.gen++
}

func (l *Love) reset() {
	l.stop()
	l.meter.SetValue(0)
}

func (l *Love) tick() tea.Cmd {
	gen := l.gen
	return tea.Tick(l.rate, func(t time.Time) tea.Msg { return loveTickMsg{gen: gen, at: t} })
}

// Value returns the meter fill in [0, 1].
func (l *Love) Value() float64 {
	return l.meter.Value()
}

// Filling reports whether the meter is filling.
func (l *Love) Filling() bool {
	return l.filling
}

// Init implements View
func (l *Love) Init() tea.Cmd {
	return nil
}

// Update implements View
func (l *Love) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyboardEnhancementsMsg:
		l.releases = msg.SupportsEventTypes()
	case loveTickMsg:
		if !l.filling || msg.gen != l.gen {
			return l, nil
		}
		if !l.releases && msg.at.Sub(l.lastPress) > holdTimeout {
			l.stop()
			return l, nil
		}
		l.meter.SetValue(l.meter.Value() + loveStep)
		if l.meter.Full() {
			l.stop()
			return l, nil
		}
		return l, l.tick()
	}
	return l, nil
}

// View implements View
func (l *Love) View() string {
	contentWidth := max(l.width-4, 1)
	l.meter.SetWidth(min(contentWidth, 60))

	status := "release to stop"
	switch {
	case l.meter.Full():
		status = "full of love"
	case !l.filling:
		status = "idle"
	}
	mode := "key releases reported by the terminal"
	if !l.releases {
		mode = "no key releases from this terminal, stops shortly after the last repeat"
	}

	lines := []string{
		l.styles.Text.Render("Hold the key down to fill the meter; one scope listens for presses, another for releases."),
		instructions(l.styles, l.keys.Fill, l.keys.Reset),
		"",
		centered(contentWidth, l.meter.View()),
		"",
		centered(contentWidth, l.styles.Muted.Render(status)),
		"",
		l.styles.Muted.Render(mode),
	}
	return renderFrame(l.styles, "Love Meter", "", joinLines(lines...), l.width, l.height)
}

// Name implements View
func (l *Love) Name() string {
	return "Love"
}

// ShortHelp implements View
func (l *Love) ShortHelp() []key.Binding {
	return []key.Binding{l.keys.Fill, l.keys.Reset}
}

// HelpSection implements View
func (l *Love) HelpSection() help.Section {
	return helpSection("Love meter", l.keys.Fill, l.keys.Reset)
}

// SetSize implements View
func (l *Love) SetSize(width, height int) View {
	l.width = width
	l.height = height
	return l
}

// SetStyles implements View
func (l *Love) SetStyles(styles Styles) View {
	l.styles = styles
	value := l.meter.Value()
	l.meter = meter.New(
		meter.WithLabel("love"),
		meter.WithStyles(meter.Styles{
			Label:   styles.Text,
			Fill:    styles.MeterFill,
			Empty:   styles.MeterEmpty,
			Percent: styles.Muted,
		}),
		meter.WithWidth(60),
	)
	l.meter.SetValue(value)
	return l
}

// Mount implements View
func (l *Love) Mount() tea.Cmd {
	_ = l.press.Attach(l.surface)
	_ = l.release.Attach(l.surface)
	return nil
}

// Unmount implements View
func (l *Love) Unmount() {
	l.press.Detach()
	l.release.Detach()
	l.stop()
}

// Rebind implements View
func (l *Love) Rebind(cfg config.Config) error {
	previous := l.keys
	l.keys = loveKeys(cfg)
	press, release, err := l.bindings()
	if err == nil {
		err = l.press.Update(press)
	}
	if err != nil {
		l.keys = previous
		return err
	}
	if err := l.release.Update(release); err != nil {
		l.keys = previous
		restored, _, _ := l.bindings()
		_ = l.press.Update(restored)
		return err
	}
	l.rate = cfg.Love.Rate
	return nil
}

// InputFocused implements View
func (l *Love) InputFocused() bool {
	return false
}
