package views

import (
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/kpumuk/keyboardist"
	"github.com/kpumuk/keyboardist/internal/config"
	"github.com/kpumuk/keyboardist/internal/mathutil"
	"github.com/kpumuk/keyboardist/internal/ui/dialogs/help"
	"github.com/kpumuk/keyboardist/internal/ui/keymap"
	"github.com/kpumuk/keyboardist/valuebox"
)

// beatMsg toggles the beat indicator. Messages from an older generation are
// dropped, which stops the previous tick chain.
type beatMsg struct {
	gen int
}

// BPMKeyMap holds the tempo view bindings.
type BPMKeyMap struct {
	Increment    key.Binding
	Decrement    key.Binding
	BigIncrement key.Binding
	BigDecrement key.Binding
}

func bpmKeys(cfg config.Config) BPMKeyMap {
	return BPMKeyMap{
		Increment:    keymap.Binding(cfg, "bpm", "increment", fmt.Sprintf("+%d", cfg.BPM.Step)),
		Decrement:    keymap.Binding(cfg, "bpm", "decrement", fmt.Sprintf("-%d", cfg.BPM.Step)),
		BigIncrement: keymap.Binding(cfg, "bpm", "big_increment", fmt.Sprintf("+%d", cfg.BPM.BigStep)),
		BigDecrement: keymap.Binding(cfg, "bpm", "big_decrement", fmt.Sprintf("-%d", cfg.BPM.BigStep)),
	}
}

// BPM is a tempo counter: a value box whose arrow bindings adjust the tempo
// within bounds, next to a beat indicator ticking at that tempo.
type BPM struct {
	width    int
	height   int
	styles   Styles
	settings config.BPMConfig
	keys     BPMKeyMap
	box      *valuebox.Model

	mounted bool
	gen     int
	beat    bool
	beats   int
}

// NewBPM creates the tempo view.
func NewBPM(surface *keyboardist.Surface, cfg config.Config, scopes keymap.Scopes) (*BPM, error) {
	b := &BPM{settings: cfg.BPM, keys: bpmKeys(cfg)}

	opts := []valuebox.Option{
		valuebox.WithPrompt("bpm "),
		valuebox.WithValue(fmt.Sprint(cfg.BPM.Initial)),
		valuebox.WithWidth(5),
		valuebox.WithCharLimit(4),
		valuebox.WithName("bpm"),
		valuebox.WithLogger(scopes.Logger),
	}
	if scopes.Observer != nil {
		opts = append(opts, valuebox.WithObserver(scopes.Observer))
	}
	bindings, err := b.bindings()
	if err != nil {
		return nil, err
	}
	box, err := valuebox.New(surface, bindings, opts...)
	if err != nil {
		return nil, err
	}
	b.box = box
	return b, nil
}

func (b *BPM) bindings() (keyboardist.Bindings, error) {
	bs := keyboardist.Bindings{}
	err := errors.Join(
		keyboardist.Bind(bs, b.keys.Increment, b.adjust(func() int { return b.settings.Step })),
		keyboardist.Bind(bs, b.keys.Decrement, b.adjust(func() int { return -b.settings.Step })),
		keyboardist.Bind(bs, b.keys.BigIncrement, b.adjust(func() int { return b.settings.BigStep })),
		keyboardist.Bind(bs, b.keys.BigDecrement, b.adjust(func() int { return -b.settings.BigStep })),
	)
	return bs, err
}

func (b *BPM) adjust(delta func() int) keyboardist.Callback {
	return func(*keyboardist.Event) error {
		b.box.SetInt(mathutil.Clamp(b.Tempo()+delta(), b.settings.Min, b.settings.Max))
		return keyboardist.Suppress
	}
}

// Tempo returns the current tempo clamped to the configured bounds. Text
// that is not a number yields the initial tempo.
func (b *BPM) Tempo() int {
	n, err := b.box.Int()
	if err != nil {
		return b.settings.Initial
	}
	return mathutil.Clamp(n, b.settings.Min, b.settings.Max)
}

func (b *BPM) tick() tea.Cmd {
	gen := b.gen
	half := time.Minute / time.Duration(b.Tempo()) / 2
	return tea.Tick(half, func(time.Time) tea.Msg { return beatMsg{gen: gen} })
}

// Init implements View
func (b *BPM) Init() tea.Cmd {
	return nil
}

// Update implements View
func (b *BPM) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case beatMsg:
		if !b.mounted || msg.gen != b.gen {
			return b, nil
		}
		b.beat = !b.beat
		if b.beat {
			b.beats++
		}
		return b, b.tick()
	case tea.KeyPressMsg, tea.KeyReleaseMsg:
		return b, b.box.Update(msg)
	}
	return b, nil
}

// View implements View
func (b *BPM) View() string {
	indicator := b.styles.BeatOff.Render("○")
	if b.beat {
		indicator = b.styles.BeatOn.Render("●")
	}

	contentWidth := max(b.width-4, 1)
	lines := []string{
		b.styles.Text.Render("Type a tempo or use the arrows; bounds are enforced by the bindings."),
		instructions(b.styles, b.keys.Increment, b.keys.Decrement, b.keys.BigIncrement, b.keys.BigDecrement),
		"",
		centered(contentWidth, b.box.View()+"  "+indicator),
		"",
		centered(contentWidth, b.styles.Muted.Render(fmt.Sprintf("%d–%d bpm, %d beats", b.settings.Min, b.settings.Max, b.beats))),
	}
	if _, err := b.box.Int(); err != nil {
		lines = append(lines, "", centered(contentWidth, b.styles.Muted.Render(fmt.Sprintf("not a number, playing at %d", b.Tempo()))))
	}
	return renderFrame(b.styles, "Tempo", "", joinLines(lines...), b.width, b.height)
}

// Name implements View
func (b *BPM) Name() string {
	return "BPM"
}

// ShortHelp implements View
func (b *BPM) ShortHelp() []key.Binding {
	return []key.Binding{b.keys.Increment, b.keys.Decrement, b.keys.BigIncrement}
}

// HelpSection implements View
func (b *BPM) HelpSection() help.Section {
	s := helpSection("Tempo", b.keys.Increment, b.keys.Decrement, b.keys.BigIncrement, b.keys.BigDecrement)
	s.Lines = []string{"digits edit the tempo directly"}
	return s
}

// SetSize implements View
func (b *BPM) SetSize(width, height int) View {
	b.width = width
	b.height = height
	return b
}

// SetStyles implements View
func (b *BPM) SetStyles(styles Styles) View {
	b.styles = styles
	return b
}

// Mount implements View
func (b *BPM) Mount() tea.Cmd {
	b.mounted = true
	b.gen++
	return tea.Batch(b.box.Focus(), b.tick())
}

// Unmount implements View
func (b *BPM) Unmount() {
	b.mounted = false
	b.gen++
	b.beat = false
	b.box.Blur()
}

// Rebind implements View
func (b *BPM) Rebind(cfg config.Config) error {
	previousKeys, previousSettings := b.keys, b.settings
	b.keys, b.settings = bpmKeys(cfg), cfg.BPM
	bindings, err := b.bindings()
	if err == nil {
		err = b.box.Rebind(bindings)
	}
	if err != nil {
		b.keys, b.settings = previousKeys, previousSettings
		return err
	}
	return nil
}

// InputFocused implements View
func (b *BPM) InputFocused() bool {
	return b.box.Focused()
}
