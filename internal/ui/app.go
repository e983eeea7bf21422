// Package ui renders the Bubble Tea application UI.
package ui

import (
	"errors"
	"log/slog"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kpumuk/keyboardist"
	"github.com/kpumuk/keyboardist/internal/config"
	"github.com/kpumuk/keyboardist/internal/keylog"
	"github.com/kpumuk/keyboardist/internal/mathutil"
	"github.com/kpumuk/keyboardist/internal/ui/components/errorpopup"
	"github.com/kpumuk/keyboardist/internal/ui/components/jsonview"
	"github.com/kpumuk/keyboardist/internal/ui/components/navbar"
	"github.com/kpumuk/keyboardist/internal/ui/components/statusbar"
	"github.com/kpumuk/keyboardist/internal/ui/dialogs"
	"github.com/kpumuk/keyboardist/internal/ui/dialogs/help"
	"github.com/kpumuk/keyboardist/internal/ui/dialogs/monitor"
	"github.com/kpumuk/keyboardist/internal/ui/keymap"
	"github.com/kpumuk/keyboardist/internal/ui/theme"
	"github.com/kpumuk/keyboardist/internal/ui/views"
)

// ConfigReloadedMsg carries a configuration reloaded from disk. Err is set
// when the new file could not be read or validated.
type ConfigReloadedMsg struct {
	Config config.Config
	Err    error
}

// App is the main application model.
type App struct {
	cfg     config.Config
	logger  *slog.Logger
	keys    KeyMap
	keylog  *keylog.Log
	scopes  keymap.Scopes
	surface *keyboardist.Surface
	global  *keyboardist.Scope

	width         int
	height        int
	ready         bool
	releaseEvents bool
	activeView    int
	views         []views.View
	statusBar     statusbar.Model
	navbar        navbar.Model
	errorPopup    errorpopup.Model
	dialogs       dialogs.DialogCmp
	styles        theme.Styles
	configError   error
}

// Option configures the App.
type Option func(*App)

// WithLogger sets the logger shared by the app and every binding scope.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// WithKeyLog sets the history feeding the key monitor.
func WithKeyLog(log *keylog.Log) Option {
	return func(a *App) { a.keylog = log }
}

// New creates a new App instance.
func New(cfg config.Config, opts ...Option) (*App, error) {
	a := &App{
		cfg:     cfg,
		keys:    NewKeyMap(cfg),
		surface: keyboardist.NewSurface(),
		dialogs: dialogs.NewDialogCmp(),
		styles:  theme.NewStyles(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.New(slog.DiscardHandler)
	}
	if a.keylog == nil && cfg.Monitor.Enabled {
		a.keylog = keylog.New(cfg.Monitor.Limit)
	}
	a.scopes = keymap.Scopes{Logger: a.logger}
	if a.keylog != nil {
		a.scopes.Observer = a.keylog.Observer()
	}
	a.keys.Monitor.SetEnabled(a.keylog != nil)

	// The global scope is attached first so it sees every key before the
	// active view's scopes.
	bindings, err := a.globalBindings()
	if err != nil {
		return nil, err
	}
	global, err := a.scopes.New("global", bindings)
	if err != nil {
		return nil, err
	}
	if err := global.Attach(a.surface); err != nil {
		return nil, err
	}
	a.global = global

	keyboardists, err := views.NewKeyboardists(a.surface, cfg, a.scopes)
	if err != nil {
		return nil, err
	}
	bpm, err := views.NewBPM(a.surface, cfg, a.scopes)
	if err != nil {
		return nil, err
	}
	love, err := views.NewLove(a.surface, cfg, a.scopes)
	if err != nil {
		return nil, err
	}
	a.views = []views.View{keyboardists, bpm, love}

	viewStyles := views.Styles{
		Title:          a.styles.ViewTitle,
		Text:           a.styles.ViewText,
		Muted:          a.styles.ViewMuted,
		KeyCap:         a.styles.KeyCap,
		TableHeader:    a.styles.TableHeader,
		TableSelected:  a.styles.TableSelected,
		TableSeparator: a.styles.TableSeparator,
		BorderStyle:    a.styles.BorderStyle,
		FocusBorder:    a.styles.FocusBorder,
		MeterFill:      a.styles.MeterFill,
		MeterEmpty:     a.styles.MeterEmpty,
		BeatOn:         a.styles.BeatOn,
		BeatOff:        a.styles.BeatOff,
	}
	navViews := make([]navbar.ViewInfo, len(a.views))
	for i := range a.views {
		a.views[i] = a.views[i].SetStyles(viewStyles)
		navViews[i] = navbar.ViewInfo{Name: a.views[i].Name()}
	}

	a.statusBar = statusbar.New(statusbar.WithStyles(statusbar.Styles{
		Bar:       a.styles.StatusBar,
		Label:     a.styles.StatusLabel,
		Value:     a.styles.StatusValue,
		Separator: a.styles.StatusLabel,
	}))
	a.navbar = navbar.New(
		navbar.WithStyles(navbar.Styles{
			Bar:    a.styles.NavBar,
			Brand:  a.styles.NavBrand,
			Key:    a.styles.NavKey,
			Item:   a.styles.NavItem,
			Active: a.styles.NavActive,
		}),
		navbar.WithBrand("keyboardist"),
		navbar.WithViews(navViews),
	)
	a.errorPopup = errorpopup.New(
		errorpopup.WithTitle("Config Error"),
		errorpopup.WithHint("Save a valid config file to dismiss."),
	)
	a.refreshHints()
	return a, nil
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.views[a.activeView].Mount()
}

// Surface returns the key surface shared by the global and view scopes.
func (a *App) Surface() *keyboardist.Surface {
	return a.surface
}

// ActiveView returns the name of the active view.
func (a *App) ActiveView() string {
	return a.views[a.activeView].Name()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true

		a.statusBar.SetWidth(msg.Width)
		a.navbar.SetWidth(msg.Width)

		contentHeight := max(msg.Height-a.statusBar.Height()-a.navbar.Height(), 0)
		for i := range a.views {
			a.views[i] = a.views[i].SetSize(msg.Width, contentHeight)
		}
		a.errorPopup.SetSize(msg.Width, contentHeight)

		var cmd tea.Cmd
		a.dialogs, cmd = a.dialogs.Update(msg)
		cmds = append(cmds, cmd)

	case ConfigReloadedMsg:
		a.applyConfig(msg.Config, msg.Err)

	case tea.KeyboardEnhancementsMsg:
		a.releaseEvents = msg.SupportsEventTypes()
		a.logger.Debug("keyboard enhancements", "flags", msg.Flags, "release_events", a.releaseEvents)
		cmds = append(cmds, a.broadcast(msg))

	case dialogs.OpenDialogMsg, dialogs.CloseDialogMsg:
		var cmd tea.Cmd
		a.dialogs, cmd = a.dialogs.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyPressMsg, tea.KeyReleaseMsg:
		cmds = append(cmds, a.handleKey(msg))

	default:
		cmds = append(cmds, a.broadcast(msg))
	}

	return a, tea.Batch(cmds...)
}

// handleKey routes a key to the top dialog when one is open. Otherwise the
// surface sees it first and the active view gets what nobody suppressed.
// Releases also reach the surface while a dialog is open, so a key held
// before the dialog opened still ends.
func (a *App) handleKey(msg tea.Msg) tea.Cmd {
	if a.dialogs.HasDialogs() {
		var cmd tea.Cmd
		a.dialogs, cmd = a.dialogs.Update(msg)
		if _, ok := msg.(tea.KeyReleaseMsg); ok {
			releaseCmd, _ := a.surface.Dispatch(msg)
			cmd = tea.Batch(cmd, releaseCmd)
		}
		return cmd
	}

	cmd, handled := a.surface.Dispatch(msg)
	if handled {
		return cmd
	}
	var viewCmd tea.Cmd
	a.views[a.activeView], viewCmd = a.views[a.activeView].Update(msg)
	return tea.Batch(cmd, viewCmd)
}

// broadcast delivers a message to every view. Inactive views ignore their
// stale ticks.
func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.views))
	for i := range a.views {
		var cmd tea.Cmd
		a.views[i], cmd = a.views[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (a *App) globalBindings() (keyboardist.Bindings, error) {
	b := keyboardist.Bindings{}
	err := errors.Join(
		keyboardist.Bind(b, a.keys.Quit, a.guard(func(ev *keyboardist.Event) error {
			ev.Cmd(tea.Quit)
			return keyboardist.Suppress
		})),
		keyboardist.Bind(b, a.keys.View1, a.guard(a.switchTo(func() int { return 0 }))),
		keyboardist.Bind(b, a.keys.View2, a.guard(a.switchTo(func() int { return 1 }))),
		keyboardist.Bind(b, a.keys.View3, a.guard(a.switchTo(func() int { return 2 }))),
		keyboardist.Bind(b, a.keys.NextView, a.guard(a.switchTo(func() int { return a.activeView + 1 }))),
		keyboardist.Bind(b, a.keys.PrevView, a.guard(a.switchTo(func() int { return a.activeView - 1 }))),
		keyboardist.Bind(b, a.keys.Help, a.guard(a.openHelp)),
		keyboardist.Bind(b, a.keys.Monitor, a.guard(a.openMonitor)),
	)
	return b, err
}

// guard lets printable keys through to a focused text input instead of
// running the global action.
func (a *App) guard(cb keyboardist.Callback) keyboardist.Callback {
	return func(ev *keyboardist.Event) error {
		k := ev.Key()
		printable := k.Text != "" && k.Mod&(tea.ModCtrl|tea.ModAlt|tea.ModMeta|tea.ModSuper) == 0
		if printable && a.views[a.activeView].InputFocused() {
			return nil
		}
		return cb(ev)
	}
}

func (a *App) switchTo(target func() int) keyboardist.Callback {
	return func(ev *keyboardist.Event) error {
		next := mathutil.Wrap(target(), len(a.views))
		if next != a.activeView {
			a.views[a.activeView].Unmount()
			a.activeView = next
			a.navbar.SetActive(next)
			ev.Cmd(a.views[next].Mount())
			a.refreshHints()
			a.logger.Debug("view switched", "view", a.views[next].Name())
		}
		return keyboardist.Suppress
	}
}

func (a *App) openHelp(ev *keyboardist.Event) error {
	global := help.Section{Title: "Global", Column: help.ColumnLeft}
	for _, group := range a.keys.FullHelp() {
		global.Bindings = append(global.Bindings, group...)
	}
	sections := []help.Section{global, a.views[a.activeView].HelpSection()}
	if a.keylog != nil {
		mk := monitorKeys(a.cfg)
		sections = append(sections, help.Section{
			Title:    "Key monitor",
			Bindings: []key.Binding{mk.Up, mk.Down, mk.Clear, mk.Close},
		})
	}

	dialog, err := help.New(helpKeys(a.cfg), a.scopes,
		help.WithSections(sections...),
		help.WithStyles(help.Styles{
			Title:   a.styles.ViewTitle,
			Border:  a.styles.FocusBorder,
			Section: a.styles.ViewTitle,
			Key:     a.styles.KeyCap,
			Desc:    a.styles.ViewMuted,
		}),
	)
	if err != nil {
		return err
	}
	ev.Cmd(dialogs.Open(dialog))
	return keyboardist.Suppress
}

func (a *App) openMonitor(ev *keyboardist.Event) error {
	if a.keylog == nil {
		return nil
	}
	dialog, err := monitor.New(a.keylog, monitorKeys(a.cfg), a.scopes,
		monitor.WithStyles(monitor.Styles{
			Title:          a.styles.ViewTitle,
			Border:         a.styles.FocusBorder,
			Text:           a.styles.ViewText,
			Muted:          a.styles.ViewMuted,
			TableHeader:    a.styles.TableHeader,
			TableSelected:  a.styles.TableSelected,
			TableSeparator: a.styles.TableSeparator,
			Suppressed:     a.styles.Suppressed,
			JSON:           jsonview.DefaultStyles(),
		}),
	)
	if err != nil {
		return err
	}
	ev.Cmd(dialogs.Open(dialog))
	return keyboardist.Suppress
}

// applyConfig rebinds the global scope and every view. A failed reload keeps
// the previous bindings and shows the error popup.
func (a *App) applyConfig(cfg config.Config, err error) {
	if err != nil {
		a.logger.Warn("config reload failed", "error", err)
		a.configError = err
		return
	}

	var errs []error
	previous := a.keys
	a.cfg = cfg
	a.keys = NewKeyMap(cfg)
	a.keys.Monitor.SetEnabled(a.keylog != nil)
	if err := a.rebindGlobal(); err != nil {
		a.keys = previous
		errs = append(errs, err)
	}
	for _, v := range a.views {
		if err := v.Rebind(cfg); err != nil {
			errs = append(errs, err)
		}
	}
	a.configError = errors.Join(errs...)
	a.refreshHints()

	if a.configError != nil {
		a.logger.Warn("config applied with errors", "file", cfg.File, "error", a.configError)
		return
	}
	a.logger.Info("config reloaded", "file", cfg.File)
}

func (a *App) rebindGlobal() error {
	bindings, err := a.globalBindings()
	if err != nil {
		return err
	}
	return a.global.Update(bindings)
}

func (a *App) refreshHints() {
	hints := append(a.views[a.activeView].ShortHelp(), a.keys.ShortHelp()...)
	a.navbar.SetHints(hints...)
}

func (a *App) statusData() statusbar.Data {
	data := statusbar.Data{
		KeyDownListeners: a.surface.Listeners(keyboardist.EventKeyDown),
		KeyUpListeners:   a.surface.Listeners(keyboardist.EventKeyUp),
		Monitoring:       a.keylog != nil,
		ReleaseEvents:    a.releaseEvents,
	}
	if a.keylog == nil {
		return data
	}
	entries := a.keylog.Entries()
	data.Events = len(entries)
	if len(entries) > 0 {
		last := entries[len(entries)-1]
		data.LastKey = last.Combo()
		data.LastScope = last.Scope
		data.LastSuppressed = last.Suppressed
	}
	return data
}

// View implements tea.Model.
func (a *App) View() tea.View {
	v := tea.NewView(a.render())
	v.AltScreen = true
	v.KeyboardEnhancements.ReportEventTypes = true
	return v
}

func (a *App) render() string {
	if !a.ready {
		return "Initializing..."
	}

	content := a.views[a.activeView].View()
	if a.configError != nil {
		a.errorPopup.SetMessage(a.configError.Error())
		a.errorPopup.SetBackground(content)
		content = a.errorPopup.View()
	}

	a.statusBar.SetData(a.statusData())
	screen := lipgloss.JoinVertical(
		lipgloss.Left,
		a.statusBar.View(),
		content,
		a.navbar.View(),
	)
	if !a.dialogs.HasDialogs() {
		return screen
	}

	layers := append([]*lipgloss.Layer{lipgloss.NewLayer(screen)}, a.dialogs.GetLayers()...)
	return lipgloss.NewCanvas(layers...).Render()
}
