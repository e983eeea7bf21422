// Package valuebox provides a text input that carries its own key bindings.
//
// The bindings are active while the box is focused. The host dispatches key
// messages to the shared surface first and forwards the ones nobody
// suppressed to Update, which hands them to the text input.
package valuebox

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/kpumuk/keyboardist"
)

// Model is a text input with an attached binding scope.
type Model struct {
	input   textinput.Model
	surface *keyboardist.Surface
	scope   *keyboardist.Scope

	name          string
	event         keyboardist.EventName
	logger        *slog.Logger
	observer      keyboardist.Observer
	mountLifetime bool
	closed        bool
}

// Option configures the value box.
type Option func(*Model)

// WithPrompt sets the prompt shown before the value.
func WithPrompt(prompt string) Option {
	return func(m *Model) {
		m.input.Prompt = prompt
	}
}

// WithPlaceholder sets the text shown while the value is empty.
func WithPlaceholder(placeholder string) Option {
	return func(m *Model) {
		m.input.Placeholder = placeholder
	}
}

// WithValue sets the initial value.
func WithValue(value string) Option {
	return func(m *Model) {
		m.input.SetValue(value)
	}
}

// WithWidth sets the visible width of the input.
func WithWidth(width int) Option {
	return func(m *Model) {
		m.input.SetWidth(width)
	}
}

// WithCharLimit limits the number of characters accepted.
func WithCharLimit(limit int) Option {
	return func(m *Model) {
		m.input.CharLimit = limit
	}
}

// WithEventName sets the event the bindings listen to.
func WithEventName(name keyboardist.EventName) Option {
	return func(m *Model) {
		m.event = name
	}
}

// WithMountLifetime keeps the bindings attached from construction until
// Close, regardless of focus.
func WithMountLifetime() Option {
	return func(m *Model) {
		m.mountLifetime = true
	}
}

// WithLogger sets the logger used by the binding scope.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithObserver reports every key event the bindings see to fn.
func WithObserver(fn keyboardist.Observer) Option {
	return func(m *Model) {
		m.observer = fn
	}
}

// WithName names the binding scope in logs and monitor records.
func WithName(name string) Option {
	return func(m *Model) {
		m.name = name
	}
}

// New creates a value box whose bindings live on surface.
func New(surface *keyboardist.Surface, bindings keyboardist.Bindings, opts ...Option) (*Model, error) {
	if surface == nil {
		return nil, keyboardist.ErrNilSurface
	}

	m := &Model{
		input:   textinput.New(),
		surface: surface,
		event:   keyboardist.EventKeyDown,
		name:    "valuebox",
	}
	for _, opt := range opts {
		opt(m)
	}

	scopeOpts := []keyboardist.Option{
		keyboardist.WithEventName(m.event),
		keyboardist.WithLogger(m.logger),
		keyboardist.WithName(m.name),
	}
	if m.observer != nil {
		scopeOpts = append(scopeOpts, keyboardist.WithObserver(m.observer))
	}
	scope, err := keyboardist.New(bindings, scopeOpts...)
	if err != nil {
		return nil, fmt.Errorf("valuebox bindings: %w", err)
	}
	m.scope = scope

	if m.mountLifetime {
		if err := m.scope.Attach(m.surface); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Focus attaches the bindings and focuses the input. A closed box stays
// inert.
func (m *Model) Focus() tea.Cmd {
	if m.closed {
		return nil
	}
	// Attach only fails for a nil surface, which New rejects.
	_ = m.scope.Attach(m.surface)
	return m.input.Focus()
}

// Blur unfocuses the input and, unless the box has mount lifetime, detaches
// the bindings.
func (m *Model) Blur() {
	if !m.mountLifetime {
		m.scope.Detach()
	}
	m.input.Blur()
}

// Close detaches the bindings for good. Call it when the box is torn down.
func (m *Model) Close() {
	m.closed = true
	m.scope.Detach()
	m.input.Blur()
}

// Focused reports whether the input has focus.
func (m *Model) Focused() bool {
	return m.input.Focused()
}

// Attached reports whether the bindings are currently active.
func (m *Model) Attached() bool {
	return m.scope.Attached()
}

// Scope exposes the binding scope, for help screens and monitors.
func (m *Model) Scope() *keyboardist.Scope {
	return m.scope
}

// Rebind replaces the bindings. On error the previous bindings stay active.
func (m *Model) Rebind(bindings keyboardist.Bindings) error {
	return m.scope.Update(bindings)
}

// Update forwards a message to the text input.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.closed {
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// View renders the input.
func (m *Model) View() string {
	return m.input.View()
}

// Value returns the current text.
func (m *Model) Value() string {
	return m.input.Value()
}

// SetValue replaces the current text.
func (m *Model) SetValue(value string) {
	m.input.SetValue(value)
	m.input.CursorEnd()
}

// Int parses the current text as a base-10 integer.
func (m *Model) Int() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
	if err != nil {
		return 0, fmt.Errorf("parse value %q: %w", m.input.Value(), err)
	}
	return n, nil
}

// SetInt replaces the current text with n.
func (m *Model) SetInt(n int) {
	m.SetValue(strconv.Itoa(n))
}
