package keyboardist

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// MonitorRecord describes one event seen by a scope in monitor mode.
type MonitorRecord struct {
	ScopeID   string
	ScopeName string
	Event     EventName
	Snapshot  Snapshot
	// Matched is the descriptor that matched, or "" when nothing did.
	Matched    string
	Suppressed bool
	Time       time.Time
}

// Observer receives monitor records. It must not block.
type Observer func(MonitorRecord)

// Scope owns one set of bindings and, while attached, exactly one listener
// on an input surface. A Scope belongs to one component; it is not shared.
//
// Lifecycle: New, Attach on mount, Update whenever the bindings change,
// Detach on unmount. A detached scope may be attached again.
type Scope struct {
	id       string
	name     string
	event    EventName
	monitor  bool
	observer Observer
	logger   *slog.Logger

	table atomic.Pointer[table]

	mu      sync.Mutex
	surface *Surface
	remove  func()
}

// Option configures a Scope.
type Option func(*Scope) error

// WithEventName sets the event the scope listens to. The default is keydown.
func WithEventName(name EventName) Option {
	return func(s *Scope) error {
		event, err := ParseEventName(string(name))
		if err != nil {
			return err
		}
		s.event = event
		return nil
	}
}

// WithMonitor enables monitor mode: every event reaching the scope is logged
// at debug level and reported to the observer, matched or not.
func WithMonitor(enabled bool) Option {
	return func(s *Scope) error {
		s.monitor = enabled
		return nil
	}
}

// WithObserver sets the monitor observer. It implies monitor mode.
func WithObserver(observer Observer) Option {
	return func(s *Scope) error {
		s.observer = observer
		if observer != nil {
			s.monitor = true
		}
		return nil
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scope) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// WithName sets a human-readable name used in logs and monitor records.
func WithName(name string) Option {
	return func(s *Scope) error {
		s.name = name
		return nil
	}
}

// New validates bindings and creates an unattached scope. Every malformed or
// colliding descriptor is reported in the returned error.
func New(bindings Bindings, opts ...Option) (*Scope, error) {
	s := &Scope{
		id:     uuid.NewString(),
		event:  EventKeyDown,
		logger: slog.New(slog.DiscardHandler),
	}

	var errs []error
	for _, opt := range opts {
		if err := opt(s); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	t, err := compile(bindings)
	if err != nil {
		return nil, err
	}
	s.table.Store(t)
	s.logger = s.logger.With("scope", s.label(), "event", string(s.event))
	return s, nil
}

// ID returns the scope's unique identifier.
func (s *Scope) ID() string { return s.id }

// Name returns the scope name given with WithName.
func (s *Scope) Name() string { return s.name }

// EventName returns the event the scope listens to.
func (s *Scope) EventName() EventName { return s.event }

// Attach registers the scope's listener on the surface. Attaching an already
// attached scope does nothing.
func (s *Scope) Attach(surface *Surface) error {
	if surface == nil {
		return ErrNilSurface
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.remove != nil {
		return nil
	}
	s.surface = surface
	s.remove = surface.AddListener(s.event, s.handle)
	s.logger.Debug("scope attached")
	return nil
}

// Detach removes the listener. No callback of this scope runs afterwards.
// Detaching an unattached scope does nothing.
func (s *Scope) Detach() {
	s.mu.Lock()
	remove := s.remove
	s.remove = nil
	s.surface = nil
	s.mu.Unlock()

	if remove == nil {
		return
	}
	remove()
	s.logger.Debug("scope detached")
}

// Attached reports whether the scope currently has a listener.
func (s *Scope) Attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove != nil
}

// Update replaces the bindings. The new set is active for the next event;
// the listener stays attached. On error the previous bindings remain active.
func (s *Scope) Update(bindings Bindings) error {
	t, err := compile(bindings)
	if err != nil {
		return err
	}
	s.table.Store(t)
	s.logger.Debug("scope bindings updated", "bindings", len(t.entries))
	return nil
}

// Descriptors returns the canonical descriptors currently bound, sorted.
func (s *Scope) Descriptors() []string {
	return s.table.Load().descriptors()
}

func (s *Scope) handle(ev *Event) {
	e, matched := s.table.Load().lookup(ev.snapshot)

	suppressed := false
	if matched {
		err := e.callback(ev)
		switch {
		case errors.Is(err, Suppress):
			ev.PreventDefault()
			ev.StopPropagation()
			suppressed = true
		case err != nil:
			s.logger.Warn("key binding callback failed", "descriptor", e.descriptor, "error", err)
		}
	}

	if s.monitor {
		s.report(ev, e.descriptor, suppressed)
	}
}

func (s *Scope) report(ev *Event, matched string, suppressed bool) {
	s.logger.Debug("key event",
		"key", ev.snapshot.String(),
		"matched", matched,
		"suppressed", suppressed,
	)
	if s.observer == nil {
		return
	}
	s.observer(MonitorRecord{
		ScopeID:    s.id,
		ScopeName:  s.name,
		Event:      ev.name,
		Snapshot:   ev.snapshot,
		Matched:    matched,
		Suppressed: suppressed,
		Time:       ev.time,
	})
}

func (s *Scope) label() string {
	if s.name != "" {
		return s.name
	}
	return s.id
}
