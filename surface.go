package keyboardist

import (
	"sync"
	"sync/atomic"

	tea "charm.land/bubbletea/v2"
)

// Surface is the input surface key events arrive on. A program usually has
// one, fed from the root model's Update; a focus-trapping layer such as a
// modal may own another.
//
// Listeners run in registration order. A listener that stops propagation
// keeps the event from later listeners.
type Surface struct {
	mu        sync.Mutex
	listeners []*listener
}

type listener struct {
	event   EventName
	fn      func(*Event)
	removed atomic.Bool
}

// NewSurface creates an empty input surface.
func NewSurface() *Surface {
	return &Surface{}
}

// AddListener registers fn for an event name and returns the function that
// removes it. Remove is idempotent and takes effect immediately, including
// for an event that is being dispatched and has not reached fn yet.
func (s *Surface) AddListener(event EventName, fn func(*Event)) (remove func()) {
	l := &listener{event: event, fn: fn}

	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()

	return func() {
		if l.removed.Swap(true) {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, candidate := range s.listeners {
			if candidate == l {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				break
			}
		}
	}
}

// Listeners returns the number of listeners registered for an event name.
func (s *Surface) Listeners(event EventName) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.listeners {
		if l.event == event {
			n++
		}
	}
	return n
}

// Dispatch delivers a key message to the listeners registered for its event
// name. It returns the commands queued by callbacks and whether the default
// handling was prevented; hosts skip their own key handling when handled is
// true. Messages that are not key presses or releases are ignored.
func (s *Surface) Dispatch(msg tea.Msg) (cmd tea.Cmd, handled bool) {
	ev, ok := newEvent(msg)
	if !ok {
		return nil, false
	}

	s.mu.Lock()
	listeners := make([]*listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		if l.event != ev.name || l.removed.Load() {
			continue
		}
		l.fn(ev)
		if ev.propagationStopped {
			break
		}
	}

	return tea.Batch(ev.cmds...), ev.defaultPrevented
}
