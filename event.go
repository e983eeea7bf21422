package keyboardist

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
)

// EventName selects which key messages a scope listens to.
type EventName string

const (
	// EventKeyDown is delivered for tea.KeyPressMsg, including auto-repeat.
	EventKeyDown EventName = "keydown"
	// EventKeyUp is delivered for tea.KeyReleaseMsg. Terminals only report
	// releases when keyboard enhancements are enabled.
	EventKeyUp EventName = "keyup"
)

// ParseEventName validates an event name. The empty string means EventKeyDown.
func ParseEventName(name string) (EventName, error) {
	switch EventName(strings.ToLower(strings.TrimSpace(name))) {
	case "", EventKeyDown:
		return EventKeyDown, nil
	case EventKeyUp:
		return EventKeyUp, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}

// eventNameOf reports which event a message is, if it is a key message.
func eventNameOf(msg tea.Msg) (EventName, tea.Key, bool) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return EventKeyDown, tea.Key(msg), true
	case tea.KeyReleaseMsg:
		return EventKeyUp, tea.Key(msg), true
	}
	return "", tea.Key{}, false
}

// Snapshot is the matcher's view of a key event: the canonical primary key
// and the modifiers held.
type Snapshot struct {
	Key  string
	Mods Modifier
}

// Combo returns the combination this snapshot would match.
func (s Snapshot) Combo() Combo {
	return Combo{Mods: s.Mods, Key: s.Key}
}

// String renders the snapshot as a canonical descriptor.
func (s Snapshot) String() string {
	return s.Combo().String()
}

// SnapshotOf derives a snapshot from a key message. ok is false for
// non-key messages.
func SnapshotOf(msg tea.Msg) (Snapshot, bool) {
	_, k, ok := eventNameOf(msg)
	if !ok {
		return Snapshot{}, false
	}
	return snapshotFromKey(k), true
}

// Event is a single key message travelling through a Surface. Callbacks
// receive the same *Event; it is only valid during dispatch.
type Event struct {
	name     EventName
	msg      tea.Msg
	key      tea.Key
	snapshot Snapshot
	time     time.Time

	defaultPrevented   bool
	propagationStopped bool
	cmds               []tea.Cmd
}

func newEvent(msg tea.Msg) (*Event, bool) {
	name, k, ok := eventNameOf(msg)
	if !ok {
		return nil, false
	}
	return &Event{
		name:     name,
		msg:      msg,
		key:      k,
		snapshot: snapshotFromKey(k),
		time:     time.Now(),
	}, true
}

// Name returns the event name.
func (e *Event) Name() EventName { return e.name }

// Msg returns the original bubbletea message.
func (e *Event) Msg() tea.Msg { return e.msg }

// Key returns the raw bubbletea key.
func (e *Event) Key() tea.Key { return e.key }

// Snapshot returns the canonical key and modifiers.
func (e *Event) Snapshot() Snapshot { return e.snapshot }

// Time returns when the surface received the event.
func (e *Event) Time() time.Time { return e.time }

// PreventDefault tells the host not to perform its default handling.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// StopPropagation keeps the event from reaching listeners registered after
// the current one.
func (e *Event) StopPropagation() { e.propagationStopped = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.propagationStopped }

// Cmd queues a command to be returned from Surface.Dispatch.
func (e *Event) Cmd(cmd tea.Cmd) {
	if cmd != nil {
		e.cmds = append(e.cmds, cmd)
	}
}
