package keyboardist

import (
	"errors"
	"fmt"
	"sort"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// Suppress is returned by a Callback to prevent the host's default handling
// of the event and to stop it from reaching listeners registered later. It is
// never reported as an error.
var Suppress = errors.New("keyboardist: suppress event")

// Callback reacts to a matched key event. Returning Suppress stops the event;
// returning nil lets it continue. Other errors are logged and otherwise
// behave like nil.
type Callback func(ev *Event) error

// Bindings maps descriptors to callbacks.
type Bindings map[string]Callback

// Do adapts a zero-argument function into a Callback that lets the event
// continue.
func Do(fn func()) Callback {
	return func(*Event) error {
		fn()
		return nil
	}
}

// Suppressing adapts a zero-argument function into a Callback that
// suppresses the event after running.
func Suppressing(fn func()) Callback {
	return func(*Event) error {
		fn()
		return Suppress
	}
}

// Bind registers cb under every key of a bubbles key binding, so a
// component's help key map and its scope share one source of truth. Disabled
// bindings are skipped. A key that is already in bindings keeps its earlier
// callback and is reported as ErrDuplicateBinding.
func Bind(bindings Bindings, binding key.Binding, cb Callback) error {
	if bindings == nil {
		return ErrNilBindings
	}
	if !binding.Enabled() {
		return nil
	}
	var errs []error
	for _, k := range binding.Keys() {
		if _, ok := bindings[k]; ok {
			errs = append(errs, &DescriptorError{
				Descriptor: k,
				Err:        fmt.Errorf("%w: already bound", ErrDuplicateBinding),
			})
			continue
		}
		bindings[k] = cb
	}
	return errors.Join(errs...)
}

// Matches reports whether a key message matches the descriptor. Malformed
// descriptors never match.
func Matches(descriptor string, msg tea.Msg) bool {
	snapshot, ok := SnapshotOf(msg)
	if !ok {
		return false
	}
	combo, err := ParseDescriptor(descriptor)
	if err != nil {
		return false
	}
	return combo.Matches(snapshot)
}

type entry struct {
	descriptor string
	combo      Combo
	callback   Callback
}

// table is an immutable compiled bindings map.
type table struct {
	entries map[Combo]entry
}

// compile validates every descriptor and builds the lookup table. All
// problems are reported together.
func compile(bindings Bindings) (*table, error) {
	descriptors := make([]string, 0, len(bindings))
	for descriptor := range bindings {
		descriptors = append(descriptors, descriptor)
	}
	// Sorted so that error messages and duplicate reports are stable.
	sort.Strings(descriptors)

	t := &table{entries: make(map[Combo]entry, len(bindings))}
	var errs []error
	for _, descriptor := range descriptors {
		cb := bindings[descriptor]
		combo, err := ParseDescriptor(descriptor)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if cb == nil {
			errs = append(errs, &DescriptorError{Descriptor: descriptor, Err: ErrNilCallback})
			continue
		}
		if existing, ok := t.entries[combo]; ok {
			errs = append(errs, &DescriptorError{
				Descriptor: descriptor,
				Err:        fmt.Errorf("%w: same keys as %q (%s)", ErrDuplicateBinding, existing.descriptor, combo),
			})
			continue
		}
		t.entries[combo] = entry{descriptor: descriptor, combo: combo, callback: cb}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return t, nil
}

func (t *table) lookup(s Snapshot) (entry, bool) {
	if t == nil {
		return entry{}, false
	}
	e, ok := t.entries[s.Combo()]
	return e, ok
}

func (t *table) descriptors() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.entries))
	for combo := range t.entries {
		out = append(out, combo.String())
	}
	sort.Strings(out)
	return out
}
