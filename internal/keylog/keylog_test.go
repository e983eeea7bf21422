package keylog

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/kpumuk/keyboardist"
)

func TestLogRingBuffer(t *testing.T) {
	t.Parallel()

	l := New(3)
	for _, key := range []string{"a", "b", "c", "d", "e"} {
		l.Append(Entry{Key: key})
	}

	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	for i, want := range []string{"c", "d", "e"} {
		if entries[i].Key != want {
			t.Fatalf("entries[%d] = %q, want %q", i, entries[i].Key, want)
		}
		if entries[i].Seq != uint64(i+2) {
			t.Fatalf("entries[%d].Seq = %d, want %d", i, entries[i].Seq, i+2)
		}
	}
}

func TestLogClear(t *testing.T) {
	t.Parallel()

	l := New(2)
	l.Append(Entry{Key: "a"})
	l.Append(Entry{Key: "b"})
	l.Clear()
	if l.Len() != 0 || l.Entries() != nil {
		t.Fatalf("log not cleared: %v", l.Entries())
	}
	l.Append(Entry{Key: "c"})
	if entries := l.Entries(); len(entries) != 1 || entries[0].Seq != 2 {
		t.Fatalf("entries after clear = %+v", entries)
	}
}

func TestLogDisabled(t *testing.T) {
	t.Parallel()

	l := New(0)
	l.Append(Entry{Key: "a"})
	if l.Len() != 0 {
		t.Fatalf("disabled log recorded %d entries", l.Len())
	}

	var nilLog *Log
	nilLog.Append(Entry{})
	if nilLog.Entries() != nil || nilLog.Len() != 0 {
		t.Fatal("nil log should be empty")
	}
}

func TestObserverRecordsScopeEvents(t *testing.T) {
	t.Parallel()

	l := New(DefaultLimit)
	surface := keyboardist.NewSurface()
	scope, err := keyboardist.New(keyboardist.Bindings{
		"shift+down": keyboardist.Suppressing(func() {}),
	}, keyboardist.WithName("list"), keyboardist.WithObserver(l.Observer()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := scope.Attach(surface); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}

	surface.Dispatch(tea.KeyPressMsg{Code: tea.KeyDown, Mod: tea.ModShift})
	surface.Dispatch(tea.KeyPressMsg{Code: 'x', Text: "x"})

	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	first := entries[0]
	if first.Scope != "list" || first.Event != "keydown" || first.Combo() != "shift+Down" || first.Matched != "shift+down" || !first.Suppressed {
		t.Fatalf("first entry = %+v", first)
	}
	if second := entries[1]; second.Combo() != "KeyX" || second.Matched != "" {
		t.Fatalf("second entry = %+v", second)
	}
}

func TestFormatAge(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := map[string]struct {
		ago  time.Duration
		want string
	}{
		"millis":  {ago: 250 * time.Millisecond, want: "250ms"},
		"seconds": {ago: 1500 * time.Millisecond, want: "1.5s"},
		"minutes": {ago: 3 * time.Minute, want: "3m"},
		"hours":   {ago: 2 * time.Hour, want: "2h"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := FormatAge(now, now.Add(-tt.ago)); got != tt.want {
				t.Fatalf("FormatAge() = %q, want %q", got, tt.want)
			}
		})
	}
}
