// Package keylog keeps a bounded history of key events seen by binding
// scopes, for the key monitor.
package keylog

import (
	"fmt"
	"sync"
	"time"

	"github.com/kpumuk/keyboardist"
)

// DefaultLimit is the history size used when none is configured.
const DefaultLimit = 500

// Entry captures one key event as seen by one scope.
type Entry struct {
	Seq        uint64    `json:"seq"`
	Time       time.Time `json:"time"`
	Scope      string    `json:"scope"`
	ScopeID    string    `json:"scope_id"`
	Event      string    `json:"event"`
	Key        string    `json:"key"`
	Modifiers  string    `json:"modifiers,omitempty"`
	Matched    string    `json:"matched,omitempty"`
	Suppressed bool      `json:"suppressed"`
}

// Log records key events in a ring buffer. It is safe for concurrent use.
type Log struct {
	limit int
	mu    sync.RWMutex
	log   []Entry
	head  int
	full  bool
	seq   uint64
}

// New creates a log keeping at most limit entries. Zero disables recording.
func New(limit int) *Log {
	if limit < 0 {
		limit = 0
	}
	return &Log{limit: limit}
}

// Observer returns a scope observer that appends to the log.
func (l *Log) Observer() keyboardist.Observer {
	return func(r keyboardist.MonitorRecord) {
		l.Append(Entry{
			Time:       r.Time,
			Scope:      r.ScopeName,
			ScopeID:    r.ScopeID,
			Event:      string(r.Event),
			Key:        r.Snapshot.Key,
			Modifiers:  r.Snapshot.Mods.String(),
			Matched:    r.Matched,
			Suppressed: r.Suppressed,
		})
	}
}

// Entries returns the recorded entries in chronological order.
func (l *Log) Entries() []Entry {
	if l == nil {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.log) == 0 {
		return nil
	}
	if !l.full {
		return append([]Entry(nil), l.log...)
	}
	result := make([]Entry, 0, len(l.log))
	result = append(result, l.log[l.head:]...)
	result = append(result, l.log[:l.head]...)
	return result
}

// Len returns the number of entries currently held.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.log)
}

// Append adds an entry, evicting the oldest one when the log is full.
func (l *Log) Append(entry Entry) {
	if l == nil || l.limit == 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	entry.Seq = l.seq
	l.seq++
	if len(l.log) < l.limit {
		l.log = append(l.log, entry)
		if len(l.log) == l.limit {
			l.head = 0
			l.full = true
		}
		return
	}
	l.log[l.head] = entry
	l.head = (l.head + 1) % l.limit
}

// Clear drops every entry. Sequence numbers keep increasing.
func (l *Log) Clear() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log = nil
	l.head = 0
	l.full = false
}

// Combo renders the entry's key with its modifiers, e.g. "shift+Down".
func (e Entry) Combo() string {
	if e.Modifiers == "" {
		return e.Key
	}
	return e.Modifiers + "+" + e.Key
}

// FormatAge renders how long ago t was, compactly.
func FormatAge(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}
