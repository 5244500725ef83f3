package trace

import (
	"io"
	"slices"
	"sync"
)

// RingTracer keeps the last N events in memory so a failed run can be
// replayed without streaming every event.
type RingTracer struct {
	mu     sync.RWMutex
	events []Event
	next   int
	full   bool
	level  Level
}

// NewRingTracer creates a RingTracer holding up to capacity events.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

// Emit stores a copy of ev, overwriting the oldest event when full.
func (t *RingTracer) Emit(ev *Event) {
	if !admits(t.level, ev) {
		return
	}
	stored := *ev
	stored.Seq = NextSeq()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.events[t.next] = stored
	t.next++
	if t.next == len(t.events) {
		t.next, t.full = 0, true
	}
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.full {
		return slices.Clone(t.events[:t.next])
	}
	return slices.Concat(t.events[t.next:], t.events[:t.next])
}

// History returns the stored events that concern the given tree files: their
// file spans, everything emitted under those spans, and driver-scope events.
// With no files it returns the whole snapshot.
func (t *RingTracer) History(files ...string) []Event {
	events := t.Snapshot()
	if len(files) == 0 {
		return events
	}
	spans := make(map[uint64]bool)
	for i := range events {
		if path, ok := FileOf(&events[i]); ok && slices.Contains(files, path) {
			spans[events[i].SpanID] = true
		}
	}
	return slices.DeleteFunc(events, func(ev Event) bool {
		if spans[ev.SpanID] || spans[ev.ParentID] {
			return false
		}
		return ev.Scope != ScopeDriver || ev.Kind == KindError
	})
}

// Dump writes the History of files to w.
func (t *RingTracer) Dump(w io.Writer, format Format, files ...string) error {
	for _, ev := range t.History(files...) {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
