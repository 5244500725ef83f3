package trace

import (
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Heartbeat wraps a Tracer and periodically emits a beat listing the tree
// files whose spans are still open. A file that keeps showing up across beats
// is the one a stuck run is waiting on.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration

	mu   sync.Mutex
	open map[uint64]string

	stop chan struct{}
	once sync.Once
	done sync.WaitGroup
}

// StartHeartbeat begins beating on tracer every interval. It returns nil when
// tracing is disabled or interval is not positive. Events for the run must be
// emitted through the returned Heartbeat so it can see file spans.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   tracer,
		interval: interval,
		open:     make(map[uint64]string),
		stop:     make(chan struct{}),
	}
	h.done.Add(1)
	go h.run()
	return h
}

func (h *Heartbeat) run() {
	defer h.done.Done()
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for beat := 1; ; beat++ {
		select {
		case <-ticker.C:
			h.beat(beat)
		case <-h.stop:
			return
		}
	}
}

func (h *Heartbeat) beat(n int) {
	files := h.OpenFiles()
	ev := &Event{
		Time:   time.Now(),
		Kind:   KindHeartbeat,
		Scope:  ScopeDriver,
		GID:    goroutineID(),
		Name:   "heartbeat",
		Detail: "#" + strconv.Itoa(n),
	}
	if len(files) > 0 {
		ev.Extra = map[string]string{"open": strings.Join(files, ",")}
	}
	h.tracer.Emit(ev)
}

// OpenFiles returns the sorted paths of file spans begun but not yet ended.
func (h *Heartbeat) OpenFiles() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	files := make([]string, 0, len(h.open))
	for _, path := range h.open {
		files = append(files, path)
	}
	slices.Sort(files)
	return files
}

// Emit records file span boundaries and forwards ev.
func (h *Heartbeat) Emit(ev *Event) {
	if path, ok := FileOf(ev); ok {
		h.mu.Lock()
		if ev.Kind == KindSpanBegin {
			h.open[ev.SpanID] = path
		} else {
			delete(h.open, ev.SpanID)
		}
		h.mu.Unlock()
	}
	h.tracer.Emit(ev)
}

// Stop stops beating and waits for the goroutine to exit. It is safe to call
// on a nil Heartbeat and more than once.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	h.done.Wait()
}

func (h *Heartbeat) Flush() error  { return h.tracer.Flush() }
func (h *Heartbeat) Close() error  { h.Stop(); return h.tracer.Close() }
func (h *Heartbeat) Level() Level  { return h.tracer.Level() }
func (h *Heartbeat) Enabled() bool { return h.tracer.Enabled() }
