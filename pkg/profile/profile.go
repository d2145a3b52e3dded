// Package profile reports named timed intervals to an external sink.
//
// Timing is observational only; swapping Nop for any other Sink must never
// change simulation results.
package profile

import (
	"log/slog"
	"sync"
	"time"
)

// Sink receives the start and end markers of a named interval.
type Sink interface {
	Begin(label string)
	End(label string)
}

// Nop discards every marker.
type Nop struct{}

func (Nop) Begin(string) {}
func (Nop) End(string)   {}

// Timer is a scoped interval handle. Stop emits the end marker; use it with
// defer so every exit path closes the interval.
type Timer struct {
	sink  Sink
	label string
}

// Start emits the begin marker for label and returns the handle that ends it.
// A nil sink behaves like Nop.
func Start(sink Sink, label string) Timer {
	if sink == nil {
		return Timer{}
	}
	sink.Begin(label)
	return Timer{sink: sink, label: label}
}

// Stop emits the end marker. Calling Stop on a zero Timer does nothing.
func (t Timer) Stop() {
	if t.sink == nil {
		return
	}
	t.sink.End(t.label)
}

// SlogSink logs the duration of each interval at debug level.
type SlogSink struct {
	logger *slog.Logger
	now    func() time.Time

	mu     sync.Mutex
	starts map[string]time.Time
}

// NewSlogSink returns a sink writing to logger, or slog.Default when nil.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger, now: time.Now, starts: make(map[string]time.Time)}
}

func (s *SlogSink) Begin(label string) {
	s.mu.Lock()
	s.starts[label] = s.now()
	s.mu.Unlock()
}

func (s *SlogSink) End(label string) {
	s.mu.Lock()
	start, ok := s.starts[label]
	delete(s.starts, label)
	s.mu.Unlock()
	if !ok {
		s.logger.Warn("profile end without begin", "label", label)
		return
	}
	s.logger.Debug("timed", "label", label, "elapsed", s.now().Sub(start))
}

// Recorder accumulates per-label counts and total durations.
type Recorder struct {
	now func() time.Time

	mu     sync.Mutex
	open   map[string]time.Time
	totals map[string]Total
}

// Total summarizes the closed intervals of one label.
type Total struct {
	Count   int
	Elapsed time.Duration
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{now: time.Now, open: make(map[string]time.Time), totals: make(map[string]Total)}
}

func (r *Recorder) Begin(label string) {
	r.mu.Lock()
	r.open[label] = r.now()
	r.mu.Unlock()
}

func (r *Recorder) End(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	start, ok := r.open[label]
	if !ok {
		return
	}
	delete(r.open, label)
	t := r.totals[label]
	t.Count++
	t.Elapsed += r.now().Sub(start)
	r.totals[label] = t
}

// Totals returns a copy of the accumulated totals.
func (r *Recorder) Totals() map[string]Total {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]Total, len(r.totals))
	for k, v := range r.totals {
		out[k] = v
	}
	return out
}

// Open reports how many intervals have begun without ending.
func (r *Recorder) Open() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.open)
}
