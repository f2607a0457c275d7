// Package eventlog records the ledger's activity as timestamped events.
package eventlog

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Veraticus/tally/internal/model"
)

// Log collects events in the order they were logged. It implements
// ledger.Observer.
type Log struct {
	now    func() time.Time
	events []model.Event
}

// Option configures a Log.
type Option func(*Log)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		l.now = now
	}
}

// New creates an empty log.
func New(opts ...Option) *Log {
	l := &Log{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Notify records message as a new event.
func (l *Log) Notify(message string) {
	e := model.NewEvent(l.now(), message)
	l.events = append(l.events, e)
	slog.Debug("Activity", "event", message)
}

// Events returns a copy of the recorded events.
func (l *Log) Events() []model.Event {
	out := make([]model.Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of recorded events.
func (l *Log) Len() int {
	return len(l.events)
}

// Clear drops all recorded events.
func (l *Log) Clear() {
	l.events = nil
}

// WriteTo prints the log with a header and a blank line after each event.
func (l *Log) WriteTo(w io.Writer) (int64, error) {
	var written int64

	n, err := fmt.Fprint(w, "Event Log:\n----------\n")
	written += int64(n)
	if err != nil {
		return written, err
	}

	for _, e := range l.events {
		n, err = fmt.Fprintf(w, "%s\n\n", e)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}

	return written, nil
}
