// Package notify is the notification surface: short-lived, severity-tagged
// messages about the analysis workflow. Emitting is fire-and-forget.
package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
)

type Kind string

const (
	FileAccepted    Kind = "file_accepted"
	FileRejected    Kind = "file_rejected"
	SubmitStarted   Kind = "submit_started"
	SubmitSucceeded Kind = "submit_succeeded"
	SubmitFailed    Kind = "submit_failed"
)

const (
	SuccessDuration = 2 * time.Second
	ErrorDuration   = 4 * time.Second
)

type Event struct {
	Kind     Kind
	Severity Severity
	Message  string
	Duration time.Duration
}

// NewSuccess builds a success event with the default duration.
func NewSuccess(kind Kind, message string) Event {
	return Event{Kind: kind, Severity: Success, Message: message, Duration: SuccessDuration}
}

// NewError builds an error event with the default duration.
func NewError(kind Kind, message string) Event {
	return Event{Kind: kind, Severity: Error, Message: message, Duration: ErrorDuration}
}

type Notifier interface {
	Emit(Event)
}

// Func adapts a function to a Notifier.
type Func func(Event)

func (f Func) Emit(e Event) { f(e) }

// Nop discards every event.
var Nop Notifier = Func(func(Event) {})

// OrNop returns n, or Nop when n is nil.
func OrNop(n Notifier) Notifier {
	if n == nil {
		return Nop
	}
	return n
}

type logNotifier struct {
	logger *zap.Logger
}

// NewLogger returns a Notifier writing each event as a log entry: info for
// success, warn for error.
func NewLogger(logger *zap.Logger) Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Emit(e Event) {
	fields := []zap.Field{
		zap.String("notification", string(e.Kind)),
		zap.Duration("duration", e.Duration),
	}

	if e.Severity == Error {
		n.logger.Warn(e.Message, fields...)
		return
	}
	n.logger.Info(e.Message, fields...)
}

// Recorder keeps emitted events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Kinds returns the kinds of the recorded events in order.
func (r *Recorder) Kinds() []Kind {
	events := r.Events()
	kinds := make([]Kind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
