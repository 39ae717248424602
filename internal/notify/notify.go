// Package notify delivers short user-facing messages about store mutations.
// Delivery is fire-and-forget: notifiers never report failure to the caller.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nissyi-gh/highstill/internal/model"
)

// Notifier receives a message and its severity.
type Notifier interface {
	Notify(message string, severity model.Severity)
}

// Func adapts a plain function to Notifier.
type Func func(message string, severity model.Severity)

func (f Func) Notify(message string, severity model.Severity) { f(message, severity) }

// Discard drops every notification.
var Discard Notifier = Func(func(string, model.Severity) {})

// Log writes notifications to a slog.Logger.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Notify(message string, severity model.Severity) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Log(context.Background(), Level(severity), message, "severity", string(severity))
}

// Level maps a severity to a log level.
func Level(severity model.Severity) slog.Level {
	switch severity {
	case model.SeverityDanger:
		return slog.LevelError
	case model.SeverityWarning:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Multi fans a notification out to every notifier in order.
type Multi []Notifier

func (m Multi) Notify(message string, severity model.Severity) {
	for _, n := range m {
		if n != nil {
			n.Notify(message, severity)
		}
	}
}

// Notification is a single recorded message.
type Notification struct {
	Message  string
	Severity model.Severity
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(message string, severity model.Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Message: message, Severity: severity})
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Drain returns the recorded notifications and clears the recorder.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.items
	r.items = nil
	return out
}
