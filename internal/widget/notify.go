package widget

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Level classifies an alert for presentation.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "info"
}

// Alert texts shown to the user.
const (
	MsgSelectClass   = "Please select at least one character type."
	MsgCopied        = "Password copied to clipboard!"
	MsgCopyFailed    = "Failed to copy password."
	MsgNothingToCopy = "Generate a password first."
)

// Alert is a user-facing notification.
type Alert struct {
	Level   Level
	Message string
}

// Notifier presents alerts to the user.
type Notifier interface {
	Notify(Alert)
}

// WriterNotifier prints one alert per line.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(a Alert) {
	if a.Level == LevelError {
		fmt.Fprintf(n.W, "! %s\n", a.Message)
		return
	}
	fmt.Fprintln(n.W, a.Message)
}

// SlogNotifier routes alerts through a structured logger.
type SlogNotifier struct {
	Logger *slog.Logger
}

func (n SlogNotifier) Notify(a Alert) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if a.Level == LevelError {
		logger.Warn(a.Message, "alert", a.Level.String())
		return
	}
	logger.Info(a.Message, "alert", a.Level.String())
}

// Recorder keeps every alert it receives.
type Recorder struct {
	mu     sync.Mutex
	alerts []Alert
}

func (r *Recorder) Notify(a Alert) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, a)
}

// Alerts returns a copy of the received alerts in order.
func (r *Recorder) Alerts() []Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Alert, len(r.alerts))
	copy(out, r.alerts)
	return out
}

// Last returns the most recent alert.
func (r *Recorder) Last() (Alert, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.alerts) == 0 {
		return Alert{}, false
	}
	return r.alerts[len(r.alerts)-1], true
}
