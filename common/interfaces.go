// Package common provides shared constants, types, and utilities
// used across the OpenCami desktop shell.
package common

// Notifier defines the interface for sending desktop notifications.
type Notifier interface {
	// Notify sends a notification with the given title and message.
	Notify(title, message string) error
}

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Scheduler runs a function on the UI thread.
// Production code backs it with glib.IdleAdd; tests run the function inline.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a plain function to the Scheduler interface.
type SchedulerFunc func(fn func())

// Schedule calls f(fn).
func (f SchedulerFunc) Schedule(fn func()) { f(fn) }

// Inline is a Scheduler that runs the function immediately on the caller's goroutine.
var Inline Scheduler = SchedulerFunc(func(fn func()) { fn() })
