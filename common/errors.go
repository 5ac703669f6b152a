// Package common provides shared constants, types, and utilities
// used across the OpenCami desktop shell.
package common

import "errors"

// Sentinel errors. These can be checked with errors.Is().
var (
	// Window errors.
	ErrInvalidURL     = errors.New("invalid url")
	ErrPrimaryExists  = errors.New("primary window already exists")
	ErrWindowCreate   = errors.New("failed to create window")
	ErrFeatureMissing = errors.New("feature disabled in minimal mode")

	// Scripting surface errors.
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidArgs    = errors.New("invalid command arguments")

	// OS integration errors.
	ErrAutostart    = errors.New("autostart")
	ErrNotification = errors.New("notification failed")
	ErrUnsupported  = errors.New("unsupported platform")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
