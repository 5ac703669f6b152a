// Package window tracks the webview windows of the shell.
//
// The Manager owns the label → window registry. It is not safe for
// concurrent use: every method must run on the UI thread, which is where
// the host delivers window, menu and tray events. Code running elsewhere
// hops onto the UI thread through a common.Scheduler first.
//
// Exactly one primary window (label "main") exists from startup until
// exit. A close request on it hides it instead of destroying it. Secondary
// windows get generated labels that are never issued twice and are removed
// from the registry when closed.
package window
