// Package notify sends desktop notifications over the freedesktop
// notification D-Bus interface, falling back to notify-send.
package notify

import (
	"fmt"
	"os/exec"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/yllada/opencami-desktop/common"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = "/org/freedesktop/Notifications"
	notifyCall = busName + ".Notify"

	// expireTimeout is in milliseconds.
	expireTimeout = int32(5000)
)

// Type represents the kind of notification.
type Type int

const (
	TypeInfo Type = iota
	TypeSuccess
	TypeWarning
	TypeError
)

// Notification represents a desktop notification.
type Notification struct {
	Title   string
	Message string
	Type    Type
	Icon    string
}

// icon returns the explicit icon or one derived from the type.
func (n Notification) icon() string {
	if n.Icon != "" {
		return n.Icon
	}
	switch n.Type {
	case TypeWarning:
		return "dialog-warning"
	case TypeError:
		return "dialog-error"
	default:
		return common.BinaryName
	}
}

// urgency maps the type onto the freedesktop urgency hint: 0 low, 1 normal, 2 critical.
func (n Notification) urgency() byte {
	switch n.Type {
	case TypeError:
		return 2
	case TypeWarning:
		return 1
	default:
		return 0
	}
}

func (n Notification) urgencyName() string {
	return [...]string{"low", "normal", "critical"}[n.urgency()]
}

// Notifier delivers notifications. The zero value is not usable; use New.
type Notifier struct {
	mu      sync.Mutex
	enabled bool
	viaBus  func(Notification) error
	viaExec func(Notification) error
}

// New returns a notifier using the session bus with a notify-send fallback.
func New(enabled bool) *Notifier {
	return &Notifier{
		enabled: enabled,
		viaBus:  sendDBus,
		viaExec: sendExec,
	}
}

// SetEnabled turns delivery on or off.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// Enabled reports whether notifications are delivered.
func (n *Notifier) Enabled() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.enabled
}

// Notify implements common.Notifier with an informational notification.
func (n *Notifier) Notify(title, message string) error {
	return n.Show(Notification{Title: title, Message: message})
}

// Show delivers a notification. Disabled notifiers drop it silently.
func (n *Notifier) Show(note Notification) error {
	if !n.Enabled() {
		return nil
	}

	busErr := n.viaBus(note)
	if busErr == nil {
		return nil
	}
	common.LogDebug("D-Bus notification failed, trying notify-send: %v", busErr)

	if err := n.viaExec(note); err != nil {
		return fmt.Errorf("%w: %v", common.ErrNotification, err)
	}
	return nil
}

// Error shows an error notification.
func (n *Notifier) Error(title, message string) error {
	return n.Show(Notification{Title: title, Message: message, Type: TypeError})
}

func sendDBus(note Notification) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(note.urgency()),
	}
	obj := conn.Object(busName, dbus.ObjectPath(objectPath))
	call := obj.Call(notifyCall, 0,
		common.AppName, uint32(0), note.icon(), note.Title, note.Message,
		[]string{}, hints, expireTimeout)
	return call.Err
}

func sendExec(note Notification) error {
	cmd := exec.Command("notify-send",
		"--app-name="+common.AppName,
		"--icon="+note.icon(),
		"--urgency="+note.urgencyName(),
		note.Title,
		note.Message,
	)
	return cmd.Run()
}
