// Package tray maps tray and menu commands onto window operations.
//
// The package knows nothing about the tray widget itself; the ui package
// renders Menu() and feeds clicks back through Controller.Dispatch on the
// UI thread.
package tray

import (
	"fmt"
	"os"

	"github.com/yllada/opencami-desktop/common"
)

// Command identifies a tray or menu action.
type Command int

const (
	CommandShow Command = iota
	CommandHide
	CommandNewWindow
	CommandQuit
	// CommandTrayClick is a left click (mouse up) on the tray icon itself.
	CommandTrayClick
)

// String returns the command identifier used in menus and logs.
func (c Command) String() string {
	switch c {
	case CommandShow:
		return "show"
	case CommandHide:
		return "hide"
	case CommandNewWindow:
		return "new_window"
	case CommandQuit:
		return "quit"
	case CommandTrayClick:
		return "tray_click"
	default:
		return "unknown"
	}
}

// ParseCommand converts a command identifier back into a Command.
func ParseCommand(id string) (Command, error) {
	for _, c := range []Command{CommandShow, CommandHide, CommandNewWindow, CommandQuit, CommandTrayClick} {
		if c.String() == id {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", common.ErrUnknownCommand, id)
}

// Windows is the part of the window manager the controller drives.
type Windows interface {
	ShowAndFocus(label string)
	Hide(label string)
	CreateSecondary(url string) (string, error)
	Navigate(label, url string) error
}

// Resolver supplies the address for new windows.
type Resolver interface {
	Resolve() string
}

// Controller dispatches commands against the window manager.
type Controller struct {
	windows  Windows
	resolver Resolver
	exit     func(code int)
	log      common.Logger

	// Notifier, when set, announces failed new windows.
	Notifier common.Notifier
	// OnWindowError is told about recoverable new-window failures.
	OnWindowError func(err error)
	// BeforeQuit runs right before the process exits.
	BeforeQuit func()
}

// NewController wires a controller to the window manager and resolver.
// exit defaults to os.Exit.
func NewController(windows Windows, resolver Resolver, exit func(int)) *Controller {
	if exit == nil {
		exit = os.Exit
	}
	return &Controller{
		windows:  windows,
		resolver: resolver,
		exit:     exit,
		log:      common.GetLogger(),
	}
}

// Dispatch runs cmd synchronously. It must be called on the UI thread.
// Only a failed new window returns an error, and it is never fatal.
func (c *Controller) Dispatch(cmd Command) error {
	c.log.Debug("Tray command %s", cmd)

	switch cmd {
	case CommandShow, CommandTrayClick:
		c.windows.ShowAndFocus(common.PrimaryWindowLabel)
	case CommandHide:
		c.windows.Hide(common.PrimaryWindowLabel)
	case CommandNewWindow:
		_, err := c.NewWindow()
		return err
	case CommandQuit:
		c.log.Info("Quit requested")
		if c.BeforeQuit != nil {
			c.BeforeQuit()
		}
		c.exit(0)
	default:
		return fmt.Errorf("%w: %d", common.ErrUnknownCommand, cmd)
	}
	return nil
}

// NewWindow opens a secondary window at the currently resolved address.
// The address is resolved again on every call so a changed override applies
// without a restart.
func (c *Controller) NewWindow() (string, error) {
	url := c.resolver.Resolve()
	label, err := c.windows.CreateSecondary(url)
	if err != nil {
		c.log.Warn("New window failed: %v", err)
		c.announce("Could not open a new window", err)
		if c.OnWindowError != nil {
			c.OnWindowError(err)
		}
		return "", err
	}
	return label, nil
}

// Reload sends the primary window back to the resolved address, wherever the
// page has navigated since.
func (c *Controller) Reload() error {
	url := c.resolver.Resolve()
	if err := c.windows.Navigate(common.PrimaryWindowLabel, url); err != nil {
		c.log.Warn("Reload failed: %v", err)
		c.announce("Could not reload OpenCami", err)
		return err
	}
	c.log.Info("Primary window now at %s", url)
	return nil
}

func (c *Controller) announce(title string, cause error) {
	if c.Notifier == nil {
		return
	}
	if err := c.Notifier.Notify(title, cause.Error()); err != nil {
		c.log.Debug("Notification failed: %v", err)
	}
}
