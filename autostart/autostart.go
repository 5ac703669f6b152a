// Package autostart toggles launching the shell at user login.
//
// The state lives only in the OS launch-agent mechanism: an XDG autostart
// entry on Linux and a LaunchAgent property list on macOS. Nothing is
// cached, so every query reads the OS state again.
package autostart

import (
	"fmt"
	"os"
	"runtime"

	"github.com/yllada/opencami-desktop/common"
)

// HiddenFlag is appended to the launch command so login starts go to the tray.
const HiddenFlag = "--hidden"

// Agent is an OS launch-agent backend.
type Agent interface {
	Enable() error
	Disable() error
	IsEnabled() (bool, error)
}

// Toggle exposes the autostart flag to the UI.
type Toggle struct {
	agent Agent
	log   common.Logger

	// Notifier, when set, announces successful changes.
	Notifier common.Notifier
}

// NewToggle wraps agent.
func NewToggle(agent Agent) *Toggle {
	return &Toggle{agent: agent, log: common.GetLogger()}
}

// SetEnabled registers or removes the launch agent. OS errors are returned as is.
func (t *Toggle) SetEnabled(enabled bool) error {
	var err error
	if enabled {
		err = t.agent.Enable()
	} else {
		err = t.agent.Disable()
	}
	if err != nil {
		t.log.Error("Autostart %v failed: %v", enabled, err)
		return err
	}
	t.log.Info("Autostart set to %v", enabled)
	t.announce(enabled)
	return nil
}

func (t *Toggle) announce(enabled bool) {
	if t.Notifier == nil {
		return
	}
	msg := "OpenCami will no longer start when you log in"
	if enabled {
		msg = "OpenCami will start in the tray when you log in"
	}
	if err := t.Notifier.Notify(common.AppName, msg); err != nil {
		t.log.Debug("Autostart notification failed: %v", err)
	}
}

// IsEnabled reads the launch agent state from the OS.
func (t *Toggle) IsEnabled() (bool, error) {
	return t.agent.IsEnabled()
}

// New returns the launch agent for the running OS, launching the current executable.
func New() (Agent, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("%w: locate executable: %v", common.ErrAutostart, err)
	}

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrAutostart, err)
		}
		return NewLaunchAgent(home+"/Library/LaunchAgents", exe), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrAutostart, err)
		}
		return NewXDGAgent(dir+"/autostart", exe), nil
	default:
		return unsupported{goos: runtime.GOOS}, nil
	}
}

type unsupported struct{ goos string }

func (u unsupported) err() error {
	return fmt.Errorf("%w: %w on %s", common.ErrAutostart, common.ErrUnsupported, u.goos)
}

func (u unsupported) Enable() error            { return u.err() }
func (u unsupported) Disable() error           { return u.err() }
func (u unsupported) IsEnabled() (bool, error) { return false, u.err() }

// Unavailable returns an agent that fails every call with err. It stands in
// when the launch agent could not be set up.
func Unavailable(err error) Agent {
	return broken{err: fmt.Errorf("%w: %v", common.ErrAutostart, err)}
}

type broken struct{ err error }

func (b broken) Enable() error            { return b.err }
func (b broken) Disable() error           { return b.err }
func (b broken) IsEnabled() (bool, error) { return false, b.err }
