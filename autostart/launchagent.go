package autostart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"howett.net/plist"

	"github.com/yllada/opencami-desktop/common"
)

// launchAgentPlist is the subset of launchd.plist(5) the shell writes.
type launchAgentPlist struct {
	Label            string   `plist:"Label"`
	ProgramArguments []string `plist:"ProgramArguments"`
	RunAtLoad        bool     `plist:"RunAtLoad"`
	Disabled         bool     `plist:"Disabled,omitempty"`
	ProcessType      string   `plist:"ProcessType,omitempty"`
}

// LaunchAgent manages a per-user launchd agent on macOS.
type LaunchAgent struct {
	Dir        string
	Executable string
}

// NewLaunchAgent returns an agent writing into dir (usually ~/Library/LaunchAgents).
func NewLaunchAgent(dir, executable string) *LaunchAgent {
	return &LaunchAgent{Dir: dir, Executable: executable}
}

// Path returns the property list location.
func (a *LaunchAgent) Path() string {
	return filepath.Join(a.Dir, common.AppID+".plist")
}

// Enable writes the property list.
func (a *LaunchAgent) Enable() error {
	doc := launchAgentPlist{
		Label:            common.AppID,
		ProgramArguments: []string{a.Executable, HiddenFlag},
		RunAtLoad:        true,
		ProcessType:      "Interactive",
	}
	data, err := plist.MarshalIndent(doc, plist.XMLFormat, "\t")
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrAutostart, err)
	}

	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", common.ErrAutostart, err)
	}
	if err := os.WriteFile(a.Path(), data, 0644); err != nil {
		return fmt.Errorf("%w: %v", common.ErrAutostart, err)
	}
	return nil
}

// Disable removes the property list. Removing a missing agent is not an error.
func (a *LaunchAgent) Disable() error {
	if err := os.Remove(a.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", common.ErrAutostart, err)
	}
	return nil
}

// IsEnabled reports whether a loadable agent for this app exists.
func (a *LaunchAgent) IsEnabled() (bool, error) {
	data, err := os.ReadFile(a.Path())
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrAutostart, err)
	}

	var doc launchAgentPlist
	if _, err := plist.Unmarshal(data, &doc); err != nil {
		return false, fmt.Errorf("%w: corrupt launch agent: %v", common.ErrAutostart, err)
	}
	return doc.RunAtLoad && !doc.Disabled, nil
}
