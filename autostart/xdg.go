package autostart

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yllada/opencami-desktop/common"
)

// XDGAgent manages a freedesktop.org autostart entry.
type XDGAgent struct {
	Dir        string
	Executable string
}

// NewXDGAgent returns an agent writing into dir (usually ~/.config/autostart).
func NewXDGAgent(dir, executable string) *XDGAgent {
	return &XDGAgent{Dir: dir, Executable: executable}
}

// Path returns the desktop entry location.
func (a *XDGAgent) Path() string {
	return filepath.Join(a.Dir, common.BinaryName+".desktop")
}

func (a *XDGAgent) entry() []byte {
	var b bytes.Buffer
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", common.AppName)
	fmt.Fprintf(&b, "Exec=%s %s\n", quoteExec(a.Executable), HiddenFlag)
	fmt.Fprintf(&b, "Icon=%s\n", common.BinaryName)
	b.WriteString("Terminal=false\n")
	b.WriteString("Hidden=false\n")
	b.WriteString("X-GNOME-Autostart-enabled=true\n")
	return b.Bytes()
}

// quoteExec quotes an Exec argument per the desktop entry specification.
func quoteExec(arg string) string {
	if !strings.ContainsAny(arg, " \t\"`$\\") {
		return arg
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	return `"` + r.Replace(arg) + `"`
}

// Enable writes the desktop entry.
func (a *XDGAgent) Enable() error {
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", common.ErrAutostart, err)
	}
	if err := os.WriteFile(a.Path(), a.entry(), 0644); err != nil {
		return fmt.Errorf("%w: %v", common.ErrAutostart, err)
	}
	return nil
}

// Disable removes the desktop entry. Removing a missing entry is not an error.
func (a *XDGAgent) Disable() error {
	if err := os.Remove(a.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", common.ErrAutostart, err)
	}
	return nil
}

// IsEnabled reports whether an active desktop entry exists.
func (a *XDGAgent) IsEnabled() (bool, error) {
	f, err := os.Open(a.Path())
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrAutostart, err)
	}
	defer f.Close()

	enabled := true
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Hidden":
			if strings.EqualFold(strings.TrimSpace(value), "true") {
				enabled = false
			}
		case "X-GNOME-Autostart-enabled":
			if strings.EqualFold(strings.TrimSpace(value), "false") {
				enabled = false
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrAutostart, err)
	}
	return enabled, nil
}
