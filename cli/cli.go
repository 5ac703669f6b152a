// Package cli provides the command-line commands of the OpenCami shell.
// They run without launching the GUI.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/yllada/opencami-desktop/common"
	"github.com/yllada/opencami-desktop/remote"
)

var (
	styleBrand = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "39"})
	styleLabel = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "242", Dark: "240"})
	styleValue = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "15"})
	styleOK    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "40"})
	styleOff   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "242", Dark: "244"})
)

// Autostart is the launch-at-login toggle.
type Autostart interface {
	SetEnabled(enabled bool) error
	IsEnabled() (bool, error)
}

// CLI runs commands against the shell's components and writes to out.
type CLI struct {
	out       io.Writer
	styled    bool
	resolver  *remote.Resolver
	autostart Autostart
}

// New returns a CLI writing to stdout. Output is styled only on a terminal.
func New(resolver *remote.Resolver, autostart Autostart) *CLI {
	return &CLI{
		out:       os.Stdout,
		styled:    term.IsTerminal(int(os.Stdout.Fd())),
		resolver:  resolver,
		autostart: autostart,
	}
}

// SetOutput redirects output; styling is turned off.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
	c.styled = false
}

func (c *CLI) render(s lipgloss.Style, text string) string {
	if !c.styled {
		return text
	}
	return s.Render(text)
}

// Version prints build information.
func (c *CLI) Version(version, buildTime, commit string) {
	fmt.Fprintf(c.out, "%s %s\n", c.render(styleBrand, common.AppName), c.render(styleValue, "v"+version))
	if buildTime != "unknown" {
		fmt.Fprintf(c.out, "  %s  %s\n", c.render(styleLabel, "Build:"), c.render(styleValue, buildTime))
		fmt.Fprintf(c.out, "  %s %s\n", c.render(styleLabel, "Commit:"), c.render(styleValue, commit))
	}
}

// PrintURL shows the address a new window would load and where it came from.
func (c *CLI) PrintURL() error {
	url, source := c.resolver.ResolveWithSource()
	fmt.Fprintf(c.out, "%s %s\n", c.render(styleValue, url), c.render(styleLabel, "("+source.String()+")"))
	return remote.Validate(url)
}

// Autostart handles --autostart on|off|status.
func (c *CLI) Autostart(arg string) error {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "on", "enable", "true":
		if err := c.autostart.SetEnabled(true); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s Launch at login enabled\n", c.render(styleOK, "✓"))
		return nil
	case "off", "disable", "false":
		if err := c.autostart.SetEnabled(false); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s Launch at login disabled\n", c.render(styleOK, "✓"))
		return nil
	case "status", "":
		enabled, err := c.autostart.IsEnabled()
		if err != nil {
			return err
		}
		state := c.render(styleOff, "disabled")
		if enabled {
			state = c.render(styleOK, "enabled")
		}
		fmt.Fprintf(c.out, "%s %s\n", c.render(styleLabel, "Launch at login:"), state)
		return nil
	default:
		return fmt.Errorf("%w: --autostart expects on, off or status, got %q", common.ErrInvalidArgs, arg)
	}
}

// PrintHelp prints CLI usage help.
func PrintHelp() {
	fmt.Println(`OpenCami - desktop shell

Usage:
  opencami-desktop [OPTIONS]

Options:
  --version              Show version and exit
  --verbose              Enable verbose logging
  --minimal              Single window, no tray; closing the window quits
  --hidden               Start with the window hidden in the tray
  --print-url            Print the address that would be loaded and exit
  --autostart on|off|status
                         Change or show launch at login and exit
  --help                 Show this help message

Environment:
  OPENCAMI_REMOTE_URL    Address to load, overrides the built-in default.
                         May also be set in ~/.config/opencami-desktop/.env

Run without options to launch the GUI.`)
}
