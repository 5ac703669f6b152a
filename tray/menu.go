package tray

import "strings"

// Item is one entry of the tray menu.
type Item struct {
	Command Command
	Title   string
	Tooltip string
	// Accelerator uses the portable CmdOrCtrl notation.
	Accelerator string
}

// Menu returns the fixed tray menu. Minimal mode drops New Window.
func Menu(minimal bool) []Item {
	items := []Item{
		{Command: CommandShow, Title: "Show", Tooltip: "Show the OpenCami window"},
		{Command: CommandHide, Title: "Hide", Tooltip: "Hide the OpenCami window"},
		{Command: CommandNewWindow, Title: "New Window", Tooltip: "Open another OpenCami window", Accelerator: "CmdOrCtrl+N"},
		{Command: CommandQuit, Title: "Quit", Tooltip: "Quit OpenCami"},
	}
	if !minimal {
		return items
	}

	out := items[:0]
	for _, it := range items {
		if it.Command != CommandNewWindow {
			out = append(out, it)
		}
	}
	return out
}

// ActionName returns the application action name for cmd. Action names
// may not contain underscores.
func ActionName(cmd Command) string {
	return strings.ReplaceAll(cmd.String(), "_", "-")
}

// GTKAccelerator converts a CmdOrCtrl accelerator into GTK's notation,
// e.g. "CmdOrCtrl+Shift+N" becomes "<Control><Shift>n".
func GTKAccelerator(accel string) string {
	if accel == "" {
		return ""
	}
	parts := strings.Split(accel, "+")
	var b strings.Builder
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(mod) {
		case "cmdorctrl", "ctrl", "control", "cmd":
			b.WriteString("<Control>")
		case "shift":
			b.WriteString("<Shift>")
		case "alt", "option":
			b.WriteString("<Alt>")
		}
	}
	key := parts[len(parts)-1]
	if len(key) == 1 {
		key = strings.ToLower(key)
	}
	b.WriteString(key)
	return b.String()
}
