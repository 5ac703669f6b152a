// Package ui provides the graphical shell for OpenCami.
// This file contains the system tray indicator.
package ui

import (
	"fyne.io/systray"

	"github.com/yllada/opencami-desktop/common"
	"github.com/yllada/opencami-desktop/tray"
)

var trayIcon = GenerateTrayIcon()

// TrayIndicator owns the system tray icon and its menu.
// Clicks arrive on systray goroutines and are handed to the GTK main
// thread before they reach the controller.
type TrayIndicator struct {
	minimal  bool
	ui       common.Scheduler
	dispatch func(tray.Command)
}

// NewTrayIndicator creates a tray indicator that forwards commands to dispatch.
func NewTrayIndicator(minimal bool, ui common.Scheduler, dispatch func(tray.Command)) *TrayIndicator {
	return &TrayIndicator{
		minimal:  minimal,
		ui:       ui,
		dispatch: dispatch,
	}
}

// Run starts the system tray indicator.
// This should be called from a goroutine as it blocks.
func (t *TrayIndicator) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Stop removes the tray icon.
func (t *TrayIndicator) Stop() {
	systray.Quit()
}

func (t *TrayIndicator) onReady() {
	systray.SetIcon(trayIcon)
	systray.SetTitle(common.AppName)
	systray.SetTooltip(common.AppName)

	// Left click on the icon itself.
	systray.SetOnTapped(func() {
		t.post(tray.CommandTrayClick)
	})

	for _, item := range tray.Menu(t.minimal) {
		if item.Command == tray.CommandQuit {
			systray.AddSeparator()
		}
		mi := systray.AddMenuItem(item.Title, item.Tooltip)

		go func(cmd tray.Command, mi *systray.MenuItem) {
			for range mi.ClickedCh {
				t.post(cmd)
			}
		}(item.Command, mi)
	}

	common.LogInfo("Tray indicator ready")
}

func (t *TrayIndicator) onExit() {
	common.LogInfo("Tray indicator cleanup completed")
}

func (t *TrayIndicator) post(cmd tray.Command) {
	t.ui.Schedule(func() {
		t.dispatch(cmd)
	})
}
