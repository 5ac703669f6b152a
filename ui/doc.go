// Package ui provides the graphical shell for OpenCami.
//
// This package binds the host-agnostic core to the desktop:
//
//   - Application: GTK4/libadwaita lifecycle, theme, actions and accelerators
//   - webviewHost: window.Host backed by GTK windows with a WebKit view
//   - TrayIndicator: system tray icon and menu
//   - PreferencesDialog: native settings window
//
// # Thread Safety
//
// GTK operations must execute on the main thread. The window registry is
// owned by that thread and has no locks, so tray clicks, config reloads and
// signals reach it through glib.IdleAdd:
//
//	go func() {
//	    for range item.ClickedCh {
//	        glib.IdleAdd(func() { controller.Dispatch(cmd) })
//	    }
//	}()
//
// Script messages from web content are already delivered on the main thread.
package ui
