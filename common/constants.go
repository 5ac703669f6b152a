// Package common provides shared constants, types, and utilities
// used across the OpenCami desktop shell.
package common

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "ai.opencami.desktop"
	// AppName is the display name of the application.
	AppName = "OpenCami"
	// BinaryName is the executable name used in autostart entries.
	BinaryName = "opencami-desktop"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "opencami-desktop"
)

// File names used by the application.
const (
	ConfigFileName = "config.yaml"
	EnvFileName    = ".env"
	LogFileName    = "opencami-desktop.log"
)

// Remote URL sources.
const (
	// RemoteURLEnv is the runtime override for the displayed address.
	RemoteURLEnv = "OPENCAMI_REMOTE_URL"
	// FallbackRemoteURL is used when no other source provides an address.
	FallbackRemoteURL = "http://localhost:3003"
)

// Window geometry shared by the primary and secondary windows.
const (
	DefaultWindowWidth  = 1200
	DefaultWindowHeight = 800
	MinWindowWidth      = 800
	MinWindowHeight     = 600
	// TrayIconSize is the size of the system tray icon.
	TrayIconSize = 22
)

// PrimaryWindowLabel is the label of the window created at startup.
const PrimaryWindowLabel = "main"

// Theme values.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)
