// Package ui provides the graphical shell for OpenCami.
// This file contains the CSS used by the native settings window.
package ui

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// The web content brings its own styling; only native widgets are covered here.
const appCSS = `
.preferences-card {
    border-radius: 12px;
    border: 1px solid alpha(currentColor, 0.15);
}

.settings-title {
    font-weight: 600;
}

.settings-error {
    color: #e01b24;
}

.dialog-action-area {
    border-top: 1px solid alpha(currentColor, 0.1);
    padding-top: 12px;
}

button.dialog-button {
    min-width: 96px;
    border-radius: 6px;
}
`

// LoadStyles loads the custom CSS styles for the application.
// Should be called during application startup.
func LoadStyles() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(appCSS)

	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}
