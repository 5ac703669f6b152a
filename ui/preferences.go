// Package ui provides the graphical shell for OpenCami.
// This file contains the PreferencesDialog component for application settings.
package ui

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/yllada/opencami-desktop/common"
	"github.com/yllada/opencami-desktop/config"
)

// autostartToggle is the launch-at-login switch backend.
type autostartToggle interface {
	SetEnabled(enabled bool) error
	IsEnabled() (bool, error)
}

// PreferencesDialog edits config.yaml and the autostart entry.
type PreferencesDialog struct {
	window    *gtk.Window
	config    *config.Config
	autostart autostartToggle
	onSaved   func(*config.Config)

	autoStartSwitch *gtk.Switch
	hiddenSwitch    *gtk.Switch
	notifySwitch    *gtk.Switch
	devToolsSwitch  *gtk.Switch
	themeDropDown   *gtk.DropDown
	themeIDs        []string
	errorLabel      *gtk.Label

	autostartWas bool
}

// NewPreferencesDialog creates a settings window over a copy of cfg.
// onSaved receives the new configuration after it was written to disk.
func NewPreferencesDialog(parent *gtk.Window, cfg *config.Config, toggle autostartToggle, onSaved func(*config.Config)) *PreferencesDialog {
	copied := *cfg
	pd := &PreferencesDialog{
		config:    &copied,
		autostart: toggle,
		onSaved:   onSaved,
		themeIDs:  []string{common.ThemeAuto, common.ThemeLight, common.ThemeDark},
	}

	pd.build(parent)
	return pd
}

func (pd *PreferencesDialog) build(parent *gtk.Window) {
	pd.window = gtk.NewWindow()
	pd.window.SetTitle("Settings")
	if parent != nil {
		pd.window.SetTransientFor(parent)
	}
	pd.window.SetModal(true)
	pd.window.SetDefaultSize(480, 520)
	pd.window.SetResizable(false)

	rootBox := gtk.NewBox(gtk.OrientationVertical, 0)

	scrolled := gtk.NewScrolledWindow()
	scrolled.SetVExpand(true)
	scrolled.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 20)
	mainBox.SetMarginTop(24)
	mainBox.SetMarginBottom(16)
	mainBox.SetMarginStart(24)
	mainBox.SetMarginEnd(24)

	// Startup
	startupSection := pd.createSection("Startup", "system-run-symbolic")
	startupCard := pd.createCard()

	enabled, err := pd.autostart.IsEnabled()
	if err != nil {
		common.LogWarn("Read autostart state: %v", err)
	}
	pd.autostartWas = enabled

	pd.autoStartSwitch = pd.newSwitch(enabled)
	pd.autoStartSwitch.SetSensitive(err == nil)
	startupCard.Append(pd.createSettingRow(
		"Launch at Login",
		"Start OpenCami in the tray when you log in",
		pd.autoStartSwitch,
	))
	startupCard.Append(pd.createSeparator())

	pd.hiddenSwitch = pd.newSwitch(pd.config.StartHidden)
	startupCard.Append(pd.createSettingRow(
		"Start Hidden",
		"Keep the window hidden until it is opened from the tray",
		pd.hiddenSwitch,
	))

	startupSection.Append(startupCard)
	mainBox.Append(startupSection)

	// Notifications
	notifySection := pd.createSection("Notifications", "preferences-system-notifications-symbolic")
	notifyCard := pd.createCard()

	pd.notifySwitch = pd.newSwitch(pd.config.ShowNotifications)
	notifyCard.Append(pd.createSettingRow(
		"Desktop Notifications",
		"Allow OpenCami and the web app to show notifications",
		pd.notifySwitch,
	))

	notifySection.Append(notifyCard)
	mainBox.Append(notifySection)

	// Appearance
	appearSection := pd.createSection("Appearance", "preferences-desktop-theme-symbolic")
	appearCard := pd.createCard()

	themeModel := gtk.NewStringList([]string{"System Default", "Light", "Dark"})
	pd.themeDropDown = gtk.NewDropDown(themeModel, nil)
	pd.themeDropDown.SetSelected(pd.findThemeIndex(pd.config.Theme))
	pd.themeDropDown.SetVAlign(gtk.AlignCenter)
	pd.themeDropDown.AddCSSClass("flat")
	appearCard.Append(pd.createSettingRow(
		"Theme",
		"Choose the color scheme of the application",
		pd.themeDropDown,
	))

	appearSection.Append(appearCard)
	mainBox.Append(appearSection)

	// Advanced
	advancedSection := pd.createSection("Advanced", "applications-engineering-symbolic")
	advancedCard := pd.createCard()

	pd.devToolsSwitch = pd.newSwitch(pd.config.DeveloperTools)
	advancedCard.Append(pd.createSettingRow(
		"Developer Tools",
		"Enable the web inspector in every window",
		pd.devToolsSwitch,
	))

	advancedSection.Append(advancedCard)
	mainBox.Append(advancedSection)

	pd.errorLabel = gtk.NewLabel("")
	pd.errorLabel.AddCSSClass("settings-error")
	pd.errorLabel.SetWrap(true)
	pd.errorLabel.SetVisible(false)
	mainBox.Append(pd.errorLabel)

	scrolled.SetChild(mainBox)
	rootBox.Append(scrolled)

	buttonBar := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBar.SetHAlign(gtk.AlignEnd)
	buttonBar.SetMarginTop(16)
	buttonBar.SetMarginBottom(20)
	buttonBar.SetMarginStart(24)
	buttonBar.SetMarginEnd(24)
	buttonBar.AddCSSClass("dialog-action-area")

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.AddCSSClass("dialog-button")
	cancelBtn.ConnectClicked(func() {
		pd.window.Close()
	})
	buttonBar.Append(cancelBtn)

	saveBtn := gtk.NewButtonWithLabel("Save")
	saveBtn.AddCSSClass("suggested-action")
	saveBtn.AddCSSClass("dialog-button")
	saveBtn.ConnectClicked(func() {
		if pd.savePreferences() {
			pd.window.Close()
		}
	})
	buttonBar.Append(saveBtn)

	rootBox.Append(buttonBar)
	pd.window.SetChild(rootBox)
}

func (pd *PreferencesDialog) newSwitch(active bool) *gtk.Switch {
	sw := gtk.NewSwitch()
	sw.SetActive(active)
	sw.SetVAlign(gtk.AlignCenter)
	return sw
}

// createSection creates a section with icon and title.
func (pd *PreferencesDialog) createSection(title string, iconName string) *gtk.Box {
	section := gtk.NewBox(gtk.OrientationVertical, 8)

	headerBox := gtk.NewBox(gtk.OrientationHorizontal, 8)

	icon := gtk.NewImage()
	icon.SetFromIconName(iconName)
	icon.SetPixelSize(18)
	icon.AddCSSClass("dim-label")
	headerBox.Append(icon)

	label := gtk.NewLabel(title)
	label.SetXAlign(0)
	label.AddCSSClass("heading")
	label.AddCSSClass("dim-label")
	headerBox.Append(label)

	section.Append(headerBox)
	return section
}

func (pd *PreferencesDialog) createCard() *gtk.Box {
	card := gtk.NewBox(gtk.OrientationVertical, 0)
	card.AddCSSClass("card")
	card.AddCSSClass("preferences-card")
	return card
}

// createSettingRow creates a row with title, description, and widget.
func (pd *PreferencesDialog) createSettingRow(title string, description string, widget gtk.Widgetter) *gtk.Box {
	row := gtk.NewBox(gtk.OrientationHorizontal, 12)
	row.SetMarginTop(14)
	row.SetMarginBottom(14)
	row.SetMarginStart(16)
	row.SetMarginEnd(16)

	textBox := gtk.NewBox(gtk.OrientationVertical, 4)
	textBox.SetHExpand(true)

	titleLabel := gtk.NewLabel(title)
	titleLabel.SetXAlign(0)
	titleLabel.AddCSSClass("settings-title")
	textBox.Append(titleLabel)

	descLabel := gtk.NewLabel(description)
	descLabel.SetXAlign(0)
	descLabel.AddCSSClass("dim-label")
	descLabel.AddCSSClass("caption")
	descLabel.SetWrap(true)
	textBox.Append(descLabel)

	row.Append(textBox)
	row.Append(widget)
	return row
}

func (pd *PreferencesDialog) createSeparator() *gtk.Separator {
	sep := gtk.NewSeparator(gtk.OrientationHorizontal)
	sep.SetMarginStart(16)
	sep.SetMarginEnd(16)
	return sep
}

// findThemeIndex returns the index of a theme ID, or 0 if not found.
func (pd *PreferencesDialog) findThemeIndex(themeID string) uint {
	for i, id := range pd.themeIDs {
		if id == themeID {
			return uint(i)
		}
	}
	return 0
}

// savePreferences writes the settings and reports whether the dialog may close.
func (pd *PreferencesDialog) savePreferences() bool {
	pd.config.StartHidden = pd.hiddenSwitch.Active()
	pd.config.ShowNotifications = pd.notifySwitch.Active()
	pd.config.DeveloperTools = pd.devToolsSwitch.Active()

	themeIdx := pd.themeDropDown.Selected()
	if int(themeIdx) < len(pd.themeIDs) {
		pd.config.Theme = pd.themeIDs[themeIdx]
	}

	if want := pd.autoStartSwitch.Active(); want != pd.autostartWas && pd.autoStartSwitch.Sensitive() {
		if err := pd.autostart.SetEnabled(want); err != nil {
			pd.showError("Could not change Launch at Login: " + err.Error())
			return false
		}
		pd.autostartWas = want
	}

	if err := pd.config.Save(); err != nil {
		pd.showError("Could not save settings: " + err.Error())
		return false
	}

	if pd.onSaved != nil {
		pd.onSaved(pd.config)
	}
	return true
}

func (pd *PreferencesDialog) showError(msg string) {
	common.LogError("Settings: %s", msg)
	pd.errorLabel.SetText(msg)
	pd.errorLabel.SetVisible(true)
}

// Show displays the preferences dialog.
func (pd *PreferencesDialog) Show() {
	pd.window.Present()
}
