package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/yllada/opencami-desktop/autostart"
	"github.com/yllada/opencami-desktop/bridge"
	"github.com/yllada/opencami-desktop/common"
	"github.com/yllada/opencami-desktop/config"
	"github.com/yllada/opencami-desktop/notify"
	"github.com/yllada/opencami-desktop/remote"
	"github.com/yllada/opencami-desktop/tray"
	"github.com/yllada/opencami-desktop/window"
)

// Options are the command-line overrides for a run.
type Options struct {
	Version     string
	Minimal     bool
	StartHidden bool
}

// Application represents the main application
type Application struct {
	app     *adw.Application
	config  *config.Config
	opts    Options
	mainUI  common.Scheduler
	started bool

	resolver   *remote.Resolver
	autostart  *autostart.Toggle
	notifier   *notify.Notifier
	host       *webviewHost
	windows    *window.Manager
	controller *tray.Controller
	bridge     *bridge.Bridge
	tray       *TrayIndicator
	watcher    *config.Watcher
	prefs      *PreferencesDialog
}

// NewApplication creates a new application
func NewApplication(appID string, opts Options) *Application {
	app := adw.NewApplication(appID, gio.ApplicationFlagsNone)

	cfg, err := config.Load()
	if err != nil {
		common.LogWarn("Using default configuration: %v", err)
		cfg = config.DefaultConfig()
	}
	opts.Minimal = opts.Minimal || cfg.Minimal
	opts.StartHidden = opts.StartHidden || cfg.StartHidden

	agent, err := autostart.New()
	if err != nil {
		common.LogWarn("Autostart unavailable: %v", err)
		agent = autostart.Unavailable(err)
	}

	toggle := autostart.NewToggle(agent)

	application := &Application{
		app:       app,
		config:    cfg,
		opts:      opts,
		resolver:  remote.NewResolver(),
		autostart: toggle,
		notifier:  notify.New(cfg.ShowNotifications),
		mainUI: common.SchedulerFunc(func(fn func()) {
			glib.IdleAdd(fn)
		}),
	}
	toggle.Notifier = application.notifier

	app.ConnectActivate(application.onActivate)
	// Reached when the last window goes away in minimal mode.
	app.ConnectShutdown(application.shutdown)
	return application
}

// Run runs the application. Command-line flags were already parsed by the
// caller, so GTK only sees the program name.
func (a *Application) Run(args []string) int {
	return a.app.Run(args[:1])
}

func (a *Application) onActivate() {
	// A second launch activates the running instance.
	if a.started {
		a.dispatch(tray.CommandShow)
		return
	}
	a.started = true

	a.ApplyTheme(a.config.Theme)
	a.setupAppIcon()
	LoadStyles()

	a.host = newWebviewHost(&a.app.Application, a.config.DeveloperTools)
	// Without a tray a hidden window could never be shown again.
	a.windows = window.NewManager(a.host,
		window.WithStartHidden(a.opts.StartHidden && !a.opts.Minimal),
		window.WithMinimal(a.opts.Minimal),
	)
	a.host.onClose = a.windows.CloseRequest

	a.controller = tray.NewController(a.windows, a.resolver, nil)
	a.controller.BeforeQuit = a.shutdown
	a.controller.Notifier = a.notifier

	a.bridge = bridge.New(a.controller, a.autostart, a.notifier, a.opts.Version)
	a.bridge.OpenSettings = a.showPreferences
	a.host.bridge = a.bridge

	url, source := a.resolver.ResolveWithSource()
	common.LogInfo("Loading %s (from %s)", url, source)
	if err := a.windows.CreatePrimary(url); err != nil {
		common.LogError("Could not create the main window: %v", err)
		fmt.Fprintf(os.Stderr, "Error: could not create the main window: %v\n", err)
		a.shutdown()
		os.Exit(1)
	}

	a.setupActions()

	if !a.windows.Minimal() {
		a.tray = NewTrayIndicator(false, a.mainUI, a.dispatch)
		go a.tray.Run()
	}

	a.watchConfig()
}

// dispatch runs a tray command. It must be called on the GTK main thread.
func (a *Application) dispatch(cmd tray.Command) {
	if a.controller == nil {
		return
	}
	// Failures are logged and announced by the controller.
	_ = a.controller.Dispatch(cmd)
}

// setupActions exposes the tray commands as application actions so the
// keyboard accelerators work in every window.
func (a *Application) setupActions() {
	for _, item := range tray.Menu(a.windows.Minimal()) {
		cmd := item.Command
		name := tray.ActionName(cmd)

		action := gio.NewSimpleAction(name, nil)
		action.ConnectActivate(func(_ *glib.Variant) {
			a.dispatch(cmd)
		})
		a.app.AddAction(action)

		if accel := tray.GTKAccelerator(item.Accelerator); accel != "" {
			a.app.SetAccelsForAction("app."+name, []string{accel})
		}
	}

	prefs := gio.NewSimpleAction("preferences", nil)
	prefs.ConnectActivate(func(_ *glib.Variant) {
		a.showPreferences()
	})
	a.app.AddAction(prefs)
	a.app.SetAccelsForAction("app.preferences", []string{"<Control>comma"})

	reload := gio.NewSimpleAction("reload", nil)
	reload.ConnectActivate(func(_ *glib.Variant) {
		// Failures are logged and announced by the controller.
		_ = a.controller.Reload()
	})
	a.app.AddAction(reload)
	a.app.SetAccelsForAction("app.reload", []string{"<Control><Shift>r"})
}

// setupAppIcon sets up the application icon
func (a *Application) setupAppIcon() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	iconTheme := gtk.IconThemeGetForDisplay(display)
	if iconTheme == nil {
		return
	}

	if execPath, err := os.Executable(); err == nil {
		iconTheme.AddSearchPath(filepath.Join(filepath.Dir(execPath), "assets", "icons"))
	}
	if cwd, err := os.Getwd(); err == nil {
		iconTheme.AddSearchPath(filepath.Join(cwd, "assets", "icons"))
	}

	gtk.WindowSetDefaultIconName(common.BinaryName)
}

// ApplyTheme applies the specified theme to the application.
// Supported values: "auto" (system default), "light", "dark"
func (a *Application) ApplyTheme(theme string) {
	sm := adw.StyleManagerGetDefault()
	if sm == nil {
		return
	}

	switch theme {
	case common.ThemeLight:
		sm.SetColorScheme(adw.ColorSchemeForceLight)
	case common.ThemeDark:
		sm.SetColorScheme(adw.ColorSchemeForceDark)
	default:
		sm.SetColorScheme(adw.ColorSchemeDefault)
	}
}

// watchConfig applies edits to config.yaml while running.
func (a *Application) watchConfig() {
	path, err := config.Path()
	if err != nil {
		common.LogWarn("Config watch disabled: %v", err)
		return
	}
	w, err := config.NewWatcher(path, func(cfg *config.Config) {
		a.mainUI.Schedule(func() {
			a.applyConfig(cfg)
		})
	})
	if err != nil {
		common.LogWarn("Config watch disabled: %v", err)
		return
	}
	a.watcher = w
}

// applyConfig switches to cfg. Settings that shape startup only take
// effect on the next launch.
func (a *Application) applyConfig(cfg *config.Config) {
	if cfg.Theme != a.config.Theme {
		a.ApplyTheme(cfg.Theme)
	}
	a.notifier.SetEnabled(cfg.ShowNotifications)
	if a.host != nil && cfg.DeveloperTools != a.config.DeveloperTools {
		a.host.setDeveloperTools(cfg.DeveloperTools)
	}
	if cfg.Minimal != a.config.Minimal {
		common.LogInfo("Minimal mode change applies after restart")
	}
	a.config = cfg
}

func (a *Application) showPreferences() {
	if a.prefs != nil {
		a.prefs.Show()
		return
	}

	var parent *gtk.Window
	if a.host != nil {
		parent = a.host.gtkWindow(common.PrimaryWindowLabel)
	}
	a.prefs = NewPreferencesDialog(parent, a.config, a.autostart, a.applyConfig)
	a.prefs.window.ConnectCloseRequest(func() bool {
		a.prefs = nil
		return false
	})
	a.prefs.Show()
}

// Quit shuts the application down from any goroutine.
func (a *Application) Quit() {
	a.mainUI.Schedule(func() {
		if a.controller != nil {
			a.controller.Dispatch(tray.CommandQuit)
			return
		}
		a.app.Quit()
	})
}

// shutdown releases background resources before the process exits.
func (a *Application) shutdown() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.tray != nil {
		a.tray.Stop()
	}
	common.CloseLogger()
}
