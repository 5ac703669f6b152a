package ui

import (
	"errors"
	"fmt"

	"github.com/diamondburned/gotk4-webkitgtk/pkg/javascriptcore/v6"
	"github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/yllada/opencami-desktop/bridge"
	"github.com/yllada/opencami-desktop/common"
	"github.com/yllada/opencami-desktop/window"
)

var errDestroyed = errors.New("window destroyed")

// webviewHost builds GTK application windows hosting a WebKit view.
// It implements window.Host and must only be used on the GTK main thread.
type webviewHost struct {
	app      *gtk.Application
	devTools bool
	windows  map[string]*webviewWindow

	// Set once the window manager and bridge exist.
	onClose func(label string) window.CloseDecision
	bridge  *bridge.Bridge
}

func newWebviewHost(app *gtk.Application, devTools bool) *webviewHost {
	return &webviewHost{
		app:      app,
		devTools: devTools,
		windows:  make(map[string]*webviewWindow),
	}
}

// CreateWindow implements window.Host.
func (h *webviewHost) CreateWindow(spec window.Spec) (window.Handle, error) {
	if h.app == nil {
		return nil, fmt.Errorf("no application")
	}

	win := gtk.NewApplicationWindow(h.app)
	win.SetTitle(spec.Title)
	win.SetDefaultSize(spec.Width, spec.Height)
	win.SetSizeRequest(spec.MinWidth, spec.MinHeight)
	win.SetResizable(spec.Resizable)
	// GTK4 has no positioning API; compositors center new toplevels themselves.

	view := webkit.NewWebView()
	view.Settings().SetEnableDeveloperExtras(h.devTools)

	ucm := view.UserContentManager()
	ucm.AddScript(webkit.NewUserScript(
		bridge.Shim,
		webkit.UserContentInjectTopFrame,
		webkit.UserScriptInjectAtDocumentStart,
		nil, nil,
	))
	ucm.ConnectScriptMessageWithReplyReceived(func(value *javascriptcore.Value, reply *webkit.ScriptMessageReply) bool {
		h.onScriptMessage(value, reply)
		return true
	})
	if !ucm.RegisterScriptMessageHandlerWithReply(bridge.HandlerName, "") {
		win.Destroy()
		return nil, fmt.Errorf("register script handler %q", bridge.HandlerName)
	}

	win.SetChild(view)

	w := &webviewWindow{label: spec.Label, win: win, view: view}
	label := spec.Label
	win.ConnectCloseRequest(func() bool {
		if h.onClose == nil {
			return false
		}
		// Returning true keeps the window alive.
		return h.onClose(label) == window.CloseHide
	})
	win.ConnectDestroy(func() {
		w.destroyed = true
		delete(h.windows, label)
	})
	h.windows[label] = w

	view.LoadURI(spec.URL)
	if spec.Visible {
		win.Present()
	}
	return w, nil
}

// onScriptMessage answers a bridge request through the reply of the
// message, which settles the promise returned by postMessage.
func (h *webviewHost) onScriptMessage(value *javascriptcore.Value, reply *webkit.ScriptMessageReply) {
	var r bridge.Reply
	if h.bridge == nil {
		r = bridge.Reply{Error: "bridge not ready"}
	} else {
		r = h.bridge.HandleMessage(value.String())
	}

	out, err := bridge.EncodeReply(r)
	if err != nil {
		common.LogError("Encode bridge reply: %v", err)
		out = `{"ok":false,"error":"reply encoding failed"}`
	}
	reply.ReturnValue(javascriptcore.NewValueString(value.Context(), out))
}

// gtkWindow returns the native window for label, if it is alive.
func (h *webviewHost) gtkWindow(label string) *gtk.Window {
	w, ok := h.windows[label]
	if !ok || w.destroyed {
		return nil
	}
	return &w.win.Window
}

// setDeveloperTools applies the inspector setting to every open view.
func (h *webviewHost) setDeveloperTools(enabled bool) {
	h.devTools = enabled
	for _, w := range h.windows {
		w.view.Settings().SetEnableDeveloperExtras(enabled)
	}
}

// webviewWindow implements window.Handle.
type webviewWindow struct {
	label     string
	win       *gtk.ApplicationWindow
	view      *webkit.WebView
	destroyed bool
}

func (w *webviewWindow) check() error {
	if w.destroyed {
		return fmt.Errorf("%s: %w", w.label, errDestroyed)
	}
	return nil
}

func (w *webviewWindow) Show() error {
	if err := w.check(); err != nil {
		return err
	}
	w.win.SetVisible(true)
	return nil
}

func (w *webviewWindow) Hide() error {
	if err := w.check(); err != nil {
		return err
	}
	w.win.SetVisible(false)
	return nil
}

func (w *webviewWindow) Unminimize() error {
	if err := w.check(); err != nil {
		return err
	}
	w.win.Unminimize()
	return nil
}

func (w *webviewWindow) Focus() error {
	if err := w.check(); err != nil {
		return err
	}
	w.win.Present()
	return nil
}

func (w *webviewWindow) Navigate(url string) error {
	if err := w.check(); err != nil {
		return err
	}
	w.view.LoadURI(url)
	return nil
}
