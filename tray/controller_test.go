package tray

import (
	"errors"
	"fmt"
	"testing"

	"github.com/yllada/opencami-desktop/common"
	"github.com/yllada/opencami-desktop/window"
)

type recordingWindows struct {
	calls       []string
	createErr   error
	urls        []string
	navigateErr error
}

func (w *recordingWindows) ShowAndFocus(label string) { w.calls = append(w.calls, "show:"+label) }
func (w *recordingWindows) Hide(label string)         { w.calls = append(w.calls, "hide:"+label) }

func (w *recordingWindows) CreateSecondary(url string) (string, error) {
	w.urls = append(w.urls, url)
	if w.createErr != nil {
		return "", w.createErr
	}
	return "window-x", nil
}

func (w *recordingWindows) Navigate(label, url string) error {
	w.calls = append(w.calls, "navigate:"+label+":"+url)
	return w.navigateErr
}

type stubResolver struct{ url string }

func (r *stubResolver) Resolve() string { return r.url }

type exitRecorder struct {
	called bool
	code   int
}

func (e *exitRecorder) exit(code int) {
	e.called = true
	e.code = code
}

func TestCommand_String(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{CommandShow, "show"},
		{CommandHide, "hide"},
		{CommandNewWindow, "new_window"},
		{CommandQuit, "quit"},
		{CommandTrayClick, "tray_click"},
		{Command(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("Command(%d).String() = %q, want %q", tt.cmd, got, tt.want)
		}
	}
}

func TestParseCommand(t *testing.T) {
	for _, id := range []string{"show", "hide", "new_window", "quit", "tray_click"} {
		c, err := ParseCommand(id)
		if err != nil {
			t.Fatalf("ParseCommand(%q) error = %v", id, err)
		}
		if c.String() != id {
			t.Errorf("ParseCommand(%q) = %v", id, c)
		}
	}
	if _, err := ParseCommand("reboot"); !errors.Is(err, common.ErrUnknownCommand) {
		t.Errorf("ParseCommand(reboot) error = %v, want ErrUnknownCommand", err)
	}
}

func TestDispatch_ShowHide(t *testing.T) {
	w := &recordingWindows{}
	c := NewController(w, &stubResolver{url: "https://example.test"}, func(int) {})

	for _, cmd := range []Command{CommandShow, CommandHide, CommandTrayClick} {
		if err := c.Dispatch(cmd); err != nil {
			t.Fatalf("Dispatch(%v) error = %v", cmd, err)
		}
	}

	want := []string{"show:main", "hide:main", "show:main"}
	if len(w.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", w.calls, want)
	}
	for i := range want {
		if w.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, w.calls[i], want[i])
		}
	}
}

func TestDispatch_NewWindowResolvesEachTime(t *testing.T) {
	w := &recordingWindows{}
	r := &stubResolver{url: "https://first.test"}
	c := NewController(w, r, func(int) {})

	if err := c.Dispatch(CommandNewWindow); err != nil {
		t.Fatal(err)
	}
	r.url = "https://second.test"
	if err := c.Dispatch(CommandNewWindow); err != nil {
		t.Fatal(err)
	}

	if len(w.urls) != 2 || w.urls[0] != "https://first.test" || w.urls[1] != "https://second.test" {
		t.Errorf("new windows opened at %v", w.urls)
	}
}

func TestDispatch_NewWindowFailureIsRecoverable(t *testing.T) {
	w := &recordingWindows{createErr: common.ErrInvalidURL}
	exit := &exitRecorder{}
	c := NewController(w, &stubResolver{url: "bad"}, exit.exit)

	var reported error
	c.OnWindowError = func(err error) { reported = err }

	err := c.Dispatch(CommandNewWindow)
	if !errors.Is(err, common.ErrInvalidURL) {
		t.Errorf("Dispatch error = %v, want ErrInvalidURL", err)
	}
	if !errors.Is(reported, common.ErrInvalidURL) {
		t.Errorf("OnWindowError got %v", reported)
	}
	if exit.called {
		t.Error("a failed new window must not exit the process")
	}
}

func TestDispatch_Quit(t *testing.T) {
	w := &recordingWindows{}
	exit := &exitRecorder{code: -1}
	c := NewController(w, &stubResolver{}, exit.exit)

	cleaned := false
	c.BeforeQuit = func() { cleaned = true }

	if err := c.Dispatch(CommandQuit); err != nil {
		t.Fatal(err)
	}
	if !exit.called || exit.code != 0 {
		t.Errorf("exit called=%v code=%d, want exit(0)", exit.called, exit.code)
	}
	if !cleaned {
		t.Error("BeforeQuit should run before exiting")
	}
	if len(w.calls) != 0 {
		t.Errorf("quit must bypass window operations, got %v", w.calls)
	}
}

func TestDispatch_Unknown(t *testing.T) {
	c := NewController(&recordingWindows{}, &stubResolver{}, func(int) {})
	if err := c.Dispatch(Command(42)); !errors.Is(err, common.ErrUnknownCommand) {
		t.Errorf("Dispatch(42) error = %v", err)
	}
}

// The controller against a real window manager: two new windows, then an
// OS close on the primary.
func TestController_WithWindowManager(t *testing.T) {
	m := window.NewManager(nopHost{})
	if err := m.CreatePrimary("https://example.test"); err != nil {
		t.Fatal(err)
	}
	c := NewController(m, &stubResolver{url: "https://example.test"}, func(int) {})

	for i := 0; i < 2; i++ {
		if err := c.Dispatch(CommandNewWindow); err != nil {
			t.Fatal(err)
		}
	}
	if m.Count() != 3 || m.SecondaryCount() != 2 {
		t.Fatalf("Count() = %d, SecondaryCount() = %d", m.Count(), m.SecondaryCount())
	}

	if d := m.CloseRequest(common.PrimaryWindowLabel); d != window.CloseHide {
		t.Errorf("close on primary = %v, want hide", d)
	}
	if m.Count() != 3 {
		t.Errorf("Count() after primary close = %d, want 3", m.Count())
	}

	if err := c.Dispatch(CommandShow); err != nil {
		t.Fatal(err)
	}
	if p, _ := m.Primary(); p.State != window.StateVisible {
		t.Errorf("primary state = %v after show", p.State)
	}
}

type nopHost struct{}

func (nopHost) CreateWindow(window.Spec) (window.Handle, error) { return nopHandle{}, nil }

type nopHandle struct{}

func (nopHandle) Show() error           { return nil }
func (nopHandle) Hide() error           { return nil }
func (nopHandle) Unminimize() error     { return nil }
func (nopHandle) Focus() error          { return nil }
func (nopHandle) Navigate(string) error { return nil }

type recordingNotifier struct {
	titles []string
	err    error
}

func (n *recordingNotifier) Notify(title, message string) error {
	n.titles = append(n.titles, title)
	return n.err
}

func TestNewWindow_FailureIsAnnounced(t *testing.T) {
	tests := []struct {
		name      string
		notifyErr error
	}{
		{"delivered", nil},
		{"notification fails too", errors.New("no notification daemon")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &recordingNotifier{err: tt.notifyErr}
			c := NewController(&recordingWindows{createErr: common.ErrInvalidURL}, &stubResolver{url: "bad"}, func(int) {})
			c.Notifier = n

			if _, err := c.NewWindow(); !errors.Is(err, common.ErrInvalidURL) {
				t.Errorf("NewWindow error = %v, want ErrInvalidURL", err)
			}
			if len(n.titles) != 1 || n.titles[0] != "Could not open a new window" {
				t.Errorf("notifications = %v", n.titles)
			}
		})
	}
}

func TestNewWindow_SuccessIsQuiet(t *testing.T) {
	n := &recordingNotifier{}
	c := NewController(&recordingWindows{}, &stubResolver{url: "https://example.test"}, func(int) {})
	c.Notifier = n

	if _, err := c.NewWindow(); err != nil {
		t.Fatal(err)
	}
	if len(n.titles) != 0 {
		t.Errorf("unexpected notifications %v", n.titles)
	}
}

func TestReload_UsesCurrentAddress(t *testing.T) {
	w := &recordingWindows{}
	r := &stubResolver{url: "https://first.test"}
	c := NewController(w, r, func(int) {})

	r.url = "https://second.test"
	if err := c.Reload(); err != nil {
		t.Fatal(err)
	}
	want := []string{"navigate:main:https://second.test"}
	if fmt.Sprint(w.calls) != fmt.Sprint(want) {
		t.Errorf("calls = %v, want %v", w.calls, want)
	}
}

func TestReload_FailureIsAnnounced(t *testing.T) {
	n := &recordingNotifier{}
	w := &recordingWindows{navigateErr: common.ErrInvalidURL}
	exit := &exitRecorder{}
	c := NewController(w, &stubResolver{url: "bogus"}, exit.exit)
	c.Notifier = n

	if err := c.Reload(); !errors.Is(err, common.ErrInvalidURL) {
		t.Errorf("Reload error = %v, want ErrInvalidURL", err)
	}
	if len(n.titles) != 1 || n.titles[0] != "Could not reload OpenCami" {
		t.Errorf("notifications = %v", n.titles)
	}
	if exit.called {
		t.Error("a failed reload must not exit the process")
	}
}

// Reload against a real window manager updates the primary address.
func TestReload_WithWindowManager(t *testing.T) {
	m := window.NewManager(nopHost{})
	if err := m.CreatePrimary("https://example.test"); err != nil {
		t.Fatal(err)
	}
	c := NewController(m, &stubResolver{url: "https://override.test"}, func(int) {})

	if err := c.Reload(); err != nil {
		t.Fatal(err)
	}
	if p, _ := m.Primary(); p.URL != "https://override.test" {
		t.Errorf("primary URL = %q after reload", p.URL)
	}
}
