package bridge

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/yllada/opencami-desktop/common"
)

type fakeWindows struct {
	opened int
	err    error
}

func (f *fakeWindows) NewWindow() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.opened++
	return "window-1", nil
}

type memAutostart struct {
	enabled bool
	err     error
}

func (m *memAutostart) SetEnabled(enabled bool) error {
	if m.err != nil {
		return m.err
	}
	m.enabled = enabled
	return nil
}

func (m *memAutostart) IsEnabled() (bool, error) {
	return m.enabled, m.err
}

type fakeNotifier struct{ titles []string }

func (f *fakeNotifier) Notify(title, _ string) error {
	f.titles = append(f.titles, title)
	return nil
}

func newTestBridge() (*Bridge, *fakeWindows, *memAutostart, *fakeNotifier, *string) {
	w := &fakeWindows{}
	a := &memAutostart{}
	n := &fakeNotifier{}
	var clip string
	b := New(w, a, n, "1.2.3")
	b.WriteClipboard = func(text string) error {
		clip = text
		return nil
	}
	return b, w, a, n, &clip
}

func TestHandle_NewWindow(t *testing.T) {
	b, w, _, _, _ := newTestBridge()

	reply := b.HandleMessage(`{"id":7,"cmd":"new_window"}`)
	if !reply.OK || reply.ID != 7 {
		t.Fatalf("reply = %+v", reply)
	}
	if w.opened != 1 {
		t.Errorf("opened = %d, want 1", w.opened)
	}

	w.err = common.ErrInvalidURL
	reply = b.HandleMessage(`{"id":8,"cmd":"new_window"}`)
	if reply.OK || !strings.Contains(reply.Error, "invalid url") {
		t.Errorf("failed new_window reply = %+v", reply)
	}
}

func TestHandle_AutostartRoundTrip(t *testing.T) {
	b, _, _, _, _ := newTestBridge()

	for _, want := range []bool{true, false} {
		args, _ := json.Marshal(map[string]bool{"enabled": want})
		if r := b.Handle(Request{ID: 1, Cmd: "set_autostart_enabled", Args: args}); !r.OK {
			t.Fatalf("set_autostart_enabled(%v) = %+v", want, r)
		}
		r := b.Handle(Request{ID: 2, Cmd: "is_autostart_enabled"})
		if !r.OK || r.Result != want {
			t.Errorf("is_autostart_enabled = %+v, want %v", r, want)
		}
	}
}

func TestHandle_AutostartErrorsAreStrings(t *testing.T) {
	b, _, a, _, _ := newTestBridge()
	a.err = errors.New("launch agent denied")

	r := b.HandleMessage(`{"id":1,"cmd":"set_autostart_enabled","args":{"enabled":true}}`)
	if r.OK || r.Error != "launch agent denied" {
		t.Errorf("reply = %+v, want verbatim OS error", r)
	}
	r = b.HandleMessage(`{"id":2,"cmd":"is_autostart_enabled"}`)
	if r.OK || r.Error != "launch agent denied" {
		t.Errorf("reply = %+v, want verbatim OS error", r)
	}
}

func TestHandle_BadInput(t *testing.T) {
	b, _, _, _, _ := newTestBridge()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"not json", `{{{`, "invalid command arguments"},
		{"unknown command", `{"id":1,"cmd":"format_disk"}`, "unknown command"},
		{"missing enabled", `{"id":1,"cmd":"set_autostart_enabled","args":{}}`, "enabled is required"},
		{"wrong arg type", `{"id":1,"cmd":"set_autostart_enabled","args":{"enabled":"yes"}}`, "invalid command arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := b.HandleMessage(tt.raw)
			if r.OK || !strings.Contains(r.Error, tt.want) {
				t.Errorf("reply = %+v, want error containing %q", r, tt.want)
			}
		})
	}
}

func TestHandle_Extras(t *testing.T) {
	b, _, _, n, clip := newTestBridge()

	if r := b.HandleMessage(`{"id":1,"cmd":"notify","args":{"title":"Hi","body":"there"}}`); !r.OK {
		t.Errorf("notify = %+v", r)
	}
	if len(n.titles) != 1 || n.titles[0] != "Hi" {
		t.Errorf("notifications = %v", n.titles)
	}

	if r := b.HandleMessage(`{"id":2,"cmd":"copy_to_clipboard","args":{"text":"secret"}}`); !r.OK {
		t.Errorf("copy_to_clipboard = %+v", r)
	}
	if *clip != "secret" {
		t.Errorf("clipboard = %q", *clip)
	}

	if r := b.HandleMessage(`{"id":3,"cmd":"app_version"}`); !r.OK || r.Result != "1.2.3" {
		t.Errorf("app_version = %+v", r)
	}

	if r := b.HandleMessage(`{"id":4,"cmd":"open_settings"}`); r.OK {
		t.Errorf("open_settings without a window should fail, got %+v", r)
	}
	opened := false
	b.OpenSettings = func() { opened = true }
	if r := b.HandleMessage(`{"id":5,"cmd":"open_settings"}`); !r.OK || !opened {
		t.Errorf("open_settings = %+v, opened = %v", r, opened)
	}
}

func TestEncodeReply(t *testing.T) {
	out, err := EncodeReply(Reply{ID: 4, OK: true, Result: true})
	if err != nil {
		t.Fatal(err)
	}
	if out != `{"id":4,"ok":true,"result":true}` {
		t.Errorf("EncodeReply() = %s", out)
	}

	out, _ = EncodeReply(Reply{ID: 5, Error: "launch agent denied"})
	var back Reply
	if err := json.Unmarshal([]byte(out), &back); err != nil {
		t.Fatal(err)
	}
	if back.OK || back.Error != "launch agent denied" {
		t.Errorf("decoded reply = %+v", back)
	}
}

func TestHandleMessage_ReplyRoundTrip(t *testing.T) {
	b, _, a, _, _ := newTestBridge()
	a.enabled = true

	out, err := EncodeReply(b.HandleMessage(`{"id":9,"cmd":"is_autostart_enabled"}`))
	if err != nil {
		t.Fatal(err)
	}
	if out != `{"id":9,"ok":true,"result":true}` {
		t.Errorf("reply = %s", out)
	}
}

func TestShim_UsesHandlerName(t *testing.T) {
	if !strings.Contains(Shim, "messageHandlers."+HandlerName+".postMessage(msg).then") {
		t.Error("Shim must post to the registered handler and chain on its reply")
	}
}
