// Package bridge implements the command surface exposed to the loaded web
// content. Requests arrive as JSON from a WebKit script message handler and
// each reply, encoded with EncodeReply, settles the page's postMessage promise.
package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/yllada/opencami-desktop/common"
)

// HandlerName is the script message handler registered with the webview.
const HandlerName = "opencami"

// Request is a call from the page.
type Request struct {
	ID   int64           `json:"id"`
	Cmd  string          `json:"cmd"`
	Args json.RawMessage `json:"args,omitempty"`
}

// Reply answers a Request. Errors travel as plain strings.
type Reply struct {
	ID     int64       `json:"id"`
	OK     bool        `json:"ok"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// WindowOpener opens secondary windows.
type WindowOpener interface {
	NewWindow() (string, error)
}

// Autostart is the launch-at-login toggle.
type Autostart interface {
	SetEnabled(enabled bool) error
	IsEnabled() (bool, error)
}

// Bridge routes page commands to the shell.
type Bridge struct {
	windows   WindowOpener
	autostart Autostart
	notifier  common.Notifier
	version   string

	// WriteClipboard defaults to the system clipboard.
	WriteClipboard func(text string) error
	// OpenSettings shows the settings window. Nil disables the command.
	OpenSettings func()
}

// New returns a bridge. notifier may be nil.
func New(windows WindowOpener, autostart Autostart, notifier common.Notifier, version string) *Bridge {
	return &Bridge{
		windows:        windows,
		autostart:      autostart,
		notifier:       notifier,
		version:        version,
		WriteClipboard: clipboard.WriteAll,
	}
}

// HandleMessage decodes a raw request and always produces a reply.
func (b *Bridge) HandleMessage(raw string) Reply {
	var req Request
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return Reply{Error: fmt.Sprintf("%v: %v", common.ErrInvalidArgs, err)}
	}
	return b.Handle(req)
}

// Handle runs one request.
func (b *Bridge) Handle(req Request) Reply {
	result, err := b.invoke(req.Cmd, req.Args)
	if err != nil {
		common.LogDebug("Bridge command %s failed: %v", req.Cmd, err)
		return Reply{ID: req.ID, Error: err.Error()}
	}
	return Reply{ID: req.ID, OK: true, Result: result}
}

func (b *Bridge) invoke(cmd string, args json.RawMessage) (interface{}, error) {
	switch cmd {
	case "new_window":
		_, err := b.windows.NewWindow()
		return nil, err

	case "set_autostart_enabled":
		var a struct {
			Enabled *bool `json:"enabled"`
		}
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		if a.Enabled == nil {
			return nil, fmt.Errorf("%w: enabled is required", common.ErrInvalidArgs)
		}
		return nil, b.autostart.SetEnabled(*a.Enabled)

	case "is_autostart_enabled":
		return b.autostart.IsEnabled()

	case "notify":
		var a struct {
			Title string `json:"title"`
			Body  string `json:"body"`
		}
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		if b.notifier == nil {
			return nil, common.ErrNotification
		}
		return nil, b.notifier.Notify(a.Title, a.Body)

	case "copy_to_clipboard":
		var a struct {
			Text string `json:"text"`
		}
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		return nil, b.WriteClipboard(a.Text)

	case "app_version":
		return b.version, nil

	case "open_settings":
		if b.OpenSettings == nil {
			return nil, common.ErrFeatureMissing
		}
		b.OpenSettings()
		return nil, nil

	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownCommand, cmd)
	}
}

func decodeArgs(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidArgs, err)
	}
	return nil
}
