package window

import "github.com/yllada/opencami-desktop/common"

// Role distinguishes the startup window from on-demand ones.
type Role int

const (
	RolePrimary Role = iota
	RoleSecondary
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// State is the lifecycle state of a window.
type State int

const (
	StateCreated State = iota
	StateVisible
	StateHidden
	StateDestroyed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateVisible:
		return "visible"
	case StateHidden:
		return "hidden"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// canTransition reports whether a window with role r may move from s to next.
// Destroyed is terminal, and only secondaries reach it unless allowPrimaryClose is set.
func (s State) canTransition(next State, r Role, allowPrimaryClose bool) bool {
	if s == StateDestroyed {
		return false
	}
	switch next {
	case StateVisible, StateHidden:
		return true
	case StateDestroyed:
		return r == RoleSecondary || allowPrimaryClose
	default:
		return false
	}
}

// Spec describes a window for the host to build.
type Spec struct {
	Label     string
	Title     string
	URL       string
	Role      Role
	Width     int
	Height    int
	MinWidth  int
	MinHeight int
	Resizable bool
	Centered  bool
	Visible   bool
}

// DefaultSpec returns the sizing policy shared by every window.
func DefaultSpec(label, url string, role Role) Spec {
	return Spec{
		Label:     label,
		Title:     common.AppName,
		URL:       url,
		Role:      role,
		Width:     common.DefaultWindowWidth,
		Height:    common.DefaultWindowHeight,
		MinWidth:  common.MinWindowWidth,
		MinHeight: common.MinWindowHeight,
		Resizable: true,
		Centered:  true,
		Visible:   true,
	}
}

// Handle is the host's side of a single window.
type Handle interface {
	Show() error
	Hide() error
	Unminimize() error
	Focus() error
	Navigate(url string) error
}

// Host creates native webview windows.
type Host interface {
	CreateWindow(spec Spec) (Handle, error)
}

// Window is a snapshot of a registered window.
type Window struct {
	Label string
	URL   string
	Role  Role
	State State
}

// CloseDecision tells the host what to do with an OS close request.
type CloseDecision int

const (
	// CloseHide suppresses the close; the window has been hidden.
	CloseHide CloseDecision = iota
	// CloseAllow lets the host destroy the window.
	CloseAllow
)

// String returns a human-readable decision name.
func (d CloseDecision) String() string {
	if d == CloseHide {
		return "hide"
	}
	return "allow"
}
