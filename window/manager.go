package window

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/yllada/opencami-desktop/common"
	"github.com/yllada/opencami-desktop/remote"
)

// maxLabelAttempts bounds retries when a generated label was already issued.
const maxLabelAttempts = 8

type entry struct {
	Window
	handle Handle
}

// Manager owns the registry of live windows.
type Manager struct {
	host     Host
	log      common.Logger
	windows  map[string]*entry
	issued   map[string]struct{}
	newLabel func() string

	startHidden bool
	minimal     bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for best-effort host failures.
func WithLogger(l common.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithLabelGenerator replaces the uuid-based secondary label generator.
func WithLabelGenerator(fn func() string) Option {
	return func(m *Manager) { m.newLabel = fn }
}

// WithStartHidden creates the primary window without showing it.
func WithStartHidden(hidden bool) Option {
	return func(m *Manager) { m.startHidden = hidden }
}

// WithMinimal switches to the single-window mode: no secondary windows and
// the primary window closes normally.
func WithMinimal(minimal bool) Option {
	return func(m *Manager) { m.minimal = minimal }
}

// NewManager returns an empty registry backed by host.
func NewManager(host Host, opts ...Option) *Manager {
	m := &Manager{
		host:    host,
		log:     common.GetLogger(),
		windows: make(map[string]*entry),
		issued:  make(map[string]struct{}),
		newLabel: func() string {
			return "window-" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Minimal reports whether the manager runs in single-window mode.
func (m *Manager) Minimal() bool {
	return m.minimal
}

// CreatePrimary builds the startup window. It may be called once.
// Errors are fatal to the application.
func (m *Manager) CreatePrimary(url string) error {
	if _, ok := m.issued[common.PrimaryWindowLabel]; ok {
		return common.ErrPrimaryExists
	}
	if err := remote.Validate(url); err != nil {
		return err
	}

	spec := DefaultSpec(common.PrimaryWindowLabel, url, RolePrimary)
	spec.Visible = !m.startHidden

	if err := m.create(spec); err != nil {
		return err
	}
	m.log.Info("Primary window created at %s", url)
	return nil
}

// CreateSecondary builds an additional window pointed at url and returns its label.
// A failure leaves the registry untouched.
func (m *Manager) CreateSecondary(url string) (string, error) {
	if m.minimal {
		return "", common.ErrFeatureMissing
	}
	if err := remote.Validate(url); err != nil {
		return "", err
	}

	label, err := m.freshLabel()
	if err != nil {
		return "", err
	}

	if err := m.create(DefaultSpec(label, url, RoleSecondary)); err != nil {
		return "", err
	}
	m.log.Info("Secondary window %s created at %s", label, url)
	return label, nil
}

func (m *Manager) freshLabel() (string, error) {
	for i := 0; i < maxLabelAttempts; i++ {
		label := m.newLabel()
		if label == "" || label == common.PrimaryWindowLabel {
			continue
		}
		if _, taken := m.issued[label]; !taken {
			return label, nil
		}
	}
	return "", fmt.Errorf("%w: could not generate a unique label", common.ErrWindowCreate)
}

func (m *Manager) create(spec Spec) error {
	handle, err := m.host.CreateWindow(spec)
	if err != nil {
		return fmt.Errorf("%w %q: %v", common.ErrWindowCreate, spec.Label, err)
	}

	// Labels are burned once handed to the host, even if later closed.
	m.issued[spec.Label] = struct{}{}

	state := StateHidden
	if spec.Visible {
		state = StateVisible
	}
	m.windows[spec.Label] = &entry{
		Window: Window{Label: spec.Label, URL: spec.URL, Role: spec.Role, State: state},
		handle: handle,
	}
	return nil
}

// Show makes the window visible. Unknown labels are ignored.
func (m *Manager) Show(label string) {
	e, ok := m.windows[label]
	if !ok {
		return
	}
	m.bestEffort(label, "show", e.handle.Show)
	m.setState(e, StateVisible)
}

// Hide hides the window. Unknown labels are ignored.
func (m *Manager) Hide(label string) {
	e, ok := m.windows[label]
	if !ok {
		return
	}
	m.bestEffort(label, "hide", e.handle.Hide)
	m.setState(e, StateHidden)
}

// ShowAndFocus shows, unminimizes and focuses the window. Each step is
// attempted even if an earlier one failed.
func (m *Manager) ShowAndFocus(label string) {
	e, ok := m.windows[label]
	if !ok {
		return
	}
	m.bestEffort(label, "show", e.handle.Show)
	m.bestEffort(label, "unminimize", e.handle.Unminimize)
	m.bestEffort(label, "focus", e.handle.Focus)
	m.setState(e, StateVisible)
}

// CloseRequest applies the close policy to an OS close request.
func (m *Manager) CloseRequest(label string) CloseDecision {
	e, ok := m.windows[label]
	if !ok {
		return CloseAllow
	}

	if e.Role == RolePrimary && !m.minimal {
		m.Hide(label)
		m.log.Debug("Close on primary window turned into hide")
		return CloseHide
	}

	m.setState(e, StateDestroyed)
	delete(m.windows, label)
	m.log.Debug("Window %s closed", label)
	return CloseAllow
}

// Navigate points an existing window at a new address.
func (m *Manager) Navigate(label, url string) error {
	e, ok := m.windows[label]
	if !ok {
		return nil
	}
	if err := remote.Validate(url); err != nil {
		return err
	}
	if err := e.handle.Navigate(url); err != nil {
		return err
	}
	e.URL = url
	return nil
}

func (m *Manager) setState(e *entry, next State) {
	if !e.State.canTransition(next, e.Role, m.minimal) {
		m.log.Warn("Ignoring %s window %s transition %s -> %s", e.Role, e.Label, e.State, next)
		return
	}
	e.State = next
}

func (m *Manager) bestEffort(label, op string, fn func() error) {
	if err := fn(); err != nil {
		m.log.Debug("Window %s: %s failed: %v", label, op, err)
	}
}

// Lookup returns a snapshot of the window with the given label.
func (m *Manager) Lookup(label string) (Window, bool) {
	e, ok := m.windows[label]
	if !ok {
		return Window{}, false
	}
	return e.Window, true
}

// Primary returns the primary window, if created.
func (m *Manager) Primary() (Window, bool) {
	return m.Lookup(common.PrimaryWindowLabel)
}

// Count returns the number of live windows, primary included.
func (m *Manager) Count() int {
	return len(m.windows)
}

// SecondaryCount returns the number of live secondary windows.
func (m *Manager) SecondaryCount() int {
	n := 0
	for _, e := range m.windows {
		if e.Role == RoleSecondary {
			n++
		}
	}
	return n
}

// Labels returns the labels of live windows in sorted order.
func (m *Manager) Labels() []string {
	labels := make([]string, 0, len(m.windows))
	for l := range m.windows {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
