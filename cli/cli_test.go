package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/yllada/opencami-desktop/common"
	"github.com/yllada/opencami-desktop/remote"
)

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

func (m *memAutostart) IsEnabled() (bool, error) { return m.enabled, m.err }

func newTestCLI(env map[string]string, agent Autostart) (*CLI, *bytes.Buffer) {
	resolver := &remote.Resolver{
		LookupEnv: func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		},
		BuildDefault: new(string),
	}
	c := New(resolver, agent)
	var buf bytes.Buffer
	c.SetOutput(&buf)
	return c, &buf
}

func TestPrintURL(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    string
		wantErr bool
	}{
		{"fallback", nil, common.FallbackRemoteURL + " (fallback)", false},
		{"override", map[string]string{common.RemoteURLEnv: "https://cami.example"}, "https://cami.example (environment)", false},
		{"invalid override", map[string]string{common.RemoteURLEnv: "ftp://x"}, "ftp://x", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, buf := newTestCLI(tt.env, &memAutostart{})
			err := c.PrintURL()
			if (err != nil) != tt.wantErr {
				t.Fatalf("PrintURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.HasPrefix(buf.String(), tt.want) {
				t.Errorf("output = %q, want prefix %q", buf.String(), tt.want)
			}
		})
	}
}

func TestAutostart(t *testing.T) {
	agent := &memAutostart{}
	c, buf := newTestCLI(nil, agent)

	if err := c.Autostart("on"); err != nil {
		t.Fatal(err)
	}
	if !agent.enabled {
		t.Error("on should enable autostart")
	}

	buf.Reset()
	if err := c.Autostart("status"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "enabled") {
		t.Errorf("status output = %q", buf.String())
	}

	if err := c.Autostart("OFF"); err != nil {
		t.Fatal(err)
	}
	if agent.enabled {
		t.Error("off should disable autostart")
	}

	if err := c.Autostart("maybe"); !errors.Is(err, common.ErrInvalidArgs) {
		t.Errorf("Autostart(maybe) error = %v, want ErrInvalidArgs", err)
	}
}

func TestAutostart_SurfacesErrors(t *testing.T) {
	agent := &memAutostart{err: errors.New("permission denied")}
	c, _ := newTestCLI(nil, agent)

	for _, arg := range []string{"on", "off", "status"} {
		if err := c.Autostart(arg); err == nil || err.Error() != "permission denied" {
			t.Errorf("Autostart(%s) error = %v", arg, err)
		}
	}
}

func TestVersion(t *testing.T) {
	c, buf := newTestCLI(nil, &memAutostart{})

	c.Version("1.0.0", "unknown", "unknown")
	if got := buf.String(); got != "OpenCami v1.0.0\n" {
		t.Errorf("Version() = %q", got)
	}

	buf.Reset()
	c.Version("1.0.0", "2026-01-01", "abc123")
	if !strings.Contains(buf.String(), "abc123") {
		t.Errorf("Version() should include the commit, got %q", buf.String())
	}
}
