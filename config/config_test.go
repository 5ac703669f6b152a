package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yllada/opencami-desktop/common"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Theme != common.ThemeAuto {
		t.Errorf("Theme = %q, want auto", cfg.Theme)
	}
	if !cfg.ShowNotifications {
		t.Error("ShowNotifications should default to true")
	}
	if cfg.StartHidden || cfg.Minimal || cfg.DeveloperTools {
		t.Error("start_hidden, minimal and developer_tools should default to false")
	}
}

func TestLoadFrom_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("LoadFrom() = %+v, want defaults", cfg)
	}
	if !common.FileExists(path) {
		t.Error("defaults should be written on first load")
	}
}

func TestLoadFrom_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &Config{Theme: common.ThemeDark, StartHidden: true, Minimal: true}
	if err := want.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *want {
		t.Errorf("LoadFrom() = %+v, want %+v", got, want)
	}
}

func TestLoadFrom_Validation(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantErr   bool
		wantTheme string
	}{
		{"invalid theme falls back", "theme: neon\n", false, common.ThemeAuto},
		{"missing keys keep defaults", "start_hidden: true\n", false, common.ThemeAuto},
		{"unknown field rejected", "remote_url: https://x.test\n", true, ""},
		{"broken yaml rejected", "theme: [\n", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			cfg, err := LoadFrom(path)
			if tt.wantErr {
				if !errors.Is(err, common.ErrConfigLoad) {
					t.Errorf("error = %v, want ErrConfigLoad", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Theme != tt.wantTheme {
				t.Errorf("Theme = %q, want %q", cfg.Theme, tt.wantTheme)
			}
		})
	}
}

func TestLoadFrom_MissingKeysKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("start_hidden: true\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.ShowNotifications {
		t.Error("absent show_notifications should keep its default")
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, common.EnvFileName)
	if err := os.WriteFile(envFile, []byte(common.RemoteURLEnv+"=https://dotenv.test\n"), 0600); err != nil {
		t.Fatal(err)
	}

	t.Run("does not override", func(t *testing.T) {
		t.Setenv(common.RemoteURLEnv, "https://real.test")
		LoadEnv(dir)
		if got := os.Getenv(common.RemoteURLEnv); got != "https://real.test" {
			t.Errorf("%s = %q, real environment must win", common.RemoteURLEnv, got)
		}
	})

	t.Run("fills unset", func(t *testing.T) {
		t.Setenv(common.RemoteURLEnv, "")
		os.Unsetenv(common.RemoteURLEnv)
		loaded := LoadEnv(dir)
		if len(loaded) == 0 {
			t.Fatal("expected the config-dir .env to be loaded")
		}
		if got := os.Getenv(common.RemoteURLEnv); got != "https://dotenv.test" {
			t.Errorf("%s = %q, want value from .env", common.RemoteURLEnv, got)
		}
	})
}

func TestWatcher_Reloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := DefaultConfig().SaveTo(path); err != nil {
		t.Fatal(err)
	}

	changes := make(chan *Config, 4)
	w, err := NewWatcher(path, func(c *Config) { changes <- c })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	updated := &Config{Theme: common.ThemeLight, ShowNotifications: false}
	if err := updated.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changes:
		if got.Theme != common.ThemeLight {
			t.Errorf("reloaded Theme = %q, want light", got.Theme)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the change")
	}

	w.Stop()
	w.Stop()
}

func TestLoadFrom_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("empty file should load defaults, got %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("LoadFrom(empty) = %+v", cfg)
	}
}
