package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// chdirIsolated moves into an empty working directory and points HOME and
// XDG_CONFIG_HOME at empty directories so no real config is picked up.
func chdirIsolated(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirIsolated(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}

	if !cfg.Calendar.WeekNumbers {
		t.Errorf("Calendar.WeekNumbers = false, want true")
	}
	if cfg.Calendar.Class != "date" {
		t.Errorf("Calendar.Class = %q, want %q", cfg.Calendar.Class, "date")
	}
	if got := cfg.Watch.GetInterval(); got != time.Minute {
		t.Errorf("Watch.GetInterval() = %v, want %v", got, time.Minute)
	}
	if got := cfg.Log.GetLevel(); got != zapcore.InfoLevel {
		t.Errorf("Log.GetLevel() = %v, want %v", got, zapcore.InfoLevel)
	}
	if cfg.Tray.Enabled {
		t.Errorf("Tray.Enabled = true, want false")
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
calendar:
  week_numbers: false
watch:
  interval: 30s
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error = %v", path, err)
	}

	if cfg.Calendar.WeekNumbers {
		t.Errorf("Calendar.WeekNumbers = true, want false")
	}
	// Unset keys keep their defaults
	if cfg.Calendar.Class != "date" {
		t.Errorf("Calendar.Class = %q, want %q", cfg.Calendar.Class, "date")
	}
	if got := cfg.Watch.GetInterval(); got != 30*time.Second {
		t.Errorf("Watch.GetInterval() = %v, want %v", got, 30*time.Second)
	}
	if got := cfg.Log.GetLevel(); got != zapcore.DebugLevel {
		t.Errorf("Log.GetLevel() = %v, want %v", got, zapcore.DebugLevel)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Bad interval", "watch:\n  interval: soon\n"},
		{"Negative interval", "watch:\n  interval: -1m\n"},
		{"Bad log level", "log:\n  level: loud\n"},
		{"Empty class", "calendar:\n  class: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)
			if _, err := Load(path); err == nil {
				t.Errorf("Load() expected error for %s, got nil", tt.name)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := Load(path); err == nil {
		t.Errorf("Load(%q) expected error for missing file, got nil", path)
	}
}

func TestLoadIgnoresWorkingDirectory(t *testing.T) {
	dir := chdirIsolated(t)

	files := map[string]string{
		"config.json": `{"log":{"level":"verbose"}}`,
		"config.yaml": "calendar:\n  class: \"\"\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Calendar.Class != "date" || cfg.Log.Level != "info" {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadFromUserConfigDir(t *testing.T) {
	chdirIsolated(t)

	base, err := os.UserConfigDir()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	dir := filepath.Join(base, "status-calendar")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("calendar:\n  week_numbers: false\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Calendar.WeekNumbers {
		t.Errorf("Calendar.WeekNumbers = true, want false from %s", dir)
	}
}

func TestSearchPathsSkipWorkingDirectory(t *testing.T) {
	for _, p := range SearchPaths() {
		if p == "." || p == "" {
			t.Errorf("SearchPaths() contains %q", p)
		}
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "calendar:\n  class: date\n")
	t.Setenv("STATUS_CALENDAR_CALENDAR_CLASS", "clock")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Calendar.Class != "clock" {
		t.Errorf("Calendar.Class = %q, want %q", cfg.Calendar.Class, "clock")
	}
}
