package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Browser.Mode != "headless" {
		t.Errorf("Browser.Mode = %q", cfg.Browser.Mode)
	}
	if cfg.Timeouts.Small != 7*time.Second || cfg.Timeouts.Large != 10*time.Second {
		t.Errorf("timeouts = %+v", cfg.Timeouts)
	}
	if cfg.Dashboard.Addr != ":8087" || cfg.Tour.Theme != "introjs" {
		t.Errorf("defaults incomplete: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	yaml := `
browser:
  mode: undetected
  resource_blocking: [image, font]
timeouts:
  small: 3s
demo:
  enabled: true
dashboard:
  db_path: /var/lib/results.db
tour:
  theme: driverjs
`
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Browser.Mode != "undetected" {
		t.Errorf("Browser.Mode = %q", cfg.Browser.Mode)
	}
	if len(cfg.Browser.ResourceBlocking) != 2 {
		t.Errorf("ResourceBlocking = %v", cfg.Browser.ResourceBlocking)
	}
	if cfg.Timeouts.Small != 3*time.Second {
		t.Errorf("Timeouts.Small = %s", cfg.Timeouts.Small)
	}
	if cfg.Timeouts.Large != 10*time.Second {
		t.Errorf("unset Large should default: %s", cfg.Timeouts.Large)
	}
	if !cfg.Demo.Enabled || cfg.Demo.Sleep != 500*time.Millisecond {
		t.Errorf("demo = %+v", cfg.Demo)
	}
	if cfg.Dashboard.DBPath != "/var/lib/results.db" {
		t.Errorf("Dashboard.DBPath = %q", cfg.Dashboard.DBPath)
	}
	if cfg.Tour.Theme != "driverjs" {
		t.Errorf("Tour.Theme = %q", cfg.Tour.Theme)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFileBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("browser: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}
