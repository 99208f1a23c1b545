// Package config loads the framework configuration from YAML files with
// defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Browser   BrowserConfig   `yaml:"browser"`
	Timeouts  TimeoutConfig   `yaml:"timeouts"`
	Demo      DemoConfig      `yaml:"demo"`
	Recorder  RecorderConfig  `yaml:"recorder"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Tour      TourConfig      `yaml:"tour"`
}

// BrowserConfig controls Chrome lifecycle.
type BrowserConfig struct {
	Remote           string   `yaml:"remote"`            // DevTools URL of an existing browser
	Mode             string   `yaml:"mode"`              // headless | headed | undetected
	SlowMotionMS     int      `yaml:"slow_motion_ms"`
	UserAgent        string   `yaml:"user_agent"`
	ResourceBlocking []string `yaml:"resource_blocking"` // image | font | media | stylesheet
	UseXvfb          bool     `yaml:"use_xvfb"`
	XvfbDisplay      string   `yaml:"xvfb_display"`
}

// TimeoutConfig sets the two wait tiers and the polling interval.
type TimeoutConfig struct {
	Small time.Duration `yaml:"small"`
	Large time.Duration `yaml:"large"`
	Poll  time.Duration `yaml:"poll"`
}

// DemoConfig slows actions down for human observation.
type DemoConfig struct {
	Enabled bool          `yaml:"enabled"`
	Sleep   time.Duration `yaml:"sleep"`
}

// RecorderConfig controls interaction recording.
type RecorderConfig struct {
	OutputDir string        `yaml:"output_dir"`
	QuietFor  time.Duration `yaml:"quiet_for"` // idle period ending a recording
}

// DashboardConfig names the results database and server binding.
type DashboardConfig struct {
	DBPath      string `yaml:"db_path"`
	HTMLPath    string `yaml:"html_path"`
	Addr        string `yaml:"addr"`
	ArtifactDir string `yaml:"artifact_dir"`
	RunLimit    int    `yaml:"run_limit"`
}

// TourConfig sets the default tour theme.
type TourConfig struct {
	Theme string `yaml:"theme"` // introjs | bootstrap | driverjs | hopscotch
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Browser.Mode == "" {
		c.Browser.Mode = "headless"
	}
	if c.Browser.XvfbDisplay == "" {
		c.Browser.XvfbDisplay = ":99"
	}
	if c.Timeouts.Small <= 0 {
		c.Timeouts.Small = 7 * time.Second
	}
	if c.Timeouts.Large <= 0 {
		c.Timeouts.Large = 10 * time.Second
	}
	if c.Timeouts.Poll <= 0 {
		c.Timeouts.Poll = 100 * time.Millisecond
	}
	if c.Demo.Sleep <= 0 {
		c.Demo.Sleep = 500 * time.Millisecond
	}
	if c.Recorder.OutputDir == "" {
		c.Recorder.OutputDir = "recordings"
	}
	if c.Recorder.QuietFor <= 0 {
		c.Recorder.QuietFor = 10 * time.Second
	}
	if c.Dashboard.DBPath == "" {
		c.Dashboard.DBPath = "results.db"
	}
	if c.Dashboard.HTMLPath == "" {
		c.Dashboard.HTMLPath = "dashboard.html"
	}
	if c.Dashboard.Addr == "" {
		c.Dashboard.Addr = ":8087"
	}
	if c.Dashboard.ArtifactDir == "" {
		c.Dashboard.ArtifactDir = "artifacts"
	}
	if c.Dashboard.RunLimit <= 0 {
		c.Dashboard.RunLimit = 20
	}
	if c.Tour.Theme == "" {
		c.Tour.Theme = "introjs"
	}
}
