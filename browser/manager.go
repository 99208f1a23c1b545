// Package browser manages the Chrome lifecycle behind a test session: launch
// or remote attach via Rod, headed mode under Xvfb for CI displays, and
// relaunch after a crashed Chrome so a long test run can keep going.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Mode selects how Chrome is driven.
type Mode int

const (
	// ModeHeadless runs Chrome without a display. The CI default.
	ModeHeadless Mode = iota
	// ModeHeaded runs Chrome with a visible window (Xvfb when no display).
	ModeHeaded
	// ModeUndetected runs headed Chrome with stealth patches applied to
	// every page, for sites that block automated browsers.
	ModeUndetected
)

// ParseMode maps a config string to a Mode. Unknown values fall back to
// headless.
func ParseMode(s string) Mode {
	switch s {
	case "headed":
		return ModeHeaded
	case "undetected", "uc":
		return ModeUndetected
	default:
		return ModeHeadless
	}
}

func (m Mode) String() string {
	switch m {
	case ModeHeaded:
		return "headed"
	case ModeUndetected:
		return "undetected"
	default:
		return "headless"
	}
}

// Config configures the browser manager.
type Config struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local Chrome via launcher.
	RemoteURL string

	// Mode selects headless, headed, or undetected operation.
	Mode Mode

	// SlowMotion inserts a pause after every driver action. Used by demo
	// mode so a human can follow along.
	SlowMotion time.Duration

	// UserAgent overrides the browser user agent when non-empty.
	UserAgent string

	// ResourceBlocking lists resource types to block on every tab
	// (images, fonts, media, stylesheets). Speeds up content-only tests.
	ResourceBlocking []string

	// XvfbDisplay for headed mode on a machine without a display. Default ":99".
	XvfbDisplay string

	// UseXvfb starts an Xvfb server for headed mode. Off by default so
	// local runs use the real display.
	UseXvfb bool

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.XvfbDisplay == "" {
		c.XvfbDisplay = ":99"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Manager owns one Chrome process. Each test process creates its own Manager;
// parallelism across tests is process-level only.
type Manager struct {
	cfg     Config
	mu      sync.RWMutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	xvfb    *exec.Cmd
	startAt time.Time
	closed  bool
}

// NewManager creates a browser Manager. Call Start to launch Chrome.
func NewManager(cfg Config) *Manager {
	cfg.defaults()
	return &Manager{cfg: cfg}
}

// Start launches Chrome (or connects to a remote instance) and returns the
// Rod browser handle.
func (m *Manager) Start(ctx context.Context) (*rod.Browser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, fmt.Errorf("browser: manager is closed")
	}

	b, err := m.launch(ctx)
	if err != nil {
		return nil, err
	}
	m.browser = b
	m.startAt = time.Now()
	return b, nil
}

// Browser returns the current Rod browser handle. Thread-safe.
func (m *Manager) Browser() *rod.Browser {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.browser
}

// Uptime reports how long the current Chrome process has been alive.
func (m *Manager) Uptime() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.browser == nil {
		return 0
	}
	return time.Since(m.startAt)
}

// Relaunch kills Chrome and starts a fresh one. Used when Chrome crashes
// mid-run; open tabs are lost and must be reopened by the caller.
func (m *Manager) Relaunch(ctx context.Context) (*rod.Browser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, fmt.Errorf("browser: manager is closed")
	}

	m.cfg.Logger.Info("browser: relaunching", "uptime", time.Since(m.startAt))
	if err := m.cleanup(); err != nil {
		m.cfg.Logger.Warn("browser: cleanup during relaunch", "error", err)
	}

	b, err := m.launch(ctx)
	if err != nil {
		return nil, fmt.Errorf("browser: relaunch: %w", err)
	}
	m.browser = b
	m.startAt = time.Now()
	return b, nil
}

// Close shuts down Chrome and Xvfb.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return m.cleanup()
}

func (m *Manager) launch(ctx context.Context) (*rod.Browser, error) {
	log := m.cfg.Logger

	headed := m.cfg.Mode == ModeHeaded || m.cfg.Mode == ModeUndetected

	if headed && m.cfg.UseXvfb {
		if err := m.startXvfb(); err != nil {
			return nil, fmt.Errorf("browser: xvfb: %w", err)
		}
	}

	var wsURL string

	if m.cfg.RemoteURL != "" {
		wsURL = m.cfg.RemoteURL
		log.Info("browser: connecting to remote", "url", wsURL)
	} else {
		l := launcher.New()

		if headed {
			l = l.Headless(false)
			if m.cfg.UseXvfb {
				l = l.Env("DISPLAY", m.cfg.XvfbDisplay)
			}
		} else {
			l = l.Headless(true)
		}

		// Keep navigator.webdriver from advertising the automation.
		l = l.Set("disable-blink-features", "AutomationControlled")

		if m.cfg.UserAgent != "" {
			l = l.Set("user-agent", m.cfg.UserAgent)
		}

		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("browser: launch: %w", err)
		}
		wsURL = u
		m.lnch = l
		log.Info("browser: launched local chrome", "url", wsURL, "mode", m.cfg.Mode.String())
	}

	b := rod.New().ControlURL(wsURL)
	if m.cfg.SlowMotion > 0 {
		b = b.SlowMotion(m.cfg.SlowMotion)
	}
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("browser: connect: %w", err)
	}

	// Local test servers commonly run with self-signed certificates.
	if err := b.IgnoreCertErrors(true); err != nil {
		log.Warn("browser: ignore cert errors failed", "error", err)
	}

	return b, nil
}

func (m *Manager) cleanup() error {
	if m.browser != nil {
		m.browser.Close()
		m.browser = nil
	}
	if m.lnch != nil {
		m.lnch.Cleanup()
		m.lnch = nil
	}
	m.stopXvfb()
	return nil
}
