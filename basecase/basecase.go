// Package basecase is the test-facing façade: one Case per browser session,
// with synchronous click/type/read/wait/assert operations over a rod page.
// Every operation takes a raw locator string (CSS, XPath, link=, name=, or a
// ::shadow path), waits for the element with a polling loop, and runs a
// fixed retry chain on flaky driver errors before giving up with one
// wrapped error.
//
// A Case is not safe for concurrent use. Run sessions in parallel at the
// process level, one Manager each; results meet only in the dashboard
// store.
package basecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"

	"github.com/hazyhaar/basecase/browser"
	"github.com/hazyhaar/basecase/dashboard"
	"github.com/hazyhaar/basecase/idgen"
	"github.com/hazyhaar/basecase/recorder"
)

// Options configures a Case. Zero value works; defaults fill in a headless
// browser and the standard timeout tiers.
type Options struct {
	Browser browser.Config

	// SmallTimeout bounds element waits; LargeTimeout bounds page-level
	// waits (navigation, readyState, text appearing).
	SmallTimeout time.Duration
	LargeTimeout time.Duration
	PollInterval time.Duration

	// Demo makes every action highlight its target and pause afterwards,
	// so a human can follow along.
	Demo      bool
	DemoSleep time.Duration

	// ArtifactDir receives screenshots, page sources, and generated
	// files. BaselineDir holds visual-check baselines.
	ArtifactDir string
	BaselineDir string

	// Results, when set, receives per-test outcomes for the dashboard.
	Results *dashboard.Store
	RunID   string

	Logger *slog.Logger
}

func (o *Options) defaults() {
	if o.SmallTimeout <= 0 {
		o.SmallTimeout = 7 * time.Second
	}
	if o.LargeTimeout <= 0 {
		o.LargeTimeout = 10 * time.Second
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 100 * time.Millisecond
	}
	if o.DemoSleep <= 0 {
		o.DemoSleep = 500 * time.Millisecond
	}
	if o.ArtifactDir == "" {
		o.ArtifactDir = "artifacts"
	}
	if o.BaselineDir == "" {
		o.BaselineDir = "visual_baseline"
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Case is one browser session. Create with New, finish with Close.
type Case struct {
	ctx  context.Context
	opts Options
	mgr  *browser.Manager
	tab  *browser.Tab
	tabs []*browser.Tab
	log  *slog.Logger

	// frame is the current evaluation target; nil means the top document.
	frame *rod.Page

	rec *recorder.Recorder

	sessionID string
	jqueryOK  bool
}

// New starts the browser and returns a ready Case. ctx bounds the whole
// session; Close releases the browser.
func New(ctx context.Context, opts Options) (*Case, error) {
	opts.defaults()
	opts.Browser.Logger = opts.Logger

	mgr := browser.NewManager(opts.Browser)
	if _, err := mgr.Start(ctx); err != nil {
		return nil, fmt.Errorf("basecase: start browser: %w", err)
	}

	c := &Case{
		ctx:       ctx,
		opts:      opts,
		mgr:       mgr,
		log:       opts.Logger,
		sessionID: idgen.Default(),
	}
	c.log.Info("session started", "session_id", c.sessionID,
		"mode", opts.Browser.Mode.String())
	return c, nil
}

// SessionID identifies this browser session in logs and dashboard rows.
func (c *Case) SessionID() string { return c.sessionID }

// Close tears down the session and the browser.
func (c *Case) Close() error {
	for _, t := range c.tabs {
		_ = t.Close()
	}
	c.tabs = nil
	c.tab = nil
	err := c.mgr.Close()
	c.log.Info("session closed", "session_id", c.sessionID)
	return err
}

// Open navigates to url, creating the first tab if needed, and waits for
// the page to load.
func (c *Case) Open(url string) error {
	if c.tab == nil {
		tab, err := browser.OpenTab(c.ctx, c.mgr, "", "")
		if err != nil {
			return fmt.Errorf("basecase: open tab: %w", err)
		}
		c.tab = tab
		c.tabs = append(c.tabs, tab)
	}
	c.resetFrame()
	c.jqueryOK = false
	if err := c.tab.Navigate(c.ctx, url); err != nil {
		return fmt.Errorf("basecase: open %q: %w", url, err)
	}
	if err := c.WaitForReady(); err != nil {
		return err
	}
	c.log.Debug("opened", "url", url)
	return nil
}

// Refresh reloads the current page.
func (c *Case) Refresh() error {
	if err := c.requireTab(); err != nil {
		return err
	}
	c.resetFrame()
	c.jqueryOK = false
	if err := c.tab.Page.Context(c.ctx).Reload(); err != nil {
		return fmt.Errorf("basecase: refresh: %w", err)
	}
	return c.WaitForReady()
}

// GoBack navigates one step back in tab history.
func (c *Case) GoBack() error {
	return c.history("back", `() => history.back()`)
}

// GoForward navigates one step forward in tab history.
func (c *Case) GoForward() error {
	return c.history("forward", `() => history.forward()`)
}

func (c *Case) history(name, js string) error {
	if err := c.requireTab(); err != nil {
		return err
	}
	c.resetFrame()
	c.jqueryOK = false
	if _, err := c.tab.Page.Context(c.ctx).Eval(js); err != nil {
		return fmt.Errorf("basecase: %s: %w", name, err)
	}
	return c.WaitForReady()
}

// CurrentURL returns the URL of the active page.
func (c *Case) CurrentURL() (string, error) {
	return c.evalString("current url", `() => location.href`)
}

// Title returns the document title.
func (c *Case) Title() (string, error) {
	return c.evalString("title", `() => document.title`)
}

// PageSource returns the serialized DOM of the active page.
func (c *Case) PageSource() (string, error) {
	return c.evalString("page source", `() => document.documentElement.outerHTML`)
}

func (c *Case) evalString(what, js string) (string, error) {
	if err := c.requireTab(); err != nil {
		return "", err
	}
	res, err := c.page().Context(c.ctx).Eval(js)
	if err != nil {
		return "", fmt.Errorf("basecase: %s: %w", what, err)
	}
	return res.Value.Str(), nil
}

func (c *Case) requireTab() error {
	if c.tab == nil {
		return fmt.Errorf("basecase: no open page, call Open first")
	}
	return nil
}

// demoPause highlights el and sleeps when demo mode is on.
func (c *Case) demoPause(sel string) {
	if !c.opts.Demo {
		return
	}
	_ = c.Highlight(sel)
	select {
	case <-c.ctx.Done():
	case <-time.After(c.opts.DemoSleep):
	}
}
