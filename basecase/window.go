package basecase

import (
	"fmt"

	"github.com/go-rod/rod"

	"github.com/hazyhaar/basecase/browser"
)

// page returns the current evaluation target: the active frame if one is
// selected, the top document otherwise.
func (c *Case) page() *rod.Page {
	if c.frame != nil {
		return c.frame
	}
	return c.tab.Page
}

func (c *Case) resetFrame() { c.frame = nil }

// SwitchToFrame scopes subsequent operations to the iframe matched by sel.
func (c *Case) SwitchToFrame(sel string) error {
	el, err := c.resolve(sel, statePresent, c.opts.SmallTimeout)
	if err != nil {
		return fmt.Errorf("basecase: switch to frame %q: %w", sel, err)
	}
	frame, err := el.Frame()
	if err != nil {
		return fmt.Errorf("basecase: switch to frame %q: %w", sel, err)
	}
	c.frame = frame
	return nil
}

// SwitchToDefaultContent returns operations to the top document.
func (c *Case) SwitchToDefaultContent() {
	c.resetFrame()
}

// OpenNewWindow opens a fresh tab and makes it the active one.
func (c *Case) OpenNewWindow() error {
	tab, err := browser.OpenTab(c.ctx, c.mgr, "", "")
	if err != nil {
		return fmt.Errorf("basecase: open new window: %w", err)
	}
	c.tabs = append(c.tabs, tab)
	c.tab = tab
	c.resetFrame()
	c.jqueryOK = false
	return nil
}

// SwitchToWindow activates the tab at index, in opening order.
func (c *Case) SwitchToWindow(index int) error {
	if index < 0 || index >= len(c.tabs) {
		return fmt.Errorf("basecase: switch to window %d: have %d windows", index, len(c.tabs))
	}
	c.tab = c.tabs[index]
	c.resetFrame()
	c.jqueryOK = false
	return nil
}

// WindowCount reports how many tabs the session has open.
func (c *Case) WindowCount() int { return len(c.tabs) }

// CloseActiveWindow closes the current tab and activates the previous one.
// Closing the last tab leaves the session without a page; Open starts a new
// one.
func (c *Case) CloseActiveWindow() error {
	if err := c.requireTab(); err != nil {
		return err
	}
	closing := c.tab
	if err := closing.Close(); err != nil {
		return fmt.Errorf("basecase: close window: %w", err)
	}
	for i, t := range c.tabs {
		if t == closing {
			c.tabs = append(c.tabs[:i], c.tabs[i+1:]...)
			break
		}
	}
	c.resetFrame()
	c.jqueryOK = false
	if len(c.tabs) == 0 {
		c.tab = nil
		return nil
	}
	c.tab = c.tabs[len(c.tabs)-1]
	return nil
}
