package basecase

import (
	"fmt"

	"github.com/go-rod/rod"
)

// ScrollTo scrolls the element into the middle of the viewport.
func (c *Case) ScrollTo(sel string) error {
	return c.withRetry("scroll to", sel, statePresent, func(el *rod.Element) error {
		_, err := el.Eval(`() => this.scrollIntoView({block: 'center', behavior: 'instant'})`)
		return err
	})
}

// SlowScrollTo scrolls smoothly to the element, for demos and recordings.
func (c *Case) SlowScrollTo(sel string) error {
	err := c.withRetry("slow scroll to", sel, statePresent, func(el *rod.Element) error {
		_, err := el.Eval(`() => this.scrollIntoView({block: 'center', behavior: 'smooth'})`)
		return err
	})
	if err != nil {
		return err
	}
	// Smooth scrolling is asynchronous; give it time to settle.
	c.sleep(c.opts.DemoSleep)
	return nil
}

// ScrollToTop scrolls the window to the top of the document.
func (c *Case) ScrollToTop() error {
	return c.scrollWindow("top", `() => window.scrollTo(0, 0)`)
}

// ScrollToBottom scrolls the window to the bottom of the document.
func (c *Case) ScrollToBottom() error {
	return c.scrollWindow("bottom", `() => window.scrollTo(0, document.body.scrollHeight)`)
}

func (c *Case) scrollWindow(where, js string) error {
	if err := c.requireTab(); err != nil {
		return err
	}
	if _, err := c.page().Context(c.ctx).Eval(js); err != nil {
		return fmt.Errorf("basecase: scroll to %s: %w", where, err)
	}
	return nil
}
