package basecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/hazyhaar/basecase/selector"
)

// WaitForReady blocks until document.readyState is complete. Large timeout.
func (c *Case) WaitForReady() error {
	if err := c.requireTab(); err != nil {
		return err
	}
	return c.pollPage("page ready", c.opts.LargeTimeout, func() (bool, error) {
		res, err := c.page().Context(c.ctx).Eval(`() => document.readyState === 'complete'`)
		if err != nil {
			return false, nil // navigation in flight, keep polling
		}
		return res.Value.Bool(), nil
	})
}

// WaitForElement waits until the element is present and visible.
func (c *Case) WaitForElement(sel string) error {
	_, err := c.resolve(sel, stateVisible, c.opts.SmallTimeout)
	return err
}

// WaitForElementPresent waits until the element exists in the DOM, visible
// or not.
func (c *Case) WaitForElementPresent(sel string) error {
	_, err := c.resolve(sel, statePresent, c.opts.SmallTimeout)
	return err
}

// WaitForElementNotVisible waits until the element is absent or hidden.
func (c *Case) WaitForElementNotVisible(sel string) error {
	parsed := selector.Parse(sel)
	if parsed.IsEmpty() {
		return fmt.Errorf("basecase: empty selector")
	}
	return c.pollPage(fmt.Sprintf("%q gone", sel), c.opts.LargeTimeout, func() (bool, error) {
		el, err := c.find(parsed)
		if err != nil {
			return true, nil // not in the DOM
		}
		vis, err := el.Visible()
		if err != nil {
			return true, nil // detached mid-check counts as gone
		}
		return !vis, nil
	})
}

// WaitForElementAbsent waits until no element matches the selector.
func (c *Case) WaitForElementAbsent(sel string) error {
	parsed := selector.Parse(sel)
	if parsed.IsEmpty() {
		return fmt.Errorf("basecase: empty selector")
	}
	return c.pollPage(fmt.Sprintf("%q absent", sel), c.opts.LargeTimeout, func() (bool, error) {
		_, err := c.find(parsed)
		return err != nil, nil
	})
}

// WaitForText waits until the element's text contains text. An empty
// selector waits on the whole body.
func (c *Case) WaitForText(sel, text string) error {
	if strings.TrimSpace(sel) == "" {
		sel = "body"
	}
	return c.pollPage(fmt.Sprintf("text %q in %q", text, sel), c.opts.LargeTimeout,
		func() (bool, error) {
			got, err := c.elementText(sel)
			if err != nil {
				return false, nil
			}
			return strings.Contains(got, text), nil
		})
}

// WaitForAttribute waits until the element's attribute equals value.
func (c *Case) WaitForAttribute(sel, attr, value string) error {
	return c.pollPage(fmt.Sprintf("%q[%s=%q]", sel, attr, value), c.opts.SmallTimeout,
		func() (bool, error) {
			got, err := c.Attribute(sel, attr)
			if err != nil {
				return false, nil
			}
			return got == value, nil
		})
}

// pollPage runs check at the poll interval until it reports true or timeout
// passes.
func (c *Case) pollPage(what string, timeout time.Duration, check func() (bool, error)) error {
	deadline := time.Now().Add(timeout)
	for {
		ok, err := check()
		if err != nil {
			return fmt.Errorf("basecase: wait for %s: %w", what, err)
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("basecase: wait for %s: timed out after %s", what, timeout)
		}
		select {
		case <-c.ctx.Done():
			return c.ctx.Err()
		case <-time.After(c.opts.PollInterval):
		}
	}
}
