package basecase

import (
	"fmt"
	"strings"
)

// Asserts wait first, then fail with a readable error naming what was
// expected and what the page showed.

// AssertElement fails unless the element becomes present and visible.
func (c *Case) AssertElement(sel string) error {
	if err := c.WaitForElement(sel); err != nil {
		return fmt.Errorf("expected element %q on the page: %w", sel, err)
	}
	return nil
}

// AssertElementAbsent fails unless the element leaves the DOM.
func (c *Case) AssertElementAbsent(sel string) error {
	if err := c.WaitForElementAbsent(sel); err != nil {
		return fmt.Errorf("expected element %q to be absent: %w", sel, err)
	}
	return nil
}

// AssertElementNotVisible fails unless the element is absent or hidden.
func (c *Case) AssertElementNotVisible(sel string) error {
	if err := c.WaitForElementNotVisible(sel); err != nil {
		return fmt.Errorf("expected element %q to be hidden: %w", sel, err)
	}
	return nil
}

// AssertText fails unless the element's text comes to contain text.
func (c *Case) AssertText(sel, text string) error {
	if err := c.WaitForText(sel, text); err != nil {
		got, _ := c.elementText(orBody(sel))
		return fmt.Errorf("expected text %q in %q, page shows %q: %w",
			text, orBody(sel), truncate(got, 200), err)
	}
	return nil
}

// AssertExactText fails unless the element's text equals text after
// trimming surrounding whitespace.
func (c *Case) AssertExactText(sel, text string) error {
	err := c.pollPage(fmt.Sprintf("exact text %q in %q", text, sel), c.opts.LargeTimeout,
		func() (bool, error) {
			got, err := c.elementText(sel)
			if err != nil {
				return false, nil
			}
			return strings.TrimSpace(got) == strings.TrimSpace(text), nil
		})
	if err != nil {
		got, _ := c.elementText(sel)
		return fmt.Errorf("expected exact text %q in %q, got %q: %w",
			text, sel, truncate(got, 200), err)
	}
	return nil
}

// AssertTitle fails unless the document title equals title.
func (c *Case) AssertTitle(title string) error {
	err := c.pollPage(fmt.Sprintf("title %q", title), c.opts.SmallTimeout,
		func() (bool, error) {
			got, err := c.Title()
			if err != nil {
				return false, err
			}
			return got == title, nil
		})
	if err != nil {
		got, _ := c.Title()
		return fmt.Errorf("expected title %q, got %q: %w", title, got, err)
	}
	return nil
}

// AssertURL fails unless the current URL contains fragment.
func (c *Case) AssertURL(fragment string) error {
	err := c.pollPage(fmt.Sprintf("url containing %q", fragment), c.opts.SmallTimeout,
		func() (bool, error) {
			got, err := c.CurrentURL()
			if err != nil {
				return false, err
			}
			return strings.Contains(got, fragment), nil
		})
	if err != nil {
		got, _ := c.CurrentURL()
		return fmt.Errorf("expected url containing %q, at %q: %w", fragment, got, err)
	}
	return nil
}

// AssertAttribute fails unless the attribute comes to equal value.
func (c *Case) AssertAttribute(sel, attr, value string) error {
	if err := c.WaitForAttribute(sel, attr, value); err != nil {
		got, _ := c.Attribute(sel, attr)
		return fmt.Errorf("expected %q[%s] = %q, got %q: %w", sel, attr, value, got, err)
	}
	return nil
}

// AssertTrue fails with msg when cond is false. Convenience for mixing
// plain checks into a replayed flow.
func (c *Case) AssertTrue(cond bool, msg string) error {
	if !cond {
		return fmt.Errorf("assertion failed: %s", msg)
	}
	return nil
}

func orBody(sel string) string {
	if strings.TrimSpace(sel) == "" {
		return "body"
	}
	return sel
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
