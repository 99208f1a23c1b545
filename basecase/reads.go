package basecase

import (
	"fmt"

	"github.com/hazyhaar/basecase/selector"
)

// Text returns the rendered text of the element, waiting for it first.
func (c *Case) Text(sel string) (string, error) {
	if _, err := c.resolve(sel, stateVisible, c.opts.SmallTimeout); err != nil {
		return "", err
	}
	return c.elementText(sel)
}

func (c *Case) elementText(sel string) (string, error) {
	el, err := c.find(selector.Parse(sel))
	if err != nil {
		return "", err
	}
	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("basecase: text of %q: %w", sel, err)
	}
	return text, nil
}

// Attribute returns the value of an attribute, or "" when unset.
func (c *Case) Attribute(sel, name string) (string, error) {
	el, err := c.resolve(sel, statePresent, c.opts.SmallTimeout)
	if err != nil {
		return "", err
	}
	v, err := el.Attribute(name)
	if err != nil {
		return "", fmt.Errorf("basecase: attribute %s of %q: %w", name, sel, err)
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

// Value returns the current value property of a form field.
func (c *Case) Value(sel string) (string, error) {
	el, err := c.resolve(sel, statePresent, c.opts.SmallTimeout)
	if err != nil {
		return "", err
	}
	v, err := el.Property("value")
	if err != nil {
		return "", fmt.Errorf("basecase: value of %q: %w", sel, err)
	}
	return v.Str(), nil
}

// IsPresent reports whether the element exists in the DOM right now, without
// waiting.
func (c *Case) IsPresent(sel string) bool {
	if c.tab == nil {
		return false
	}
	_, err := c.find(selector.Parse(sel))
	return err == nil
}

// IsVisible reports whether the element exists and is visible right now.
func (c *Case) IsVisible(sel string) bool {
	if c.tab == nil {
		return false
	}
	el, err := c.find(selector.Parse(sel))
	if err != nil {
		return false
	}
	vis, err := el.Visible()
	return err == nil && vis
}

// IsEnabled reports whether the element exists and is not disabled.
func (c *Case) IsEnabled(sel string) bool {
	if c.tab == nil {
		return false
	}
	el, err := c.find(selector.Parse(sel))
	if err != nil {
		return false
	}
	disabled, err := isTruthyProp(el, "disabled")
	return err == nil && !disabled
}

// IsChecked reports whether a checkbox or radio is currently set.
func (c *Case) IsChecked(sel string) (bool, error) {
	el, err := c.resolve(sel, statePresent, c.opts.SmallTimeout)
	if err != nil {
		return false, err
	}
	return isTruthyProp(el, "checked")
}

// ElementCount returns how many elements match the selector right now.
func (c *Case) ElementCount(sel string) (int, error) {
	if err := c.requireTab(); err != nil {
		return 0, err
	}
	parsed := selector.Parse(sel)
	if css, ok := parsed.CSS(); ok {
		res, err := c.page().Context(c.ctx).Eval(
			`(s) => document.querySelectorAll(s).length`, css)
		if err != nil {
			return 0, fmt.Errorf("basecase: count %q: %w", sel, err)
		}
		return int(res.Value.Int()), nil
	}
	if xp, ok := parsed.XPath(); ok {
		res, err := c.page().Context(c.ctx).Eval(
			`(x) => document.evaluate(x, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null).snapshotLength`, xp)
		if err != nil {
			return 0, fmt.Errorf("basecase: count %q: %w", sel, err)
		}
		return int(res.Value.Int()), nil
	}
	return 0, fmt.Errorf("basecase: count %q: selector has no lookup form", sel)
}
