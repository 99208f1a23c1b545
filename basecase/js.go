package basecase

import (
	"fmt"

	"github.com/ysmood/gson"

	"github.com/hazyhaar/basecase/selector"
)

const jqueryURL = "https://cdnjs.cloudflare.com/ajax/libs/jquery/3.7.1/jquery.min.js"

// ExecuteScript evaluates a JS function body in the page and returns the
// result. js must be a function expression, e.g. `() => document.title`.
func (c *Case) ExecuteScript(js string, args ...any) (gson.JSON, error) {
	if err := c.requireTab(); err != nil {
		return gson.New(nil), err
	}
	res, err := c.page().Context(c.ctx).Eval(js, args...)
	if err != nil {
		return gson.New(nil), fmt.Errorf("basecase: execute script: %w", err)
	}
	return res.Value, nil
}

// SafeExecuteScript evaluates js, injecting jQuery first if the script
// failed and looks like it needs it.
func (c *Case) SafeExecuteScript(js string, args ...any) (gson.JSON, error) {
	res, err := c.ExecuteScript(js, args...)
	if err == nil {
		return res, nil
	}
	if jqErr := c.InjectJQuery(); jqErr != nil {
		return res, err
	}
	return c.ExecuteScript(js, args...)
}

// InjectJQuery loads jQuery into the page unless already present.
func (c *Case) InjectJQuery() error {
	if err := c.requireTab(); err != nil {
		return err
	}
	if c.jqueryOK {
		return nil
	}
	res, err := c.page().Context(c.ctx).Eval(`() => typeof window.jQuery === 'function'`)
	if err == nil && res.Value.Bool() {
		c.jqueryOK = true
		return nil
	}

	_, err = c.page().Context(c.ctx).Eval(`(src) => new Promise((resolve, reject) => {
		var s = document.createElement('script');
		s.src = src;
		s.onload = () => resolve(true);
		s.onerror = () => reject(new Error('jQuery failed to load'));
		document.head.appendChild(s);
	})`, jqueryURL)
	if err != nil {
		return fmt.Errorf("basecase: inject jquery: %w", err)
	}
	c.jqueryOK = true
	return nil
}

// jsClick dispatches a synthetic click without pointer events. Fallback for
// elements the driver refuses to click.
func (c *Case) jsClick(raw string) error {
	el, err := c.resolve(raw, statePresent, c.opts.SmallTimeout)
	if err != nil {
		return err
	}
	_, err = el.Eval(`() => {
		this.scrollIntoView({block: 'center'});
		this.dispatchEvent(new MouseEvent('click', {bubbles: true, cancelable: true, view: window}));
	}`)
	if err != nil {
		return fmt.Errorf("basecase: js click %q: %w", raw, err)
	}
	return nil
}

// jqueryClick is the last fallback in the click chain. Only CSS-form
// selectors can reach it.
func (c *Case) jqueryClick(raw string) error {
	css, ok := parseCSS(raw)
	if !ok {
		return fmt.Errorf("basecase: jquery click: %q has no CSS form", raw)
	}
	if err := c.InjectJQuery(); err != nil {
		return err
	}
	res, err := c.page().Context(c.ctx).Eval(
		`(sel) => { var m = jQuery(sel); m.click(); return m.length; }`, css)
	if err != nil {
		return fmt.Errorf("basecase: jquery click %q: %w", raw, err)
	}
	if res.Value.Int() == 0 {
		return fmt.Errorf("basecase: jquery click %q: no match", raw)
	}
	return nil
}

const highlightJS = `(sel) => {
	var el = document.querySelector(sel);
	if (!el) { return false; }
	var old = el.style.boxShadow;
	el.style.boxShadow = '0 0 6px 3px rgba(205, 30, 24, 0.8)';
	setTimeout(() => { el.style.boxShadow = old; }, 350);
	return true;
}`

// Highlight flashes a red outline around the element. Used by demo mode and
// available directly for presentations.
func (c *Case) Highlight(sel string) error {
	if err := c.requireTab(); err != nil {
		return err
	}
	css, ok := parseCSS(sel)
	if !ok {
		// No CSS form; resolve and flash through the element handle.
		el, err := c.resolve(sel, stateVisible, c.opts.SmallTimeout)
		if err != nil {
			return fmt.Errorf("basecase: highlight %q: %w", sel, err)
		}
		_ = el.ScrollIntoView()
		_, err = el.Eval(`() => {
			var old = this.style.boxShadow;
			this.style.boxShadow = '0 0 6px 3px rgba(205, 30, 24, 0.8)';
			setTimeout(() => { this.style.boxShadow = old; }, 350);
		}`)
		if err != nil {
			return fmt.Errorf("basecase: highlight %q: %w", sel, err)
		}
		return nil
	}

	res, err := c.page().Context(c.ctx).Eval(highlightJS, css)
	if err != nil {
		return fmt.Errorf("basecase: highlight %q: %w", sel, err)
	}
	if !res.Value.Bool() {
		return fmt.Errorf("basecase: highlight %q: no match", sel)
	}
	return nil
}

// HighlightType highlights the field, then types slowly enough to watch.
func (c *Case) HighlightType(sel, text string) error {
	if err := c.Highlight(sel); err != nil {
		return err
	}
	c.sleep(c.opts.DemoSleep)
	return c.Type(sel, text)
}

// parseCSS returns the CSS form of a raw locator when one exists.
func parseCSS(raw string) (string, bool) {
	return selector.Parse(raw).CSS()
}
