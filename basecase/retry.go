package basecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"

	"github.com/hazyhaar/basecase/selector"
)

// errNotFound marks a lookup that found no element; wait loops keep polling
// on it and fail with a readable message at timeout.
var errNotFound = errors.New("element not found")

// flakyFragments are substrings of driver errors worth one retry: the
// element moved, detached, or was briefly covered. Anything else is fatal.
var flakyFragments = []string{
	"stale",
	"detached",
	"not interactable",
	"intercepted",
	"node is not",
	"cannot find context",
	"zero size",
	"not clickable",
	"object not found",
}

func isFlaky(err error) bool {
	if err == nil {
		return false
	}
	var notInteractable *rod.NotInteractableError
	if errors.As(err, &notInteractable) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, f := range flakyFragments {
		if strings.Contains(msg, f) {
			return true
		}
	}
	return false
}

// find looks the selector up once, without waiting.
func (c *Case) find(sel selector.Selector) (*rod.Element, error) {
	page := c.page().Context(c.ctx).Sleeper(rod.NotFoundSleeper)

	if sel.By == selector.ByShadow {
		return c.findShadow(page, sel)
	}
	if css, ok := sel.CSS(); ok {
		el, err := page.Element(css)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errNotFound, css)
		}
		return el, nil
	}
	if xp, ok := sel.XPath(); ok {
		el, err := page.ElementX(xp)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errNotFound, xp)
		}
		return el, nil
	}
	return nil, fmt.Errorf("basecase: selector %q has no lookup form", sel.Value)
}

// findShadow walks a ::shadow path, piercing one open shadow root per hop.
func (c *Case) findShadow(page *rod.Page, sel selector.Selector) (*rod.Element, error) {
	parts := sel.ShadowParts()
	el, err := page.Element(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errNotFound, parts[0])
	}
	for _, hop := range parts[1:] {
		root, err := el.ShadowRoot()
		if err != nil {
			return nil, fmt.Errorf("basecase: shadow root of %q: %w", sel.Value, err)
		}
		el, err = root.Element(hop)
		if err != nil {
			return nil, fmt.Errorf("%w: %s (shadow)", errNotFound, hop)
		}
	}
	return el, nil
}

// waitState is what a wait loop requires of the element once found.
type waitState int

const (
	statePresent waitState = iota
	stateVisible
	stateClickable
)

// resolve polls for the selector until it reaches the wanted state or the
// timeout passes. Fixed sleep interval, no backoff.
func (c *Case) resolve(raw string, state waitState, timeout time.Duration) (*rod.Element, error) {
	sel := selector.Parse(raw)
	if sel.IsEmpty() {
		return nil, fmt.Errorf("basecase: empty selector")
	}

	deadline := time.Now().Add(timeout)
	var lastErr error
	for {
		el, err := c.find(sel)
		if err == nil {
			err = checkState(el, state)
			if err == nil {
				return el, nil
			}
		}
		lastErr = err

		if time.Now().After(deadline) {
			break
		}
		select {
		case <-c.ctx.Done():
			return nil, c.ctx.Err()
		case <-time.After(c.opts.PollInterval):
		}
	}
	return nil, fmt.Errorf("basecase: %q not %s after %s: %w",
		raw, stateName(state), timeout, lastErr)
}

func checkState(el *rod.Element, state waitState) error {
	if state == statePresent {
		return nil
	}
	vis, err := el.Visible()
	if err != nil {
		return err
	}
	if !vis {
		return errors.New("element not visible")
	}
	if state == stateClickable {
		if _, err := el.Interactable(); err != nil {
			return err
		}
	}
	return nil
}

func stateName(s waitState) string {
	switch s {
	case stateVisible:
		return "visible"
	case stateClickable:
		return "clickable"
	default:
		return "present"
	}
}

// withRetry runs op against a freshly resolved element and, on a flaky
// driver error, re-waits, scrolls the element into view, and tries exactly
// once more. The chain depth is fixed; persistent failures surface as one
// wrapped error.
func (c *Case) withRetry(action, raw string, state waitState, op func(el *rod.Element) error) error {
	el, err := c.resolve(raw, state, c.opts.SmallTimeout)
	if err != nil {
		return fmt.Errorf("basecase: %s %q: %w", action, raw, err)
	}

	if err := op(el); err == nil {
		return nil
	} else if !isFlaky(err) {
		return fmt.Errorf("basecase: %s %q: %w", action, raw, err)
	}

	c.log.Debug("retrying after flaky driver error", "action", action, "selector", raw)
	c.sleep(500 * time.Millisecond)

	el, rerr := c.resolve(raw, state, c.opts.SmallTimeout)
	if rerr != nil {
		return fmt.Errorf("basecase: %s %q: retry: %w", action, raw, rerr)
	}
	_ = el.ScrollIntoView()
	if err := op(el); err != nil {
		return fmt.Errorf("basecase: %s %q: after retry: %w", action, raw, err)
	}
	return nil
}

func (c *Case) sleep(d time.Duration) {
	select {
	case <-c.ctx.Done():
	case <-time.After(d):
	}
}

// Sleep pauses the test. Prefer the wait operations; this exists for demos
// and debugging.
func (c *Case) Sleep(d time.Duration) { c.sleep(d) }
