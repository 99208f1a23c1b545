package basecase

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

// Click clicks the element. On flaky driver errors it retries once, then
// falls back to a synthetic JS click, then to jQuery .click().
func (c *Case) Click(sel string) error {
	c.demoPause(sel)
	err := c.withRetry("click", sel, stateClickable, func(el *rod.Element) error {
		return el.Click(proto.InputMouseButtonLeft, 1)
	})
	if err == nil {
		return nil
	}
	if jsErr := c.jsClick(sel); jsErr == nil {
		c.log.Debug("click fell back to JS dispatch", "selector", sel)
		return nil
	}
	if jqErr := c.jqueryClick(sel); jqErr == nil {
		c.log.Debug("click fell back to jQuery", "selector", sel)
		return nil
	}
	return err
}

// DoubleClick double-clicks the element.
func (c *Case) DoubleClick(sel string) error {
	c.demoPause(sel)
	return c.withRetry("double-click", sel, stateClickable, func(el *rod.Element) error {
		return el.Click(proto.InputMouseButtonLeft, 2)
	})
}

// ClickLink clicks the anchor whose text equals text.
func (c *Case) ClickLink(text string) error {
	return c.Click("link=" + text)
}

// Type clears the field and types text into it.
func (c *Case) Type(sel, text string) error {
	c.demoPause(sel)
	return c.withRetry("type", sel, stateVisible, func(el *rod.Element) error {
		if err := el.SelectAllText(); err != nil {
			return err
		}
		if err := el.Input(""); err != nil {
			return err
		}
		return el.Input(text)
	})
}

// AddText appends text to the field without clearing it.
func (c *Case) AddText(sel, text string) error {
	c.demoPause(sel)
	return c.withRetry("add text", sel, stateVisible, func(el *rod.Element) error {
		return el.Input(text)
	})
}

// PressKeys sends individual key presses to the element. Named keys from
// the input package (input.Enter, input.Tab, ...) work alongside runes.
func (c *Case) PressKeys(sel string, keys ...input.Key) error {
	return c.withRetry("press keys", sel, stateVisible, func(el *rod.Element) error {
		if err := el.Focus(); err != nil {
			return err
		}
		return el.Type(keys...)
	})
}

// Submit submits the form containing the element.
func (c *Case) Submit(sel string) error {
	c.demoPause(sel)
	return c.withRetry("submit", sel, statePresent, func(el *rod.Element) error {
		_, err := el.Eval(`() => {
			var f = this.tagName === 'FORM' ? this : this.closest('form');
			if (!f) { throw new Error('no enclosing form'); }
			if (f.requestSubmit) { f.requestSubmit(); } else { f.submit(); }
		}`)
		return err
	})
}

// Hover moves the pointer over the element.
func (c *Case) Hover(sel string) error {
	c.demoPause(sel)
	return c.withRetry("hover", sel, stateVisible, func(el *rod.Element) error {
		return el.Hover()
	})
}

// DragAndDrop drags the source element onto the target element.
func (c *Case) DragAndDrop(sourceSel, targetSel string) error {
	c.demoPause(sourceSel)
	src, err := c.resolve(sourceSel, stateVisible, c.opts.SmallTimeout)
	if err != nil {
		return fmt.Errorf("basecase: drag %q: %w", sourceSel, err)
	}
	dst, err := c.resolve(targetSel, stateVisible, c.opts.SmallTimeout)
	if err != nil {
		return fmt.Errorf("basecase: drop on %q: %w", targetSel, err)
	}

	from, err := src.Shape()
	if err != nil {
		return fmt.Errorf("basecase: drag %q: %w", sourceSel, err)
	}
	to, err := dst.Shape()
	if err != nil {
		return fmt.Errorf("basecase: drop on %q: %w", targetSel, err)
	}
	fp, tp := from.OnePointInside(), to.OnePointInside()
	if fp == nil || tp == nil {
		return fmt.Errorf("basecase: drag %q to %q: element has no visible area",
			sourceSel, targetSel)
	}

	m := c.page().Mouse
	if err := m.MoveTo(*fp); err != nil {
		return fmt.Errorf("basecase: drag %q: %w", sourceSel, err)
	}
	if err := m.Down(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("basecase: drag %q: %w", sourceSel, err)
	}
	if err := m.MoveLinear(*tp, 10); err != nil {
		_ = m.Up(proto.InputMouseButtonLeft, 1)
		return fmt.Errorf("basecase: drag %q to %q: %w", sourceSel, targetSel, err)
	}
	if err := m.Up(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("basecase: drop on %q: %w", targetSel, err)
	}
	return nil
}

// SelectOptionByText selects the option with the given visible text in a
// <select>.
func (c *Case) SelectOptionByText(sel, text string) error {
	c.demoPause(sel)
	return c.withRetry("select option", sel, stateVisible, func(el *rod.Element) error {
		return el.Select([]string{text}, true, rod.SelectorTypeText)
	})
}

// SelectOptionByValue selects the option with the given value attribute.
func (c *Case) SelectOptionByValue(sel, value string) error {
	c.demoPause(sel)
	css := fmt.Sprintf(`[value=%q]`, value)
	return c.withRetry("select option", sel, stateVisible, func(el *rod.Element) error {
		return el.Select([]string{css}, true, rod.SelectorTypeCSSSector)
	})
}

// Check ticks a checkbox or radio button; a no-op when already set.
func (c *Case) Check(sel string) error {
	return c.setChecked(sel, true)
}

// Uncheck clears a checkbox; a no-op when already clear.
func (c *Case) Uncheck(sel string) error {
	return c.setChecked(sel, false)
}

func (c *Case) setChecked(sel string, want bool) error {
	c.demoPause(sel)
	action := "check"
	if !want {
		action = "uncheck"
	}
	return c.withRetry(action, sel, stateClickable, func(el *rod.Element) error {
		checked, err := isTruthyProp(el, "checked")
		if err != nil {
			return err
		}
		if checked == want {
			return nil
		}
		return el.Click(proto.InputMouseButtonLeft, 1)
	})
}

func isTruthyProp(el *rod.Element, prop string) (bool, error) {
	v, err := el.Property(prop)
	if err != nil {
		return false, err
	}
	return v.Bool(), nil
}
