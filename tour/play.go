package tour

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
)

// loaderJS appends a stylesheet and a script tag and resolves once the
// script has loaded.
const loaderJS = `(css, js) => new Promise((resolve, reject) => {
	if (css) {
		var l = document.createElement('link');
		l.rel = 'stylesheet';
		l.href = css;
		document.head.appendChild(l);
	}
	var s = document.createElement('script');
	s.src = js;
	s.onload = () => resolve(true);
	s.onerror = () => reject(new Error('tour asset failed: ' + js));
	document.head.appendChild(s);
})`

// Play injects the theme assets into the page, starts the tour, and blocks
// until the tour finishes or ctx expires. interval > 0 autoplays, advancing
// every interval.
func (t *Tour) Play(ctx context.Context, page *rod.Page, interval time.Duration) error {
	script, err := t.Script(int(interval / time.Millisecond))
	if err != nil {
		return err
	}

	css, js := t.Theme.Assets()
	if _, err := page.Context(ctx).Eval(loaderJS, css, js); err != nil {
		return fmt.Errorf("tour %q: inject assets: %w", t.Name, err)
	}

	if _, err := page.Context(ctx).Eval("() => {" + script + "}"); err != nil {
		return fmt.Errorf("tour %q: start: %w", t.Name, err)
	}

	// Poll the completion flag with a fixed interval. No timeout of its
	// own: a manually driven tour runs until the user finishes it or ctx
	// expires.
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(250 * time.Millisecond):
		}
		res, err := page.Context(ctx).Eval("() => " + doneFlag + " === true")
		if err != nil {
			// Navigation during a tour tears the page down; treat as done.
			return nil
		}
		if res.Value.Bool() {
			return nil
		}
	}
}

// Export writes the tour as a standalone JS file that can be replayed in a
// browser console or embedded in a page that already loads the theme assets.
func (t *Tour) Export(filename string) error {
	script, err := t.Script(0)
	if err != nil {
		return err
	}

	css, js := t.Theme.Assets()
	header := fmt.Sprintf("// Tour: %s\n// Theme: %s\n// Requires: %s\n//           %s\n\n",
		t.Name, t.Theme, css, js)

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("tour %q: mkdir: %w", t.Name, err)
		}
	}
	if err := os.WriteFile(filename, []byte(header+script+"\n"), 0o644); err != nil {
		return fmt.Errorf("tour %q: export: %w", t.Name, err)
	}
	return nil
}
