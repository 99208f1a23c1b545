package present

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
)

// Play renders the deck to a temp file, opens it in the page, and blocks
// until the last slide is reached or ctx expires. interval > 0 auto-advances
// at that pace.
func (p *Presentation) Play(ctx context.Context, page *rod.Page, interval time.Duration) error {
	prevInterval := p.IntervalMS
	if interval > 0 {
		p.IntervalMS = int(interval / time.Millisecond)
	}
	html, err := p.HTML()
	p.IntervalMS = prevInterval
	if err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "deck-*")
	if err != nil {
		return fmt.Errorf("presentation %q: temp dir: %w", p.Name, err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "deck.html")
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("presentation %q: write: %w", p.Name, err)
	}

	if err := page.Context(ctx).Navigate("file://" + path); err != nil {
		return fmt.Errorf("presentation %q: open: %w", p.Name, err)
	}
	if err := page.Context(ctx).WaitLoad(); err != nil {
		return fmt.Errorf("presentation %q: load: %w", p.Name, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(250 * time.Millisecond):
		}
		res, err := page.Context(ctx).Eval(`() => window._deckComplete === true`)
		if err != nil {
			return nil // page gone, nothing left to drive
		}
		if res.Value.Bool() {
			return nil
		}
	}
}
