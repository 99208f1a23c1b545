package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Recorder drives the in-page shim on one tab. Attach injects the shim and
// arranges re-injection after every navigation; Drain collects whatever the
// shim stored so far.
type Recorder struct {
	page *rod.Page
	log  *slog.Logger
}

// New wraps a page. logger may be nil.
func New(page *rod.Page, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{page: page, log: logger}
}

// Attach starts recording. The shim is registered to run on every new
// document in the tab, so navigations within the recording keep capturing.
func (r *Recorder) Attach(ctx context.Context) error {
	_, err := proto.PageAddScriptToEvaluateOnNewDocument{
		Source: "(" + shimJS + ")()",
	}.Call(r.page.Context(ctx))
	if err != nil {
		return fmt.Errorf("recorder: register shim: %w", err)
	}
	if _, err := r.page.Context(ctx).Eval(shimJS); err != nil {
		return fmt.Errorf("recorder: inject shim: %w", err)
	}
	r.log.Info("recorder attached")
	return nil
}

// Pause suspends capture without losing recorded actions.
func (r *Recorder) Pause(ctx context.Context) error {
	return r.setFlag(ctx, pausedKey, "yes")
}

// Resume lifts a Pause.
func (r *Recorder) Resume(ctx context.Context) error {
	return r.setFlag(ctx, pausedKey, "no")
}

func (r *Recorder) setFlag(ctx context.Context, key, val string) error {
	_, err := r.page.Context(ctx).Eval(
		`(k, v) => sessionStorage.setItem(k, v)`, key, val)
	if err != nil {
		return fmt.Errorf("recorder: set %s: %w", key, err)
	}
	return nil
}

// Drain reads all actions captured so far and clears the in-page buffer.
// The returned stream is raw; run it through Process before Generate.
func (r *Recorder) Drain(ctx context.Context) ([]Action, error) {
	res, err := r.page.Context(ctx).Eval(`() => {
		var a = sessionStorage.getItem('` + storageKey + `') || '[]';
		sessionStorage.removeItem('` + storageKey + `');
		return a;
	}`)
	if err != nil {
		return nil, fmt.Errorf("recorder: drain: %w", err)
	}

	var actions []Action
	if err := json.Unmarshal([]byte(res.Value.Str()), &actions); err != nil {
		return nil, fmt.Errorf("recorder: decode actions: %w", err)
	}
	r.log.Info("recorder drained", "actions", len(actions))
	return actions, nil
}

// Active reports whether a recording flag is set in the tab.
func (r *Recorder) Active(ctx context.Context) bool {
	res, err := r.page.Context(ctx).Eval(
		`() => sessionStorage.getItem('` + activatedKey + `') === 'yes'`)
	return err == nil && res.Value.Bool()
}

// WaitIdle blocks until no new action has been recorded for quiet, polling
// the buffer length. Used by the record command to detect the user being
// done before draining.
func (r *Recorder) WaitIdle(ctx context.Context, quiet time.Duration) error {
	lastLen := -1
	lastChange := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
		res, err := r.page.Context(ctx).Eval(
			`() => JSON.parse(sessionStorage.getItem('` + storageKey + `') || '[]').length`)
		if err != nil {
			return fmt.Errorf("recorder: poll: %w", err)
		}
		n := int(res.Value.Int())
		if n != lastLen {
			lastLen = n
			lastChange = time.Now()
			continue
		}
		if n > 0 && time.Since(lastChange) >= quiet {
			return nil
		}
	}
}
