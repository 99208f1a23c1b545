// Package recorder captures user interactions from a live page and turns
// them into replayable test code. A JS shim stores raw action tuples in
// sessionStorage while the user drives the browser; Drain pulls them out,
// Process cleans the stream, and Generate emits a Go test that replays it.
package recorder

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Kind of a recorded action.
type Kind string

const (
	KindBegin    Kind = "begin" // recording started on a URL
	KindURL      Kind = "_url_" // navigation observed
	KindClick    Kind = "click"
	KindDblClick Kind = "dblclick"
	KindInput    Kind = "input"
	KindSelect   Kind = "select"
	KindSubmit   Kind = "submit"
	KindHover    Kind = "hover"
	KindDrag     Kind = "drag"
)

// Action is one recorded interaction. Selector is a CSS locator chosen by
// the in-page shim; Value carries typed text, the selected option, the
// navigation URL, or the drag target depending on Kind. At is the
// recording-relative timestamp in milliseconds.
type Action struct {
	Kind     Kind
	Selector string
	Value    string
	Origin   string // scheme://host of the page the action happened on
	At       int64
}

// UnmarshalJSON accepts the wire tuple [kind, selector, value, origin, ms]
// produced by the in-page shim.
func (a *Action) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("recorder: action tuple: %w", err)
	}
	if len(tuple) != 5 {
		return fmt.Errorf("recorder: action tuple has %d fields, want 5", len(tuple))
	}
	var kind string
	fields := []any{&kind, &a.Selector, &a.Value, &a.Origin, &a.At}
	for i, f := range fields {
		if err := json.Unmarshal(tuple[i], f); err != nil {
			return fmt.Errorf("recorder: action tuple field %d: %w", i, err)
		}
	}
	a.Kind = Kind(kind)
	return nil
}

// MarshalJSON emits the same tuple form the shim produces, so drained and
// re-serialised streams stay interchangeable.
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{string(a.Kind), a.Selector, a.Value, a.Origin, a.At})
}

// Process normalises a raw action stream for code generation:
//   - actions are ordered by timestamp
//   - consecutive inputs on the same selector collapse to the final value
//   - a navigation immediately after a click on the same origin is dropped,
//     since replaying the click performs the navigation
func Process(raw []Action) []Action {
	actions := make([]Action, len(raw))
	copy(actions, raw)
	sort.SliceStable(actions, func(i, j int) bool { return actions[i].At < actions[j].At })

	var out []Action
	for _, a := range actions {
		if len(out) > 0 {
			prev := &out[len(out)-1]
			if a.Kind == KindInput && prev.Kind == KindInput && prev.Selector == a.Selector {
				prev.Value = a.Value
				prev.At = a.At
				continue
			}
			if a.Kind == KindURL && clickLike(prev.Kind) && sameOrigin(prev.Origin, a.Value) {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

func clickLike(k Kind) bool {
	return k == KindClick || k == KindDblClick || k == KindSubmit
}

func sameOrigin(origin, rawURL string) bool {
	if origin == "" {
		return false
	}
	return strings.HasPrefix(rawURL, origin)
}
