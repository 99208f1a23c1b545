// Package tour builds and plays guided website tours: an append-only list of
// steps, each anchoring a message to a page element, rendered to the JS of
// one of the supported tour libraries and either played live in the browser
// or exported as a standalone script.
//
// Step messages and titles are user-supplied HTML fragments; they pass
// through bluemonday before being embedded in generated output.
package tour

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/hazyhaar/basecase/selector"
)

// Theme selects the tour library used for rendering.
type Theme int

const (
	IntroJS Theme = iota
	BootstrapTour
	DriverJS
	Hopscotch
)

// ParseTheme maps a config string to a Theme. Unknown values fall back to
// IntroJS, the default.
func ParseTheme(s string) Theme {
	switch strings.ToLower(s) {
	case "bootstrap":
		return BootstrapTour
	case "driverjs", "driver":
		return DriverJS
	case "hopscotch":
		return Hopscotch
	default:
		return IntroJS
	}
}

func (t Theme) String() string {
	switch t {
	case BootstrapTour:
		return "bootstrap"
	case DriverJS:
		return "driverjs"
	case Hopscotch:
		return "hopscotch"
	default:
		return "introjs"
	}
}

// Step is one stop of a tour. A step without a selector anchors to the page
// center.
type Step struct {
	Message   string
	Selector  selector.Selector
	Title     string
	Alignment string // top | bottom | left | right; library default when empty
}

// Tour is an append-only step list keyed by a user-chosen name. Steps are
// concatenated into the final script at render time; a played or exported
// tour must not be mutated afterwards.
type Tour struct {
	Name  string
	Theme Theme
	steps []Step

	policy *bluemonday.Policy
}

// New creates an empty tour.
func New(theme Theme, name string) *Tour {
	if name == "" {
		name = "default"
	}
	return &Tour{
		Name:   name,
		Theme:  theme,
		policy: bluemonday.UGCPolicy(),
	}
}

// AddStep appends a step. message may contain HTML (sanitised); sel is a raw
// locator string run through selector.Parse; title and alignment are
// optional.
func (t *Tour) AddStep(message, sel, title, alignment string) {
	t.steps = append(t.steps, Step{
		Message:   t.policy.Sanitize(message),
		Selector:  selector.Parse(sel),
		Title:     t.policy.Sanitize(title),
		Alignment: normalizeAlignment(alignment),
	})
}

// Len reports the number of steps.
func (t *Tour) Len() int { return len(t.steps) }

// Script renders the tour as a self-invoking JS snippet for the tour's
// theme. autoplayMS > 0 makes the tour advance by itself.
func (t *Tour) Script(autoplayMS int) (string, error) {
	if len(t.steps) == 0 {
		return "", fmt.Errorf("tour %q: no steps", t.Name)
	}
	switch t.Theme {
	case BootstrapTour:
		return renderBootstrap(t, autoplayMS), nil
	case DriverJS:
		return renderDriverJS(t), nil
	case Hopscotch:
		return renderHopscotch(t), nil
	default:
		return renderIntroJS(t, autoplayMS), nil
	}
}

func normalizeAlignment(a string) string {
	switch strings.ToLower(a) {
	case "top", "bottom", "left", "right":
		return strings.ToLower(a)
	default:
		return ""
	}
}

// jsString quotes a string as a JS single-quoted literal.
func jsString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return "'" + s + "'"
}

// stepCSS returns the CSS form of a step's selector, or "" for steps without
// an element anchor (including link-text selectors, which tours cannot use).
func stepCSS(s Step) string {
	if s.Selector.IsEmpty() {
		return ""
	}
	css, ok := s.Selector.CSS()
	if !ok {
		return ""
	}
	return css
}
