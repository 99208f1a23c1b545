package basecase

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestOptionsDefaults(t *testing.T) {
	var o Options
	o.defaults()

	if o.SmallTimeout != 7*time.Second {
		t.Errorf("SmallTimeout = %s, want 7s", o.SmallTimeout)
	}
	if o.LargeTimeout != 10*time.Second {
		t.Errorf("LargeTimeout = %s, want 10s", o.LargeTimeout)
	}
	if o.PollInterval != 100*time.Millisecond {
		t.Errorf("PollInterval = %s, want 100ms", o.PollInterval)
	}
	if o.ArtifactDir == "" || o.BaselineDir == "" || o.Logger == nil {
		t.Errorf("defaults incomplete: %+v", o)
	}
}

func TestOptionsDefaultsKeepExplicit(t *testing.T) {
	o := Options{SmallTimeout: time.Second, ArtifactDir: "/tmp/shots"}
	o.defaults()
	if o.SmallTimeout != time.Second {
		t.Errorf("explicit SmallTimeout overwritten: %s", o.SmallTimeout)
	}
	if o.ArtifactDir != "/tmp/shots" {
		t.Errorf("explicit ArtifactDir overwritten: %s", o.ArtifactDir)
	}
}

func TestIsFlaky(t *testing.T) {
	flaky := []error{
		errors.New("stale element reference"),
		errors.New("element is not interactable"),
		errors.New("click intercepted by overlay"),
		errors.New("Node is detached from document"),
		errors.New("Cannot find context with specified id"),
		errors.New("element has zero size"),
	}
	for _, err := range flaky {
		if !isFlaky(err) {
			t.Errorf("isFlaky(%v) = false, want true", err)
		}
	}

	fatal := []error{
		nil,
		errors.New("net::ERR_NAME_NOT_RESOLVED"),
		errors.New("context deadline exceeded"),
		errNotFound,
	}
	for _, err := range fatal {
		if isFlaky(err) {
			t.Errorf("isFlaky(%v) = true, want false", err)
		}
	}
}

func TestStateName(t *testing.T) {
	cases := map[waitState]string{
		statePresent:   "present",
		stateVisible:   "visible",
		stateClickable: "clickable",
	}
	for state, want := range cases {
		if got := stateName(state); got != want {
			t.Errorf("stateName(%d) = %q, want %q", state, got, want)
		}
	}
}

func TestParseCSS(t *testing.T) {
	cases := []struct {
		raw    string
		css    string
		wantOK bool
	}{
		{"#main", "#main", true},
		{"css=.row a", ".row a", true},
		{"name=q", `[name="q"]`, true},
		{"link=Docs", "", false},
		{"//div[@id='x']", "", false},
	}
	for _, c := range cases {
		css, ok := parseCSS(c.raw)
		if ok != c.wantOK || css != c.css {
			t.Errorf("parseCSS(%q) = (%q, %v), want (%q, %v)",
				c.raw, css, ok, c.css, c.wantOK)
		}
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"Home Page":      "home_page",
		"checkout/step2": "checkout_step2",
		"ALL CAPS":       "all_caps",
		"%%%":            "default",
	}
	for in, want := range cases {
		if got := sanitizeName(in); got != want {
			t.Errorf("sanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 300)
	if got := truncate(long, 200); len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate long = %d chars", len(got))
	}
	if got := truncate("  short  ", 200); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
}

func TestAssertTrue(t *testing.T) {
	c := &Case{}
	if err := c.AssertTrue(true, "fine"); err != nil {
		t.Fatal(err)
	}
	err := c.AssertTrue(false, "totals must match")
	if err == nil || !strings.Contains(err.Error(), "totals must match") {
		t.Errorf("AssertTrue error = %v", err)
	}
}

func TestReportWithoutStore(t *testing.T) {
	c := &Case{}
	if err := c.Report("TestX", "passed", time.Second, ""); err != nil {
		t.Fatalf("report without store should be a no-op: %v", err)
	}
}
