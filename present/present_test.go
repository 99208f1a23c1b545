package present

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseChartKind(t *testing.T) {
	cases := map[string]ChartKind{
		"pie": Pie, "bar": Bar, "Column": Column,
		"line": Line, "area": Area, "": Pie, "weird": Pie,
	}
	for in, want := range cases {
		if got := ParseChartKind(in); got != want {
			t.Errorf("ParseChartKind(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestChartScript(t *testing.T) {
	c := NewChart(Pie, "Browsers")
	c.AddDataPoint("Chrome", 65.4, "")
	c.AddDataPoint("Firefox", 12, "#ff9500")

	script, err := c.Script("chart")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Highcharts.chart('chart'",
		"type: 'pie'",
		"text: 'Browsers'",
		"{name: 'Chrome', y: 65.4}",
		"{name: 'Firefox', y: 12, color: '#ff9500'}",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q:\n%s", want, script)
		}
	}
}

func TestChartEmpty(t *testing.T) {
	c := NewChart(Line, "empty")
	if _, err := c.HTML(); err == nil {
		t.Fatal("expected error for chart with no data")
	}
}

func TestChartSave(t *testing.T) {
	c := NewChart(Column, "Durations")
	c.Unit = "Seconds"
	c.AddDataPoint("login", 1.25, "")

	path := filepath.Join(t.TempDir(), "charts", "durations.html")
	if err := c.Save(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	page := string(data)
	if !strings.Contains(page, highchartsJS) {
		t.Errorf("page missing library include:\n%s", page)
	}
	if !strings.Contains(page, "text: 'Seconds'") {
		t.Errorf("page missing unit label:\n%s", page)
	}
}

func TestJSStr(t *testing.T) {
	cases := map[string]string{
		"plain":    "'plain'",
		"a'b":      `'a\'b'`,
		"</script": `'<\/script'`,
	}
	for in, want := range cases {
		if got := jsStr(in); got != want {
			t.Errorf("jsStr(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestTrimFloat(t *testing.T) {
	cases := map[float64]string{
		12:     "12",
		65.4:   "65.4",
		0.125:  "0.125",
		100.00: "100",
	}
	for in, want := range cases {
		if got := trimFloat(in); got != want {
			t.Errorf("trimFloat(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestPresentationHTML(t *testing.T) {
	p := NewPresentation("release-demo", "moon")
	p.AddSlide("<h1>Hello</h1>")
	p.AddSlide("<p>Second</p><script>alert(1)</script>")
	p.AddImageSlide("shots/login.png", "Login page")

	page, err := p.HTML()
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(page, "<section>"); got != 3 {
		t.Errorf("section count = %d, want 3", got)
	}
	if strings.Contains(page, "<script>alert") {
		t.Errorf("slide content not sanitized:\n%s", page)
	}
	if !strings.Contains(page, "theme/moon.min.css") {
		t.Errorf("theme stylesheet missing:\n%s", page)
	}
	if !strings.Contains(page, `src="shots/login.png"`) {
		t.Errorf("image slide missing:\n%s", page)
	}
}

func TestPresentationThemeFallback(t *testing.T) {
	p := NewPresentation("", "no-such-theme")
	if p.Theme != "serif" {
		t.Errorf("Theme = %q, want serif", p.Theme)
	}
	if p.Name != "default" {
		t.Errorf("Name = %q, want default", p.Name)
	}
}

func TestPresentationAutoSlide(t *testing.T) {
	p := NewPresentation("auto", "white")
	p.IntervalMS = 4000
	p.AddSlide("one")
	page, err := p.HTML()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(page, "autoSlide: 4000") {
		t.Errorf("autoSlide missing:\n%s", page)
	}
}

func TestPresentationEmpty(t *testing.T) {
	p := NewPresentation("x", "")
	if _, err := p.HTML(); err == nil {
		t.Fatal("expected error for deck with no slides")
	}
	if err := p.Save(filepath.Join(t.TempDir(), "x.html")); err == nil {
		t.Fatal("expected error saving empty deck")
	}
}
