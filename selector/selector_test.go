package selector

import "testing"

func TestParseStrategies(t *testing.T) {
	cases := []struct {
		raw   string
		by    Strategy
		value string
	}{
		{"button.submit", ByCSS, "button.submit"},
		{"#login > input", ByCSS, "#login > input"},
		{"css=div.row", ByCSS, "div.row"},
		{"xpath=//div[@id='x']", ByXPath, "//div[@id='x']"},
		{"//table/tbody/tr[2]", ByXPath, "//table/tbody/tr[2]"},
		{"(//a)[3]", ByXPath, "(//a)[3]"},
		{"./div/span", ByXPath, "./div/span"},
		{"link=Sign in", ByLinkText, "Sign in"},
		{"text=Next page", ByLinkText, "Next page"},
		{"name=email", ByName, "email"},
		{"#app::shadow #inner", ByShadow, "#app::shadow #inner"},
		{"  button  ", ByCSS, "button"},
	}
	for _, tc := range cases {
		got := Parse(tc.raw)
		if got.By != tc.by {
			t.Errorf("Parse(%q).By = %v, want %v", tc.raw, got.By, tc.by)
		}
		if got.Value != tc.value {
			t.Errorf("Parse(%q).Value = %q, want %q", tc.raw, got.Value, tc.value)
		}
	}
}

func TestParseIsDeterministic(t *testing.T) {
	// "link=" inside a shadow path must not win: shadow detection runs first.
	s := Parse(`#host::shadow a[href="link=x"]`)
	if s.By != ByShadow {
		t.Fatalf("expected shadow strategy, got %v", s.By)
	}
}

func TestCSSForm(t *testing.T) {
	if css, ok := Parse("name=email").CSS(); !ok || css != `[name="email"]` {
		t.Errorf(`name CSS = %q, %v`, css, ok)
	}
	if css, ok := Parse(`name=a"b`).CSS(); !ok || css != `[name="a\"b"]` {
		t.Errorf(`escaped name CSS = %q, %v`, css, ok)
	}
	if _, ok := Parse("link=Sign in").CSS(); ok {
		t.Error("link text should have no CSS form")
	}
	if _, ok := Parse("//div").CSS(); ok {
		t.Error("xpath should have no CSS form")
	}
	if css, ok := Parse("#a::shadow #b::shadow input").CSS(); !ok || css != "input" {
		t.Errorf("shadow CSS = %q, %v", css, ok)
	}
}

func TestXPathForm(t *testing.T) {
	if xp, ok := Parse("link=Sign in").XPath(); !ok || xp != `//a[normalize-space(text())='Sign in']` {
		t.Errorf("link xpath = %q, %v", xp, ok)
	}
	if xp, ok := Parse("name=q").XPath(); !ok || xp != `//*[@name='q']` {
		t.Errorf("name xpath = %q, %v", xp, ok)
	}
	if _, ok := Parse("div.row").XPath(); ok {
		t.Error("css should have no XPath form")
	}
}

func TestXPathLiteralQuoting(t *testing.T) {
	cases := []struct{ in, want string }{
		{`plain`, `'plain'`},
		{`it's`, `"it's"`},
		{`say "hi"`, `'say "hi"'`},
		{`both '"`, `concat('both ', "'", '"')`},
	}
	for _, tc := range cases {
		if got := xpathLiteral(tc.in); got != tc.want {
			t.Errorf("xpathLiteral(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestShadowParts(t *testing.T) {
	s := Parse("#app::shadow .panel::shadow input[name='q']")
	parts := s.ShadowParts()
	want := []string{"#app", ".panel", "input[name='q']"}
	if len(parts) != len(want) {
		t.Fatalf("parts = %v", parts)
	}
	for i := range want {
		if parts[i] != want[i] {
			t.Errorf("part %d = %q, want %q", i, parts[i], want[i])
		}
	}
}

func TestEmpty(t *testing.T) {
	if !Parse("").IsEmpty() {
		t.Error("empty string should parse to an empty selector")
	}
	if Parse("body").IsEmpty() {
		t.Error("non-empty selector reported empty")
	}
}
