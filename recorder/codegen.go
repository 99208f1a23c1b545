package recorder

import (
	"fmt"
	"strings"
	"unicode"
)

// Generate emits a Go test file that replays a processed action stream
// through basecase.Case. name becomes the test function name after
// sanitisation; the caller picks the output path.
func Generate(name string, actions []Action) (string, error) {
	if len(actions) == 0 {
		return "", fmt.Errorf("recorder: generate %q: no actions", name)
	}

	var sb strings.Builder
	sb.WriteString("package recorded\n\n")
	sb.WriteString("import (\n\t\"testing\"\n\n\t\"github.com/hazyhaar/basecase/basecase\"\n)\n\n")
	fmt.Fprintf(&sb, "func Test%s(t *testing.T) {\n", funcName(name))
	sb.WriteString("\tc, err := basecase.New(t.Context(), basecase.Options{})\n")
	sb.WriteString("\tif err != nil {\n\t\tt.Fatal(err)\n\t}\n")
	sb.WriteString("\tdefer c.Close()\n")
	sb.WriteString("\tok := func(err error) {\n\t\tt.Helper()\n\t\tif err != nil {\n\t\t\tt.Fatal(err)\n\t\t}\n\t}\n\n")

	for _, a := range actions {
		line, err := actionCall(a)
		if err != nil {
			return "", fmt.Errorf("recorder: generate %q: %w", name, err)
		}
		if line == "" {
			continue
		}
		sb.WriteString("\t" + line + "\n")
	}
	sb.WriteString("}\n")
	return sb.String(), nil
}

func actionCall(a Action) (string, error) {
	switch a.Kind {
	case KindBegin, KindURL:
		return fmt.Sprintf("ok(c.Open(%q))", a.Value), nil
	case KindClick:
		return fmt.Sprintf("ok(c.Click(%q))", a.Selector), nil
	case KindDblClick:
		return fmt.Sprintf("ok(c.DoubleClick(%q))", a.Selector), nil
	case KindInput:
		return fmt.Sprintf("ok(c.Type(%q, %q))", a.Selector, a.Value), nil
	case KindSelect:
		return fmt.Sprintf("ok(c.SelectOptionByText(%q, %q))", a.Selector, a.Value), nil
	case KindSubmit:
		return fmt.Sprintf("ok(c.Submit(%q))", a.Selector), nil
	case KindHover:
		return fmt.Sprintf("ok(c.Hover(%q))", a.Selector), nil
	case KindDrag:
		return fmt.Sprintf("ok(c.DragAndDrop(%q, %q))", a.Selector, a.Value), nil
	default:
		return "", fmt.Errorf("unknown action kind %q", a.Kind)
	}
}

// funcName turns a free-form recording name into an exported Go identifier.
// "my login flow" becomes "MyLoginFlow"; an empty or fully invalid name
// becomes "Recorded".
func funcName(name string) string {
	var sb strings.Builder
	upper := true
	for _, r := range name {
		switch {
		case unicode.IsLetter(r):
			if upper {
				r = unicode.ToUpper(r)
				upper = false
			}
			sb.WriteRune(r)
		case unicode.IsDigit(r) && sb.Len() > 0:
			sb.WriteRune(r)
			upper = true
		default:
			upper = true
		}
	}
	if sb.Len() == 0 {
		return "Recorded"
	}
	return sb.String()
}
