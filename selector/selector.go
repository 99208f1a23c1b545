// Package selector normalises element locators before they reach the driver.
//
// A raw locator string carries an optional strategy prefix:
//
//	"button.submit"          CSS (default)
//	"xpath=//div[@id='x']"   XPath (also any string starting with "/" or "(/")
//	"link=Sign in"           link text
//	"name=email"             name attribute
//	"#app::shadow #inner"    shadow DOM path, "::shadow " separated
//
// Detection is first-match: the prefix rules are checked in a fixed order and
// the first one that applies wins. Parsing is pure; a Selector is recomputed
// per call and never persisted.
package selector

import "strings"

// Strategy identifies how a selector value is interpreted by the driver.
type Strategy int

const (
	ByCSS Strategy = iota
	ByXPath
	ByLinkText
	ByName
	ByShadow
)

// String returns the strategy name as used in logs and generated code.
func (s Strategy) String() string {
	switch s {
	case ByCSS:
		return "css"
	case ByXPath:
		return "xpath"
	case ByLinkText:
		return "link"
	case ByName:
		return "name"
	case ByShadow:
		return "shadow"
	default:
		return "unknown"
	}
}

// Selector is a locator value paired with its lookup strategy.
type Selector struct {
	Value string
	By    Strategy
}

// shadowSep splits a shadow DOM path into per-root CSS hops.
const shadowSep = "::shadow "

// Parse auto-detects the strategy of a raw locator string.
func Parse(raw string) Selector {
	s := strings.TrimSpace(raw)

	switch {
	case strings.Contains(s, shadowSep):
		return Selector{Value: s, By: ByShadow}
	case strings.HasPrefix(s, "xpath="):
		return Selector{Value: strings.TrimSpace(s[len("xpath="):]), By: ByXPath}
	case strings.HasPrefix(s, "/") || strings.HasPrefix(s, "./") || strings.HasPrefix(s, "(/"):
		return Selector{Value: s, By: ByXPath}
	case strings.HasPrefix(s, "link="):
		return Selector{Value: strings.TrimSpace(s[len("link="):]), By: ByLinkText}
	case strings.HasPrefix(s, "text="):
		return Selector{Value: strings.TrimSpace(s[len("text="):]), By: ByLinkText}
	case strings.HasPrefix(s, "name="):
		return Selector{Value: strings.TrimSpace(s[len("name="):]), By: ByName}
	case strings.HasPrefix(s, "css="):
		return Selector{Value: strings.TrimSpace(s[len("css="):]), By: ByCSS}
	default:
		return Selector{Value: s, By: ByCSS}
	}
}

// CSS returns the selector in CSS form where one exists. Link-text and XPath
// selectors have no CSS equivalent and report ok=false.
func (s Selector) CSS() (css string, ok bool) {
	switch s.By {
	case ByCSS:
		return s.Value, true
	case ByName:
		return `[name="` + escapeAttr(s.Value) + `"]`, true
	case ByShadow:
		// The final hop of a shadow path is plain CSS inside the last root.
		parts := s.ShadowParts()
		if len(parts) > 0 {
			return parts[len(parts)-1], true
		}
		return "", false
	default:
		return "", false
	}
}

// XPath returns the selector as an XPath expression where one exists.
func (s Selector) XPath() (string, bool) {
	switch s.By {
	case ByXPath:
		return s.Value, true
	case ByLinkText:
		return `//a[normalize-space(text())=` + xpathLiteral(s.Value) + `]`, true
	case ByName:
		return `//*[@name=` + xpathLiteral(s.Value) + `]`, true
	default:
		return "", false
	}
}

// ShadowParts splits a shadow-path selector into its per-root CSS segments.
// Non-shadow selectors return a single segment.
func (s Selector) ShadowParts() []string {
	if s.By != ByShadow {
		return []string{s.Value}
	}
	raw := strings.Split(s.Value, shadowSep)
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// IsEmpty reports whether the selector has no usable value.
func (s Selector) IsEmpty() bool {
	return strings.TrimSpace(s.Value) == ""
}

// escapeAttr escapes double quotes for embedding in a CSS attribute selector.
func escapeAttr(v string) string {
	return strings.ReplaceAll(v, `"`, `\"`)
}

// xpathLiteral quotes a string for use inside an XPath expression. XPath 1.0
// has no escape sequences, so values containing both quote kinds are built
// with concat().
func xpathLiteral(v string) string {
	if !strings.Contains(v, `'`) {
		return `'` + v + `'`
	}
	if !strings.Contains(v, `"`) {
		return `"` + v + `"`
	}
	parts := strings.Split(v, `'`)
	var sb strings.Builder
	sb.WriteString("concat(")
	for i, p := range parts {
		if i > 0 {
			sb.WriteString(`, "'", `)
		}
		sb.WriteString(`'` + p + `'`)
	}
	sb.WriteString(")")
	return sb.String()
}
