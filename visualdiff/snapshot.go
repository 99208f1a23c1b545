// Package visualdiff implements structural page-regression baselines.
//
// A Snapshot reduces a page's body to three tag lists of increasing
// strictness: tag names (level 1), tag + attribute names (level 2), and
// tag + attribute names + values (level 3). The first run of a test writes
// the snapshot as ground truth; later runs re-capture and compare at the
// requested level. Comparison is structural equality — no tolerance
// thresholds, no fuzzy matching.
package visualdiff

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Snapshot holds the three strictness-level tag lists for one page.
type Snapshot struct {
	URL    string   `json:"url"`
	Level1 []string `json:"level_1"` // tag names
	Level2 []string `json:"level_2"` // tag + attribute names
	Level3 []string `json:"level_3"` // tag + attribute names + values
}

// Capture parses page HTML and builds the snapshot from the body subtree in
// document order.
func Capture(rawHTML []byte, url string) (*Snapshot, error) {
	doc, err := html.Parse(bytes.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("visualdiff: parse HTML: %w", err)
	}

	body := findBody(doc)
	if body == nil {
		return nil, fmt.Errorf("visualdiff: page has no body")
	}

	snap := &Snapshot{URL: url}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			snap.Level1 = append(snap.Level1, n.Data)
			snap.Level2 = append(snap.Level2, tagWithAttrNames(n))
			snap.Level3 = append(snap.Level3, tagWithAttrValues(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(body)
	return snap, nil
}

// Level returns the tag list for a strictness level in 1..3.
func (s *Snapshot) Level(level int) ([]string, error) {
	switch level {
	case 1:
		return s.Level1, nil
	case 2:
		return s.Level2, nil
	case 3:
		return s.Level3, nil
	default:
		return nil, fmt.Errorf("visualdiff: level %d out of range (1..3)", level)
	}
}

func findBody(doc *html.Node) *html.Node {
	var body *html.Node
	var f func(*html.Node)
	f = func(n *html.Node) {
		if body != nil {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(doc)
	return body
}

// tagWithAttrNames renders "div [class id]". Attribute names are sorted so
// attribute order in the markup does not produce spurious diffs.
func tagWithAttrNames(n *html.Node) string {
	if len(n.Attr) == 0 {
		return n.Data
	}
	names := make([]string, 0, len(n.Attr))
	for _, a := range n.Attr {
		names = append(names, a.Key)
	}
	sort.Strings(names)
	return n.Data + " [" + strings.Join(names, " ") + "]"
}

// tagWithAttrValues renders `div [class="row" id="main"]`, sorted by
// attribute name.
func tagWithAttrValues(n *html.Node) string {
	if len(n.Attr) == 0 {
		return n.Data
	}
	attrs := make([]string, 0, len(n.Attr))
	for _, a := range n.Attr {
		attrs = append(attrs, fmt.Sprintf("%s=%q", a.Key, a.Val))
	}
	sort.Strings(attrs)
	return n.Data + " [" + strings.Join(attrs, " ") + "]"
}
