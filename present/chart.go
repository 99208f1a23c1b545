// Package present generates self-contained HTML for charts and slide
// presentations. Charts render through the HighCharts CDN build, slides
// through reveal.js; both produce a single file with no local assets so the
// output can be opened directly or served from the dashboard artifact dir.
package present

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ChartKind selects the HighCharts series type.
type ChartKind int

const (
	Pie ChartKind = iota
	Bar
	Column
	Line
	Area
)

func (k ChartKind) String() string {
	switch k {
	case Bar:
		return "bar"
	case Column:
		return "column"
	case Line:
		return "line"
	case Area:
		return "area"
	default:
		return "pie"
	}
}

// ParseChartKind maps a config string to a ChartKind. Unknown values fall
// back to Pie.
func ParseChartKind(s string) ChartKind {
	switch strings.ToLower(s) {
	case "bar":
		return Bar
	case "column":
		return Column
	case "line":
		return Line
	case "area":
		return Area
	default:
		return Pie
	}
}

type dataPoint struct {
	Label string
	Value float64
	Color string // empty = library palette
}

// Chart is an append-only series of labelled values rendered as one
// HighCharts chart.
type Chart struct {
	Title    string
	Subtitle string
	Kind     ChartKind
	Unit     string // y-axis / tooltip unit label
	points   []dataPoint
}

// NewChart creates an empty chart.
func NewChart(kind ChartKind, title string) *Chart {
	return &Chart{Title: title, Kind: kind, Unit: "Value"}
}

// AddDataPoint appends one labelled value. color may be any CSS color; empty
// leaves the choice to the chart library.
func (c *Chart) AddDataPoint(label string, value float64, color string) {
	c.points = append(c.points, dataPoint{Label: label, Value: value, Color: color})
}

// Len reports the number of data points.
func (c *Chart) Len() int { return len(c.points) }

const highchartsJS = "https://code.highcharts.com/12.1.2/highcharts.js"

// Script renders the chart config as a JS snippet targeting the element with
// the given id.
func (c *Chart) Script(containerID string) (string, error) {
	if len(c.points) == 0 {
		return "", fmt.Errorf("chart %q: no data points", c.Title)
	}

	var data []string
	for _, p := range c.points {
		entry := "{name: " + jsStr(p.Label) + ", y: " + trimFloat(p.Value)
		if p.Color != "" {
			entry += ", color: " + jsStr(p.Color)
		}
		entry += "}"
		data = append(data, entry)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Highcharts.chart(%s, {\n", jsStr(containerID))
	fmt.Fprintf(&sb, "  chart: {type: %s},\n", jsStr(c.Kind.String()))
	fmt.Fprintf(&sb, "  title: {text: %s},\n", jsStr(c.Title))
	if c.Subtitle != "" {
		fmt.Fprintf(&sb, "  subtitle: {text: %s},\n", jsStr(c.Subtitle))
	}
	fmt.Fprintf(&sb, "  xAxis: {type: 'category'},\n")
	fmt.Fprintf(&sb, "  yAxis: {title: {text: %s}},\n", jsStr(c.Unit))
	fmt.Fprintf(&sb, "  credits: {enabled: false},\n")
	fmt.Fprintf(&sb, "  series: [{name: %s, colorByPoint: true, data: [\n    %s\n  ]}]\n",
		jsStr(c.Unit), strings.Join(data, ",\n    "))
	sb.WriteString("});")
	return sb.String(), nil
}

// HTML renders a complete standalone page containing the chart.
func (c *Chart) HTML() (string, error) {
	script, err := c.Script("chart")
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", htmlEscape(c.Title))
	fmt.Fprintf(&sb, "<script src=%q></script>\n", highchartsJS)
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString("<div id=\"chart\" style=\"width: 92%; height: 520px; margin: 2em auto;\"></div>\n")
	sb.WriteString("<script>\n" + script + "\n</script>\n")
	sb.WriteString("</body>\n</html>\n")
	return sb.String(), nil
}

// Save writes the standalone chart page to path, creating parent directories.
func (c *Chart) Save(path string) error {
	page, err := c.HTML()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("chart %q: mkdir: %w", c.Title, err)
		}
	}
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return fmt.Errorf("chart %q: save: %w", c.Title, err)
	}
	return nil
}

func jsStr(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "</", `<\/`)
	return "'" + s + "'"
}

func trimFloat(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", f), "0"), ".")
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// sanitizer is shared by slide content; charts take plain strings only.
var sanitizer = bluemonday.UGCPolicy()
