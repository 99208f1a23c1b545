package present

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// reveal.js CDN assets. Pinned; the 4.x -> 5.x move changed init options.
const (
	revealCSS      = "https://cdn.jsdelivr.net/npm/reveal.js@5.1.0/dist/reveal.min.css"
	revealThemeCSS = "https://cdn.jsdelivr.net/npm/reveal.js@5.1.0/dist/theme/%s.min.css"
	revealJS       = "https://cdn.jsdelivr.net/npm/reveal.js@5.1.0/dist/reveal.min.js"
)

var revealThemes = map[string]bool{
	"black": true, "white": true, "league": true, "beige": true,
	"night": true, "serif": true, "simple": true, "moon": true,
	"dracula": true, "sky": true, "blood": true, "solarized": true,
}

// Presentation is an append-only slide deck rendered to a standalone
// reveal.js page. Slide bodies are user HTML fragments and pass through
// bluemonday.
type Presentation struct {
	Name       string
	Theme      string // reveal.js theme name; "serif" when empty or unknown
	Transition string // none | fade | slide | convex | concave | zoom
	IntervalMS int    // > 0 auto-advances
	slides     []string
}

// NewPresentation creates an empty deck.
func NewPresentation(name, theme string) *Presentation {
	if name == "" {
		name = "default"
	}
	if !revealThemes[strings.ToLower(theme)] {
		theme = "serif"
	}
	return &Presentation{
		Name:       name,
		Theme:      strings.ToLower(theme),
		Transition: "slide",
	}
}

// AddSlide appends one slide. content is an HTML fragment (sanitised).
func (p *Presentation) AddSlide(content string) {
	p.slides = append(p.slides, sanitizer.Sanitize(content))
}

// AddImageSlide appends a slide showing a single image, with an optional
// caption above it.
func (p *Presentation) AddImageSlide(imageURL, caption string) {
	var sb strings.Builder
	if caption != "" {
		sb.WriteString("<h3>" + sanitizer.Sanitize(caption) + "</h3>\n")
	}
	fmt.Fprintf(&sb, "<img src=%q style=\"max-width: 90%%; max-height: 80vh;\">", imageURL)
	p.slides = append(p.slides, sb.String())
}

// Len reports the number of slides.
func (p *Presentation) Len() int { return len(p.slides) }

// HTML renders the full standalone reveal.js page.
func (p *Presentation) HTML() (string, error) {
	if len(p.slides) == 0 {
		return "", fmt.Errorf("presentation %q: no slides", p.Name)
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", htmlEscape(p.Name))
	fmt.Fprintf(&sb, "<link rel=\"stylesheet\" href=%q>\n", revealCSS)
	fmt.Fprintf(&sb, "<link rel=\"stylesheet\" href=%q>\n", fmt.Sprintf(revealThemeCSS, p.Theme))
	sb.WriteString("</head>\n<body>\n<div class=\"reveal\">\n<div class=\"slides\">\n")
	for _, s := range p.slides {
		sb.WriteString("<section>\n" + s + "\n</section>\n")
	}
	sb.WriteString("</div>\n</div>\n")
	fmt.Fprintf(&sb, "<script src=%q></script>\n", revealJS)
	sb.WriteString("<script>\nwindow._deckComplete = false;\n")
	sb.WriteString("Reveal.initialize({\n")
	fmt.Fprintf(&sb, "  transition: '%s',\n", p.Transition)
	sb.WriteString("  hash: true, center: true,\n")
	if p.IntervalMS > 0 {
		fmt.Fprintf(&sb, "  autoSlide: %d, loop: false,\n", p.IntervalMS)
	}
	sb.WriteString("  controls: true, progress: true\n")
	sb.WriteString("});\n")
	sb.WriteString("Reveal.on('slidechanged', function() { if (Reveal.isLastSlide()) { window._deckComplete = true; } });\n")
	sb.WriteString("</script>\n</body>\n</html>\n")
	return sb.String(), nil
}

// Save writes the deck to path, creating parent directories.
func (p *Presentation) Save(path string) error {
	page, err := p.HTML()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("presentation %q: mkdir: %w", p.Name, err)
		}
	}
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return fmt.Errorf("presentation %q: save: %w", p.Name, err)
	}
	return nil
}
